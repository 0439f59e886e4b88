// Package extract adapts stored dictionary files into index.Document values:
// plain per-page text, whatever the underlying format. The index builder only
// ever sees pages; a page that cannot be extracted fails the document and with
// it the whole build.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"

	"github.com/hazyhaar/normative-lexicon/pkg/index"
)

// Open picks an extractor by file extension: .pdf goes through the PDF reader,
// anything else is treated as form-feed paginated plain text in UTF-8.
func Open(path, name string) (index.Document, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return OpenPDF(path, name)
	}
	return OpenText(path, name, "")
}

// Close releases resources held by documents that keep a file handle open.
// Documents without one are ignored.
func Close(docs []index.Document) {
	for _, d := range docs {
		if c, ok := d.(interface{ Close() error }); ok {
			c.Close()
		}
	}
}

// --- PDF ---

type pdfDocument struct {
	name string
	f    *os.File
	r    *pdf.Reader
}

// OpenPDF opens a PDF dictionary. The file stays open until Close: pages are
// extracted lazily during the scan.
func OpenPDF(path, name string) (index.Document, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	return &pdfDocument{name: name, f: f, r: r}, nil
}

func (d *pdfDocument) Name() string   { return d.name }
func (d *pdfDocument) PageCount() int { return d.r.NumPage() }
func (d *pdfDocument) Close() error   { return d.f.Close() }

func (d *pdfDocument) Page(i int) (text string, err error) {
	// The pdf library panics on some malformed content streams; a corrupt
	// page must surface as a build error, not kill the process.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("extract page %d: %v", i+1, r)
		}
	}()

	p := d.r.Page(i + 1)
	if p.V.IsNull() {
		return "", nil
	}
	return p.GetPlainText(nil)
}

// --- plain text ---

type textDocument struct {
	name  string
	pages []string
}

// OpenText loads a plain-text dictionary where pages are separated by form
// feeds. A non-empty encoding names an IANA charset to transcode from
// (e.g. "windows-1251"); empty means UTF-8.
func OpenText(path, name, encoding string) (index.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	content := string(data)
	if encoding != "" && !strings.EqualFold(encoding, "utf-8") {
		e, err := htmlindex.Get(encoding)
		if err != nil {
			return nil, fmt.Errorf("unsupported encoding %q: %w", encoding, err)
		}
		content, _, err = transform.String(e.NewDecoder(), content)
		if err != nil {
			return nil, fmt.Errorf("transcode %s from %s: %w", path, encoding, err)
		}
	}

	pages := strings.Split(content, "\f")
	if len(pages) == 1 && strings.TrimSpace(pages[0]) == "" {
		pages = nil
	}
	return &textDocument{name: name, pages: pages}, nil
}

// Pages builds an in-memory document from pre-extracted page texts. It backs
// tests and callers that already hold plain text.
func Pages(name string, pages ...string) index.Document {
	return &textDocument{name: name, pages: pages}
}

func (d *textDocument) Name() string   { return d.name }
func (d *textDocument) PageCount() int { return len(d.pages) }

func (d *textDocument) Page(i int) (string, error) {
	if i < 0 || i >= len(d.pages) {
		return "", fmt.Errorf("page %d out of range (%d pages)", i+1, len(d.pages))
	}
	return d.pages[i], nil
}
