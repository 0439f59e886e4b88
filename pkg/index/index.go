// Package index builds and queries the corpus index: a mapping from canonical
// token to the dictionary sources and pages the token was observed on.
//
// The index is built once per corpus load by scanning every page of every
// document through the token normalizer, is immutable afterwards, and is
// swapped atomically by the Manager on rebuild.
package index

import (
	"context"
	"fmt"

	"github.com/hazyhaar/normative-lexicon/pkg/token"
)

// Provenance records one observation of a token: which source, which page.
type Provenance struct {
	Source string `json:"source"`
	Page   int    `json:"page"`
}

// Document is one corpus source exposing per-page plain text. Extraction of
// that text from the underlying format (PDF or otherwise) is the extractor's
// concern; a failing page aborts the whole build.
type Document interface {
	Name() string
	PageCount() int
	// Page returns the plain text of the 0-based page i.
	Page(i int) (string, error)
}

// Stats summarizes one build.
type Stats struct {
	Files  int `json:"files"`
	Pages  int `json:"pages"`
	Tokens int `json:"tokens"`
}

// Index is the immutable token → provenance mapping.
type Index struct {
	entries map[string][]Provenance
	stats   Stats
}

// Build scans all documents and returns a complete index. Any page read error
// aborts the build identifying the failing document: a partial index must
// never be served as if it were complete.
func Build(ctx context.Context, docs []Document) (*Index, error) {
	x := &Index{entries: make(map[string][]Provenance)}
	seenDocs := make(map[string]bool, len(docs))

	for _, doc := range docs {
		name := doc.Name()
		// Re-scanning a source name requires the slow duplicate check.
		strict := seenDocs[name]
		seenDocs[name] = true
		x.stats.Files++

		for i := 0; i < doc.PageCount(); i++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			text, err := doc.Page(i)
			if err != nil {
				return nil, fmt.Errorf("scan %s: page %d: %w", name, i+1, err)
			}
			x.stats.Pages++

			page := i + 1
			seen := make(map[string]struct{})
			for _, t := range token.Page(text, page) {
				if _, dup := seen[t.Text]; dup {
					continue
				}
				seen[t.Text] = struct{}{}
				p := Provenance{Source: name, Page: page}
				if strict && containsProv(x.entries[t.Text], p) {
					continue
				}
				x.entries[t.Text] = append(x.entries[t.Text], p)
			}
			x.stats.Tokens += len(seen)
		}
	}
	return x, nil
}

// Get returns the provenance records for an already-normalized token.
func (x *Index) Get(tok string) []Provenance {
	if x == nil {
		return nil
	}
	return x.entries[tok]
}

// Has reports whether a token is attested; it is the index-presence oracle
// handed to the morphological reducer.
func (x *Index) Has(tok string) bool {
	if x == nil {
		return false
	}
	_, ok := x.entries[tok]
	return ok
}

// Len returns the number of distinct tokens.
func (x *Index) Len() int {
	if x == nil {
		return 0
	}
	return len(x.entries)
}

// Stats returns the build statistics carried by this index.
func (x *Index) Stats() Stats {
	if x == nil {
		return Stats{}
	}
	return x.stats
}

func containsProv(list []Provenance, p Provenance) bool {
	for _, v := range list {
		if v == p {
			return true
		}
	}
	return false
}
