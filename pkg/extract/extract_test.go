package extract

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestOpenTextPaging(t *testing.T) {
	path := writeFile(t, "dict.txt", []byte("первая страница\fвторая страница"))

	doc, err := OpenText(path, "словарь", "")
	if err != nil {
		t.Fatalf("OpenText: %v", err)
	}
	if doc.Name() != "словарь" {
		t.Errorf("Name = %q", doc.Name())
	}
	if doc.PageCount() != 2 {
		t.Fatalf("PageCount = %d, want 2", doc.PageCount())
	}
	p2, err := doc.Page(1)
	if err != nil {
		t.Fatalf("Page(1): %v", err)
	}
	if p2 != "вторая страница" {
		t.Errorf("Page(1) = %q", p2)
	}
	if _, err := doc.Page(2); err == nil {
		t.Error("expected out-of-range error")
	}
}

func TestOpenTextEmptyFile(t *testing.T) {
	path := writeFile(t, "empty.txt", []byte("  \n"))
	doc, err := OpenText(path, "пустой", "")
	if err != nil {
		t.Fatalf("OpenText: %v", err)
	}
	if doc.PageCount() != 0 {
		t.Errorf("PageCount = %d, want 0", doc.PageCount())
	}
}

func TestOpenTextTranscodesWindows1251(t *testing.T) {
	// "привет" in windows-1251.
	raw := []byte{0xEF, 0xF0, 0xE8, 0xE2, 0xE5, 0xF2}
	path := writeFile(t, "cp1251.txt", raw)

	doc, err := OpenText(path, "словарь", "windows-1251")
	if err != nil {
		t.Fatalf("OpenText: %v", err)
	}
	page, err := doc.Page(0)
	if err != nil {
		t.Fatalf("Page(0): %v", err)
	}
	if page != "привет" {
		t.Errorf("Page(0) = %q, want привет", page)
	}
}

func TestOpenTextUnknownEncoding(t *testing.T) {
	path := writeFile(t, "x.txt", []byte("text"))
	if _, err := OpenText(path, "x", "no-such-charset"); err == nil {
		t.Fatal("expected error for unknown encoding")
	}
}

func TestOpenDispatch(t *testing.T) {
	path := writeFile(t, "dict.txt", []byte("слово"))
	doc, err := Open(path, "словарь")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if doc.PageCount() != 1 {
		t.Errorf("PageCount = %d, want 1", doc.PageCount())
	}

	if _, err := Open(filepath.Join(t.TempDir(), "absent.pdf"), "нет"); err == nil {
		t.Error("expected error for missing PDF")
	}
}

func TestPagesHelper(t *testing.T) {
	doc := Pages("словарь", "раз", "два", "три")
	if doc.PageCount() != 3 {
		t.Fatalf("PageCount = %d, want 3", doc.PageCount())
	}
	p, err := doc.Page(2)
	if err != nil || p != "три" {
		t.Errorf("Page(2) = %q, %v", p, err)
	}
}
