package fetch

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEnsureAll(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/good.pdf":
			w.Write([]byte("%PDF-1.4 данные"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	dir := t.TempDir()
	sources := []Source{
		{ID: "good", Name: "Хороший", URL: srv.URL + "/good.pdf"},
		{ID: "gone", Name: "Пропавший", URL: srv.URL + "/gone.pdf"},
	}
	db := tempStateDB(t)
	if err := db.Seed(sources); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	results := EnsureAll(context.Background(), sources, dir, db, quietLogger())

	if results["good"] != "downloaded" {
		t.Errorf("good = %q, want downloaded", results["good"])
	}
	if !strings.HasPrefix(results["gone"], "error") {
		t.Errorf("gone = %q, want error status", results["gone"])
	}

	if _, err := os.Stat(filepath.Join(dir, "good.pdf")); err != nil {
		t.Errorf("downloaded file missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "gone.pdf")); err == nil {
		t.Error("failed download left a file behind")
	}

	// Download state recorded.
	states, _ := db.List()
	for _, st := range states {
		if st.ID == "good" && st.DownloadedAt == nil {
			t.Error("good not marked downloaded")
		}
		if st.ID == "gone" && st.DownloadedAt != nil {
			t.Error("gone wrongly marked downloaded")
		}
	}

	// A second run sees the file on disk.
	results = EnsureAll(context.Background(), sources, dir, db, quietLogger())
	if results["good"] != "already_exists" {
		t.Errorf("second run good = %q, want already_exists", results["good"])
	}
}

func TestEnsureAllUsesURLOverride(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/mirror.pdf" {
			hits++
			w.Write([]byte("data"))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	sources := []Source{{ID: "s", Name: "Словарь", URL: srv.URL + "/dead.pdf"}}
	db := tempStateDB(t)
	if err := db.Seed(sources); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if err := db.SetURL("s", srv.URL+"/mirror.pdf"); err != nil {
		t.Fatalf("SetURL: %v", err)
	}

	results := EnsureAll(context.Background(), sources, t.TempDir(), db, quietLogger())
	if results["s"] != "downloaded" {
		t.Fatalf("s = %q, want downloaded", results["s"])
	}
	if hits == 0 {
		t.Error("mirror URL never used")
	}
}

func TestCheckerCheckAll(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("expected HEAD, got %s", r.Method)
		}
		if r.URL.Path == "/ok.pdf" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	db := tempStateDB(t)
	sources := []Source{
		{ID: "ok", Name: "Живой", URL: srv.URL + "/ok.pdf"},
		{ID: "dead", Name: "Мёртвый", URL: srv.URL + "/dead.pdf"},
	}
	if err := db.Seed(sources); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	c := NewChecker(db, quietLogger(), 0)
	c.CheckAll(context.Background())

	states, _ := db.List()
	for _, st := range states {
		if st.LastStatus == nil {
			t.Fatalf("%s has no recorded status", st.ID)
		}
		switch st.ID {
		case "ok":
			if *st.LastStatus != http.StatusOK {
				t.Errorf("ok status = %d", *st.LastStatus)
			}
		case "dead":
			if *st.LastStatus != http.StatusNotFound {
				t.Errorf("dead status = %d", *st.LastStatus)
			}
		}
	}
}
