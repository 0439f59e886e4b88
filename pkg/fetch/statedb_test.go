package fetch

import (
	"os"
	"path/filepath"
	"testing"
)

func tempStateDB(t *testing.T) *StateDB {
	t.Helper()
	db, err := OpenStateDB(filepath.Join(t.TempDir(), "sources.db"))
	if err != nil {
		t.Fatalf("OpenStateDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

var testSources = []Source{
	{ID: "s1", Name: "Первый словарь", URL: "https://example.com/s1.pdf"},
	{ID: "s2", Name: "Второй словарь", URL: "https://example.com/s2.pdf"},
}

func TestOpenStateDBCreatesTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	db, err := OpenStateDB(path)
	if err != nil {
		t.Fatalf("OpenStateDB: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("db file not created: %v", err)
	}

	states, err := db.List()
	if err != nil {
		t.Fatalf("List on empty db: %v", err)
	}
	if len(states) != 0 {
		t.Fatalf("expected 0 sources, got %d", len(states))
	}
}

func TestSeedAndGetURL(t *testing.T) {
	db := tempStateDB(t)

	if err := db.Seed(testSources); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	url, err := db.GetURL("s1")
	if err != nil {
		t.Fatalf("GetURL: %v", err)
	}
	if url != "https://example.com/s1.pdf" {
		t.Fatalf("GetURL = %s", url)
	}

	// Re-seeding must not overwrite (manual overrides survive restarts).
	modified := []Source{{ID: "s1", Name: "Первый словарь", URL: "https://changed.com/s1.pdf"}}
	if err := db.Seed(modified); err != nil {
		t.Fatalf("Seed again: %v", err)
	}
	url, _ = db.GetURL("s1")
	if url != "https://example.com/s1.pdf" {
		t.Fatalf("re-seed overwrote url: %s", url)
	}
}

func TestSetURL(t *testing.T) {
	db := tempStateDB(t)
	if err := db.Seed(testSources); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	if err := db.SetURL("s1", "https://mirror.example.com/s1.pdf"); err != nil {
		t.Fatalf("SetURL: %v", err)
	}
	url, _ := db.GetURL("s1")
	if url != "https://mirror.example.com/s1.pdf" {
		t.Fatalf("GetURL after SetURL = %s", url)
	}

	if err := db.SetURL("nonexistent", "https://example.com"); err == nil {
		t.Fatal("expected error for unknown source")
	}
}

func TestMarkDownloaded(t *testing.T) {
	db := tempStateDB(t)
	if err := db.Seed(testSources); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	if err := db.MarkDownloaded("s1"); err != nil {
		t.Fatalf("MarkDownloaded: %v", err)
	}

	states, err := db.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if states[0].ID != "s1" || states[0].DownloadedAt == nil {
		t.Fatalf("expected s1 marked downloaded, got %+v", states[0])
	}
	if states[1].DownloadedAt != nil {
		t.Fatal("s2 must not be marked downloaded")
	}
}

func TestUpdateCheck(t *testing.T) {
	db := tempStateDB(t)
	if err := db.Seed(testSources[:1]); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	if err := db.UpdateCheck("s1", 200, ""); err != nil {
		t.Fatalf("UpdateCheck: %v", err)
	}
	states, _ := db.List()
	st := states[0]
	if st.LastStatus == nil || *st.LastStatus != 200 {
		t.Fatalf("expected last_status=200, got %v", st.LastStatus)
	}
	if st.LastCheck == nil || *st.LastCheck == 0 {
		t.Fatal("expected last_check to be set")
	}
	if st.LastError != nil {
		t.Fatalf("expected nil last_error, got %v", *st.LastError)
	}

	if err := db.UpdateCheck("s1", 0, "connection refused"); err != nil {
		t.Fatalf("UpdateCheck with error: %v", err)
	}
	states, _ = db.List()
	st = states[0]
	if st.LastError == nil || *st.LastError != "connection refused" {
		t.Fatalf("expected last_error recorded, got %v", st.LastError)
	}
}

func TestListOrder(t *testing.T) {
	db := tempStateDB(t)
	sources := []Source{
		{ID: "z-last", Name: "Я", URL: "https://example.com/z"},
		{ID: "a-first", Name: "А", URL: "https://example.com/a"},
	}
	if err := db.Seed(sources); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	states, err := db.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(states) != 2 || states[0].ID != "a-first" {
		t.Fatalf("expected ordering by id, got %+v", states)
	}
}
