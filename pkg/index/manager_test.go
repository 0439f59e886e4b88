package index

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func docsLoader(docs ...Document) Loader {
	return func(context.Context) ([]Document, error) {
		return docs, nil
	}
}

func builtManager(t *testing.T, docs ...Document) *Manager {
	t.Helper()
	m := NewManager(nil, quietLogger())
	if _, err := m.Build(context.Background(), docsLoader(docs...)); err != nil {
		t.Fatalf("Build: %v", err)
	}
	return m
}

func TestManagerLookup(t *testing.T) {
	m := builtManager(t, &stubDoc{name: "Орфографический словарь", pages: []string{"ментор"}})

	tests := []struct {
		word  string
		found bool
	}{
		{"ментор", true},
		{"Ментор", true},
		{"ментором", true}, // case form through the reducer
		{"менторы", true},
		{"абракадабра", false},
		{"", false},
	}
	for _, tt := range tests {
		recs := m.Lookup(tt.word)
		if (len(recs) > 0) != tt.found {
			t.Errorf("Lookup(%q) = %v, want found=%v", tt.word, recs, tt.found)
		}
		if tt.found && (recs[0].Source != "Орфографический словарь" || recs[0].Page != 1) {
			t.Errorf("Lookup(%q) = %v, want page 1 of the source", tt.word, recs)
		}
	}
}

func TestManagerLookupYoVariant(t *testing.T) {
	m := builtManager(t, &stubDoc{name: "словарь", pages: []string{"ёлка"}})

	for _, w := range []string{"ёлка", "елка", "ЁЛКА"} {
		if recs := m.Lookup(w); len(recs) == 0 {
			t.Errorf("Lookup(%q) = empty, want hit", w)
		}
	}
}

func TestManagerUnready(t *testing.T) {
	m := NewManager(nil, quietLogger())

	if m.Ready() {
		t.Error("manager ready before any build")
	}
	if recs := m.Lookup("ментор"); recs != nil {
		t.Errorf("Lookup on unready manager = %v, want nil", recs)
	}
	if names := m.Attested("ментор"); names != nil {
		t.Errorf("Attested on unready manager = %v, want nil", names)
	}
	if err := m.Persist(filepath.Join(t.TempDir(), "x.gob")); !errors.Is(err, ErrNotReady) {
		t.Errorf("Persist = %v, want ErrNotReady", err)
	}
}

func TestManagerSingleFlight(t *testing.T) {
	m := NewManager(nil, quietLogger())

	release := make(chan struct{})
	blocking := func(context.Context) ([]Document, error) {
		<-release
		return []Document{&stubDoc{name: "словарь", pages: []string{"слово"}}}, nil
	}

	done := make(chan error, 1)
	go func() {
		_, err := m.Build(context.Background(), blocking)
		done <- err
	}()

	for !m.Building() {
		time.Sleep(time.Millisecond)
	}
	if _, err := m.Build(context.Background(), blocking); !errors.Is(err, ErrBuildRunning) {
		t.Errorf("concurrent Build = %v, want ErrBuildRunning", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first Build: %v", err)
	}
	if !m.Ready() {
		t.Error("manager not ready after build")
	}
	if m.Building() {
		t.Error("building flag stuck after build")
	}
}

func TestManagerBuildFailureKeepsIndex(t *testing.T) {
	m := builtManager(t, &stubDoc{name: "словарь", pages: []string{"слово"}})

	failing := func(context.Context) ([]Document, error) {
		return nil, errors.New("download failed")
	}
	if _, err := m.Build(context.Background(), failing); err == nil {
		t.Fatal("expected build error")
	}
	if len(m.Lookup("слово")) == 0 {
		t.Error("previous index lost after failed rebuild")
	}
}

func TestManagerPersistRestore(t *testing.T) {
	m := builtManager(t, &stubDoc{name: "словарь", pages: []string{"ментор"}})

	path := filepath.Join(t.TempDir(), "corpus.gob")
	if err := m.Persist(path); err != nil {
		t.Fatalf("Persist: %v", err)
	}

	fresh := NewManager(nil, quietLogger())
	if err := fresh.Restore(path); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if recs := fresh.Lookup("ментором"); len(recs) == 0 {
		t.Error("restored manager cannot resolve a case form")
	}
}

func TestManagerAttested(t *testing.T) {
	m := builtManager(t,
		&stubDoc{name: "Орфографический словарь", pages: []string{"ментор"}},
		&stubDoc{name: "Орфоэпический словарь", pages: []string{"ментор"}},
	)

	names := m.Attested("ментор")
	want := []string{"Орфографический словарь", "Орфоэпический словарь"}
	if len(names) != 2 || names[0] != want[0] || names[1] != want[1] {
		t.Errorf("Attested = %v, want %v", names, want)
	}
}
