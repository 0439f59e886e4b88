package index

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/hazyhaar/normative-lexicon/pkg/morph"
)

// ErrBuildRunning is returned when a build is requested while another one is
// in flight. The caller reports it as a distinct "already running" status, not
// as a failure.
var ErrBuildRunning = errors.New("corpus build already in progress")

// ErrNotReady is returned by Persist when no index has been built or restored.
var ErrNotReady = errors.New("corpus index not ready")

// Loader produces the corpus documents for a build. It runs inside the
// single-flight guard so that fetching and scanning cannot interleave across
// concurrent build requests.
type Loader func(ctx context.Context) ([]Document, error)

// Manager owns the current index snapshot. Queries read the snapshot without
// coordination; a rebuild swaps the snapshot atomically, so readers always see
// either the previous complete index or the new one, never a partial state.
type Manager struct {
	mu       sync.RWMutex
	idx      *Index
	lem      morph.Lemmatizer
	building atomic.Bool
	logger   *slog.Logger
}

// NewManager creates a Manager with no index loaded. When lem is nil the
// heuristic reducer is used, with this manager's snapshot as its
// index-presence oracle.
func NewManager(lem morph.Lemmatizer, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Manager{logger: logger}
	if lem == nil {
		lem = morph.NewReducer(m.contains)
	}
	m.lem = lem
	return m
}

// Ready reports whether a successful build or restore has installed an index.
func (m *Manager) Ready() bool {
	return m.Snapshot() != nil
}

// Snapshot returns the current index, or nil before the first build.
func (m *Manager) Snapshot() *Index {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.idx
}

// Building reports whether a build is currently in flight.
func (m *Manager) Building() bool {
	return m.building.Load()
}

func (m *Manager) contains(w string) bool {
	return m.Snapshot().Has(w)
}

func (m *Manager) install(idx *Index) {
	m.mu.Lock()
	m.idx = idx
	m.mu.Unlock()
}

// Build runs load and scans the returned documents into a fresh index,
// installing it only on full success. At most one build runs at a time;
// concurrent requests get ErrBuildRunning. On failure the previously installed
// index, if any, keeps serving.
func (m *Manager) Build(ctx context.Context, load Loader) (Stats, error) {
	if !m.building.CompareAndSwap(false, true) {
		return Stats{}, ErrBuildRunning
	}
	defer m.building.Store(false)

	docs, err := load(ctx)
	if err != nil {
		return Stats{}, err
	}
	defer closeDocs(docs)
	idx, err := Build(ctx, docs)
	if err != nil {
		return Stats{}, err
	}

	m.install(idx)
	st := idx.Stats()
	m.logger.Info("corpus index built",
		"files", st.Files, "pages", st.Pages, "tokens", idx.Len())
	return st, nil
}

// closeDocs releases documents that keep a file handle open.
func closeDocs(docs []Document) {
	for _, d := range docs {
		if c, ok := d.(interface{ Close() error }); ok {
			c.Close()
		}
	}
}

// Persist writes the current snapshot to path.
func (m *Manager) Persist(path string) error {
	idx := m.Snapshot()
	if idx == nil {
		return ErrNotReady
	}
	return WriteSnapshot(idx, path)
}

// Restore installs an index from a snapshot file without rescanning.
func (m *Manager) Restore(path string) error {
	idx, err := ReadSnapshot(path)
	if err != nil {
		return err
	}
	m.install(idx)
	m.logger.Info("corpus index restored", "tokens", idx.Len())
	return nil
}

// normalizeQuery folds a query word the way index keys were folded at build
// time: lowercase, trimmed, ё collapsed to е.
func normalizeQuery(word string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(word)), "ё", "е")
}

// Lookup resolves a word form against the index: exact match first, then the
// е/ё variant, then each reducer candidate with the same two probes, stopping
// at the first hit. An empty result means "not attested", including when no
// index is installed yet; the read path never errors.
func (m *Manager) Lookup(word string) []Provenance {
	idx := m.Snapshot()
	if idx == nil {
		return nil
	}

	w := normalizeQuery(word)
	if w == "" {
		return nil
	}
	if recs := probe(idx, w); recs != nil {
		return recs
	}

	for _, lemma := range m.lem.Lemmas(word) {
		if recs := probe(idx, normalizeQuery(lemma)); recs != nil {
			return recs
		}
	}
	return nil
}

// probe queries a normalized token directly, then its е→ё variant.
func probe(idx *Index, w string) []Provenance {
	if recs := idx.Get(w); len(recs) > 0 {
		return recs
	}
	if yo := strings.ReplaceAll(w, "е", "ё"); yo != w {
		if recs := idx.Get(yo); len(recs) > 0 {
			return recs
		}
	}
	return nil
}

// Attested returns the distinct source names a word resolves to, in first-seen
// order. It backs the substitution feature: a suggested replacement is only
// worth offering with the sources that attest it.
func (m *Manager) Attested(word string) []string {
	var names []string
	seen := make(map[string]struct{})
	for _, p := range m.Lookup(word) {
		if _, dup := seen[p.Source]; dup {
			continue
		}
		seen[p.Source] = struct{}{}
		names = append(names, p.Source)
	}
	return names
}
