package index

import (
	"encoding/gob"
	"fmt"
	"os"
)

// snapshot is the on-disk layout. Restoring trusts the snapshot: token grammar
// is not re-validated.
type snapshot struct {
	Entries map[string][]Provenance
	Stats   Stats
}

// WriteSnapshot serializes the index to a gob file at path.
func WriteSnapshot(x *Index, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	defer f.Close()

	snap := snapshot{Entries: x.entries, Stats: x.stats}
	if err := gob.NewEncoder(f).Encode(&snap); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// ReadSnapshot restores an index previously written by WriteSnapshot.
// The round trip is lossless: same keys, same provenance lists in order.
func ReadSnapshot(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	var snap snapshot
	if err := gob.NewDecoder(f).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.Entries == nil {
		snap.Entries = make(map[string][]Provenance)
	}
	return &Index{entries: snap.Entries, stats: snap.Stats}, nil
}
