package profileio

import (
	"fmt"
	"os"

	"github.com/dekarrin/rezi"
	"github.com/ubffm/deromanize"
)

// SaveCache rezi-encodes an Engine's snapshot and writes it to path, so
// a later process can skip recompiling a large pattern-expanded profile
// via LoadCache + deromanize.FromSnapshot.
func SaveCache(path string, snap deromanize.EngineSnapshot) error {
	data := rezi.EncBinary(snap)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("profileio: write cache %s: %w", path, err)
	}
	return nil
}

// LoadCache reads and rezi-decodes a cache file written by SaveCache.
func LoadCache(path string) (deromanize.EngineSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return deromanize.EngineSnapshot{}, fmt.Errorf("profileio: read cache %s: %w", path, err)
	}

	var snap deromanize.EngineSnapshot
	n, err := rezi.DecBinary(data, &snap)
	if err != nil {
		return deromanize.EngineSnapshot{}, fmt.Errorf("profileio: decode cache %s: %w", path, err)
	}
	if n != len(data) {
		return deromanize.EngineSnapshot{}, fmt.Errorf("profileio: cache %s: %d trailing bytes", path, len(data)-n)
	}
	return snap, nil
}
