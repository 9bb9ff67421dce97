package fs

import (
	"os"
	"path/filepath"

	"aniscrape"
)

const (
	currentDirName  = "current"
	previousDirName = "previous"
	recordsDirName  = "anime"
)

// Snapshot manages the two-generation output layout under a base
// directory: "current" holds the generation being written, "previous"
// holds the one before it. At most two generations exist at any time.
type Snapshot struct {
	base string
}

// NewSnapshot creates a snapshot rooted at base. No directories are
// touched until Prepare is called.
func NewSnapshot(base string) *Snapshot {
	return &Snapshot{base: base}
}

// Dir returns the path of the current generation.
func (s *Snapshot) Dir() string {
	return filepath.Join(s.base, currentDirName)
}

// RecordsDir returns the path of the per-record directory inside the
// current generation.
func (s *Snapshot) RecordsDir() string {
	return filepath.Join(s.Dir(), recordsDirName)
}

// Prepare makes the current generation ready for writing. With rotate
// set, the previous generation is removed, the current one becomes the
// previous one, and a fresh current generation is created. Without
// rotate the existing current generation is kept and reused, which is
// what resumed runs want.
//
// Rotation is ordered so that a crash between steps never leaves more
// than two generations and never loses the newest complete one.
func (s *Snapshot) Prepare(rotate bool) error {
	cur := s.Dir()
	prev := filepath.Join(s.base, previousDirName)

	if rotate {
		if err := os.RemoveAll(prev); err != nil {
			return aniscrape.Errorf(aniscrape.EINTERNAL, "remove previous snapshot: %v", err)
		}
		if _, err := os.Stat(cur); err == nil {
			if err := os.Rename(cur, prev); err != nil {
				return aniscrape.Errorf(aniscrape.EINTERNAL, "rotate snapshot: %v", err)
			}
		}
	}

	if err := os.MkdirAll(s.RecordsDir(), 0o755); err != nil {
		return aniscrape.Errorf(aniscrape.EINTERNAL, "create snapshot dir: %v", err)
	}
	return nil
}
