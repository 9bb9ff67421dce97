package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/cespare/xxhash/v2"

	"aniscrape"
)

// Ensure Store implements aniscrape.RecordStore at compile time.
var _ aniscrape.RecordStore = (*Store)(nil)

const (
	indexFileName      = "anime_index.json"
	statisticsFileName = "statistics.json"

	maxTitleLen = 200
)

var (
	unsafeCharsRe = regexp.MustCompile(`[<>:"/\\|?*]`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
)

// Store persists one record file per anime inside a snapshot
// generation, plus the index and statistics files at its root.
type Store struct {
	snap  *Snapshot
	codec aniscrape.Codec
}

// NewStore creates a store writing into snap with codec. Prepare must
// have been called on snap before the first write.
func NewStore(snap *Snapshot, codec aniscrape.Codec) *Store {
	return &Store{snap: snap, codec: codec}
}

// SaveRecord writes rec to a file named from its title and URL. The
// name is stable for a given record, so re-scraping an entry
// overwrites its previous file instead of accumulating duplicates.
func (s *Store) SaveRecord(ctx context.Context, rec *aniscrape.AnimeRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	data, err := s.codec.Marshal(rec)
	if err != nil {
		return aniscrape.Errorf(aniscrape.EINTERNAL, "marshal record: %v", err)
	}
	path := filepath.Join(s.snap.RecordsDir(), s.recordFileName(rec))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return aniscrape.Errorf(aniscrape.EINTERNAL, "write record: %v", err)
	}
	return nil
}

// LoadRecords reads back every record file in the snapshot. Files that
// fail to read or decode are skipped and counted rather than aborting
// the load, so one corrupt file cannot sink index building.
func (s *Store) LoadRecords(ctx context.Context) ([]*aniscrape.AnimeRecord, int, error) {
	entries, err := os.ReadDir(s.snap.RecordsDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, nil
		}
		return nil, 0, aniscrape.Errorf(aniscrape.EINTERNAL, "read records dir: %v", err)
	}

	var (
		records     []*aniscrape.AnimeRecord
		unparseable int
	)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), s.codec.Ext()) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, 0, aniscrape.Errorf(aniscrape.EINTERNAL, "load records: %v", err)
		}
		data, err := os.ReadFile(filepath.Join(s.snap.RecordsDir(), entry.Name()))
		if err != nil {
			unparseable++
			continue
		}
		var rec aniscrape.AnimeRecord
		if err := s.codec.Unmarshal(data, &rec); err != nil {
			unparseable++
			continue
		}
		records = append(records, &rec)
	}
	return records, unparseable, nil
}

// WriteIndex writes idx at the snapshot root.
func (s *Store) WriteIndex(ctx context.Context, idx *aniscrape.Index) error {
	return s.writeArtifact(indexFileName, idx)
}

// WriteStatistics writes stats at the snapshot root.
func (s *Store) WriteStatistics(ctx context.Context, stats *aniscrape.Statistics) error {
	return s.writeArtifact(statisticsFileName, stats)
}

func (s *Store) writeArtifact(name string, v any) error {
	data, err := s.codec.Marshal(v)
	if err != nil {
		return aniscrape.Errorf(aniscrape.EINTERNAL, "marshal %s: %v", name, err)
	}
	if err := os.WriteFile(filepath.Join(s.snap.Dir(), name), data, 0o644); err != nil {
		return aniscrape.Errorf(aniscrape.EINTERNAL, "write %s: %v", name, err)
	}
	return nil
}

func (s *Store) recordFileName(rec *aniscrape.AnimeRecord) string {
	return fmt.Sprintf("%s_%s%s", sanitizeTitle(rec.Title), urlHash(rec.URL), s.codec.Ext())
}

// sanitizeTitle turns a display title into a filesystem-safe name:
// characters unsafe on common filesystems are dropped, whitespace runs
// collapse to a single underscore, and the result is capped at
// maxTitleLen runes so a multi-byte title never truncates mid-rune.
// An empty result becomes "unnamed".
func sanitizeTitle(title string) string {
	clean := unsafeCharsRe.ReplaceAllString(title, "")
	clean = whitespaceRe.ReplaceAllString(strings.TrimSpace(clean), "_")
	if runes := []rune(clean); len(runes) > maxTitleLen {
		clean = string(runes[:maxTitleLen])
	}
	if clean == "" {
		return "unnamed"
	}
	return clean
}

// urlHash returns a short stable hash of url, keeping file names
// unique when two entries share a sanitized title.
func urlHash(url string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(url))
}
