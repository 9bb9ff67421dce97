package fs

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"aniscrape"
)

// Ensure Progress implements aniscrape.ProgressStore at compile time.
var _ aniscrape.ProgressStore = (*Progress)(nil)

const progressFileName = "progress.json"

// Progress is a file-backed set of completed entry URLs, stored as a
// JSON array inside the current snapshot generation. The file is
// rewritten atomically on every Add so an interrupted run always
// leaves it readable.
type Progress struct {
	path   string
	logger *slog.Logger

	mu   sync.Mutex
	done map[string]struct{}
}

// OpenProgress loads the progress file inside snap, creating an empty
// set if the file does not exist. A file that exists but cannot be
// parsed is treated as empty with a warning: losing resume state is
// recoverable, refusing to run is not.
func OpenProgress(snap *Snapshot, logger *slog.Logger) (*Progress, error) {
	p := &Progress{
		path:   filepath.Join(snap.Dir(), progressFileName),
		logger: logger,
		done:   make(map[string]struct{}),
	}

	data, err := os.ReadFile(p.path)
	if os.IsNotExist(err) {
		return p, nil
	}
	if err != nil {
		return nil, aniscrape.Errorf(aniscrape.EINTERNAL, "read progress: %v", err)
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		p.logger.Warn("progress file unreadable, starting fresh", "path", p.path, "error", err)
		return p, nil
	}
	for _, id := range ids {
		p.done[id] = struct{}{}
	}
	return p, nil
}

// Contains reports whether id has already been completed.
func (p *Progress) Contains(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.done[id]
	return ok
}

// Add records id as completed and flushes the set to disk.
func (p *Progress) Add(id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.done[id]; ok {
		return nil
	}
	p.done[id] = struct{}{}
	if err := p.flushLocked(); err != nil {
		delete(p.done, id)
		return err
	}
	return nil
}

// Len returns the number of completed entries.
func (p *Progress) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.done)
}

func (p *Progress) flushLocked() error {
	ids := make([]string, 0, len(p.done))
	for id := range p.done {
		ids = append(ids, id)
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return aniscrape.Errorf(aniscrape.EINTERNAL, "marshal progress: %v", err)
	}

	tmp := p.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return aniscrape.Errorf(aniscrape.EINTERNAL, "write progress: %v", err)
	}
	if err := os.Rename(tmp, p.path); err != nil {
		return aniscrape.Errorf(aniscrape.EINTERNAL, "write progress: %v", err)
	}
	return nil
}
