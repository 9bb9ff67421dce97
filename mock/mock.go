// Package mock provides function-field test doubles for the domain
// interfaces. Tests set only the functions they care about.
package mock

import (
	"context"
	"sync"

	"aniscrape"
)

var _ aniscrape.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of aniscrape.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

var _ aniscrape.Sessions = (*Sessions)(nil)

// Sessions is a mock implementation of aniscrape.Sessions. When
// NewSessionFn is nil every session shares the single Fetcher.
type Sessions struct {
	NewSessionFn func() aniscrape.Fetcher
	Fetcher      *Fetcher
}

func (s *Sessions) NewSession() aniscrape.Fetcher {
	if s.NewSessionFn != nil {
		return s.NewSessionFn()
	}
	return s.Fetcher
}

var _ aniscrape.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of aniscrape.Extractor.
type Extractor struct {
	ExtractAnimeListFn    func(html, baseURL string) []aniscrape.Anime
	ExtractAnimeDetailFn  func(html, baseURL string) *aniscrape.AnimeDetail
	ExtractVideoSourcesFn func(html, baseURL string) []string
	MaxPageNumberFn       func(html string) int
}

func (e *Extractor) ExtractAnimeList(html, baseURL string) []aniscrape.Anime {
	return e.ExtractAnimeListFn(html, baseURL)
}

func (e *Extractor) ExtractAnimeDetail(html, baseURL string) *aniscrape.AnimeDetail {
	return e.ExtractAnimeDetailFn(html, baseURL)
}

func (e *Extractor) ExtractVideoSources(html, baseURL string) []string {
	return e.ExtractVideoSourcesFn(html, baseURL)
}

func (e *Extractor) MaxPageNumber(html string) int {
	if e.MaxPageNumberFn == nil {
		return 1
	}
	return e.MaxPageNumberFn(html)
}

var _ aniscrape.RecordStore = (*RecordStore)(nil)

// RecordStore is a mock implementation of aniscrape.RecordStore. When
// SaveRecordFn is nil, saved records accumulate in Records under a
// mutex so concurrent pipeline tests can inspect them.
type RecordStore struct {
	SaveRecordFn      func(ctx context.Context, rec *aniscrape.AnimeRecord) error
	LoadRecordsFn     func(ctx context.Context) ([]*aniscrape.AnimeRecord, int, error)
	WriteIndexFn      func(ctx context.Context, idx *aniscrape.Index) error
	WriteStatisticsFn func(ctx context.Context, stats *aniscrape.Statistics) error

	mu      sync.Mutex
	Records []*aniscrape.AnimeRecord
}

func (s *RecordStore) SaveRecord(ctx context.Context, rec *aniscrape.AnimeRecord) error {
	if s.SaveRecordFn != nil {
		return s.SaveRecordFn(ctx, rec)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Records = append(s.Records, rec)
	return nil
}

func (s *RecordStore) LoadRecords(ctx context.Context) ([]*aniscrape.AnimeRecord, int, error) {
	if s.LoadRecordsFn != nil {
		return s.LoadRecordsFn(ctx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*aniscrape.AnimeRecord(nil), s.Records...), 0, nil
}

func (s *RecordStore) WriteIndex(ctx context.Context, idx *aniscrape.Index) error {
	return s.WriteIndexFn(ctx, idx)
}

func (s *RecordStore) WriteStatistics(ctx context.Context, stats *aniscrape.Statistics) error {
	return s.WriteStatisticsFn(ctx, stats)
}

var _ aniscrape.ProgressStore = (*ProgressStore)(nil)

// ProgressStore is a mock implementation of aniscrape.ProgressStore.
// With no functions set it behaves as an in-memory set.
type ProgressStore struct {
	ContainsFn func(id string) bool
	AddFn      func(id string) error

	mu   sync.Mutex
	done map[string]struct{}
}

func (p *ProgressStore) Contains(id string) bool {
	if p.ContainsFn != nil {
		return p.ContainsFn(id)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.done[id]
	return ok
}

func (p *ProgressStore) Add(id string) error {
	if p.AddFn != nil {
		return p.AddFn(id)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.done == nil {
		p.done = make(map[string]struct{})
	}
	p.done[id] = struct{}{}
	return nil
}

func (p *ProgressStore) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.done)
}
