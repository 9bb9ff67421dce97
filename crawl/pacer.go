// Package crawl implements the multi-stage catalog crawl: list
// discovery across paginated partitions, a bounded entry pipeline that
// fans out over discovered anime, a nested episode pipeline per entry,
// and the index builder that summarizes persisted records.
package crawl

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer spaces requests out by a fixed minimum delay. A zero delay
// disables pacing entirely.
type Pacer struct {
	limiter *rate.Limiter
}

// NewPacer creates a pacer allowing one request per delay.
func NewPacer(delay time.Duration) *Pacer {
	if delay <= 0 {
		return &Pacer{}
	}
	return &Pacer{limiter: rate.NewLimiter(rate.Every(delay), 1)}
}

// Wait blocks until the next request is allowed or ctx is done.
func (p *Pacer) Wait(ctx context.Context) error {
	if p == nil || p.limiter == nil {
		return nil
	}
	return p.limiter.Wait(ctx)
}
