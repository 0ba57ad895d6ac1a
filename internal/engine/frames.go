package engine

import (
	"context"
	"time"
)

// FrameSource delivers display refresh timestamps. Timestamps are measured
// from an arbitrary origin and never decrease. Next blocks until the next
// refresh and returns false once the source is exhausted or ctx is done.
type FrameSource interface {
	Next(ctx context.Context) (time.Duration, bool)
}

// TickerSource paces frames with a wall clock ticker.
type TickerSource struct {
	ticker *time.Ticker
	start  time.Time
}

func NewTickerSource(interval time.Duration) *TickerSource {
	return &TickerSource{ticker: time.NewTicker(interval), start: time.Now()}
}

func (t *TickerSource) Next(ctx context.Context) (time.Duration, bool) {
	select {
	case <-ctx.Done():
		return 0, false
	case now := <-t.ticker.C:
		return now.Sub(t.start), true
	}
}

func (t *TickerSource) Stop() {
	t.ticker.Stop()
}

// SyntheticFrames replays a fixed cadence without waiting, for headless
// simulation and tests.
type SyntheticFrames struct {
	Start time.Duration
	Step  time.Duration
	Count int

	n int
}

func (s *SyntheticFrames) Next(ctx context.Context) (time.Duration, bool) {
	if ctx.Err() != nil || s.n >= s.Count {
		return 0, false
	}
	now := s.Start + time.Duration(s.n)*s.Step
	s.n++
	return now, true
}
