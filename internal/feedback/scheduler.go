package feedback

import (
	"context"
	"sync"
	"time"
)

// Scheduler runs fire-and-forget callbacks after a delay. Cancel drops
// everything still pending; completed callbacks are never reported back.
type Scheduler struct {
	mu     sync.Mutex
	timers map[*time.Timer]struct{}
	closed bool
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{timers: make(map[*time.Timer]struct{})}
}

// After schedules fn to run once d has elapsed.
func (s *Scheduler) After(d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	var t *time.Timer
	t = time.AfterFunc(d, func() {
		s.mu.Lock()
		_, live := s.timers[t]
		delete(s.timers, t)
		s.mu.Unlock()
		if live {
			fn()
		}
	})
	s.timers[t] = struct{}{}
}

// Pending returns the number of callbacks that have not fired yet.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Wait blocks until every pending callback has fired or ctx is done.
func (s *Scheduler) Wait(ctx context.Context) error {
	ticker := time.NewTicker(5 * time.Millisecond)
	defer ticker.Stop()
	for s.Pending() > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}

// Cancel stops all pending callbacks.
func (s *Scheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for t := range s.timers {
		t.Stop()
	}
	s.timers = make(map[*time.Timer]struct{})
}

// Close cancels pending callbacks and rejects new ones.
func (s *Scheduler) Close() {
	s.Cancel()
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}
