package arena

import (
	"sync"
	"time"
)

// Stats accumulates detector timings. Observe matches the
// collision.Detector OnMeasure signature.
type Stats struct {
	mu    sync.Mutex
	calls int
	hits  int
	total time.Duration
	worst time.Duration
}

// Observe records one hit test
func (s *Stats) Observe(elapsed time.Duration, hit bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++
	if hit {
		s.hits++
	}
	s.total += elapsed
	s.worst = max(s.worst, elapsed)
}

// Snapshot returns call count, hit count, mean and worst duration
func (s *Stats) Snapshot() (calls, hits int, mean, worst time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.calls > 0 {
		mean = s.total / time.Duration(s.calls)
	}
	return s.calls, s.hits, mean, s.worst
}

// Reset clears all counters
func (s *Stats) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls, s.hits = 0, 0
	s.total, s.worst = 0, 0
}
