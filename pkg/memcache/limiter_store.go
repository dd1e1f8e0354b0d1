package mem

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// LimiterStore hands out one token bucket per client key. Buckets idle for
// longer than the ttl are dropped by Sweep.
type LimiterStore interface {
	Allow(key string) bool
	Sweep() int
	Len() int
}

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type limiters struct {
	mu    sync.Mutex
	data  map[string]*entry
	limit rate.Limit
	burst int
	ttl   time.Duration
	now   func() time.Time
}

func NewLimiterStore(rps float64, burst int, ttl time.Duration) LimiterStore {
	return &limiters{
		data:  make(map[string]*entry),
		limit: rate.Limit(rps),
		burst: burst,
		ttl:   ttl,
		now:   time.Now,
	}
}

func (s *limiters) Allow(key string) bool {
	s.mu.Lock()
	now := s.now()
	e, ok := s.data[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(s.limit, s.burst)}
		s.data[key] = e
	}
	e.lastSeen = now
	s.mu.Unlock()

	return e.limiter.AllowN(now, 1)
}

func (s *limiters) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for key, e := range s.data {
		if e.lastSeen.Before(cutoff) {
			delete(s.data, key)
			removed++
		}
	}
	return removed
}

func (s *limiters) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}
