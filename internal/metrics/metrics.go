package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Add(n uint64) {
	atomic.AddUint64(&c.value, n)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// RequestStats tracks request outcomes for the HTTP layer.
type RequestStats struct {
	Total        Counter
	ClientErrors Counter
	ServerErrors Counter
}

func (s *RequestStats) Observe(status int) {
	s.Total.Inc()
	switch {
	case status >= 500:
		s.ServerErrors.Inc()
	case status >= 400:
		s.ClientErrors.Inc()
	}
}
