package metrics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCounter(t *testing.T) {
	var c Counter
	c.Inc()
	c.Add(4)
	assert.Equal(t, uint64(5), c.Load())
}

func TestCounterConcurrent(t *testing.T) {
	var c Counter
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Inc()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(5000), c.Load())
}

func TestRequestStats(t *testing.T) {
	var s RequestStats
	s.Observe(200)
	s.Observe(404)
	s.Observe(500)
	s.Observe(201)

	assert.Equal(t, uint64(4), s.Total.Load())
	assert.Equal(t, uint64(1), s.ClientErrors.Load())
	assert.Equal(t, uint64(1), s.ServerErrors.Load())
}
