// Package metrics collects in-process operation timings. Counters are
// process-local and reset on restart.
package metrics

import (
	"sync"
	"time"
)

// Operation identifies a timed pipeline operation.
type Operation string

const (
	OpTranscription Operation = "transcription"
	OpEmbedding     Operation = "embedding"
	OpDBStore       Operation = "db_store"
	OpDBSearch      Operation = "db_search"
	OpGeneration    Operation = "generation"
)

// Stats holds aggregate timings for one operation.
type Stats struct {
	Count         int64
	TotalDuration time.Duration
	MinDuration   time.Duration
	MaxDuration   time.Duration
}

// Average returns the mean duration, or zero when nothing was recorded.
func (s Stats) Average() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.TotalDuration / time.Duration(s.Count)
}

// Collector aggregates operation timings. Safe for concurrent use.
type Collector struct {
	mu    sync.Mutex
	stats map[Operation]*Stats
}

func NewCollector() *Collector {
	return &Collector{stats: make(map[Operation]*Stats)}
}

// Record adds one timing sample for op.
func (c *Collector) Record(op Operation, d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.stats[op]
	if !ok {
		s = &Stats{MinDuration: d, MaxDuration: d}
		c.stats[op] = s
	}
	s.Count++
	s.TotalDuration += d
	if d < s.MinDuration {
		s.MinDuration = d
	}
	if d > s.MaxDuration {
		s.MaxDuration = d
	}
}

// Snapshot returns a copy of all recorded stats.
func (c *Collector) Snapshot() map[Operation]Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[Operation]Stats, len(c.stats))
	for op, s := range c.stats {
		out[op] = *s
	}
	return out
}
