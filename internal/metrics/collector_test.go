package metrics

import (
	"sync"
	"testing"
	"time"
)

func TestCollectorRecord(t *testing.T) {
	c := NewCollector()

	c.Record(OpEmbedding, 100*time.Millisecond)
	c.Record(OpEmbedding, 300*time.Millisecond)
	c.Record(OpDBStore, 50*time.Millisecond)

	snap := c.Snapshot()

	emb := snap[OpEmbedding]
	if emb.Count != 2 {
		t.Errorf("embedding count = %d, want 2", emb.Count)
	}
	if emb.Average() != 200*time.Millisecond {
		t.Errorf("embedding average = %v, want 200ms", emb.Average())
	}
	if emb.MinDuration != 100*time.Millisecond || emb.MaxDuration != 300*time.Millisecond {
		t.Errorf("embedding min/max = %v/%v", emb.MinDuration, emb.MaxDuration)
	}
	if snap[OpDBStore].Count != 1 {
		t.Errorf("db_store count = %d, want 1", snap[OpDBStore].Count)
	}
}

func TestCollectorConcurrent(t *testing.T) {
	c := NewCollector()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Record(OpTranscription, time.Millisecond)
		}()
	}
	wg.Wait()

	if got := c.Snapshot()[OpTranscription].Count; got != 50 {
		t.Errorf("count = %d, want 50", got)
	}
}

func TestStatsAverageEmpty(t *testing.T) {
	var s Stats
	if s.Average() != 0 {
		t.Errorf("empty average = %v, want 0", s.Average())
	}
}
