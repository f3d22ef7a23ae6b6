package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlightCollapsesConcurrentCalls(t *testing.T) {
	var g SingleFlight
	var executions atomic.Int32

	const callers = 16
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(callers)

	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			<-start
			val, err, _ := g.Do("live-matches", func() (any, error) {
				executions.Add(1)
				time.Sleep(20 * time.Millisecond)
				return "fixture list", nil
			})
			if err != nil {
				t.Errorf("Do returned error: %v", err)
			}
			if val != "fixture list" {
				t.Errorf("Do returned %v, want shared result", val)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := executions.Load(); got != 1 {
		t.Fatalf("function executed %d times, want 1", got)
	}
}
