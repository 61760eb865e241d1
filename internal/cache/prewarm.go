package cache

import (
	"context"
	"sync"
	"time"
)

const (
	// prewarmWait bounds each cold-start fetch.
	prewarmWait = 30 * time.Second

	// prewarmGrace bounds the overall wait on fetches that ignore their
	// context; the invocation must render eventually no matter what.
	prewarmGrace = 5 * time.Second
)

// Prewarm fans out first-time refreshes for resources that have no cached
// payload at all. Fresh or merely stale resources are skipped; Ensure covers
// those. Per-job failures and timeouts are swallowed, never propagated: a
// cold start renders placeholders rather than failing.
func (s *Store) Prewarm(resources []Resource) {
	var jobs []Resource
	for _, r := range resources {
		if s.Stale(r.Key, r.TTL) && !s.Exists(r.Key) {
			jobs = append(jobs, r)
		}
	}
	if len(jobs) == 0 {
		return
	}

	var wg sync.WaitGroup
	for _, r := range jobs {
		wg.Add(1)
		go func(r Resource) {
			defer wg.Done()
			lh := s.tryLock(r.Key)
			if lh == nil {
				return
			}
			defer lh.release()

			ctx, cancel := context.WithTimeout(context.Background(), prewarmWait)
			defer cancel()
			r.Fetch(ctx)
		}(r)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(prewarmWait + prewarmGrace):
	}
}
