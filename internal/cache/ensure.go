package cache

import (
	"context"
	"time"
)

// Fetch tries to produce a fresh payload for its resource, writing it to the
// store on success. It reports only whether it wrote; every failure mode
// (network, subprocess, timeout, bad output) is the same false. The
// orchestration above is branch-free with respect to error kinds.
type Fetch func(ctx context.Context) bool

// Resource binds a key to its TTL and fetch function.
type Resource struct {
	Key        Key
	TTL        time.Duration
	Fetch      Fetch
	Background bool
}

// Ensure returns the best available payload for a resource, refreshing when
// stale under the single-flight lock:
//
//   - fresh cache: return it, no lock taken
//   - lock contended: someone else is refreshing, return whatever is cached
//   - lock held, background allowed and a prior payload exists: release the
//     lock, hand off to the detached worker, return the stale payload now
//   - otherwise: refresh synchronously, release, return the fresh read
//
// First runs and small-TTL resources block briefly so there is anything to
// show; resources with some data never make the render wait on a fetch.
func (s *Store) Ensure(ctx context.Context, r Resource) []byte {
	if !s.Stale(r.Key, r.TTL) {
		return s.Read(r.Key)
	}

	lh := s.tryLock(r.Key)
	if lh == nil {
		return s.Read(r.Key)
	}

	if r.Background && s.Exists(r.Key) {
		lh.release()
		s.startBackground(r.Key)
	} else {
		func() {
			defer lh.release()
			r.Fetch(ctx)
		}()
	}

	return s.Read(r.Key)
}
