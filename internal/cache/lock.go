package cache

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// lockOrphanAge is how old a lock path must be before a new contender may
// unlink it. A crashed holder must not starve the resource forever.
const lockOrphanAge = 120 * time.Second

// lockHandle is a held advisory lock. It is a liveness token, not data:
// ownership is the flock on the open descriptor, the path just makes it
// visible to other processes.
type lockHandle struct {
	f    *os.File
	path string
}

// tryLock attempts a non-blocking exclusive flock on the key's lock path.
// Returns nil when another process holds it; that is contention, not an
// error. An orphaned lock path (mtime older than lockOrphanAge) is unlinked
// before the attempt.
func (s *Store) tryLock(k Key) *lockHandle {
	path := s.lockPath(k)

	if fi, err := os.Stat(path); err == nil && time.Since(fi.ModTime()) > lockOrphanAge {
		os.Remove(path)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil
	}
	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		f.Close()
		return nil
	}
	return &lockHandle{f: f, path: path}
}

// release unlocks and removes the lock path. Failures are swallowed: orphan
// reclamation is the backstop for anything left behind.
func (h *lockHandle) release() {
	if h == nil || h.f == nil {
		return
	}
	_ = unix.Flock(int(h.f.Fd()), unix.LOCK_UN)
	h.f.Close()
	os.Remove(h.path)
	h.f = nil
}
