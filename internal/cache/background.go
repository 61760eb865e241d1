package cache

import (
	"context"
	"os"
	"strconv"
	"time"
)

const (
	// debounceWindow suppresses a second background attempt while one
	// started less than this long ago may still be running.
	debounceWindow = 60 * time.Second

	// BackgroundDeadline is the hard wall-clock budget for a detached
	// refresh. A hung external call must never accumulate orphans.
	BackgroundDeadline = 45 * time.Second

	// killGrace is how long past the deadline the worker waits for the
	// cooperative path before exiting unconditionally.
	killGrace = 5 * time.Second
)

// startBackground hands a stale resource to the detached worker. The marker
// file both debounces and records the attempt; the worker removes it on any
// outcome, and its age bounds how long a crashed worker can suppress retries.
func (s *Store) startBackground(k Key) {
	if s.spawn == nil {
		return
	}

	marker := s.markerPath(k)
	if fi, err := os.Stat(marker); err == nil && time.Since(fi.ModTime()) < debounceWindow {
		return
	}
	if err := os.WriteFile(marker, []byte(strconv.Itoa(os.Getpid())), 0o644); err != nil {
		return
	}
	if err := s.spawn(k); err != nil {
		os.Remove(marker)
	}
}

// RunRefresh is the detached worker body: run the fetch under the hard
// deadline, then clear the debounce marker. The fetch context carries the
// deadline for the cooperative path; the timer exit is the non-cooperative
// backstop for a fetch that ignores its context.
func (s *Store) RunRefresh(k Key, fetch Fetch) {
	marker := s.markerPath(k)

	kill := time.AfterFunc(BackgroundDeadline+killGrace, func() {
		os.Remove(marker)
		os.Exit(0)
	})
	defer kill.Stop()
	defer os.Remove(marker)

	ctx, cancel := context.WithTimeout(context.Background(), BackgroundDeadline)
	defer cancel()
	fetch(ctx)
}
