// Package cache implements the shared on-disk cache that concurrent
// statusline invocations race on: mtime-TTL staleness, advisory-locked
// single-flight refresh, and debounced detached background refresh.
//
// All state is plain files under one directory so that any process, in any
// runtime, can reason about it: `<key>.json` payloads replaced by atomic
// rename, `<key>.lock` flock paths, and `<key>.bg` debounce markers.
package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tidwall/gjson"
)

// Key names one of the three cached resources.
type Key string

// The well-known resource keys.
const (
	KeyLimits  Key = "limits"
	KeyCcusage Key = "ccusage"
	KeyPricing Key = "pricing"
)

// Store manages the cache directory for one invocation. It carries no
// cross-invocation state; the filesystem is the only shared state.
type Store struct {
	dir string

	// spawn launches the detached background-refresh worker for a key.
	// Wired by cmd to re-exec the binary; injectable in tests.
	spawn func(Key) error
}

// NewStore opens (creating if needed) the cache directory.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// SetSpawn wires the detached worker launcher used for background refreshes.
func (s *Store) SetSpawn(fn func(Key) error) { s.spawn = fn }

// Dir returns the cache directory path.
func (s *Store) Dir() string { return s.dir }

func (s *Store) payloadPath(k Key) string { return filepath.Join(s.dir, string(k)+".json") }
func (s *Store) lockPath(k Key) string    { return filepath.Join(s.dir, string(k)+".lock") }
func (s *Store) markerPath(k Key) string  { return filepath.Join(s.dir, string(k)+".bg") }

// Stale reports whether the cached payload is missing or older than ttl.
func (s *Store) Stale(k Key, ttl time.Duration) bool {
	fi, err := os.Stat(s.payloadPath(k))
	if err != nil {
		return true
	}
	return time.Since(fi.ModTime()) > ttl
}

// Exists reports whether any cached payload is present, fresh or not.
func (s *Store) Exists(k Key) bool {
	_, err := os.Stat(s.payloadPath(k))
	return err == nil
}

// Read returns the last successful payload, or nil. Missing, empty, and
// unparseable files are all the same answer: no data.
func (s *Store) Read(k Key) []byte {
	data, err := os.ReadFile(s.payloadPath(k))
	if err != nil || len(data) == 0 {
		return nil
	}
	if !gjson.ValidBytes(data) {
		return nil
	}
	return data
}

// Write atomically replaces the payload: stage to a temp file in the same
// directory, then rename over the target. Readers never see a torn write.
func (s *Store) Write(k Key, data []byte) error {
	tmp, err := os.CreateTemp(s.dir, string(k)+".*.tmp")
	if err != nil {
		return fmt.Errorf("staging cache write: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing cache payload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing cache payload: %w", err)
	}
	if err := os.Rename(tmpPath, s.payloadPath(k)); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing cache payload: %w", err)
	}
	return nil
}
