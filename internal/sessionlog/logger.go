// Package sessionlog keeps the append-only usage history: one compact JSON
// line per logged invocation, throttled to once a minute and rotated by size.
package sessionlog

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/theirongolddev/cstat/internal/snapshot"
)

const (
	logName    = "sessions.jsonl"
	markerName = "session_last_ts.txt"

	// throttle is the minimum spacing between logged records.
	throttle = 60 * time.Second

	// rotateBytes triggers rotation; keepLines is what rotation retains.
	rotateBytes = 500_000
	keepLines   = 5000
)

// Record is one logged invocation. Field names are single letters to keep
// the log compact; it can grow to thousands of lines.
type Record struct {
	TS      string  `json:"ts"`
	Model   string  `json:"m"`
	Cost    float64 `json:"c"`
	Tokens  int64   `json:"t"`
	Dur     int64   `json:"d"`
	Project string  `json:"p"`
}

// Logger appends session records under the cache directory.
type Logger struct {
	dir string
}

// New returns a logger writing under dir.
func New(dir string) *Logger {
	return &Logger{dir: dir}
}

// Path returns the log file location, for the read-side summarizer.
func (l *Logger) Path() string { return l.logPath() }

func (l *Logger) logPath() string    { return filepath.Join(l.dir, logName) }
func (l *Logger) markerPath() string { return filepath.Join(l.dir, markerName) }

// Record appends one entry for the snapshot unless one was logged less than
// a minute ago. All failures are swallowed: history is best-effort and must
// never affect the render that precedes it.
func (l *Logger) Record(snap snapshot.Snapshot, now time.Time) {
	if l.throttled(now) {
		return
	}

	project := snap.Workspace.CurrentDir
	if project == "" {
		project, _ = os.Getwd()
	}

	rec := Record{
		TS:      now.UTC().Format("2006-01-02T15:04:05Z"),
		Model:   snapshot.Family(snap.Model.ID),
		Cost:    roundCents(snap.Cost.TotalCostUSD),
		Tokens:  snap.ContextWindow.TotalInputTokens + snap.ContextWindow.TotalOutputTokens,
		Dur:     snap.Cost.TotalDurationMs,
		Project: filepath.Base(project),
	}
	line, err := json.Marshal(rec)
	if err != nil {
		return
	}

	f, err := os.OpenFile(l.logPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	_, werr := f.Write(append(line, '\n'))
	f.Close()
	if werr != nil {
		return
	}

	_ = os.WriteFile(l.markerPath(), []byte(strconv.FormatInt(now.Unix(), 10)), 0o644)
	l.rotate()
}

// throttled reports whether a record was written within the last minute.
func (l *Logger) throttled(now time.Time) bool {
	data, err := os.ReadFile(l.markerPath())
	if err != nil {
		return false
	}
	last, err := strconv.ParseFloat(string(bytes.TrimSpace(data)), 64)
	if err != nil {
		return false
	}
	return now.Unix()-int64(last) < int64(throttle/time.Second)
}

// rotate trims the log to its most recent keepLines entries once it grows
// past rotateBytes.
func (l *Logger) rotate() {
	fi, err := os.Stat(l.logPath())
	if err != nil || fi.Size() <= rotateBytes {
		return
	}

	data, err := os.ReadFile(l.logPath())
	if err != nil {
		return
	}
	lines := bytes.Split(bytes.TrimRight(data, "\n"), []byte("\n"))
	if len(lines) <= keepLines {
		return
	}

	kept := bytes.Join(lines[len(lines)-keepLines:], []byte("\n"))
	kept = append(kept, '\n')
	_ = os.WriteFile(l.logPath(), kept, 0o644)
}

func roundCents(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
