package render

import (
	"os"
	"strconv"

	"golang.org/x/term"

	"github.com/theirongolddev/cstat/internal/config"
)

// Tier is the responsive rendering mode, recomputed from terminal width on
// every invocation.
type Tier int

const (
	// TierUltra drops bars and most separators (<80 columns by default).
	TierUltra Tier = iota
	// TierCompact uses 6-unit bars (80-119 columns).
	TierCompact
	// TierFull uses 10-unit bars (120+ columns).
	TierFull
)

// barWidth returns the bar width for the tier; Ultra renders no bars.
func (t Tier) barWidth() int {
	if t == TierFull {
		return 10
	}
	return 6
}

// TierFor selects the tier for a column count.
func TierFor(th config.Thresholds, cols int) Tier {
	switch {
	case cols < th.UltraCols:
		return TierUltra
	case cols < th.CompactCols:
		return TierCompact
	default:
		return TierFull
	}
}

// DetectWidth finds the terminal column count: STATUSLINE_COLS override
// first, then COLUMNS, then the controlling terminal itself (stdout is
// usually a pipe when a statusline runs), then a safe 80.
func DetectWidth() int {
	for _, env := range []string{"STATUSLINE_COLS", "COLUMNS"} {
		if v := os.Getenv(env); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				return n
			}
		}
	}

	if tty, err := os.Open("/dev/tty"); err == nil {
		defer tty.Close()
		if w, _, err := term.GetSize(int(tty.Fd())); err == nil && w > 0 {
			return w
		}
	}

	return 80
}
