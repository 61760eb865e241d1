package render

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatTokens abbreviates a token count: 999, 92k, 1.9M, 21M. Thousands use
// floor division with no decimals; millions below 10M keep one significant
// decimal with trailing zeroes stripped.
func FormatTokens(t int64) string {
	if t < 0 {
		t = 0
	}
	switch {
	case t >= 10_000_000:
		return strconv.FormatInt(t/1_000_000, 10) + "M"
	case t >= 1_000_000:
		s := fmt.Sprintf("%.1f", float64(t)/1_000_000)
		s = strings.TrimRight(s, "0")
		s = strings.TrimRight(s, ".")
		return s + "M"
	case t >= 1000:
		return strconv.FormatInt(t/1000, 10) + "k"
	default:
		return strconv.FormatInt(t, 10)
	}
}

// Bar renders a fixed-width progress bar. Any nonzero percentage shows at
// least one filled unit so small usage never reads as zero.
func Bar(pct int, filled, empty string, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	f := pct * width / 100
	if pct > 0 && f == 0 {
		f = 1
	}
	return strings.Repeat(filled, f) + strings.Repeat(empty, width-f)
}

// Pie picks the five-bucket utilization icon. Buckets are closed above:
// (0,20] is the emptiest non-zero reading, and 0 itself maps to the empty
// icon.
func Pie(sym [5]string, pct int) string {
	switch {
	case pct <= 20:
		return sym[0]
	case pct <= 40:
		return sym[1]
	case pct <= 60:
		return sym[2]
	case pct <= 80:
		return sym[3]
	default:
		return sym[4]
	}
}

// sparkGlyphs are the eight block-element levels, lowest first.
var sparkGlyphs = []rune("▁▂▃▄▅▆▇█")

// Sparkline renders a min-max normalized series. An empty or all-zero series
// yields empty output rather than a flat bar that would suggest activity.
func Sparkline(values []float64) string {
	any := false
	for _, v := range values {
		if v != 0 {
			any = true
			break
		}
	}
	if !any {
		return ""
	}

	mn, mx := values[0], values[0]
	for _, v := range values[1:] {
		if v < mn {
			mn = v
		}
		if v > mx {
			mx = v
		}
	}
	rng := mx - mn
	if rng == 0 {
		rng = 1
	}

	var b strings.Builder
	b.Grow(len(values) * 3)
	for _, v := range values {
		lvl := int((v - mn) / rng * 7)
		if lvl > 7 {
			lvl = 7
		}
		b.WriteRune(sparkGlyphs[lvl])
	}
	return b.String()
}

// FormatDuration abbreviates a millisecond duration: 2h14m, or 14m under an
// hour.
func FormatDuration(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	secs := ms / 1000
	h := secs / 3600
	m := secs % 3600 / 60
	if h > 0 {
		return fmt.Sprintf("%dh%02dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
