// Package render builds the two status lines. Everything here is a pure
// function of its inputs: cache payloads arrive pre-fetched as raw bytes and
// the clock is injected, so output is byte-for-byte reproducible.
package render

import "github.com/theirongolddev/cstat/internal/config"

// ANSI SGR escapes. Raw constants rather than a styling library: the two
// output lines must be deterministic regardless of the terminal profile the
// invoking process detects.
const (
	ansiReset  = "\x1b[0m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiRed    = "\x1b[31m"
	ansiDim    = "\x1b[2m"
	ansiBlink  = "\x1b[5m"
)

// ColorPct colorizes text by utilization percentage: green below 60, yellow
// from 60, red from 80, and red+blink from 90.
func ColorPct(pct int, text string) string {
	switch {
	case pct >= 90:
		return ansiBlink + ansiRed + text + ansiReset
	case pct >= 80:
		return ansiRed + text + ansiReset
	case pct >= 60:
		return ansiYellow + text + ansiReset
	default:
		return ansiGreen + text + ansiReset
	}
}

// ColorCost colorizes text by cost against the warn/critical thresholds.
// Below warn the text passes through unstyled.
func ColorCost(t config.Thresholds, cost float64, text string) string {
	switch {
	case cost >= t.CostCrit:
		return ansiRed + text + ansiReset
	case cost >= t.CostWarn:
		return ansiYellow + text + ansiReset
	default:
		return text
	}
}

// Dim renders text in the terminal's faint style.
func Dim(text string) string {
	return ansiDim + text + ansiReset
}

// Hyperlink wraps text in an OSC 8 clickable link (iTerm2, Kitty, WezTerm).
func Hyperlink(url, text string) string {
	return "\x1b]8;;" + url + "\x1b\\" + text + "\x1b]8;;\x1b\\"
}
