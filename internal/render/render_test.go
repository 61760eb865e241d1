package render

import (
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/cstat/internal/config"
	"github.com/theirongolddev/cstat/internal/snapshot"
)

func testSnapshot() snapshot.Snapshot {
	return snapshot.Snapshot{
		Model: snapshot.Model{ID: "claude-opus-4-6-20250101", DisplayName: "Opus"},
		ContextWindow: snapshot.ContextWindow{
			Size: 200_000,
			CurrentUsage: snapshot.Usage{
				InputTokens:              50_000,
				CacheCreationInputTokens: 20_000,
				CacheReadInputTokens:     5_000,
			},
		},
		Cost: snapshot.Cost{TotalCostUSD: 0.25, TotalDurationMs: 125_000},
	}
}

func testNow(t *testing.T) time.Time {
	t.Helper()
	now, err := time.Parse(time.RFC3339, "2025-08-30T14:00:00Z")
	if err != nil {
		t.Fatal(err)
	}
	return now
}

func TestLine1_RemainingTokens(t *testing.T) {
	// 200k window, 33k buffer -> effective 167k; 75k used -> 92k remaining.
	line := Line1(config.Default(), Inputs{
		Snapshot: testSnapshot(),
		Tier:     TierFull,
		Now:      testNow(t),
	})

	if !strings.Contains(line, "92k▼") {
		t.Errorf("line1 = %q, want remaining abbreviation 92k▼", line)
	}
}

func TestLine1_ContextBarWidthPerTier(t *testing.T) {
	cfg := config.Default()
	snap := testSnapshot()
	now := testNow(t)

	// used 75000 over effective 167000 -> 44%.
	tests := []struct {
		name string
		tier Tier
		bar  string
	}{
		{"full has 10-unit bar", TierFull, "◆◆◆◆◇◇◇◇◇◇"},
		{"compact has 6-unit bar", TierCompact, "◆◆◇◇◇◇"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := Line1(cfg, Inputs{Snapshot: snap, Tier: tt.tier, Now: now})
			if !strings.Contains(line, tt.bar) {
				t.Errorf("line1 = %q, want bar %q", line, tt.bar)
			}
		})
	}

	t.Run("ultra has no bar glyphs", func(t *testing.T) {
		line := Line1(cfg, Inputs{Snapshot: snap, Tier: TierUltra, Now: now})
		if strings.ContainsAny(line, "◆◇") {
			t.Errorf("ultra line1 = %q, want no bar glyphs", line)
		}
	})
}

func TestLine1_ModelColoredByWeeklyLimit(t *testing.T) {
	cfg := config.Default()
	now := testNow(t)

	tests := []struct {
		name   string
		limits string
		want   string
	}{
		{
			"85% aggregate weekly is alert",
			`{"seven_day":{"utilization":85}}`,
			"\x1b[31mOpus 4.6\x1b[0m",
		},
		{
			"95% adds blink",
			`{"seven_day":{"utilization":95}}`,
			"\x1b[5m\x1b[31mOpus 4.6\x1b[0m",
		},
		{
			"45% stays ok",
			`{"seven_day":{"utilization":45}}`,
			"\x1b[32mOpus 4.6\x1b[0m",
		},
		{
			"model sub-limit preferred over aggregate",
			`{"seven_day":{"utilization":10},"seven_day_opus":{"utilization":85}}`,
			"\x1b[31mOpus 4.6\x1b[0m",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := Line1(cfg, Inputs{
				Snapshot: testSnapshot(),
				Tier:     TierFull,
				Limits:   []byte(tt.limits),
				Now:      now,
			})
			if !strings.Contains(line, tt.want) {
				t.Errorf("line1 = %q, want model colored as %q", line, tt.want)
			}
		})
	}
}

func TestLine1_NoLimitsLeavesModelUncolored(t *testing.T) {
	line := Line1(config.Default(), Inputs{
		Snapshot: testSnapshot(), Tier: TierFull, Now: testNow(t),
	})
	if !strings.Contains(line, "Opus 4.6 ") {
		t.Errorf("line1 = %q, want plain model label", line)
	}
}

func TestLine1_CostLinkAndColor(t *testing.T) {
	cfg := config.Default()
	snap := testSnapshot()
	now := testNow(t)

	snap.Cost.TotalCostUSD = 1.50 // over the critical threshold
	line := Line1(cfg, Inputs{Snapshot: snap, Tier: TierFull, Now: now})
	if !strings.Contains(line, "\x1b]8;;"+consoleUsageURL+"\x1b\\") {
		t.Errorf("line1 = %q, want OSC 8 link around cost", line)
	}
	if !strings.Contains(line, "\x1b[31m$1.50\x1b[0m") {
		t.Errorf("line1 = %q, want red cost", line)
	}

	snap.Cost.TotalCostUSD = 0.75 // warn band
	line = Line1(cfg, Inputs{Snapshot: snap, Tier: TierFull, Now: now})
	if !strings.Contains(line, "\x1b[33m$0.75\x1b[0m") {
		t.Errorf("line1 = %q, want yellow cost", line)
	}
}

func TestLine1_DurationOnlyWhenOverAMinute(t *testing.T) {
	cfg := config.Default()
	snap := testSnapshot()
	now := testNow(t)

	// The duration is the only dim span on line 1, so assert on the full
	// dim-wrapped token rather than the bare digits, which also appear
	// inside SGR escapes like \x1b[32m and \x1b[0m.
	line := Line1(cfg, Inputs{Snapshot: snap, Tier: TierFull, Now: now})
	if !strings.Contains(line, "\x1b[2m2m\x1b[0m") {
		t.Errorf("line1 = %q, want dim 2m duration", line)
	}

	snap.Cost.TotalDurationMs = 30_000
	line = Line1(cfg, Inputs{Snapshot: snap, Tier: TierFull, Now: now})
	if strings.Contains(line, "\x1b[2m") {
		t.Errorf("line1 = %q, want no duration under a minute", line)
	}
}

func TestLine1_EstimatesCostWhenSnapshotHasNone(t *testing.T) {
	snap := testSnapshot()
	snap.Cost.TotalCostUSD = 0
	snap.ContextWindow.TotalInputTokens = 1_000_000
	snap.ContextWindow.TotalOutputTokens = 0

	// Fallback opus rate: $5/MTok input.
	line := Line1(config.Default(), Inputs{Snapshot: snap, Tier: TierFull, Now: testNow(t)})
	if !strings.Contains(line, "$5.00") {
		t.Errorf("line1 = %q, want estimated $5.00", line)
	}
}

func TestLine2_PlaceholdersWhenNothingCached(t *testing.T) {
	line := Line2(config.Default(), Inputs{Tier: TierFull, Now: testNow(t)})
	want := "5h: — | wk: — | 1d: — 7d: — 30d: —"
	if line != want {
		t.Errorf("line2 = %q, want %q", line, want)
	}
}

func TestLine2_LimitsWithCountdown(t *testing.T) {
	limits := `{
		"five_hour": {"utilization": 42, "resets_at": "2025-08-30T15:30:00Z"},
		"seven_day": {"utilization": 61},
		"seven_day_opus": {"utilization": 12}
	}`

	line := Line2(config.Default(), Inputs{
		Tier:   TierCompact,
		Limits: []byte(limits),
		Now:    testNow(t),
	})

	// 42% of a 6-unit bar floors to 2 filled.
	if !strings.Contains(line, "◼◼◻◻◻◻") {
		t.Errorf("line2 = %q, want 6-unit five-hour bar", line)
	}
	if !strings.Contains(line, " 1:30 ") {
		t.Errorf("line2 = %q, want 1:30 reset countdown", line)
	}
	if !strings.Contains(line, "\x1b[33m61%\x1b[0m") {
		t.Errorf("line2 = %q, want yellow weekly pct", line)
	}
	if !strings.Contains(line, "\x1b[32mO:12\x1b[0m") {
		t.Errorf("line2 = %q, want opus sub-limit", line)
	}
	if !strings.Contains(line, "S:—") || !strings.Contains(line, "H:—") {
		t.Errorf("line2 = %q, want dimmed placeholders for absent sub-limits", line)
	}
}

func TestLine2_SpendAggregation(t *testing.T) {
	usage := `[
		{"date": "2025-08-30", "totalCost": 12.4},
		{"date": "2025-08-29", "cost": 3.0},
		{"date": "2025-08-01", "totalCost": 5.0},
		{"date": "2025-06-01", "totalCost": 99.0}
	]`

	line := Line2(config.Default(), Inputs{
		Tier:    TierFull,
		Ccusage: []byte(usage),
		Now:     testNow(t),
	})

	if !strings.Contains(line, "1d: $12 7d: $15 30d: $20") {
		t.Errorf("line2 = %q, want 1d: $12 7d: $15 30d: $20", line)
	}
	if !strings.ContainsRune(line, '█') {
		t.Errorf("line2 = %q, want sparkline glyphs for nonzero spend", line)
	}
}

func TestLine2_UltraFormat(t *testing.T) {
	usage := `[{"date": "2025-08-30", "totalCost": 2.0}]`
	line := Line2(config.Default(), Inputs{
		Tier:    TierUltra,
		Ccusage: []byte(usage),
		Now:     testNow(t),
	})

	if !strings.Contains(line, "1d:$2 7d:$2 30d:$2") {
		t.Errorf("ultra line2 = %q, want tight spend separators", line)
	}
	if strings.ContainsAny(line, "◼◻") {
		t.Errorf("ultra line2 = %q, want no bar glyphs", line)
	}
}

func TestUsageEntries_Shapes(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want int
	}{
		{"bare array", `[{"date":"d"},{"date":"d"}]`, 2},
		{"projects map", `{"projects":{"a":[{"date":"d"}],"b":[{"date":"d"},{"date":"d"}]}}`, 3},
		{"daily field", `{"daily":[{"date":"d"}]}`, 1},
		{"data field", `{"data":[{"date":"d"},{"date":"d"}]}`, 2},
		{"unrecognized object", `{"foo":1}`, 0},
		{"nil", ``, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var doc []byte
			if tt.doc != "" {
				doc = []byte(tt.doc)
			}
			if got := len(usageEntries(doc)); got != tt.want {
				t.Errorf("usageEntries = %d entries, want %d", got, tt.want)
			}
		})
	}
}

func TestTierFor(t *testing.T) {
	th := config.Default().Thresholds
	tests := []struct {
		cols int
		want Tier
	}{
		{1, TierUltra},
		{79, TierUltra},
		{80, TierCompact},
		{119, TierCompact},
		{120, TierFull},
		{250, TierFull},
	}
	for _, tt := range tests {
		if got := TierFor(th, tt.cols); got != tt.want {
			t.Errorf("TierFor(%d) = %v, want %v", tt.cols, got, tt.want)
		}
	}
}

func TestDetectWidth_EnvPriority(t *testing.T) {
	t.Setenv("STATUSLINE_COLS", "100")
	t.Setenv("COLUMNS", "50")
	if got := DetectWidth(); got != 100 {
		t.Errorf("DetectWidth = %d, want STATUSLINE_COLS to win", got)
	}

	t.Setenv("STATUSLINE_COLS", "")
	if got := DetectWidth(); got != 50 {
		t.Errorf("DetectWidth = %d, want COLUMNS fallback", got)
	}

	t.Setenv("STATUSLINE_COLS", "garbage")
	if got := DetectWidth(); got != 50 {
		t.Errorf("DetectWidth = %d, want non-numeric override skipped", got)
	}
}

func TestEstimateCost(t *testing.T) {
	pricing := []byte(`{
		"claude-opus-4-6-20250101": {
			"input_cost_per_token": 0.000005,
			"output_cost_per_token": 0.000025
		}
	}`)

	got := EstimateCost(pricing, "claude-opus-4-6-20250101", 1_000_000, 100_000)
	if got < 7.49 || got > 7.51 {
		t.Errorf("EstimateCost = %v, want 7.50", got)
	}

	// Unknown model falls back to the family table (opus: $5/$25 per MTok).
	got = EstimateCost(pricing, "claude-opus-9", 1_000_000, 0)
	if got != 5.0 {
		t.Errorf("EstimateCost fallback = %v, want 5.0", got)
	}

	// No table at all still prices.
	got = EstimateCost(nil, "claude-haiku-4-5", 2_000_000, 0)
	if got != 2.0 {
		t.Errorf("EstimateCost nil table = %v, want 2.0", got)
	}
}
