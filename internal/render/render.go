package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/theirongolddev/cstat/internal/config"
	"github.com/theirongolddev/cstat/internal/snapshot"
)

const consoleUsageURL = "https://console.anthropic.com/settings/usage"

// modelLabels maps model families to display names.
var modelLabels = map[string]string{
	snapshot.FamilyOpus:   "Opus 4.6",
	snapshot.FamilySonnet: "Sonnet 4.5",
	snapshot.FamilyHaiku:  "Haiku 4.5",
}

// subLimitOrder is the display order of per-family weekly sub-limits.
var subLimitOrder = []struct {
	family string
	label  string
}{
	{snapshot.FamilyOpus, "O"},
	{snapshot.FamilySonnet, "S"},
	{snapshot.FamilyHaiku, "H"},
}

// Inputs is everything Lines needs. Cache payloads are raw bytes (nil when
// absent) and Now is injected; the renderer does no I/O and reads no clock.
type Inputs struct {
	Snapshot snapshot.Snapshot
	Tier     Tier
	Limits   []byte
	Ccusage  []byte
	Pricing  []byte
	Now      time.Time
}

// Lines renders both status lines.
func Lines(cfg config.Config, in Inputs) (string, string) {
	return Line1(cfg, in), Line2(cfg, in)
}

// Line1 renders the model name (colored by its weekly limit pressure), the
// context bar, remaining tokens, session cost, and duration.
func Line1(cfg config.Config, in Inputs) string {
	snap := in.Snapshot
	fam := snapshot.Family(snap.Model.ID)

	label := modelLabels[fam]
	if label == "" {
		label = snap.Model.DisplayName
	}
	if label == "" {
		label = "Claude"
	}

	// Effective window subtracts the safety buffer, scaled to window size.
	size := snap.ContextWindow.Size
	used := snap.ContextUsed()
	buffer := cfg.Cache.Buffer200K * size / 200_000
	effective := size - buffer
	if effective < 1 {
		effective = 1
	}
	pct := int(used * 100 / effective)
	if pct > 100 {
		pct = 100
	}
	remaining := effective - used
	if remaining < 0 {
		remaining = 0
	}

	display := label
	if in.Limits != nil {
		if sub := gjson.GetBytes(in.Limits, "seven_day_"+fam); sub.Exists() {
			display = ColorPct(int(sub.Get("utilization").Int()), label)
		} else {
			weekly := gjson.GetBytes(in.Limits, "seven_day.utilization")
			display = ColorPct(int(weekly.Int()), label)
		}
	}

	cost := snap.Cost.TotalCostUSD
	if cost == 0 {
		cost = EstimateCost(in.Pricing, snap.Model.ID,
			snap.ContextWindow.TotalInputTokens, snap.ContextWindow.TotalOutputTokens)
	}
	costLink := Hyperlink(consoleUsageURL,
		ColorCost(cfg.Thresholds, cost, fmt.Sprintf("$%.2f", cost)))

	duration := ""
	if ms := snap.Cost.TotalDurationMs; ms > 60_000 {
		duration = " " + Dim(FormatDuration(ms))
	}

	if in.Tier == TierUltra {
		return fmt.Sprintf("%s %s▼ ses:%s", display, FormatTokens(remaining), costLink)
	}

	bar := ColorPct(pct, Bar(pct, cfg.Symbols.CtxFilled, cfg.Symbols.CtxEmpty, in.Tier.barWidth()))
	return fmt.Sprintf("%s %s %s▼ | ses: %s%s",
		display, bar, FormatTokens(remaining), costLink, duration)
}

// Line2 renders the five-hour limit with its reset countdown, the weekly
// utilization with per-family sub-limits, and the 1d/7d/30d spend with a
// seven-day sparkline.
func Line2(cfg config.Config, in Inputs) string {
	return limitsPart(cfg, in) + spendPart(in)
}

func limitsPart(cfg config.Config, in Inputs) string {
	if in.Limits == nil {
		return "5h: — | wk: —"
	}

	fiveHour := int(gjson.GetBytes(in.Limits, "five_hour.utilization").Int())

	countdown := ""
	if reset := gjson.GetBytes(in.Limits, "five_hour.resets_at").String(); reset != "" {
		if at, err := time.Parse(time.RFC3339, reset); err == nil {
			diff := at.Sub(in.Now)
			if diff < 0 {
				diff = 0
			}
			secs := int(diff.Seconds())
			countdown = fmt.Sprintf(" %d:%02d", secs/3600, secs%3600/60)
		}
	}

	weekly := int(gjson.GetBytes(in.Limits, "seven_day.utilization").Int())
	weeklyTxt := ColorPct(weekly, strconv.Itoa(weekly)+"%")

	var subs strings.Builder
	for _, s := range subLimitOrder {
		sub := gjson.GetBytes(in.Limits, "seven_day_"+s.family)
		if sub.Exists() {
			pct := int(sub.Get("utilization").Int())
			subs.WriteString(" " + ColorPct(pct, s.label+":"+strconv.Itoa(pct)))
		} else {
			subs.WriteString(" " + Dim(s.label+":—"))
		}
	}

	if in.Tier == TierUltra {
		return fmt.Sprintf("5h:%s%s wk:%s%s",
			ColorPct(fiveHour, strconv.Itoa(fiveHour)+"%"), countdown, weeklyTxt, subs.String())
	}

	bar := ColorPct(fiveHour, Bar(fiveHour, cfg.Symbols.LimFilled, cfg.Symbols.LimEmpty, in.Tier.barWidth()))
	return fmt.Sprintf("5h: %s%s | wk: %s%s", bar, countdown, weeklyTxt, subs.String())
}

func spendPart(in Inputs) string {
	placeholder := " | 1d: — 7d: — 30d: —"
	if in.Tier == TierUltra {
		placeholder = " 1d:— 7d:— 30d:—"
	}

	entries := usageEntries(in.Ccusage)
	if len(entries) == 0 {
		return placeholder
	}

	today := in.Now.Format("2006-01-02")
	day := aggCost(entries, today, today)
	week := aggCost(entries, in.Now.AddDate(0, 0, -6).Format("2006-01-02"), today)
	month := aggCost(entries, in.Now.AddDate(0, 0, -29).Format("2006-01-02"), today)

	spark := ""
	if s := Sparkline(DailyCosts(in.Ccusage, in.Now, 7)); s != "" {
		spark = " " + Dim(s)
	}

	if in.Tier == TierUltra {
		return fmt.Sprintf(" 1d:$%.0f 7d:$%.0f 30d:$%.0f", day, week, month)
	}
	return fmt.Sprintf(" | 1d: $%.0f 7d: $%.0f 30d: $%.0f%s", day, week, month, spark)
}

// usageEntries flattens the ccusage document, which comes in several shapes:
// a bare array, a projects map of arrays, or an object with a daily/data
// array.
func usageEntries(ccusage []byte) []gjson.Result {
	if ccusage == nil {
		return nil
	}
	root := gjson.ParseBytes(ccusage)

	if root.IsArray() {
		return root.Array()
	}
	if !root.IsObject() {
		return nil
	}

	if projects := root.Get("projects"); projects.Exists() && projects.IsObject() {
		var out []gjson.Result
		projects.ForEach(func(_, entries gjson.Result) bool {
			out = append(out, entries.Array()...)
			return true
		})
		return out
	}
	for _, field := range []string{"daily", "data"} {
		if arr := root.Get(field); arr.IsArray() {
			return arr.Array()
		}
	}
	return nil
}

func entryCost(e gjson.Result) float64 {
	if c := e.Get("totalCost"); c.Exists() {
		return c.Float()
	}
	return e.Get("cost").Float()
}

func aggCost(entries []gjson.Result, from, to string) float64 {
	total := 0.0
	for _, e := range entries {
		if d := e.Get("date").String(); d >= from && d <= to {
			total += entryCost(e)
		}
	}
	return total
}

// DailyCosts sums spend per day for the trailing window ending at now,
// oldest first. Exposed for the watch view, which charts the same series.
func DailyCosts(ccusage []byte, now time.Time, days int) []float64 {
	entries := usageEntries(ccusage)
	if len(entries) == 0 {
		return nil
	}

	costs := make([]float64, 0, days)
	for i := days - 1; i >= 0; i-- {
		date := now.AddDate(0, 0, -i).Format("2006-01-02")
		day := 0.0
		for _, e := range entries {
			if e.Get("date").String() == date {
				day += entryCost(e)
			}
		}
		costs = append(costs, day)
	}
	return costs
}
