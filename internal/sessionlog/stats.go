package sessionlog

import (
	"bufio"
	"io"
	"sort"

	"github.com/tidwall/gjson"
)

// Session boundary heuristic: a record whose cost drops below half the
// running maximum starts a new session, once that maximum has cleared a
// small floor. Approximate by design; jagged cost curves can over- or
// under-count.
const (
	sessionDropRatio = 0.5
	sessionCostFloor = 0.1
)

// Summary aggregates the session log.
type Summary struct {
	Entries   int
	Sessions  int
	TotalCost float64
	Days      []DaySummary
}

// DaySummary is one calendar day's peak figures.
type DaySummary struct {
	Date      string
	MaxCost   float64
	MaxTokens int64
	Projects  []string
}

// Summarize reads the log, skipping unparseable lines, and aggregates
// per-day peaks plus the approximate session count for the last seven
// logged days.
func Summarize(r io.Reader) Summary {
	var sum Summary

	type dayAgg struct {
		maxCost   float64
		maxTokens int64
		projects  map[string]bool
	}
	byDate := make(map[string]*dayAgg)

	runningMax := 0.0
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		line := sc.Text()
		if !gjson.Valid(line) {
			continue
		}
		e := gjson.Parse(line)
		if !e.IsObject() {
			continue
		}
		sum.Entries++

		cost := e.Get("c").Float()
		if cost < runningMax*sessionDropRatio && runningMax > sessionCostFloor {
			sum.Sessions++
			sum.TotalCost += runningMax
			runningMax = cost
		} else if cost > runningMax {
			runningMax = cost
		}

		ts := e.Get("ts").String()
		if len(ts) < 10 {
			continue
		}
		date := ts[:10]
		agg := byDate[date]
		if agg == nil {
			agg = &dayAgg{projects: make(map[string]bool)}
			byDate[date] = agg
		}
		if cost > agg.maxCost {
			agg.maxCost = cost
		}
		if tok := e.Get("t").Int(); tok > agg.maxTokens {
			agg.maxTokens = tok
		}
		if p := e.Get("p").String(); p != "" {
			agg.projects[p] = true
		}
	}

	if runningMax > 0 {
		sum.Sessions++
		sum.TotalCost += runningMax
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	if len(dates) > 7 {
		dates = dates[len(dates)-7:]
	}

	for _, d := range dates {
		agg := byDate[d]
		projects := make([]string, 0, len(agg.projects))
		for p := range agg.projects {
			projects = append(projects, p)
		}
		sort.Strings(projects)
		sum.Days = append(sum.Days, DaySummary{
			Date:      d,
			MaxCost:   agg.maxCost,
			MaxTokens: agg.maxTokens,
			Projects:  projects,
		})
	}

	return sum
}
