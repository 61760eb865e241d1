// Package tui holds the full-screen live view behind `cstat watch`.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tidwall/gjson"

	"github.com/theirongolddev/cstat/internal/cache"
	"github.com/theirongolddev/cstat/internal/config"
	"github.com/theirongolddev/cstat/internal/render"
)

const refreshEvery = 15 * time.Second

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	critStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	footerStyle = lipgloss.NewStyle().Faint(true)
)

type refreshedMsg struct {
	limits  []byte
	ccusage []byte
}

type tickMsg time.Time

// Watch polls the usage caches and draws utilization bars until quit.
type Watch struct {
	cfg     config.Config
	store   *cache.Store
	limits  cache.Resource
	ccusage cache.Resource

	spin        spinner.Model
	width       int
	loaded      bool
	limitsRaw   []byte
	ccusageRaw  []byte
	refreshedAt time.Time
}

func NewWatch(cfg config.Config, store *cache.Store, limits, ccusage cache.Resource) Watch {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	return Watch{
		cfg:     cfg,
		store:   store,
		limits:  limits,
		ccusage: ccusage,
		spin:    sp,
		width:   80,
	}
}

func (m Watch) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.refresh())
}

// refresh runs off the cache layer: limits synchronously so the countdown is
// current, ccusage through the background path so the view never blocks on a
// slow subprocess.
func (m Watch) refresh() tea.Cmd {
	store, limits, ccusage := m.store, m.limits, m.ccusage
	return func() tea.Msg {
		ctx := context.Background()
		return refreshedMsg{
			limits:  store.Ensure(ctx, limits),
			ccusage: store.Ensure(ctx, ccusage),
		}
	}
}

func tick() tea.Cmd {
	return tea.Tick(refreshEvery, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Watch) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "r":
			return m, m.refresh()
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tickMsg:
		return m, m.refresh()
	case refreshedMsg:
		m.limitsRaw = msg.limits
		m.ccusageRaw = msg.ccusage
		m.loaded = true
		m.refreshedAt = time.Now()
		return m, tick()
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Watch) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("cstat watch"))
	b.WriteString("\n\n")

	if !m.loaded {
		b.WriteString(m.spin.View() + " loading usage...\n")
		return b.String()
	}

	if m.limitsRaw == nil {
		b.WriteString("usage limits unavailable\n")
	} else {
		m.writeLimit(&b, "5h", "five_hour")
		m.writeLimit(&b, "week", "seven_day")
		m.writeLimit(&b, "opus", "seven_day_opus")
		m.writeLimit(&b, "sonnet", "seven_day_sonnet")
		m.writeLimit(&b, "haiku", "seven_day_haiku")
	}

	b.WriteString("\n")
	costs := render.DailyCosts(m.ccusageRaw, time.Now(), 7)
	var total float64
	for _, c := range costs {
		total += c
	}
	spark := render.Sparkline(costs)
	if spark == "" {
		spark = "(no recent spend)"
	}
	b.WriteString(labelStyle.Render("7d spend"))
	b.WriteString(fmt.Sprintf(" %s  $%.0f\n", spark, total))

	b.WriteString("\n")
	b.WriteString(footerStyle.Render(fmt.Sprintf(
		"refreshed %s ago  ·  r: refresh  q: quit",
		time.Since(m.refreshedAt).Round(time.Second))))
	b.WriteString("\n")
	return b.String()
}

// writeLimit draws one utilization row, skipping families the account has no
// limit for.
func (m Watch) writeLimit(b *strings.Builder, label, key string) {
	v := gjson.GetBytes(m.limitsRaw, key)
	if !v.Exists() {
		return
	}
	pct := int(v.Get("utilization").Float())
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}

	barWidth := 20
	if m.width < 60 {
		barWidth = 10
	}
	bar := render.Bar(pct, m.cfg.Symbols.LimFilled, m.cfg.Symbols.LimEmpty, barWidth)
	bar = pctStyle(pct).Render(bar)

	row := fmt.Sprintf("%s %s %s %3d%%", labelStyle.Render(label), render.Pie(m.cfg.Symbols.Pie, pct), bar, pct)
	if reset := v.Get("resets_at").String(); reset != "" {
		if t, err := time.Parse(time.RFC3339, reset); err == nil {
			row += footerStyle.Render(fmt.Sprintf("  resets in %s", time.Until(t).Round(time.Minute)))
		}
	}
	b.WriteString(row + "\n")
}

func pctStyle(pct int) lipgloss.Style {
	switch {
	case pct >= 80:
		return critStyle
	case pct >= 60:
		return warnStyle
	default:
		return okStyle
	}
}
