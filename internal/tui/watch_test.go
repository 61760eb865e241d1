package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/theirongolddev/cstat/internal/cache"
	"github.com/theirongolddev/cstat/internal/config"
)

func newTestWatch(t *testing.T) Watch {
	t.Helper()
	store, err := cache.NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return NewWatch(config.Default(), store, cache.Resource{}, cache.Resource{})
}

func TestWatch_QuitKeys(t *testing.T) {
	for _, key := range []string{"q", "esc", "ctrl+c"} {
		t.Run(key, func(t *testing.T) {
			m := newTestWatch(t)
			msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
			switch key {
			case "esc":
				msg = tea.KeyMsg{Type: tea.KeyEsc}
			case "ctrl+c":
				msg = tea.KeyMsg{Type: tea.KeyCtrlC}
			}
			_, cmd := m.Update(msg)
			if cmd == nil {
				t.Fatal("expected quit command")
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Fatalf("key %q did not quit", key)
			}
		})
	}
}

func TestWatch_ShowsSpinnerUntilLoaded(t *testing.T) {
	m := newTestWatch(t)
	if view := m.View(); !strings.Contains(view, "loading usage") {
		t.Fatalf("initial view missing loading state: %q", view)
	}
}

func TestWatch_RendersLimitsAfterRefresh(t *testing.T) {
	m := newTestWatch(t)
	limits := []byte(`{
		"five_hour": {"utilization": 61, "resets_at": "2099-01-01T00:00:00Z"},
		"seven_day": {"utilization": 12},
		"seven_day_opus": {"utilization": 88}
	}`)

	next, _ := m.Update(refreshedMsg{limits: limits})
	view := next.(Watch).View()

	for _, want := range []string{"5h", "week", "opus", "61%", "12%", "88%", "resets in"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
	// Families with no limit entry stay hidden.
	if strings.Contains(view, "sonnet") {
		t.Fatalf("view shows sonnet row without data:\n%s", view)
	}
}

func TestWatch_PlaceholderWhenLimitsMissing(t *testing.T) {
	m := newTestWatch(t)
	next, _ := m.Update(refreshedMsg{})
	view := next.(Watch).View()
	if !strings.Contains(view, "usage limits unavailable") {
		t.Fatalf("view missing placeholder:\n%s", view)
	}
}
