// Package snapshot decodes the per-invocation status JSON read from stdin.
package snapshot

import (
	"encoding/json"
	"io"
	"strings"
)

// Snapshot is one invocation's input document. Fields absent from the input
// decode to zero values; rendering treats zero as "unknown", never as fatal.
type Snapshot struct {
	Model         Model         `json:"model"`
	ContextWindow ContextWindow `json:"context_window"`
	Cost          Cost          `json:"cost"`
	Workspace     Workspace     `json:"workspace"`
}

// Model identifies the active model.
type Model struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// ContextWindow carries the window size and token counters.
type ContextWindow struct {
	Size              int64 `json:"context_window_size"`
	CurrentUsage      Usage `json:"current_usage"`
	TotalInputTokens  int64 `json:"total_input_tokens"`
	TotalOutputTokens int64 `json:"total_output_tokens"`
}

// Usage holds the current context usage counters.
type Usage struct {
	InputTokens              int64 `json:"input_tokens"`
	CacheCreationInputTokens int64 `json:"cache_creation_input_tokens"`
	CacheReadInputTokens     int64 `json:"cache_read_input_tokens"`
}

// Cost holds cumulative session cost and duration.
type Cost struct {
	TotalCostUSD    float64 `json:"total_cost_usd"`
	TotalDurationMs int64   `json:"total_duration_ms"`
}

// Workspace identifies where the session runs.
type Workspace struct {
	CurrentDir string `json:"current_dir"`
}

// Decode reads one snapshot document. A missing window size defaults to 200k.
func Decode(r io.Reader) (Snapshot, error) {
	var s Snapshot
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return Snapshot{}, err
	}
	if s.ContextWindow.Size <= 0 {
		s.ContextWindow.Size = 200_000
	}
	return s, nil
}

// ContextUsed returns the tokens occupying the context window.
func (s Snapshot) ContextUsed() int64 {
	u := s.ContextWindow.CurrentUsage
	return u.InputTokens + u.CacheCreationInputTokens + u.CacheReadInputTokens
}

// Families in display order; also the keys of the fallback pricing table.
const (
	FamilyOpus   = "opus"
	FamilySonnet = "sonnet"
	FamilyHaiku  = "haiku"
)

// Family detects the model family from a model identifier. Unknown
// identifiers are treated as opus, the most conservative pricing.
func Family(modelID string) string {
	id := strings.ToLower(modelID)
	for _, fam := range []string{FamilyOpus, FamilySonnet, FamilyHaiku} {
		if strings.Contains(id, fam) {
			return fam
		}
	}
	return FamilyOpus
}
