// Package config loads the statusline configuration. A Config is built once
// at startup from defaults plus an optional TOML overlay and passed down as a
// value; nothing mutates it afterwards.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultCacheDir is where cache files, lock files, and the session log live.
const DefaultCacheDir = "/tmp/claude-statusline"

// Config holds all statusline settings.
type Config struct {
	CacheDir   string
	Cache      Cache
	Thresholds Thresholds
	Symbols    Symbols
}

// Cache holds the context buffer and per-resource TTLs.
type Cache struct {
	// Buffer200K is the context safety buffer for a 200k window; it scales
	// proportionally for other window sizes.
	Buffer200K int64

	LimitsTTL  time.Duration
	CcusageTTL time.Duration
	PricingTTL time.Duration
}

// Thresholds holds cost coloring thresholds and tier column cutoffs.
type Thresholds struct {
	CostWarn float64
	CostCrit float64

	CompactCols int
	UltraCols   int
}

// Symbols holds the bar and pie glyphs.
type Symbols struct {
	CtxFilled string
	CtxEmpty  string
	LimFilled string
	LimEmpty  string
	Pie       [5]string
}

// fileConfig mirrors the TOML schema of ~/.claude/statusline.toml.
type fileConfig struct {
	Cache struct {
		Buffer200K *int64 `toml:"buffer_200k"`
		LimitsTTL  *int64 `toml:"limits_ttl"`
		CcusageTTL *int64 `toml:"ccusage_ttl"`
		PricingTTL *int64 `toml:"pricing_ttl"`
	} `toml:"cache"`
	Thresholds struct {
		CostWarn    *float64 `toml:"cost_warn"`
		CostCrit    *float64 `toml:"cost_crit"`
		CompactCols *int     `toml:"compact_cols"`
		UltraCols   *int     `toml:"ultra_cols"`
	} `toml:"thresholds"`
	Symbols struct {
		Ctx symbolList `toml:"ctx"`
		Lim symbolList `toml:"lim"`
		Pie symbolList `toml:"pie"`
	} `toml:"symbols"`
}

// symbolList accepts either a TOML array of glyphs (["◆", "◇"]) or a bare
// string split into runes ("◆◇", the form older config files use).
type symbolList []string

func (s *symbolList) UnmarshalTOML(v any) error {
	switch v := v.(type) {
	case string:
		for _, r := range v {
			*s = append(*s, string(r))
		}
	case []any:
		for _, e := range v {
			if str, ok := e.(string); ok {
				*s = append(*s, str)
			}
		}
	}
	return nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		CacheDir: cacheDir(),
		Cache: Cache{
			Buffer200K: 33_000,
			LimitsTTL:  15 * time.Minute,
			CcusageTTL: 60 * time.Second,
			PricingTTL: 24 * time.Hour,
		},
		Thresholds: Thresholds{
			CostWarn:    0.50,
			CostCrit:    1.00,
			CompactCols: 120,
			UltraCols:   80,
		},
		Symbols: Symbols{
			CtxFilled: "◆", CtxEmpty: "◇",
			LimFilled: "◼", LimEmpty: "◻",
			Pie: [5]string{"○", "◔", "◑", "◕", "●"},
		},
	}
}

// Path returns the config file location.
func Path() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".claude", "statusline.toml")
}

func cacheDir() string {
	if dir := os.Getenv("STATUSLINE_CACHE_DIR"); dir != "" {
		return dir
	}
	return DefaultCacheDir
}

// Load returns the defaults overlaid with the optional config file.
// A missing or malformed file is never an error.
func Load() Config {
	return loadFrom(Path())
}

func loadFrom(path string) Config {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return cfg
	}

	if v := fc.Cache.Buffer200K; v != nil && *v > 0 {
		cfg.Cache.Buffer200K = *v
	}
	if v := fc.Cache.LimitsTTL; v != nil && *v > 0 {
		cfg.Cache.LimitsTTL = time.Duration(*v) * time.Second
	}
	if v := fc.Cache.CcusageTTL; v != nil && *v > 0 {
		cfg.Cache.CcusageTTL = time.Duration(*v) * time.Second
	}
	if v := fc.Cache.PricingTTL; v != nil && *v > 0 {
		cfg.Cache.PricingTTL = time.Duration(*v) * time.Second
	}

	if v := fc.Thresholds.CostWarn; v != nil && *v > 0 {
		cfg.Thresholds.CostWarn = *v
	}
	if v := fc.Thresholds.CostCrit; v != nil && *v > 0 {
		cfg.Thresholds.CostCrit = *v
	}
	if v := fc.Thresholds.CompactCols; v != nil && *v > 0 {
		cfg.Thresholds.CompactCols = *v
	}
	if v := fc.Thresholds.UltraCols; v != nil && *v > 0 {
		cfg.Thresholds.UltraCols = *v
	}

	if s := fc.Symbols.Ctx; len(s) == 2 {
		cfg.Symbols.CtxFilled, cfg.Symbols.CtxEmpty = s[0], s[1]
	}
	if s := fc.Symbols.Lim; len(s) == 2 {
		cfg.Symbols.LimFilled, cfg.Symbols.LimEmpty = s[0], s[1]
	}
	if s := fc.Symbols.Pie; len(s) == 5 {
		copy(cfg.Symbols.Pie[:], s)
	}

	return cfg
}

// Save writes the overridable settings to the config file, creating the
// directory if needed.
func Save(cfg Config) error {
	dir := filepath.Dir(Path())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	var fc fileConfig
	buf := cfg.Cache.Buffer200K
	limits := int64(cfg.Cache.LimitsTTL / time.Second)
	ccusage := int64(cfg.Cache.CcusageTTL / time.Second)
	pricing := int64(cfg.Cache.PricingTTL / time.Second)
	fc.Cache.Buffer200K = &buf
	fc.Cache.LimitsTTL = &limits
	fc.Cache.CcusageTTL = &ccusage
	fc.Cache.PricingTTL = &pricing
	fc.Thresholds.CostWarn = &cfg.Thresholds.CostWarn
	fc.Thresholds.CostCrit = &cfg.Thresholds.CostCrit
	fc.Thresholds.CompactCols = &cfg.Thresholds.CompactCols
	fc.Thresholds.UltraCols = &cfg.Thresholds.UltraCols
	fc.Symbols.Ctx = symbolList{cfg.Symbols.CtxFilled, cfg.Symbols.CtxEmpty}
	fc.Symbols.Lim = symbolList{cfg.Symbols.LimFilled, cfg.Symbols.LimEmpty}
	fc.Symbols.Pie = symbolList(cfg.Symbols.Pie[:])

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	if err := enc.Encode(fc); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return nil
}
