package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/cstat/internal/config"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive configuration wizard",
	Args:  cobra.NoArgs,
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

// symbolPresets are selectable bar glyph pairs (context bar, limits bar).
var symbolPresets = map[string][4]string{
	"classic": {"◆", "◇", "◼", "◻"},
	"blocks":  {"█", "░", "█", "░"},
	"ascii":   {"#", "-", "=", "."},
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg := config.Load()

	warn := strconv.FormatFloat(cfg.Thresholds.CostWarn, 'f', 2, 64)
	crit := strconv.FormatFloat(cfg.Thresholds.CostCrit, 'f', 2, 64)
	ultra := strconv.Itoa(cfg.Thresholds.UltraCols)
	compact := strconv.Itoa(cfg.Thresholds.CompactCols)
	preset := "classic"

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("cstat setup").
				Description("Writes "+config.Path()),
			huh.NewInput().
				Title("Cost warn threshold ($)").
				Value(&warn).
				Validate(validFloat),
			huh.NewInput().
				Title("Cost critical threshold ($)").
				Value(&crit).
				Validate(validFloat),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Ultra-compact below (columns)").
				Value(&ultra).
				Validate(validInt),
			huh.NewInput().
				Title("Compact below (columns)").
				Value(&compact).
				Validate(validInt),
			huh.NewSelect[string]().
				Title("Bar symbols").
				Options(
					huh.NewOption("Diamonds ◆◇ and squares ◼◻", "classic"),
					huh.NewOption("Solid blocks █░", "blocks"),
					huh.NewOption("Plain ASCII #-", "ascii"),
				).
				Value(&preset),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return fmt.Errorf("running setup form: %w", err)
	}

	cfg.Thresholds.CostWarn, _ = strconv.ParseFloat(warn, 64)
	cfg.Thresholds.CostCrit, _ = strconv.ParseFloat(crit, 64)
	cfg.Thresholds.UltraCols, _ = strconv.Atoi(ultra)
	cfg.Thresholds.CompactCols, _ = strconv.Atoi(compact)

	sym := symbolPresets[preset]
	cfg.Symbols.CtxFilled, cfg.Symbols.CtxEmpty = sym[0], sym[1]
	cfg.Symbols.LimFilled, cfg.Symbols.LimEmpty = sym[2], sym[3]

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	fmt.Printf("Wrote %s\n", config.Path())
	return nil
}

func validFloat(s string) error {
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return errors.New("enter a number")
	}
	return nil
}

func validInt(s string) error {
	if n, err := strconv.Atoi(s); err != nil || n <= 0 {
		return errors.New("enter a positive integer")
	}
	return nil
}
