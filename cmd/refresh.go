package cmd

import (
	"github.com/spf13/cobra"

	"github.com/theirongolddev/cstat/internal/cache"
	"github.com/theirongolddev/cstat/internal/config"
)

// refreshCmd is the detached background worker. It always exits 0: the
// parent never waits on it and nothing observes its status except the cache
// payload it may or may not have improved.
var refreshCmd = &cobra.Command{
	Use:    "refresh <key>",
	Short:  "Run one background cache refresh",
	Hidden: true,
	Args:   cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		cfg := config.Load()
		store, err := cache.NewStore(cfg.CacheDir)
		if err != nil {
			return nil
		}
		res, ok := newResources(cfg, store).byKey(cache.Key(args[0]))
		if !ok {
			return nil
		}
		store.RunRefresh(res.Key, res.Fetch)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}
