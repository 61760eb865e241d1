package fetch

import (
	"context"
	"os/exec"
	"time"

	"github.com/theirongolddev/cstat/internal/cache"
)

const ccusageTimeout = 30 * time.Second

// Ccusage returns the fetch for the local usage-accounting resource, shelling
// out to the ccusage CLI (directly, or via bunx/npx when not installed
// globally).
func Ccusage(store *cache.Store) cache.Fetch {
	return func(ctx context.Context) bool {
		extendPath()

		var base []string
		switch {
		case haveCommand("ccusage"):
			base = []string{"ccusage"}
		case haveCommand("bunx"):
			base = []string{"bunx", "ccusage"}
		case haveCommand("npx"):
			base = []string{"npx", "-y", "ccusage"}
		default:
			return false
		}

		now := time.Now()
		args := append(base[1:],
			"daily", "--json", "--instances",
			"--since", now.AddDate(0, 0, -30).Format("20060102"),
			"--until", now.Format("20060102"),
			"--mode", "calculate",
		)

		ctx, cancel := context.WithTimeout(ctx, ccusageTimeout)
		defer cancel()

		out, err := exec.CommandContext(ctx, base[0], args...).Output()
		if err != nil || len(out) == 0 {
			return false
		}
		return store.Write(cache.KeyCcusage, out) == nil
	}
}

func haveCommand(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
