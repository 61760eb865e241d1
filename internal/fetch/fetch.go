// Package fetch provides the per-resource refresh functions. Each returns a
// cache.Fetch that writes the store on success and reports false on any
// failure, leaving the prior payload untouched. Try to improve, never
// destroy.
package fetch

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var pathOnce sync.Once

// extendPath prepends the common bun/node install locations so the ccusage
// CLI is found even when the invoking shell has a minimal PATH.
func extendPath() {
	pathOnce.Do(func() {
		home, _ := os.UserHomeDir()
		cur := os.Getenv("PATH")
		for _, p := range []string{
			filepath.Join(home, ".bun", "bin"),
			filepath.Join(home, ".local", "bin"),
			filepath.Join(home, ".nvm", "current", "bin"),
			"/usr/local/bin",
		} {
			if !strings.Contains(cur, p) {
				cur = p + string(os.PathListSeparator) + cur
			}
		}
		os.Setenv("PATH", cur)
	})
}
