package cmd

import (
	"os"
	"os/exec"
	"syscall"

	"github.com/theirongolddev/cstat/internal/cache"
)

// spawnRefresh launches the hidden refresh worker in its own session,
// detached from this process: the statusline exits right after printing, and
// the refresh must outlive it.
func spawnRefresh(key cache.Key) error {
	exe, err := os.Executable()
	if err != nil {
		return err
	}

	c := exec.Command(exe, "refresh", string(key))
	c.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := c.Start(); err != nil {
		return err
	}
	return c.Process.Release()
}
