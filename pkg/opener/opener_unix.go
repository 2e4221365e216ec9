//go:build !windows

package opener

import (
	"fmt"
	"os/exec"
	"runtime"
	"syscall"

	"al.essio.dev/pkg/shellescape"
	"github.com/AzureXuanVerse/Nebula-Tools/pkg/logger"
)

// startProcess is swapped out in tests.
var startProcess = func(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	// never waited on; release so it does not linger as a zombie
	return cmd.Process.Release()
}

func handlerCommand(goos string) string {
	if goos == "darwin" {
		return "open"
	}
	return "xdg-open"
}

func launch(l logger.Logger, url string) error {
	name := handlerCommand(runtime.GOOS)
	cmd := exec.Command(name, url)
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	// own process group so the handler outlives us
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	l.Debug("launching %s", shellescape.QuoteCommand(cmd.Args))
	if err := startProcess(cmd); err != nil {
		return fmt.Errorf("failed to start %s: %w", name, err)
	}
	return nil
}
