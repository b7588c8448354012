//go:build !windows

package utils

import (
	"context"
	"os/exec"
)

func IsApplicationAvailable(ctx context.Context, name string) bool {
	cmd := exec.CommandContext(ctx, "/bin/sh", "-c", "command -v "+ShellQuote(name))
	if err := cmd.Run(); err != nil {
		// failed to detect via shell, try via path lookup
		_, err := exec.LookPath(name)
		return err == nil
	}
	return true
}

func hideWindow(*exec.Cmd) {}

func parseSubErrorCode(output string) int {
	return 0
}
