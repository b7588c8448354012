//go:build windows

package utils

import (
	"context"
	"os/exec"
	"regexp"
	"strconv"
	"syscall"
)

func IsApplicationAvailable(_ context.Context, name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

func hideWindow(c *exec.Cmd) {
	c.SysProcAttr = &syscall.SysProcAttr{HideWindow: true}
}

var hresultPattern = regexp.MustCompile(`HRESULT:\s*0x([0-9A-Fa-f]{8})`)

// parseSubErrorCode extracts the HRESULT PowerShell cmdlets print on failure.
func parseSubErrorCode(output string) int {
	m := hresultPattern.FindStringSubmatch(output)
	if m == nil {
		return 0
	}
	code, err := strconv.ParseUint(m[1], 16, 32)
	if err != nil {
		return 0
	}
	return int(int32(uint32(code)))
}
