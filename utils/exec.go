package utils

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"strings"
)

var ErrApplicationNotFound = errors.New("application not found")

type ErrExec struct {
	ExitCode  int
	Output    string
	ErrOutput string
	Cmd       string
	Args      []string

	// Optional Error Code which might be provided by Windows
	SubExitCode int
}

func (e ErrExec) Error() string {
	return fmt.Sprintf("application execution failed: '%s %s': rc %d: %s",
		e.Cmd,
		strings.Join(e.Args, " "),
		e.ExitCode,
		e.Output,
	)
}

// ExecuteQuiet runs cmd without a console and returns its output split into trimmed lines.
func ExecuteQuiet(ctx context.Context, workingDir, cmd string, args ...string) (lines []string, err error) {
	if !IsApplicationAvailable(ctx, cmd) {
		return nil, fmt.Errorf("%w: %s", ErrApplicationNotFound, cmd)
	}

	c := exec.CommandContext(ctx, cmd, args...)
	c.Dir = workingDir
	c.Env = os.Environ()
	hideWindow(c)

	// combined contains stdout and stderr but stderr only contains stderr output
	combinedOut := &bytes.Buffer{}
	stderrBuf := &bytes.Buffer{}

	c.Stderr = io.MultiWriter(combinedOut, stderrBuf)
	c.Stdout = combinedOut

	err = c.Run()
	if err != nil {
		return nil, ErrExec{
			ExitCode:    c.ProcessState.ExitCode(),
			Output:      strings.TrimSpace(combinedOut.String()),
			ErrOutput:   strings.TrimSpace(stderrBuf.String()),
			Cmd:         cmd,
			Args:        args,
			SubExitCode: parseSubErrorCode(stderrBuf.String()),
		}
	}

	return SplitLines(combinedOut.String()), nil
}

// SplitLines splits on \n and trims every line, \r\n line endings included.
func SplitLines(s string) []string {
	lines := strings.Split(s, "\n")
	for idx, line := range lines {
		lines[idx] = strings.TrimSpace(line)
	}
	return lines
}

// PropertyValue returns the text following prefix on the first line that starts with prefix.
func PropertyValue(lines []string, prefix string) (string, bool) {
	for _, line := range lines {
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(line, prefix)), true
		}
	}
	return "", false
}

var quotePattern = regexp.MustCompile(`[^\w@%+=:,./-]`)

// ShellQuote returns a shell-escaped version of the string s. The returned value
// is a string that can safely be used as one token in a shell command line.
func ShellQuote(s string) string {
	if len(s) == 0 {
		return "''"
	}

	if quotePattern.MatchString(s) {
		return "'" + strings.ReplaceAll(s, "'", "'\"'\"'") + "'"
	}

	return s
}

// PowerShellQuote quotes s as a single quoted PowerShell string literal.
func PowerShellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
