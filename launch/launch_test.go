package launch

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/jxsl13/app-lemonator/app"
	"github.com/jxsl13/app-lemonator/platform"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{`--profile-directory=Default`, []string{"--profile-directory=Default"}},
		{`--profile-directory="Profile 1"`, []string{"--profile-directory=Profile 1"}},
		{`--profile-directory='Profile 1'`, []string{"--profile-directory=Profile 1"}},
		{`--new-window  "Profile 1"  x`, []string{"--new-window", "Profile 1", "x"}},
		{`C:\Users\x\file.txt "C:\Program Files\a b"`, []string{`C:\Users\x\file.txt`, `C:\Program Files\a b`}},
		{`"it's" 'say "hi"'`, []string{"it's", `say "hi"`}},
		{`a "" b`, []string{"a", "", "b"}},
		{`"unbalanced rest`, []string{"unbalanced rest"}},
		{`a'b c`, []string{"ab c"}},
		{"\t a \n", []string{"a"}},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, Tokenize(tt.in), tt.in)
	}

	require.Empty(t, Tokenize(""))
	require.Empty(t, Tokenize("   "))
}

func TestNewUnsupported(t *testing.T) {
	_, err := New(platform.Unknown)
	require.ErrorIs(t, err, app.ErrUnsupportedPlatform)
}

func TestLaunchWindows(t *testing.T) {
	exe := filepath.Join(t.TempDir(), "chrome.exe")
	require.NoError(t, os.WriteFile(exe, nil, 0o755))

	var started *exec.Cmd
	l, err := New(platform.Windows, WithStart(func(cmd *exec.Cmd) error {
		started = cmd
		return nil
	}))
	require.NoError(t, err)

	args := Tokenize(`--profile-directory="Profile 1"`)
	c, err := l.Launch(context.Background(), "chrome", exe, args)
	require.NoError(t, err)
	require.Equal(t, exe, c.Path)
	require.Equal(t, "--profile-directory=Profile 1", c.Args)
	require.Equal(t, []string{exe, "--profile-directory=Profile 1"}, started.Args)
}

func TestLaunchMacOS(t *testing.T) {
	bundle := filepath.Join(t.TempDir(), "Safari.app")
	require.NoError(t, os.MkdirAll(bundle, 0o755))

	var started *exec.Cmd
	l, err := New(platform.MacOS, WithStart(func(cmd *exec.Cmd) error {
		started = cmd
		return nil
	}))
	require.NoError(t, err)

	_, err = l.Launch(context.Background(), "safari", bundle, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"open", bundle}, started.Args)

	_, err = l.Launch(context.Background(), "safari", bundle, []string{"-x"})
	require.NoError(t, err)
	require.Equal(t, []string{"open", bundle, "--args", "-x"}, started.Args)
}

func TestLaunchMissingPath(t *testing.T) {
	called := false
	l, err := New(platform.Windows, WithStart(func(cmd *exec.Cmd) error {
		called = true
		return nil
	}))
	require.NoError(t, err)

	_, err = l.Launch(context.Background(), "x", filepath.Join(t.TempDir(), "x.exe"), nil)
	require.ErrorIs(t, err, app.ErrPathMissingAtLaunch)
	require.False(t, called)
}

func TestLaunchSpawnFailed(t *testing.T) {
	exe := filepath.Join(t.TempDir(), "x.exe")
	require.NoError(t, os.WriteFile(exe, nil, 0o644))

	boom := errors.New("exec format error")
	l, err := New(platform.Windows, WithStart(func(cmd *exec.Cmd) error {
		return boom
	}))
	require.NoError(t, err)

	_, err = l.Launch(context.Background(), "x", exe, []string{"--a", "b"})
	require.ErrorIs(t, err, app.ErrSpawnFailed)
	require.ErrorIs(t, err, boom)

	var le *app.LaunchError
	require.ErrorAs(t, err, &le)
	require.Equal(t, "x", le.App)
	require.Equal(t, exe, le.Path)
	require.Equal(t, []string{"--a", "b"}, le.Args)
}
