package session

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/jxsl13/app-lemonator/app"
	"github.com/jxsl13/app-lemonator/launch"
	"github.com/jxsl13/app-lemonator/platform"
	"github.com/jxsl13/app-lemonator/registry"
	"github.com/stretchr/testify/require"
)

func openTestSession(t *testing.T) *Session {
	t.Helper()
	s, err := Open(context.Background(), &Config{
		DB:       filepath.Join(t.TempDir(), "apps.db"),
		LogLevel: "error",
		LogFile:  filepath.Join(t.TempDir(), "app-lemonator.log"),
	})
	require.NoError(t, err)
	s.Progress = nil
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})
	return s
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
	require.Error(t, (&Config{DB: "x", LogLevel: "loud"}).Validate())
	require.Error(t, (&Config{LogLevel: "info"}).Validate())
}

func TestRefreshShortcut(t *testing.T) {
	ctx := context.Background()
	s := openTestSession(t)

	dir := t.TempDir()
	exe := filepath.Join(dir, "tool.exe")
	require.NoError(t, os.WriteFile(exe, nil, 0o755))

	a, err := s.Registry.Add(ctx, registry.App{
		Name:       "tool",
		ExeName:    "tool.exe",
		SearchTerm: dir,
		Strategy:   app.Shortcut,
		OS:         s.Env.OS,
	})
	require.NoError(t, err)

	got, err := s.Refresh(ctx, a)
	require.NoError(t, err)
	require.Equal(t, exe, got.Path)
	require.False(t, got.LastUpdated.IsZero())
}

func TestRefreshFailureKeepsPath(t *testing.T) {
	ctx := context.Background()
	s := openTestSession(t)

	a, err := s.Registry.Add(ctx, registry.App{
		Name:       "ghost",
		ExeName:    "ghost.exe",
		SearchTerm: filepath.Join(t.TempDir(), "missing"),
		Strategy:   app.FolderSearch,
		OS:         s.Env.OS,
	})
	require.NoError(t, err)

	_, err = s.Refresh(ctx, a)
	require.ErrorIs(t, err, app.ErrFolderNotFound)

	got, err := s.Registry.Get(ctx, "ghost")
	require.NoError(t, err)
	require.Empty(t, got.Path)
	require.True(t, got.LastUpdated.IsZero())
}

type recordingStart struct {
	started [][]string
	err     error
}

func (r *recordingStart) start(cmd *exec.Cmd) error {
	if r.err != nil {
		return r.err
	}
	r.started = append(r.started, cmd.Args)
	return nil
}

func newMacLauncher(t *testing.T, rec *recordingStart) *launch.Launcher {
	t.Helper()
	l, err := launch.New(platform.MacOS, launch.WithStart(rec.start))
	require.NoError(t, err)
	return l
}

func addTool(t *testing.T, s *Session, a registry.App) registry.App {
	t.Helper()
	a.Name = "tool"
	a.ExeName = "tool.app"
	a.Params = `--profile "Profile 1"`
	a.OS = platform.MacOS
	added, err := s.Registry.Add(context.Background(), a)
	require.NoError(t, err)
	return added
}

func TestOpenAppStaleCachedPathIsRefreshed(t *testing.T) {
	ctx := context.Background()
	s := openTestSession(t)
	s.Env = platform.MapEnv(platform.MacOS, nil)

	dir := t.TempDir()
	bundle := filepath.Join(dir, "tool.app")
	require.NoError(t, os.MkdirAll(bundle, 0o755))

	addTool(t, s, registry.App{
		SearchTerm: dir,
		Strategy:   app.Shortcut,
		Path:       filepath.Join(t.TempDir(), "moved", "tool.app"),
	})

	rec := &recordingStart{}
	c, err := s.OpenApp(ctx, "TOOL", false, newMacLauncher(t, rec))
	require.NoError(t, err)
	require.Equal(t, bundle, c.Path)
	require.Equal(t, [][]string{{"open", bundle, "--args", "--profile", "Profile 1"}}, rec.started)

	got, err := s.Registry.Get(ctx, "tool")
	require.NoError(t, err)
	require.Equal(t, bundle, got.Path)
	require.False(t, got.LastUpdated.IsZero())
	require.False(t, got.LastOpened.IsZero())
}

func TestOpenAppUsesValidCachedPath(t *testing.T) {
	ctx := context.Background()
	s := openTestSession(t)
	s.Env = platform.MapEnv(platform.MacOS, nil)

	cached := filepath.Join(t.TempDir(), "tool.app")
	require.NoError(t, os.MkdirAll(cached, 0o755))

	// resolving would fail, the base folder does not exist
	addTool(t, s, registry.App{
		SearchTerm: filepath.Join(t.TempDir(), "missing"),
		Strategy:   app.FolderSearch,
		Path:       cached,
	})

	rec := &recordingStart{}
	c, err := s.OpenApp(ctx, "tool", false, newMacLauncher(t, rec))
	require.NoError(t, err)
	require.Equal(t, cached, c.Path)
	require.Len(t, rec.started, 1)

	got, err := s.Registry.Get(ctx, "tool")
	require.NoError(t, err)
	require.Equal(t, cached, got.Path)
	require.True(t, got.LastUpdated.IsZero())
	require.False(t, got.LastOpened.IsZero())

	_, err = s.OpenApp(ctx, "tool", true, newMacLauncher(t, rec))
	require.ErrorIs(t, err, app.ErrFolderNotFound)
	require.Len(t, rec.started, 1)
}

func TestOpenAppFailedStartIsNotStamped(t *testing.T) {
	ctx := context.Background()
	s := openTestSession(t)
	s.Env = platform.MapEnv(platform.MacOS, nil)

	cached := filepath.Join(t.TempDir(), "tool.app")
	require.NoError(t, os.MkdirAll(cached, 0o755))
	addTool(t, s, registry.App{
		SearchTerm: filepath.Dir(cached),
		Strategy:   app.Shortcut,
		Path:       cached,
	})

	rec := &recordingStart{err: errors.New("permission denied")}
	_, err := s.OpenApp(ctx, "tool", false, newMacLauncher(t, rec))
	require.ErrorIs(t, err, app.ErrSpawnFailed)

	got, err := s.Registry.Get(ctx, "tool")
	require.NoError(t, err)
	require.True(t, got.LastOpened.IsZero())

	_, err = s.OpenApp(ctx, "missing", false, newMacLauncher(t, rec))
	require.ErrorIs(t, err, app.ErrAppNotFound)
}
