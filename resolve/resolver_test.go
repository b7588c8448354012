package resolve

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jxsl13/app-lemonator/app"
	"github.com/jxsl13/app-lemonator/logging"
	"github.com/jxsl13/app-lemonator/platform"
	"github.com/jxsl13/app-lemonator/probe"
	"github.com/jxsl13/app-lemonator/version"
	"github.com/stretchr/testify/require"
)

type mockFinder struct {
	calls  int
	result []string
	err    error
}

func (m *mockFinder) Find(ctx context.Context, root, name string) ([]string, error) {
	m.calls++
	return m.result, m.err
}

type mockProber struct {
	infos map[string]probe.Info
}

func (m *mockProber) Probe(ctx context.Context, path string) (probe.Info, error) {
	info, ok := m.infos[path]
	if !ok {
		return probe.Info{}, errors.New("no version resource")
	}
	info.Path = path
	return info, nil
}

func newTestResolver(o platform.OS, opts ...Option) *Resolver {
	return New(platform.MapEnv(o, nil), logging.Nop(), opts...)
}

func TestFolderSearchPicksGreatestVersion(t *testing.T) {
	base := t.TempDir()
	finder := &mockFinder{result: []string{"/a/x.exe", "/b/x.exe", "/c/x.exe"}}
	prober := &mockProber{infos: map[string]probe.Info{
		"/a/x.exe": {Version: version.Version{Major: 1}, Description: "old"},
		"/b/x.exe": {Version: version.Version{Major: 2}, Description: "new"},
		"/c/x.exe": {Version: version.Version{Major: 1, Minor: 5}, Description: "mid"},
	}}

	r := newTestResolver(platform.Windows, WithFinder(finder), WithProber(prober))
	out, err := r.Resolve(context.Background(), app.Descriptor{
		Name:       "x",
		ExeName:    "x.exe",
		SearchTerm: base,
		Strategy:   app.FolderSearch,
	})
	require.NoError(t, err)
	require.Equal(t, "/b/x.exe", out.Path)
	require.Equal(t, version.Version{Major: 2}, out.Version)
	require.Equal(t, "new", out.Description)
	require.True(t, out.Probed)
}

func TestFolderSearchTieKeepsEarlier(t *testing.T) {
	finder := &mockFinder{result: []string{"/a/x.exe", "/b/x.exe"}}
	prober := &mockProber{infos: map[string]probe.Info{
		"/a/x.exe": {Version: version.Version{Major: 3}},
		"/b/x.exe": {Version: version.Version{Major: 3}},
	}}

	r := newTestResolver(platform.Windows, WithFinder(finder), WithProber(prober))
	out, err := r.Resolve(context.Background(), app.Descriptor{
		Name: "x", ExeName: "x.exe", SearchTerm: t.TempDir(), Strategy: app.FolderSearch,
	})
	require.NoError(t, err)
	require.Equal(t, "/a/x.exe", out.Path)
}

func TestFolderSearchSkipsFailedProbes(t *testing.T) {
	finder := &mockFinder{result: []string{"/a/x.exe", "/b/x.exe"}}
	prober := &mockProber{infos: map[string]probe.Info{
		"/b/x.exe": {},
	}}

	r := newTestResolver(platform.Windows, WithFinder(finder), WithProber(prober))
	out, err := r.Resolve(context.Background(), app.Descriptor{
		Name: "x", ExeName: "x.exe", SearchTerm: t.TempDir(), Strategy: app.FolderSearch,
	})
	require.NoError(t, err)
	require.Equal(t, "/b/x.exe", out.Path)
	require.True(t, out.Probed)
}

func TestFolderSearchAllProbesFailPicksFirst(t *testing.T) {
	finder := &mockFinder{result: []string{"/a/x.exe", "/b/x.exe"}}

	r := newTestResolver(platform.Windows, WithFinder(finder), WithProber(&mockProber{}))
	out, err := r.Resolve(context.Background(), app.Descriptor{
		Name: "x", ExeName: "x.exe", SearchTerm: t.TempDir(), Strategy: app.FolderSearch,
	})
	require.NoError(t, err)
	require.Equal(t, "/a/x.exe", out.Path)
	require.False(t, out.Probed)
	require.True(t, out.Version.IsZero())
}

func TestFolderSearchMissingBaseFolder(t *testing.T) {
	finder := &mockFinder{result: []string{"/a/x.exe"}}

	r := newTestResolver(platform.Windows, WithFinder(finder), WithProber(&mockProber{}))
	_, err := r.Resolve(context.Background(), app.Descriptor{
		Name:       "x",
		ExeName:    "x.exe",
		SearchTerm: filepath.Join(t.TempDir(), "missing"),
		Strategy:   app.FolderSearch,
	})
	require.ErrorIs(t, err, app.ErrFolderNotFound)
	require.Equal(t, 0, finder.calls)
}

func TestFolderSearchNoMatch(t *testing.T) {
	r := newTestResolver(platform.Windows, WithFinder(&mockFinder{}), WithProber(&mockProber{}))
	_, err := r.Resolve(context.Background(), app.Descriptor{
		Name: "x", ExeName: "x.exe", SearchTerm: t.TempDir(), Strategy: app.FolderSearch,
	})
	require.ErrorIs(t, err, app.ErrNoMatchFound)
	require.Contains(t, err.Error(), `"x"`)
}

func TestFolderSearchWithRealScanner(t *testing.T) {
	base := t.TempDir()
	for _, dir := range []string{"v1", "v2"} {
		require.NoError(t, os.MkdirAll(filepath.Join(base, dir), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(base, dir, "Rider.exe"), nil, 0o644))
	}
	first := filepath.Join(base, "v1", "Rider.exe")
	second := filepath.Join(base, "v2", "Rider.exe")

	prober := &mockProber{infos: map[string]probe.Info{
		first:  {Version: version.Version{Major: 2023, Minor: 1}},
		second: {Version: version.Version{Major: 2023, Minor: 2}},
	}}

	r := newTestResolver(platform.Windows, WithProber(prober))
	out, err := r.Resolve(context.Background(), app.Descriptor{
		Name: "rider", ExeName: "rider.exe", SearchTerm: base, Strategy: app.FolderSearch,
	})
	require.NoError(t, err)
	require.Equal(t, second, out.Path)
}

func TestShortcut(t *testing.T) {
	base := t.TempDir()
	bundle := filepath.Join(base, "Safari.app")
	require.NoError(t, os.MkdirAll(bundle, 0o755))

	finder := &mockFinder{}
	r := newTestResolver(platform.MacOS, WithFinder(finder), WithProber(&mockProber{}))
	out, err := r.Resolve(context.Background(), app.Descriptor{
		Name: "safari", ExeName: "Safari.app", SearchTerm: base, Strategy: app.Shortcut,
	})
	require.NoError(t, err)
	require.Equal(t, bundle, out.Path)
	require.False(t, out.Probed)
	require.Equal(t, 0, finder.calls)
}

func TestShortcutMissingPath(t *testing.T) {
	finder := &mockFinder{result: []string{"/somewhere/x.exe"}}
	r := newTestResolver(platform.Windows, WithFinder(finder), WithProber(&mockProber{}))
	_, err := r.Resolve(context.Background(), app.Descriptor{
		Name: "x", ExeName: "x.exe", SearchTerm: t.TempDir(), Strategy: app.Shortcut,
	})
	require.ErrorIs(t, err, app.ErrPathMissing)
	require.Equal(t, 0, finder.calls)
}

func TestShortcutWindowsRequiresFile(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "x.exe"), 0o755))

	r := newTestResolver(platform.Windows, WithProber(&mockProber{}))
	_, err := r.Resolve(context.Background(), app.Descriptor{
		Name: "x", ExeName: "x.exe", SearchTerm: base, Strategy: app.Shortcut,
	})
	require.ErrorIs(t, err, app.ErrPathMissing)
}

func TestPackageQueryUnsupported(t *testing.T) {
	called := false
	query := func(ctx context.Context, workingDir, cmd string, args ...string) ([]string, error) {
		called = true
		return nil, nil
	}

	r := newTestResolver(platform.MacOS, WithQuery(query))
	_, err := r.Resolve(context.Background(), app.Descriptor{
		Name: "spotify", ExeName: "Spotify.exe", SearchTerm: "SpotifyAB.SpotifyMusic", Strategy: app.PackageQuery,
	})
	require.ErrorIs(t, err, app.ErrUnsupportedPlatform)
	require.False(t, called)
}

func TestPackageQuery(t *testing.T) {
	location := `C:\Program Files\WindowsApps\SpotifyAB.SpotifyMusic_1.2.3.0_x86__zpdnekdrzrea0`

	var gotCmd string
	var gotArgs []string
	query := func(ctx context.Context, workingDir, cmd string, args ...string) ([]string, error) {
		gotCmd = cmd
		gotArgs = args
		return []string{"", "InstallLocation : " + location, "", ""}, nil
	}

	r := newTestResolver(platform.Windows, WithQuery(query), WithProber(&mockProber{}))
	out, err := r.Resolve(context.Background(), app.Descriptor{
		Name: "spotify", ExeName: "Spotify.exe", SearchTerm: "SpotifyAB.SpotifyMusic", Strategy: app.PackageQuery,
	})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(location, "Spotify.exe"), out.Path)
	require.False(t, out.Probed)

	require.Equal(t, "powershell", gotCmd)
	require.Equal(t, "Get-AppXPackage -Name 'SpotifyAB.SpotifyMusic' | Format-List InstallLocation", gotArgs[len(gotArgs)-1])
}

func TestPackageQueryFailures(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		err   error
	}{
		{"empty output", []string{""}, nil},
		{"empty location", []string{"InstallLocation :"}, nil},
		{"command failed", nil, errors.New("exit status 1")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query := func(ctx context.Context, workingDir, cmd string, args ...string) ([]string, error) {
				return tt.lines, tt.err
			}
			r := newTestResolver(platform.Windows, WithQuery(query))
			_, err := r.Resolve(context.Background(), app.Descriptor{
				Name: "spotify", ExeName: "Spotify.exe", SearchTerm: "Spotify", Strategy: app.PackageQuery,
			})
			require.ErrorIs(t, err, app.ErrExternalQueryFailed)
			require.Contains(t, err.Error(), "spotify")
			require.Contains(t, err.Error(), "Get-AppXPackage")
		})
	}
}

func TestUnknownStrategy(t *testing.T) {
	_, err := newTestResolver(platform.Windows).Resolve(context.Background(), app.Descriptor{
		Name: "x", ExeName: "x.exe", SearchTerm: "y", Strategy: app.Strategy("Magic"),
	})
	require.ErrorIs(t, err, app.ErrInvalidMethod)
}

func TestFolderSearchSymlinkedBaseFolder(t *testing.T) {
	target := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(target, "v1"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(target, "v1", "tool.exe"), nil, 0o644))

	link := filepath.Join(t.TempDir(), "Apps")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks not available: %v", err)
	}

	r := newTestResolver(platform.MacOS, WithProber(&mockProber{}))
	out, err := r.Resolve(context.Background(), app.Descriptor{
		Name: "tool", ExeName: "tool.exe", SearchTerm: link, Strategy: app.FolderSearch,
	})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(link, "v1", "tool.exe"), out.Path)
}
