package registry

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jxsl13/app-lemonator/app"
	"github.com/jxsl13/app-lemonator/logging"
	"github.com/jxsl13/app-lemonator/platform"
	"github.com/stretchr/testify/require"
)

func openTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := Open(context.Background(), filepath.Join(t.TempDir(), "nested", "apps.db"), logging.Nop())
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, r.Close())
	})
	return r
}

func rider() App {
	return App{
		Name:       "Rider",
		ExeName:    "rider64.exe",
		SearchTerm: `%local-app-data%\JetBrains`,
		Strategy:   "foldersearch",
		OS:         platform.Windows,
	}
}

func TestAddGet(t *testing.T) {
	r := openTestRegistry(t)
	ctx := context.Background()

	added, err := r.Add(ctx, rider())
	require.NoError(t, err)
	require.NotZero(t, added.ID)
	require.Equal(t, app.FolderSearch, added.Strategy)

	got, err := r.Get(ctx, "RIDER")
	require.NoError(t, err)
	require.Equal(t, added.ID, got.ID)
	require.Equal(t, "Rider", got.Name)
	require.Equal(t, `%local-app-data%\JetBrains`, got.SearchTerm)
	require.Equal(t, platform.Windows, got.OS)
	require.True(t, got.LastOpened.IsZero())
	require.True(t, got.LastUpdated.IsZero())

	d := got.Descriptor()
	require.Equal(t, "rider64.exe", d.ExeName)
	require.Equal(t, app.FolderSearch, d.Strategy)
}

func TestAddDuplicate(t *testing.T) {
	r := openTestRegistry(t)
	ctx := context.Background()

	_, err := r.Add(ctx, rider())
	require.NoError(t, err)

	dup := rider()
	dup.Name = "rider"
	_, err = r.Add(ctx, dup)
	require.ErrorIs(t, err, app.ErrAppExists)
}

func TestAddInvalid(t *testing.T) {
	r := openTestRegistry(t)
	ctx := context.Background()

	a := rider()
	a.ExeName = ""
	_, err := r.Add(ctx, a)
	require.ErrorIs(t, err, app.ErrInvalidApp)

	a = rider()
	a.Strategy = "magic"
	_, err = r.Add(ctx, a)
	require.ErrorIs(t, err, app.ErrInvalidMethod)

	a = rider()
	a.Strategy = app.PackageQuery
	a.OS = platform.MacOS
	_, err = r.Add(ctx, a)
	require.ErrorIs(t, err, app.ErrInvalidApp)
}

func TestListDelete(t *testing.T) {
	r := openTestRegistry(t)
	ctx := context.Background()

	for _, name := range []string{"zed", "Alpha", "code"} {
		a := rider()
		a.Name = name
		_, err := r.Add(ctx, a)
		require.NoError(t, err)
	}

	apps, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, apps, 3)
	require.Equal(t, []string{"Alpha", "code", "zed"}, []string{apps[0].Name, apps[1].Name, apps[2].Name})

	require.NoError(t, r.Delete(ctx, "CODE"))
	require.ErrorIs(t, r.Delete(ctx, "code"), app.ErrAppNotFound)

	apps, err = r.List(ctx)
	require.NoError(t, err)
	require.Len(t, apps, 2)
}

func TestUpdatePathAndTouch(t *testing.T) {
	r := openTestRegistry(t)
	ctx := context.Background()
	now := time.Date(2023, 10, 1, 12, 30, 0, 0, time.UTC)
	r.now = func() time.Time { return now }

	_, err := r.Add(ctx, rider())
	require.NoError(t, err)

	require.NoError(t, r.UpdatePath(ctx, "rider", `C:\x\rider64.exe`, "JetBrains Rider", "2023.2.1.0"))
	require.NoError(t, r.TouchLastOpened(ctx, "rider"))

	got, err := r.Get(ctx, "rider")
	require.NoError(t, err)
	require.Equal(t, `C:\x\rider64.exe`, got.Path)
	require.Equal(t, "JetBrains Rider", got.Description)
	require.Equal(t, "2023.2.1.0", got.Version)
	require.True(t, now.Equal(got.LastUpdated))
	require.True(t, now.Equal(got.LastOpened))
	require.Equal(t, `C:\x\rider64.exe`, got.Descriptor().CachedPath)

	require.ErrorIs(t, r.UpdatePath(ctx, "missing", "", "", ""), app.ErrAppNotFound)
	require.ErrorIs(t, r.TouchLastOpened(ctx, "missing"), app.ErrAppNotFound)
}

func TestReset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "apps.db")
	r, err := Open(context.Background(), path, logging.Nop())
	require.NoError(t, err)
	require.NoError(t, r.Close())

	require.NoError(t, Reset(path))
	_, err = os.Stat(path)
	require.True(t, os.IsNotExist(err))

	require.NoError(t, Reset(path))
}
