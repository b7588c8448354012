// Package registry stores the registered apps in a sqlite database.
package registry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/jxsl13/app-lemonator/app"
	"github.com/jxsl13/app-lemonator/logging"
	"github.com/jxsl13/app-lemonator/platform"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS apps (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	app_name         TEXT NOT NULL UNIQUE COLLATE NOCASE,
	exe_name         TEXT NOT NULL,
	params           TEXT NOT NULL DEFAULT '',
	search_term      TEXT NOT NULL,
	search_method    TEXT NOT NULL,
	app_path         TEXT NOT NULL DEFAULT '',
	app_description  TEXT NOT NULL DEFAULT '',
	app_version      TEXT NOT NULL DEFAULT '',
	last_opened      TEXT,
	last_updated     TEXT,
	operating_system TEXT NOT NULL
);`

const columns = `id, app_name, exe_name, params, search_term, search_method,
	app_path, app_description, app_version, last_opened, last_updated, operating_system`

// App is a registered app. Zero timestamps mean never.
type App struct {
	ID          int64
	Name        string
	ExeName     string
	Params      string
	SearchTerm  string
	Strategy    app.Strategy
	Path        string
	Description string
	Version     string
	LastOpened  time.Time
	LastUpdated time.Time
	OS          platform.OS
}

// Descriptor returns the fields of a that the resolver works with.
func (a App) Descriptor() app.Descriptor {
	return app.Descriptor{
		ID:         a.ID,
		Name:       a.Name,
		ExeName:    a.ExeName,
		Params:     a.Params,
		SearchTerm: a.SearchTerm,
		Strategy:   a.Strategy,
		CachedPath: a.Path,
		OS:         a.OS,
	}
}

type Registry struct {
	db   *sql.DB
	path string
	log  logging.Logger
	now  func() time.Time
}

// Open opens the database at path and creates it and its parent directories if needed.
func Open(ctx context.Context, path string, log logging.Logger) (*Registry, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create registry directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open registry %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create registry schema in %s: %w", path, err)
	}

	log.Debug(ctx, "opened registry", map[string]any{
		"path": path,
	})
	return &Registry{
		db:   db,
		path: path,
		log:  log,
		now:  time.Now,
	}, nil
}

func (r *Registry) Path() string {
	return r.path
}

func (r *Registry) Close() error {
	return r.db.Close()
}

// Add inserts a new app. Names are unique regardless of case.
func (r *Registry) Add(ctx context.Context, a App) (App, error) {
	strategy, err := app.ParseStrategy(a.Strategy.String())
	if err != nil {
		return App{}, err
	}
	a.Strategy = strategy

	if err := a.Descriptor().Validate(); err != nil {
		return App{}, err
	}

	_, err = r.Get(ctx, a.Name)
	if err == nil {
		return App{}, fmt.Errorf("%w: %q", app.ErrAppExists, a.Name)
	}
	if !errors.Is(err, app.ErrAppNotFound) {
		return App{}, err
	}

	res, err := r.db.ExecContext(ctx, `
INSERT INTO apps (app_name, exe_name, params, search_term, search_method,
	app_path, app_description, app_version, last_opened, last_updated, operating_system)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.Name,
		a.ExeName,
		a.Params,
		a.SearchTerm,
		a.Strategy.String(),
		a.Path,
		a.Description,
		a.Version,
		formatTime(a.LastOpened),
		formatTime(a.LastUpdated),
		a.OS.String(),
	)
	if err != nil {
		return App{}, fmt.Errorf("failed to add app %q: %w", a.Name, err)
	}

	a.ID, err = res.LastInsertId()
	if err != nil {
		return App{}, fmt.Errorf("failed to get id of app %q: %w", a.Name, err)
	}

	r.log.Info(ctx, "added app", map[string]any{
		"app":         a.Name,
		"exe":         a.ExeName,
		"search_term": a.SearchTerm,
		"strategy":    a.Strategy,
	})
	return a, nil
}

// Get looks up an app by name, ignoring case.
func (r *Registry) Get(ctx context.Context, name string) (App, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+columns+` FROM apps WHERE app_name = ? COLLATE NOCASE`, name)
	a, err := scanApp(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return App{}, fmt.Errorf("%w: %q", app.ErrAppNotFound, name)
		}
		return App{}, fmt.Errorf("failed to get app %q: %w", name, err)
	}
	return a, nil
}

// List returns all apps ordered by name.
func (r *Registry) List(ctx context.Context) ([]App, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+columns+` FROM apps ORDER BY app_name COLLATE NOCASE`)
	if err != nil {
		return nil, fmt.Errorf("failed to list apps: %w", err)
	}
	defer rows.Close()

	apps := []App{}
	for rows.Next() {
		a, err := scanApp(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to read app: %w", err)
		}
		apps = append(apps, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list apps: %w", err)
	}
	return apps, nil
}

func (r *Registry) Delete(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM apps WHERE app_name = ? COLLATE NOCASE`, name)
	if err != nil {
		return fmt.Errorf("failed to delete app %q: %w", name, err)
	}
	if err := expectAffected(res, name); err != nil {
		return err
	}

	r.log.Info(ctx, "deleted app", map[string]any{
		"app": name,
	})
	return nil
}

// UpdatePath stores a freshly resolved path and stamps the update time.
func (r *Registry) UpdatePath(ctx context.Context, name, path, description, version string) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE apps SET app_path = ?, app_description = ?, app_version = ?, last_updated = ?
WHERE app_name = ? COLLATE NOCASE`,
		path,
		description,
		version,
		formatTime(r.now()),
		name,
	)
	if err != nil {
		return fmt.Errorf("failed to update path of app %q: %w", name, err)
	}
	return expectAffected(res, name)
}

func (r *Registry) TouchLastOpened(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE apps SET last_opened = ? WHERE app_name = ? COLLATE NOCASE`,
		formatTime(r.now()),
		name,
	)
	if err != nil {
		return fmt.Errorf("failed to update last opened time of app %q: %w", name, err)
	}
	return expectAffected(res, name)
}

// Reset removes the database file at path. A missing file is not an error.
func Reset(path string) error {
	for _, file := range []string{path, path + "-journal", path + "-wal", path + "-shm"} {
		err := os.Remove(file)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to remove %s: %w", file, err)
		}
	}
	return nil
}

func expectAffected(res sql.Result, name string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", app.ErrAppNotFound, name)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanApp(s scanner) (App, error) {
	var (
		a           App
		strategy    string
		osName      string
		lastOpened  sql.NullString
		lastUpdated sql.NullString
	)
	err := s.Scan(
		&a.ID,
		&a.Name,
		&a.ExeName,
		&a.Params,
		&a.SearchTerm,
		&strategy,
		&a.Path,
		&a.Description,
		&a.Version,
		&lastOpened,
		&lastUpdated,
		&osName,
	)
	if err != nil {
		return App{}, err
	}

	a.Strategy, err = app.ParseStrategy(strategy)
	if err != nil {
		return App{}, err
	}
	a.OS, err = platform.ParseOS(osName)
	if err != nil {
		return App{}, err
	}
	a.LastOpened = parseTime(lastOpened)
	a.LastUpdated = parseTime(lastUpdated)
	return a, nil
}

func formatTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s sql.NullString) time.Time {
	if !s.Valid {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return time.Time{}
	}
	return t
}
