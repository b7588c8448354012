// Package transfer exports the registry to JSON documents and imports apps from JSON or csv files.
package transfer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/google/uuid"
	"github.com/jxsl13/app-lemonator/app"
	"github.com/jxsl13/app-lemonator/csv"
	"github.com/jxsl13/app-lemonator/defaults"
	"github.com/jxsl13/app-lemonator/platform"
	"github.com/jxsl13/app-lemonator/registry"
)

var (
	ErrFileExists         = errors.New("file already exists")
	ErrIncompatibleFormat = errors.New("incompatible export format")
)

type Document struct {
	Version string   `json:"version"`
	Apps    []Record `json:"apps"`
}

type Record struct {
	Name         string `json:"app_name"`
	ExeName      string `json:"exe_name"`
	Params       string `json:"params,omitempty"`
	SearchTerm   string `json:"search_term"`
	SearchMethod string `json:"search_method"`
	Path         string `json:"app_path,omitempty"`
	Description  string `json:"app_description,omitempty"`
	Version      string `json:"app_version,omitempty"`
	OS           string `json:"operating_system,omitempty"`
}

func NewDocument(apps []registry.App) Document {
	records := make([]Record, 0, len(apps))
	for _, a := range apps {
		records = append(records, Record{
			Name:         a.Name,
			ExeName:      a.ExeName,
			Params:       a.Params,
			SearchTerm:   a.SearchTerm,
			SearchMethod: a.Strategy.String(),
			Path:         a.Path,
			Description:  a.Description,
			Version:      a.Version,
			OS:           a.OS.String(),
		})
	}
	return Document{
		Version: defaults.ExportVersion,
		Apps:    records,
	}
}

// DefaultFileName is unique per call.
func DefaultFileName(now time.Time) string {
	return fmt.Sprintf("%s-%s-%s.json", defaults.AppName, now.Format("2006-01-02"), uuid.NewString())
}

// ExportPath returns target as is unless it is empty or a directory,
// in which case a default file name is used.
func ExportPath(target string, now time.Time) string {
	if target == "" {
		return filepath.Join(defaults.ExportDir(), DefaultFileName(now))
	}
	if fi, err := os.Stat(target); err == nil && fi.IsDir() {
		return filepath.Join(target, DefaultFileName(now))
	}
	return target
}

// Write refuses to replace an existing file unless force is set.
func Write(path string, doc Document, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrFileExists, path)
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// Read parses an export document, a bare JSON array of apps or a csv file, depending on its extension and content.
// Apps without an operating system are tagged with host.
func Read(path string, comma rune, columns csv.Columns, host platform.OS) ([]registry.App, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return csv.ReadApps(path, comma, columns, host)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, host)
}

// Parse decodes an export document or a bare JSON array of apps.
func Parse(data []byte, host platform.OS) ([]registry.App, error) {
	var records []Record

	trimmed := bytes.TrimSpace(data)
	if bytes.HasPrefix(trimmed, []byte("[")) {
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("invalid app list: %w", err)
		}
	} else {
		var doc Document
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, fmt.Errorf("invalid export document: %w", err)
		}
		if err := CheckVersion(doc.Version); err != nil {
			return nil, err
		}
		records = doc.Apps
	}

	apps := make([]registry.App, 0, len(records))
	for idx, r := range records {
		a, err := r.app(host)
		if err != nil {
			return nil, fmt.Errorf("app %d (%q): %w", idx, r.Name, err)
		}
		apps = append(apps, a)
	}
	return apps, nil
}

// CheckVersion accepts every document version this release is able to read.
func CheckVersion(v string) error {
	if v == "" {
		return fmt.Errorf("%w: missing version", ErrIncompatibleFormat)
	}
	version, err := semver.NewVersion(v)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrIncompatibleFormat, v, err)
	}
	constraint, err := semver.NewConstraint(defaults.ImportConstraint)
	if err != nil {
		return err
	}
	if !constraint.Check(version) {
		return fmt.Errorf("%w: version %s does not match %s", ErrIncompatibleFormat, version, defaults.ImportConstraint)
	}
	return nil
}

func (r Record) app(host platform.OS) (registry.App, error) {
	strategy, err := app.ParseStrategy(r.SearchMethod)
	if err != nil {
		return registry.App{}, err
	}

	o := host
	if r.OS != "" {
		o, err = platform.ParseOS(r.OS)
		if err != nil {
			return registry.App{}, err
		}
	}

	return registry.App{
		Name:        r.Name,
		ExeName:     r.ExeName,
		Params:      r.Params,
		SearchTerm:  r.SearchTerm,
		Strategy:    strategy,
		Path:        r.Path,
		Description: r.Description,
		Version:     r.Version,
		OS:          o,
	}, nil
}

type Store interface {
	Add(ctx context.Context, a registry.App) (registry.App, error)
}

// Result lists the names of imported and skipped apps.
type Result struct {
	Imported []string
	Skipped  []string
}

// Import adds every app that is not registered yet. Existing apps are skipped.
func Import(ctx context.Context, store Store, apps []registry.App) (Result, error) {
	var result Result
	for _, a := range apps {
		_, err := store.Add(ctx, a)
		switch {
		case err == nil:
			result.Imported = append(result.Imported, a.Name)
		case errors.Is(err, app.ErrAppExists):
			result.Skipped = append(result.Skipped, a.Name)
		default:
			return result, fmt.Errorf("failed to import app %q: %w", a.Name, err)
		}
	}
	return result, nil
}
