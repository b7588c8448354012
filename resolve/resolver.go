// Package resolve turns an app descriptor into the path of the executable to launch.
package resolve

import (
	"context"
	"fmt"

	"github.com/jxsl13/app-lemonator/app"
	"github.com/jxsl13/app-lemonator/folders"
	"github.com/jxsl13/app-lemonator/logging"
	"github.com/jxsl13/app-lemonator/platform"
	"github.com/jxsl13/app-lemonator/probe"
	"github.com/jxsl13/app-lemonator/scan"
	"github.com/jxsl13/app-lemonator/utils"
	"github.com/jxsl13/app-lemonator/version"
)

// Outcome is the result of a successful resolution.
// Probed is false when no version metadata could be read for Path.
type Outcome struct {
	Path        string
	Version     version.Version
	Description string
	Probed      bool
}

// Expander replaces folder aliases in a search term with real paths.
type Expander interface {
	Expand(ctx context.Context, term string) string
}

// Finder returns the files below root whose name matches name, ignoring case.
type Finder interface {
	Find(ctx context.Context, root, name string) ([]string, error)
}

// Prober reads version information from an executable.
type Prober interface {
	Probe(ctx context.Context, path string) (probe.Info, error)
}

// QueryFunc runs an external command and returns its output lines.
type QueryFunc func(ctx context.Context, workingDir, cmd string, args ...string) ([]string, error)

type strategy interface {
	resolve(ctx context.Context, d app.Descriptor) (Outcome, error)
}

type Resolver struct {
	env      platform.Env
	log      logging.Logger
	expander Expander
	finder   Finder
	prober   Prober
	query    QueryFunc

	strategies map[app.Strategy]strategy
}

// Option configures a Resolver.
type Option func(*Resolver)

func WithExpander(e Expander) Option {
	return func(r *Resolver) {
		r.expander = e
	}
}

func WithFinder(f Finder) Option {
	return func(r *Resolver) {
		r.finder = f
	}
}

func WithProber(p Prober) Option {
	return func(r *Resolver) {
		r.prober = p
	}
}

func WithQuery(q QueryFunc) Option {
	return func(r *Resolver) {
		r.query = q
	}
}

// New creates a Resolver for env with the default strategies.
func New(env platform.Env, log logging.Logger, opts ...Option) *Resolver {
	r := &Resolver{
		env:      env,
		log:      log,
		expander: folders.NewExpander(env, log),
		finder:   scan.NewScanner(log),
		prober:   probe.NewProber(env.OS, log),
		query:    utils.ExecuteQuiet,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.strategies = map[app.Strategy]strategy{
		app.PackageQuery: &packageQuery{r},
		app.FolderSearch: &folderSearch{r},
		app.Shortcut:     &shortcut{r},
	}
	return r
}

// Resolve locates the executable of d with the strategy d asks for.
func (r *Resolver) Resolve(ctx context.Context, d app.Descriptor) (Outcome, error) {
	s, ok := r.strategies[d.Strategy]
	if !ok {
		return Outcome{}, fmt.Errorf("%w: app %q: %q", app.ErrInvalidMethod, d.Name, d.Strategy)
	}

	r.log.Info(ctx, "resolving app", map[string]any{
		"app":         d.Name,
		"exe":         d.ExeName,
		"strategy":    d.Strategy,
		"search_term": d.SearchTerm,
	})

	out, err := s.resolve(ctx, d)
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to resolve app %q using %s with search term %q: %w",
			d.Name, d.Strategy, d.SearchTerm, err)
	}

	r.log.Info(ctx, "resolved app", map[string]any{
		"app":         d.Name,
		"path":        out.Path,
		"version":     out.Version.String(),
		"description": out.Description,
	})
	return out, nil
}

// describe reads metadata of a path that was found without ranking.
// Failing to do so does not fail the resolution.
func (r *Resolver) describe(ctx context.Context, path string) Outcome {
	info, err := r.prober.Probe(ctx, path)
	if err != nil {
		r.log.Warn(ctx, "failed to read version info", map[string]any{
			"path":  path,
			"error": err.Error(),
		})
		return Outcome{Path: path}
	}
	return Outcome{
		Path:        path,
		Version:     info.Version,
		Description: info.Description,
		Probed:      true,
	}
}
