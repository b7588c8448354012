// Package folders expands %token% placeholders in search terms into concrete base folders.
package folders

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"regexp"

	"github.com/jxsl13/app-lemonator/logging"
	"github.com/jxsl13/app-lemonator/platform"
)

var placeholder = regexp.MustCompile(`%([^%]+)%`)

// Expander replaces a base folder placeholder with the folder it stands for.
// Failures to resolve a placeholder never fail the expansion, the placeholder is replaced
// with an empty string instead and the reason is logged.
type Expander struct {
	env      platform.Env
	log      logging.Logger
	readFile func(name string) ([]byte, error)
}

// Option configures an Expander.
type Option func(*Expander)

// WithReadFile replaces the function used to read the Dropbox info file.
func WithReadFile(f func(name string) ([]byte, error)) Option {
	return func(e *Expander) {
		e.readFile = f
	}
}

// NewExpander creates an Expander that resolves folder aliases for env.
func NewExpander(env platform.Env, log logging.Logger, opts ...Option) *Expander {
	e := &Expander{
		env:      env,
		log:      log,
		readFile: os.ReadFile,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Expand substitutes the first %token% in term. A term without placeholder is returned unchanged.
func (e *Expander) Expand(ctx context.Context, term string) string {
	loc := placeholder.FindStringSubmatchIndex(term)
	if loc == nil {
		return term
	}

	name := term[loc[2]:loc[3]]
	value := ""

	t, ok := ParseToken(name)
	if ok {
		value = e.Resolve(ctx, t)
	} else {
		e.log.Error(ctx, "unknown path variable", nil, map[string]any{
			"variable":    name,
			"search_term": term,
			"known":       Tokens(),
		})
	}

	expanded := term[:loc[0]] + value + term[loc[1]:]
	e.log.Debug(ctx, "expanded base folder", map[string]any{
		"search_term": term,
		"expanded":    expanded,
	})
	return expanded
}

// Resolve returns the folder a token stands for or an empty string.
func (e *Expander) Resolve(ctx context.Context, t Token) string {
	if t.isDropbox() {
		return e.dropboxFolder(ctx, t)
	}

	for _, name := range envNames[t] {
		if value, ok := e.env.Lookup(name); ok && value != "" {
			e.log.Debug(ctx, "environment folder", map[string]any{
				"token":    t,
				"variable": name,
				"folder":   value,
			})
			return value
		}
	}

	e.log.Warn(ctx, "failed to retrieve environment folder", map[string]any{
		"token":     t,
		"variables": envNames[t],
	})
	return ""
}

func (e *Expander) dropboxFolder(ctx context.Context, t Token) string {
	for _, file := range dropboxInfoFiles(e.env) {
		data, err := e.readFile(file)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				e.log.Error(ctx, "failed to read dropbox info file", err, map[string]any{
					"file": file,
				})
			}
			continue
		}

		folder, err := DropboxPath(t, data)
		if err != nil {
			e.log.Error(ctx, "failed to parse dropbox info file", err, map[string]any{
				"file": file,
			})
			return ""
		}
		if folder == "" {
			e.log.Warn(ctx, "dropbox account not configured", map[string]any{
				"token": t,
				"file":  file,
			})
		}
		return folder
	}

	e.log.Error(ctx, "failed to find dropbox info file", nil, map[string]any{
		"token":      t,
		"candidates": dropboxInfoFiles(e.env),
	})
	return ""
}
