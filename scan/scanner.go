// Package scan finds files by name below a base folder.
package scan

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/jxsl13/app-lemonator/logging"
)

// Progress is called for every visited entry with the number of matches found so far.
type Progress func(current string, matches int)

// Scanner walks a directory tree sequentially, in lexical order.
type Scanner struct {
	log      logging.Logger
	progress Progress
}

type Option func(*Scanner)

func WithProgress(p Progress) Option {
	return func(s *Scanner) {
		s.progress = p
	}
}

func NewScanner(log logging.Logger, opts ...Option) *Scanner {
	s := &Scanner{
		log: log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Find returns the absolute paths of all entries below root whose base name equals name, ignoring case.
// Directories match as well, macOS app bundles are directories.
// The caller must make sure that root is an existing directory.
func (s *Scanner) Find(ctx context.Context, root, name string) ([]string, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	// WalkDir does not descend into a symlinked root, walk its target instead
	walkRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return nil, err
	}

	s.log.Debug(ctx, "searching folder", map[string]any{
		"root": root,
		"name": name,
	})

	matches := make([]string, 0, 4)
	err = filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if err != nil {
			if path == walkRoot {
				return err
			}
			// unreadable entries are skipped, the walk continues with the next sibling
			s.log.Debug(ctx, "skipping unreadable path", map[string]any{
				"path":  path,
				"error": err.Error(),
			})
			return nil
		}

		// matches are reported below the root the caller passed in
		reported := underRoot(root, walkRoot, path)

		if strings.EqualFold(d.Name(), name) {
			matches = append(matches, reported)
		}

		if s.progress != nil {
			s.progress(reported, len(matches))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug(ctx, "search finished", map[string]any{
		"root":    root,
		"name":    name,
		"matches": matches,
	})
	return matches, nil
}

func underRoot(root, walkRoot, path string) string {
	if root == walkRoot {
		return path
	}
	rel, err := filepath.Rel(walkRoot, path)
	if err != nil {
		return path
	}
	return filepath.Join(root, rel)
}
