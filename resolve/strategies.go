package resolve

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jxsl13/app-lemonator/app"
	"github.com/jxsl13/app-lemonator/platform"
	"github.com/jxsl13/app-lemonator/utils"
)

const installLocationPrefix = "InstallLocation :"

type packageQuery struct {
	*Resolver
}

func (s *packageQuery) resolve(ctx context.Context, d app.Descriptor) (Outcome, error) {
	if s.env.OS != platform.Windows {
		return Outcome{}, fmt.Errorf("%w: package queries require %s, host is %s",
			app.ErrUnsupportedPlatform, platform.Windows, s.env.OS)
	}

	cmd := "powershell"
	args := []string{
		"-NoProfile",
		"-NonInteractive",
		"-Command",
		fmt.Sprintf("Get-AppXPackage -Name %s | Format-List InstallLocation", utils.PowerShellQuote(d.SearchTerm)),
	}
	commandLine := cmd + " " + strings.Join(args, " ")

	lines, err := s.query(ctx, "", cmd, args...)
	if err != nil {
		return Outcome{}, fmt.Errorf("%w: app %q: %s: %w", app.ErrExternalQueryFailed, d.Name, commandLine, err)
	}

	location, ok := utils.PropertyValue(lines, installLocationPrefix)
	if !ok || location == "" {
		return Outcome{}, fmt.Errorf("%w: app %q: %s: no install location in output", app.ErrExternalQueryFailed, d.Name, commandLine)
	}

	s.log.Debug(ctx, "package install location", map[string]any{
		"app":      d.Name,
		"location": location,
	})
	return s.describe(ctx, filepath.Join(location, d.ExeName)), nil
}

type folderSearch struct {
	*Resolver
}

func (s *folderSearch) resolve(ctx context.Context, d app.Descriptor) (Outcome, error) {
	base := s.expander.Expand(ctx, d.SearchTerm)
	if !utils.DirExists(base) {
		return Outcome{}, fmt.Errorf("%w: %q", app.ErrFolderNotFound, base)
	}

	candidates, err := s.finder.Find(ctx, base, d.ExeName)
	if err != nil {
		return Outcome{}, err
	}
	if len(candidates) == 0 {
		return Outcome{}, fmt.Errorf("%w: %q in %q", app.ErrNoMatchFound, d.ExeName, base)
	}

	s.log.Debug(ctx, "found candidates", map[string]any{
		"app":        d.Name,
		"candidates": candidates,
	})
	return s.rank(ctx, candidates), nil
}

// rank picks the candidate with the greatest version. Candidates that cannot be probed
// do not take part. If no candidate can be probed, the first one is picked.
func (s *folderSearch) rank(ctx context.Context, candidates []string) Outcome {
	var (
		best  Outcome
		found bool
	)
	for _, c := range candidates {
		info, err := s.prober.Probe(ctx, c)
		if err != nil {
			s.log.Warn(ctx, "skipping candidate without version info", map[string]any{
				"path":  c,
				"error": err.Error(),
			})
			continue
		}

		if !found || best.Version.Less(info.Version) {
			best = Outcome{
				Path:        c,
				Version:     info.Version,
				Description: info.Description,
				Probed:      true,
			}
			found = true
		}
	}

	if !found {
		s.log.Warn(ctx, "no candidate could be probed, picking the first one", map[string]any{
			"path": candidates[0],
		})
		return Outcome{Path: candidates[0]}
	}
	return best
}

type shortcut struct {
	*Resolver
}

func (s *shortcut) resolve(ctx context.Context, d app.Descriptor) (Outcome, error) {
	path := filepath.Join(s.expander.Expand(ctx, d.SearchTerm), d.ExeName)
	if !utils.AppExists(s.env.OS, path) {
		return Outcome{}, fmt.Errorf("%w: %q", app.ErrPathMissing, path)
	}
	return s.describe(ctx, path), nil
}
