// Package probe reads version metadata from executables and app bundles.
package probe

import (
	"context"
	"fmt"

	"github.com/jxsl13/app-lemonator/app"
	"github.com/jxsl13/app-lemonator/logging"
	"github.com/jxsl13/app-lemonator/platform"
	"github.com/jxsl13/app-lemonator/version"
)

// Info is the version metadata of a single candidate.
type Info struct {
	Path        string
	Version     version.Version
	Description string
}

// Prober reads version metadata the way the host OS stores it.
type Prober struct {
	os  platform.OS
	log logging.Logger
}

func NewProber(o platform.OS, log logging.Logger) *Prober {
	return &Prober{
		os:  o,
		log: log,
	}
}

func (p *Prober) Probe(ctx context.Context, path string) (info Info, err error) {
	switch p.os {
	case platform.Windows:
		info, err = readVersionResource(path)
	case platform.MacOS:
		info, err = readBundleInfo(path)
	default:
		return Info{}, fmt.Errorf("%w: version probing is only supported on %s and %s, not on %s",
			app.ErrUnsupportedPlatform, platform.Windows, platform.MacOS, p.os)
	}
	if err != nil {
		return Info{}, err
	}

	info.Path = path
	p.log.Debug(ctx, "probed file version", map[string]any{
		"path":        path,
		"version":     info.Version.String(),
		"description": info.Description,
	})
	return info, nil
}
