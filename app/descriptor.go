package app

import (
	"fmt"
	"strings"

	"github.com/jxsl13/app-lemonator/platform"
)

// Strategy is the discovery algorithm used to find an app's executable.
type Strategy string

const (
	// PackageQuery asks the Windows package manager for the install location.
	PackageQuery Strategy = "PackageQuery"
	// FolderSearch recursively searches a base folder and picks the highest version.
	FolderSearch Strategy = "FolderSearch"
	// Shortcut uses the expanded search term joined with the exe name as is.
	Shortcut Strategy = "Shortcut"
)

func (s Strategy) String() string {
	return string(s)
}

func Strategies() []Strategy {
	return []Strategy{PackageQuery, FolderSearch, Shortcut}
}

// ParseStrategy accepts the strategy names case-insensitively.
// PSGetApp is accepted as an alias of PackageQuery.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "packagequery", "psgetapp":
		return PackageQuery, nil
	case "foldersearch":
		return FolderSearch, nil
	case "shortcut":
		return Shortcut, nil
	default:
		return "", fmt.Errorf("%w: %q (expected one of %v)", ErrInvalidMethod, s, Strategies())
	}
}

// Descriptor is everything the resolver needs to know about an app.
type Descriptor struct {
	ID         int64
	Name       string
	ExeName    string
	Params     string
	SearchTerm string
	Strategy   Strategy
	CachedPath string
	OS         platform.OS
}

func (d Descriptor) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("%w: app name is empty", ErrInvalidApp)
	}
	if d.ExeName == "" {
		return fmt.Errorf("%w: exe name is empty", ErrInvalidApp)
	}
	if d.SearchTerm == "" {
		return fmt.Errorf("%w: search term is empty", ErrInvalidApp)
	}
	if _, err := ParseStrategy(string(d.Strategy)); err != nil {
		return err
	}
	if d.Strategy == PackageQuery && d.OS != platform.Windows {
		return fmt.Errorf("%w: search method %q is only supported on %s", ErrInvalidApp, d.Strategy, platform.Windows)
	}
	return nil
}
