package app

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrFolderNotFound      = errors.New("base folder not found")
	ErrNoMatchFound        = errors.New("no match found")
	ErrUnsupportedPlatform = errors.New("unsupported platform")
	ErrExternalQueryFailed = errors.New("external query failed")
	ErrVersionParseFailed  = errors.New("failed to parse version")
	ErrPathMissing         = errors.New("path does not exist")
	ErrPathMissingAtLaunch = errors.New("path does not exist at launch")
	ErrSpawnFailed         = errors.New("failed to start process")

	ErrInvalidApp    = errors.New("invalid app")
	ErrInvalidMethod = errors.New("invalid search method")
	ErrAppNotFound   = errors.New("app not found")
	ErrAppExists     = errors.New("app already exists")
)

// LaunchError is returned when an app could not be started.
type LaunchError struct {
	App  string
	Path string
	Args []string
	Err  error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("%v: app %q: '%s %s': %v",
		ErrSpawnFailed,
		e.App,
		e.Path,
		strings.Join(e.Args, " "),
		e.Err,
	)
}

func (e *LaunchError) Unwrap() []error {
	return []error{ErrSpawnFailed, e.Err}
}
