// Package launch starts resolved apps as detached processes.
package launch

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/jxsl13/app-lemonator/app"
	"github.com/jxsl13/app-lemonator/logging"
	"github.com/jxsl13/app-lemonator/platform"
	"github.com/jxsl13/app-lemonator/utils"
)

// Confirmation describes a started process.
type Confirmation struct {
	App  string
	Path string
	Args string
}

func (c Confirmation) String() string {
	if c.Args == "" {
		return fmt.Sprintf("opened %s: %s", c.App, c.Path)
	}
	return fmt.Sprintf("opened %s: %s %s", c.App, c.Path, c.Args)
}

// commandLine maps an app path and its arguments to the command that starts it.
type commandLine func(path string, args []string) (string, []string)

func direct(path string, args []string) (string, []string) {
	return path, args
}

func macOpen(path string, args []string) (string, []string) {
	cmdArgs := []string{path}
	if len(args) > 0 {
		cmdArgs = append(cmdArgs, "--args")
		cmdArgs = append(cmdArgs, args...)
	}
	return "open", cmdArgs
}

// StartFunc starts cmd without waiting for it to exit.
type StartFunc func(cmd *exec.Cmd) error

func startDetached(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}

type Launcher struct {
	os      platform.OS
	log     logging.Logger
	command commandLine
	start   StartFunc
}

type Option func(*Launcher)

func WithLogger(log logging.Logger) Option {
	return func(l *Launcher) {
		l.log = log
	}
}

func WithStart(start StartFunc) Option {
	return func(l *Launcher) {
		l.start = start
	}
}

// New selects the launch mechanism of the given OS.
func New(o platform.OS, opts ...Option) (*Launcher, error) {
	var command commandLine
	switch o {
	case platform.Windows:
		command = direct
	case platform.MacOS:
		command = macOpen
	default:
		return nil, fmt.Errorf("%w: cannot launch apps on %s", app.ErrUnsupportedPlatform, o)
	}

	l := &Launcher{
		os:      o,
		log:     logging.Nop(),
		command: command,
		start:   startDetached,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Launch starts the app at path and returns as soon as the process is running.
// The started process outlives the caller.
func (l *Launcher) Launch(ctx context.Context, name, path string, args []string) (Confirmation, error) {
	if err := ctx.Err(); err != nil {
		return Confirmation{}, err
	}

	if !utils.AppExists(l.os, path) {
		return Confirmation{}, fmt.Errorf("%w: app %q: %q", app.ErrPathMissingAtLaunch, name, path)
	}

	// not bound to ctx, canceling it would kill the app
	cmdName, cmdArgs := l.command(path, args)
	cmd := exec.Command(cmdName, cmdArgs...)

	l.log.Debug(ctx, "starting process", map[string]any{
		"app":  name,
		"cmd":  cmdName,
		"args": cmdArgs,
	})

	if err := l.start(cmd); err != nil {
		return Confirmation{}, &app.LaunchError{
			App:  name,
			Path: path,
			Args: args,
			Err:  err,
		}
	}

	c := Confirmation{
		App:  name,
		Path: path,
		Args: strings.Join(args, " "),
	}
	l.log.Info(ctx, "started process", map[string]any{
		"app":  name,
		"path": path,
		"args": c.Args,
	})
	return c, nil
}
