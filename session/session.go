// Package session wires the registry, the logger and the host environment for a single command run.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jxsl13/app-lemonator/defaults"
	"github.com/jxsl13/app-lemonator/launch"
	"github.com/jxsl13/app-lemonator/logging"
	"github.com/jxsl13/app-lemonator/platform"
	"github.com/jxsl13/app-lemonator/progress"
	"github.com/jxsl13/app-lemonator/registry"
	"github.com/jxsl13/app-lemonator/resolve"
	"github.com/jxsl13/app-lemonator/scan"
	"github.com/jxsl13/app-lemonator/utils"
	"github.com/spf13/cobra"
)

// Config is shared by all subcommands.
type Config struct {
	DB       string `koanf:"db" description:"path to the app registry database"`
	LogLevel string `koanf:"log-level" description:"console log level (debug, info, warn, error)"`
	LogFile  string `koanf:"log-file" description:"path to the rolling log file, empty disables file logging"`
}

func DefaultConfig() *Config {
	return &Config{
		DB:       defaults.DatabasePath(),
		LogLevel: defaults.LogLevel,
		LogFile:  defaults.LogFile(),
	}
}

func (c *Config) Validate() error {
	if c.DB == "" {
		return errors.New("registry database path is empty")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

type Session struct {
	Env      platform.Env
	Log      logging.Logger
	Registry *registry.Registry

	// Progress receives the scan spinner, nil disables it.
	Progress io.Writer

	logger *logging.ZapLogger
}

// Open creates the logger and opens the registry.
func Open(ctx context.Context, cfg *Config) (*Session, error) {
	logger, err := logging.New(logging.Options{
		Level:   cfg.LogLevel,
		File:    cfg.LogFile,
		Console: os.Stderr,
	})
	if err != nil {
		return nil, err
	}

	reg, err := registry.Open(ctx, cfg.DB, logger)
	if err != nil {
		_ = logger.Close()
		return nil, err
	}

	return &Session{
		Env:      platform.Host(),
		Log:      logger,
		Registry: reg,
		Progress: os.Stderr,
		logger:   logger,
	}, nil
}

func (s *Session) Close() error {
	return errors.Join(s.Registry.Close(), s.logger.Close())
}

// Refresh resolves a again and stores the outcome in the registry.
func (s *Session) Refresh(ctx context.Context, a registry.App) (registry.App, error) {
	if a.OS != s.Env.OS {
		s.Log.Warn(ctx, "app was registered on a different operating system", map[string]any{
			"app":        a.Name,
			"registered": a.OS,
			"host":       s.Env.OS,
		})
	}

	var opts []scan.Option
	var spinner *progress.Spinner
	if s.Progress != nil {
		spinner = progress.NewSpinner(s.Progress, fmt.Sprintf("searching %s", a.ExeName))
		opts = append(opts, scan.WithProgress(spinner.Update))
	}

	r := resolve.New(s.Env, s.Log, resolve.WithFinder(scan.NewScanner(s.Log, opts...)))
	out, err := r.Resolve(ctx, a.Descriptor())
	if spinner != nil {
		_ = spinner.Finish()
	}
	if err != nil {
		return registry.App{}, err
	}

	v := ""
	if out.Probed {
		v = out.Version.String()
	}
	if err := s.Registry.UpdatePath(ctx, a.Name, out.Path, out.Description, v); err != nil {
		return registry.App{}, err
	}
	return s.Registry.Get(ctx, a.Name)
}

// CompleteAppNames completes the first argument with the names of all registered apps.
func CompleteAppNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	dbPath := defaults.DatabasePath()
	if f := cmd.Flags().Lookup("db"); f != nil && f.Value.String() != "" {
		dbPath = f.Value.String()
	}
	if _, err := os.Stat(dbPath); err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	reg, err := registry.Open(ctx, dbPath, logging.Nop())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	defer reg.Close()

	apps, err := reg.List(ctx)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	names := make([]string, 0, len(apps))
	for _, a := range apps {
		if strings.HasPrefix(strings.ToLower(a.Name), strings.ToLower(toComplete)) {
			names = append(names, a.Name)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

// Launcher starts an app at path.
type Launcher interface {
	Launch(ctx context.Context, name, path string, args []string) (launch.Confirmation, error)
}

// OpenApp launches the registered app name. The stored path is used unless refresh is set
// or the path no longer exists, in which case the app is resolved and the new path is stored first.
func (s *Session) OpenApp(ctx context.Context, name string, refresh bool, l Launcher) (launch.Confirmation, error) {
	a, err := s.Registry.Get(ctx, name)
	if err != nil {
		return launch.Confirmation{}, err
	}

	if refresh || !utils.AppExists(s.Env.OS, a.Path) {
		s.Log.Debug(ctx, "resolving app path", map[string]any{
			"app":     a.Name,
			"cached":  a.Path,
			"refresh": refresh,
		})
		a, err = s.Refresh(ctx, a)
		if err != nil {
			return launch.Confirmation{}, err
		}
	}

	confirmation, err := l.Launch(ctx, a.Name, a.Path, launch.Tokenize(a.Params))
	if err != nil {
		return launch.Confirmation{}, err
	}

	if err := s.Registry.TouchLastOpened(ctx, a.Name); err != nil {
		s.Log.Warn(ctx, "failed to store last opened time", map[string]any{
			"app":   a.Name,
			"error": err.Error(),
		})
	}
	return confirmation, nil
}
