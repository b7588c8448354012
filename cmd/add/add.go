package add

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/jxsl13/app-lemonator/app"
	"github.com/jxsl13/app-lemonator/config"
	"github.com/jxsl13/app-lemonator/registry"
	"github.com/jxsl13/app-lemonator/session"
	"github.com/spf13/cobra"
)

func NewAddCmd() *cobra.Command {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, os.Kill)

	addContext := addContext{
		Ctx: ctx,
	}

	cmd := &cobra.Command{
		Use:   "add <app> <exe> <search-term> <method>",
		Short: "register an app",
		Long: fmt.Sprintf(`register an app under a name of your choice.

The search term is a folder that may start with a placeholder like %%local-app-data%%.
The method is one of %v.`, app.Strategies()),
		Example: `  app-lemonator add rider rider64.exe "%local-app-data%\JetBrains" FolderSearch
  app-lemonator add chrome chrome.exe "%program-files%\Google\Chrome\Application" Shortcut --params "--profile-directory='Profile 1'"
  app-lemonator add spotify Spotify.exe SpotifyAB.SpotifyMusic PackageQuery`,
		Args: cobra.ExactArgs(4),
		RunE: addContext.RunE,
		PostRunE: func(cmd *cobra.Command, args []string) error {

			cancel()
			return nil
		},
	}

	// register flags but defer parsing and validation of the final values
	cmd.PreRunE = addContext.PreRunE(cmd)

	return cmd
}

type addContext struct {
	Ctx      context.Context
	Session  *session.Config
	Config   *AddConfig
	Strategy app.Strategy
}

func (c *addContext) PreRunE(cmd *cobra.Command) func(cmd *cobra.Command, args []string) error {
	c.Session = session.DefaultConfig()
	c.Config = &AddConfig{}

	parseSession := config.RegisterFlags(c.Session, false, cmd)
	parseConfig := config.RegisterFlags(c.Config, false, cmd)

	return func(cmd *cobra.Command, args []string) error {
		strategy, err := app.ParseStrategy(args[3])
		if err != nil {
			return err
		}
		c.Strategy = strategy

		if err := parseSession(); err != nil {
			return err
		}
		return parseConfig()
	}
}

func (c *addContext) RunE(cmd *cobra.Command, args []string) (err error) {
	s, err := session.Open(c.Ctx, c.Session)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, s.Close())
	}()

	a, err := s.Registry.Add(c.Ctx, registry.App{
		Name:       args[0],
		ExeName:    args[1],
		SearchTerm: args[2],
		Strategy:   c.Strategy,
		Params:     c.Config.Params,
		OS:         s.Env.OS,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "added %s: exe %q, search term %q, method %s\n",
		color.GreenString(a.Name),
		a.ExeName,
		a.SearchTerm,
		a.Strategy,
	)
	return nil
}
