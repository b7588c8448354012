package open

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/jxsl13/app-lemonator/config"
	"github.com/jxsl13/app-lemonator/launch"
	"github.com/jxsl13/app-lemonator/session"
	"github.com/spf13/cobra"
)

func NewOpenCmd() *cobra.Command {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, os.Kill)

	openContext := openContext{
		Ctx: ctx,
	}

	cmd := &cobra.Command{
		Use:               "open <app>",
		Short:             "start a registered app, searching for it first if its stored path is gone",
		Args:              cobra.ExactArgs(1),
		RunE:              openContext.RunE,
		ValidArgsFunction: session.CompleteAppNames,
		PostRunE: func(cmd *cobra.Command, args []string) error {

			cancel()
			return nil
		},
	}

	// register flags but defer parsing and validation of the final values
	cmd.PreRunE = openContext.PreRunE(cmd)

	return cmd
}

type openContext struct {
	Ctx     context.Context
	Session *session.Config
	Config  *OpenConfig
}

func (c *openContext) PreRunE(cmd *cobra.Command) func(cmd *cobra.Command, args []string) error {
	c.Session = session.DefaultConfig()
	c.Config = &OpenConfig{}

	parseSession := config.RegisterFlags(c.Session, false, cmd)
	parseConfig := config.RegisterFlags(c.Config, false, cmd)

	return func(cmd *cobra.Command, args []string) error {
		if err := parseSession(); err != nil {
			return err
		}
		return parseConfig()
	}
}

func (c *openContext) RunE(cmd *cobra.Command, args []string) (err error) {
	ctx := c.Ctx
	s, err := session.Open(ctx, c.Session)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, s.Close())
	}()

	l, err := launch.New(s.Env.OS, launch.WithLogger(s.Log))
	if err != nil {
		return err
	}

	confirmation, err := s.OpenApp(ctx, args[0], c.Config.Refresh, l)
	if err != nil {
		return err
	}

	color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), confirmation.String())
	return nil
}
