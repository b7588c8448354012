package list

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/jxsl13/app-lemonator/config"
	"github.com/jxsl13/app-lemonator/registry"
	"github.com/jxsl13/app-lemonator/session"
	"github.com/spf13/cobra"
)

func NewListCmd() *cobra.Command {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, os.Kill)

	listContext := listContext{
		Ctx: ctx,
	}

	cmd := &cobra.Command{
		Use:               "list [app]",
		Aliases:           []string{"ls"},
		Short:             "show the registered apps",
		Args:              cobra.MaximumNArgs(1),
		RunE:              listContext.RunE,
		ValidArgsFunction: session.CompleteAppNames,
		PostRunE: func(cmd *cobra.Command, args []string) error {

			cancel()
			return nil
		},
	}

	cmd.PreRunE = listContext.PreRunE(cmd)

	return cmd
}

type listContext struct {
	Ctx     context.Context
	Session *session.Config
	Config  *ListConfig
}

func (c *listContext) PreRunE(cmd *cobra.Command) func(cmd *cobra.Command, args []string) error {
	c.Session = session.DefaultConfig()
	c.Config = &ListConfig{}

	parseSession := config.RegisterFlags(c.Session, false, cmd)
	parseConfig := config.RegisterFlags(c.Config, false, cmd)

	return func(cmd *cobra.Command, args []string) error {
		if err := parseSession(); err != nil {
			return err
		}
		return parseConfig()
	}
}

func (c *listContext) RunE(cmd *cobra.Command, args []string) (err error) {
	s, err := session.Open(c.Ctx, c.Session)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, s.Close())
	}()

	var apps []registry.App
	if len(args) == 1 {
		a, err := s.Registry.Get(c.Ctx, args[0])
		if err != nil {
			return err
		}
		apps = []registry.App{a}
	} else {
		apps, err = s.Registry.List(c.Ctx)
		if err != nil {
			return err
		}
	}

	Render(cmd.OutOrStdout(), apps, c.Config.Full)
	return nil
}
