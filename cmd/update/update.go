package update

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/jxsl13/app-lemonator/config"
	"github.com/jxsl13/app-lemonator/registry"
	"github.com/jxsl13/app-lemonator/session"
	"github.com/spf13/cobra"
)

func NewUpdateCmd() *cobra.Command {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, os.Kill)

	updateContext := updateContext{
		Ctx: ctx,
	}

	cmd := &cobra.Command{
		Use:               "update [app]",
		Short:             "search for an app again and store its new path",
		Args:              cobra.MaximumNArgs(1),
		RunE:              updateContext.RunE,
		ValidArgsFunction: session.CompleteAppNames,
		PostRunE: func(cmd *cobra.Command, args []string) error {

			cancel()
			return nil
		},
	}

	cmd.PreRunE = updateContext.PreRunE(cmd)

	return cmd
}

type updateContext struct {
	Ctx     context.Context
	Session *session.Config
	Config  *UpdateConfig
}

func (c *updateContext) PreRunE(cmd *cobra.Command) func(cmd *cobra.Command, args []string) error {
	c.Session = session.DefaultConfig()
	c.Config = &UpdateConfig{}

	parseSession := config.RegisterFlags(c.Session, false, cmd)
	parseConfig := config.RegisterFlags(c.Config, false, cmd)

	return func(cmd *cobra.Command, args []string) error {
		if err := parseSession(); err != nil {
			return err
		}
		if err := parseConfig(); err != nil {
			return err
		}

		if c.Config.All == (len(args) == 1) {
			return errors.New("expecting either an app name or --all")
		}
		return nil
	}
}

func (c *updateContext) RunE(cmd *cobra.Command, args []string) (err error) {
	ctx := c.Ctx
	s, err := session.Open(ctx, c.Session)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, s.Close())
	}()

	var apps []registry.App
	if c.Config.All {
		apps, err = s.Registry.List(ctx)
		if err != nil {
			return err
		}
	} else {
		a, err := s.Registry.Get(ctx, args[0])
		if err != nil {
			return err
		}
		apps = []registry.App{a}
	}

	failed := 0
	for _, a := range apps {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		updated, err := s.Refresh(ctx, a)
		if err != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "updated %s: %s\n", color.BlueString(updated.Name), updated.Path)
	}

	if failed > 0 {
		return fmt.Errorf("failed to update %d of %d apps", failed, len(apps))
	}
	return nil
}
