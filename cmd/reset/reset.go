package reset

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/jxsl13/app-lemonator/config"
	"github.com/jxsl13/app-lemonator/registry"
	"github.com/jxsl13/app-lemonator/session"
	"github.com/spf13/cobra"
)

func NewResetCmd() *cobra.Command {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, os.Kill)

	resetContext := resetContext{
		Ctx: ctx,
	}

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "delete the registry database with all registered apps",
		Args:  cobra.NoArgs,
		RunE:  resetContext.RunE,
		PostRunE: func(cmd *cobra.Command, args []string) error {

			cancel()
			return nil
		},
	}

	cmd.PreRunE = resetContext.PreRunE(cmd)

	return cmd
}

type resetContext struct {
	Ctx     context.Context
	Session *session.Config
	Config  *ResetConfig
}

func (c *resetContext) PreRunE(cmd *cobra.Command) func(cmd *cobra.Command, args []string) error {
	c.Session = session.DefaultConfig()
	c.Config = &ResetConfig{}

	parseSession := config.RegisterFlags(c.Session, false, cmd)
	parseConfig := config.RegisterFlags(c.Config, false, cmd)

	return func(cmd *cobra.Command, args []string) error {
		if err := parseSession(); err != nil {
			return err
		}
		return parseConfig()
	}
}

func (c *resetContext) RunE(cmd *cobra.Command, args []string) error {
	path := c.Session.DB
	if !c.Config.Yes {
		return fmt.Errorf("refusing to delete %s without --yes", path)
	}

	if err := registry.Reset(path); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", color.RedString(path))
	return nil
}
