package remove

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/jxsl13/app-lemonator/config"
	"github.com/jxsl13/app-lemonator/session"
	"github.com/spf13/cobra"
)

func NewRemoveCmd() *cobra.Command {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, os.Kill)

	removeContext := removeContext{
		Ctx: ctx,
	}

	cmd := &cobra.Command{
		Use:               "delete <app>",
		Aliases:           []string{"remove", "rm"},
		Short:             "remove an app from the registry",
		Args:              cobra.ExactArgs(1),
		RunE:              removeContext.RunE,
		ValidArgsFunction: session.CompleteAppNames,
		PostRunE: func(cmd *cobra.Command, args []string) error {

			cancel()
			return nil
		},
	}

	cmd.PreRunE = removeContext.PreRunE(cmd)

	return cmd
}

type removeContext struct {
	Ctx     context.Context
	Session *session.Config
}

func (c *removeContext) PreRunE(cmd *cobra.Command) func(cmd *cobra.Command, args []string) error {
	c.Session = session.DefaultConfig()
	parseSession := config.RegisterFlags(c.Session, false, cmd)

	return func(cmd *cobra.Command, args []string) error {
		return parseSession()
	}
}

func (c *removeContext) RunE(cmd *cobra.Command, args []string) (err error) {
	s, err := session.Open(c.Ctx, c.Session)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, s.Close())
	}()

	if err := s.Registry.Delete(c.Ctx, args[0]); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", color.BlueString(args[0]))
	return nil
}
