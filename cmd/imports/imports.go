package imports

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"
	"github.com/jxsl13/app-lemonator/config"
	"github.com/jxsl13/app-lemonator/session"
	"github.com/jxsl13/app-lemonator/transfer"
	"github.com/spf13/cobra"
)

func NewImportCmd() *cobra.Command {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, os.Kill)

	importContext := importContext{
		Ctx: ctx,
	}

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "register the apps of an export file or a csv file",
		Long: `register the apps of an export file or a csv file.

Apps that are already registered are skipped. Files ending with .csv are read as csv,
everything else as json.`,
		Args: cobra.ExactArgs(1),
		RunE: importContext.RunE,
		PostRunE: func(cmd *cobra.Command, args []string) error {

			cancel()
			return nil
		},
	}

	cmd.PreRunE = importContext.PreRunE(cmd)

	return cmd
}

type importContext struct {
	Ctx     context.Context
	Session *session.Config
	Config  *ImportConfig
}

func (c *importContext) PreRunE(cmd *cobra.Command) func(cmd *cobra.Command, args []string) error {
	c.Session = session.DefaultConfig()
	c.Config = DefaultImportConfig()

	parseSession := config.RegisterFlags(c.Session, false, cmd)
	parseConfig := config.RegisterFlags(c.Config, false, cmd)

	return func(cmd *cobra.Command, args []string) error {
		c.Config.file = args[0]

		if err := parseSession(); err != nil {
			return err
		}
		return parseConfig()
	}
}

func (c *importContext) RunE(cmd *cobra.Command, args []string) (err error) {
	s, err := session.Open(c.Ctx, c.Session)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, s.Close())
	}()

	apps, err := transfer.Read(args[0], c.Config.CommaRune(), c.Config.Columns(), s.Env.OS)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	result, err := transfer.Import(c.Ctx, s.Registry, apps)
	if len(result.Skipped) > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "skipped already registered apps: %s\n", strings.Join(result.Skipped, ", "))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "imported %s apps\n", color.GreenString("%d", len(result.Imported)))
	return err
}
