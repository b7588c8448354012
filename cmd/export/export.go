package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/fatih/color"
	"github.com/jxsl13/app-lemonator/config"
	"github.com/jxsl13/app-lemonator/session"
	"github.com/jxsl13/app-lemonator/transfer"
	"github.com/spf13/cobra"
)

func NewExportCmd() *cobra.Command {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, os.Kill)

	exportContext := exportContext{
		Ctx: ctx,
	}

	cmd := &cobra.Command{
		Use:   "export [file|directory]",
		Short: "write all registered apps into a json file",
		Long: `write all registered apps into a json file.

Without argument the file is created in your documents folder.`,
		Args: cobra.MaximumNArgs(1),
		RunE: exportContext.RunE,
		PostRunE: func(cmd *cobra.Command, args []string) error {

			cancel()
			return nil
		},
	}

	cmd.PreRunE = exportContext.PreRunE(cmd)

	return cmd
}

type exportContext struct {
	Ctx     context.Context
	Session *session.Config
	Config  *ExportConfig
	Target  string
}

func (c *exportContext) PreRunE(cmd *cobra.Command) func(cmd *cobra.Command, args []string) error {
	c.Session = session.DefaultConfig()
	c.Config = &ExportConfig{}

	parseSession := config.RegisterFlags(c.Session, false, cmd)
	parseConfig := config.RegisterFlags(c.Config, false, cmd)

	return func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			c.Target = args[0]
		}
		if err := parseSession(); err != nil {
			return err
		}
		return parseConfig()
	}
}

func (c *exportContext) RunE(cmd *cobra.Command, args []string) (err error) {
	s, err := session.Open(c.Ctx, c.Session)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, s.Close())
	}()

	apps, err := s.Registry.List(c.Ctx)
	if err != nil {
		return err
	}

	path := transfer.ExportPath(c.Target, time.Now())
	if err := transfer.Write(path, transfer.NewDocument(apps), c.Config.Force); err != nil {
		return err
	}

	s.Log.Info(c.Ctx, "exported apps", map[string]any{
		"file":  path,
		"count": len(apps),
	})
	fmt.Fprintf(cmd.OutOrStdout(), "exported %d apps to %s\n", len(apps), color.GreenString(path))
	return nil
}
