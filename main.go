package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/jxsl13/app-lemonator/cmd/add"
	"github.com/jxsl13/app-lemonator/cmd/export"
	"github.com/jxsl13/app-lemonator/cmd/imports"
	"github.com/jxsl13/app-lemonator/cmd/list"
	"github.com/jxsl13/app-lemonator/cmd/open"
	"github.com/jxsl13/app-lemonator/cmd/remove"
	"github.com/jxsl13/app-lemonator/cmd/reset"
	"github.com/jxsl13/app-lemonator/cmd/update"
	"github.com/jxsl13/app-lemonator/defaults"
	"github.com/spf13/cobra"
)

func main() {
	err := NewRootCmd().Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func NewRootCmd() *cobra.Command {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, os.Kill)

	rootContext := rootContext{Ctx: ctx}

	// rootCmd represents the run command
	rootCmd := &cobra.Command{
		Use:   defaults.AppName,
		Short: "find installed apps by name, even after they moved, and start them with your parameters",
		RunE:  rootContext.RunE,
		PostRunE: func(cmd *cobra.Command, args []string) error {

			cancel()
			return nil
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.AddCommand(NewCompletionCmd(rootCmd.Name()))
	rootCmd.AddCommand(NewVersionCmd())
	rootCmd.AddCommand(open.NewOpenCmd())
	rootCmd.AddCommand(add.NewAddCmd())
	rootCmd.AddCommand(remove.NewRemoveCmd())
	rootCmd.AddCommand(list.NewListCmd())
	rootCmd.AddCommand(update.NewUpdateCmd())
	rootCmd.AddCommand(export.NewExportCmd())
	rootCmd.AddCommand(imports.NewImportCmd())
	rootCmd.AddCommand(reset.NewResetCmd())
	return rootCmd
}

type rootContext struct {
	Ctx context.Context
}

func (c *rootContext) RunE(cmd *cobra.Command, args []string) (err error) {
	return cmd.Usage()
}
