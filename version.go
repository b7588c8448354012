package main

import (
	"fmt"
	"runtime"

	"github.com/jxsl13/app-lemonator/defaults"
	"github.com/jxsl13/app-lemonator/platform"
	"github.com/jxsl13/app-lemonator/utils"
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X main.Version=v1.2.3".
var Version = "v0.1.0-dev"

func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := utils.NewVersion(Version)
			if err != nil {
				return fmt.Errorf("invalid build version %q: %w", Version, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s, %s, export format %s)\n",
				defaults.AppName,
				v.String(),
				platform.Current(),
				runtime.Version(),
				defaults.ExportVersion,
			)
			return nil
		},
	}
}
