// Package app holds the root command of qtest. Subcommands register
// themselves with it from their own packages.
package app

import (
	"fmt"

	"deedles.dev/textq/internal/mlog"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	rootCmd *cobra.Command
)

func init() {
	rootCmd = &cobra.Command{
		Use:          "qtest",
		Short:        "Drive a text queue from a command script",
		SilenceUsage: true,
	}
	logLvl := rootCmd.PersistentFlags().String("log-lvl", "", "log level [fatal|error|warn|info|debug|trace]")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if len(*logLvl) == 0 {
			return nil
		}
		lvl, err := zerolog.ParseLevel(*logLvl)
		if err != nil {
			return fmt.Errorf("invalid log lvl [%s]. %w", *logLvl, err)
		}
		mlog.SetLvl(lvl)
		return nil
	}
}

func RootCmd() *cobra.Command {
	return rootCmd
}
