// Package qtest implements the run and gen-config subcommands of
// qtest, which execute a command script against a text queue while
// checking its structure after every step.
package qtest

import (
	"errors"
	"fmt"
	"io"
	"os"

	"deedles.dev/textq/internal/app"
	"deedles.dev/textq/internal/mlog"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func init() {
	app.RootCmd().AddCommand(newRunCmd(), newGenConfigCmd())
}

func newRunCmd() *cobra.Command {
	var (
		cfgPath    string
		scriptPath string
		failRate   float64
		seed       uint64
		bufSize    int
		metricsOut string
	)
	c := &cobra.Command{
		Use:   "run",
		Short: "Run a command script",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := mlog.L()

			cfg := defaultConfig()
			if len(cfgPath) > 0 {
				var err error
				cfg, err = loadConfig(cfgPath)
				if err != nil {
					return err
				}
				logger.Info().Str("file", cfgPath).Msg("config file loaded")
			}

			flags := cmd.Flags()
			if flags.Changed("fail-rate") {
				cfg.Alloc.FailRate = failRate
			}
			if flags.Changed("seed") {
				cfg.Alloc.Seed = seed
			}
			if flags.Changed("buf-size") {
				cfg.Remove.BufSize = bufSize
			}
			if flags.Changed("metrics-out") {
				cfg.Metrics.Out = metricsOut
			}
			if err := cfg.validate(); err != nil {
				return err
			}
			if !cmd.Root().PersistentFlags().Changed("log-lvl") {
				lvl, err := zerolog.ParseLevel(cfg.Log.Level)
				if err != nil {
					return fmt.Errorf("invalid log lvl [%s]. %w", cfg.Log.Level, err)
				}
				mlog.SetLvl(lvl)
			}

			var in io.Reader = cmd.InOrStdin()
			if scriptPath != "-" {
				f, err := os.Open(scriptPath)
				if err != nil {
					return fmt.Errorf("failed to open script, %w", err)
				}
				defer f.Close()
				in = f
			}

			return run(cfg, in, cmd.OutOrStdout(), logger)
		},
	}
	c.Flags().StringVarP(&cfgPath, "config", "c", "", "path of the yaml config file")
	c.Flags().StringVarP(&scriptPath, "script", "f", "-", "command script, - for stdin")
	c.Flags().Float64Var(&failRate, "fail-rate", 0, "probability of refusing an allocation")
	c.Flags().Uint64Var(&seed, "seed", 1, "seed of the allocation fault injector")
	c.Flags().IntVar(&bufSize, "buf-size", 1024, "capacity of the removal copy-out buffer")
	c.Flags().StringVar(&metricsOut, "metrics-out", "", "write prometheus metrics to this file at exit")
	return c
}

func newGenConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gen-config [file]",
		Short: "Generate a config template",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 || args[0] == "stdout" {
				return writeConfigTemplate(cmd.OutOrStdout())
			}
			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("failed to create config file, %w", err)
			}
			defer f.Close()
			return writeConfigTemplate(f)
		},
	}
}

// run executes the script read from in and returns an error if any
// command failed, the queue structure was ever broken, or storage was
// leaked.
func run(cfg *Config, in io.Reader, out io.Writer, logger *zerolog.Logger) error {
	it := newInterp(cfg, out, logger)

	runErr := it.Run(in)
	leakErr := it.Close()

	var metricsErr error
	if len(cfg.Metrics.Out) > 0 {
		metricsErr = it.m.writeTo(cfg.Metrics.Out)
		if metricsErr != nil {
			metricsErr = fmt.Errorf("failed to write metrics, %w", metricsErr)
		}
	}

	logger.Info().
		Int("failed", it.failed).
		Int("violations", it.violations).
		Msg("script finished")

	var cmdErr error
	if it.failed > 0 || it.violations > 0 {
		cmdErr = fmt.Errorf("%d commands failed, %d structure violations", it.failed, it.violations)
	}
	return errors.Join(runErr, leakErr, metricsErr, cmdErr)
}
