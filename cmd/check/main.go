package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tabstat/internal/app"
	"tabstat/internal/infrastructure"
)

var (
	configPath string
	logLevel   string
)

func main() {
	exitCode := 0
	streams := app.Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}

	if err := newRootCmd(streams, &exitCode).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "check:", err)
		exitCode = 2
	}
	os.Exit(exitCode)
}

func newRootCmd(streams app.Streams, exitCode *int) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check file...",
		Short: "Check that numeric CSV tables share the shape of the first one",
		Long: `check loads every file and compares its number of rows and columns with
the first file. Files that cannot be loaded are reported and counted as
0 rows and 0 columns.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := infrastructure.NewLogger("warn")
			config, err := infrastructure.NewYAMLConfigReader(logger).ReadConfig(configPath)
			if err != nil {
				return fmt.Errorf("failed to read config: %w", err)
			}
			if cmd.Flags().Changed("log-level") {
				config.LogLevel = logLevel
			}

			logger = infrastructure.NewLogger(config.LogLevel, config.LogFile)
			defer logger.Sync()

			checker := app.NewShapeChecker(logger,
				infrastructure.NewCSVTableReader(logger, infrastructure.DelimiterRune(config)))

			var report app.Report
			if len(args) == 0 {
				report = checker.CheckAll(nil)
			} else {
				report = checker.CheckAll(app.Sources(args, streams.In))
			}

			if err := report.Print(streams.Out, streams.Err); err != nil {
				return err
			}

			if !report.NothingToCompare() && !report.OK() {
				logger.Warn("Shape check failed", zap.Int("files", report.Total))
				*exitCode = 1
			}
			return nil
		},
	}

	cmd.SetOut(streams.Out)
	cmd.SetErr(streams.Err)
	cmd.Flags().StringVar(&configPath, "config", infrastructure.DefaultConfigPath, "Path to config file")
	cmd.Flags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	return cmd
}
