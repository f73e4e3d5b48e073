package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tabstat/internal/app"
	"tabstat/internal/infrastructure"
)

func main() {
	exitCode := 0
	streams := app.Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}

	if err := newRootCmd(streams, &exitCode).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "readings:", err)
		if exitCode == 0 {
			exitCode = 2
		}
	}
	os.Exit(exitCode)
}

// newRootCmd builds the readings command. Flag parsing is disabled because
// the action tokens (--min, --mean, --max) are resolved positionally by
// app.ResolveArgs.
func newRootCmd(streams app.Streams, exitCode *int) *cobra.Command {
	return &cobra.Command{
		Use:                "readings [action] [file...]",
		Short:              "Print the per-row minimum, mean or maximum of numeric CSV tables",
		Long:               app.Usage("readings"),
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := app.ResolveArgs(args)
			if err != nil {
				*exitCode = 2
				return err
			}

			// Чтение конфигурации
			logger := infrastructure.NewLogger("warn")
			config, err := infrastructure.NewYAMLConfigReader(logger).ReadConfig(infrastructure.DefaultConfigPath)
			if err != nil {
				*exitCode = 2
				return fmt.Errorf("failed to read config: %w", err)
			}

			// Обновляем уровень логирования
			logger = infrastructure.NewLogger(config.LogLevel, config.LogFile)
			defer logger.Sync()

			delimiter := infrastructure.DelimiterRune(config)
			readings := app.NewReadings(logger,
				infrastructure.NewCSVTableReader(logger, delimiter),
				infrastructure.NewCSVTableWriter(logger, delimiter),
				infrastructure.NewFmtFunc(config.FormatDecimals()),
				streams)

			logger.Debug("Starting readings",
				zap.Stringer("action", inv.Action),
				zap.Strings("sources", inv.Sources))

			*exitCode = readings.Run(cmd.Name(), inv)
			return nil
		},
	}
}
