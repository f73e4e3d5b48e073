package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tabstat/internal/app"
	"tabstat/internal/domain"
	"tabstat/internal/infrastructure"
)

type options struct {
	configPath string
	logLevel   string
	output     string
	generator  domain.GeneratorConfig
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "geninflammation:", err)
		os.Exit(1)
	}
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           "geninflammation",
		Short:         "Generate pseudo-random patient inflammation data as CSV",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, &opts, stdout)
		},
	}

	cmd.SetOut(stdout)
	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", infrastructure.DefaultConfigPath, "Path to config file")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	flags.StringVarP(&opts.output, "output", "o", "", "Output file (default stdout)")
	flags.StringVar(&opts.generator.Mode, "mode", app.ModeTriangle, "Generation mode (triangle, truncnorm)")
	flags.IntVar(&opts.generator.Patients, "patients", 60, "Number of patients (rows)")
	flags.IntVar(&opts.generator.Days, "days", 40, "Number of days (columns)")
	flags.IntVar(&opts.generator.Range, "range", 20, "Maximum inflammation value")
	flags.Uint64Var(&opts.generator.Seed, "seed", 1, "Random seed")

	return cmd
}

func run(cmd *cobra.Command, opts *options, stdout io.Writer) (err error) {
	logger := infrastructure.NewLogger("warn")
	config, err := infrastructure.NewYAMLConfigReader(logger).ReadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	applyFlags(cmd, opts, config)

	logger = infrastructure.NewLogger(config.LogLevel, config.LogFile)
	defer logger.Sync()

	table, err := app.NewInflammationGenerator(logger).Generate(config.Generator)
	if err != nil {
		return err
	}

	out := stdout
	if opts.output != "" {
		file, createErr := os.Create(opts.output)
		if createErr != nil {
			return createErr
		}
		defer closeOutput(file, &err)
		out = file
	}

	writer := infrastructure.NewCSVTableWriter(logger, infrastructure.DelimiterRune(config))
	if err := writer.WriteTable(out, table, infrastructure.NewFmtFunc(0)); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}

	logger.Info("Generation completed",
		zap.String("output", opts.output),
		zap.Int("rows", table.Rows()),
		zap.Int("cols", table.Cols()))
	return nil
}

// closeOutput closes c and reports its error through err unless err already
// holds one.
func closeOutput(c io.Closer, err *error) {
	if cerr := c.Close(); cerr != nil && *err == nil {
		*err = fmt.Errorf("failed to close output: %w", cerr)
	}
}

// applyFlags overrides config values with the flags set on the command line.
func applyFlags(cmd *cobra.Command, opts *options, config *domain.Config) {
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		config.LogLevel = opts.logLevel
	}
	if flags.Changed("mode") {
		config.Generator.Mode = opts.generator.Mode
	}
	if flags.Changed("patients") {
		config.Generator.Patients = opts.generator.Patients
	}
	if flags.Changed("days") {
		config.Generator.Days = opts.generator.Days
	}
	if flags.Changed("range") {
		config.Generator.Range = opts.generator.Range
	}
	if flags.Changed("seed") {
		config.Generator.Seed = opts.generator.Seed
	}
}
