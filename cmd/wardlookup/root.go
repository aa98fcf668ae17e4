package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ukaji3/wardlookup/pkg/wardlookup"
	"github.com/ukaji3/wardlookup/pkg/wardlookup/config"
	"github.com/ukaji3/wardlookup/pkg/wardlookup/logging"
	"github.com/ukaji3/wardlookup/pkg/wardlookup/postcodes"
	"github.com/ukaji3/wardlookup/pkg/wardlookup/report"
)

type lookupFlags struct {
	configPath     string
	postcodeColumn string
	delaySeconds   float64
	sheet          string
	baseURL        string
	logLevel       string
	logFormat      string
	noProgress     bool
}

func newRootCommand() *cobra.Command {
	flags := &lookupFlags{}

	rootCmd := &cobra.Command{
		Use:   "wardlookup <input_file> <output_file>",
		Short: "Look up council wards for UK postcodes",
		Long: `wardlookup reads a spreadsheet with a postcode column, looks every postcode up
on postcodes.io and writes a copy with ward, district, constituency, region,
country, formatted postcode, latitude and longitude columns appended.`,
		Example: `  wardlookup postcodes.xlsx output.xlsx
  wardlookup input.xlsx output.xlsx --postcode-column zip_code
  wardlookup input.csv output.csv --delay 0.5`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(cmd, args[0], args[1], flags)
		},
	}

	f := rootCmd.Flags()
	f.StringVarP(&flags.configPath, "config", "c", "", "Configuration file path (TOML or YAML)")
	f.StringVar(&flags.postcodeColumn, "postcode-column", wardlookup.DefaultPostcodeColumn, "Name of the column containing postcodes")
	f.Float64Var(&flags.delaySeconds, "delay", postcodes.DefaultDelay.Seconds(), "Delay between API requests in seconds")
	f.StringVar(&flags.sheet, "sheet", "", "Worksheet to read (default: first sheet)")
	f.StringVar(&flags.baseURL, "base-url", "", "postcodes.io base URL")
	f.StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	f.StringVar(&flags.logFormat, "log-format", "", "Log format: console or json")
	f.BoolVar(&flags.noProgress, "no-progress", false, "Disable the progress bar")

	rootCmd.AddCommand(newSampleCommand())
	rootCmd.AddCommand(newConfigCommand())

	return rootCmd
}

func runLookup(cmd *cobra.Command, inputPath, outputPath string, flags *lookupFlags) error {
	cfg, _, _, err := config.Load(flags.configPath)
	if err != nil {
		return err
	}
	flags.apply(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return err
	}
	logger, err := logging.New(logging.Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Writer:    out,
		AddSource: level <= slog.LevelDebug,
	})
	if err != nil {
		return err
	}
	logger = logger.With(logging.String(logging.FieldRunID, uuid.NewString()))

	client, err := postcodes.New(
		postcodes.WithBaseURL(cfg.API.BaseURL),
		postcodes.WithUserAgent(cfg.API.UserAgent),
		postcodes.WithBatchSize(cfg.API.BatchSize),
		postcodes.WithDelay(cfg.Delay()),
		postcodes.WithTimeouts(cfg.SingleTimeout(), cfg.BatchTimeout()),
		postcodes.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("create lookup client: %w", err)
	}

	progress := report.NewProgress(out, logger, !flags.noProgress)
	summary, err := wardlookup.Process(cmd.Context(), inputPath, outputPath, wardlookup.Options{
		PostcodeColumn: cfg.Lookup.PostcodeColumn,
		Sheet:          cfg.Lookup.Sheet,
		Lookup:         client,
		Progress:       progress.Update,
		Logger:         logger,
	})
	progress.Finish()
	if err != nil {
		return err
	}

	stats := client.Stats()
	logger.Debug("remote calls",
		logging.Int("batch", stats.BatchCalls),
		logging.Int("single", stats.SingleCalls),
		logging.Int("fallbacks", stats.Fallbacks),
		logging.String("elapsed", summary.Elapsed.Round(time.Millisecond).String()),
	)
	return report.WriteSummary(out, summary)
}

// apply copies explicitly set flags over the loaded configuration.
func (f *lookupFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("postcode-column") {
		cfg.Lookup.PostcodeColumn = f.postcodeColumn
	}
	if changed("delay") {
		cfg.Lookup.DelaySeconds = f.delaySeconds
	}
	if changed("sheet") {
		cfg.Lookup.Sheet = f.sheet
	}
	if changed("base-url") {
		cfg.API.BaseURL = f.baseURL
	}
	if changed("log-level") {
		cfg.Logging.Level = f.logLevel
	}
	if changed("log-format") {
		cfg.Logging.Format = f.logFormat
	}
}
