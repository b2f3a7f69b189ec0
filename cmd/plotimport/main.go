// Package main provides the CLI entry point for plotimport.
package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ukaji3/plotimport-go/internal/config"
	"github.com/ukaji3/plotimport-go/internal/logging"
)

// app carries the state shared by every subcommand of one run.
type app struct {
	v          *viper.Viper
	configFile string
	cfg        *config.Config
	logger     zerolog.Logger
	closeLog   func() error
}

// rootFlagKeys maps config keys to the persistent flags overriding them.
var rootFlagKeys = map[string]string{
	"log.level":  "log-level",
	"log.format": "log-format",
	"log.output": "log-output",
}

var sourceFlagKeys = map[string]string{
	"source.strategy":  "strategy",
	"source.sheet":     "sheet",
	"source.range":     "range",
	"source.encoding":  "encoding",
	"source.delimiter": "delimiter",
}

// commandFlagKeys maps config keys to the local flags of each subcommand.
var commandFlagKeys = map[string][]map[string]string{
	"convert": {sourceFlagKeys, {
		"plot_prefix":     "plot-prefix",
		"output.format":   "format",
		"report.examples": "examples",
	}},
	"stats": {{
		"report.examples": "examples",
		"report.preview":  "preview",
	}},
	"inspect": {sourceFlagKeys},
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{
		v:        config.New(),
		logger:   zerolog.Nop(),
		closeLog: func() error { return nil },
	}

	rootCmd := &cobra.Command{
		Use:   "plotimport",
		Short: "Convert owner exports into per-plot import records",
		Long: `plotimport reads an owner export (xls, xlsx or csv), detects which
columns hold plots, emails, names and phones, and writes one record per
(owner, plot) pair.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.closeLog()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", "Config file (default: .plotimport.yaml in . or $HOME)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "auto", "Log format: auto, json, console")
	rootCmd.PersistentFlags().String("log-output", "stderr", "Log destination: stderr, stdout, discard, or a file path")

	rootCmd.AddCommand(
		newConvertCmd(a),
		newStatsCmd(a),
		newInspectCmd(a),
	)
	return rootCmd
}

// setup resolves configuration and builds the run logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	for _, keys := range append([]map[string]string{rootFlagKeys}, commandFlagKeys[cmd.Name()]...) {
		if err := config.BindFlags(a.v, cmd.Flags(), keys); err != nil {
			return err
		}
	}

	cfg, err := config.Load(a.v, a.configFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("opening log output: %w", err)
	}
	a.logger = logger.With().
		Str("run_id", uuid.NewString()).
		Str("command", cmd.Name()).
		Logger()
	a.closeLog = closeLog

	if cfg.ConfigFile != "" {
		a.logger.Debug().Str("file", cfg.ConfigFile).Msg("config loaded")
	}
	return nil
}
