// Package config loads plotimport settings from defaults, an optional
// .plotimport.yaml file, .env files, PLOTIMPORT_* variables and flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ukaji3/plotimport-go/internal/logging"
	"github.com/ukaji3/plotimport-go/pkg/plotimport"
	"github.com/ukaji3/plotimport-go/pkg/plotimport/classify"
	"github.com/ukaji3/plotimport-go/pkg/plotimport/normalize"
	"github.com/ukaji3/plotimport-go/pkg/plotimport/report"
	"github.com/ukaji3/plotimport-go/pkg/plotimport/source"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "PLOTIMPORT"

// Config holds the resolved settings of one CLI run.
type Config struct {
	// ConfigFile is the config file that was read, if any.
	ConfigFile string

	Log logging.Config

	Strategy  source.Strategy
	Sheet     string
	Range     string
	Encoding  string
	Delimiter rune

	Classify   classify.Config
	PlotPrefix string

	OutputFormat string

	Examples int
	Preview  int
}

// New returns a viper instance carrying the default values.
func New() *viper.Viper {
	v := viper.New()

	defaults := logging.DefaultConfig()
	v.SetDefault("log.level", defaults.Level)
	v.SetDefault("log.format", defaults.Format)
	v.SetDefault("log.output", defaults.Output)
	v.SetDefault("log.no_color", defaults.NoColor)

	v.SetDefault("source.strategy", string(source.StrategyAuto))
	v.SetDefault("source.sheet", "")
	v.SetDefault("source.range", "")
	v.SetDefault("source.encoding", source.DefaultEncoding)
	v.SetDefault("source.delimiter", ",")

	fallback := classify.DefaultFallbackLayout()
	v.SetDefault("classify.sample_size", classify.DefaultSampleSize)
	v.SetDefault("classify.fallback.email_probe_column", fallback.EmailProbeColumn)
	v.SetDefault("classify.fallback.email_column", fallback.EmailColumn)
	v.SetDefault("classify.fallback.name_column", fallback.NameColumn)
	v.SetDefault("classify.fallback.phone_column", fallback.PhoneColumn)

	v.SetDefault("plot_prefix", normalize.DefaultPlotPrefix)
	v.SetDefault("output.format", "")
	v.SetDefault("report.examples", report.DefaultExamples)
	return v
}

// BindFlags binds flags to config keys. Unknown flag names are skipped so
// commands only bind the flags they define.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) error {
	for key, name := range keys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("binding flag --%s: %w", name, err)
		}
	}
	return nil
}

// Load resolves the configuration in order of precedence:
//  1. Command-line flags bound with BindFlags
//  2. PLOTIMPORT_* environment variables
//  3. .env and .env.local files
//  4. Config file (configFile, or .plotimport.yaml in . or $HOME)
//  5. Defaults from New
func Load(v *viper.Viper, configFile string) (*Config, error) {
	loadEnvFiles()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigType("yaml")
		v.SetConfigName(".plotimport")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	strategy, err := source.ParseStrategy(v.GetString("source.strategy"))
	if err != nil {
		return nil, err
	}
	delimiter, err := parseDelimiter(v.GetString("source.delimiter"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		ConfigFile: v.ConfigFileUsed(),
		Log: logging.Config{
			Level:   v.GetString("log.level"),
			Format:  v.GetString("log.format"),
			Output:  v.GetString("log.output"),
			NoColor: v.GetBool("log.no_color"),
		},
		Strategy:  strategy,
		Sheet:     v.GetString("source.sheet"),
		Range:     v.GetString("source.range"),
		Encoding:  v.GetString("source.encoding"),
		Delimiter: delimiter,
		Classify: classify.Config{
			SampleSize: v.GetInt("classify.sample_size"),
			Fallback: classify.FallbackLayout{
				EmailProbeColumn: v.GetInt("classify.fallback.email_probe_column"),
				EmailColumn:      v.GetInt("classify.fallback.email_column"),
				NameColumn:       v.GetInt("classify.fallback.name_column"),
				PhoneColumn:      v.GetInt("classify.fallback.phone_column"),
			},
		},
		PlotPrefix:   v.GetString("plot_prefix"),
		OutputFormat: v.GetString("output.format"),
		Examples:     v.GetInt("report.examples"),
		Preview:      v.GetInt("report.preview"),
	}
	if err := cfg.Classify.Fallback.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// PipelineOptions converts the configuration into pipeline options.
func (c *Config) PipelineOptions() plotimport.Options {
	opts := plotimport.DefaultOptions()
	opts.Source.Strategy = c.Strategy
	opts.Source.Sheet = c.Sheet
	opts.Source.Range = c.Range
	opts.Source.Encoding = c.Encoding
	opts.Source.Delimiter = c.Delimiter
	opts.Classify = c.Classify
	prefix := c.PlotPrefix
	opts.PlotPrefix = &prefix
	opts.Report = report.Options{Examples: c.Examples, Preview: c.Preview}
	return opts
}

// parseDelimiter accepts a single character or the names "tab" and "\t".
func parseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return ',', nil
	case "tab", `\t`:
		return '\t', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("invalid delimiter: %q (must be a single character)", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

// loadEnvFiles loads .env files without overriding the process
// environment. .env.local is read first so its values win over .env.
func loadEnvFiles() {
	for _, name := range []string{".env.local", ".env"} {
		_ = godotenv.Load(name)
	}
}
