package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/belphemur/dayscheduler/internal/constants"
	"github.com/belphemur/dayscheduler/internal/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix for environment overrides. Nested keys use a double
// underscore, e.g. DAYSCHEDULER_OUTPUT__FORMAT=yaml.
const EnvPrefix = "DAYSCHEDULER_"

// Expansion modes
const (
	// ModeExpand writes one record per meeting day
	ModeExpand = "expand"
	// ModeNormalize keeps one record per input and rewrites day to its canonical combined form
	ModeNormalize = "normalize"
)

// Config holds the application configuration
type Config struct {
	Service   ServiceConfig   `koanf:"service"`
	Output    OutputConfig    `koanf:"output"`
	Expansion ExpansionConfig `koanf:"expansion"`
}

// ServiceConfig holds process-level settings
type ServiceConfig struct {
	LogLevel    string `koanf:"log_level"`
	Environment string `koanf:"environment"`
}

// OutputConfig controls how records are written
type OutputConfig struct {
	Format constants.OutputFormat `koanf:"format"`
	Indent int                    `koanf:"indent"`
}

// ExpansionConfig controls what is done to each record
type ExpansionConfig struct {
	Mode      string `koanf:"mode"`
	EmitRRule bool   `koanf:"emit_rrule"`
	DayNames  bool   `koanf:"day_names"`
	// Strict rejects input records whose fields do not decode into a Meeting
	// or whose non-empty day names no weekday. Otherwise they are logged and kept.
	Strict bool `koanf:"strict"`
}

// IsDevelopment reports whether pretty console logging should be used
func (c *Config) IsDevelopment() bool {
	return c.Service.Environment != "production"
}

func defaults() map[string]any {
	return map[string]any{
		"service.log_level":    "info",
		"service.environment":  "development",
		"output.format":        string(constants.OutputFormatJSON),
		"output.indent":        2,
		"expansion.mode":       ModeExpand,
		"expansion.emit_rrule": false,
		"expansion.day_names":  false,
		"expansion.strict":     false,
	}
}

// Load builds the configuration from defaults, the optional TOML file at path
// and DAYSCHEDULER_ environment variables, in that order of precedence.
// A path that does not exist is skipped.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat config file %s: %w", path, err)
		}
	}

	envProvider := env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			key = strings.TrimPrefix(key, EnvPrefix)
			if key == "CONFIG" {
				return "", nil
			}
			return strings.ReplaceAll(strings.ToLower(key), "__", "."), value
		},
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	var cfg Config
	err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if _, err := constants.ParseOutputFormat(c.Output.Format.String()); err != nil {
		return err
	}

	if c.Output.Indent < 0 {
		return fmt.Errorf("output indent must not be negative")
	}

	switch c.Expansion.Mode {
	case ModeExpand, ModeNormalize:
	default:
		return fmt.Errorf("invalid expansion mode: %s", c.Expansion.Mode)
	}

	if !logging.IsValidLevel(c.Service.LogLevel) {
		return fmt.Errorf("invalid log level: %s", c.Service.LogLevel)
	}

	return nil
}
