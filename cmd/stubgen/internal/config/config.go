// Package config loads stubgen command configuration from stubgen.yaml and
// STUBGEN_* environment variables using Viper.
package config

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/broady/stubkit/internal/logging"
)

// FileName is the configuration file looked up in the working directory.
const FileName = "stubgen.yaml"

// EnvPrefix prefixes environment overrides, e.g. STUBGEN_LOG_LEVEL.
const EnvPrefix = "STUBGEN"

// Config is the command configuration. Command-line flags override it.
type Config struct {
	// Manifest is a YAML or JSON request manifest.
	Manifest string `mapstructure:"manifest"`

	// Out is the output directory for generation units.
	Out string `mapstructure:"out"`

	// Stubs are stub references (see provider.ParseStubRef) resolved in
	// addition to the manifest's stubs.
	Stubs []string `mapstructure:"stubs"`

	Strict    bool `mapstructure:"strict"`
	Workers   int  `mapstructure:"workers"`
	CacheSize int  `mapstructure:"cache_size"`

	Source SourceConfig `mapstructure:"source"`
	Log    LogConfig    `mapstructure:"log"`
}

// SourceConfig selects Go packages to extract contracts from.
type SourceConfig struct {
	Packages []string `mapstructure:"packages"`
	Types    []string `mapstructure:"types"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// SetDefaults configures default values for all configuration options.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("manifest", "")
	v.SetDefault("out", "stubs")
	v.SetDefault("stubs", []string{})
	v.SetDefault("strict", false)
	v.SetDefault("workers", 0) // GOMAXPROCS
	v.SetDefault("cache_size", 0)

	v.SetDefault("source.packages", []string{})
	v.SetDefault("source.types", []string{})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
}

// Load reads configuration from path, or from ./stubgen.yaml when path is
// empty and the file exists, then applies environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(strings.TrimSuffix(FileName, ".yaml"))
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			name := path
			if name == "" {
				name = FileName
			}
			return nil, errors.Wrapf(err, "failed to read config file %s", name)
		}
	}

	return LoadWithViper(v)
}

// LoadWithViper loads configuration using a provided Viper instance.
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return errors.Newf("workers must not be negative, got %d", c.Workers)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// Logger builds the logger described by the log section.
func (c *Config) Logger() (*zap.Logger, error) {
	return logging.New(c.Log.Level, c.Log.JSON)
}

// Globals are the flags shared by every command. Set flags override the
// loaded configuration.
type Globals struct {
	Config   string `help:"Configuration file (default: ./stubgen.yaml when present)." short:"c" type:"path"`
	LogLevel string `help:"Log level (debug, info, warn, error)." name:"log-level"`
	LogJSON  bool   `help:"Emit JSON logs." name:"log-json"`
}

// Load loads the configuration and applies the global flags to it.
func (g *Globals) Load() (*Config, *zap.Logger, error) {
	cfg, err := Load(g.Config)
	if err != nil {
		return nil, nil, err
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	if g.LogJSON {
		cfg.Log.JSON = true
	}
	log, err := cfg.Logger()
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}
