// Package config holds the application configuration: defaults, an optional
// greenroute.yaml file, GREENROUTE_* environment variables and command-line
// flags, merged by viper in that order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/greenroute/energy"
	"github.com/katalvlaran/greenroute/observability"
	"github.com/katalvlaran/greenroute/strategy"
)

// EnvPrefix is prepended to every environment variable, e.g.
// GREENROUTE_DATA_NODES overrides data.nodes.
const EnvPrefix = "GREENROUTE"

// FileName is the config file searched for in the working directory when no
// explicit path is given.
const FileName = "greenroute"

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the root configuration.
type Config struct {
	Data    DataConfig                 `mapstructure:"data" yaml:"data"`
	Routing RoutingConfig              `mapstructure:"routing" yaml:"routing"`
	Server  ServerConfig               `mapstructure:"server" yaml:"server"`
	Logger  observability.LoggerConfig `mapstructure:"logger" yaml:"logger"`
}

// DataConfig locates the two input tables.
type DataConfig struct {
	Nodes            string `mapstructure:"nodes" yaml:"nodes"`
	Adjacency        string `mapstructure:"adjacency" yaml:"adjacency"`
	Delimiter        string `mapstructure:"delimiter" yaml:"delimiter"`
	RejectDuplicates bool   `mapstructure:"reject_duplicates" yaml:"reject_duplicates"`
}

// RoutingConfig selects the default strategy and the weight constants.
type RoutingConfig struct {
	Strategy              string  `mapstructure:"strategy" yaml:"strategy"`
	SustainabilityCeiling float64 `mapstructure:"sustainability_ceiling" yaml:"sustainability_ceiling"`
	ProductionScale       float64 `mapstructure:"production_scale" yaml:"production_scale"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr" yaml:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// SetDefaults registers a default for every key so that environment
// variables are seen by Unmarshal even without a config file.
func SetDefaults(v *viper.Viper) {
	lc := observability.DefaultLoggerConfig()
	p := strategy.DefaultParams()

	v.SetDefault("data.nodes", "")
	v.SetDefault("data.adjacency", "")
	v.SetDefault("data.delimiter", string(energy.DefaultDelimiter))
	v.SetDefault("data.reject_duplicates", false)

	v.SetDefault("routing.strategy", strategy.MinimizeLoss.String())
	v.SetDefault("routing.sustainability_ceiling", p.SustainabilityCeiling)
	v.SetDefault("routing.production_scale", p.ProductionScale)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 5*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("logger.level", lc.Level)
	v.SetDefault("logger.format", lc.Format)
	v.SetDefault("logger.name", lc.Name)
	v.SetDefault("logger.add_caller", lc.AddCaller)
	v.SetDefault("logger.color", lc.Color)
	v.SetDefault("logger.file", lc.File)
	v.SetDefault("logger.max_size", lc.MaxSize)
	v.SetDefault("logger.max_backups", lc.MaxBackups)
	v.SetDefault("logger.max_age", lc.MaxAge)
	v.SetDefault("logger.compress", lc.Compress)
}

// Init prepares v: defaults, env binding and the config file. A missing file
// is only an error when path was given explicitly.
func Init(v *viper.Viper, path string) error {
	SetDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("config: reading config file: %w", err)
		}
	}

	return nil
}

// BindFlags maps command-line flags onto config keys. Flags that are absent
// from fs are skipped.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet, keys map[string]string) error {
	for flag, key := range keys {
		f := fs.Lookup(flag)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("config: binding --%s to %s: %w", flag, key, err)
		}
	}

	return nil
}

// Unmarshal decodes and validates the merged configuration.
func Unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns the configuration produced by SetDefaults alone.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := Unmarshal(v)
	if err != nil {
		panic(fmt.Sprintf("config: defaults do not validate: %v", err))
	}

	return cfg
}

// Validate checks every section and wraps failures in ErrInvalidConfig.
func (c *Config) Validate() error {
	var errs []error
	if _, err := c.DelimiterRune(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.DefaultStrategy(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Params().Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is empty"))
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.ShutdownTimeout < 0 {
		errs = append(errs, errors.New("server timeouts must be non-negative"))
	}
	if err := c.Logger.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}

	return nil
}

// DelimiterRune decodes data.delimiter. "tab" and `\t` name the tab character.
func (c *Config) DelimiterRune() (rune, error) {
	d := c.Data.Delimiter
	switch strings.ToLower(d) {
	case "tab", `\t`:
		return '\t', nil
	}
	if utf8.RuneCountInString(d) != 1 {
		return 0, fmt.Errorf("data.delimiter %q must be a single character", d)
	}
	r, _ := utf8.DecodeRuneInString(d)

	return r, nil
}

// DefaultStrategy parses routing.strategy.
func (c *Config) DefaultStrategy() (strategy.Strategy, error) {
	return strategy.Parse(c.Routing.Strategy)
}

// Params returns the weight constants of the routing section.
func (c *Config) Params() strategy.Params {
	return strategy.Params{
		SustainabilityCeiling: c.Routing.SustainabilityCeiling,
		ProductionScale:       c.Routing.ProductionScale,
	}
}

// LoadOptions translates the data section into loader options.
func (c *Config) LoadOptions() []energy.LoadOption {
	var opts []energy.LoadOption
	if r, err := c.DelimiterRune(); err == nil {
		opts = append(opts, energy.WithDelimiter(r))
	}
	if c.Data.RejectDuplicates {
		opts = append(opts, energy.WithRejectDuplicates())
	}

	return opts
}

// YAML renders the configuration as a greenroute.yaml document.
func (c *Config) YAML() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("config: encoding yaml: %w", err)
	}

	return out, nil
}
