/*
Copyright 2025 The llm-d Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. ALLOCATOR_LOG_LEVEL.
const EnvPrefix = "ALLOCATOR"

// Configuration keys, shared by flags, files and environment.
const (
	KeyConfigFile     = "config"
	KeyLogLevel       = "log-level"
	KeyLogDevelopment = "log-development"
	KeyServerAddress  = "server.address"
	KeyAllowedOrigins = "server.allowed-origins"
	KeyLimiter        = "limiter.strategy"
	KeyMaxCells       = "limiter.max-cells"
	KeyOutputFormat   = "output.format"
	KeyShowTables     = "output.tables"
	KeyCacheSize      = "cache.size"
	KeyCacheTTL       = "cache.ttl"
)

// Defaults.
const (
	DefaultLogLevel      = "info"
	DefaultServerAddress = ":8080"
	DefaultLimiter       = "work"
	DefaultMaxCells      = int64(50_000_000)
	DefaultOutputFormat  = "table"
	DefaultCacheSize     = 1024
	DefaultCacheTTL      = 10 * time.Minute
)

// Config is the runtime configuration of the allocator binary.
type Config struct {
	LogLevel       string        `mapstructure:"log-level" validate:"oneof=error info debug trace"`
	LogDevelopment bool          `mapstructure:"log-development"`
	Server         ServerConfig  `mapstructure:"server"`
	Limiter        LimiterConfig `mapstructure:"limiter"`
	Output         OutputConfig  `mapstructure:"output"`
	Cache          CacheConfig   `mapstructure:"cache"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Address        string   `mapstructure:"address" validate:"required"`
	AllowedOrigins []string `mapstructure:"allowed-origins"`
}

// LimiterConfig configures the work guardrail.
type LimiterConfig struct {
	Strategy string `mapstructure:"strategy" validate:"oneof=work none"`
	MaxCells int64  `mapstructure:"max-cells" validate:"gte=0"`
}

// OutputConfig configures CLI output.
type OutputConfig struct {
	Format     string `mapstructure:"format" validate:"oneof=table json yaml"`
	ShowTables bool   `mapstructure:"tables"`
}

// CacheConfig configures the result cache. Size 0 disables it.
type CacheConfig struct {
	Size int           `mapstructure:"size" validate:"gte=0"`
	TTL  time.Duration `mapstructure:"ttl" validate:"gte=0"`
}

var validate = validator.New()

// Validate checks for invalid configuration values.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// AddFlags registers the configuration flags on fs.
func AddFlags(fs *pflag.FlagSet) {
	fs.String(KeyConfigFile, "", "path to a YAML configuration file")
	fs.String(KeyLogLevel, DefaultLogLevel, "log level: error, info, debug or trace")
	fs.Bool(KeyLogDevelopment, false, "human-readable console logging")
	fs.String("address", DefaultServerAddress, "HTTP listen address")
	fs.StringSlice("allowed-origins", nil, "CORS allowed origins; empty allows all")
	fs.String("limiter", DefaultLimiter, "problem size guardrail: work or none")
	fs.Int64("max-cells", DefaultMaxCells, "largest accepted table work, 0 for the default")
	fs.String("format", DefaultOutputFormat, "output format: table, json or yaml")
	fs.Bool("tables", false, "include the value and decision tables")
	fs.Int("cache-size", DefaultCacheSize, "solved problems kept in memory, 0 disables the cache")
	fs.Duration("cache-ttl", DefaultCacheTTL, "how long a solved problem stays cached")
}

// flagKeys maps short flag names onto nested configuration keys.
var flagKeys = map[string]string{
	"address":         KeyServerAddress,
	"allowed-origins": KeyAllowedOrigins,
	"limiter":         KeyLimiter,
	"max-cells":       KeyMaxCells,
	"format":          KeyOutputFormat,
	"tables":          KeyShowTables,
	"cache-size":      KeyCacheSize,
	"cache-ttl":       KeyCacheTTL,
}

// Load reads the configuration with precedence defaults < file < environment
// < flags. Flags that were not registered on fs are ignored, so commands can
// register a subset. fs may be nil.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if fs != nil {
		var bindErr error
		fs.VisitAll(func(f *pflag.Flag) {
			key, ok := flagKeys[f.Name]
			if !ok {
				key = f.Name
			}
			if err := v.BindPFlag(key, f); err != nil && bindErr == nil {
				bindErr = fmt.Errorf("binding flag %q: %w", f.Name, err)
			}
		})
		if bindErr != nil {
			return nil, bindErr
		}
	}

	if path := v.GetString(KeyConfigFile); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding configuration: %w", err)
	}
	// StringSlice from the environment arrives as one comma-separated value.
	if len(cfg.Server.AllowedOrigins) == 1 && strings.Contains(cfg.Server.AllowedOrigins[0], ",") {
		cfg.Server.AllowedOrigins = strings.Split(cfg.Server.AllowedOrigins[0], ",")
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.Limiter.Strategy = strings.ToLower(cfg.Limiter.Strategy)
	cfg.Output.Format = strings.ToLower(cfg.Output.Format)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyLogDevelopment, false)
	v.SetDefault(KeyServerAddress, DefaultServerAddress)
	v.SetDefault(KeyAllowedOrigins, []string{})
	v.SetDefault(KeyLimiter, DefaultLimiter)
	v.SetDefault(KeyMaxCells, DefaultMaxCells)
	v.SetDefault(KeyOutputFormat, DefaultOutputFormat)
	v.SetDefault(KeyShowTables, false)
	v.SetDefault(KeyCacheSize, DefaultCacheSize)
	v.SetDefault(KeyCacheTTL, DefaultCacheTTL)
}
