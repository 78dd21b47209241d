// Package config provides configuration management for toolkit consumers:
// a Viper-backed loader with env and flag binding, and a typed Settings
// structure covering the toolkit's policies (retry, debounce, notify,
// logging) validated via the cleanenv-port loader.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config wraps a Viper configuration instance.
type Config struct {
	v *viper.Viper
}

// New creates a new Config instance.
func New() *Config {
	return &Config{v: viper.New()}
}

// Load reads configuration from the given file and, when envFilePath is not
// empty, a .env file. Environment variables (with the given prefix, dots
// replaced by underscores) and already-defined command-line flags are bound.
func (c *Config) Load(configFilePath, envFilePath, envPrefix string) error {
	if envFilePath != "" {
		if err := godotenv.Load(envFilePath); err != nil {
			return fmt.Errorf("failed to load .env file %s: %w", envFilePath, err)
		}
	}

	c.v.AutomaticEnv()

	if envPrefix != "" {
		c.v.SetEnvPrefix(envPrefix)
	}

	c.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	c.v.SetConfigFile(configFilePath)

	if err := c.v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config %s: %w", configFilePath, err)
	}

	return c.v.BindPFlags(pflag.CommandLine)
}

// DefineFlag declares a command-line flag (short and long form) and binds it
// to a configuration key.
func (c *Config) DefineFlag(short, long, configKey string, defaultValue any, usage string) (err error) {
	switch v := defaultValue.(type) {
	case string:
		pflag.StringP(long, short, v, usage)
		err = c.v.BindPFlag(configKey, pflag.Lookup(long))
	case int:
		pflag.IntP(long, short, v, usage)
		err = c.v.BindPFlag(configKey, pflag.Lookup(long))
	case bool:
		pflag.BoolP(long, short, v, usage)
		err = c.v.BindPFlag(configKey, pflag.Lookup(long))
	case float64:
		pflag.Float64P(long, short, v, usage)
		err = c.v.BindPFlag(configKey, pflag.Lookup(long))
	case time.Duration:
		pflag.DurationP(long, short, v, usage)
		err = c.v.BindPFlag(configKey, pflag.Lookup(long))
	}
	return
}

// ParseFlags parses the declared command-line flags.
func (c *Config) ParseFlags() {
	pflag.Parse()
}

// GetString returns the string value for key.
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetInt returns the integer value for key.
func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetBool returns the boolean value for key.
func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// GetFloat64 returns the float value for key.
func (c *Config) GetFloat64(key string) float64 {
	return c.v.GetFloat64(key)
}

// GetDuration returns the duration value for key.
func (c *Config) GetDuration(key string) time.Duration {
	return c.v.GetDuration(key)
}

// GetStringSlice returns the string slice value for key.
func (c *Config) GetStringSlice(key string) []string {
	return c.v.GetStringSlice(key)
}

// SetDefault sets the default value for key.
func (c *Config) SetDefault(key string, value any) {
	c.v.SetDefault(key, value)
}

// Unmarshal decodes the configuration into a structure.
func (c *Config) Unmarshal(rawVal any, opts ...viper.DecoderConfigOption) error {
	return c.v.Unmarshal(rawVal, opts...)
}
