// Package settings loads the runtime settings of the quoteform command with
// viper: defaults, then an optional quoteform.yaml, then QUOTEFORM_ env vars.
package settings

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable.
const EnvPrefix = "QUOTEFORM"

// FileName is the settings file looked up in the working directory.
const FileName = "quoteform.yaml"

// Settings holds everything the command needs besides the form itself.
type Settings struct {
	Form      string `mapstructure:"form" yaml:"form"`
	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`
	UserAgent string `mapstructure:"user_agent" yaml:"user_agent"`
	Variant   string `mapstructure:"variant" yaml:"variant"`
	Reference string `mapstructure:"reference_prefix" yaml:"reference_prefix"`
	Store     Store  `mapstructure:"store" yaml:"store"`
}

// Store selects and configures the record store.
type Store struct {
	Driver    string `mapstructure:"driver" yaml:"driver"`
	DSN       string `mapstructure:"dsn" yaml:"dsn"`
	RateLimit int    `mapstructure:"rate_limit" yaml:"rate_limit"`
	S3        S3     `mapstructure:"s3" yaml:"s3"`
	NATS      NATS   `mapstructure:"nats" yaml:"nats"`
	Redis     Redis  `mapstructure:"redis" yaml:"redis"`
	REST      REST   `mapstructure:"rest" yaml:"rest"`
}

// S3 configures the object store driver.
type S3 struct {
	Bucket   string `mapstructure:"bucket" yaml:"bucket"`
	Prefix   string `mapstructure:"prefix" yaml:"prefix"`
	Region   string `mapstructure:"region" yaml:"region"`
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`
}

// NATS configures the JetStream driver.
type NATS struct {
	URL     string `mapstructure:"url" yaml:"url"`
	Stream  string `mapstructure:"stream" yaml:"stream"`
	Subject string `mapstructure:"subject" yaml:"subject"`
}

// Redis configures the stream driver.
type Redis struct {
	URL    string `mapstructure:"url" yaml:"url"`
	Stream string `mapstructure:"stream" yaml:"stream"`
}

// REST configures the HTTP table driver.
type REST struct {
	URL    string `mapstructure:"url" yaml:"url"`
	APIKey string `mapstructure:"api_key" yaml:"api_key"`
}

var defaults = map[string]any{
	"form":               "",
	"log_level":          "info",
	"log_format":         "text",
	"user_agent":         "quoteform-cli",
	"variant":            "",
	"reference_prefix":   "Q-",
	"store.driver":       DriverMemory,
	"store.dsn":          "",
	"store.rate_limit":   0,
	"store.s3.bucket":    "",
	"store.s3.prefix":    "quotes",
	"store.s3.region":    "",
	"store.s3.endpoint":  "",
	"store.nats.url":     "nats://127.0.0.1:4222",
	"store.nats.stream":  "QUOTES",
	"store.nats.subject": "quotes",
	"store.redis.url":    "redis://127.0.0.1:6379/0",
	"store.redis.stream": "quotes",
	"store.rest.url":     "",
	"store.rest.api_key": "",
}

// Load resolves settings. path names an explicit settings file; when empty
// FileName is read from the working directory if present.
func Load(path string) (*Settings, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key := range defaults {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("settings: bind %s: %w", key, err)
		}
	}

	switch {
	case path != "":
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("settings: read %s: %w", path, err)
		}
	case fileExists(FileName):
		v.SetConfigFile(FileName)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("settings: read %s: %w", FileName, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("settings: decode: %w", err)
	}
	s.Store.Driver = strings.ToLower(strings.TrimSpace(s.Store.Driver))
	return &s, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
