package main

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is the demo binary's on-disk configuration, loaded via viper
// the way the teacher's pkg/config.Config is, but scaled down to the
// handful of knobs an embedded shell actually needs.
type Config struct {
	MaxInput     int    `mapstructure:"max_input" yaml:"max_input"`
	MaxPathDepth int    `mapstructure:"max_path_depth" yaml:"max_path_depth"`
	MaxArgs      int    `mapstructure:"max_args" yaml:"max_args"`
	MaxPrompt    int    `mapstructure:"max_prompt" yaml:"max_prompt"`
	MaxResponse  int    `mapstructure:"max_response" yaml:"max_response"`
	HistorySize  int    `mapstructure:"history_size" yaml:"history_size"`
	Completion   bool   `mapstructure:"completion" yaml:"completion"`
	MetricsAddr  string `mapstructure:"metrics_addr" yaml:"metrics_addr"`
	LogLevel     string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat    string `mapstructure:"log_format" yaml:"log_format"`
}

// defaultConfig mirrors the bounds spec.md section 6 gives as typical
// embedded figures.
func defaultConfig() Config {
	return Config{
		MaxInput:     128,
		MaxPathDepth: 8,
		MaxArgs:      16,
		MaxPrompt:    64,
		MaxResponse:  512,
		HistorySize:  16,
		Completion:   true,
		MetricsAddr:  "127.0.0.1:9100",
		LogLevel:     "info",
		LogFormat:    "text",
	}
}

// loadConfig reads configPath (if non-empty) via viper/YAML over the
// defaults. NUTSHELL_-prefixed environment variables override only keys
// that also appear in the config file; with no config file the defaults
// are returned unchanged and the environment is not consulted.
func loadConfig(configPath string) (Config, error) {
	cfg := defaultConfig()

	v := viper.New()
	v.SetEnvPrefix("NUTSHELL")
	v.AutomaticEnv()

	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return Config{}, fmt.Errorf("nutshelld: config file %q: %w", configPath, err)
		}
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("nutshelld: reading config: %w", err)
		}
		if err := v.Unmarshal(&cfg); err != nil {
			return Config{}, fmt.Errorf("nutshelld: decoding config: %w", err)
		}
	}

	return cfg, nil
}

// writeSampleConfig emits cfg as YAML, used by the "init" subcommand to
// produce a starting config file the way "dittofs init" does.
func writeSampleConfig(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("nutshelld: marshaling sample config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
