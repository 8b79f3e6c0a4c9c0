// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathalias

// Package config loads pathalias CLI configuration using Viper.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/shlex"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	// FileName is the config file base name searched in the working directory.
	FileName = ".pathalias"
	// EnvPrefix prefixes environment variable overrides.
	EnvPrefix = "PATHALIAS"
)

// ErrInvalidConfig indicates a config value that cannot be used.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the merged CLI configuration.
type Config struct {
	LogLevel       string        `mapstructure:"log_level"`
	Manifest       string        `mapstructure:"manifest"`
	ManifestNames  []string      `mapstructure:"manifest_names"`
	Ignore         IgnoreConfig  `mapstructure:"ignore"`
	Root           RootConfig    `mapstructure:"root"`
	Emit           EmitConfig    `mapstructure:"emit"`
	Find           FindConfig    `mapstructure:"find"`
	CommandTimeout time.Duration `mapstructure:"command_timeout"`
}

// IgnoreConfig configures ignore rule compilation.
type IgnoreConfig struct {
	RulesFile string   `mapstructure:"rules_file"`
	Extra     []string `mapstructure:"extra"`
	Defaults  []string `mapstructure:"defaults"`
}

// RootConfig configures project root location.
type RootConfig struct {
	// Command is a shell-like command line, e.g. "pnpm root -w".
	Command string `mapstructure:"command"`
	Shell   string `mapstructure:"shell"`
	WalkUp  bool   `mapstructure:"walk_up"`
}

// FindConfig configures file search.
type FindConfig struct {
	DepthFirst bool `mapstructure:"depth_first"`
}

// EmitConfig configures consumer presets.
type EmitConfig struct {
	RootToken string `mapstructure:"root_token"`
}

// LoadOptions selects config sources.
type LoadOptions struct {
	// ConfigFile is used exclusively when set; "~" is expanded.
	ConfigFile string
	// WorkDir is searched for FileName with a yaml, toml or json extension.
	WorkDir string
}

// DefaultConfig returns built-in defaults.
func DefaultConfig() Config {
	return Config{
		LogLevel:      "warn",
		ManifestNames: []string{"tsconfig.json", "jsconfig.json"},
		Ignore: IgnoreConfig{
			RulesFile: ".gitignore",
			Defaults:  []string{"node_modules"},
		},
		Root: RootConfig{
			Command: "npm prefix",
			WalkUp:  true,
		},
		Emit: EmitConfig{RootToken: "<rootDir>"},
	}
}

// Load merges defaults, the config file and PATHALIAS_* environment variables.
// It returns the config file path used, empty when none was found.
func Load(opts LoadOptions) (*Config, string, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("manifest", defaults.Manifest)
	v.SetDefault("manifest_names", defaults.ManifestNames)
	v.SetDefault("ignore.rules_file", defaults.Ignore.RulesFile)
	v.SetDefault("ignore.extra", defaults.Ignore.Extra)
	v.SetDefault("ignore.defaults", defaults.Ignore.Defaults)
	v.SetDefault("root.command", defaults.Root.Command)
	v.SetDefault("root.shell", defaults.Root.Shell)
	v.SetDefault("root.walk_up", defaults.Root.WalkUp)
	v.SetDefault("find.depth_first", defaults.Find.DepthFirst)
	v.SetDefault("command_timeout", defaults.CommandTimeout)
	v.SetDefault("emit.root_token", defaults.Emit.RootToken)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		path, err := homedir.Expand(opts.ConfigFile)
		if err != nil {
			return nil, "", fmt.Errorf("expand config path: %w", err)
		}

		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, "", fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName(FileName)
		if opts.WorkDir != "" {
			v.AddConfigPath(opts.WorkDir)
		} else {
			v.AddConfigPath(".")
		}

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, "", fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.expandPaths(); err != nil {
		return nil, "", err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}

	return &cfg, v.ConfigFileUsed(), nil
}

// Validate checks values that decoding cannot.
func (c *Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}

	if _, err := c.RootCommand(); err != nil {
		return err
	}

	if c.CommandTimeout < 0 {
		return fmt.Errorf("%w: command_timeout must not be negative", ErrInvalidConfig)
	}

	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (log.Level, error) {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return 0, fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
	}

	return level, nil
}

// RootCommand splits Root.Command into arguments; empty means the built-in default.
func (c *Config) RootCommand() ([]string, error) {
	if strings.TrimSpace(c.Root.Command) == "" {
		return nil, nil
	}

	args, err := shlex.Split(c.Root.Command)
	if err != nil {
		return nil, fmt.Errorf("%w: root.command: %v", ErrInvalidConfig, err)
	}

	return args, nil
}

// expandPaths resolves "~" in path-valued keys.
func (c *Config) expandPaths() error {
	for _, p := range []*string{&c.Manifest, &c.Root.Shell} {
		if *p == "" {
			continue
		}

		expanded, err := homedir.Expand(*p)
		if err != nil {
			return fmt.Errorf("%w: expand %q: %v", ErrInvalidConfig, *p, err)
		}

		*p = expanded
	}

	return nil
}
