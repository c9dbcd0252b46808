package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	domain "github.com/inference-gateway/hotcli/internal/domain"
	viper "github.com/spf13/viper"
	gotenv "github.com/subosito/gotenv"
	yaml "gopkg.in/yaml.v3"
)

const (
	// ConfigDirName is the project-local directory holding config and logs
	ConfigDirName = ".hotcli"
	// ConfigFileName is the config file inside ConfigDirName
	ConfigFileName = "config.yaml"
	// GitignoreFileName keeps logs out of version control
	GitignoreFileName = ".gitignore"
	// EnvPrefix prefixes every environment override, e.g. HOTCLI_CONSOLE_PROMPT
	EnvPrefix = "HOTCLI"
)

// DefaultConfigPath is the path used when --config is not given
var DefaultConfigPath = filepath.Join(ConfigDirName, ConfigFileName)

// Config represents the console host configuration
type Config struct {
	Console     ConsoleConfig     `yaml:"console" mapstructure:"console"`
	Logging     LoggingConfig     `yaml:"logging" mapstructure:"logging"`
	Display     DisplayConfig     `yaml:"display" mapstructure:"display"`
	Keybindings KeybindingsConfig `yaml:"keybindings" mapstructure:"keybindings"`
}

// ConsoleConfig contains the mode arbiter and loop settings
type ConsoleConfig struct {
	Prompt           string `yaml:"prompt" mapstructure:"prompt"`
	NotFoundMessage  string `yaml:"not_found_message" mapstructure:"not_found_message"`
	ShowBanner       bool   `yaml:"show_banner" mapstructure:"show_banner"`
	StartInteractive bool   `yaml:"start_interactive" mapstructure:"start_interactive"`
	Suggest          bool   `yaml:"suggest" mapstructure:"suggest"`
	Builtins         bool   `yaml:"builtins" mapstructure:"builtins"`
	HandlerFailure   string `yaml:"handler_failure" mapstructure:"handler_failure"`
	KeyTickMs        int    `yaml:"key_tick_ms" mapstructure:"key_tick_ms"`
	FlushTickMs      int    `yaml:"flush_tick_ms" mapstructure:"flush_tick_ms"`
	SyncPollMs       int    `yaml:"sync_poll_ms" mapstructure:"sync_poll_ms"`
}

// LoggingConfig contains log sink settings
type LoggingConfig struct {
	Debug bool   `yaml:"debug" mapstructure:"debug"`
	Path  string `yaml:"path" mapstructure:"path"`
}

// DisplayConfig selects the key-state and focus provider
type DisplayConfig struct {
	// Provider is "auto", "x11" or "headless"
	Provider string `yaml:"provider" mapstructure:"provider"`
	// Name is the X display to connect to; empty uses $DISPLAY
	Name string `yaml:"name" mapstructure:"name"`
}

// DefaultConfig returns a default configuration. HandlerFailure is deliberately
// empty: the host has to pick a policy.
func DefaultConfig() *Config {
	return &Config{
		Console: ConsoleConfig{
			Prompt:           ">",
			NotFoundMessage:  "command not found",
			ShowBanner:       true,
			StartInteractive: false,
			Suggest:          true,
			Builtins:         false,
			HandlerFailure:   "",
			KeyTickMs:        50,
			FlushTickMs:      50,
			SyncPollMs:       100,
		},
		Logging: LoggingConfig{
			Debug: false,
			Path:  filepath.Join(ConfigDirName, "logs", "hotcli.log"),
		},
		Display: DisplayConfig{
			Provider: "auto",
			Name:     "",
		},
		Keybindings: KeybindingsConfig{
			Enabled:  false,
			Bindings: GetDefaultKeybindings(),
		},
	}
}

// KeyTick returns the key monitor tick
func (c ConsoleConfig) KeyTick() time.Duration {
	return time.Duration(c.KeyTickMs) * time.Millisecond
}

// FlushTick returns the output flusher tick
func (c ConsoleConfig) FlushTick() time.Duration {
	return time.Duration(c.FlushTickMs) * time.Millisecond
}

// SyncPoll returns the synchronous dispatch poll interval
func (c ConsoleConfig) SyncPoll() time.Duration {
	return time.Duration(c.SyncPollMs) * time.Millisecond
}

// FailurePolicy returns the configured handler failure policy
func (c ConsoleConfig) FailurePolicy() domain.FailurePolicy {
	return domain.FailurePolicy(strings.ToLower(strings.TrimSpace(c.HandlerFailure)))
}

// InitialMode returns the mode the arbiter starts in
func (c ConsoleConfig) InitialMode() domain.Mode {
	if c.StartInteractive {
		return domain.ModeInteractive
	}
	return domain.ModeNonInteractive
}

// Validate checks the configuration for values the console cannot run with
func (c *Config) Validate() error {
	var errs []error

	if !c.Console.FailurePolicy().IsValid() {
		errs = append(errs, fmt.Errorf("console.handler_failure must be %q or %q, got %q",
			domain.FailureReport, domain.FailureCrash, c.Console.HandlerFailure))
	}
	if c.Console.KeyTickMs <= 0 {
		errs = append(errs, fmt.Errorf("console.key_tick_ms must be positive, got %d", c.Console.KeyTickMs))
	}
	if c.Console.FlushTickMs <= 0 {
		errs = append(errs, fmt.Errorf("console.flush_tick_ms must be positive, got %d", c.Console.FlushTickMs))
	}
	if c.Console.SyncPollMs <= 0 {
		errs = append(errs, fmt.Errorf("console.sync_poll_ms must be positive, got %d", c.Console.SyncPollMs))
	}

	switch c.Display.Provider {
	case "auto", "x11", "headless":
	default:
		errs = append(errs, fmt.Errorf("display.provider must be auto, x11 or headless, got %q", c.Display.Provider))
	}

	return errors.Join(errs...)
}

// NewViper builds a viper instance seeded with defaults, the .env file and
// HOTCLI_ environment overrides
func NewViper(configPath string) *viper.Viper {
	_ = gotenv.Load()

	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetConfigType("yaml")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	v.SetConfigFile(configPath)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("console.prompt", cfg.Console.Prompt)
	v.SetDefault("console.not_found_message", cfg.Console.NotFoundMessage)
	v.SetDefault("console.show_banner", cfg.Console.ShowBanner)
	v.SetDefault("console.start_interactive", cfg.Console.StartInteractive)
	v.SetDefault("console.suggest", cfg.Console.Suggest)
	v.SetDefault("console.builtins", cfg.Console.Builtins)
	v.SetDefault("console.handler_failure", cfg.Console.HandlerFailure)
	v.SetDefault("console.key_tick_ms", cfg.Console.KeyTickMs)
	v.SetDefault("console.flush_tick_ms", cfg.Console.FlushTickMs)
	v.SetDefault("console.sync_poll_ms", cfg.Console.SyncPollMs)
	v.SetDefault("logging.debug", cfg.Logging.Debug)
	v.SetDefault("logging.path", cfg.Logging.Path)
	v.SetDefault("display.provider", cfg.Display.Provider)
	v.SetDefault("display.name", cfg.Display.Name)
	v.SetDefault("keybindings.enabled", cfg.Keybindings.Enabled)
}

// Load reads the config file (if present) through viper and applies
// environment overrides. A missing file yields the defaults.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file %s: %w", v.ConfigFileUsed(), err)
			}
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration as YAML with two-space indentation
func (c *Config) Save(configPath string) error {
	if configPath == "" {
		configPath = DefaultConfigPath
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to close YAML encoder: %w", err)
	}

	if err := os.WriteFile(configPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
