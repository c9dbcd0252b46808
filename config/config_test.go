package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	domain "github.com/inference-gateway/hotcli/internal/domain"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("console defaults", func(t *testing.T) {
		if cfg.Console.Prompt != ">" {
			t.Errorf("Expected prompt to be '>', got %q", cfg.Console.Prompt)
		}
		if cfg.Console.NotFoundMessage != "command not found" {
			t.Errorf("Expected not found message 'command not found', got %q", cfg.Console.NotFoundMessage)
		}
		if cfg.Console.InitialMode() != domain.ModeNonInteractive {
			t.Error("Expected the console to start non-interactive")
		}
		if cfg.Console.Builtins {
			t.Error("Expected builtins to be disabled by default")
		}
	})

	t.Run("no failure policy by default", func(t *testing.T) {
		if cfg.Console.HandlerFailure != "" {
			t.Errorf("Expected no default failure policy, got %q", cfg.Console.HandlerFailure)
		}
		if err := cfg.Validate(); err == nil {
			t.Error("Expected default config to fail validation without a failure policy")
		}
	})

	t.Run("timing defaults", func(t *testing.T) {
		if cfg.Console.KeyTick() != 50*time.Millisecond {
			t.Errorf("Expected key tick 50ms, got %v", cfg.Console.KeyTick())
		}
		if cfg.Console.FlushTick() != 50*time.Millisecond {
			t.Errorf("Expected flush tick 50ms, got %v", cfg.Console.FlushTick())
		}
		if cfg.Console.SyncPoll() != 100*time.Millisecond {
			t.Errorf("Expected sync poll 100ms, got %v", cfg.Console.SyncPoll())
		}
	})

	t.Run("keybindings defaults", func(t *testing.T) {
		if cfg.Keybindings.Enabled {
			t.Error("Expected configured keybindings to be disabled by default")
		}
		entry, ok := cfg.Keybindings.Bindings["f1"]
		if !ok || entry.Line != "help" || !entry.IsEnabled() {
			t.Errorf("Expected f1 to run help, got %+v", entry)
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "report policy",
			mutate: func(c *Config) { c.Console.HandlerFailure = "report" },
		},
		{
			name:   "crash policy is case insensitive",
			mutate: func(c *Config) { c.Console.HandlerFailure = " Crash " },
		},
		{
			name:    "unknown policy",
			mutate:  func(c *Config) { c.Console.HandlerFailure = "ignore" },
			wantErr: "console.handler_failure",
		},
		{
			name: "zero key tick",
			mutate: func(c *Config) {
				c.Console.HandlerFailure = "report"
				c.Console.KeyTickMs = 0
			},
			wantErr: "console.key_tick_ms",
		},
		{
			name: "negative flush tick",
			mutate: func(c *Config) {
				c.Console.HandlerFailure = "report"
				c.Console.FlushTickMs = -1
			},
			wantErr: "console.flush_tick_ms",
		},
		{
			name: "zero sync poll",
			mutate: func(c *Config) {
				c.Console.HandlerFailure = "report"
				c.Console.SyncPollMs = 0
			},
			wantErr: "console.sync_poll_ms",
		},
		{
			name: "unknown display provider",
			mutate: func(c *Config) {
				c.Console.HandlerFailure = "report"
				c.Display.Provider = "wayland"
			},
			wantErr: "display.provider",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestFailurePolicy(t *testing.T) {
	cfg := ConsoleConfig{HandlerFailure: "  REPORT"}
	if cfg.FailurePolicy() != domain.FailureReport {
		t.Errorf("Expected report policy, got %q", cfg.FailurePolicy())
	}
}

func TestLoad(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		v := NewViper(filepath.Join(t.TempDir(), "absent.yaml"))

		cfg, err := Load(v)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.Console.Prompt != ">" {
			t.Errorf("Expected default prompt, got %q", cfg.Console.Prompt)
		}
	})

	t.Run("file values", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := `console:
  prompt: "hot>"
  handler_failure: crash
  key_tick_ms: 20
display:
  provider: headless
keybindings:
  enabled: true
  bindings:
    ctrl+alt+s:
      line: "status"
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write config: %v", err)
		}

		cfg, err := Load(NewViper(path))
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if cfg.Console.Prompt != "hot>" {
			t.Errorf("Expected prompt 'hot>', got %q", cfg.Console.Prompt)
		}
		if cfg.Console.FailurePolicy() != domain.FailureCrash {
			t.Errorf("Expected crash policy, got %q", cfg.Console.HandlerFailure)
		}
		if cfg.Console.KeyTickMs != 20 {
			t.Errorf("Expected key tick 20, got %d", cfg.Console.KeyTickMs)
		}
		if cfg.Console.FlushTickMs != 50 {
			t.Errorf("Expected untouched flush tick 50, got %d", cfg.Console.FlushTickMs)
		}
		if cfg.Display.Provider != "headless" {
			t.Errorf("Expected headless provider, got %q", cfg.Display.Provider)
		}
		if entry := cfg.Keybindings.Bindings["ctrl+alt+s"]; entry.Line != "status" {
			t.Errorf("Expected ctrl+alt+s to run status, got %+v", entry)
		}
	})

	t.Run("environment overrides file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte("console:\n  prompt: \"file>\"\n"), 0644); err != nil {
			t.Fatalf("Failed to write config: %v", err)
		}
		t.Setenv("HOTCLI_CONSOLE_PROMPT", "env>")
		t.Setenv("HOTCLI_CONSOLE_HANDLER_FAILURE", "report")

		cfg, err := Load(NewViper(path))
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.Console.Prompt != "env>" {
			t.Errorf("Expected env prompt, got %q", cfg.Console.Prompt)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("Expected env policy to validate, got %v", err)
		}
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte("console: [unterminated"), 0644); err != nil {
			t.Fatalf("Failed to write config: %v", err)
		}

		if _, err := Load(NewViper(path)); err == nil {
			t.Error("Expected an error for malformed yaml")
		}
	})
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Console.HandlerFailure = "report"
	cfg.Console.Prompt = "$"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read saved config: %v", err)
	}
	if !strings.Contains(string(data), "\n  prompt: ") {
		t.Errorf("Expected two-space indented prompt, got:\n%s", data)
	}

	loaded, err := Load(NewViper(path))
	if err != nil {
		t.Fatalf("Failed to reload config: %v", err)
	}
	if loaded.Console.Prompt != "$" || loaded.Console.FailurePolicy() != domain.FailureReport {
		t.Errorf("Expected saved values to round trip, got %+v", loaded.Console)
	}
}
