package config

// KeybindingsConfig maps global key combos to console command lines. When
// enabled, pressing a combo resolves its line like the console does and runs
// the command inside the keybind task, leaving the prompt alone.
type KeybindingsConfig struct {
	Enabled  bool                       `yaml:"enabled" mapstructure:"enabled"`
	Bindings map[string]KeyBindingEntry `yaml:"bindings" mapstructure:"bindings"`
}

// KeyBindingEntry is one configured combo
type KeyBindingEntry struct {
	Line        string `yaml:"line" mapstructure:"line"`
	Description string `yaml:"description,omitempty" mapstructure:"description"`
	Enabled     *bool  `yaml:"enabled,omitempty" mapstructure:"enabled"`
}

// IsEnabled reports whether the entry should be bound; unset means enabled
func (e KeyBindingEntry) IsEnabled() bool {
	return e.Enabled == nil || *e.Enabled
}

// GetDefaultKeybindings returns the default keybinding configuration
func GetDefaultKeybindings() map[string]KeyBindingEntry {
	enabled := true
	return map[string]KeyBindingEntry{
		"f1": {
			Line:        "help",
			Description: "show available commands",
			Enabled:     &enabled,
		},
	}
}
