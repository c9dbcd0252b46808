package display

import (
	domain "github.com/inference-gateway/hotcli/internal/domain"
)

// Capabilities is the key-state and focus view of one display connection
type Capabilities interface {
	domain.KeyState
	domain.FocusChecker

	// Close releases the display connection
	Close() error
}

// ToggleSource is implemented by capabilities that cannot observe the toggle
// combo directly and deliver it as events instead
type ToggleSource interface {
	ToggleEvents() <-chan struct{}
}

// Provider opens Capabilities for a specific display server
type Provider interface {
	// Open connects to the named display; an empty name uses the environment default
	Open(display string) (Capabilities, error)

	// GetDisplayInfo returns information about the display server
	GetDisplayInfo() DisplayInfo

	// IsAvailable returns true if this display server is reachable on the current system
	IsAvailable() bool
}

// DisplayInfo contains metadata about a display server
type DisplayInfo struct {
	Name             string // "x11", "headless"
	SupportsKeyState bool
	SupportsFocus    bool
	// Fallback providers are only picked when no real display is available
	Fallback bool
}
