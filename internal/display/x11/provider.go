package x11

import (
	"os"

	display "github.com/inference-gateway/hotcli/internal/display"
)

var _ display.Capabilities = (*X11Client)(nil)

// Provider implements the display.Provider interface for X11
type Provider struct{}

var _ display.Provider = (*Provider)(nil)

// NewProvider creates a new X11 provider
func NewProvider() *Provider {
	return &Provider{}
}

// Open connects to the specified display
func (p *Provider) Open(name string) (display.Capabilities, error) {
	return NewX11Client(name)
}

// GetDisplayInfo returns information about the X11 platform
func (p *Provider) GetDisplayInfo() display.DisplayInfo {
	return display.DisplayInfo{
		Name:             "x11",
		SupportsKeyState: true,
		SupportsFocus:    true,
	}
}

// IsAvailable returns true if X11 is available on the current system
func (p *Provider) IsAvailable() bool {
	return os.Getenv("DISPLAY") != ""
}

// Register the X11 provider in the global registry
func init() {
	display.Register(NewProvider())
}
