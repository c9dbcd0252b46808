package headless

import (
	"context"
	"os"
	"os/signal"
	"sync"

	display "github.com/inference-gateway/hotcli/internal/display"
	logger "github.com/inference-gateway/hotcli/internal/logger"
)

// Client is used when no display server is reachable: no key is ever held,
// the console is always focused, and the terminal's interrupt signal stands in
// for the toggle combo
type Client struct {
	signals chan os.Signal
	toggles chan struct{}
	done    chan struct{}
	once    sync.Once
}

var (
	_ display.Capabilities = (*Client)(nil)
	_ display.ToggleSource = (*Client)(nil)
)

// NewClient creates a headless client fed by the given signals
func NewClient(sigs ...os.Signal) *Client {
	c := &Client{
		signals: make(chan os.Signal, 1),
		toggles: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	if len(sigs) > 0 {
		signal.Notify(c.signals, sigs...)
	}
	go c.forward()
	return c
}

func (c *Client) forward() {
	for {
		select {
		case <-c.done:
			return
		case sig := <-c.signals:
			logger.Debug("Interrupt received, toggling console", "signal", sig.String())
			select {
			case c.toggles <- struct{}{}:
			default:
			}
		}
	}
}

// IsHeld always reports false
func (c *Client) IsHeld(string) (bool, error) {
	return false, nil
}

// WaitForRelease returns immediately
func (c *Client) WaitForRelease(context.Context, string) error {
	return nil
}

// IsForeground always reports true
func (c *Client) IsForeground() (bool, error) {
	return true, nil
}

// ToggleEvents yields one value per interrupt
func (c *Client) ToggleEvents() <-chan struct{} {
	return c.toggles
}

// Close stops listening for signals
func (c *Client) Close() error {
	c.once.Do(func() {
		signal.Stop(c.signals)
		close(c.done)
	})
	return nil
}

// Provider implements the display.Provider interface without a display
type Provider struct{}

var _ display.Provider = (*Provider)(nil)

// NewProvider creates a new headless provider
func NewProvider() *Provider {
	return &Provider{}
}

// Open returns a client that toggles on os.Interrupt
func (p *Provider) Open(string) (display.Capabilities, error) {
	return NewClient(os.Interrupt), nil
}

// GetDisplayInfo returns information about the headless provider
func (p *Provider) GetDisplayInfo() display.DisplayInfo {
	return display.DisplayInfo{
		Name:     "headless",
		Fallback: true,
	}
}

// IsAvailable is always true
func (p *Provider) IsAvailable() bool {
	return true
}

func init() {
	display.Register(NewProvider())
}
