// Package console is the embedding API: register commands, keybinds and
// services on a Console, then Run it.
//
// ctrl+c is the mode toggle. When the toggle is read from key state (x11 or
// host capabilities) New ignores SIGINT for the whole process, so the
// terminal's copy of the keypress cannot kill the host. The headless provider
// turns SIGINT into the toggle instead.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	config "github.com/inference-gateway/hotcli/config"
	app "github.com/inference-gateway/hotcli/internal/app"
	commands "github.com/inference-gateway/hotcli/internal/commands"
	display "github.com/inference-gateway/hotcli/internal/display"
	domain "github.com/inference-gateway/hotcli/internal/domain"
	logger "github.com/inference-gateway/hotcli/internal/logger"

	_ "github.com/inference-gateway/hotcli/internal/display/headless"
	_ "github.com/inference-gateway/hotcli/internal/display/x11"
)

type (
	Bag           = domain.Bag
	Args          = domain.Args
	Handler       = domain.Handler
	HandlerFunc   = domain.HandlerFunc
	Param         = domain.Param
	Mode          = domain.Mode
	Config        = config.Config
	CommandOption = commands.Option
	KeyState      = domain.KeyState
	FocusChecker  = domain.FocusChecker
)

const (
	ParamValue     = domain.ParamValue
	ParamBag       = domain.ParamBag
	Interactive    = domain.ModeInteractive
	NonInteractive = domain.ModeNonInteractive
)

var (
	InGroup         = commands.InGroup
	Async           = commands.Async
	WithDescription = commands.WithDescription

	ErrDuplicateCommand = domain.ErrDuplicateCommand
	ErrInvalidName      = domain.ErrInvalidName
	ErrReservedName     = domain.ErrReservedName
	ErrMalformedCombo   = domain.ErrMalformedCombo
	ErrDuplicateCombo   = domain.ErrDuplicateCombo
	ErrReservedCombo    = domain.ErrReservedCombo
	ErrRegistryClosed   = domain.ErrRegistryClosed
	ErrInputClosed      = domain.ErrInputClosed
)

// Func wraps a handler that takes no Bag
func Func(fn HandlerFunc) Handler {
	return Handler{Fn: fn}
}

// WithBag wraps a handler whose first argument is the Bag
func WithBag(fn HandlerFunc) Handler {
	return Handler{Fn: fn, Params: []Param{ParamBag}}
}

// Params wraps a handler with an explicit parameter-role list
func Params(fn HandlerFunc, params ...Param) Handler {
	return Handler{Fn: fn, Params: params}
}

// DefaultConfig returns the default configuration with the given failure
// policy, "report" or "crash"
func DefaultConfig(policy string) *Config {
	cfg := config.DefaultConfig()
	cfg.Console.HandlerFailure = policy
	return cfg
}

type settings struct {
	keys    domain.KeyState
	focus   domain.FocusChecker
	in      io.Reader
	out     io.Writer
	exit    func(int)
	name    string
	version string
}

// Option customizes New
type Option func(*settings)

// WithCapabilities replaces the display provider with the given key-state and
// focus capabilities
func WithCapabilities(keys KeyState, focus FocusChecker) Option {
	return func(s *settings) {
		s.keys = keys
		s.focus = focus
	}
}

// WithIO replaces stdin and stdout
func WithIO(in io.Reader, out io.Writer) Option {
	return func(s *settings) {
		s.in = in
		s.out = out
	}
}

// WithExitFunc replaces os.Exit for Quit and the crash policy
func WithExitFunc(exit func(int)) Option {
	return func(s *settings) {
		s.exit = exit
	}
}

// WithName sets the name and version shown in the startup banner
func WithName(name, version string) Option {
	return func(s *settings) {
		s.name = name
		s.version = version
	}
}

var ignoreInterrupt = func() { signal.Ignore(os.Interrupt) }

// Console is a configured console ready for registrations
type Console struct {
	app     *app.Application
	caps    display.Capabilities
	display string
}

// New builds a console. Unless WithCapabilities is given, key state and focus
// come from the display provider selected by cfg.Display.
func New(cfg *Config, opts ...Option) (*Console, error) {
	if cfg == nil {
		return nil, errors.New("console: config is required")
	}

	s := &settings{}
	for _, opt := range opts {
		opt(s)
	}

	c := &Console{}
	displayName := "custom"
	var toggles <-chan struct{}

	if s.keys == nil && s.focus == nil {
		caps, info, err := display.Open(cfg.Display.Provider, cfg.Display.Name)
		if err != nil {
			return nil, fmt.Errorf("console: %w", err)
		}
		c.caps = caps
		s.keys = caps
		s.focus = caps
		displayName = info.Name
		if ts, ok := caps.(display.ToggleSource); ok {
			toggles = ts.ToggleEvents()
		}
	}

	a, err := app.New(app.Options{
		Config:  cfg,
		Keys:    s.keys,
		Focus:   s.focus,
		Toggles: toggles,
		In:      s.in,
		Out:     s.out,
		Exit:    s.exit,
		Name:    s.name,
		Version: s.version,
		Display: displayName,
	})
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("console: %w", err)
	}
	c.app = a
	c.display = displayName

	if toggles == nil {
		ignoreInterrupt()
	}

	logger.Debug("Console created", "display", displayName)
	return c, nil
}

// AddCommand registers a console command
func (c *Console) AddCommand(name string, handler Handler, opts ...CommandOption) error {
	return c.app.AddCommand(name, handler, opts...)
}

// AddStartupCommand registers a command that also runs once at Run with args.
// The name "_" registers only the startup run.
func (c *Console) AddStartupCommand(name string, handler Handler, args []any, opts ...CommandOption) error {
	return c.app.AddStartupCommand(name, handler, args, opts...)
}

// AddService registers a startup-only task
func (c *Console) AddService(name string, handler Handler, args ...any) error {
	return c.app.AddService(name, handler, args...)
}

// AddKeybind binds a global hotkey
func (c *Console) AddKeybind(combo string, handler Handler, args ...any) error {
	return c.app.AddKeybind(combo, handler, args...)
}

// MustAddCommand is AddCommand that panics on failure
func (c *Console) MustAddCommand(name string, handler Handler, opts ...CommandOption) {
	if err := c.AddCommand(name, handler, opts...); err != nil {
		panic(err)
	}
}

// MustAddService is AddService that panics on failure
func (c *Console) MustAddService(name string, handler Handler, args ...any) {
	if err := c.AddService(name, handler, args...); err != nil {
		panic(err)
	}
}

// MustAddKeybind is AddKeybind that panics on failure
func (c *Console) MustAddKeybind(combo string, handler Handler, args ...any) {
	if err := c.AddKeybind(combo, handler, args...); err != nil {
		panic(err)
	}
}

// Display names the key-state provider in use, "custom" when WithCapabilities was given
func (c *Console) Display() string {
	return c.display
}

// Bag returns the context shared by every handler
func (c *Console) Bag() Bag {
	return c.app.Bag()
}

// Mode returns the current console mode
func (c *Console) Mode() Mode {
	return c.app.Mode()
}

// HelpText renders the registered commands
func (c *Console) HelpText() string {
	return c.app.HelpText()
}

// Run blocks until ctx is done or Quit is called, then releases the display
func (c *Console) Run(ctx context.Context) error {
	defer func() { _ = c.Close() }()
	return c.app.Run(ctx)
}

// Quit terminates the process
func (c *Console) Quit() {
	c.app.Quit()
}

// Close releases the display connection
func (c *Console) Close() error {
	if c.caps == nil {
		return nil
	}
	return c.caps.Close()
}
