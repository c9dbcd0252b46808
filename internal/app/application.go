package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"sync"
	"sync/atomic"

	config "github.com/inference-gateway/hotcli/config"
	commands "github.com/inference-gateway/hotcli/internal/commands"
	constants "github.com/inference-gateway/hotcli/internal/constants"
	domain "github.com/inference-gateway/hotcli/internal/domain"
	formatting "github.com/inference-gateway/hotcli/internal/formatting"
	logger "github.com/inference-gateway/hotcli/internal/logger"
	services "github.com/inference-gateway/hotcli/internal/services"
	keybinding "github.com/inference-gateway/hotcli/internal/ui/keybinding"
	zap "go.uber.org/zap"
)

// Options carries the collaborators an Application is built from
type Options struct {
	Config *config.Config

	// Keys and Focus are the external capabilities. Nil means nothing is ever
	// held and the console is always focused.
	Keys  domain.KeyState
	Focus domain.FocusChecker

	// Toggles delivers toggle events from sources that cannot be polled
	Toggles <-chan struct{}

	In  io.Reader
	Out io.Writer

	// Exit terminates the process; defaults to os.Exit
	Exit func(code int)

	// Name, Version and Display only feed the startup banner
	Name    string
	Version string
	Display string
}

// Application is the console: registration before Run, the three loops after
type Application struct {
	cfg      *config.Config
	commands *commands.Registry
	keybinds *keybinding.Registry

	arbiter    *services.ModeArbiter
	queue      *services.OutputQueue
	flusher    *services.OutputFlusher
	terminal   *services.Terminal
	lines      *services.LineSource
	dispatcher *services.Dispatcher
	bag        *services.ContextBag

	startup *StartupRunner
	console *ConsoleLoop
	monitor *KeyMonitor

	exit   func(code int)
	banner formatting.BannerInfo

	running atomic.Bool
	cancel  context.CancelFunc
	mu      sync.Mutex
}

// New wires an Application. The config must validate, which means the host
// has chosen a handler failure policy.
func New(opts Options) (*Application, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	in := opts.In
	if in == nil {
		in = os.Stdin
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	exit := opts.Exit
	if exit == nil {
		exit = os.Exit
	}

	a := &Application{
		cfg:      cfg,
		commands: commands.NewRegistry(),
		keybinds: keybinding.NewRegistry(),
		exit:     exit,
		banner: formatting.BannerInfo{
			Name:    opts.Name,
			Version: opts.Version,
			Toggle:  constants.ToggleCombo,
			Display: opts.Display,
		},
	}

	a.terminal = services.NewTerminal(out, cfg.Console.Prompt)
	a.arbiter = services.NewModeArbiter(cfg.Console.InitialMode(), a.terminal)
	a.queue = services.NewOutputQueue()
	a.flusher = services.NewOutputFlusher(a.queue, a.arbiter, a.terminal, cfg.Console.FlushTick())
	a.lines = services.NewLineSource(in)
	a.bag = services.NewContextBag(a.arbiter, a.queue, a.lines, opts.Keys, a.Quit)
	a.dispatcher = services.NewDispatcher(services.DispatcherOptions{
		Arbiter:      a.arbiter,
		Output:       a.queue,
		Drain:        a.flusher.Drain,
		Bag:          a.bag,
		Policy:       cfg.Console.FailurePolicy(),
		PollInterval: cfg.Console.SyncPoll(),
		Exit:         exit,
	})

	a.startup = NewStartupRunner(a.dispatcher)
	a.console = NewConsoleLoop(ConsoleLoopOptions{
		Registry:        a.commands,
		Arbiter:         a.arbiter,
		Dispatcher:      a.dispatcher,
		Terminal:        a.terminal,
		Lines:           a.lines,
		NotFoundMessage: cfg.Console.NotFoundMessage,
		Suggest:         cfg.Console.Suggest,
	})
	a.monitor = NewKeyMonitor(KeyMonitorOptions{
		Keys:       opts.Keys,
		Focus:      opts.Focus,
		Toggles:    opts.Toggles,
		Arbiter:    a.arbiter,
		Dispatcher: a.dispatcher,
		Tick:       cfg.Console.KeyTick(),
	})

	return a, nil
}

// AddCommand registers a console command. Commands are synchronous unless
// commands.Async is given.
func (a *Application) AddCommand(name string, handler domain.Handler, opts ...commands.Option) error {
	_, err := a.commands.Register(name, handler, opts...)
	if err != nil {
		return fmt.Errorf("failed to add command %q: %w", name, err)
	}
	return nil
}

// AddStartupCommand registers a command that also runs once at Run with the
// given bound args. A name made only of underscores registers just the startup
// run, with no console-reachable command.
func (a *Application) AddStartupCommand(name string, handler domain.Handler, args []any, opts ...commands.Option) error {
	if handler.Fn == nil {
		return fmt.Errorf("failed to add startup command %q: %w", name, domain.ErrNilHandler)
	}

	if !commands.IsSentinelName(name) {
		opts = append(slices.Clone(opts), commands.Async())
		if err := a.AddCommand(name, handler, opts...); err != nil {
			return err
		}
	}

	return a.startup.Add(domain.Service{Name: name, Handler: handler, Args: args})
}

// AddService registers a startup-only task
func (a *Application) AddService(name string, handler domain.Handler, args ...any) error {
	if handler.Fn == nil {
		return fmt.Errorf("failed to add service %q: %w", name, domain.ErrNilHandler)
	}
	return a.startup.Add(domain.Service{Name: name, Handler: handler, Args: args})
}

// AddKeybind binds a global hotkey; args are passed on every press
func (a *Application) AddKeybind(combo string, handler domain.Handler, args ...any) error {
	if err := a.keybinds.Register(combo, handler, args...); err != nil {
		return fmt.Errorf("failed to add keybind %q: %w", combo, err)
	}
	return nil
}

// Bag returns the context shared by every handler
func (a *Application) Bag() domain.Bag {
	return a.bag
}

// Mode returns the current console mode
func (a *Application) Mode() domain.Mode {
	return a.arbiter.Mode()
}

// History returns the recorded mode transitions
func (a *Application) History() []domain.ModeTransition {
	return a.arbiter.History()
}

// Run freezes the registries, launches the services and runs the key monitor,
// console loop and output flusher until ctx is done or Quit is called
func (a *Application) Run(ctx context.Context) error {
	if !a.running.CompareAndSwap(false, true) {
		return domain.ErrAlreadyRunning
	}

	if err := a.registerConfigured(); err != nil {
		return err
	}
	a.commands.Close()
	a.keybinds.Close()
	a.startup.Close()
	a.monitor.SetBindings(a.keybinds.List())

	ctx, cancel := context.WithCancel(ctx)
	ctx = logger.With(ctx, zap.String("console", a.banner.Name))
	a.mu.Lock()
	a.cancel = cancel
	a.mu.Unlock()
	defer cancel()

	if a.cfg.Console.ShowBanner {
		a.showBanner()
	}

	logger.Info("Console starting",
		"mode", a.arbiter.Mode().String(),
		"commands", a.commandCount(),
		"keybinds", len(a.keybinds.List()),
		"services", a.startup.Len())

	a.startup.Run(ctx)
	a.lines.Start(ctx)

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		a.flusher.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		a.monitor.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		a.console.Run(ctx)
	}()

	<-ctx.Done()
	wg.Wait()
	a.flusher.Drain()

	logger.Info("Console stopped")
	return nil
}

// Quit stops the loops and terminates the process, abandoning running tasks
func (a *Application) Quit() {
	logger.Info("Quit requested")

	a.mu.Lock()
	cancel := a.cancel
	a.mu.Unlock()
	if cancel != nil {
		cancel()
	}

	logger.Close()
	a.exit(0)
}

func (a *Application) showBanner() {
	info := a.banner
	if info.Name == "" {
		info.Name = "hotcli"
	}
	if info.Display == "" {
		info.Display = "none"
	}
	info.Mode = a.arbiter.Mode().String()
	info.Commands = a.commandCount()
	info.Keybinds = len(a.keybinds.List())
	info.ServiceCnt = a.startup.Len()

	a.terminal.Println(formatting.Banner(info))
}

func (a *Application) commandCount() int {
	n := 0
	for _, g := range a.commands.Groups() {
		n += len(a.commands.ListGroup(g))
	}
	return n
}
