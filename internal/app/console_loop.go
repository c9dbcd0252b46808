package app

import (
	"context"
	"fmt"
	"strings"

	commands "github.com/inference-gateway/hotcli/internal/commands"
	constants "github.com/inference-gateway/hotcli/internal/constants"
	domain "github.com/inference-gateway/hotcli/internal/domain"
	logger "github.com/inference-gateway/hotcli/internal/logger"
	services "github.com/inference-gateway/hotcli/internal/services"
)

// ConsoleLoopOptions configures a ConsoleLoop
type ConsoleLoopOptions struct {
	Registry        *commands.Registry
	Arbiter         *services.ModeArbiter
	Dispatcher      *services.Dispatcher
	Terminal        *services.Terminal
	Lines           domain.LineReader
	NotFoundMessage string
	Suggest         bool
}

// ConsoleLoop reads typed lines while Interactive and dispatches them
type ConsoleLoop struct {
	registry        *commands.Registry
	arbiter         *services.ModeArbiter
	dispatcher      *services.Dispatcher
	terminal        *services.Terminal
	lines           domain.LineReader
	notFoundMessage string
	suggest         bool
}

// NewConsoleLoop creates a console loop
func NewConsoleLoop(opts ConsoleLoopOptions) *ConsoleLoop {
	return &ConsoleLoop{
		registry:        opts.Registry,
		arbiter:         opts.Arbiter,
		dispatcher:      opts.Dispatcher,
		terminal:        opts.Terminal,
		lines:           opts.Lines,
		notFoundMessage: opts.NotFoundMessage,
		suggest:         opts.Suggest,
	}
}

// Run loops until ctx is done or the input ends. Lines are only taken off the
// reader while Interactive, so Bag.Input gets them otherwise.
func (l *ConsoleLoop) Run(ctx context.Context) {
	for {
		changed := l.arbiter.Changed()

		var lines <-chan string
		if l.arbiter.IsInteractive() {
			l.terminal.ShowPrompt()
			lines = l.lines.Lines()
		}

		select {
		case <-ctx.Done():
			return
		case <-changed:
		case line, ok := <-lines:
			if !ok {
				logger.Info("Console input ended, console loop stopping")
				return
			}
			l.terminal.LineConsumed()

			if !l.arbiter.IsInteractive() {
				logger.Debug("Discarding line read while the console was handed away", "line", line)
				continue
			}
			l.Handle(ctx, line)
		}
	}
}

// Handle resolves one typed line and dispatches it. Unknown commands print the
// not-found message and never fail the loop.
func (l *ConsoleLoop) Handle(ctx context.Context, line string) {
	if strings.TrimSpace(line) == "" {
		return
	}

	parsed, cmd, ok := l.registry.Resolve(line)
	if !ok {
		l.notFound(parsed)
		return
	}

	values := make([]any, len(parsed.Args))
	for i, arg := range parsed.Args {
		values[i] = arg
	}

	_, err := l.dispatcher.Dispatch(ctx, services.Request{
		Target:      displayName(cmd),
		Handler:     cmd.Handler,
		Values:      values,
		Synchronous: cmd.Synchronous,
		Origin:      services.OriginConsole,
	})
	if err != nil {
		logger.Warn("Console dispatch interrupted", "command", displayName(cmd), "error", err)
	}
}

func (l *ConsoleLoop) notFound(parsed commands.ParsedLine) {
	logger.Debug("Command not found", "group", parsed.Group, "name", parsed.Name)
	l.terminal.Println(l.notFoundMessage)

	if !l.suggest {
		return
	}
	if suggestion := l.registry.Suggest(parsed); suggestion != "" {
		l.terminal.Println(fmt.Sprintf("did you mean %q?", suggestion))
	}
}

func displayName(cmd *domain.Command) string {
	if cmd.Group == constants.DefaultGroup {
		return cmd.Name
	}
	return cmd.Group + " " + cmd.Name
}
