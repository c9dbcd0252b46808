package app

import (
	"errors"
	"fmt"
	"sort"

	commands "github.com/inference-gateway/hotcli/internal/commands"
	domain "github.com/inference-gateway/hotcli/internal/domain"
	formatting "github.com/inference-gateway/hotcli/internal/formatting"
	logger "github.com/inference-gateway/hotcli/internal/logger"
)

// registerConfigured adds the opt-in builtins and the configured keybindings.
// It runs once, right before the registries are frozen.
func (a *Application) registerConfigured() error {
	if a.cfg.Console.Builtins {
		if err := a.registerBuiltins(); err != nil {
			return err
		}
	}

	kb := a.cfg.Keybindings
	if !kb.Enabled {
		return nil
	}

	combos := make([]string, 0, len(kb.Bindings))
	for combo := range kb.Bindings {
		combos = append(combos, combo)
	}
	sort.Strings(combos)

	for _, combo := range combos {
		entry := kb.Bindings[combo]
		if !entry.IsEnabled() {
			continue
		}
		if err := a.AddKeybind(combo, a.lineHandler(entry.Line)); err != nil {
			return fmt.Errorf("configured keybinding: %w", err)
		}
	}
	return nil
}

func (a *Application) registerBuiltins() error {
	builtins := []struct {
		name    string
		desc    string
		handler domain.Handler
	}{
		{
			name: "help",
			desc: "list the available commands",
			handler: domain.Handler{
				Params: []domain.Param{domain.ParamBag},
				Fn: func(args domain.Args) error {
					args.Bag(0).Print(a.HelpText())
					return nil
				},
			},
		},
		{
			name: "quit",
			desc: "stop the console and exit",
			handler: domain.Handler{
				Fn: func(domain.Args) error {
					a.Quit()
					return nil
				},
			},
		},
	}

	for _, b := range builtins {
		err := a.AddCommand(b.name, b.handler, commands.WithDescription(b.desc))
		if errors.Is(err, domain.ErrDuplicateCommand) {
			logger.Debug("Builtin shadowed by a host command", "command", b.name)
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// lineHandler runs a configured command line inside the keybind's task. The
// prompt is left alone, like any other keybind.
func (a *Application) lineHandler(line string) domain.Handler {
	return domain.Handler{
		Fn: func(domain.Args) error {
			parsed, cmd, ok := a.commands.Resolve(line)
			if !ok {
				return fmt.Errorf("%q: %w", line, domain.ErrUnknownCommand)
			}

			values := make([]any, len(parsed.Args))
			for i, arg := range parsed.Args {
				values[i] = arg
			}
			return cmd.Handler.Fn(domain.BuildArgs(cmd.Handler.Params, a.bag, values))
		},
	}
}

// HelpText renders every group and its commands in registration order
func (a *Application) HelpText() string {
	groups := make([]formatting.HelpGroup, 0)
	for _, g := range a.commands.Groups() {
		group := formatting.HelpGroup{Name: g}
		for _, name := range a.commands.ListGroup(g) {
			cmd, ok := a.commands.Lookup(g, name)
			if !ok {
				continue
			}
			group.Entries = append(group.Entries, formatting.HelpEntry{
				Name:        name,
				Description: cmd.Description,
				Async:       !cmd.Synchronous,
			})
		}
		groups = append(groups, group)
	}
	return formatting.FormatHelp(groups, formatting.DefaultWidth)
}
