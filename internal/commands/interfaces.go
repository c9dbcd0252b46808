package commands

import domain "github.com/inference-gateway/hotcli/internal/domain"

// CommandRegistry stores console commands keyed by (group, name)
type CommandRegistry interface {
	Register(name string, handler domain.Handler, opts ...Option) (*domain.Command, error)
	Lookup(group, name string) (*domain.Command, bool)
	HasGroup(group string) bool
	Groups() []string
	ListGroup(group string) []string
	Close()
}

// Option tweaks a command registration
type Option func(*registration)

type registration struct {
	group       string
	description string
	synchronous bool
}

// InGroup places the command in a group other than "main"
func InGroup(group string) Option {
	return func(r *registration) {
		r.group = group
	}
}

// Async makes the console return to the prompt without waiting for the handler
func Async() Option {
	return func(r *registration) {
		r.synchronous = false
	}
}

// WithDescription sets the text shown by the help listing
func WithDescription(description string) Option {
	return func(r *registration) {
		r.description = description
	}
}

// ParsedLine is a console line split into its target and positional arguments
type ParsedLine struct {
	Group string
	Name  string
	Args  []string
}
