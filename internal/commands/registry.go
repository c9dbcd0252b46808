package commands

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	levenshtein "github.com/agnivade/levenshtein"
	constants "github.com/inference-gateway/hotcli/internal/constants"
	domain "github.com/inference-gateway/hotcli/internal/domain"
	logger "github.com/inference-gateway/hotcli/internal/logger"
)

// sentinelPattern matches names made only of underscores; they are reserved
// for startup-only services
var sentinelPattern = regexp.MustCompile(`^_+$`)

// maxSuggestionDistance bounds how far a typo may be from a suggested command
const maxSuggestionDistance = 2

// IsSentinelName reports whether a name is the startup-only sentinel
func IsSentinelName(name string) bool {
	return sentinelPattern.MatchString(name)
}

// Registry manages all available commands
type Registry struct {
	commands map[string]*domain.Command
	groups   map[string][]string
	order    []string
	closed   bool
	mutex    sync.RWMutex
}

var _ CommandRegistry = (*Registry)(nil)

// NewRegistry creates a new command registry with the empty "main" group
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]*domain.Command),
		groups:   map[string][]string{constants.DefaultGroup: {}},
		order:    []string{constants.DefaultGroup},
	}
}

func commandKey(group, name string) string {
	return group + " " + name
}

// Register adds a command. Names and groups are lower-cased; the group
// defaults to "main". Commands are synchronous unless Async is given.
func (r *Registry) Register(name string, handler domain.Handler, opts ...Option) (*domain.Command, error) {
	reg := registration{group: constants.DefaultGroup, synchronous: true}
	for _, opt := range opts {
		opt(&reg)
	}

	name = strings.ToLower(strings.TrimSpace(name))
	group := strings.ToLower(strings.TrimSpace(reg.group))
	if group == "" {
		group = constants.DefaultGroup
	}

	if handler.Fn == nil {
		return nil, fmt.Errorf("command %q: %w", name, domain.ErrNilHandler)
	}
	if IsSentinelName(name) {
		return nil, fmt.Errorf("%w: %q is reserved for startup services", domain.ErrReservedName, name)
	}
	if name == "" || strings.ContainsAny(name, " \t\"") || strings.ContainsAny(group, " \t\"") {
		return nil, fmt.Errorf("%w: group %q name %q", domain.ErrInvalidName, group, name)
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.closed {
		return nil, fmt.Errorf("command %q: %w", name, domain.ErrRegistryClosed)
	}

	key := commandKey(group, name)
	if _, exists := r.commands[key]; exists {
		return nil, fmt.Errorf("%w: %s %s", domain.ErrDuplicateCommand, group, name)
	}

	cmd := &domain.Command{
		Name:        name,
		Group:       group,
		Description: reg.description,
		Handler:     handler,
		Synchronous: reg.synchronous,
	}
	r.commands[key] = cmd

	if _, exists := r.groups[group]; !exists {
		r.order = append(r.order, group)
	}
	r.groups[group] = append(r.groups[group], name)

	logger.Debug("Registered command", "group", group, "name", name, "synchronous", reg.synchronous)
	return cmd, nil
}

// Lookup retrieves a command by group and name
func (r *Registry) Lookup(group, name string) (*domain.Command, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	cmd, exists := r.commands[commandKey(group, name)]
	return cmd, exists
}

// HasGroup reports whether any command was registered under the group
func (r *Registry) HasGroup(group string) bool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	_, exists := r.groups[group]
	return exists
}

// Groups returns group names in the order they were first used
func (r *Registry) Groups() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	groups := make([]string, len(r.order))
	copy(groups, r.order)
	return groups
}

// ListGroup returns the command names of a group in registration order
func (r *Registry) ListGroup(group string) []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	names := make([]string, len(r.groups[group]))
	copy(names, r.groups[group])
	return names
}

// Close freezes the registry; later registrations fail
func (r *Registry) Close() {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.closed = true
}

// Resolve parses a console line and looks its target up
func (r *Registry) Resolve(line string) (ParsedLine, *domain.Command, bool) {
	parsed := ParseLine(line, r.HasGroup)
	cmd, ok := r.Lookup(parsed.Group, parsed.Name)
	return parsed, cmd, ok
}

// Suggest returns the closest known command line to an unknown one, or "" when
// nothing is near enough
func (r *Registry) Suggest(parsed ParsedLine) string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	target := parsed.Name
	if parsed.Group != constants.DefaultGroup {
		target = parsed.Group + " " + parsed.Name
	}

	best := ""
	bestDistance := maxSuggestionDistance + 1
	for _, group := range r.order {
		for _, name := range r.groups[group] {
			candidate := name
			if group != constants.DefaultGroup {
				candidate = group + " " + name
			}
			if d := levenshtein.ComputeDistance(target, candidate); d < bestDistance {
				best, bestDistance = candidate, d
			}
		}
	}

	return best
}
