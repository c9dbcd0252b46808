package keybinding

import (
	"fmt"
	"slices"
	"sync"

	domain "github.com/inference-gateway/hotcli/internal/domain"
	logger "github.com/inference-gateway/hotcli/internal/logger"
	keys "github.com/inference-gateway/hotcli/internal/ui/keys"
)

// Registry implements the KeyRegistry interface. Bindings keep their
// registration order, which is the order the key monitor evaluates them in.
type Registry struct {
	bindings map[string]*domain.Keybind
	order    []string
	closed   bool
	mutex    sync.RWMutex
}

var _ KeyRegistry = (*Registry)(nil)

// NewRegistry creates a new key binding registry
func NewRegistry() *Registry {
	return &Registry{
		bindings: make(map[string]*domain.Keybind),
		order:    make([]string, 0),
	}
}

// Register binds a combo to a handler with fixed args supplied on every press
func (r *Registry) Register(combo string, handler domain.Handler, args ...any) error {
	if handler.Fn == nil {
		return fmt.Errorf("keybind %q: %w", combo, domain.ErrNilHandler)
	}

	normalized, err := ValidateCombo(combo)
	if err != nil {
		return err
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.closed {
		return fmt.Errorf("keybind %q: %w", normalized, domain.ErrRegistryClosed)
	}

	if _, exists := r.bindings[normalized]; exists {
		return fmt.Errorf("%w: %q", domain.ErrDuplicateCombo, normalized)
	}

	if unknown := UnknownTokens(normalized); len(unknown) > 0 {
		logger.Warn("Keybind uses tokens the key-state provider may not map", "combo", normalized, "tokens", unknown)
	}

	r.bindings[normalized] = &domain.Keybind{
		Combo:   normalized,
		Handler: handler,
		Args:    slices.Clone(args),
	}
	r.order = append(r.order, normalized)

	logger.Debug("Registered keybind", "combo", normalized, "bound_args", len(args))
	return nil
}

// Get retrieves a keybind by combo
func (r *Registry) Get(combo string) (*domain.Keybind, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	kb, exists := r.bindings[combo]
	return kb, exists
}

// List returns all keybinds in registration order
func (r *Registry) List() []*domain.Keybind {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	list := make([]*domain.Keybind, 0, len(r.order))
	for _, combo := range r.order {
		list = append(list, r.bindings[combo])
	}
	return list
}

// IsReserved reports whether a combo can never be bound
func (r *Registry) IsReserved(combo string) bool {
	return slices.Contains(ReservedCombos(), keys.Normalize(combo))
}

// Close freezes the registry; later registrations fail
func (r *Registry) Close() {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.closed = true
}
