package keybinding

import domain "github.com/inference-gateway/hotcli/internal/domain"

// KeyRegistry manages global hotkey bindings
type KeyRegistry interface {
	Register(combo string, handler domain.Handler, args ...any) error
	Get(combo string) (*domain.Keybind, bool)
	List() []*domain.Keybind
	IsReserved(combo string) bool
	Close()
}
