package app

import (
	"context"
	"sync"
	"time"

	constants "github.com/inference-gateway/hotcli/internal/constants"
	domain "github.com/inference-gateway/hotcli/internal/domain"
	logger "github.com/inference-gateway/hotcli/internal/logger"
	services "github.com/inference-gateway/hotcli/internal/services"
	keys "github.com/inference-gateway/hotcli/internal/ui/keys"
)

// KeyMonitorOptions configures a KeyMonitor
type KeyMonitorOptions struct {
	Keys       domain.KeyState
	Focus      domain.FocusChecker
	Toggles    <-chan struct{}
	Arbiter    *services.ModeArbiter
	Dispatcher *services.Dispatcher
	Tick       time.Duration
}

// comboState is the edge detector for one combo. A held combo fires only
// while armed; it re-arms once its last token is seen released.
type comboState struct {
	combo string
	last  string
	armed bool
}

func newComboState(combo string) comboState {
	return comboState{combo: combo, last: keys.LastToken(combo), armed: true}
}

// KeyMonitor polls key state and drives the toggle combo and every keybind
type KeyMonitor struct {
	keys       domain.KeyState
	focus      domain.FocusChecker
	toggles    <-chan struct{}
	arbiter    *services.ModeArbiter
	dispatcher *services.Dispatcher
	tick       time.Duration

	toggle   comboState
	bindings []*domain.Keybind
	states   []comboState
	mu       sync.Mutex
}

// NewKeyMonitor creates a key monitor with no keybinds
func NewKeyMonitor(opts KeyMonitorOptions) *KeyMonitor {
	tick := opts.Tick
	if tick <= 0 {
		tick = constants.KeyMonitorTick
	}
	return &KeyMonitor{
		keys:       opts.Keys,
		focus:      opts.Focus,
		toggles:    opts.Toggles,
		arbiter:    opts.Arbiter,
		dispatcher: opts.Dispatcher,
		tick:       tick,
		toggle:     newComboState(constants.ToggleCombo),
	}
}

// SetBindings installs the keybinds, evaluated in the given order
func (m *KeyMonitor) SetBindings(bindings []*domain.Keybind) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.bindings = bindings
	m.states = make([]comboState, len(bindings))
	for i, kb := range bindings {
		m.states[i] = newComboState(kb.Combo)
	}
}

// Run evaluates on every tick, and toggles on every external toggle event,
// until ctx is done
func (m *KeyMonitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Tick(ctx)
		case <-m.toggles:
			if err := m.arbiter.Acquire(ctx); err != nil {
				return
			}
			m.arbiter.ToggleHotkey()
			m.arbiter.Release()
		}
	}
}

// Tick performs one evaluation. Nothing happens while the console window is
// not focused or while another producer holds the console token; arming state
// is left untouched in both cases.
func (m *KeyMonitor) Tick(ctx context.Context) {
	if m.keys == nil {
		return
	}
	if !m.focused() {
		return
	}
	if !m.arbiter.TryAcquire() {
		return
	}
	defer m.arbiter.Release()

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.fires(&m.toggle) {
		m.arbiter.ToggleHotkey()
	}

	for i, kb := range m.bindings {
		if !m.fires(&m.states[i]) {
			continue
		}
		if _, err := m.dispatcher.Dispatch(ctx, services.Request{
			Target:  kb.Combo,
			Handler: kb.Handler,
			Values:  kb.Args,
			Origin:  services.OriginKeybind,
		}); err != nil {
			logger.Warn("Keybind dispatch failed", "combo", kb.Combo, "error", err)
		}
	}
}

func (m *KeyMonitor) focused() bool {
	if m.focus == nil {
		return true
	}
	fg, err := m.focus.IsForeground()
	if err != nil {
		logger.Debug("Focus check failed, skipping tick", "error", err)
		return false
	}
	return fg
}

// fires advances the edge detector and reports whether the combo was pressed
func (m *KeyMonitor) fires(s *comboState) bool {
	if s.armed {
		if m.held(s.combo) {
			s.armed = false
			return true
		}
		return false
	}

	if !m.held(s.last) {
		s.armed = true
	}
	return false
}

func (m *KeyMonitor) held(combo string) bool {
	held, err := m.keys.IsHeld(combo)
	if err != nil {
		logger.Debug("Key state query failed", "combo", combo, "error", err)
		return false
	}
	return held
}
