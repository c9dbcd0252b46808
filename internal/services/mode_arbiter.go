package services

import (
	"context"
	"sync"
	"time"

	constants "github.com/inference-gateway/hotcli/internal/constants"
	domain "github.com/inference-gateway/hotcli/internal/domain"
	logger "github.com/inference-gateway/hotcli/internal/logger"
)

// PromptWriter is the part of the terminal the arbiter drives on toggles
type PromptWriter interface {
	ShowPrompt()
	Newline()
}

// ModeArbiter owns the console mode. It is the only component that flips it.
//
// Besides the mode itself it holds a single-slot ownership token. Callers that
// pair a transition with other work (dispatching, toggling, reading input)
// acquire the token first, so two producers can never interleave their
// read-modify-write sequences.
type ModeArbiter struct {
	mode    domain.Mode
	changed chan struct{}
	token   chan struct{}
	prompt  PromptWriter
	mutex   sync.RWMutex

	history        []domain.ModeTransition
	maxHistorySize int
}

// NewModeArbiter creates an arbiter in the given initial mode
func NewModeArbiter(initial domain.Mode, prompt PromptWriter) *ModeArbiter {
	return &ModeArbiter{
		mode:           initial,
		changed:        make(chan struct{}),
		token:          make(chan struct{}, 1),
		prompt:         prompt,
		history:        make([]domain.ModeTransition, 0),
		maxHistorySize: constants.MaxModeHistory,
	}
}

// Mode returns the current mode
func (a *ModeArbiter) Mode() domain.Mode {
	a.mutex.RLock()
	defer a.mutex.RUnlock()
	return a.mode
}

// IsInteractive reports whether the prompt owns the console
func (a *ModeArbiter) IsInteractive() bool {
	return a.Mode() == domain.ModeInteractive
}

// Changed returns a channel that is closed on the next transition
func (a *ModeArbiter) Changed() <-chan struct{} {
	a.mutex.RLock()
	defer a.mutex.RUnlock()
	return a.changed
}

// Acquire blocks until the ownership token is free or ctx is done
func (a *ModeArbiter) Acquire(ctx context.Context) error {
	select {
	case a.token <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TryAcquire takes the ownership token if it is free
func (a *ModeArbiter) TryAcquire() bool {
	select {
	case a.token <- struct{}{}:
		return true
	default:
		return false
	}
}

// Release returns the ownership token
func (a *ModeArbiter) Release() {
	select {
	case <-a.token:
	default:
		logger.Warn("Mode arbiter token released without being held")
	}
}

// ToggleHotkey flips the mode. Entering Interactive shows the prompt marker;
// entering NonInteractive closes the prompt line.
func (a *ModeArbiter) ToggleHotkey() domain.Mode {
	a.mutex.Lock()
	next := a.mode.Toggled()
	a.transitionLocked(domain.TransitionToggleHotkey, next, constants.ToggleCombo)
	a.mutex.Unlock()

	if a.prompt != nil {
		if next == domain.ModeInteractive {
			a.prompt.ShowPrompt()
		} else {
			a.prompt.Newline()
		}
	}

	return next
}

// DispatchStart forces NonInteractive before a console command is launched
func (a *ModeArbiter) DispatchStart(command string) {
	a.set(domain.TransitionDispatchStart, domain.ModeNonInteractive, command)
}

// DispatchEnd hands the prompt back to the console loop that issued the command
func (a *ModeArbiter) DispatchEnd(command string) {
	a.set(domain.TransitionDispatchEnd, domain.ModeInteractive, command)
}

// BeginInput forces NonInteractive for the duration of a Bag.Input read and
// returns the mode it replaced
func (a *ModeArbiter) BeginInput(subject string) domain.Mode {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	previous := a.mode
	a.transitionLocked(domain.TransitionInputRequest, domain.ModeNonInteractive, subject)
	return previous
}

// EndInput restores the mode BeginInput replaced. Inside a synchronous
// command that is NonInteractive, so the command's remaining output still
// reaches the console before its DispatchEnd.
func (a *ModeArbiter) EndInput(subject string, restore domain.Mode) {
	a.set(domain.TransitionInputDone, restore, subject)
}

// Force is the handler-invoked override, usable at any time
func (a *ModeArbiter) Force(mode domain.Mode, subject string) {
	a.set(domain.TransitionExplicitForce, mode, subject)
}

// History returns a copy of the recorded transitions, oldest first
func (a *ModeArbiter) History() []domain.ModeTransition {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	history := make([]domain.ModeTransition, len(a.history))
	copy(history, a.history)
	return history
}

func (a *ModeArbiter) set(kind domain.TransitionKind, mode domain.Mode, subject string) {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	a.transitionLocked(kind, mode, subject)
}

// transitionLocked records the transition and wakes every Changed waiter.
// Waiters are woken even when the mode did not change so they re-evaluate.
func (a *ModeArbiter) transitionLocked(kind domain.TransitionKind, mode domain.Mode, subject string) {
	from := a.mode
	a.mode = mode

	a.history = append(a.history, domain.ModeTransition{
		Kind:      kind,
		From:      from,
		To:        mode,
		Subject:   subject,
		Timestamp: time.Now(),
	})
	if len(a.history) > a.maxHistorySize {
		a.history = a.history[1:]
	}

	close(a.changed)
	a.changed = make(chan struct{})

	logger.Debug("Mode transition", "kind", kind.String(), "from", from.String(), "to", mode.String(), "subject", subject)
}
