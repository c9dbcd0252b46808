package domain

import "time"

// Mode represents who owns the console at a given instant
type Mode int

const (
	// ModeNonInteractive lets background tasks stream output; nothing reads stdin
	ModeNonInteractive Mode = iota
	// ModeInteractive means the prompt owns the console and reads typed commands
	ModeInteractive
)

func (m Mode) String() string {
	switch m {
	case ModeInteractive:
		return "Interactive"
	case ModeNonInteractive:
		return "NonInteractive"
	default:
		return "Unknown"
	}
}

// Toggled returns the opposite mode
func (m Mode) Toggled() Mode {
	if m == ModeInteractive {
		return ModeNonInteractive
	}
	return ModeInteractive
}

// TransitionKind names the rule that caused a mode change
type TransitionKind int

const (
	TransitionToggleHotkey TransitionKind = iota
	TransitionDispatchStart
	TransitionDispatchEnd
	TransitionInputRequest
	TransitionInputDone
	TransitionExplicitForce
)

func (t TransitionKind) String() string {
	switch t {
	case TransitionToggleHotkey:
		return "ToggleHotkey"
	case TransitionDispatchStart:
		return "DispatchStart"
	case TransitionDispatchEnd:
		return "DispatchEnd"
	case TransitionInputRequest:
		return "InputRequest"
	case TransitionInputDone:
		return "InputDone"
	case TransitionExplicitForce:
		return "ExplicitForce"
	default:
		return "Unknown"
	}
}

// ModeTransition is one entry in the arbiter's transition history
type ModeTransition struct {
	Kind      TransitionKind
	From      Mode
	To        Mode
	Subject   string
	Timestamp time.Time
}
