package domain

import "errors"

// Setup-time registration failures. They never occur once Run has started.
var (
	ErrDuplicateCommand = errors.New("command already registered")
	ErrInvalidName      = errors.New("invalid command name")
	ErrReservedName     = errors.New("reserved command name")
	ErrMalformedCombo   = errors.New("malformed key combo")
	ErrDuplicateCombo   = errors.New("key combo already bound")
	ErrReservedCombo    = errors.New("key combo is reserved")
	ErrRegistryClosed   = errors.New("registry is closed")
	ErrNilHandler       = errors.New("handler is nil")
)

// Runtime errors
var (
	// ErrInputClosed is returned by Bag.Input when the console input stream ended
	ErrInputClosed = errors.New("console input closed")
	// ErrUnknownCommand is returned when a configured line names no command
	ErrUnknownCommand = errors.New("unknown command")
	// ErrAlreadyRunning is returned by a second call to Run
	ErrAlreadyRunning = errors.New("console already running")
)

// FailurePolicy decides what happens when a dispatched handler fails or panics
type FailurePolicy string

const (
	// FailureReport recovers the failure, logs it and prints it to the console
	FailureReport FailurePolicy = "report"
	// FailureCrash logs the failure and terminates the process
	FailureCrash FailurePolicy = "crash"
)

// IsValid reports whether the policy is one of the known values
func (p FailurePolicy) IsValid() bool {
	return p == FailureReport || p == FailureCrash
}

// HandlerError wraps a failure raised inside a dispatched task
type HandlerError struct {
	Target string
	TaskID string
	Err    error
}

func (e *HandlerError) Error() string {
	return e.Target + ": " + e.Err.Error()
}

func (e *HandlerError) Unwrap() error {
	return e.Err
}
