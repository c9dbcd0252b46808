package domain

import "context"

// Bag is the shared keyed store and console facade injected into handlers
type Bag interface {
	Get(key any) (any, bool)
	Set(key, value any)
	Delete(key any)

	// Print queues value followed by a newline
	Print(value any)
	// PrintEnd queues value followed by end instead of a newline
	PrintEnd(value any, end string)

	// Input suspends the caller until a console line is available. No prompt
	// is written for the read; Print the question first.
	Input(ctx context.Context) (string, error)

	ForceInteractive()
	ForceNonInteractive()
	Mode() Mode

	// WaitForRelease blocks until token is no longer held
	WaitForRelease(ctx context.Context, token string) error

	Quit()
}

// KeyState reports keyboard state from outside the process
type KeyState interface {
	// IsHeld reports whether every token of combo is currently down
	IsHeld(combo string) (bool, error)
	// WaitForRelease blocks until token is no longer down
	WaitForRelease(ctx context.Context, token string) error
}

// FocusChecker reports whether the window captured at startup is in the foreground
type FocusChecker interface {
	IsForeground() (bool, error)
}

// LineReader yields console lines
type LineReader interface {
	Lines() <-chan string
}
