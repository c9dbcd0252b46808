package services

import (
	"context"
	"fmt"
	"sync"

	domain "github.com/inference-gateway/hotcli/internal/domain"
)

// ContextBag is the single Bag shared by every handler for the process
// lifetime. Individual key operations are atomic; anything beyond that is up
// to the handlers.
type ContextBag struct {
	values  sync.Map
	arbiter *ModeArbiter
	output  *OutputQueue
	lines   domain.LineReader
	keys    domain.KeyState
	quit    func()
}

var _ domain.Bag = (*ContextBag)(nil)

// NewContextBag creates the shared bag
func NewContextBag(arbiter *ModeArbiter, output *OutputQueue, lines domain.LineReader, keys domain.KeyState, quit func()) *ContextBag {
	return &ContextBag{
		arbiter: arbiter,
		output:  output,
		lines:   lines,
		keys:    keys,
		quit:    quit,
	}
}

// Get returns the value stored under key
func (b *ContextBag) Get(key any) (any, bool) {
	return b.values.Load(key)
}

// Set stores value under key
func (b *ContextBag) Set(key, value any) {
	b.values.Store(key, value)
}

// Delete removes key
func (b *ContextBag) Delete(key any) {
	b.values.Delete(key)
}

// Print queues value followed by a newline
func (b *ContextBag) Print(value any) {
	b.output.Push(domain.OutputRecord{Value: value})
}

// PrintEnd queues value followed by end
func (b *ContextBag) PrintEnd(value any, end string) {
	b.output.Push(domain.NewOutputRecord(value, end))
}

// Input forces NonInteractive so queued output is flushed and the console
// loop stays off stdin, reads one line, then restores the mode it replaced.
// No prompt is shown for the read: Print the question before calling Input.
func (b *ContextBag) Input(ctx context.Context) (string, error) {
	if err := b.arbiter.Acquire(ctx); err != nil {
		return "", err
	}
	previous := b.arbiter.BeginInput("bag.input")
	b.arbiter.Release()

	line, err := b.readLine(ctx)

	if acqErr := b.arbiter.Acquire(context.WithoutCancel(ctx)); acqErr == nil {
		b.arbiter.EndInput("bag.input", previous)
		b.arbiter.Release()
	}

	return line, err
}

func (b *ContextBag) readLine(ctx context.Context) (string, error) {
	if b.lines == nil {
		return "", domain.ErrInputClosed
	}

	select {
	case line, ok := <-b.lines.Lines():
		if !ok {
			return "", domain.ErrInputClosed
		}
		return line, nil
	case <-ctx.Done():
		return "", fmt.Errorf("input cancelled: %w", ctx.Err())
	}
}

// ForceInteractive hands the console to the prompt
func (b *ContextBag) ForceInteractive() {
	b.arbiter.Force(domain.ModeInteractive, "bag")
}

// ForceNonInteractive hands the console to background output
func (b *ContextBag) ForceNonInteractive() {
	b.arbiter.Force(domain.ModeNonInteractive, "bag")
}

// Mode returns the current console mode
func (b *ContextBag) Mode() domain.Mode {
	return b.arbiter.Mode()
}

// WaitForRelease blocks until token is no longer held
func (b *ContextBag) WaitForRelease(ctx context.Context, token string) error {
	if b.keys == nil {
		return nil
	}
	return b.keys.WaitForRelease(ctx, token)
}

// Quit terminates the process
func (b *ContextBag) Quit() {
	if b.quit != nil {
		b.quit()
	}
}
