package services

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	domain "github.com/inference-gateway/hotcli/internal/domain"
)

// safeBuffer is a bytes.Buffer usable from the flusher goroutine and the test
type safeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// recordingWriter collects flushed records in order
type recordingWriter struct {
	mu    sync.Mutex
	texts []string
}

func (w *recordingWriter) Write(text string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.texts = append(w.texts, text)
}

func (w *recordingWriter) Texts() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, len(w.texts))
	copy(out, w.texts)
	return out
}

// recordingPrompt counts prompt writes driven by the arbiter
type recordingPrompt struct {
	mu       sync.Mutex
	prompts  int
	newlines int
}

func (p *recordingPrompt) ShowPrompt() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.prompts++
}

func (p *recordingPrompt) Newline() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.newlines++
}

func (p *recordingPrompt) counts() (int, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.prompts, p.newlines
}

// chanLines is a LineReader fed by the test
type chanLines struct {
	ch chan string
}

func newChanLines() *chanLines {
	return &chanLines{ch: make(chan string)}
}

func (c *chanLines) Lines() <-chan string {
	return c.ch
}

// fakeKeys reports a fixed set of held tokens
type fakeKeys struct {
	mu   sync.Mutex
	held map[string]bool
}

func (k *fakeKeys) set(token string, held bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.held == nil {
		k.held = make(map[string]bool)
	}
	k.held[token] = held
}

func (k *fakeKeys) IsHeld(combo string) (bool, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.held[combo], nil
}

func (k *fakeKeys) WaitForRelease(ctx context.Context, token string) error {
	for {
		if held, _ := k.IsHeld(token); !held {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func waitClosed(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for channel")
	}
}

func noop() domain.Handler {
	return domain.Handler{Fn: func(domain.Args) error { return nil }}
}
