package app

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	config "github.com/inference-gateway/hotcli/config"
	keys "github.com/inference-gateway/hotcli/internal/ui/keys"
	require "github.com/stretchr/testify/require"
)

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

// fakeKeys reports combos held when every one of their tokens is held
type fakeKeys struct {
	mu   sync.Mutex
	held map[string]bool
}

func newFakeKeys() *fakeKeys {
	return &fakeKeys{held: make(map[string]bool)}
}

func (k *fakeKeys) press(tokens ...string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	for _, t := range tokens {
		k.held[t] = true
	}
}

func (k *fakeKeys) release(tokens ...string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	for _, t := range tokens {
		delete(k.held, t)
	}
}

func (k *fakeKeys) IsHeld(combo string) (bool, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	for _, t := range keys.Tokens(combo) {
		if !k.held[t] {
			return false, nil
		}
	}
	return true, nil
}

func (k *fakeKeys) WaitForRelease(ctx context.Context, token string) error {
	for {
		if held, _ := k.IsHeld(token); !held {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Millisecond):
		}
	}
}

type fakeFocus struct {
	mu      sync.Mutex
	focused bool
	err     error
}

func (f *fakeFocus) set(focused bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.focused = focused
}

func (f *fakeFocus) IsForeground() (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.focused, f.err
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Console.HandlerFailure = "report"
	cfg.Console.ShowBanner = false
	cfg.Console.StartInteractive = true
	cfg.Console.KeyTickMs = 5
	cfg.Console.FlushTickMs = 5
	cfg.Console.SyncPollMs = 5
	cfg.Logging.Path = ""
	return cfg
}

// harness runs an Application against a pipe and a buffer
type harness struct {
	app   *Application
	keys  *fakeKeys
	focus *fakeFocus
	in    *io.PipeWriter
	out   *safeBuffer
	exits chan int
	done  chan error
	stop  context.CancelFunc
}

func newHarness(t *testing.T, mutate func(*config.Config)) *harness {
	t.Helper()

	cfg := testConfig()
	if mutate != nil {
		mutate(cfg)
	}

	pr, pw := io.Pipe()
	h := &harness{
		keys:  newFakeKeys(),
		focus: &fakeFocus{focused: true},
		in:    pw,
		out:   &safeBuffer{},
		exits: make(chan int, 4),
	}

	a, err := New(Options{
		Config: cfg,
		Keys:   h.keys,
		Focus:  h.focus,
		In:     pr,
		Out:    h.out,
		Exit:   func(code int) { h.exits <- code },
	})
	require.NoError(t, err)
	h.app = a
	return h
}

func (h *harness) start(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	h.stop = cancel
	h.done = make(chan error, 1)
	go func() { h.done <- h.app.Run(ctx) }()

	t.Cleanup(func() {
		cancel()
		_ = h.in.Close()
		select {
		case <-h.done:
		case <-time.After(5 * time.Second):
			t.Error("application did not stop")
		}
	})

	require.Eventually(t, func() bool {
		return h.app.running.Load()
	}, 2*time.Second, time.Millisecond)
}

func (h *harness) typeLine(t *testing.T, line string) {
	t.Helper()
	_, err := io.WriteString(h.in, line+"\n")
	require.NoError(t, err)
}

func (h *harness) prompts() int {
	return strings.Count(h.out.String(), "\r>")
}
