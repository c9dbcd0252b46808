package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	domain "github.com/inference-gateway/hotcli/internal/domain"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

func TestContextBag_KeyedStore(t *testing.T) {
	bag := NewContextBag(NewModeArbiter(domain.ModeInteractive, nil), NewOutputQueue(), nil, nil, nil)

	_, ok := bag.Get("count")
	assert.False(t, ok)

	bag.Set("count", 1)
	v, ok := bag.Get("count")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	bag.Delete("count")
	_, ok = bag.Get("count")
	assert.False(t, ok)
}

func TestContextBag_ConcurrentWritesDoNotCorrupt(t *testing.T) {
	bag := NewContextBag(NewModeArbiter(domain.ModeInteractive, nil), NewOutputQueue(), nil, nil, nil)
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				bag.Set(fmt.Sprintf("k%d", i), j)
				bag.Get(fmt.Sprintf("k%d", (i+1)%20))
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < 20; i++ {
		v, ok := bag.Get(fmt.Sprintf("k%d", i))
		require.True(t, ok)
		assert.Equal(t, 49, v)
	}
}

func TestContextBag_PrintQueuesRecords(t *testing.T) {
	q := NewOutputQueue()
	bag := NewContextBag(NewModeArbiter(domain.ModeInteractive, nil), q, nil, nil, nil)

	bag.Print("Hello")
	bag.PrintEnd("What is your name? ", "")

	first, _ := q.Pop()
	second, _ := q.Pop()
	assert.Equal(t, "Hello\n", first.Text())
	assert.Equal(t, "What is your name? ", second.Text())
}

func TestContextBag_Input(t *testing.T) {
	arbiter := NewModeArbiter(domain.ModeInteractive, nil)
	lines := newChanLines()
	bag := NewContextBag(arbiter, NewOutputQueue(), lines, nil, nil)

	type result struct {
		line string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		line, err := bag.Input(context.Background())
		done <- result{line, err}
	}()

	require.Eventually(t, func() bool {
		return arbiter.Mode() == domain.ModeNonInteractive
	}, 2*time.Second, time.Millisecond, "input forces NonInteractive while waiting")

	lines.ch <- "Bob"

	select {
	case r := <-done:
		require.NoError(t, r.err)
		assert.Equal(t, "Bob", r.line)
	case <-time.After(2 * time.Second):
		t.Fatal("input never returned")
	}

	assert.Equal(t, domain.ModeInteractive, arbiter.Mode())
	history := arbiter.History()
	require.Len(t, history, 2)
	assert.Equal(t, domain.TransitionInputRequest, history[0].Kind)
	assert.Equal(t, domain.TransitionInputDone, history[1].Kind)
}

func TestContextBag_InputInsideCommandKeepsOutputFlowing(t *testing.T) {
	arbiter := NewModeArbiter(domain.ModeNonInteractive, nil)
	lines := newChanLines()
	bag := NewContextBag(arbiter, NewOutputQueue(), lines, nil, nil)

	go func() { lines.ch <- "y" }()

	line, err := bag.Input(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "y", line)
	assert.Equal(t, domain.ModeNonInteractive, arbiter.Mode())
}

func TestContextBag_InputErrors(t *testing.T) {
	t.Run("closed input", func(t *testing.T) {
		lines := newChanLines()
		close(lines.ch)
		arbiter := NewModeArbiter(domain.ModeInteractive, nil)
		bag := NewContextBag(arbiter, NewOutputQueue(), lines, nil, nil)

		_, err := bag.Input(context.Background())
		assert.ErrorIs(t, err, domain.ErrInputClosed)
		assert.Equal(t, domain.ModeInteractive, arbiter.Mode())
	})

	t.Run("no line reader", func(t *testing.T) {
		bag := NewContextBag(NewModeArbiter(domain.ModeInteractive, nil), NewOutputQueue(), nil, nil, nil)
		_, err := bag.Input(context.Background())
		assert.ErrorIs(t, err, domain.ErrInputClosed)
	})

	t.Run("cancelled", func(t *testing.T) {
		arbiter := NewModeArbiter(domain.ModeInteractive, nil)
		bag := NewContextBag(arbiter, NewOutputQueue(), newChanLines(), nil, nil)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		_, err := bag.Input(ctx)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Equal(t, domain.ModeInteractive, arbiter.Mode())
	})
}

func TestContextBag_ForceAndQuit(t *testing.T) {
	arbiter := NewModeArbiter(domain.ModeNonInteractive, nil)
	quit := false
	bag := NewContextBag(arbiter, NewOutputQueue(), nil, nil, func() { quit = true })

	bag.ForceInteractive()
	assert.Equal(t, domain.ModeInteractive, bag.Mode())
	bag.ForceNonInteractive()
	assert.Equal(t, domain.ModeNonInteractive, bag.Mode())

	bag.Quit()
	assert.True(t, quit)
}

func TestContextBag_WaitForRelease(t *testing.T) {
	keys := &fakeKeys{}
	keys.set("f1", true)
	bag := NewContextBag(NewModeArbiter(domain.ModeNonInteractive, nil), NewOutputQueue(), nil, keys, nil)

	done := make(chan error, 1)
	go func() { done <- bag.WaitForRelease(context.Background(), "f1") }()

	time.Sleep(20 * time.Millisecond)
	select {
	case <-done:
		t.Fatal("returned while the key was held")
	default:
	}

	keys.set("f1", false)
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("never observed the release")
	}
}
