package services

import (
	"context"
	"sync"
	"time"
)

// RecordWriter is where flushed records end up
type RecordWriter interface {
	Write(text string)
}

// OutputFlusher drains the output queue to the console, only while the
// console is NonInteractive
type OutputFlusher struct {
	queue   *OutputQueue
	arbiter *ModeArbiter
	out     RecordWriter
	tick    time.Duration
	mu      sync.Mutex
}

// NewOutputFlusher creates a flusher polling at tick
func NewOutputFlusher(queue *OutputQueue, arbiter *ModeArbiter, out RecordWriter, tick time.Duration) *OutputFlusher {
	return &OutputFlusher{
		queue:   queue,
		arbiter: arbiter,
		out:     out,
		tick:    tick,
	}
}

// Drain emits pending records oldest first until the queue is empty or the
// console turns Interactive. It returns the number of records written.
func (f *OutputFlusher) Drain() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	written := 0
	for !f.arbiter.IsInteractive() {
		record, ok := f.queue.Pop()
		if !ok {
			break
		}
		f.out.Write(record.Text())
		written++
	}
	return written
}

// Run drains on every tick, on every push and on every mode change until ctx is done
func (f *OutputFlusher) Run(ctx context.Context) {
	ticker := time.NewTicker(f.tick)
	defer ticker.Stop()

	for {
		changed := f.arbiter.Changed()
		f.Drain()

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case <-f.queue.Ready():
		case <-changed:
		}
	}
}
