package services

import (
	"bufio"
	"context"
	"io"
	"sync"

	logger "github.com/inference-gateway/hotcli/internal/logger"
)

// Terminal serializes every write to the real console. The prompt marker is
// written at most once per read cycle.
type Terminal struct {
	out      io.Writer
	marker   string
	prompted bool
	mu       sync.Mutex
}

// NewTerminal creates a terminal writing to out with the given prompt marker
func NewTerminal(out io.Writer, marker string) *Terminal {
	return &Terminal{out: out, marker: marker}
}

// ShowPrompt writes the prompt marker unless it is already showing
func (t *Terminal) ShowPrompt() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.prompted {
		return
	}
	t.write("\r" + t.marker)
	t.prompted = true
}

// Newline closes the current console line
func (t *Terminal) Newline() {
	t.Write("\n")
}

// Write emits text and clears the prompt state
func (t *Terminal) Write(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.write(text)
	t.prompted = false
}

// Println emits text followed by a newline
func (t *Terminal) Println(text string) {
	t.Write(text + "\n")
}

// LineConsumed records that the user answered the prompt with a line
func (t *Terminal) LineConsumed() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.prompted = false
}

func (t *Terminal) write(text string) {
	if _, err := io.WriteString(t.out, text); err != nil {
		logger.Debug("Console write failed", "error", err)
	}
}

// LineSource reads console lines on its own goroutine so that neither the
// console loop nor Bag.Input ever blocks on the raw reader
type LineSource struct {
	in    io.Reader
	lines chan string
	once  sync.Once
}

// NewLineSource creates a line source over in
func NewLineSource(in io.Reader) *LineSource {
	return &LineSource{
		in:    in,
		lines: make(chan string),
	}
}

// Start begins reading; it is safe to call more than once
func (s *LineSource) Start(ctx context.Context) {
	s.once.Do(func() {
		go s.read(ctx)
	})
}

// Lines yields one value per console line; it is closed when input ends
func (s *LineSource) Lines() <-chan string {
	return s.lines
}

func (s *LineSource) read(ctx context.Context) {
	defer close(s.lines)

	scanner := bufio.NewScanner(s.in)
	for scanner.Scan() {
		select {
		case s.lines <- scanner.Text():
		case <-ctx.Done():
			return
		}
	}

	if err := scanner.Err(); err != nil {
		logger.Warn("Console input ended with error", "error", err)
		return
	}
	logger.Debug("Console input closed")
}
