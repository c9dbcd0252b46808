package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	uuid "github.com/google/uuid"
	domain "github.com/inference-gateway/hotcli/internal/domain"
	logger "github.com/inference-gateway/hotcli/internal/logger"
	zap "go.uber.org/zap"
)

// Origin tells the dispatcher who asked for a task
type Origin int

const (
	// OriginConsole is a command typed at the prompt; it drives mode transitions
	OriginConsole Origin = iota
	// OriginKeybind is a hotkey press; the prompt is left alone
	OriginKeybind
	// OriginStartup is a service launched once by Run
	OriginStartup
)

func (o Origin) String() string {
	switch o {
	case OriginConsole:
		return "console"
	case OriginKeybind:
		return "keybind"
	case OriginStartup:
		return "startup"
	default:
		return "unknown"
	}
}

// Request describes one dispatch
type Request struct {
	Target      string
	Handler     domain.Handler
	Values      []any
	Synchronous bool
	Origin      Origin
}

// Task is a launched handler. Callers get no result; effects happen through
// the Bag or process-visible side effects.
type Task struct {
	ID     string
	Target string
	done   chan struct{}
	err    error
}

// Done is closed when the handler returns
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// IsRunning reports whether the handler has not returned yet
func (t *Task) IsRunning() bool {
	select {
	case <-t.done:
		return false
	default:
		return true
	}
}

// Err returns the handler failure, valid once Done is closed
func (t *Task) Err() error {
	select {
	case <-t.done:
		return t.err
	default:
		return nil
	}
}

// DispatcherOptions configures a Dispatcher
type DispatcherOptions struct {
	Arbiter      *ModeArbiter
	Output       *OutputQueue
	Drain        func() int
	Bag          domain.Bag
	Policy       domain.FailurePolicy
	PollInterval time.Duration
	Exit         func(code int)
}

// Dispatcher launches handlers as independent goroutines, injecting the Bag
// where the handler's parameter roles ask for it
type Dispatcher struct {
	arbiter      *ModeArbiter
	output       *OutputQueue
	drain        func() int
	bag          domain.Bag
	policy       domain.FailurePolicy
	pollInterval time.Duration
	exit         func(code int)
	running      sync.WaitGroup
}

// NewDispatcher creates a dispatcher
func NewDispatcher(opts DispatcherOptions) *Dispatcher {
	return &Dispatcher{
		arbiter:      opts.Arbiter,
		output:       opts.Output,
		drain:        opts.Drain,
		bag:          opts.Bag,
		policy:       opts.Policy,
		pollInterval: opts.PollInterval,
		exit:         opts.Exit,
	}
}

// SetBag sets the Bag injected into handlers
func (d *Dispatcher) SetBag(bag domain.Bag) {
	d.bag = bag
}

// Dispatch launches exactly one task for the request. Console dispatches force
// NonInteractive first; a synchronous one then polls until the task ends,
// drains its output and hands the prompt back before returning.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (*Task, error) {
	if req.Origin != OriginConsole {
		return d.launch(ctx, req), nil
	}

	if err := d.arbiter.Acquire(ctx); err != nil {
		return nil, fmt.Errorf("failed to acquire console for %s: %w", req.Target, err)
	}
	d.arbiter.DispatchStart(req.Target)
	task := d.launch(ctx, req)
	d.arbiter.Release()

	if req.Synchronous {
		if !d.await(ctx, task) {
			return task, ctx.Err()
		}
		if d.drain != nil {
			d.drain()
		}
	}

	if err := d.arbiter.Acquire(ctx); err != nil {
		return task, fmt.Errorf("failed to release console after %s: %w", req.Target, err)
	}
	d.arbiter.DispatchEnd(req.Target)
	d.arbiter.Release()

	return task, nil
}

// Wait blocks until every launched task has returned. Used on shutdown paths
// and in tests; the console loops never wait on it.
func (d *Dispatcher) Wait() {
	d.running.Wait()
}

func (d *Dispatcher) launch(ctx context.Context, req Request) *Task {
	task := &Task{
		ID:     uuid.New().String(),
		Target: req.Target,
		done:   make(chan struct{}),
	}

	args := domain.BuildArgs(req.Handler.Params, d.bag, req.Values)
	taskLog := logger.FromContext(ctx).With(
		zap.String("task_id", task.ID),
		zap.String("target", req.Target),
		zap.String("origin", req.Origin.String()),
	)

	d.running.Add(1)
	go func() {
		defer d.running.Done()
		defer close(task.done)
		defer func() {
			if r := recover(); r != nil {
				task.err = &domain.HandlerError{Target: req.Target, TaskID: task.ID, Err: fmt.Errorf("panic: %v", r)}
				d.fail(taskLog, task)
			}
		}()

		taskLog.Debug("Task started", zap.Int("args", len(args)))
		if err := req.Handler.Fn(args); err != nil {
			task.err = &domain.HandlerError{Target: req.Target, TaskID: task.ID, Err: err}
			d.fail(taskLog, task)
			return
		}
		taskLog.Debug("Task finished")
	}()

	return task
}

// await polls the task at the configured interval. It reports false when ctx
// ended first.
func (d *Dispatcher) await(ctx context.Context, task *Task) bool {
	ticker := time.NewTicker(d.pollInterval)
	defer ticker.Stop()

	for task.IsRunning() {
		select {
		case <-ctx.Done():
			return false
		case <-ticker.C:
		}
	}
	return true
}

func (d *Dispatcher) fail(taskLog *zap.Logger, task *Task) {
	taskLog.Error("Task failed", zap.Error(task.err), zap.String("policy", string(d.policy)))

	if d.policy == domain.FailureCrash {
		logger.Close()
		if d.exit != nil {
			d.exit(1)
		}
		return
	}

	if d.output != nil {
		d.output.Push(domain.NewOutputRecord(fmt.Sprintf("error: %v", task.err), domain.DefaultTerminator))
	}
}
