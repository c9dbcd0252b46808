package app

import (
	"context"
	"fmt"
	"sync"

	domain "github.com/inference-gateway/hotcli/internal/domain"
	logger "github.com/inference-gateway/hotcli/internal/logger"
	services "github.com/inference-gateway/hotcli/internal/services"
)

// StartupRunner launches every registered service once when the console starts.
// Services never rejoin; their tasks are returned for diagnostics only.
type StartupRunner struct {
	dispatcher *services.Dispatcher
	services   []domain.Service
	closed     bool
	mu         sync.Mutex
}

// NewStartupRunner creates a runner launching through dispatcher
func NewStartupRunner(dispatcher *services.Dispatcher) *StartupRunner {
	return &StartupRunner{dispatcher: dispatcher}
}

// Add queues a service; unnamed services get a positional name for logs
func (r *StartupRunner) Add(svc domain.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return fmt.Errorf("failed to add service %q: %w", svc.Name, domain.ErrRegistryClosed)
	}
	if svc.Name == "" {
		svc.Name = fmt.Sprintf("service-%d", len(r.services)+1)
	}

	r.services = append(r.services, svc)
	return nil
}

// Close freezes the runner
func (r *StartupRunner) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
}

// Len returns the number of registered services
func (r *StartupRunner) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.services)
}

// Run launches each service in registration order
func (r *StartupRunner) Run(ctx context.Context) []*services.Task {
	r.mu.Lock()
	svcs := make([]domain.Service, len(r.services))
	copy(svcs, r.services)
	r.mu.Unlock()

	tasks := make([]*services.Task, 0, len(svcs))
	for _, svc := range svcs {
		task, err := r.dispatcher.Dispatch(ctx, services.Request{
			Target:  svc.Name,
			Handler: svc.Handler,
			Values:  svc.Args,
			Origin:  services.OriginStartup,
		})
		if err != nil {
			logger.Error("Failed to launch service", "service", svc.Name, "error", err)
			continue
		}
		logger.Debug("Service launched", "service", svc.Name, "task_id", task.ID)
		tasks = append(tasks, task)
	}
	return tasks
}
