package services

import (
	"sync"

	domain "github.com/inference-gateway/hotcli/internal/domain"
)

// OutputQueue is the ordered buffer of pending prints. Push never blocks.
type OutputQueue struct {
	mu      sync.Mutex
	records []domain.OutputRecord
	ready   chan struct{}
}

// NewOutputQueue creates an empty output queue
func NewOutputQueue() *OutputQueue {
	return &OutputQueue{
		records: make([]domain.OutputRecord, 0),
		ready:   make(chan struct{}, 1),
	}
}

// Push appends a record and signals Ready
func (q *OutputQueue) Push(record domain.OutputRecord) {
	q.mu.Lock()
	q.records = append(q.records, record)
	q.mu.Unlock()

	select {
	case q.ready <- struct{}{}:
	default:
	}
}

// Pop removes and returns the oldest record
func (q *OutputQueue) Pop() (domain.OutputRecord, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.records) == 0 {
		return domain.OutputRecord{}, false
	}

	record := q.records[0]
	q.records[0] = domain.OutputRecord{}
	q.records = q.records[1:]
	return record, true
}

// Len returns the number of pending records
func (q *OutputQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.records)
}

// IsEmpty returns true if nothing is pending
func (q *OutputQueue) IsEmpty() bool {
	return q.Len() == 0
}

// Ready receives a value after at least one Push since the last receive
func (q *OutputQueue) Ready() <-chan struct{} {
	return q.ready
}
