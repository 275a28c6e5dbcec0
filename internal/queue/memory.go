package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryQueue is an in-process Queue for tests and local development.
// It mirrors the Redis implementation's states (ready, leased, delayed,
// dead) without durability.
type MemoryQueue struct {
	mu      sync.Mutex
	ready   []string
	leased  map[string]time.Time
	delayed map[string]time.Time
	jobs    map[string]*Job
	dead    []DeadJob
}

func NewMemoryQueue() *MemoryQueue {
	return &MemoryQueue{
		leased:  make(map[string]time.Time),
		delayed: make(map[string]time.Time),
		jobs:    make(map[string]*Job),
	}
}

func (q *MemoryQueue) Enqueue(_ context.Context, jobType JobType, payload any) (*Job, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	job := &Job{
		ID:         uuid.NewString(),
		Type:       jobType,
		Payload:    body,
		EnqueuedAt: time.Now().UTC(),
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs[job.ID] = job
	q.ready = append(q.ready, job.ID)
	return job, nil
}

func (q *MemoryQueue) Claim(_ context.Context, leaseFor time.Duration) (*Job, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.ready) > 0 {
		id := q.ready[0]
		q.ready = q.ready[1:]
		job, ok := q.jobs[id]
		if !ok {
			continue
		}
		q.leased[id] = time.Now().Add(leaseFor)
		copied := *job
		return &copied, nil
	}
	return nil, nil
}

func (q *MemoryQueue) Ack(_ context.Context, job *Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.jobs, job.ID)
	delete(q.leased, job.ID)
	return nil
}

func (q *MemoryQueue) Retry(_ context.Context, job *Job, delay time.Duration) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	job.AttemptCount++
	copied := *job
	q.jobs[job.ID] = &copied
	delete(q.leased, job.ID)
	q.delayed[job.ID] = time.Now().Add(delay)
	return nil
}

func (q *MemoryQueue) Bury(_ context.Context, job *Job, cause string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.dead = append(q.dead, DeadJob{Job: *job, Cause: cause, FailedAt: time.Now().UTC()})
	delete(q.leased, job.ID)
	delete(q.delayed, job.ID)
	delete(q.jobs, job.ID)
	return nil
}

func (q *MemoryQueue) ReclaimExpired(_ context.Context) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := time.Now()
	moved := 0
	for id, deadline := range q.leased {
		if deadline.Before(now) {
			delete(q.leased, id)
			q.ready = append(q.ready, id)
			moved++
		}
	}
	for id, readyAt := range q.delayed {
		if !readyAt.After(now) {
			delete(q.delayed, id)
			q.ready = append(q.ready, id)
			moved++
		}
	}
	return moved, nil
}

// DeadLetters returns a copy of the dead-letter entries.
func (q *MemoryQueue) DeadLetters() []DeadJob {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]DeadJob, len(q.dead))
	copy(out, q.dead)
	return out
}

// Depth reports how many jobs are waiting or leased, for test assertions.
func (q *MemoryQueue) Depth() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.jobs)
}

// ExpireLease force-expires a lease so tests can exercise reclamation
// without waiting.
func (q *MemoryQueue) ExpireLease(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if _, ok := q.leased[id]; ok {
		q.leased[id] = time.Now().Add(-time.Second)
	}
}

var _ Queue = (*MemoryQueue)(nil)
var _ Queue = (*RedisQueue)(nil)
