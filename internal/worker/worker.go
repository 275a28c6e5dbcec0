package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/gym-service/internal/config"
	"github.com/spec-kit/gym-service/internal/queue"
	"github.com/spec-kit/gym-service/pkg/retry"
)

// Pool claims jobs from the queue and runs them through registered
// handlers. Failed jobs are retried with exponential backoff until the
// attempt ceiling, then buried in the dead-letter list. A reclaimer loop
// returns expired leases and due retries to the ready state, so a worker
// crash mid-job ends in redelivery rather than loss.
type Pool struct {
	queue    queue.Queue
	logger   *zap.Logger
	cfg      config.QueueConfig
	handlers map[queue.JobType]Handler

	wg sync.WaitGroup
}

func NewPool(q queue.Queue, logger *zap.Logger, cfg config.QueueConfig) *Pool {
	return &Pool{
		queue:    q,
		logger:   logger,
		cfg:      cfg,
		handlers: make(map[queue.JobType]Handler),
	}
}

// Register binds a handler to a job type. Jobs of unregistered types are
// buried on first claim.
func (p *Pool) Register(jobType queue.JobType, handler Handler) {
	p.handlers[jobType] = handler
}

// Start launches the worker goroutines and the reclaimer. It returns
// immediately; cancel ctx and call Wait to drain.
func (p *Pool) Start(ctx context.Context) {
	workers := p.cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func(id int) {
			defer p.wg.Done()
			p.runWorker(ctx, id)
		}(i)
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.runReclaimer(ctx)
	}()
}

// Wait blocks until all goroutines started by Start have returned.
func (p *Pool) Wait() {
	p.wg.Wait()
}

func (p *Pool) runWorker(ctx context.Context, id int) {
	logger := p.logger.With(zap.Int("worker", id))
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		job, err := p.queue.Claim(ctx, p.cfg.Lease())
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error("claim failed", zap.Error(err))
			p.sleep(ctx, p.cfg.PollInterval())
			continue
		}
		if job == nil {
			p.sleep(ctx, p.cfg.PollInterval())
			continue
		}

		p.process(ctx, logger, job)
	}
}

func (p *Pool) process(ctx context.Context, logger *zap.Logger, job *queue.Job) {
	logger = logger.With(
		zap.String("job_id", job.ID),
		zap.String("job_type", string(job.Type)),
		zap.Int("attempt", job.AttemptCount))

	handler, ok := p.handlers[job.Type]
	if !ok {
		logger.Error("no handler for job type")
		p.finishFailed(ctx, logger, job, fmt.Errorf("unhandled job type %q", job.Type), true)
		return
	}

	err := handler(ctx, job)
	if err == nil {
		if ackErr := p.queue.Ack(ctx, job); ackErr != nil {
			logger.Error("ack failed", zap.Error(ackErr))
		}
		logger.Info("job processed")
		return
	}

	p.finishFailed(ctx, logger, job, err, retry.IsPermanent(err))
}

func (p *Pool) finishFailed(ctx context.Context, logger *zap.Logger, job *queue.Job, err error, permanent bool) {
	exhausted := job.AttemptCount+1 >= p.cfg.MaxAttempts
	if permanent || exhausted {
		logger.Error("burying job",
			zap.Error(err),
			zap.Bool("permanent", permanent),
			zap.Bool("attempts_exhausted", exhausted))
		if buryErr := p.queue.Bury(ctx, job, err.Error()); buryErr != nil {
			logger.Error("bury failed", zap.Error(buryErr))
		}
		return
	}

	delay := retry.Backoff(job.AttemptCount, p.cfg.BackoffInitial(), p.cfg.BackoffMax())
	logger.Warn("retrying job", zap.Error(err), zap.Duration("delay", delay))
	if retryErr := p.queue.Retry(ctx, job, delay); retryErr != nil {
		logger.Error("retry scheduling failed", zap.Error(retryErr))
	}
}

func (p *Pool) runReclaimer(ctx context.Context) {
	ticker := time.NewTicker(p.cfg.PollInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			moved, err := p.queue.ReclaimExpired(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				p.logger.Error("reclaim failed", zap.Error(err))
				continue
			}
			if moved > 0 {
				p.logger.Debug("reclaimed jobs", zap.Int("count", moved))
			}
		}
	}
}

func (p *Pool) sleep(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
