package worker

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"creative-hub/services/messaging-api/internal/domain/notification"
	"creative-hub/services/messaging-api/internal/infrastructure/metrics"
	"creative-hub/services/messaging-api/internal/webhook"
)

// Pool manages the notification delivery workers.
type Pool struct {
	workers  []*Worker
	repo     notification.Repository
	delivery webhook.Service
	cfg      Config
	log      zerolog.Logger
	wg       sync.WaitGroup
	stopChan chan struct{}
}

// Config contains worker pool configuration.
type Config struct {
	WorkerCount  int
	TaskTimeout  time.Duration
	PollInterval time.Duration
}

// NewPool creates a delivery worker pool.
func NewPool(repo notification.Repository, delivery webhook.Service, cfg Config, log zerolog.Logger) *Pool {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 1
	}
	if cfg.TaskTimeout <= 0 {
		cfg.TaskTimeout = 30 * time.Second
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 2 * time.Second
	}
	return &Pool{
		repo:     repo,
		delivery: delivery,
		cfg:      cfg,
		log:      log.With().Str("component", "worker-pool").Logger(),
		stopChan: make(chan struct{}),
	}
}

// Start launches the workers plus a backlog gauge updater.
func (p *Pool) Start(ctx context.Context) error {
	p.log.Info().Int("worker_count", p.cfg.WorkerCount).Msg("starting worker pool")

	p.workers = make([]*Worker, p.cfg.WorkerCount)
	for i := 0; i < p.cfg.WorkerCount; i++ {
		worker := NewWorker(i+1, p.repo, p.delivery, p.cfg.TaskTimeout, p.cfg.PollInterval, p.log)
		p.workers[i] = worker

		p.wg.Add(1)
		go func(w *Worker) {
			defer p.wg.Done()
			w.Start(ctx)
		}(worker)
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.reportQueueDepth(ctx)
	}()

	p.log.Info().Msg("worker pool started")
	return nil
}

// Run starts the pool and blocks until ctx is cancelled, then drains the
// workers.
func (p *Pool) Run(ctx context.Context) error {
	if err := p.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	p.Stop()
	return nil
}

// Stop gracefully shuts down all workers.
func (p *Pool) Stop() {
	p.log.Info().Msg("stopping worker pool")

	close(p.stopChan)
	for _, worker := range p.workers {
		worker.Stop()
	}

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.log.Info().Msg("all workers stopped gracefully")
	case <-time.After(30 * time.Second):
		p.log.Warn().Msg("worker pool shutdown timed out")
	}
}

// QueueDepth returns the pending delivery backlog.
func (p *Pool) QueueDepth(ctx context.Context) (int64, error) {
	return p.repo.CountByDeliveryStatus(ctx, notification.DeliveryPending)
}

func (p *Pool) reportQueueDepth(ctx context.Context) {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.stopChan:
			return
		case <-ticker.C:
			depth, err := p.QueueDepth(ctx)
			if err != nil {
				p.log.Warn().Err(err).Msg("failed to read delivery backlog")
				continue
			}
			metrics.SetNotificationQueueDepth(depth)
		}
	}
}
