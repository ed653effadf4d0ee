package worker

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"creative-hub/services/messaging-api/internal/domain/notification"
	"creative-hub/services/messaging-api/internal/infrastructure/metrics"
	"creative-hub/services/messaging-api/internal/webhook"
)

// Worker drains the notification delivery backlog.
type Worker struct {
	id          int
	repo        notification.Repository
	delivery    webhook.Service
	taskTimeout time.Duration
	pollEvery   time.Duration
	log         zerolog.Logger
	stopChan    chan struct{}
}

// NewWorker creates a delivery worker.
func NewWorker(
	id int,
	repo notification.Repository,
	delivery webhook.Service,
	taskTimeout, pollEvery time.Duration,
	log zerolog.Logger,
) *Worker {
	return &Worker{
		id:          id,
		repo:        repo,
		delivery:    delivery,
		taskTimeout: taskTimeout,
		pollEvery:   pollEvery,
		log:         log.With().Int("worker_id", id).Str("component", "delivery-worker").Logger(),
		stopChan:    make(chan struct{}),
	}
}

// Start begins polling the backlog until the context is cancelled or Stop
// is called.
func (w *Worker) Start(ctx context.Context) {
	w.log.Info().Msg("worker started")

	ticker := time.NewTicker(w.pollEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("worker stopped by context")
			return
		case <-w.stopChan:
			w.log.Info().Msg("worker stopped")
			return
		case <-ticker.C:
			w.processNext(ctx)
		}
	}
}

// Stop gracefully stops the worker.
func (w *Worker) Stop() {
	close(w.stopChan)
}

func (w *Worker) processNext(ctx context.Context) {
	claimed, err := w.repo.ClaimPending(ctx, 1)
	if err != nil {
		w.log.Error().Err(err).Msg("failed to claim pending notification")
		return
	}
	if len(claimed) == 0 {
		return
	}

	n := claimed[0]
	w.log.Info().Str("notification_id", n.PublicID).Str("user_id", n.UserID).
		Str("type", string(n.Type)).Msg("delivering notification")

	taskCtx, cancel := context.WithTimeout(ctx, w.taskTimeout)
	defer cancel()

	outcome := w.deliver(taskCtx, n)
	metrics.RecordNotificationDelivery(string(outcome))

	if err := w.repo.ResolveDelivery(ctx, n.ID, outcome, n.Attempts+1); err != nil {
		w.log.Error().Err(err).Str("notification_id", n.PublicID).
			Msg("failed to record delivery outcome")
	}
}

func (w *Worker) deliver(ctx context.Context, n *notification.Notification) notification.DeliveryStatus {
	if !w.delivery.Enabled() {
		return notification.DeliverySkipped
	}

	err := w.delivery.Deliver(ctx, &webhook.Event{
		ID:        n.PublicID,
		UserID:    n.UserID,
		Type:      string(n.Type),
		Title:     n.Title,
		Message:   n.Message,
		Data:      n.Data,
		Link:      n.Link,
		CreatedAt: n.CreatedAt,
	})
	if err == nil {
		return notification.DeliveryDelivered
	}

	var permanent *webhook.PermanentError
	if errors.As(err, &permanent) {
		w.log.Warn().Int("status", permanent.StatusCode).Str("notification_id", n.PublicID).
			Msg("gateway rejected notification")
	} else {
		w.log.Error().Err(err).Str("notification_id", n.PublicID).Msg("notification delivery failed")
	}
	return notification.DeliveryFailed
}
