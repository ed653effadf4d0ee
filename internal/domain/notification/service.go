package notification

import (
	"context"

	"github.com/rs/zerolog"

	"creative-hub/services/messaging-api/internal/utils/idgen"
	"creative-hub/services/messaging-api/internal/utils/platformerrors"
)

// Service exposes notification reads and writes.
type Service interface {
	Notify(ctx context.Context, userID string, typ Type, title, msg string, data map[string]string, link string) (*Notification, error)
	ListForUser(ctx context.Context, actorID string, unreadOnly bool, limit int) ([]*Notification, error)
	CountUnread(ctx context.Context, actorID string) (int64, error)
	MarkRead(ctx context.Context, actorID, publicID string) error
	MarkAllRead(ctx context.Context, actorID string) (int64, error)
}

// DefaultService implements Service.
type DefaultService struct {
	repo Repository
	log  zerolog.Logger
}

// NewService creates a notification service.
func NewService(repo Repository, log zerolog.Logger) *DefaultService {
	return &DefaultService{
		repo: repo,
		log:  log.With().Str("component", "notification-service").Logger(),
	}
}

// Notify stores a notification for userID. Delivery to external channels is
// asynchronous; the row becomes visible to the worker pool as pending.
func (s *DefaultService) Notify(ctx context.Context, userID string, typ Type, title, msg string, data map[string]string, link string) (*Notification, error) {
	if userID == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"notification requires a user id", nil, "notif-no-user")
	}

	publicID, err := idgen.GenerateSecureID("ntf", 24)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
			"failed to generate notification id", err, "notif-idgen")
	}

	n := New(publicID, userID, typ, title, msg, data, link)
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// ListForUser returns the actor's notifications, newest first.
func (s *DefaultService) ListForUser(ctx context.Context, actorID string, unreadOnly bool, limit int) ([]*Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.ListForUser(ctx, actorID, unreadOnly, limit)
}

// CountUnread returns the actor's unread notification count.
func (s *DefaultService) CountUnread(ctx context.Context, actorID string) (int64, error) {
	return s.repo.CountUnread(ctx, actorID)
}

// MarkRead marks one of the actor's notifications read. Marking someone
// else's notification reports not found rather than leaking its existence.
func (s *DefaultService) MarkRead(ctx context.Context, actorID, publicID string) error {
	ok, err := s.repo.MarkRead(ctx, actorID, publicID)
	if err != nil {
		return err
	}
	if !ok {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
			"notification not found", nil, "notif-mark-missing")
	}
	return nil
}

// MarkAllRead marks every unread notification of the actor read.
func (s *DefaultService) MarkAllRead(ctx context.Context, actorID string) (int64, error) {
	return s.repo.MarkAllRead(ctx, actorID)
}
