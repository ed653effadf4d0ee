package notification

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	domain "creative-hub/services/messaging-api/internal/domain/notification"
	"creative-hub/services/messaging-api/internal/infrastructure/database/entities"
	"creative-hub/services/messaging-api/internal/utils/platformerrors"
)

// Repository persists notifications and backs the delivery queue.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a notification repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the notification record.
func (r *Repository) Create(ctx context.Context, n *domain.Notification) error {
	entity := entities.NewNotificationSchema(n)

	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to create notification", err, "notif-repo-create")
	}

	n.ID = entity.ID
	n.CreatedAt = entity.CreatedAt
	return nil
}

// FindByPublicID fetches a notification by its public ID.
func (r *Repository) FindByPublicID(ctx context.Context, publicID string) (*domain.Notification, error) {
	var entity entities.Notification
	if err := r.db.WithContext(ctx).
		Where("public_id = ?", publicID).
		First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
				fmt.Sprintf("notification not found: %s", publicID), nil, "notif-repo-find-missing")
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to fetch notification", err, "notif-repo-find")
	}
	return entity.EtoD(), nil
}

// ListForUser returns the user's notifications, newest first.
func (r *Repository) ListForUser(ctx context.Context, userID string, unreadOnly bool, limit int) ([]*domain.Notification, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit)
	if unreadOnly {
		query = query.Where("read = ?", false)
	}

	var rows []entities.Notification
	if err := query.Find(&rows).Error; err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to list notifications", err, "notif-repo-list")
	}

	out := make([]*domain.Notification, len(rows))
	for i := range rows {
		out[i] = rows[i].EtoD()
	}
	return out, nil
}

// CountUnread returns the user's unread notification count.
func (r *Repository) CountUnread(ctx context.Context, userID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error; err != nil {
		return 0, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to count unread notifications", err, "notif-repo-count")
	}
	return count, nil
}

// MarkRead marks one notification read, scoped to its owner. It reports
// whether a row matched.
func (r *Repository) MarkRead(ctx context.Context, userID, publicID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&entities.Notification{}).
		Where("public_id = ? AND user_id = ?", publicID, userID).
		Update("read", true)
	if res.Error != nil {
		return false, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to mark notification read", res.Error, "notif-repo-mark-read")
	}
	return res.RowsAffected > 0, nil
}

// MarkAllRead marks every unread notification of the user read.
func (r *Repository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&entities.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true)
	if res.Error != nil {
		return 0, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to mark notifications read", res.Error, "notif-repo-mark-all")
	}
	return res.RowsAffected, nil
}

// ClaimPending claims up to limit pending notifications for delivery inside
// one transaction. FOR UPDATE SKIP LOCKED lets concurrent workers claim
// disjoint rows without blocking each other.
func (r *Repository) ClaimPending(ctx context.Context, limit int) ([]*domain.Notification, error) {
	if limit <= 0 {
		limit = 1
	}

	var claimed []*domain.Notification
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []entities.Notification
		if err := tx.
			Raw("SELECT * FROM notification WHERE delivery_status = ? ORDER BY created_at ASC LIMIT ? FOR UPDATE SKIP LOCKED",
				string(domain.DeliveryPending), limit).
			Scan(&rows).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}

		ids := make([]uint, len(rows))
		for i := range rows {
			ids[i] = rows[i].ID
		}
		if err := tx.
			Model(&entities.Notification{}).
			Where("id IN ?", ids).
			Update("delivery_status", string(domain.DeliveryRunning)).Error; err != nil {
			return err
		}

		claimed = make([]*domain.Notification, len(rows))
		for i := range rows {
			n := rows[i].EtoD()
			n.DeliveryStatus = domain.DeliveryRunning
			claimed[i] = n
		}
		return nil
	})
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to claim pending notifications", err, "notif-repo-claim")
	}
	return claimed, nil
}

// ResolveDelivery records the outcome of a delivery attempt.
func (r *Repository) ResolveDelivery(ctx context.Context, id uint, status domain.DeliveryStatus, attempts int) error {
	res := r.db.WithContext(ctx).
		Model(&entities.Notification{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"delivery_status": string(status),
			"attempts":        attempts,
		})
	if res.Error != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to record delivery outcome", res.Error, "notif-repo-resolve")
	}
	return nil
}

// CountByDeliveryStatus counts notifications in one delivery state.
func (r *Repository) CountByDeliveryStatus(ctx context.Context, status domain.DeliveryStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Notification{}).
		Where("delivery_status = ?", string(status)).
		Count(&count).Error; err != nil {
		return 0, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to count delivery backlog", err, "notif-repo-depth")
	}
	return count, nil
}
