package message

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	domain "creative-hub/services/messaging-api/internal/domain/message"
	"creative-hub/services/messaging-api/internal/infrastructure/database/entities"
	"creative-hub/services/messaging-api/internal/utils/platformerrors"
)

// Repository persists messages.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a message repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the message record.
func (r *Repository) Create(ctx context.Context, msg *domain.Message) error {
	entity := entities.NewMessageSchema(msg)

	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to create message", err, "msg-repo-create")
	}

	msg.ID = entity.ID
	msg.CreatedAt = entity.CreatedAt
	return nil
}

// FindByPublicID fetches a message by its public ID.
func (r *Repository) FindByPublicID(ctx context.Context, publicID string) (*domain.Message, error) {
	var entity entities.Message
	if err := r.db.WithContext(ctx).
		Where("public_id = ?", publicID).
		First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
				fmt.Sprintf("message not found: %s", publicID), nil, "msg-repo-find-missing")
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to fetch message", err, "msg-repo-find")
	}
	return entity.EtoD(), nil
}

// ListBetween returns the full thread between two users, oldest first.
func (r *Repository) ListBetween(ctx context.Context, userID, otherID string) ([]*domain.Message, error) {
	var rows []entities.Message
	if err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			userID, otherID, otherID, userID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to list thread", err, "msg-repo-list-between")
	}
	return toDomain(rows), nil
}

// ListForUser returns every message the user sent or received, newest first.
func (r *Repository) ListForUser(ctx context.Context, userID string) ([]*domain.Message, error) {
	var rows []entities.Message
	if err := r.db.WithContext(ctx).
		Where("sender_id = ? OR recipient_id = ?", userID, userID).
		Order("created_at DESC, id DESC").
		Find(&rows).Error; err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to list messages", err, "msg-repo-list-user")
	}
	return toDomain(rows), nil
}

// MarkThreadRead flips every unread message from otherID to userID and
// reports how many rows changed. Targeting only recipient=userID rows makes
// the write idempotent.
func (r *Repository) MarkThreadRead(ctx context.Context, userID, otherID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&entities.Message{}).
		Where("recipient_id = ? AND sender_id = ? AND read = ?", userID, otherID, false).
		Update("read", true)
	if res.Error != nil {
		return 0, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to mark thread read", res.Error, "msg-repo-thread-read")
	}
	return res.RowsAffected, nil
}

// MarkRead flips the read flag on a single message.
func (r *Repository) MarkRead(ctx context.Context, publicID string) error {
	res := r.db.WithContext(ctx).
		Model(&entities.Message{}).
		Where("public_id = ?", publicID).
		Update("read", true)
	if res.Error != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to mark message read", res.Error, "msg-repo-mark-read")
	}
	if res.RowsAffected == 0 {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
			fmt.Sprintf("message not found: %s", publicID), nil, "msg-repo-mark-read-missing")
	}
	return nil
}

// Delete removes a message permanently.
func (r *Repository) Delete(ctx context.Context, publicID string) error {
	res := r.db.WithContext(ctx).
		Where("public_id = ?", publicID).
		Delete(&entities.Message{})
	if res.Error != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to delete message", res.Error, "msg-repo-delete")
	}
	if res.RowsAffected == 0 {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
			fmt.Sprintf("message not found: %s", publicID), nil, "msg-repo-delete-missing")
	}
	return nil
}

// FirstJobRef returns the job reference of the earliest job-tagged message
// in the thread, or nil when the thread never referenced a job.
func (r *Repository) FirstJobRef(ctx context.Context, userID, otherID string) (*domain.JobContextRef, error) {
	var entity entities.Message
	err := r.db.WithContext(ctx).
		Where("((sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)) AND job_id IS NOT NULL",
			userID, otherID, otherID, userID).
		Order("created_at ASC, id ASC").
		First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to resolve job reference", err, "msg-repo-job-ref")
	}
	return entity.EtoD().JobContext, nil
}

func toDomain(rows []entities.Message) []*domain.Message {
	msgs := make([]*domain.Message, len(rows))
	for i := range rows {
		msgs[i] = rows[i].EtoD()
	}
	return msgs
}
