package brief

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	domain "creative-hub/services/messaging-api/internal/domain/brief"
	"creative-hub/services/messaging-api/internal/infrastructure/database/entities"
	"creative-hub/services/messaging-api/internal/utils/platformerrors"
)

// Repository persists briefs.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a brief repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the brief record.
func (r *Repository) Create(ctx context.Context, b *domain.Brief) error {
	entity := entities.NewBriefSchema(b)

	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to create brief", err, "brief-repo-create")
	}

	b.ID = entity.ID
	b.CreatedAt = entity.CreatedAt
	return nil
}

// FindByPublicID fetches a brief by its public ID.
func (r *Repository) FindByPublicID(ctx context.Context, publicID string) (*domain.Brief, error) {
	var entity entities.Brief
	if err := r.db.WithContext(ctx).
		Where("public_id = ?", publicID).
		First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
				fmt.Sprintf("brief not found: %s", publicID), nil, "brief-repo-find-missing")
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to fetch brief", err, "brief-repo-find")
	}
	return entity.EtoD(), nil
}

// ListBetween returns all briefs exchanged between two users, newest first.
func (r *Repository) ListBetween(ctx context.Context, userID, otherID string) ([]*domain.Brief, error) {
	var rows []entities.Brief
	if err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			userID, otherID, otherID, userID).
		Order("created_at DESC, id DESC").
		Find(&rows).Error; err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to list briefs", err, "brief-repo-list")
	}

	briefs := make([]*domain.Brief, len(rows))
	for i := range rows {
		briefs[i] = rows[i].EtoD()
	}
	return briefs, nil
}

// Transition applies a guarded status update in a single conditional write.
// The WHERE clause carries the actor check and the pending guard together,
// so two racing responders can never both win: exactly one write matches,
// the other sees zero rows.
func (r *Repository) Transition(ctx context.Context, publicID string, update domain.TransitionUpdate) (bool, error) {
	if update.ActorColumn != domain.ActorColumnSender && update.ActorColumn != domain.ActorColumnRecipient {
		return false, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeInternal,
			fmt.Sprintf("invalid actor column: %s", update.ActorColumn), nil, "brief-repo-actor-column")
	}

	values := map[string]any{"status": string(update.ToStatus)}
	if update.ResponseNote != nil {
		values["response_note"] = *update.ResponseNote
	}
	if update.SetResponded {
		values["responded_at"] = time.Now().UTC()
	}

	res := r.db.WithContext(ctx).
		Model(&entities.Brief{}).
		Where("public_id = ? AND "+update.ActorColumn+" = ? AND status = ?",
			publicID, update.ActorID, string(domain.StatusPending)).
		Updates(values)
	if res.Error != nil {
		return false, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to update brief status", res.Error, "brief-repo-transition")
	}
	return res.RowsAffected > 0, nil
}
