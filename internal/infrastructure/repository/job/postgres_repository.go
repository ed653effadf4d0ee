package job

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	domain "creative-hub/services/messaging-api/internal/domain/job"
	"creative-hub/services/messaging-api/internal/infrastructure/database/entities"
	"creative-hub/services/messaging-api/internal/utils/platformerrors"
)

// Repository reads the local job posting mirror.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a job repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindContext resolves a job posting into its conversation banner fields.
func (r *Repository) FindContext(ctx context.Context, jobID string) (*domain.Context, error) {
	var entity entities.JobPosting
	if err := r.db.WithContext(ctx).
		Preload("Organiser").
		First(&entity, "id = ?", jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
				fmt.Sprintf("job posting not found: %s", jobID), nil, "job-repo-find-missing")
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to fetch job posting", err, "job-repo-find")
	}
	return entity.EtoD(), nil
}
