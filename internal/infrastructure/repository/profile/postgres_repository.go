package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	domain "creative-hub/services/messaging-api/internal/domain/profile"
	"creative-hub/services/messaging-api/internal/infrastructure/database/entities"
	"creative-hub/services/messaging-api/internal/utils/platformerrors"
)

// Repository reads the local profile mirror.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a profile repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID fetches one profile summary.
func (r *Repository) FindByID(ctx context.Context, id string) (*domain.Summary, error) {
	var entity entities.Profile
	if err := r.db.WithContext(ctx).First(&entity, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
				fmt.Sprintf("profile not found: %s", id), nil, "profile-repo-find-missing")
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to fetch profile", err, "profile-repo-find")
	}
	return entity.EtoD(), nil
}

// FindByIDs fetches profile summaries in bulk, keyed by user id. Missing ids
// are simply absent from the map; callers render a fallback.
func (r *Repository) FindByIDs(ctx context.Context, ids []string) (map[string]*domain.Summary, error) {
	if len(ids) == 0 {
		return map[string]*domain.Summary{}, nil
	}

	var rows []entities.Profile
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to fetch profiles", err, "profile-repo-find-bulk")
	}

	out := make(map[string]*domain.Summary, len(rows))
	for i := range rows {
		out[rows[i].ID] = rows[i].EtoD()
	}
	return out, nil
}

// Search matches display name or email against the query, excluding the
// searching user.
func (r *Repository) Search(ctx context.Context, selfID, query string, limit int) ([]*domain.Summary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*domain.Summary{}, nil
	}
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	pattern := "%" + escapeLike(query) + "%"
	var rows []entities.Profile
	if err := r.db.WithContext(ctx).
		Where("id <> ? AND (display_name ILIKE ? OR email ILIKE ?)", selfID, pattern, pattern).
		Order("display_name ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to search profiles", err, "profile-repo-search")
	}

	out := make([]*domain.Summary, len(rows))
	for i := range rows {
		out[i] = rows[i].EtoD()
	}
	return out, nil
}

// escapeLike neutralizes LIKE wildcards in user input.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	return strings.ReplaceAll(s, `_`, `\_`)
}
