package job

import (
	"context"
	"time"

	"creative-hub/services/messaging-api/internal/domain/profile"
)

// Context is the job-posting summary attached to a conversation that was
// started from a job listing. Job postings are owned by the jobs service;
// this read model resolves a job reference into the banner fields once.
type Context struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Location  *string          `json:"location,omitempty"`
	EventType *string          `json:"event_type,omitempty"`
	StartDate *time.Time       `json:"start_date,omitempty"`
	Organiser *profile.Summary `json:"organiser,omitempty"`
}

// Repository resolves job posting summaries.
type Repository interface {
	FindContext(ctx context.Context, jobID string) (*Context, error)
}
