package entities

import (
	"time"

	"creative-hub/services/messaging-api/internal/domain/job"
)

// JobPosting is the read model of a job a message thread may reference.
type JobPosting struct {
	ID        string    `gorm:"type:varchar(64);primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	OrganiserID string     `gorm:"type:varchar(64);not null"`
	Title       string     `gorm:"type:varchar(256);not null"`
	Location    *string    `gorm:"type:varchar(256)"`
	EventType   *string    `gorm:"type:varchar(64)"`
	StartDate   *time.Time

	Organiser *Profile `gorm:"foreignKey:OrganiserID"`
}

// TableName specifies the table name for JobPosting.
func (JobPosting) TableName() string {
	return "job_posting"
}

// EtoD converts database entity to domain model.
func (j *JobPosting) EtoD() *job.Context {
	ctx := &job.Context{
		ID:        j.ID,
		Title:     j.Title,
		Location:  j.Location,
		EventType: j.EventType,
		StartDate: j.StartDate,
	}
	if j.Organiser != nil {
		ctx.Organiser = j.Organiser.EtoD()
	}
	return ctx
}
