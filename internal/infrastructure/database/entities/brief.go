package entities

import (
	"time"

	"github.com/shopspring/decimal"

	"creative-hub/services/messaging-api/internal/domain/brief"
)

// Brief represents the database schema for briefs.
type Brief struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	PublicID     string           `gorm:"type:varchar(50);uniqueIndex;not null"`
	SenderID     string           `gorm:"type:varchar(64);index:idx_brief_sender_created,sort:desc;not null"`
	RecipientID  string           `gorm:"type:varchar(64);index:idx_brief_recipient_created,sort:desc;not null"`
	Title        string           `gorm:"type:varchar(256);not null"`
	Description  string           `gorm:"type:text;not null"`
	Budget       *decimal.Decimal `gorm:"type:numeric(12,2)"`
	Deadline     *time.Time
	Status       string `gorm:"type:varchar(20);not null;default:'pending'"`
	ResponseNote *string `gorm:"type:text"`
	RespondedAt  *time.Time
}

// TableName specifies the table name for Brief.
func (Brief) TableName() string {
	return "brief"
}

// EtoD converts database entity to domain model.
func (b *Brief) EtoD() *brief.Brief {
	return &brief.Brief{
		ID:           b.ID,
		PublicID:     b.PublicID,
		SenderID:     b.SenderID,
		RecipientID:  b.RecipientID,
		Title:        b.Title,
		Description:  b.Description,
		Budget:       b.Budget,
		Deadline:     b.Deadline,
		Status:       brief.Status(b.Status),
		ResponseNote: b.ResponseNote,
		RespondedAt:  b.RespondedAt,
		CreatedAt:    b.CreatedAt,
	}
}

// NewBriefSchema converts a domain model into its database entity.
func NewBriefSchema(b *brief.Brief) *Brief {
	return &Brief{
		ID:           b.ID,
		CreatedAt:    b.CreatedAt,
		PublicID:     b.PublicID,
		SenderID:     b.SenderID,
		RecipientID:  b.RecipientID,
		Title:        b.Title,
		Description:  b.Description,
		Budget:       b.Budget,
		Deadline:     b.Deadline,
		Status:       string(b.Status),
		ResponseNote: b.ResponseNote,
		RespondedAt:  b.RespondedAt,
	}
}
