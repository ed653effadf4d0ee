package entities

import (
	"time"

	"creative-hub/services/messaging-api/internal/domain/message"
)

// Message represents the database schema for messages.
type Message struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	PublicID    string  `gorm:"type:varchar(50);uniqueIndex;not null"`
	SenderID    string  `gorm:"type:varchar(64);index:idx_message_sender_created,sort:desc;not null"`
	RecipientID string  `gorm:"type:varchar(64);index:idx_message_recipient_created,sort:desc;not null"`
	Body        string  `gorm:"type:text;not null"`
	Read        bool    `gorm:"not null;default:false"`
	JobID       *string `gorm:"type:varchar(64)"`
	ContextType *string `gorm:"type:varchar(20)"`
}

// TableName specifies the table name for Message.
func (Message) TableName() string {
	return "message"
}

// EtoD converts database entity to domain model.
func (m *Message) EtoD() *message.Message {
	var jobCtx *message.JobContextRef
	if m.JobID != nil {
		ctxType := message.ContextTypeJob
		if m.ContextType != nil {
			ctxType = message.ContextType(*m.ContextType)
		}
		jobCtx = &message.JobContextRef{JobID: *m.JobID, ContextType: ctxType}
	}

	return &message.Message{
		ID:          m.ID,
		PublicID:    m.PublicID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Body:        m.Body,
		Read:        m.Read,
		JobContext:  jobCtx,
		CreatedAt:   m.CreatedAt,
	}
}

// NewMessageSchema converts a domain model into its database entity.
func NewMessageSchema(m *message.Message) *Message {
	e := &Message{
		ID:          m.ID,
		CreatedAt:   m.CreatedAt,
		PublicID:    m.PublicID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Body:        m.Body,
		Read:        m.Read,
	}
	if m.JobContext != nil {
		jobID := m.JobContext.JobID
		ctxType := string(m.JobContext.ContextType)
		e.JobID = &jobID
		e.ContextType = &ctxType
	}
	return e
}
