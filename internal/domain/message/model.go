package message

import (
	"time"

	"creative-hub/services/messaging-api/internal/domain/job"
	"creative-hub/services/messaging-api/internal/domain/profile"
)

// ContextType tags why a thread references a job posting.
type ContextType string

const (
	ContextTypeJob       ContextType = "job"
	ContextTypeBooking   ContextType = "booking"
	ContextTypePortfolio ContextType = "portfolio"
)

// IsValid returns true for a known context type.
func (c ContextType) IsValid() bool {
	return c == ContextTypeJob || c == ContextTypeBooking || c == ContextTypePortfolio
}

// JobContextRef is the raw job reference stored on a message. It is resolved
// into a job.Context summary once, at read time, never re-parsed per render.
type JobContextRef struct {
	JobID       string      `json:"job_id"`
	ContextType ContextType `json:"context_type"`
}

// Message is one directed text message between two users. Body and timestamps
// are immutable after creation; only the read flag may flip, false to true.
type Message struct {
	ID          uint   `json:"-"`
	PublicID    string `json:"id"`
	SenderID    string `json:"sender_id"`
	RecipientID string `json:"recipient_id"`
	Body        string `json:"body"`
	Read        bool   `json:"read"`

	JobContext *JobContextRef `json:"job_context,omitempty"`

	CreatedAt time.Time `json:"created_at"`

	// Joined data, populated on reads
	Sender    *profile.Summary `json:"sender,omitempty"`
	Recipient *profile.Summary `json:"recipient,omitempty"`
	Job       *job.Context     `json:"job,omitempty"`
}

// NewMessage creates an unread message from sender to recipient.
func NewMessage(publicID, senderID, recipientID, body string, jobContext *JobContextRef) *Message {
	return &Message{
		PublicID:    publicID,
		SenderID:    senderID,
		RecipientID: recipientID,
		Body:        body,
		Read:        false,
		JobContext:  jobContext,
		CreatedAt:   time.Now().UTC(),
	}
}

// Counterparty returns the id on the message that is not selfID.
func (m *Message) Counterparty(selfID string) string {
	if m.SenderID == selfID {
		return m.RecipientID
	}
	return m.SenderID
}

// Involves reports whether the message belongs to the thread between a and b.
func (m *Message) Involves(a, b string) bool {
	return (m.SenderID == a && m.RecipientID == b) || (m.SenderID == b && m.RecipientID == a)
}
