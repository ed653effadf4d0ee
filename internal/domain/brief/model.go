package brief

import (
	"time"

	"github.com/shopspring/decimal"

	"creative-hub/services/messaging-api/internal/domain/profile"
)

// Brief is a structured project proposal sent from one user to another,
// layered on top of the conversation between them. It carries its own
// accept/decline/withdraw lifecycle; the conversation only sees the
// announcement and confirmation messages the lifecycle emits.
type Brief struct {
	ID          uint   `json:"-"`
	PublicID    string `json:"id"`
	SenderID    string `json:"sender_id"`
	RecipientID string `json:"recipient_id"`

	Title       string           `json:"title"`
	Description string           `json:"description"`
	Budget      *decimal.Decimal `json:"budget,omitempty"`
	Deadline    *time.Time       `json:"deadline,omitempty"`

	Status       Status     `json:"status"`
	ResponseNote *string    `json:"response_note,omitempty"`
	RespondedAt  *time.Time `json:"responded_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`

	// Joined profile summaries, populated on reads
	Sender    *profile.Summary `json:"sender,omitempty"`
	Recipient *profile.Summary `json:"recipient,omitempty"`
}

// NewBrief creates a pending brief between two users.
func NewBrief(publicID, senderID, recipientID, title, description string, budget *decimal.Decimal, deadline *time.Time) *Brief {
	return &Brief{
		PublicID:    publicID,
		SenderID:    senderID,
		RecipientID: recipientID,
		Title:       title,
		Description: description,
		Budget:      budget,
		Deadline:    deadline,
		Status:      StatusPending,
		CreatedAt:   time.Now().UTC(),
	}
}
