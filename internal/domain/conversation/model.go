package conversation

import (
	"time"

	"creative-hub/services/messaging-api/internal/domain/message"
	"creative-hub/services/messaging-api/internal/domain/profile"
)

// Preview is one row in the conversation list: the counterparty, the most
// recent message exchanged with them, and how many of their messages the
// viewer has not read yet.
type Preview struct {
	OtherUserID string           `json:"other_user_id"`
	OtherUser   *profile.Summary `json:"other_user,omitempty"`
	LastMessage *message.Message `json:"last_message"`
	UnreadCount int              `json:"unread_count"`
	UpdatedAt   time.Time        `json:"updated_at"`
}
