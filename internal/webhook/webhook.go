package webhook

import (
	"context"
	"time"
)

// Service pushes stored notifications to the external notification gateway
// (the channel that fans out to email and push providers).
type Service interface {
	// Deliver sends one notification event. A nil error means the gateway
	// acknowledged the event.
	Deliver(ctx context.Context, event *Event) error
	// Enabled reports whether a gateway URL is configured at all.
	Enabled() bool
}

// Event is the payload sent to the notification gateway.
type Event struct {
	ID        string            `json:"id"`
	UserID    string            `json:"user_id"`
	Type      string            `json:"type"`
	Title     string            `json:"title"`
	Message   string            `json:"message"`
	Data      map[string]string `json:"data,omitempty"`
	Link      string            `json:"link,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}
