package notification

import "time"

// Type identifies what a notification is about.
type Type string

const (
	TypeBriefReceived Type = "brief_received"
	TypeBriefAccepted Type = "brief_accepted"
	TypeBriefDeclined Type = "brief_declined"
	TypeMessage       Type = "message"
)

// DeliveryStatus tracks outbound webhook delivery for a notification.
// Pending rows are picked up by the delivery worker pool.
type DeliveryStatus string

const (
	DeliveryPending   DeliveryStatus = "pending"
	DeliveryRunning   DeliveryStatus = "running"
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryFailed    DeliveryStatus = "failed"
	DeliverySkipped   DeliveryStatus = "skipped"
)

// Notification is one in-app notification plus its delivery state.
type Notification struct {
	ID             uint              `json:"-"`
	PublicID       string            `json:"id"`
	UserID         string            `json:"user_id"`
	Type           Type              `json:"type"`
	Title          string            `json:"title"`
	Message        string            `json:"message"`
	Data           map[string]string `json:"data,omitempty"`
	Link           string            `json:"link,omitempty"`
	Read           bool              `json:"read"`
	DeliveryStatus DeliveryStatus    `json:"-"`
	Attempts       int               `json:"-"`
	CreatedAt      time.Time         `json:"created_at"`
}

// New creates an unread notification pending webhook delivery.
func New(publicID, userID string, typ Type, title, msg string, data map[string]string, link string) *Notification {
	return &Notification{
		PublicID:       publicID,
		UserID:         userID,
		Type:           typ,
		Title:          title,
		Message:        msg,
		Data:           data,
		Link:           link,
		DeliveryStatus: DeliveryPending,
		CreatedAt:      time.Now().UTC(),
	}
}
