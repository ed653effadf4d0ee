package entities

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"creative-hub/services/messaging-api/internal/domain/notification"
)

// Notification represents the database schema for notifications.
type Notification struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_notification_delivery_pending"`

	PublicID       string         `gorm:"type:varchar(50);uniqueIndex;not null"`
	UserID         string         `gorm:"type:varchar(64);index:idx_notification_user_created,sort:desc;not null"`
	Type           string         `gorm:"type:varchar(40);not null"`
	Title          string         `gorm:"type:varchar(256);not null"`
	Message        string         `gorm:"type:text;not null"`
	Data           datatypes.JSON `gorm:"type:jsonb"`
	Link           string         `gorm:"type:varchar(512);not null;default:''"`
	Read           bool           `gorm:"not null;default:false"`
	DeliveryStatus string         `gorm:"type:varchar(20);not null;default:'pending'"`
	Attempts       int            `gorm:"not null;default:0"`
}

// TableName specifies the table name for Notification.
func (Notification) TableName() string {
	return "notification"
}

// EtoD converts database entity to domain model.
func (n *Notification) EtoD() *notification.Notification {
	var data map[string]string
	if len(n.Data) > 0 {
		// Rows written by this service always hold a flat string map; a
		// malformed payload degrades to no data rather than a failed read.
		_ = json.Unmarshal(n.Data, &data)
	}
	return &notification.Notification{
		ID:             n.ID,
		PublicID:       n.PublicID,
		UserID:         n.UserID,
		Type:           notification.Type(n.Type),
		Title:          n.Title,
		Message:        n.Message,
		Data:           data,
		Link:           n.Link,
		Read:           n.Read,
		DeliveryStatus: notification.DeliveryStatus(n.DeliveryStatus),
		Attempts:       n.Attempts,
		CreatedAt:      n.CreatedAt,
	}
}

// NewNotificationSchema converts a domain model into its database entity.
func NewNotificationSchema(n *notification.Notification) *Notification {
	var data datatypes.JSON
	if len(n.Data) > 0 {
		raw, err := json.Marshal(n.Data)
		if err == nil {
			data = raw
		}
	}
	return &Notification{
		ID:             n.ID,
		CreatedAt:      n.CreatedAt,
		PublicID:       n.PublicID,
		UserID:         n.UserID,
		Type:           string(n.Type),
		Title:          n.Title,
		Message:        n.Message,
		Data:           data,
		Link:           n.Link,
		Read:           n.Read,
		DeliveryStatus: string(n.DeliveryStatus),
		Attempts:       n.Attempts,
	}
}
