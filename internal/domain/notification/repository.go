package notification

import "context"

// Repository persists notifications and drives the delivery queue.
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	FindByPublicID(ctx context.Context, publicID string) (*Notification, error)
	ListForUser(ctx context.Context, userID string, unreadOnly bool, limit int) ([]*Notification, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, userID, publicID string) (bool, error)
	MarkAllRead(ctx context.Context, userID string) (int64, error)

	// ClaimPending atomically claims up to limit pending notifications for
	// delivery, moving them to running. Implementations use row locking so
	// concurrent workers never claim the same row.
	ClaimPending(ctx context.Context, limit int) ([]*Notification, error)
	// ResolveDelivery records the outcome of a delivery attempt.
	ResolveDelivery(ctx context.Context, id uint, status DeliveryStatus, attempts int) error
	CountByDeliveryStatus(ctx context.Context, status DeliveryStatus) (int64, error)
}
