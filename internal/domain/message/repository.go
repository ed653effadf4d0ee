package message

import "context"

// Repository persists messages. Ordering contracts matter here: the
// aggregator's single-pass grouping relies on ListForUser being descending,
// and thread rendering relies on ListBetween being ascending.
type Repository interface {
	Create(ctx context.Context, m *Message) error
	FindByPublicID(ctx context.Context, publicID string) (*Message, error)

	// ListBetween returns the full thread between two users, ascending by
	// created_at.
	ListBetween(ctx context.Context, userID, otherID string) ([]*Message, error)

	// ListForUser returns every message touching the user, descending by
	// created_at.
	ListForUser(ctx context.Context, userID string) ([]*Message, error)

	// MarkThreadRead flips read=false to read=true on all messages from
	// otherID to userID. Returns the number of rows updated.
	MarkThreadRead(ctx context.Context, userID, otherID string) (int64, error)

	// MarkRead flips the read flag on a single message.
	MarkRead(ctx context.Context, publicID string) error

	Delete(ctx context.Context, publicID string) error

	// FirstJobRef returns the job reference carried by the earliest message
	// in the thread that has one, or nil if the thread has no job context.
	FirstJobRef(ctx context.Context, userID, otherID string) (*JobContextRef, error)
}
