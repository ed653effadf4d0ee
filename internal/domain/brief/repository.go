package brief

import "context"

// Repository persists briefs and applies guarded status transitions.
type Repository interface {
	Create(ctx context.Context, b *Brief) error
	FindByPublicID(ctx context.Context, publicID string) (*Brief, error)
	ListBetween(ctx context.Context, userID, otherID string) ([]*Brief, error)

	// Transition applies a conditional update: the row is mutated only if its
	// status still equals pending at write time. It reports whether a row was
	// actually updated so callers can distinguish a lost race from success.
	Transition(ctx context.Context, publicID string, update TransitionUpdate) (bool, error)
}

// Columns a TransitionUpdate may match the actor against.
const (
	ActorColumnSender    = "sender_id"
	ActorColumnRecipient = "recipient_id"
)

// TransitionUpdate describes a guarded status mutation. ActorColumn names the
// column (sender_id or recipient_id) whose value must match ActorID for the
// update to apply, which keeps the authorization check inside the same
// conditional write as the status guard.
type TransitionUpdate struct {
	ToStatus     Status
	ActorColumn  string
	ActorID      string
	ResponseNote *string
	SetResponded bool
}
