package profile

import "context"

// Summary is the slice of a user profile the messaging surface needs:
// enough to render a conversation header or a brief card, nothing more.
// Profiles are owned by the accounts service; this is a read model.
type Summary struct {
	ID          string  `json:"id"`
	DisplayName string  `json:"display_name"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
	Role        string  `json:"role"`
}

// Repository resolves profile summaries for conversation and brief views.
type Repository interface {
	FindByID(ctx context.Context, id string) (*Summary, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]*Summary, error)

	// Search matches display name or email against the query, excluding the
	// searching user, for the "start a new conversation" picker.
	Search(ctx context.Context, selfID, query string, limit int) ([]*Summary, error)
}
