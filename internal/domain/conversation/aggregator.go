package conversation

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"creative-hub/services/messaging-api/internal/domain/message"
	"creative-hub/services/messaging-api/internal/domain/profile"
	"creative-hub/services/messaging-api/internal/utils/platformerrors"
)

// MessageLister is the slice of the message service the aggregator needs.
type MessageLister interface {
	ListForUser(ctx context.Context, actorID string) ([]*message.Message, error)
}

// Aggregator derives the conversation list from the flat message store.
// There is no conversations table; the list is a pure function of the
// viewer's messages.
type Aggregator struct {
	messages MessageLister
	profiles profile.Repository
	tracker  *Tracker
	log      zerolog.Logger
}

// NewAggregator creates a conversation aggregator. The tracker keeps the
// per-viewer incremental index; the aggregator primes it on a cache miss and
// serves snapshots from it while they stay fresh.
func NewAggregator(messages MessageLister, profiles profile.Repository, tracker *Tracker, log zerolog.Logger) *Aggregator {
	return &Aggregator{
		messages: messages,
		profiles: profiles,
		tracker:  tracker,
		log:      log.With().Str("component", "conversation-aggregator").Logger(),
	}
}

// ListForUser groups the viewer's messages by counterparty in a single pass.
// Input arrives newest-first, so the first message seen per counterparty is
// that conversation's preview. Unread counts only messages addressed TO the
// viewer; the viewer's own sent messages never show as unread.
func (a *Aggregator) ListForUser(ctx context.Context, actorID string) ([]*Preview, error) {
	if actorID == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotAuthenticated,
			"no authenticated actor", nil, "conv-list-no-actor")
	}

	if a.tracker != nil {
		if previews, ok := a.tracker.Snapshot(actorID); ok {
			if err := a.attachProfiles(ctx, actorID, previews); err != nil {
				a.log.Warn().Err(err).Str("actor_id", actorID).Msg("failed to attach counterparty profiles")
			}
			return previews, nil
		}
	}

	msgs, err := a.messages.ListForUser(ctx, actorID)
	if err != nil {
		return nil, err
	}

	byOther := make(map[string]*Preview)
	order := make([]string, 0, 8)
	for _, m := range msgs {
		otherID := m.Counterparty(actorID)
		p, ok := byOther[otherID]
		if !ok {
			p = &Preview{
				OtherUserID: otherID,
				LastMessage: m,
				UpdatedAt:   m.CreatedAt,
			}
			byOther[otherID] = p
			order = append(order, otherID)
		}
		if m.RecipientID == actorID && !m.Read {
			p.UnreadCount++
		}
	}

	previews := make([]*Preview, 0, len(order))
	for _, otherID := range order {
		previews = append(previews, byOther[otherID])
	}
	// Input order already has the newest thread first, but make the
	// contract explicit rather than inherited from the repository.
	sort.SliceStable(previews, func(i, j int) bool {
		return previews[i].UpdatedAt.After(previews[j].UpdatedAt)
	})

	if a.tracker != nil {
		a.tracker.Prime(actorID, previews)
	}

	if err := a.attachProfiles(ctx, actorID, previews); err != nil {
		a.log.Warn().Err(err).Str("actor_id", actorID).Msg("failed to attach counterparty profiles")
	}

	return previews, nil
}

// MarkRead mirrors a mark-conversation-read write into the viewer's cached
// index so the next list shows zero unread without re-aggregating.
func (a *Aggregator) MarkRead(actorID, otherID string) {
	if a.tracker != nil {
		a.tracker.ClearUnread(actorID, otherID)
	}
}

// Invalidate drops the viewer's cached index after a write the index cannot
// fold in incrementally, such as a single-message read or a delete.
func (a *Aggregator) Invalidate(actorID string) {
	if a.tracker != nil {
		a.tracker.Invalidate(actorID)
	}
}

// EnsurePeer guarantees otherID appears in the list even before the first
// message is exchanged, so a contact picked from search shows up immediately.
// The synthetic preview carries no message and no unread count and is never
// persisted.
func (a *Aggregator) EnsurePeer(ctx context.Context, previews []*Preview, otherID string) []*Preview {
	if otherID == "" {
		return previews
	}
	for _, p := range previews {
		if p.OtherUserID == otherID {
			return previews
		}
	}

	p := &Preview{OtherUserID: otherID}
	summary, err := a.profiles.FindByID(ctx, otherID)
	if err != nil {
		a.log.Warn().Err(err).Str("other_id", otherID).Msg("failed to resolve picked contact")
	} else {
		p.OtherUser = summary
	}
	return append([]*Preview{p}, previews...)
}

func (a *Aggregator) attachProfiles(ctx context.Context, actorID string, previews []*Preview) error {
	if len(previews) == 0 {
		return nil
	}

	// The actor appears as sender or recipient on every last message, so
	// their summary is part of the lookup too.
	ids := make([]string, 0, len(previews)+1)
	ids = append(ids, actorID)
	for _, p := range previews {
		ids = append(ids, p.OtherUserID)
	}

	summaries, err := a.profiles.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for _, p := range previews {
		p.OtherUser = summaries[p.OtherUserID]
		if p.LastMessage != nil {
			p.LastMessage.Sender = summaries[p.LastMessage.SenderID]
			p.LastMessage.Recipient = summaries[p.LastMessage.RecipientID]
		}
	}
	return nil
}
