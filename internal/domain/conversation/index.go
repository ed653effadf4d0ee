package conversation

import (
	"sort"
	"sync"

	"creative-hub/services/messaging-api/internal/domain/message"
)

// Index maintains one viewer's conversation list incrementally so that a
// stream of new messages does not force a full re-aggregation per event.
// It is safe for concurrent use; the message publisher applies events while
// handlers snapshot the list.
type Index struct {
	mu      sync.RWMutex
	viewer  string
	byOther map[string]*Preview
	seen    map[string]struct{}
}

// NewIndex builds an index for viewer from an initial aggregation. The
// previews are copied so later applies never mutate the caller's slice.
func NewIndex(viewer string, previews []*Preview) *Index {
	byOther := make(map[string]*Preview, len(previews))
	seen := make(map[string]struct{}, len(previews))
	for _, p := range previews {
		cp := *p
		byOther[cp.OtherUserID] = &cp
		if cp.LastMessage != nil && cp.LastMessage.PublicID != "" {
			seen[cp.LastMessage.PublicID] = struct{}{}
		}
	}
	return &Index{viewer: viewer, byOther: byOther, seen: seen}
}

// Apply folds one new message into the index. Messages not involving the
// viewer are ignored, as is a redelivery of a message already applied.
// A message older than the current preview still bumps the unread count but
// never replaces the preview.
func (ix *Index) Apply(m *message.Message) {
	if m == nil || (m.SenderID != ix.viewer && m.RecipientID != ix.viewer) {
		return
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()

	if m.PublicID != "" {
		if _, dup := ix.seen[m.PublicID]; dup {
			return
		}
		ix.seen[m.PublicID] = struct{}{}
	}

	otherID := m.Counterparty(ix.viewer)
	p, ok := ix.byOther[otherID]
	if !ok {
		p = &Preview{OtherUserID: otherID}
		ix.byOther[otherID] = p
	}
	if p.LastMessage == nil || !m.CreatedAt.Before(p.UpdatedAt) {
		p.LastMessage = m
		p.UpdatedAt = m.CreatedAt
	}
	if m.RecipientID == ix.viewer && !m.Read {
		p.UnreadCount++
	}
}

// ClearUnread zeroes the unread count for one counterparty, mirroring a
// mark-conversation-read write.
func (ix *Index) ClearUnread(otherID string) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if p, ok := ix.byOther[otherID]; ok {
		p.UnreadCount = 0
	}
}

// Snapshot returns the current list, newest thread first. Previews and their
// last messages are copies; callers may attach profiles without racing later
// applies.
func (ix *Index) Snapshot() []*Preview {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	previews := make([]*Preview, 0, len(ix.byOther))
	for _, p := range ix.byOther {
		cp := *p
		if p.LastMessage != nil {
			m := *p.LastMessage
			cp.LastMessage = &m
		}
		previews = append(previews, &cp)
	}
	sort.Slice(previews, func(i, j int) bool {
		return previews[i].UpdatedAt.After(previews[j].UpdatedAt)
	})
	return previews
}
