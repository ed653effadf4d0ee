package conversation

import (
	"sync"
	"time"

	"creative-hub/services/messaging-api/internal/domain/message"
)

// Tracker caches one Index per viewer and keeps it current from the message
// publisher stream. Snapshots older than the TTL are discarded so writes that
// bypass the stream (single-message reads, deletes, other instances) converge
// on the next aggregation.
type Tracker struct {
	mu      sync.RWMutex
	ttl     time.Duration
	indexes map[string]*trackedIndex
	now     func() time.Time
}

type trackedIndex struct {
	index    *Index
	primedAt time.Time
}

// NewTracker creates a tracker whose cached snapshots expire after ttl.
func NewTracker(ttl time.Duration) *Tracker {
	return &Tracker{
		ttl:     ttl,
		indexes: make(map[string]*trackedIndex),
		now:     time.Now,
	}
}

// Publish implements message.Publisher: a freshly stored message is folded
// into the cached indexes of both participants. Viewers without a cached
// index are ignored; their next list builds one from the store.
func (t *Tracker) Publish(m *message.Message) {
	if m == nil {
		return
	}
	t.mu.RLock()
	sender := t.indexes[m.SenderID]
	recipient := t.indexes[m.RecipientID]
	t.mu.RUnlock()

	if sender != nil {
		sender.index.Apply(m)
	}
	if recipient != nil && recipient != sender {
		recipient.index.Apply(m)
	}
}

// Prime replaces the viewer's cached index with a fresh aggregation.
func (t *Tracker) Prime(viewer string, previews []*Preview) {
	entry := &trackedIndex{index: NewIndex(viewer, previews), primedAt: t.now()}
	t.mu.Lock()
	t.indexes[viewer] = entry
	t.mu.Unlock()
}

// Snapshot returns the viewer's cached list when one exists and is still
// fresh. An expired entry is dropped on the spot.
func (t *Tracker) Snapshot(viewer string) ([]*Preview, bool) {
	t.mu.RLock()
	entry := t.indexes[viewer]
	t.mu.RUnlock()
	if entry == nil {
		return nil, false
	}
	if t.ttl > 0 && t.now().Sub(entry.primedAt) > t.ttl {
		t.mu.Lock()
		if t.indexes[viewer] == entry {
			delete(t.indexes, viewer)
		}
		t.mu.Unlock()
		return nil, false
	}
	return entry.index.Snapshot(), true
}

// ClearUnread mirrors a mark-conversation-read write into the viewer's
// cached index. Unknown viewers are a no-op.
func (t *Tracker) ClearUnread(viewer, otherID string) {
	t.mu.RLock()
	entry := t.indexes[viewer]
	t.mu.RUnlock()
	if entry != nil {
		entry.index.ClearUnread(otherID)
	}
}

// Invalidate drops the viewer's cached index so the next list re-aggregates.
func (t *Tracker) Invalidate(viewer string) {
	t.mu.Lock()
	delete(t.indexes, viewer)
	t.mu.Unlock()
}
