package realtime

import (
	"sync"

	"github.com/rs/zerolog"

	"creative-hub/services/messaging-api/internal/domain/message"
	"creative-hub/services/messaging-api/internal/infrastructure/metrics"
	"creative-hub/services/messaging-api/internal/utils/idgen"
)

// Subscription is one live listener. Events closes when the subscription is
// closed; Close is idempotent and safe to call from any goroutine.
type Subscription struct {
	ID     string
	userID string
	// otherID narrows the subscription to one thread; empty means all of
	// the user's messages.
	otherID string

	events chan *message.Message
	once   sync.Once
	hub    *Hub
}

// Events returns the subscription's delivery channel.
func (s *Subscription) Events() <-chan *message.Message {
	return s.events
}

// Close unregisters the subscription and closes its channel.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.remove(s)
	})
}

func (s *Subscription) wants(m *message.Message) bool {
	if m.SenderID != s.userID && m.RecipientID != s.userID {
		return false
	}
	if s.otherID == "" {
		return true
	}
	return m.Involves(s.userID, s.otherID)
}

// Hub fans stored messages out to live subscribers. Delivery is best effort:
// a subscriber that cannot keep up loses events rather than blocking the
// send path, since the store remains the source of truth.
type Hub struct {
	mu      sync.RWMutex
	subs    map[string]*Subscription
	bufSize int
	log     zerolog.Logger
}

// NewHub creates a hub whose subscriber channels buffer bufSize events.
func NewHub(bufSize int, log zerolog.Logger) *Hub {
	if bufSize <= 0 {
		bufSize = 32
	}
	return &Hub{
		subs:    make(map[string]*Subscription),
		bufSize: bufSize,
		log:     log.With().Str("component", "realtime-hub").Logger(),
	}
}

// SubscribeAll registers a listener for every message involving userID.
func (h *Hub) SubscribeAll(userID string) *Subscription {
	return h.subscribe(userID, "")
}

// SubscribeConversation registers a listener scoped to the thread between
// userID and otherID.
func (h *Hub) SubscribeConversation(userID, otherID string) *Subscription {
	return h.subscribe(userID, otherID)
}

func (h *Hub) subscribe(userID, otherID string) *Subscription {
	id, err := idgen.GenerateSecureID("sub", 16)
	if err != nil {
		// crypto/rand failing means the process is in serious trouble, but
		// a subscription id only needs local uniqueness.
		h.log.Error().Err(err).Msg("secure id generation failed for subscription")
		id = "sub_fallback"
	}

	sub := &Subscription{
		ID:      id,
		userID:  userID,
		otherID: otherID,
		events:  make(chan *message.Message, h.bufSize),
		hub:     h,
	}

	h.mu.Lock()
	h.subs[sub.ID] = sub
	h.mu.Unlock()

	metrics.SubscriberRegistered()
	h.log.Debug().Str("subscription_id", sub.ID).Str("user_id", userID).Msg("subscriber registered")
	return sub
}

// remove closes the channel while holding the write lock so Publish, which
// sends under the read lock, can never hit a closed channel.
func (h *Hub) remove(s *Subscription) {
	h.mu.Lock()
	_, ok := h.subs[s.ID]
	delete(h.subs, s.ID)
	close(s.events)
	h.mu.Unlock()

	if ok {
		metrics.SubscriberGone()
	}
}

// Publish delivers m to every matching subscription without blocking.
func (h *Hub) Publish(m *message.Message) {
	if m == nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, sub := range h.subs {
		if !sub.wants(m) {
			continue
		}
		select {
		case sub.events <- m:
		default:
			metrics.RecordDroppedEvent()
			h.log.Warn().Str("subscription_id", sub.ID).Msg("subscriber buffer full, event dropped")
		}
	}
}

// SubscriberCount reports how many subscriptions are live.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
