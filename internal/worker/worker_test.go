package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"creative-hub/services/messaging-api/internal/domain/notification"
	"creative-hub/services/messaging-api/internal/webhook"
)

type mockRepo struct {
	ClaimPendingFunc    func(ctx context.Context, limit int) ([]*notification.Notification, error)
	ResolveDeliveryFunc func(ctx context.Context, id uint, status notification.DeliveryStatus, attempts int) error
}

func (m *mockRepo) Create(ctx context.Context, n *notification.Notification) error { return nil }

func (m *mockRepo) FindByPublicID(ctx context.Context, publicID string) (*notification.Notification, error) {
	return nil, nil
}

func (m *mockRepo) ListForUser(ctx context.Context, userID string, unreadOnly bool, limit int) ([]*notification.Notification, error) {
	return nil, nil
}

func (m *mockRepo) CountUnread(ctx context.Context, userID string) (int64, error) { return 0, nil }

func (m *mockRepo) MarkRead(ctx context.Context, userID, publicID string) (bool, error) {
	return true, nil
}

func (m *mockRepo) MarkAllRead(ctx context.Context, userID string) (int64, error) { return 0, nil }

func (m *mockRepo) ClaimPending(ctx context.Context, limit int) ([]*notification.Notification, error) {
	if m.ClaimPendingFunc != nil {
		return m.ClaimPendingFunc(ctx, limit)
	}
	return nil, nil
}

func (m *mockRepo) ResolveDelivery(ctx context.Context, id uint, status notification.DeliveryStatus, attempts int) error {
	if m.ResolveDeliveryFunc != nil {
		return m.ResolveDeliveryFunc(ctx, id, status, attempts)
	}
	return nil
}

func (m *mockRepo) CountByDeliveryStatus(ctx context.Context, status notification.DeliveryStatus) (int64, error) {
	return 0, nil
}

type mockDelivery struct {
	enabled     bool
	DeliverFunc func(ctx context.Context, e *webhook.Event) error
}

func (m *mockDelivery) Enabled() bool { return m.enabled }

func (m *mockDelivery) Deliver(ctx context.Context, e *webhook.Event) error {
	if m.DeliverFunc != nil {
		return m.DeliverFunc(ctx, e)
	}
	return nil
}

func claimedNotification() *notification.Notification {
	return &notification.Notification{
		ID:             7,
		PublicID:       "ntf_1",
		UserID:         "bob",
		Type:           notification.TypeBriefReceived,
		Title:          "New project brief",
		DeliveryStatus: notification.DeliveryRunning,
		Attempts:       1,
	}
}

func TestWorker_ProcessNext_Delivered(t *testing.T) {
	var resolved notification.DeliveryStatus
	var attempts int
	repo := &mockRepo{
		ClaimPendingFunc: func(ctx context.Context, limit int) ([]*notification.Notification, error) {
			return []*notification.Notification{claimedNotification()}, nil
		},
		ResolveDeliveryFunc: func(ctx context.Context, id uint, status notification.DeliveryStatus, a int) error {
			if id != 7 {
				t.Errorf("resolved id = %d, want 7", id)
			}
			resolved = status
			attempts = a
			return nil
		},
	}
	delivered := false
	gateway := &mockDelivery{
		enabled: true,
		DeliverFunc: func(ctx context.Context, e *webhook.Event) error {
			delivered = true
			if e.ID != "ntf_1" || e.UserID != "bob" {
				t.Errorf("event = %+v, want ntf_1 for bob", e)
			}
			return nil
		},
	}

	w := NewWorker(1, repo, gateway, time.Second, time.Millisecond, zerolog.Nop())
	w.processNext(context.Background())

	if !delivered {
		t.Error("gateway Deliver not called")
	}
	if resolved != notification.DeliveryDelivered {
		t.Errorf("outcome = %s, want delivered", resolved)
	}
	if attempts != 2 {
		t.Errorf("attempts = %d, want 2", attempts)
	}
}

func TestWorker_ProcessNext_Failed(t *testing.T) {
	var resolved notification.DeliveryStatus
	repo := &mockRepo{
		ClaimPendingFunc: func(ctx context.Context, limit int) ([]*notification.Notification, error) {
			return []*notification.Notification{claimedNotification()}, nil
		},
		ResolveDeliveryFunc: func(ctx context.Context, id uint, status notification.DeliveryStatus, a int) error {
			resolved = status
			return nil
		},
	}
	gateway := &mockDelivery{
		enabled: true,
		DeliverFunc: func(ctx context.Context, e *webhook.Event) error {
			return errors.New("connection refused")
		},
	}

	w := NewWorker(1, repo, gateway, time.Second, time.Millisecond, zerolog.Nop())
	w.processNext(context.Background())

	if resolved != notification.DeliveryFailed {
		t.Errorf("outcome = %s, want failed", resolved)
	}
}

func TestWorker_ProcessNext_GatewayDisabled(t *testing.T) {
	var resolved notification.DeliveryStatus
	repo := &mockRepo{
		ClaimPendingFunc: func(ctx context.Context, limit int) ([]*notification.Notification, error) {
			return []*notification.Notification{claimedNotification()}, nil
		},
		ResolveDeliveryFunc: func(ctx context.Context, id uint, status notification.DeliveryStatus, a int) error {
			resolved = status
			return nil
		},
	}
	gateway := &mockDelivery{
		enabled: false,
		DeliverFunc: func(ctx context.Context, e *webhook.Event) error {
			t.Error("Deliver must not be called when the gateway is disabled")
			return nil
		},
	}

	w := NewWorker(1, repo, gateway, time.Second, time.Millisecond, zerolog.Nop())
	w.processNext(context.Background())

	if resolved != notification.DeliverySkipped {
		t.Errorf("outcome = %s, want skipped", resolved)
	}
}

func TestWorker_ProcessNext_NothingClaimed(t *testing.T) {
	repo := &mockRepo{
		ResolveDeliveryFunc: func(ctx context.Context, id uint, status notification.DeliveryStatus, a int) error {
			t.Error("nothing was claimed, nothing to resolve")
			return nil
		},
	}
	w := NewWorker(1, repo, &mockDelivery{enabled: true}, time.Second, time.Millisecond, zerolog.Nop())
	w.processNext(context.Background())
}
