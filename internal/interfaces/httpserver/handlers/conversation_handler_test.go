package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"creative-hub/services/messaging-api/internal/domain/conversation"
	"creative-hub/services/messaging-api/internal/domain/message"
	"creative-hub/services/messaging-api/internal/domain/profile"
	"creative-hub/services/messaging-api/internal/infrastructure/auth"
	"creative-hub/services/messaging-api/internal/infrastructure/realtime"
	"creative-hub/services/messaging-api/internal/interfaces/httpserver/handlers"
)

type mockProfiles struct{}

func (m *mockProfiles) FindByID(ctx context.Context, id string) (*profile.Summary, error) {
	return &profile.Summary{ID: id}, nil
}

func (m *mockProfiles) FindByIDs(ctx context.Context, ids []string) (map[string]*profile.Summary, error) {
	out := make(map[string]*profile.Summary, len(ids))
	for _, id := range ids {
		out[id] = &profile.Summary{ID: id}
	}
	return out, nil
}

func (m *mockProfiles) Search(ctx context.Context, selfID, query string, limit int) ([]*profile.Summary, error) {
	return nil, nil
}

func setupConversationTestRouter(handler *handlers.ConversationHandler, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if userID != "" {
		r.Use(func(c *gin.Context) {
			c.Set(auth.ContextUserKey, userID)
			c.Next()
		})
	}
	v1 := r.Group("/v1")
	{
		v1.GET("/conversations", handler.List)
		v1.POST("/conversations/:other_id/read", handler.MarkRead)
	}
	return r
}

// Marking a conversation read must flip the cached unread count immediately:
// the list served right after the write shows zero unread for that thread
// without another store read.
func TestConversationHandler_MarkRead_ClearsCachedUnread(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	listCalls := 0
	svc := &MockMessageService{
		ListForUserFunc: func(ctx context.Context, actorID string) ([]*message.Message, error) {
			listCalls++
			return []*message.Message{
				{PublicID: "msg_1", SenderID: "bob", RecipientID: "alice", Body: "hi", CreatedAt: base},
			}, nil
		},
		MarkConversationReadFunc: func(ctx context.Context, actorID, otherID string) (int64, error) {
			return 1, nil
		},
	}
	tracker := conversation.NewTracker(time.Minute)
	aggregator := conversation.NewAggregator(svc, &mockProfiles{}, tracker, zerolog.Nop())
	hub := realtime.NewHub(8, zerolog.Nop())

	handler := handlers.NewConversationHandler(aggregator, svc, hub, zerolog.Nop())
	router := setupConversationTestRouter(handler, "alice")

	unread := func() int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/conversations", nil)
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("list status = %d, want 200", w.Code)
		}
		var body struct {
			Data []struct {
				UnreadCount int `json:"unread_count"`
			} `json:"data"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode list response: %v", err)
		}
		if len(body.Data) != 1 {
			t.Fatalf("got %d previews, want 1", len(body.Data))
		}
		return body.Data[0].UnreadCount
	}

	if got := unread(); got != 1 {
		t.Fatalf("unread before mark-read = %d, want 1", got)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/conversations/bob/read", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("mark-read status = %d, want 200", w.Code)
	}

	if got := unread(); got != 0 {
		t.Errorf("unread after mark-read = %d, want 0", got)
	}
	if listCalls != 1 {
		t.Errorf("store reads = %d, want 1 (second list served from the index)", listCalls)
	}
}
