package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"creative-hub/services/messaging-api/internal/domain/job"
	"creative-hub/services/messaging-api/internal/domain/message"
	"creative-hub/services/messaging-api/internal/infrastructure/auth"
	"creative-hub/services/messaging-api/internal/interfaces/httpserver/handlers"
	"creative-hub/services/messaging-api/internal/utils/platformerrors"
)

// MockMessageService is a mock implementation of message.Service for testing.
type MockMessageService struct {
	SendFunc                 func(ctx context.Context, actorID, recipientID, body string, jobContext *message.JobContextRef) (*message.Message, error)
	ListConversationFunc     func(ctx context.Context, actorID, otherID string) ([]*message.Message, error)
	ListForUserFunc          func(ctx context.Context, actorID string) ([]*message.Message, error)
	MarkConversationReadFunc func(ctx context.Context, actorID, otherID string) (int64, error)
	MarkMessageReadFunc      func(ctx context.Context, actorID, messageID string) error
	DeleteFunc               func(ctx context.Context, actorID, messageID string) error
	JobContextForFunc        func(ctx context.Context, actorID, otherID string) (*job.Context, error)
}

func (m *MockMessageService) Send(ctx context.Context, actorID, recipientID, body string, jobContext *message.JobContextRef) (*message.Message, error) {
	if m.SendFunc != nil {
		return m.SendFunc(ctx, actorID, recipientID, body, jobContext)
	}
	return nil, nil
}

func (m *MockMessageService) ListConversation(ctx context.Context, actorID, otherID string) ([]*message.Message, error) {
	if m.ListConversationFunc != nil {
		return m.ListConversationFunc(ctx, actorID, otherID)
	}
	return nil, nil
}

func (m *MockMessageService) ListForUser(ctx context.Context, actorID string) ([]*message.Message, error) {
	if m.ListForUserFunc != nil {
		return m.ListForUserFunc(ctx, actorID)
	}
	return nil, nil
}

func (m *MockMessageService) MarkConversationRead(ctx context.Context, actorID, otherID string) (int64, error) {
	if m.MarkConversationReadFunc != nil {
		return m.MarkConversationReadFunc(ctx, actorID, otherID)
	}
	return 0, nil
}

func (m *MockMessageService) MarkMessageRead(ctx context.Context, actorID, messageID string) error {
	if m.MarkMessageReadFunc != nil {
		return m.MarkMessageReadFunc(ctx, actorID, messageID)
	}
	return nil
}

func (m *MockMessageService) Delete(ctx context.Context, actorID, messageID string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, actorID, messageID)
	}
	return nil
}

func (m *MockMessageService) JobContextFor(ctx context.Context, actorID, otherID string) (*job.Context, error) {
	if m.JobContextForFunc != nil {
		return m.JobContextForFunc(ctx, actorID, otherID)
	}
	return nil, nil
}

func setupMessageTestRouter(handler *handlers.MessageHandler, userID string) *gin.Engine {
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
		v1.POST("/messages", handler.Send)
		v1.POST("/messages/:message_id/read", handler.MarkRead)
		v1.DELETE("/messages/:message_id", handler.Delete)
		v1.GET("/conversations/:other_id/messages", handler.GetThread)
		v1.GET("/conversations/:other_id/job-context", handler.JobContext)
	}
	return r
}

func TestMessageHandler_Send(t *testing.T) {
	mock := &MockMessageService{
		SendFunc: func(ctx context.Context, actorID, recipientID, body string, jobContext *message.JobContextRef) (*message.Message, error) {
			if actorID != "alice" || recipientID != "bob" {
				t.Errorf("parties = %s -> %s, want alice -> bob", actorID, recipientID)
			}
			if jobContext == nil || jobContext.JobID != "job-1" {
				t.Errorf("job context = %+v, want job-1", jobContext)
			}
			return &message.Message{PublicID: "msg_1", SenderID: actorID, RecipientID: recipientID, Body: body}, nil
		},
	}
	handler := handlers.NewMessageHandler(mock, nil, zerolog.Nop())
	router := setupMessageTestRouter(handler, "alice")

	body, _ := json.Marshal(map[string]any{
		"recipient_id": "bob",
		"body":         "hello",
		"job_context":  map[string]any{"job_id": "job-1", "context_type": "job"},
	})
	req, _ := http.NewRequest("POST", "/v1/messages", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var response map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	data, _ := response["data"].(map[string]any)
	if data["id"] != "msg_1" {
		t.Errorf("Expected message id msg_1, got %v", data["id"])
	}
}

func TestMessageHandler_Send_MissingBody(t *testing.T) {
	handler := handlers.NewMessageHandler(&MockMessageService{}, nil, zerolog.Nop())
	router := setupMessageTestRouter(handler, "alice")

	body, _ := json.Marshal(map[string]any{"recipient_id": "bob"})
	req, _ := http.NewRequest("POST", "/v1/messages", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestMessageHandler_Send_Unauthenticated(t *testing.T) {
	handler := handlers.NewMessageHandler(&MockMessageService{}, nil, zerolog.Nop())
	router := setupMessageTestRouter(handler, "")

	body, _ := json.Marshal(map[string]any{"recipient_id": "bob", "body": "hi"})
	req, _ := http.NewRequest("POST", "/v1/messages", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", w.Code)
	}
}

func TestMessageHandler_GetThread(t *testing.T) {
	mock := &MockMessageService{
		ListConversationFunc: func(ctx context.Context, actorID, otherID string) ([]*message.Message, error) {
			if otherID != "bob" {
				t.Errorf("other = %s, want bob", otherID)
			}
			return []*message.Message{
				{PublicID: "msg_1", SenderID: "alice", RecipientID: "bob", Body: "hi"},
				{PublicID: "msg_2", SenderID: "bob", RecipientID: "alice", Body: "hey"},
			}, nil
		},
	}
	handler := handlers.NewMessageHandler(mock, nil, zerolog.Nop())
	router := setupMessageTestRouter(handler, "alice")

	req, _ := http.NewRequest("GET", "/v1/conversations/bob/messages", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	data, _ := response["data"].([]any)
	if len(data) != 2 {
		t.Errorf("Expected 2 messages, got %d", len(data))
	}
}

func TestMessageHandler_MarkRead_Forbidden(t *testing.T) {
	mock := &MockMessageService{
		MarkMessageReadFunc: func(ctx context.Context, actorID, messageID string) error {
			return platformerrors.NewError(ctx, platformerrors.LayerDomain,
				platformerrors.ErrorTypeForbidden, "only the recipient may mark a message read", nil, "test-forbidden")
		},
	}
	handler := handlers.NewMessageHandler(mock, nil, zerolog.Nop())
	router := setupMessageTestRouter(handler, "alice")

	req, _ := http.NewRequest("POST", "/v1/messages/msg_1/read", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", w.Code)
	}
}

func TestMessageHandler_Delete(t *testing.T) {
	deleted := ""
	mock := &MockMessageService{
		DeleteFunc: func(ctx context.Context, actorID, messageID string) error {
			deleted = messageID
			return nil
		},
	}
	handler := handlers.NewMessageHandler(mock, nil, zerolog.Nop())
	router := setupMessageTestRouter(handler, "alice")

	req, _ := http.NewRequest("DELETE", "/v1/messages/msg_1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if deleted != "msg_1" {
		t.Errorf("deleted = %s, want msg_1", deleted)
	}
}

func TestMessageHandler_JobContext_Empty(t *testing.T) {
	handler := handlers.NewMessageHandler(&MockMessageService{}, nil, zerolog.Nop())
	router := setupMessageTestRouter(handler, "alice")

	req, _ := http.NewRequest("GET", "/v1/conversations/bob/job-context", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
}

type stubInvalidator struct {
	invalidated []string
}

func (s *stubInvalidator) Invalidate(viewerID string) {
	s.invalidated = append(s.invalidated, viewerID)
}

func TestMessageHandler_MarkRead_InvalidatesConversations(t *testing.T) {
	inv := &stubInvalidator{}
	handler := handlers.NewMessageHandler(&MockMessageService{}, inv, zerolog.Nop())
	router := setupMessageTestRouter(handler, "alice")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/messages/msg_1/read", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if len(inv.invalidated) != 1 || inv.invalidated[0] != "alice" {
		t.Errorf("invalidated = %v, want [alice]", inv.invalidated)
	}
}

func TestMessageHandler_Delete_InvalidatesConversations(t *testing.T) {
	inv := &stubInvalidator{}
	handler := handlers.NewMessageHandler(&MockMessageService{}, inv, zerolog.Nop())
	router := setupMessageTestRouter(handler, "alice")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/v1/messages/msg_1", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if len(inv.invalidated) != 1 || inv.invalidated[0] != "alice" {
		t.Errorf("invalidated = %v, want [alice]", inv.invalidated)
	}
}

func TestMessageHandler_MarkRead_FailureSkipsInvalidation(t *testing.T) {
	inv := &stubInvalidator{}
	mock := &MockMessageService{
		MarkMessageReadFunc: func(ctx context.Context, actorID, messageID string) error {
			return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeForbidden,
				"only the recipient may mark a message read", nil, "test-forbidden")
		},
	}
	handler := handlers.NewMessageHandler(mock, inv, zerolog.Nop())
	router := setupMessageTestRouter(handler, "alice")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/messages/msg_1/read", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
	if len(inv.invalidated) != 0 {
		t.Errorf("failed mark-read must not invalidate, got %v", inv.invalidated)
	}
}
