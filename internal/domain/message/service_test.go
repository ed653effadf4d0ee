package message_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"creative-hub/services/messaging-api/internal/domain/job"
	"creative-hub/services/messaging-api/internal/domain/message"
	"creative-hub/services/messaging-api/internal/domain/profile"
	"creative-hub/services/messaging-api/internal/utils/platformerrors"
)

type mockMessageRepo struct {
	CreateFunc         func(ctx context.Context, m *message.Message) error
	FindByPublicIDFunc func(ctx context.Context, publicID string) (*message.Message, error)
	ListBetweenFunc    func(ctx context.Context, userID, otherID string) ([]*message.Message, error)
	ListForUserFunc    func(ctx context.Context, userID string) ([]*message.Message, error)
	MarkThreadReadFunc func(ctx context.Context, userID, otherID string) (int64, error)
	MarkReadFunc       func(ctx context.Context, publicID string) error
	DeleteFunc         func(ctx context.Context, publicID string) error
	FirstJobRefFunc    func(ctx context.Context, userID, otherID string) (*message.JobContextRef, error)
}

func (m *mockMessageRepo) Create(ctx context.Context, msg *message.Message) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, msg)
	}
	return nil
}

func (m *mockMessageRepo) FindByPublicID(ctx context.Context, publicID string) (*message.Message, error) {
	if m.FindByPublicIDFunc != nil {
		return m.FindByPublicIDFunc(ctx, publicID)
	}
	return nil, nil
}

func (m *mockMessageRepo) ListBetween(ctx context.Context, userID, otherID string) ([]*message.Message, error) {
	if m.ListBetweenFunc != nil {
		return m.ListBetweenFunc(ctx, userID, otherID)
	}
	return nil, nil
}

func (m *mockMessageRepo) ListForUser(ctx context.Context, userID string) ([]*message.Message, error) {
	if m.ListForUserFunc != nil {
		return m.ListForUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockMessageRepo) MarkThreadRead(ctx context.Context, userID, otherID string) (int64, error) {
	if m.MarkThreadReadFunc != nil {
		return m.MarkThreadReadFunc(ctx, userID, otherID)
	}
	return 0, nil
}

func (m *mockMessageRepo) MarkRead(ctx context.Context, publicID string) error {
	if m.MarkReadFunc != nil {
		return m.MarkReadFunc(ctx, publicID)
	}
	return nil
}

func (m *mockMessageRepo) Delete(ctx context.Context, publicID string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, publicID)
	}
	return nil
}

func (m *mockMessageRepo) FirstJobRef(ctx context.Context, userID, otherID string) (*message.JobContextRef, error) {
	if m.FirstJobRefFunc != nil {
		return m.FirstJobRefFunc(ctx, userID, otherID)
	}
	return nil, nil
}

type mockProfileRepo struct {
	FindByIDFunc  func(ctx context.Context, id string) (*profile.Summary, error)
	FindByIDsFunc func(ctx context.Context, ids []string) (map[string]*profile.Summary, error)
	SearchFunc    func(ctx context.Context, selfID, query string, limit int) ([]*profile.Summary, error)
}

func (m *mockProfileRepo) FindByID(ctx context.Context, id string) (*profile.Summary, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return &profile.Summary{ID: id}, nil
}

func (m *mockProfileRepo) FindByIDs(ctx context.Context, ids []string) (map[string]*profile.Summary, error) {
	if m.FindByIDsFunc != nil {
		return m.FindByIDsFunc(ctx, ids)
	}
	out := make(map[string]*profile.Summary, len(ids))
	for _, id := range ids {
		out[id] = &profile.Summary{ID: id}
	}
	return out, nil
}

func (m *mockProfileRepo) Search(ctx context.Context, selfID, query string, limit int) ([]*profile.Summary, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, selfID, query, limit)
	}
	return nil, nil
}

type mockJobRepo struct {
	FindContextFunc func(ctx context.Context, jobID string) (*job.Context, error)
}

func (m *mockJobRepo) FindContext(ctx context.Context, jobID string) (*job.Context, error) {
	if m.FindContextFunc != nil {
		return m.FindContextFunc(ctx, jobID)
	}
	return nil, nil
}

type mockPublisher struct {
	published []*message.Message
}

func (m *mockPublisher) Publish(msg *message.Message) {
	m.published = append(m.published, msg)
}

func newTestService(repo *mockMessageRepo, pub *mockPublisher) message.Service {
	return message.NewService(repo, &mockProfileRepo{}, &mockJobRepo{}, pub, zerolog.Nop())
}

func TestService_Send(t *testing.T) {
	repo := &mockMessageRepo{}
	pub := &mockPublisher{}
	svc := newTestService(repo, pub)

	msg, err := svc.Send(context.Background(), "alice", "bob", "  hello bob  ", nil)
	if err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	if msg.Body != "hello bob" {
		t.Errorf("body not trimmed: %q", msg.Body)
	}
	if msg.SenderID != "alice" || msg.RecipientID != "bob" {
		t.Errorf("wrong parties: %s -> %s", msg.SenderID, msg.RecipientID)
	}
	if msg.Read {
		t.Error("new message must start unread")
	}
	if msg.PublicID == "" {
		t.Error("public id must be assigned")
	}
	if len(pub.published) != 1 || pub.published[0] != msg {
		t.Error("message must be published to the hub")
	}
}

func TestService_Send_Validation(t *testing.T) {
	svc := newTestService(&mockMessageRepo{}, &mockPublisher{})

	tests := []struct {
		name      string
		actor     string
		recipient string
		body      string
		jobCtx    *message.JobContextRef
		wantType  platformerrors.ErrorType
	}{
		{"no actor", "", "bob", "hi", nil, platformerrors.ErrorTypeNotAuthenticated},
		{"empty body", "alice", "bob", "   ", nil, platformerrors.ErrorTypeValidation},
		{"self send", "alice", "alice", "hi", nil, platformerrors.ErrorTypeValidation},
		{"empty recipient", "alice", "", "hi", nil, platformerrors.ErrorTypeValidation},
		{"job context without job id", "alice", "bob", "hi", &message.JobContextRef{}, platformerrors.ErrorTypeValidation},
		{"bad context type", "alice", "bob", "hi", &message.JobContextRef{JobID: "job-1", ContextType: "gig"}, platformerrors.ErrorTypeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Send(context.Background(), tt.actor, tt.recipient, tt.body, tt.jobCtx)
			if err == nil {
				t.Fatal("expected error")
			}
			if !platformerrors.IsType(err, tt.wantType) {
				t.Errorf("got error type %s, want %s", platformerrors.TypeOf(err), tt.wantType)
			}
		})
	}
}

func TestService_Send_DefaultsContextType(t *testing.T) {
	svc := newTestService(&mockMessageRepo{}, &mockPublisher{})

	msg, err := svc.Send(context.Background(), "alice", "bob", "hi", &message.JobContextRef{JobID: "job-1"})
	if err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	if msg.JobContext.ContextType != message.ContextTypeJob {
		t.Errorf("context type not defaulted: %s", msg.JobContext.ContextType)
	}
}

func TestService_MarkMessageRead(t *testing.T) {
	marked := false
	repo := &mockMessageRepo{
		FindByPublicIDFunc: func(ctx context.Context, publicID string) (*message.Message, error) {
			return &message.Message{PublicID: publicID, SenderID: "alice", RecipientID: "bob"}, nil
		},
		MarkReadFunc: func(ctx context.Context, publicID string) error {
			marked = true
			return nil
		},
	}
	svc := newTestService(repo, &mockPublisher{})

	if err := svc.MarkMessageRead(context.Background(), "bob", "msg-1"); err != nil {
		t.Fatalf("recipient mark read failed: %v", err)
	}
	if !marked {
		t.Error("repository MarkRead not called")
	}

	err := svc.MarkMessageRead(context.Background(), "alice", "msg-1")
	if !platformerrors.IsType(err, platformerrors.ErrorTypeForbidden) {
		t.Errorf("sender marking read: got %v, want FORBIDDEN", err)
	}
}

func TestService_MarkMessageRead_AlreadyRead(t *testing.T) {
	repo := &mockMessageRepo{
		FindByPublicIDFunc: func(ctx context.Context, publicID string) (*message.Message, error) {
			return &message.Message{PublicID: publicID, SenderID: "alice", RecipientID: "bob", Read: true}, nil
		},
		MarkReadFunc: func(ctx context.Context, publicID string) error {
			t.Error("MarkRead must not be called for an already-read message")
			return nil
		},
	}
	svc := newTestService(repo, &mockPublisher{})

	if err := svc.MarkMessageRead(context.Background(), "bob", "msg-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestService_Delete(t *testing.T) {
	repo := &mockMessageRepo{
		FindByPublicIDFunc: func(ctx context.Context, publicID string) (*message.Message, error) {
			return &message.Message{PublicID: publicID, SenderID: "alice", RecipientID: "bob"}, nil
		},
	}
	svc := newTestService(repo, &mockPublisher{})

	if err := svc.Delete(context.Background(), "alice", "msg-1"); err != nil {
		t.Fatalf("sender delete failed: %v", err)
	}

	err := svc.Delete(context.Background(), "bob", "msg-1")
	if !platformerrors.IsType(err, platformerrors.ErrorTypeForbidden) {
		t.Errorf("recipient delete: got %v, want FORBIDDEN", err)
	}
}

func TestService_JobContextFor(t *testing.T) {
	repo := &mockMessageRepo{
		FirstJobRefFunc: func(ctx context.Context, userID, otherID string) (*message.JobContextRef, error) {
			return &message.JobContextRef{JobID: "job-9", ContextType: message.ContextTypeJob}, nil
		},
	}
	jobs := &mockJobRepo{
		FindContextFunc: func(ctx context.Context, jobID string) (*job.Context, error) {
			return &job.Context{ID: jobID, Title: "Wedding shoot"}, nil
		},
	}
	svc := message.NewService(repo, &mockProfileRepo{}, jobs, &mockPublisher{}, zerolog.Nop())

	got, err := svc.JobContextFor(context.Background(), "alice", "bob")
	if err != nil {
		t.Fatalf("JobContextFor returned error: %v", err)
	}
	if got == nil || got.ID != "job-9" {
		t.Errorf("got %+v, want job-9", got)
	}
}

func TestService_JobContextFor_NoReference(t *testing.T) {
	svc := newTestService(&mockMessageRepo{}, &mockPublisher{})

	got, err := svc.JobContextFor(context.Background(), "alice", "bob")
	if err != nil {
		t.Fatalf("JobContextFor returned error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil context, got %+v", got)
	}
}
