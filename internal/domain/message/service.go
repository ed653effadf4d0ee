package message

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"creative-hub/services/messaging-api/internal/domain/job"
	"creative-hub/services/messaging-api/internal/domain/profile"
	"creative-hub/services/messaging-api/internal/infrastructure/metrics"
	"creative-hub/services/messaging-api/internal/utils/idgen"
	"creative-hub/services/messaging-api/internal/utils/platformerrors"
)

// Publisher receives every stored message for realtime fan-out.
type Publisher interface {
	Publish(m *Message)
}

// Publishers fans each stored message out to several consumers, e.g. the
// realtime hub and the conversation index.
type Publishers []Publisher

func (ps Publishers) Publish(m *Message) {
	for _, p := range ps {
		if p != nil {
			p.Publish(m)
		}
	}
}

// Service defines the message store operations exposed to the rest of the
// service. Every operation takes the acting user explicitly; there is no
// ambient identity.
type Service interface {
	Send(ctx context.Context, actorID, recipientID, body string, jobContext *JobContextRef) (*Message, error)
	ListConversation(ctx context.Context, actorID, otherID string) ([]*Message, error)
	ListForUser(ctx context.Context, actorID string) ([]*Message, error)
	MarkConversationRead(ctx context.Context, actorID, otherID string) (int64, error)
	MarkMessageRead(ctx context.Context, actorID, messageID string) error
	Delete(ctx context.Context, actorID, messageID string) error
	JobContextFor(ctx context.Context, actorID, otherID string) (*job.Context, error)
}

// DefaultService implements Service on top of the message repository.
type DefaultService struct {
	repo      Repository
	profiles  profile.Repository
	jobs      job.Repository
	publisher Publisher
	log       zerolog.Logger
}

// NewService creates a message service.
func NewService(repo Repository, profiles profile.Repository, jobs job.Repository, publisher Publisher, log zerolog.Logger) *DefaultService {
	return &DefaultService{
		repo:      repo,
		profiles:  profiles,
		jobs:      jobs,
		publisher: publisher,
		log:       log.With().Str("component", "message-service").Logger(),
	}
}

// Send validates and persists one message, then hands it to the realtime hub.
func (s *DefaultService) Send(ctx context.Context, actorID, recipientID, body string, jobContext *JobContextRef) (*Message, error) {
	if actorID == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotAuthenticated,
			"no authenticated actor", nil, "msg-send-no-actor")
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"message body must not be empty", nil, "msg-send-empty-body")
	}
	if recipientID == "" || recipientID == actorID {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"recipient must be another user", nil, "msg-send-bad-recipient")
	}
	if jobContext != nil {
		if strings.TrimSpace(jobContext.JobID) == "" {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
				"job context requires a job id", nil, "msg-send-empty-job")
		}
		if jobContext.ContextType == "" {
			jobContext.ContextType = ContextTypeJob
		}
		if !jobContext.ContextType.IsValid() {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
				"unknown job context type", nil, "msg-send-bad-context-type")
		}
	}

	publicID, err := idgen.GenerateSecureID("msg", 24)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
			"failed to generate message id", err, "msg-send-idgen")
	}

	msg := NewMessage(publicID, actorID, recipientID, body, jobContext)
	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, err
	}

	metrics.RecordMessageSent(jobContext != nil)

	if s.publisher != nil {
		s.publisher.Publish(msg)
	}

	return msg, nil
}

// ListConversation returns the thread between actor and other, ascending.
func (s *DefaultService) ListConversation(ctx context.Context, actorID, otherID string) ([]*Message, error) {
	msgs, err := s.repo.ListBetween(ctx, actorID, otherID)
	if err != nil {
		return nil, err
	}
	if err := s.attachProfiles(ctx, msgs); err != nil {
		// Profile decoration is cosmetic; the thread itself is intact.
		s.log.Warn().Err(err).Str("actor_id", actorID).Msg("failed to attach profiles to conversation")
	}
	return msgs, nil
}

// ListForUser returns every message touching the actor, descending. This is
// the aggregator's input.
func (s *DefaultService) ListForUser(ctx context.Context, actorID string) ([]*Message, error) {
	return s.repo.ListForUser(ctx, actorID)
}

// MarkConversationRead flips every unread message from other to actor. The
// write targets only recipient=actor rows, so it is idempotent and safe under
// concurrent re-opens of the same thread.
func (s *DefaultService) MarkConversationRead(ctx context.Context, actorID, otherID string) (int64, error) {
	if actorID == "" {
		return 0, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotAuthenticated,
			"no authenticated actor", nil, "msg-read-no-actor")
	}
	updated, err := s.repo.MarkThreadRead(ctx, actorID, otherID)
	if err != nil {
		return 0, err
	}
	if updated > 0 {
		metrics.RecordMessagesRead(updated)
	}
	return updated, nil
}

// MarkMessageRead flips the read flag on a single message. Only the recipient
// may mark a message read.
func (s *DefaultService) MarkMessageRead(ctx context.Context, actorID, messageID string) error {
	msg, err := s.repo.FindByPublicID(ctx, messageID)
	if err != nil {
		return err
	}
	if msg.RecipientID != actorID {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeForbidden,
			"only the recipient may mark a message read", nil, "msg-read-wrong-actor")
	}
	if msg.Read {
		return nil
	}
	return s.repo.MarkRead(ctx, messageID)
}

// Delete removes a message. Only the sender may delete.
func (s *DefaultService) Delete(ctx context.Context, actorID, messageID string) error {
	msg, err := s.repo.FindByPublicID(ctx, messageID)
	if err != nil {
		return err
	}
	if msg.SenderID != actorID {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeForbidden,
			"only the sender may delete a message", nil, "msg-delete-wrong-actor")
	}
	return s.repo.Delete(ctx, messageID)
}

// JobContextFor resolves the job banner for a thread from the earliest
// job-tagged message, or nil when the thread has no job context.
func (s *DefaultService) JobContextFor(ctx context.Context, actorID, otherID string) (*job.Context, error) {
	ref, err := s.repo.FirstJobRef(ctx, actorID, otherID)
	if err != nil {
		return nil, err
	}
	if ref == nil {
		return nil, nil
	}
	return s.jobs.FindContext(ctx, ref.JobID)
}

func (s *DefaultService) attachProfiles(ctx context.Context, msgs []*Message) error {
	if len(msgs) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, 2)
	ids := make([]string, 0, 2)
	for _, m := range msgs {
		for _, id := range []string{m.SenderID, m.RecipientID} {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}

	summaries, err := s.profiles.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for _, m := range msgs {
		m.Sender = summaries[m.SenderID]
		m.Recipient = summaries[m.RecipientID]
	}
	return nil
}
