package brief

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"creative-hub/services/messaging-api/internal/domain/message"
	"creative-hub/services/messaging-api/internal/domain/notification"
	"creative-hub/services/messaging-api/internal/domain/profile"
	"creative-hub/services/messaging-api/internal/infrastructure/metrics"
	"creative-hub/services/messaging-api/internal/utils/idgen"
	"creative-hub/services/messaging-api/internal/utils/platformerrors"
)

// SendInput carries the fields of a new brief.
type SendInput struct {
	RecipientID string
	Title       string
	Description string
	Budget      *decimal.Decimal
	Deadline    *time.Time
}

// Service exposes the brief proposal lifecycle.
type Service interface {
	Send(ctx context.Context, actorID string, in SendInput) (*Brief, error)
	Accept(ctx context.Context, actorID, briefID string, note *string) (*Brief, error)
	Decline(ctx context.Context, actorID, briefID string, note *string) (*Brief, error)
	Withdraw(ctx context.Context, actorID, briefID string) (*Brief, error)
	Get(ctx context.Context, actorID, briefID string) (*Brief, error)
	ListConversation(ctx context.Context, actorID, otherID string) ([]*Brief, error)
}

// DefaultService implements Service. Transition side effects (thread
// messages and notifications) are best effort: a failed side effect is
// logged, never rolled into the caller's error, because the state change
// itself already committed.
type DefaultService struct {
	repo          Repository
	profiles      profile.Repository
	messages      message.Service
	notifications notification.Service
	log           zerolog.Logger
}

// NewService creates a brief service.
func NewService(repo Repository, profiles profile.Repository, messages message.Service, notifications notification.Service, log zerolog.Logger) *DefaultService {
	return &DefaultService{
		repo:          repo,
		profiles:      profiles,
		messages:      messages,
		notifications: notifications,
		log:           log.With().Str("component", "brief-service").Logger(),
	}
}

// Send validates and stores a new pending brief, then announces it in the
// thread and notifies the recipient.
func (s *DefaultService) Send(ctx context.Context, actorID string, in SendInput) (*Brief, error) {
	if actorID == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotAuthenticated,
			"no authenticated actor", nil, "brief-send-no-actor")
	}

	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	switch {
	case in.Title == "":
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"brief title must not be empty", nil, "brief-send-empty-title")
	case in.Description == "":
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"brief description must not be empty", nil, "brief-send-empty-description")
	case in.RecipientID == "" || in.RecipientID == actorID:
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"recipient must be another user", nil, "brief-send-bad-recipient")
	case in.Budget != nil && in.Budget.IsNegative():
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"budget must not be negative", nil, "brief-send-negative-budget")
	}

	// A zero budget means "not specified"; store it as absent.
	if in.Budget != nil && in.Budget.IsZero() {
		in.Budget = nil
	}

	publicID, err := idgen.GenerateSecureID("brf", 24)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
			"failed to generate brief id", err, "brief-send-idgen")
	}

	b := NewBrief(publicID, actorID, in.RecipientID, in.Title, in.Description, in.Budget, in.Deadline)
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	metrics.RecordBriefTransition("created")

	senderName := s.displayName(ctx, actorID)
	s.announce(ctx, actorID, b.RecipientID, fmt.Sprintf("%s sent you a project brief: %s", senderName, b.Title))
	s.notify(ctx, b.RecipientID, notification.TypeBriefReceived, "New project brief",
		fmt.Sprintf("%s sent you a brief: %s", senderName, b.Title), b)

	return b, nil
}

// Accept moves a pending brief to accepted. Only the recipient may accept.
func (s *DefaultService) Accept(ctx context.Context, actorID, briefID string, note *string) (*Brief, error) {
	return s.respond(ctx, actorID, briefID, StatusAccepted, note)
}

// Decline moves a pending brief to declined. Only the recipient may decline.
func (s *DefaultService) Decline(ctx context.Context, actorID, briefID string, note *string) (*Brief, error) {
	return s.respond(ctx, actorID, briefID, StatusDeclined, note)
}

// Withdraw moves a pending brief to withdrawn. Only the sender may withdraw,
// and only while the recipient has not yet responded.
func (s *DefaultService) Withdraw(ctx context.Context, actorID, briefID string) (*Brief, error) {
	ok, err := s.repo.Transition(ctx, briefID, TransitionUpdate{
		ToStatus:    StatusWithdrawn,
		ActorColumn: ActorColumnSender,
		ActorID:     actorID,
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.explainRejected(ctx, actorID, briefID, ActorColumnSender)
	}

	metrics.RecordBriefTransition(string(StatusWithdrawn))
	return s.repo.FindByPublicID(ctx, briefID)
}

// Get returns one brief. Only its two parties may see it.
func (s *DefaultService) Get(ctx context.Context, actorID, briefID string) (*Brief, error) {
	b, err := s.repo.FindByPublicID(ctx, briefID)
	if err != nil {
		return nil, err
	}
	if b.SenderID != actorID && b.RecipientID != actorID {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
			"brief not found", nil, "brief-get-outsider")
	}
	s.attachProfiles(ctx, []*Brief{b})
	return b, nil
}

// ListConversation returns all briefs between actor and other, newest first.
func (s *DefaultService) ListConversation(ctx context.Context, actorID, otherID string) ([]*Brief, error) {
	briefs, err := s.repo.ListBetween(ctx, actorID, otherID)
	if err != nil {
		return nil, err
	}
	s.attachProfiles(ctx, briefs)
	return briefs, nil
}

func (s *DefaultService) respond(ctx context.Context, actorID, briefID string, to Status, note *string) (*Brief, error) {
	if note != nil {
		trimmed := strings.TrimSpace(*note)
		if trimmed == "" {
			note = nil
		} else {
			note = &trimmed
		}
	}

	ok, err := s.repo.Transition(ctx, briefID, TransitionUpdate{
		ToStatus:     to,
		ActorColumn:  ActorColumnRecipient,
		ActorID:      actorID,
		ResponseNote: note,
		SetResponded: true,
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.explainRejected(ctx, actorID, briefID, ActorColumnRecipient)
	}

	metrics.RecordBriefTransition(string(to))

	b, err := s.repo.FindByPublicID(ctx, briefID)
	if err != nil {
		return nil, err
	}

	responderName := s.displayName(ctx, actorID)
	verb := "accepted"
	notifType := notification.TypeBriefAccepted
	notifTitle := "Brief accepted"
	if to == StatusDeclined {
		verb = "declined"
		notifType = notification.TypeBriefDeclined
		notifTitle = "Brief declined"
	}
	body := fmt.Sprintf("%s %s your brief: %s", responderName, verb, b.Title)
	if note != nil {
		body = fmt.Sprintf("%s\n\n%s", body, *note)
	}
	s.announce(ctx, actorID, b.SenderID, body)
	s.notify(ctx, b.SenderID, notifType, notifTitle,
		fmt.Sprintf("%s %s your brief: %s", responderName, verb, b.Title), b)

	return b, nil
}

// explainRejected turns a zero-row conditional update into the precise
// error: the brief may not exist, the actor may be the wrong party, or the
// brief already left pending (including a lost race with the other party).
func (s *DefaultService) explainRejected(ctx context.Context, actorID, briefID, actorColumn string) error {
	b, err := s.repo.FindByPublicID(ctx, briefID)
	if err != nil {
		return err
	}

	expected := b.RecipientID
	if actorColumn == ActorColumnSender {
		expected = b.SenderID
	}
	if expected != actorID {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeForbidden,
			"not a party to this brief", nil, "brief-transition-wrong-actor")
	}
	return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInvalidState,
		fmt.Sprintf("brief is already %s", b.Status), nil, "brief-transition-settled")
}

func (s *DefaultService) announce(ctx context.Context, fromID, toID, body string) {
	if _, err := s.messages.Send(ctx, fromID, toID, body, nil); err != nil {
		s.log.Warn().Err(err).Str("recipient_id", toID).Msg("failed to post brief announcement message")
	}
}

func (s *DefaultService) notify(ctx context.Context, userID string, typ notification.Type, title, msg string, b *Brief) {
	data := map[string]string{
		"brief_id":  b.PublicID,
		"sender_id": b.SenderID,
	}
	link := "/messages?with=" + b.SenderID
	if userID == b.SenderID {
		link = "/messages?with=" + b.RecipientID
	}
	if _, err := s.notifications.Notify(ctx, userID, typ, title, msg, data, link); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Str("type", string(typ)).Msg("failed to create brief notification")
	}
}

func (s *DefaultService) attachProfiles(ctx context.Context, briefs []*Brief) {
	if len(briefs) == 0 {
		return
	}

	seen := make(map[string]struct{}, 2)
	ids := make([]string, 0, 2)
	for _, b := range briefs {
		for _, id := range []string{b.SenderID, b.RecipientID} {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}

	summaries, err := s.profiles.FindByIDs(ctx, ids)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to attach profiles to briefs")
		return
	}
	for _, b := range briefs {
		b.Sender = summaries[b.SenderID]
		b.Recipient = summaries[b.RecipientID]
	}
}

func (s *DefaultService) displayName(ctx context.Context, userID string) string {
	p, err := s.profiles.FindByID(ctx, userID)
	if err != nil || p == nil || p.DisplayName == "" {
		return "Someone"
	}
	return p.DisplayName
}
