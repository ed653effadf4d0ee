package webhook

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"creative-hub/services/messaging-api/internal/domain/retry"
)

// HTTPService implements Service via HTTP POST to the gateway URL.
type HTTPService struct {
	client *resty.Client
	url    string
	policy retry.Policy
	log    zerolog.Logger
}

// NewHTTPService creates a webhook client for the given gateway URL. An
// empty URL disables delivery; callers should check Enabled before queuing
// work for this service.
func NewHTTPService(url, authToken string, log zerolog.Logger) *HTTPService {
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", "creative-hub-messaging-api/1.0")
	if authToken != "" {
		client.SetAuthToken(authToken)
	}

	return &HTTPService{
		client: client,
		url:    url,
		policy: retry.DefaultPolicy(),
		log:    log.With().Str("component", "webhook").Logger(),
	}
}

// Enabled reports whether a gateway URL is configured.
func (s *HTTPService) Enabled() bool {
	return s.url != ""
}

// Deliver posts the event, retrying transient failures with backoff. 4xx
// responses are treated as permanent: the gateway rejected the payload and
// retrying the same bytes cannot succeed.
func (s *HTTPService) Deliver(ctx context.Context, event *Event) error {
	if !s.Enabled() {
		return nil
	}

	var permanent error
	err := s.policy.Execute(ctx, func(ctx context.Context, attempt int) error {
		resp, err := s.client.R().
			SetContext(ctx).
			SetHeader("X-Notification-Event", event.Type).
			SetBody(event).
			Post(s.url)
		if err != nil {
			s.log.Warn().Err(err).Str("notification_id", event.ID).Int("attempt", attempt).
				Msg("webhook delivery failed")
			return err
		}

		code := resp.StatusCode()
		switch {
		case code >= 200 && code < 300:
			s.log.Debug().Str("notification_id", event.ID).Int("status", code).
				Msg("webhook delivered")
			return nil
		case code >= 400 && code < 500:
			// Returning nil stops the retry loop; the rejection surfaces
			// after Execute.
			permanent = &PermanentError{StatusCode: code}
			return nil
		default:
			s.log.Warn().Int("status", code).Str("notification_id", event.ID).Int("attempt", attempt).
				Msg("webhook delivery failed")
			return fmt.Errorf("gateway returned status %d", code)
		}
	})
	if err != nil {
		return err
	}
	return permanent
}

// PermanentError marks a delivery failure that retrying cannot fix.
type PermanentError struct {
	StatusCode int
}

func (e *PermanentError) Error() string {
	return fmt.Sprintf("gateway rejected event with status %d", e.StatusCode)
}
