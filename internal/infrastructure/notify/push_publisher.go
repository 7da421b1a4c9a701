package notify

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/courtside/league-night/internal/domain/event"
	"github.com/courtside/league-night/internal/platform/logging"
	"github.com/courtside/league-night/internal/platform/resilience"
)

type PushConfig struct {
	WebhookURL string
	AuthToken  string
	Timeout    time.Duration
	Breaker    resilience.CircuitBreakerConfig
}

// PushPublisher forwards domain events to the push-notification webhook so
// players hear about assignments and score submissions without polling. It
// is a dispatcher sink: failures are logged upstream, never surfaced to the
// request that caused the event.
type PushPublisher struct {
	client     *http.Client
	webhookURL string
	authToken  string
	breaker    *resilience.CircuitBreaker
	logger     *logging.Logger
}

func NewPushPublisher(cfg PushConfig, logger *logging.Logger) *PushPublisher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.Breaker)

	return &PushPublisher{
		client:     &http.Client{Timeout: timeout},
		webhookURL: strings.TrimRight(strings.TrimSpace(cfg.WebhookURL), "/"),
		authToken:  strings.TrimSpace(cfg.AuthToken),
		breaker:    resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		logger:     logger,
	}
}

func (p *PushPublisher) Name() string {
	return "push-webhook"
}

type pushEnvelope struct {
	Type    string         `json:"type"`
	NightID string         `json:"night_id"`
	At      time.Time      `json:"at"`
	Payload map[string]any `json:"payload,omitempty"`
}

func (p *PushPublisher) Handle(ctx context.Context, evt event.Event) error {
	if p.webhookURL == "" {
		return nil
	}

	if err := p.breaker.Allow(); err != nil {
		return errors.Wrap(err, "push webhook")
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	body, err := sonic.Marshal(pushEnvelope{
		Type:    string(evt.Type),
		NightID: evt.NightID,
		At:      evt.At,
		Payload: evt.Payload,
	})
	if err != nil {
		return errors.Wrap(err, "marshal push envelope")
	}
	if _, err := buf.Write(body); err != nil {
		return errors.Wrap(err, "buffer push envelope")
	}

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("push.webhook_url", p.webhookURL),
			attribute.String("push.event_type", string(evt.Type)),
			attribute.String("push.night_id", evt.NightID),
		)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.webhookURL, bytes.NewReader(buf.Bytes()))
	if err != nil {
		return errors.Wrap(err, "create push request")
	}
	req.Header.Set("Content-Type", "application/json")
	if p.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+p.authToken)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		p.breaker.RecordFailure()
		return errors.Mark(errors.Wrap(err, "post push event"), ErrTransient)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode/100 != 2 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		if resp.StatusCode >= 500 {
			p.breaker.RecordFailure()
			return errors.Mark(
				errors.Newf("push webhook status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(raw))),
				ErrTransient,
			)
		}
		p.breaker.RecordSuccess()
		return errors.Newf("push webhook rejected event status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	p.breaker.RecordSuccess()
	p.logger.DebugContext(ctx, "push event delivered",
		"event_type", string(evt.Type),
		"night_id", evt.NightID,
	)

	return nil
}

// ErrTransient marks failures the webhook might recover from on its own.
var ErrTransient = errors.New("transient push failure")
