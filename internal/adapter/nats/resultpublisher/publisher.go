package resultpublisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"gitlab.com/llmeet.net/internal/core/ports/primary"
	"gitlab.com/llmeet.net/internal/core/ports/secondary"
	"gitlab.com/llmeet.net/internal/domain"
)

const DefaultSubject = "submission.result"

var (
	_ secondary.ResultPublisher = (*Publisher)(nil)
	_ secondary.ResultPublisher = Noop{}
)

// Publisher emits one JSON message per judged submission.
type Publisher struct {
	nc      *nats.Conn
	subject string
	logger  primary.Logger
}

func NewPublisher(nc *nats.Conn, subject string, logger primary.Logger) *Publisher {
	if subject == "" {
		subject = DefaultSubject
	}
	return &Publisher{
		nc:      nc,
		subject: subject,
		logger:  logger,
	}
}

// Connect dials NATS with reconnect handling that reports through logger.
func Connect(url string, logger primary.Logger) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name("llmeet"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(5),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("Disconnected from NATS", "error", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", "url", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(*nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}
	return nc, nil
}

func (p *Publisher) Publish(ctx context.Context, event *domain.SubmissionEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal submission event: %w", err)
	}
	if err := p.nc.Publish(p.subject, data); err != nil {
		p.logger.Error("Failed to publish submission event", "subject", p.subject, "error", err)
		return fmt.Errorf("failed to publish submission event: %w", err)
	}
	p.logger.Debug("Published submission event", "subject", p.subject, "submissionId", event.Record.ID)
	return nil
}

// Noop is used when no NATS server is configured.
type Noop struct{}

func (Noop) Publish(context.Context, *domain.SubmissionEvent) error {
	return nil
}
