// Package events publishes run-completed notifications over NATS when
// configured. Publishing is strictly best-effort: no failure here may stop a
// run.
package events

import (
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"git.home.luguber.info/inful/docgen/internal/config"
	"git.home.luguber.info/inful/docgen/internal/errors"
	"git.home.luguber.info/inful/docgen/internal/history"
	"git.home.luguber.info/inful/docgen/internal/logfields"
)

// Connection retry bounds. Attempts are spaced linearly.
const maxConnectAttempts = 3

var connectInterval = 2 * time.Second

// Publisher sends run-completed events to a NATS subject.
type Publisher struct {
	conn    *nats.Conn
	subject string
}

// connect is swapped in tests.
var connect = nats.Connect

// NewPublisher connects to NATS with a bounded number of attempts.
// Returns nil without error when events are not configured.
func NewPublisher(cfg config.EventsConfig) (*Publisher, error) {
	if !cfg.Enabled() {
		return nil, nil
	}

	var conn *nats.Conn
	var err error
	for attempt := 1; attempt <= maxConnectAttempts; attempt++ {
		conn, err = connect(cfg.NATSURL)
		if err == nil {
			break
		}
		slog.Warn("NATS connection failed",
			slog.Int("attempt", attempt),
			logfields.Error(err))
		if attempt < maxConnectAttempts {
			time.Sleep(time.Duration(attempt) * connectInterval)
		}
	}
	if err != nil {
		return nil, errors.WrapWarning(err, errors.CategoryEvents, "failed to connect to NATS").
			WithContext("url", cfg.NATSURL)
	}

	slog.Info("Connected to NATS", slog.String("url", cfg.NATSURL), logfields.Subject(cfg.Subject))
	return &Publisher{conn: conn, subject: cfg.Subject}, nil
}

// PublishRunCompleted sends the run record as JSON. Failures are warnings.
func (p *Publisher) PublishRunCompleted(run *history.Run) error {
	if p == nil {
		return nil
	}

	payload, err := run.ToJSON()
	if err != nil {
		return errors.WrapWarning(err, errors.CategoryEvents, "failed to encode run event")
	}
	if err := p.conn.Publish(p.subject, payload); err != nil {
		return errors.WrapWarning(err, errors.CategoryEvents, "failed to publish run event").
			WithContext("subject", p.subject)
	}

	slog.Debug("Published run event", logfields.RunID(run.ID), logfields.Subject(p.subject))
	return nil
}

// Close drains the connection.
func (p *Publisher) Close() {
	if p == nil || p.conn == nil {
		return
	}
	p.conn.Close()
}
