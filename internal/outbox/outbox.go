// Package outbox persists invites collected during signup so a later sender
// can deliver them. It implements signup.InviteQueue on JetStream.
package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/rs/xid"

	"github.com/mark3labs/onboard/internal/logger"
	"github.com/mark3labs/onboard/internal/nats"
	"github.com/mark3labs/onboard/internal/signup"
)

// Entry is one queued invite as stored on the stream.
type Entry struct {
	ID       string      `json:"id"`
	Company  string      `json:"company"`
	Email    string      `json:"email"`
	Role     signup.Role `json:"role"`
	Name     string      `json:"name,omitempty"`
	QueuedAt time.Time   `json:"queued_at"`
}

// Outbox owns the embedded server and the invite stream.
type Outbox struct {
	nats   *nats.Embedded
	stream jetstream.Stream
}

var _ signup.InviteQueue = (*Outbox)(nil)

// Open starts the embedded server under dataDir and prepares the stream.
func Open(ctx context.Context, dataDir string) (*Outbox, error) {
	e, err := nats.Start(dataDir)
	if err != nil {
		return nil, err
	}

	stream, err := nats.SetupStream(ctx, e.JS)
	if err != nil {
		_ = e.Close()
		return nil, fmt.Errorf("setting up invite stream: %w", err)
	}

	return &Outbox{nats: e, stream: stream}, nil
}

// Enqueue publishes one message per invite on the company's subject. Each
// message carries an xid as its dedup ID.
func (o *Outbox) Enqueue(ctx context.Context, company string, invites []signup.Invite) error {
	subject := nats.SubjectForCompany(company)
	now := time.Now().UTC()

	for _, inv := range invites {
		entry := Entry{
			ID:       xid.New().String(),
			Company:  company,
			Email:    inv.Email,
			Role:     inv.Role,
			Name:     inv.Name,
			QueuedAt: now,
		}
		data, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("marshaling invite: %w", err)
		}

		ack, err := o.nats.JS.Publish(ctx, subject, data, jetstream.WithMsgID(entry.ID))
		if err != nil {
			return fmt.Errorf("publishing invite for %s: %w", inv.Email, err)
		}
		logger.Debug("Queued invite %s on %s (seq=%d)", entry.ID, subject, ack.Sequence)
	}

	logger.Info("Queued %d invites for %s", len(invites), company)
	return nil
}

// List returns queued invites in publish order. An empty company lists all.
func (o *Outbox) List(ctx context.Context, company string) ([]Entry, error) {
	filter := nats.SubjectAll()
	if company != "" {
		filter = nats.SubjectForCompany(company)
	}

	consumer, err := o.stream.OrderedConsumer(ctx, jetstream.OrderedConsumerConfig{
		FilterSubjects: []string{filter},
		DeliverPolicy:  jetstream.DeliverAllPolicy,
	})
	if err != nil {
		return nil, fmt.Errorf("creating consumer: %w", err)
	}

	info, err := o.stream.Info(ctx, jetstream.WithSubjectFilter(filter))
	if err != nil {
		return nil, fmt.Errorf("reading stream info: %w", err)
	}
	pending := 0
	for _, n := range info.State.Subjects {
		pending += int(n)
	}

	entries := make([]Entry, 0, pending)
	const batchSize = 256
	for len(entries) < pending {
		msgs, err := consumer.FetchNoWait(batchSize)
		if err != nil {
			break
		}
		got := 0
		for msg := range msgs.Messages() {
			got++
			var e Entry
			if err := json.Unmarshal(msg.Data(), &e); err != nil {
				meta, _ := msg.Metadata()
				if meta != nil {
					logger.Warn("Skipping malformed invite (seq=%d): %v", meta.Sequence.Stream, err)
				}
				pending--
				continue
			}
			entries = append(entries, e)
		}
		if got == 0 {
			break
		}
	}

	return entries, nil
}

// Close shuts the embedded server down.
func (o *Outbox) Close() error {
	return o.nats.Close()
}
