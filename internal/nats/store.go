package nats

import (
	"context"
	"fmt"
	"time"

	"github.com/gosimple/slug"
	"github.com/nats-io/nats.go/jetstream"
)

const (
	// StreamName is the JetStream stream holding queued invites.
	StreamName = "onboard_invites"

	subjectRoot = "onboard.invites"
	retention   = 30 * 24 * time.Hour
)

// CompanyToken turns a company name into a subject-safe token.
// "Acme, Inc." becomes "acme-inc"; a name with no usable characters maps to "unnamed".
func CompanyToken(company string) string {
	s := slug.Make(company)
	if s == "" {
		return "unnamed"
	}
	return s
}

// SubjectForCompany returns the subject invites for company are published on.
// Example: "onboard.invites.acme-inc"
func SubjectForCompany(company string) string {
	return fmt.Sprintf("%s.%s", subjectRoot, CompanyToken(company))
}

// SubjectAll matches every company's invites.
func SubjectAll() string {
	return subjectRoot + ".>"
}

// SetupStream creates or updates the invite stream with 30-day retention.
func SetupStream(ctx context.Context, js jetstream.JetStream) (jetstream.Stream, error) {
	return js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:       StreamName,
		Subjects:   []string{SubjectAll()},
		Storage:    jetstream.FileStorage,
		MaxAge:     retention,
		Duplicates: 2 * time.Minute,
	})
}
