package service

import (
	"context"

	"github.com/portfolio/backend/internal/model"
)

// ContactService defines the business logic for contact form submissions.
type ContactService interface {
	// Submit validates and stores a new contact message, then attempts a
	// best-effort notification. A *ValidationError is returned for rejected
	// payloads; any other error indicates a storage failure.
	Submit(ctx context.Context, in SubmitInput) error
}

// Notifier delivers a notification about a stored submission. Failures are
// non-fatal to the submission itself.
type Notifier interface {
	Notify(ctx context.Context, msg *model.ContactMessage) error
}
