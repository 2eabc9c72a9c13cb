package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/portfolio/backend/internal/mailer"
	"github.com/portfolio/backend/internal/metrics"
	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/repository"
)

// notifyTimeout bounds the background notification attempt so a slow mail
// transport cannot pin goroutines indefinitely.
const notifyTimeout = 10 * time.Second

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	repo     repository.MessageRepository
	notifier Notifier
}

// NewContactService creates a ContactService backed by the given repository
// and notifier.
func NewContactService(repo repository.MessageRepository, notifier Notifier) ContactService {
	return &contactServiceImpl{repo: repo, notifier: notifier}
}

// Submit validates the payload, persists a normalized ContactMessage and then
// fires the notification in the background. Notification failures never change
// the outcome: the message is already stored by the time delivery is attempted.
func (s *contactServiceImpl) Submit(ctx context.Context, in SubmitInput) error {
	if violations := ValidateSubmission(in); len(violations) > 0 {
		return &ValidationError{Message: violations[0]}
	}

	msg := &model.ContactMessage{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Subject:   strings.TrimSpace(in.Subject),
		Message:   strings.TrimSpace(in.Message),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Save(ctx, msg); err != nil {
		return fmt.Errorf("save contact message: %w", err)
	}
	metrics.RecordContactSubmission()

	go s.notify(msg)

	return nil
}

// notify attempts the best-effort notification for a stored message. The
// outcome is logged and counted, never propagated.
func (s *contactServiceImpl) notify(msg *model.ContactMessage) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	err := s.notifier.Notify(ctx, msg)
	switch {
	case errors.Is(err, mailer.ErrNotConfigured):
		slog.Debug("notification skipped: mailer not configured", "message_id", msg.ID)
	case err != nil:
		slog.Warn("notification failed (message still saved)", "message_id", msg.ID, "error", err)
		metrics.RecordNotification(false)
	default:
		slog.Info("notification sent", "message_id", msg.ID)
		metrics.RecordNotification(true)
	}
}
