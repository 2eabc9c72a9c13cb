package service

import (
	"context"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/repository"
)

// ModerationService defines the admin-only operations over stored messages.
type ModerationService interface {
	// List returns all contact messages, newest first.
	List(ctx context.Context) ([]*model.ContactMessage, error)

	// Update applies the non-nil read/replied flags to the message with the
	// given id and returns the updated record. Returns repository.ErrNotFound
	// if the id is unknown.
	Update(ctx context.Context, id string, upd model.MessageUpdate) (*model.ContactMessage, error)
}

// moderationServiceImpl is the production implementation of ModerationService.
type moderationServiceImpl struct {
	repo repository.MessageRepository
}

// NewModerationService creates a ModerationService backed by the given repository.
func NewModerationService(repo repository.MessageRepository) ModerationService {
	return &moderationServiceImpl{repo: repo}
}

func (s *moderationServiceImpl) List(ctx context.Context) ([]*model.ContactMessage, error) {
	return s.repo.List(ctx)
}

func (s *moderationServiceImpl) Update(ctx context.Context, id string, upd model.MessageUpdate) (*model.ContactMessage, error) {
	return s.repo.UpdateFlags(ctx, id, upd)
}
