package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"vaultapi/internal/model"
	"vaultapi/internal/repository"
)

var (
	ErrFieldsRequired    = errors.New("all fields are required")
	ErrAlreadySubscribed = errors.New("email already subscribed")
)

// OutreachService covers the unauthenticated marketing surfaces: the contact
// form and the newsletter signup. Unrelated to the vault core.
type OutreachService interface {
	SubmitContact(ctx context.Context, name, email, subject, message string) error
	Subscribe(ctx context.Context, email string) error
}

type outreachService struct {
	repo repository.OutreachRepository
}

// NewOutreachService constructs an OutreachService.
func NewOutreachService(repo repository.OutreachRepository) OutreachService {
	return &outreachService{repo: repo}
}

func (s *outreachService) SubmitContact(ctx context.Context, name, email, subject, message string) error {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" ||
		strings.TrimSpace(subject) == "" || strings.TrimSpace(message) == "" {
		return ErrFieldsRequired
	}
	msg := &model.ContactMessage{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		Email:     model.NormalizeEmail(email),
		Subject:   strings.TrimSpace(subject),
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.CreateContact(ctx, msg); err != nil {
		return fmt.Errorf("store contact message: %w", err)
	}
	return nil
}

func (s *outreachService) Subscribe(ctx context.Context, email string) error {
	email = model.NormalizeEmail(email)
	if email == "" {
		return ErrEmailRequired
	}
	if err := s.repo.CreateSubscriber(ctx, email); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrAlreadySubscribed
		}
		return fmt.Errorf("store subscriber: %w", err)
	}
	return nil
}
