package repository

import (
	"context"

	"vaultapi/internal/model"
)

// OutreachRepository persists the unauthenticated marketing surfaces: contact
// form submissions and newsletter subscribers.
type OutreachRepository interface {
	// CreateContact stores one contact form submission.
	CreateContact(ctx context.Context, msg *model.ContactMessage) error

	// CreateSubscriber stores a newsletter subscriber. A duplicate email is
	// returned as ErrDuplicate.
	CreateSubscriber(ctx context.Context, email string) error
}
