package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockOutreachService struct {
	mock.Mock
}

func (m *MockOutreachService) SubmitContact(ctx context.Context, name, email, subject, message string) error {
	args := m.Called(ctx, name, email, subject, message)
	return args.Error(0)
}

func (m *MockOutreachService) Subscribe(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}
