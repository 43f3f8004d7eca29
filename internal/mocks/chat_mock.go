package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/supporthub/chat-routing-service/internal/domain/models"
)

// MockChatService is a mock implementation of chat.Service.
type MockChatService struct {
	mock.Mock
}

// CreateSession creates a queued session or reports busy.
func (m *MockChatService) CreateSession(ctx context.Context) (*models.ChatSession, bool, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.ChatSession), args.Bool(1), args.Error(2)
}

// Poll refreshes a session's liveness clock and returns its current state.
func (m *MockChatService) Poll(ctx context.Context, sessionID uuid.UUID) (*models.ChatSession, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChatSession), args.Error(1)
}
