// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/supporthub/chat-routing-service/internal/domain/models"
)

// MockStore is a mock implementation of sessionstore.Store.
type MockStore struct {
	mock.Mock
}

// Add inserts a new session.
func (m *MockStore) Add(ctx context.Context, session *models.ChatSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

// Get fetches a session by id.
func (m *MockStore) Get(ctx context.Context, id uuid.UUID) (*models.ChatSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChatSession), args.Error(1)
}

// Update upserts a session by id.
func (m *MockStore) Update(ctx context.Context, session *models.ChatSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

// GetAll returns a snapshot of all sessions.
func (m *MockStore) GetAll(ctx context.Context) ([]*models.ChatSession, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ChatSession), args.Error(1)
}

// Ping checks the store connection.
func (m *MockStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Close releases the store's resources.
func (m *MockStore) Close(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
