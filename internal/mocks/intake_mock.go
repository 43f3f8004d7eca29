package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockPublisher is a mock implementation of intake.Publisher.
type MockPublisher struct {
	mock.Mock
}

// Publish enqueues a session id for dispatching.
func (m *MockPublisher) Publish(ctx context.Context, sessionID uuid.UUID) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

// Close releases the publisher's resources.
func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockSource is a mock implementation of intake.Source.
type MockSource struct {
	mock.Mock
}

// TryPop pops one pending session id without blocking.
func (m *MockSource) TryPop() (uuid.UUID, bool) {
	args := m.Called()
	return args.Get(0).(uuid.UUID), args.Bool(1)
}

// Close releases the source's resources.
func (m *MockSource) Close() error {
	args := m.Called()
	return args.Error(0)
}
