package memory_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supporthub/chat-routing-service/internal/infrastructure/intake/memory"
)

func TestQueue_PublishAndTryPop(t *testing.T) {
	q := memory.NewQueue(4)
	ctx := context.Background()
	first := uuid.New()
	second := uuid.New()

	require.NoError(t, q.Publish(ctx, first))
	require.NoError(t, q.Publish(ctx, second))
	assert.Equal(t, 2, q.Pending())

	got, ok := q.TryPop()
	require.True(t, ok)
	assert.Equal(t, first, got)

	got, ok = q.TryPop()
	require.True(t, ok)
	assert.Equal(t, second, got)

	_, ok = q.TryPop()
	assert.False(t, ok)
}

func TestQueue_PublishFailsWhenFull(t *testing.T) {
	q := memory.NewQueue(1)
	ctx := context.Background()

	require.NoError(t, q.Publish(ctx, uuid.New()))
	err := q.Publish(ctx, uuid.New())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "intake queue full")
}

func TestQueue_DefaultBufferSize(t *testing.T) {
	q := memory.NewQueue(0)
	ctx := context.Background()

	for i := 0; i < memory.DefaultBufferSize; i++ {
		require.NoError(t, q.Publish(ctx, uuid.New()))
	}
	assert.Error(t, q.Publish(ctx, uuid.New()))
}
