package coordinator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supporthub/chat-routing-service/internal/domain/models"
)

// TestRoutingFlow walks one session through the whole pipeline: intake,
// dispatch to a personal queue, promotion, missed heartbeats, reclamation.
func TestRoutingFlow_QueuedToAssignedToReaped(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	session := f.newQueuedSession(t)
	require.NoError(t, f.queue.Publish(ctx, session.ID))

	require.NoError(t, f.coord.dispatchTick(ctx))
	require.NoError(t, f.coord.drainTick(ctx))

	junior := f.agent("Junior")
	stored, err := f.store.Get(ctx, session.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusAssigned, stored.Status)
	require.True(t, junior.HasActiveChat(session.ID))

	// The client stops polling; the reaper reclaims the slot.
	f.clock.Advance(201 * time.Second)
	require.NoError(t, f.coord.reapTick(ctx))

	stored, err = f.store.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInactive, stored.Status)
	assert.False(t, junior.HasActiveChat(session.ID))

	// The freed slot is usable again straight away.
	next := f.newQueuedSession(t)
	require.NoError(t, f.queue.Publish(ctx, next.ID))
	require.NoError(t, f.coord.dispatchTick(ctx))
	require.NoError(t, f.coord.drainTick(ctx))
	assert.True(t, junior.HasActiveChat(next.ID))
}

// TestRoutingFlow_ShiftEndDisconnects drives a handover hour: the day agent
// loses their shift and their chats, the night agent takes new work.
func TestRoutingFlow_ShiftEndDisconnects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	session := f.newQueuedSession(t)
	require.NoError(t, f.queue.Publish(ctx, session.ID))
	require.NoError(t, f.coord.dispatchTick(ctx))
	require.NoError(t, f.coord.drainTick(ctx))

	f.clock.SetHour(21)
	require.NoError(t, f.coord.shiftTick(ctx))

	stored, err := f.store.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDisconnected, stored.Status)

	next := f.newQueuedSession(t)
	require.NoError(t, f.queue.Publish(ctx, next.ID))
	require.NoError(t, f.coord.dispatchTick(ctx))
	require.NoError(t, f.coord.drainTick(ctx))

	night := f.agent("NightMid")
	assert.True(t, night.HasActiveChat(next.ID))
}
