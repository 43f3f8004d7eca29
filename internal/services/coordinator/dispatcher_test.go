package coordinator

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supporthub/chat-routing-service/internal/domain/models"
)

func TestDispatchTick_RoutesToLeastSeniorAgent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	session := f.newQueuedSession(t)
	require.NoError(t, f.queue.Publish(ctx, session.ID))

	require.NoError(t, f.coord.dispatchTick(ctx))

	junior := f.agent("Junior")
	assert.Equal(t, 1, junior.PendingLen())
	got, ok := junior.TryDequeuePending()
	require.True(t, ok)
	assert.Equal(t, session.ID, got)

	// Dispatching queues only; the session status is untouched.
	stored, err := f.store.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusQueued, stored.Status)
}

func TestDispatchTick_EmptySourceIsNoop(t *testing.T) {
	f := newFixture(t)

	assert.NoError(t, f.coord.dispatchTick(context.Background()))
}

func TestDispatchTick_OnePerTick(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		require.NoError(t, f.queue.Publish(ctx, f.newQueuedSession(t).ID))
	}

	require.NoError(t, f.coord.dispatchTick(ctx))

	assert.Equal(t, 2, f.queue.Pending())
}

func TestDispatchTick_DiscardsUnknownID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.queue.Publish(ctx, uuid.New()))

	require.NoError(t, f.coord.dispatchTick(ctx))

	assert.Equal(t, 0, f.agent("Junior").PendingLen())
}

func TestDispatchTick_DiscardsNonQueuedSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	session := f.newQueuedSession(t)
	session.Status = models.StatusInactive
	require.NoError(t, f.store.Update(ctx, session))
	require.NoError(t, f.queue.Publish(ctx, session.ID))

	require.NoError(t, f.coord.dispatchTick(ctx))

	assert.Equal(t, 0, f.agent("Junior").PendingLen())
}

func TestDispatchTick_DropsWhenNoAgentMatches(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	// Outside office hours the idle overflow junior is not considered.
	f.clock.SetHour(19)
	for _, agent := range f.roster.RegularAgents() {
		agent.SetOnShift(false)
	}
	session := f.newQueuedSession(t)
	require.NoError(t, f.queue.Publish(ctx, session.ID))

	require.NoError(t, f.coord.dispatchTick(ctx))

	// The id is gone from the intake and queued nowhere: no re-queue.
	assert.Equal(t, 0, f.queue.Pending())
	for _, agent := range f.roster.AllAgents() {
		assert.Equal(t, 0, agent.PendingLen(), "agent %s", agent.Name)
	}
}

func TestDispatchTick_DropsWhenPersonalQueueFull(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	junior := f.agent("Junior")
	for i := 0; i < models.DefaultPendingQueueSize; i++ {
		require.True(t, junior.EnqueuePending(uuid.New()))
	}
	// Keep the matcher pointed at the saturated junior.
	f.agent("Senior").SetOnShift(false)
	f.agent("NightMid").SetOnShift(false)
	f.clock.SetHour(8) // Before office hours, so overflow stays out.

	session := f.newQueuedSession(t)
	require.NoError(t, f.queue.Publish(ctx, session.ID))

	require.NoError(t, f.coord.dispatchTick(ctx))

	assert.Equal(t, models.DefaultPendingQueueSize, junior.PendingLen())
	assert.Equal(t, 0, f.queue.Pending())
}

func TestDispatchTick_OverflowReceivesDuringOfficeHours(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, agent := range f.roster.RegularAgents() {
		agent.SetOnShift(false)
	}
	session := f.newQueuedSession(t)
	require.NoError(t, f.queue.Publish(ctx, session.ID))

	require.NoError(t, f.coord.dispatchTick(ctx))

	assert.Equal(t, 1, f.agent("Spare").PendingLen())
}
