package models_test

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supporthub/chat-routing-service/internal/domain/models"
)

func TestNewAgent_MaxConcurrencyDerivation(t *testing.T) {
	tests := []struct {
		name         string
		seniority    models.Seniority
		baseCapacity int
		want         int
	}{
		{"junior at base 10", models.SeniorityJunior, 10, 4},
		{"midlevel at base 10", models.SeniorityMidLevel, 10, 6},
		{"teamlead at base 10", models.SeniorityTeamLead, 10, 5},
		{"senior at base 10", models.SenioritySenior, 10, 8},
		{"junior rounds down", models.SeniorityJunior, 7, 2},
		{"teamlead rounds down", models.SeniorityTeamLead, 5, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agent := models.NewAgent("Test", tt.seniority, tt.baseCapacity)
			assert.Equal(t, tt.want, agent.MaxConcurrency)
		})
	}
}

func TestNewAgent_StartsOnShiftAndIdle(t *testing.T) {
	agent := models.NewAgent("Test", models.SeniorityMidLevel, 10)

	assert.True(t, agent.IsOnShift())
	assert.Equal(t, 0, agent.ActiveCount())
	assert.Equal(t, 0, agent.PendingLen())
	assert.NotEqual(t, uuid.Nil, agent.ID)
}

func TestAgent_TryAssign_RespectsCapacity(t *testing.T) {
	// Junior at base 10 caps at 4 concurrent chats.
	agent := models.NewAgent("Test", models.SeniorityJunior, 10)

	for i := 0; i < 4; i++ {
		assert.True(t, agent.TryAssign(uuid.New()))
	}
	assert.False(t, agent.TryAssign(uuid.New()))
	assert.Equal(t, 4, agent.ActiveCount())
	assert.False(t, agent.CanHandleMoreChats())
}

func TestAgent_TryAssign_RejectedOffShift(t *testing.T) {
	agent := models.NewAgent("Test", models.SenioritySenior, 10)
	agent.SetOnShift(false)

	assert.False(t, agent.TryAssign(uuid.New()))
	assert.Equal(t, 0, agent.ActiveCount())
}

func TestAgent_TryAssign_NeverExceedsCapUnderConcurrency(t *testing.T) {
	agent := models.NewAgent("Test", models.SenioritySenior, 10)

	var wg sync.WaitGroup
	var mu sync.Mutex
	assigned := 0

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if agent.TryAssign(uuid.New()) {
				mu.Lock()
				assigned++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, agent.MaxConcurrency, assigned)
	assert.Equal(t, agent.MaxConcurrency, agent.ActiveCount())
}

func TestAgent_Release_FreesSlot(t *testing.T) {
	agent := models.NewAgent("Test", models.SeniorityJunior, 10)
	sessionID := uuid.New()

	require.True(t, agent.TryAssign(sessionID))
	assert.True(t, agent.HasActiveChat(sessionID))

	assert.True(t, agent.Release(sessionID))
	assert.False(t, agent.HasActiveChat(sessionID))
	assert.Equal(t, 0, agent.ActiveCount())

	// Releasing twice is a no-op.
	assert.False(t, agent.Release(sessionID))
}

func TestAgent_DrainActive_ClearsEverything(t *testing.T) {
	agent := models.NewAgent("Test", models.SenioritySenior, 10)
	first := uuid.New()
	second := uuid.New()
	require.True(t, agent.TryAssign(first))
	require.True(t, agent.TryAssign(second))

	drained := agent.DrainActive()

	assert.ElementsMatch(t, []uuid.UUID{first, second}, drained)
	assert.Equal(t, 0, agent.ActiveCount())
	assert.Empty(t, agent.DrainActive())
}

func TestAgent_SetOnShift_ReturnsPrevious(t *testing.T) {
	agent := models.NewAgent("Test", models.SeniorityMidLevel, 10)

	assert.True(t, agent.SetOnShift(false))
	assert.False(t, agent.IsOnShift())
	assert.False(t, agent.SetOnShift(true))
	assert.True(t, agent.IsOnShift())
}

func TestAgent_PendingQueue_FIFO(t *testing.T) {
	agent := models.NewAgent("Test", models.SeniorityMidLevel, 10)
	first := uuid.New()
	second := uuid.New()

	require.True(t, agent.EnqueuePending(first))
	require.True(t, agent.EnqueuePending(second))
	assert.Equal(t, 2, agent.PendingLen())

	got, ok := agent.TryDequeuePending()
	require.True(t, ok)
	assert.Equal(t, first, got)

	got, ok = agent.TryDequeuePending()
	require.True(t, ok)
	assert.Equal(t, second, got)

	_, ok = agent.TryDequeuePending()
	assert.False(t, ok)
}

func TestAgent_EnqueuePending_DropsWhenFull(t *testing.T) {
	agent := models.NewAgent("Test", models.SeniorityMidLevel, 10)

	for i := 0; i < models.DefaultPendingQueueSize; i++ {
		require.True(t, agent.EnqueuePending(uuid.New()))
	}
	assert.False(t, agent.EnqueuePending(uuid.New()))
	assert.Equal(t, models.DefaultPendingQueueSize, agent.PendingLen())
}
