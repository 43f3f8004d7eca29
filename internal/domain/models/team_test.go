package models_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supporthub/chat-routing-service/internal/domain/models"
)

func TestShiftWindow_Contains(t *testing.T) {
	tests := []struct {
		name   string
		window models.ShiftWindow
		hour   int
		want   bool
	}{
		{"start is included", models.ShiftWindow{Start: 8, End: 16}, 8, true},
		{"end is excluded", models.ShiftWindow{Start: 8, End: 16}, 16, false},
		{"inside", models.ShiftWindow{Start: 8, End: 16}, 12, true},
		{"before", models.ShiftWindow{Start: 8, End: 16}, 7, false},
		{"evening window to midnight", models.ShiftWindow{Start: 16, End: 24}, 23, true},
		{"midnight outside evening window", models.ShiftWindow{Start: 16, End: 24}, 0, false},
		{"wrap late evening", models.ShiftWindow{Start: 22, End: 6}, 23, true},
		{"wrap past midnight", models.ShiftWindow{Start: 22, End: 6}, 3, true},
		{"wrap end excluded", models.ShiftWindow{Start: 22, End: 6}, 6, false},
		{"wrap midday outside", models.ShiftWindow{Start: 22, End: 6}, 12, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.window.Contains(tt.hour))
		})
	}
}

func TestShiftWindow_Hours(t *testing.T) {
	assert.Equal(t, 8, models.ShiftWindow{Start: 8, End: 16}.Hours())
	assert.Equal(t, 8, models.ShiftWindow{Start: 16, End: 24}.Hours())
	assert.Equal(t, 8, models.ShiftWindow{Start: 22, End: 6}.Hours())
}

func TestTeam_Capacity(t *testing.T) {
	team := &models.Team{
		Name: "Test",
		Agents: []*models.Agent{
			models.NewAgent("A", models.SeniorityTeamLead, 10), // 5
			models.NewAgent("B", models.SeniorityMidLevel, 10), // 6
			models.NewAgent("C", models.SeniorityJunior, 10),   // 4
		},
	}

	assert.Equal(t, 15, team.Capacity())
	assert.Equal(t, 22, team.MaxQueueLength())
}

func TestTeam_AvailableAgents_SkipsFullAndOffShift(t *testing.T) {
	full := models.NewAgent("Full", models.SeniorityJunior, 10)
	for i := 0; i < full.MaxConcurrency; i++ {
		require.True(t, full.TryAssign(uuid.New()))
	}
	offShift := models.NewAgent("Off", models.SenioritySenior, 10)
	offShift.SetOnShift(false)
	free := models.NewAgent("Free", models.SeniorityMidLevel, 10)

	team := &models.Team{Name: "Test", Agents: []*models.Agent{full, offShift, free}}

	available := team.AvailableAgents()
	require.Len(t, available, 1)
	assert.Equal(t, "Free", available[0].Name)
}
