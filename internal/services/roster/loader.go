package roster

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/supporthub/chat-routing-service/internal/domain/models"
)

// DefaultBaseCapacity is the base concurrency when the roster omits it.
const DefaultBaseCapacity = 10

type agentSpec struct {
	Name      string           `yaml:"name"`
	Seniority models.Seniority `yaml:"seniority"`
}

type teamSpec struct {
	Name   string             `yaml:"name"`
	Shift  models.ShiftWindow `yaml:"shift"`
	Agents []agentSpec        `yaml:"agents"`
}

type overflowSpec struct {
	Agents []agentSpec `yaml:"agents"`
}

type fileSpec struct {
	BaseCapacity int                `yaml:"baseCapacity"`
	OfficeHours  models.ShiftWindow `yaml:"officeHours"`
	Teams        []teamSpec         `yaml:"teams"`
	Overflow     overflowSpec       `yaml:"overflow"`
}

// Load reads and validates a roster file.
func Load(path string) (*Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster file: %w", err)
	}
	roster, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid roster file %s: %w", path, err)
	}
	return roster, nil
}

// Parse parses and validates roster YAML.
func Parse(data []byte) (*Roster, error) {
	var spec fileSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("failed to parse roster yaml: %w", err)
	}
	return build(spec)
}

func build(spec fileSpec) (*Roster, error) {
	if spec.BaseCapacity == 0 {
		spec.BaseCapacity = DefaultBaseCapacity
	}
	if err := validate(spec); err != nil {
		return nil, err
	}

	roster := &Roster{
		officeHours:  spec.OfficeHours,
		baseCapacity: spec.BaseCapacity,
		agentsByID:   make(map[uuid.UUID]*models.Agent),
	}

	for _, ts := range spec.Teams {
		team := &models.Team{
			Name:  ts.Name,
			Shift: ts.Shift,
		}
		for _, as := range ts.Agents {
			agent := models.NewAgent(as.Name, as.Seniority, spec.BaseCapacity)
			team.Agents = append(team.Agents, agent)
			roster.agentsByID[agent.ID] = agent
		}
		roster.teams = append(roster.teams, team)
	}

	roster.overflow = &models.Team{Name: "Overflow"}
	for _, as := range spec.Overflow.Agents {
		agent := models.NewAgent(as.Name, as.Seniority, spec.BaseCapacity)
		roster.overflow.Agents = append(roster.overflow.Agents, agent)
		roster.agentsByID[agent.ID] = agent
	}

	return roster, nil
}

func validate(spec fileSpec) error {
	if spec.BaseCapacity < 1 {
		return fmt.Errorf("baseCapacity must be positive, got %d", spec.BaseCapacity)
	}
	if len(spec.Teams) == 0 {
		return fmt.Errorf("at least one team is required")
	}
	if err := validateWindow("officeHours", spec.OfficeHours); err != nil {
		return err
	}

	seen := make(map[string]bool)
	for _, ts := range spec.Teams {
		if ts.Name == "" {
			return fmt.Errorf("team name must not be empty")
		}
		if seen[ts.Name] {
			return fmt.Errorf("duplicate team name %q", ts.Name)
		}
		seen[ts.Name] = true
		if len(ts.Agents) == 0 {
			return fmt.Errorf("team %q has no agents", ts.Name)
		}
		if err := validateWindow("team "+ts.Name+" shift", ts.Shift); err != nil {
			return err
		}
		for _, as := range ts.Agents {
			if as.Name == "" {
				return fmt.Errorf("agent name must not be empty in team %q", ts.Name)
			}
		}
	}
	for _, as := range spec.Overflow.Agents {
		if as.Name == "" {
			return fmt.Errorf("overflow agent name must not be empty")
		}
	}

	// Shift windows form a closed rota: every hour of the day belongs to
	// exactly one regular team.
	for hour := 0; hour < 24; hour++ {
		covering := 0
		for _, ts := range spec.Teams {
			if ts.Shift.Contains(hour) {
				covering++
			}
		}
		if covering == 0 {
			return fmt.Errorf("hour %d is not covered by any team shift", hour)
		}
		if covering > 1 {
			return fmt.Errorf("hour %d is covered by %d team shifts, shifts must not overlap", hour, covering)
		}
	}

	return nil
}

func validateWindow(name string, w models.ShiftWindow) error {
	if w.Start < 0 || w.Start > 23 {
		return fmt.Errorf("%s: start hour %d out of range", name, w.Start)
	}
	if w.End < 0 || w.End > 24 {
		return fmt.Errorf("%s: end hour %d out of range", name, w.End)
	}
	if w.Start == w.End {
		return fmt.Errorf("%s: window is empty", name)
	}
	return nil
}

// Default returns the built-in roster: three teams on a closed 8-hour rota,
// office hours 9-17 and an overflow pool of six juniors.
func Default() *Roster {
	roster, err := build(fileSpec{
		BaseCapacity: DefaultBaseCapacity,
		OfficeHours:  models.ShiftWindow{Start: 9, End: 17},
		Teams: []teamSpec{
			{
				Name:  "Team A",
				Shift: models.ShiftWindow{Start: 8, End: 16},
				Agents: []agentSpec{
					{Name: "Alice", Seniority: models.SeniorityTeamLead},
					{Name: "Bob", Seniority: models.SeniorityMidLevel},
					{Name: "Charlie", Seniority: models.SeniorityMidLevel},
					{Name: "Diana", Seniority: models.SeniorityJunior},
				},
			},
			{
				Name:  "Team B",
				Shift: models.ShiftWindow{Start: 16, End: 24},
				Agents: []agentSpec{
					{Name: "Eve", Seniority: models.SenioritySenior},
					{Name: "Frank", Seniority: models.SeniorityMidLevel},
					{Name: "Grace", Seniority: models.SeniorityJunior},
					{Name: "Heidi", Seniority: models.SeniorityJunior},
				},
			},
			{
				Name:  "Team C",
				Shift: models.ShiftWindow{Start: 0, End: 8},
				Agents: []agentSpec{
					{Name: "Ivan", Seniority: models.SeniorityMidLevel},
					{Name: "Judy", Seniority: models.SeniorityMidLevel},
				},
			},
		},
		Overflow: overflowSpec{
			Agents: []agentSpec{
				{Name: "Overflow 1", Seniority: models.SeniorityJunior},
				{Name: "Overflow 2", Seniority: models.SeniorityJunior},
				{Name: "Overflow 3", Seniority: models.SeniorityJunior},
				{Name: "Overflow 4", Seniority: models.SeniorityJunior},
				{Name: "Overflow 5", Seniority: models.SeniorityJunior},
				{Name: "Overflow 6", Seniority: models.SeniorityJunior},
			},
		},
	})
	if err != nil {
		// The built-in roster is static and always valid.
		panic(fmt.Sprintf("default roster invalid: %v", err))
	}
	return roster
}
