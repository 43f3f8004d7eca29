package models

import "fmt"

// Seniority is an ordered scale of agent experience. The ordinal value is
// used by the matcher, which prefers the least senior eligible agent.
type Seniority int

// Seniority levels, ascending.
const (
	SeniorityJunior Seniority = iota
	SeniorityMidLevel
	SeniorityTeamLead
	SenioritySenior
)

var seniorityNames = map[Seniority]string{
	SeniorityJunior:   "junior",
	SeniorityMidLevel: "midlevel",
	SeniorityTeamLead: "teamlead",
	SenioritySenior:   "senior",
}

// Efficiency returns the concurrency efficiency factor for the seniority.
// Team leads carry a lower factor than mid-level agents because part of
// their time goes to supervision.
func (s Seniority) Efficiency() float64 {
	switch s {
	case SeniorityJunior:
		return 0.4
	case SeniorityMidLevel:
		return 0.6
	case SeniorityTeamLead:
		return 0.5
	case SenioritySenior:
		return 0.8
	default:
		return 0.0
	}
}

// String returns the lowercase name of the seniority level.
func (s Seniority) String() string {
	if name, ok := seniorityNames[s]; ok {
		return name
	}
	return fmt.Sprintf("seniority(%d)", int(s))
}

// ParseSeniority parses a seniority level from its string form.
func ParseSeniority(value string) (Seniority, error) {
	for level, name := range seniorityNames {
		if name == value {
			return level, nil
		}
	}
	return 0, fmt.Errorf("unknown seniority %q", value)
}

// UnmarshalYAML implements yaml.Unmarshaler so rosters can spell seniority
// levels by name.
func (s *Seniority) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}
	level, err := ParseSeniority(raw)
	if err != nil {
		return err
	}
	*s = level
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (s Seniority) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}
