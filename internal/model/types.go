// Package model defines shared data structures.
package model

import "time"

// Config defines interactive session settings.
type Config struct {
	BirthDate string
	Journal   bool
	Color     bool
	GridWidth float64
}

// JournalFilter defines filters and options for journal output.
type JournalFilter struct {
	BirthDate   string
	Since       *time.Time
	Last        int
	CurveWindow int
}

// Stats is the record derived from a birth date at a given instant.
type Stats struct {
	BirthDate  time.Time `json:"birth_date" yaml:"birth_date"`
	ComputedAt time.Time `json:"computed_at" yaml:"computed_at"`

	LivedWeeks     int64  `json:"lived_weeks" yaml:"lived_weeks"`
	LivedDays      int64  `json:"lived_days" yaml:"lived_days"`
	Percentage     string `json:"percentage" yaml:"percentage"`
	RemainingWeeks int64  `json:"remaining_weeks" yaml:"remaining_weeks"`
	YearsLived     int64  `json:"years_lived" yaml:"years_lived"`
	Milestone      string `json:"milestone,omitempty" yaml:"milestone,omitempty"`

	HoursSlept  int64 `json:"hours_slept" yaml:"hours_slept"`
	SummersLeft int64 `json:"summers_left" yaml:"summers_left"`
	HeartBeats  int64 `json:"heart_beats" yaml:"heart_beats"`
	Breaths     int64 `json:"breaths" yaml:"breaths"`
	Seasons     int64 `json:"seasons" yaml:"seasons"`
	LunarCycles int64 `json:"lunar_cycles" yaml:"lunar_cycles"`

	SpaceTravelKM  int64 `json:"space_travel_km" yaml:"space_travel_km"`
	GalaxyTravelKM int64 `json:"galaxy_travel_km" yaml:"galaxy_travel_km"`

	KnownPeople      int64 `json:"known_people" yaml:"known_people"`
	BirthsSinceBirth int64 `json:"births_since_birth" yaml:"births_since_birth"`
	DeathsSinceBirth int64 `json:"deaths_since_birth" yaml:"deaths_since_birth"`

	UniverseAgePercentage string `json:"universe_age_percentage" yaml:"universe_age_percentage"`
	RedwoodPercentage     string `json:"redwood_percentage" yaml:"redwood_percentage"`

	ParentTimePercentage string `json:"parent_time_percentage" yaml:"parent_time_percentage"`
	ParentYearsLeft      int64  `json:"parent_years_left" yaml:"parent_years_left"`
	ParentVisitsLeft     int64  `json:"parent_visits_left" yaml:"parent_visits_left"`

	// Billions of people.
	PopulationAtBirth float64 `json:"population_at_birth" yaml:"population_at_birth"`
	CurrentPopulation float64 `json:"current_population" yaml:"current_population"`
}

// Snapshot is one journaled computation.
type Snapshot struct {
	ID         int64
	BirthDate  string
	ComputedAt time.Time
	LivedDays  int64
	LivedWeeks int64
	Percentage float64
}
