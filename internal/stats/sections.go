package stats

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/verte-zerg/memento/internal/lifespan"
	"github.com/verte-zerg/memento/internal/model"
)

// Section is a titled group of labelled figures with an optional closing note.
type Section struct {
	Title string
	Rows  [][2]string
	Note  string
}

// Section titles, in display order.
const (
	SectionLife     = "Your Life"
	SectionHigh     = "Highlights"
	SectionParents  = "Parents"
	SectionSocial   = "Social Context"
	SectionNature   = "Natural World"
	SectionCosmic   = "Cosmic Perspective"
	SectionUniverse = "Universal Scale"
)

// Sections lays out every derived figure of s as display sections.
func Sections(s *model.Stats) []Section {
	if s == nil {
		return nil
	}
	life := Section{
		Title: SectionLife,
		Rows: [][2]string{
			{"Lived", humanize.Comma(s.LivedWeeks) + " weeks"},
			{"Remaining", humanize.Comma(s.RemainingWeeks) + " weeks"},
			{"Progress", s.Percentage + "% of the estimate"},
		},
	}
	if s.Milestone != "" {
		life.Rows = append(life.Rows, [2]string{"Stage", s.Milestone})
	}

	parents := Section{Title: SectionParents}
	if s.ParentYearsLeft > 0 {
		parents.Rows = [][2]string{
			{"Time used", s.ParentTimePercentage + "%"},
			{"Years left", humanize.Comma(s.ParentYearsLeft)},
			{"Visit weeks left", humanize.Comma(s.ParentVisitsLeft)},
		}
		parents.Note = fmt.Sprintf("Seeing your parents %d weeks a year, you have already used about %s%% of the time you will spend with them.", lifespan.VisitsPerYear, s.ParentTimePercentage)
	} else {
		parents.Rows = [][2]string{{"Time used", s.ParentTimePercentage + "%"}}
		parents.Note = "By the usual estimates your time with your parents has run its course. Cherish every moment that remains."
	}

	return []Section{
		life,
		{
			Title: SectionHigh,
			Rows: [][2]string{
				{"Days lived", humanize.Comma(s.LivedDays)},
				{"Seasons", humanize.Comma(s.Seasons)},
				{"Heartbeats", humanize.Comma(s.HeartBeats)},
				{"Breaths", humanize.Comma(s.Breaths)},
				{"Hours slept", humanize.Comma(s.HoursSlept)},
				{"Summers left", humanize.Comma(s.SummersLeft)},
			},
			Note: fmt.Sprintf("You have lived %s weeks, which is %s%% of a %d-year life.", humanize.Comma(s.LivedWeeks), s.Percentage, lifespan.ExpectancyYears),
		},
		parents,
		{
			Title: SectionSocial,
			Rows: [][2]string{
				{"Population at birth", fmt.Sprintf("%.1f billion", s.PopulationAtBirth)},
				{"Population now", fmt.Sprintf("%.1f billion", s.CurrentPopulation)},
				{"People met", humanize.Comma(s.KnownPeople)},
				{"Births since yours", humanize.Comma(s.BirthsSinceBirth)},
				{"Deaths since yours", humanize.Comma(s.DeathsSinceBirth)},
			},
			Note: fmt.Sprintf("Since you were born humanity grew from %.1f to more than %.1f billion people.", s.PopulationAtBirth, s.CurrentPopulation),
		},
		{
			Title: SectionNature,
			Rows: [][2]string{
				{"Lunar cycles", humanize.Comma(s.LunarCycles)},
				{"Trips around the sun", humanize.Comma(s.YearsLived)},
				{"Of a redwood's life", s.RedwoodPercentage + "%"},
			},
			Note: fmt.Sprintf("Your age is %s%% of the life of a giant sequoia, which can live for more than 3,000 years.", s.RedwoodPercentage),
		},
		{
			Title: SectionCosmic,
			Rows: [][2]string{
				{"Around the sun", humanize.Comma(s.SpaceTravelKM) + " km"},
				{"Through the galaxy", humanize.Comma(s.GalaxyTravelKM) + " km"},
			},
			Note: fmt.Sprintf("Your whole life so far is only %s%% of the age of the universe.", s.UniverseAgePercentage),
		},
		{
			Title: SectionUniverse,
			Rows: [][2]string{
				{"Observable universe", "93 billion light years across"},
				{"Age of the universe", "13.8 billion years"},
				{"Your life", s.UniverseAgePercentage + "% of it"},
			},
		},
	}
}
