package stats

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/verte-zerg/memento/internal/lifespan"
	"github.com/verte-zerg/memento/internal/model"
)

// BirthDateLayout is the accepted birth date format.
const BirthDateLayout = "2006-01-02"

const (
	msPerDay = 24 * 60 * 60 * 1000

	heartBeatsPerMinute  = 70
	breathsPerMinute     = 16
	earthOrbitKMPerDay   = 2_592_000
	galaxyKMPerDay       = 19_000_000
	lunarCycleDays       = 29.5
	acquaintancesPerLife = 80_000
	birthsPerDay         = 385_000
	deathsPerDay         = 165_000
	sleepHoursPerDay     = 8
	universeAgeYears     = 13_800_000_000
	redwoodAgeYears      = 3000
)

// ErrInvalidBirthDate reports a birth date that is not a YYYY-MM-DD calendar date.
var ErrInvalidBirthDate = errors.New("invalid birth date")

// ParseBirthDate parses a YYYY-MM-DD date at local midnight.
func ParseBirthDate(s string) (time.Time, error) {
	parsed, err := time.ParseInLocation(BirthDateLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: expected YYYY-MM-DD", ErrInvalidBirthDate, s)
	}
	return parsed, nil
}

// DeriveString parses birthDate and derives its stats at now.
// A blank birthDate yields a nil result and no error.
func DeriveString(birthDate string, now time.Time) (*model.Stats, error) {
	if strings.TrimSpace(birthDate) == "" {
		return nil, nil
	}
	birth, err := ParseBirthDate(birthDate)
	if err != nil {
		return nil, err
	}
	return Derive(birth, now), nil
}

// Derive computes the life statistics for birth as observed at now.
// It returns nil when birth is the zero time.
//
// Day counts come from the absolute instant difference, so a birth parsed at
// local midnight east of UTC can count one day more than a UTC-midnight birth.
func Derive(birth, now time.Time) *model.Stats {
	if birth.IsZero() {
		return nil
	}

	diffMs := now.UnixMilli() - birth.UnixMilli()
	if diffMs < 0 {
		diffMs = -diffMs
	}
	livedDays := diffMs / msPerDay
	livedWeeks := livedDays / 7
	yearsLived := float64(livedWeeks) / 52
	days := float64(livedDays)

	parentAge := yearsLived + lifespan.ParentAvgAgeDiff
	parentYearsLeft := math.Max(0, lifespan.ParentLifeExpectancy-parentAge)
	totalWeeksWithParents := yearsLived*lifespan.VisitsPerYear + parentYearsLeft*lifespan.VisitsPerYear
	weeksAlreadySpent := yearsLived * lifespan.VisitsPerYear
	parentTimePercentage := "100"
	if totalWeeksWithParents > 0 {
		parentTimePercentage = fixed(weeksAlreadySpent/totalWeeksWithParents*100, 0)
	}

	milestone := ""
	if m, ok := lifespan.MilestoneAt(int(livedWeeks)); ok {
		milestone = m.Label
	}

	return &model.Stats{
		BirthDate:  birth,
		ComputedAt: now,

		LivedWeeks:     livedWeeks,
		LivedDays:      livedDays,
		Percentage:     fixed(float64(livedWeeks)/lifespan.TotalWeeks*100, 1),
		RemainingWeeks: max(0, lifespan.TotalWeeks-livedWeeks),
		YearsLived:     livedWeeks / lifespan.WeeksInYear,
		Milestone:      milestone,

		HoursSlept:  int64(math.Floor(days * sleepHoursPerDay)),
		SummersLeft: max(0, lifespan.ExpectancyYears-int64(math.Floor(yearsLived))),
		HeartBeats:  livedDays * 24 * 60 * heartBeatsPerMinute,
		Breaths:     livedDays * 24 * 60 * breathsPerMinute,
		Seasons:     int64(math.Floor(yearsLived * 4)),
		LunarCycles: int64(math.Floor(days / lunarCycleDays)),

		SpaceTravelKM:  livedDays * earthOrbitKMPerDay,
		GalaxyTravelKM: livedDays * galaxyKMPerDay,

		KnownPeople:      int64(math.Round(float64(livedWeeks) / lifespan.TotalWeeks * acquaintancesPerLife)),
		BirthsSinceBirth: int64(math.Round(days * birthsPerDay)),
		DeathsSinceBirth: int64(math.Round(days * deathsPerDay)),

		UniverseAgePercentage: fixed(yearsLived/universeAgeYears*100, 10),
		RedwoodPercentage:     fixed(yearsLived/redwoodAgeYears*100, 2),

		ParentTimePercentage: parentTimePercentage,
		ParentYearsLeft:      int64(math.Round(parentYearsLeft)),
		ParentVisitsLeft:     int64(math.Round(parentYearsLeft * lifespan.VisitsPerYear)),

		PopulationAtBirth: EstimatePopulation(birth.Local().Year()),
		CurrentPopulation: EstimatePopulation(now.Local().Year()),
	}
}

// fixed formats v with prec decimals, rounding ties away from zero.
// FormatFloat alone rounds exact binary ties such as 12.5 to even.
func fixed(v float64, prec int) string {
	p10 := math.Pow10(prec)
	if scaled := v * p10; math.Abs(scaled) < 1<<53 {
		v = math.Round(scaled) / p10
	}
	return strconv.FormatFloat(v, 'f', prec, 64)
}
