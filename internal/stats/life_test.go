package stats

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/memento/internal/lifespan"
	"github.com/verte-zerg/memento/internal/model"
)

func noon(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

func TestDeriveZeroBirthIsAbsent(t *testing.T) {
	for _, now := range []time.Time{noon(2025, 6, 15), {}, noon(1900, 1, 1)} {
		assert.Nil(t, Derive(time.Time{}, now))
	}
}

func TestDeriveStringBlankIsAbsent(t *testing.T) {
	for _, in := range []string{"", "   "} {
		got, err := DeriveString(in, noon(2025, 6, 15))
		require.NoError(t, err)
		assert.Nil(t, got)
	}
}

func TestDeriveStringRejectsMalformedDate(t *testing.T) {
	for _, in := range []string{"15/06/2000", "2000-13-01", "yesterday"} {
		got, err := DeriveString(in, noon(2025, 6, 15))
		require.Error(t, err, in)
		assert.True(t, errors.Is(err, ErrInvalidBirthDate), in)
		assert.Nil(t, got)
	}
}

func TestDeriveKnownValues(t *testing.T) {
	birth := noon(2000, 6, 15)
	now := noon(2025, 6, 15)

	s := Derive(birth, now)
	require.NotNil(t, s)

	assert.Equal(t, int64(9131), s.LivedDays)
	assert.Equal(t, int64(1304), s.LivedWeeks)
	assert.Equal(t, "27.9", s.Percentage)
	assert.Equal(t, int64(lifespan.TotalWeeks-1304), s.RemainingWeeks)
	assert.Equal(t, int64(25), s.YearsLived)
	assert.Equal(t, "working life", s.Milestone)

	assert.Equal(t, int64(920404800), s.HeartBeats)
	assert.Equal(t, int64(210378240), s.Breaths)
	assert.Equal(t, int64(23667552000), s.SpaceTravelKM)
	assert.Equal(t, int64(173489000000), s.GalaxyTravelKM)
	assert.Equal(t, int64(309), s.LunarCycles)
	assert.Equal(t, int64(22291), s.KnownPeople)
	assert.Equal(t, int64(9131*385000), s.BirthsSinceBirth)
	assert.Equal(t, int64(9131*165000), s.DeathsSinceBirth)
	assert.Equal(t, int64(73048), s.HoursSlept)
	assert.Equal(t, int64(100), s.Seasons)
	assert.Equal(t, int64(65), s.SummersLeft)

	assert.Equal(t, "0.0000001817", s.UniverseAgePercentage)
	assert.Equal(t, "0.84", s.RedwoodPercentage)

	assert.Equal(t, "46", s.ParentTimePercentage)
	assert.Equal(t, int64(29), s.ParentYearsLeft)
	assert.Equal(t, int64(58), s.ParentVisitsLeft)

	assert.Equal(t, 6.1, s.PopulationAtBirth)
	assert.Equal(t, 8.2, s.CurrentPopulation)
	assert.True(t, s.BirthDate.Equal(birth))
	assert.True(t, s.ComputedAt.Equal(now))
}

func TestDeriveRoundsTiesUp(t *testing.T) {
	now := noon(2025, 6, 15)
	cases := []struct {
		weeks   int
		parent  string
		redwood string
	}{
		{weeks: 195, parent: "7", redwood: "0.13"},
		{weeks: 351, parent: "13", redwood: "0.22"},
		{weeks: 585, parent: "21", redwood: "0.38"},
		{weeks: 975, parent: "35", redwood: "0.63"},
		{weeks: 1053, parent: "38", redwood: "0.68"},
	}
	for _, tc := range cases {
		s := Derive(now.AddDate(0, 0, -tc.weeks*7), now)
		require.NotNil(t, s)
		require.Equal(t, int64(tc.weeks), s.LivedWeeks)
		assert.Equal(t, tc.parent, s.ParentTimePercentage, "weeks=%d", tc.weeks)
		assert.Equal(t, tc.redwood, s.RedwoodPercentage, "weeks=%d", tc.weeks)
	}
}

func TestFixedRoundsHalfAwayFromZero(t *testing.T) {
	cases := []struct {
		v    float64
		prec int
		want string
	}{
		{12.5, 0, "13"},
		{2.5, 0, "3"},
		{0.125, 2, "0.13"},
		{0.625, 2, "0.63"},
		{27.863, 1, "27.9"},
		{100, 1, "100.0"},
		{1.817e-7, 10, "0.0000001817"},
		{0, 10, "0.0000000000"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, fixed(tc.v, tc.prec), "fixed(%v, %d)", tc.v, tc.prec)
	}
}

func TestDeriveBirthEqualsNow(t *testing.T) {
	now := noon(2025, 6, 15)
	s := Derive(now, now)
	require.NotNil(t, s)

	assert.Zero(t, s.LivedDays)
	assert.Zero(t, s.LivedWeeks)
	assert.Equal(t, "0.0", s.Percentage)
	assert.Equal(t, int64(lifespan.TotalWeeks), s.RemainingWeeks)
	for name, v := range map[string]int64{
		"heartBeats":       s.HeartBeats,
		"breaths":          s.Breaths,
		"spaceTravelKM":    s.SpaceTravelKM,
		"galaxyTravelKM":   s.GalaxyTravelKM,
		"lunarCycles":      s.LunarCycles,
		"knownPeople":      s.KnownPeople,
		"birthsSinceBirth": s.BirthsSinceBirth,
		"deathsSinceBirth": s.DeathsSinceBirth,
		"hoursSlept":       s.HoursSlept,
		"seasons":          s.Seasons,
	} {
		assert.Zero(t, v, name)
	}
	assert.Equal(t, int64(lifespan.ExpectancyYears), s.SummersLeft)
	assert.Equal(t, "0", s.ParentTimePercentage)
	assert.Equal(t, int64(lifespan.ParentLifeExpectancy-lifespan.ParentAvgAgeDiff), s.ParentYearsLeft)
	assert.Equal(t, "childhood", s.Milestone)
}

func TestDeriveFullGrid(t *testing.T) {
	now := noon(2025, 6, 15)
	birth := now.AddDate(0, 0, -lifespan.TotalWeeks*7)

	s := Derive(birth, now)
	require.NotNil(t, s)
	assert.Equal(t, int64(lifespan.TotalWeeks), s.LivedWeeks)
	assert.Zero(t, s.RemainingWeeks)
	assert.Equal(t, "100.0", s.Percentage)
	assert.Empty(t, s.Milestone)
}

func TestDeriveNinetyCalendarYears(t *testing.T) {
	now := noon(2025, 6, 15)
	s := Derive(now.AddDate(-lifespan.ExpectancyYears, 0, 0), now)
	require.NotNil(t, s)

	// 52-week years drift by roughly a week per 7 calendar years.
	assert.GreaterOrEqual(t, s.LivedWeeks, int64(lifespan.TotalWeeks))
	assert.LessOrEqual(t, s.LivedWeeks, int64(lifespan.TotalWeeks+20))
	assert.Zero(t, s.RemainingWeeks)
	pct, err := strconv.ParseFloat(s.Percentage, 64)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, pct, 0.5)
}

func TestDerivePercentageIsNotClamped(t *testing.T) {
	now := noon(2025, 6, 15)
	s := Derive(now.AddDate(-100, 0, 0), now)
	require.NotNil(t, s)

	pct, err := strconv.ParseFloat(s.Percentage, 64)
	require.NoError(t, err)
	assert.Greater(t, pct, 100.0, "ages past the expectancy must report more than 100 percent")
	assert.Zero(t, s.RemainingWeeks)
	assert.Zero(t, s.SummersLeft)
}

func TestDeriveParentTimeExhausted(t *testing.T) {
	now := noon(2025, 6, 15)
	// 54 years of 52-week years puts the parent at the assumed life expectancy.
	birth := now.AddDate(0, 0, -(lifespan.ParentLifeExpectancy-lifespan.ParentAvgAgeDiff)*lifespan.WeeksInYear*7)
	for _, b := range []time.Time{birth, birth.AddDate(-10, 0, 0)} {
		s := Derive(b, now)
		require.NotNil(t, s)
		assert.Zero(t, s.ParentYearsLeft)
		assert.Zero(t, s.ParentVisitsLeft)
		assert.Equal(t, "100", s.ParentTimePercentage)
	}
}

func TestDeriveFutureBirthUsesAbsoluteDifference(t *testing.T) {
	now := noon(2025, 6, 15)
	past := Derive(now.AddDate(0, 0, -70), now)
	future := Derive(now.AddDate(0, 0, 70), now)
	require.NotNil(t, past)
	require.NotNil(t, future)
	assert.Equal(t, past.LivedDays, future.LivedDays)
	assert.Equal(t, int64(10), future.LivedWeeks)
}

func TestDeriveIsMonotonicInNow(t *testing.T) {
	birth := noon(1987, 3, 2)
	var prev *model.Stats
	for now := birth; now.Before(birth.AddDate(3, 0, 0)); now = now.Add(37 * time.Hour) {
		s := Derive(birth, now)
		require.NotNil(t, s)
		if prev != nil {
			require.GreaterOrEqual(t, s.LivedDays, prev.LivedDays)
			require.GreaterOrEqual(t, s.LivedWeeks, prev.LivedWeeks)
		}
		require.Equal(t, s.LivedDays/7, s.LivedWeeks)
		prev = s
	}
}

func TestDeriveIsTotal(t *testing.T) {
	now := noon(2025, 6, 15)
	births := []time.Time{
		time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC),
		noon(1800, 2, 28),
		noon(1950, 1, 1),
		noon(2024, 2, 29),
		noon(2400, 12, 31),
	}
	for _, b := range births {
		s := Derive(b, now)
		require.NotNil(t, s)
		assert.GreaterOrEqual(t, s.LivedDays, int64(0))
		assert.GreaterOrEqual(t, s.RemainingWeeks, int64(0))
		assert.GreaterOrEqual(t, s.SummersLeft, int64(0))
		assert.GreaterOrEqual(t, s.ParentYearsLeft, int64(0))
		for _, str := range []string{s.Percentage, s.UniverseAgePercentage, s.RedwoodPercentage, s.ParentTimePercentage} {
			_, err := strconv.ParseFloat(str, 64)
			assert.NoError(t, err, str)
		}
	}
}

func TestParseBirthDateUsesLocalMidnight(t *testing.T) {
	got, err := ParseBirthDate(" 1990-05-17 ")
	require.NoError(t, err)
	assert.Equal(t, time.Date(1990, 5, 17, 0, 0, 0, 0, time.Local), got)
}
