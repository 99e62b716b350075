package stats

import "sort"

// World population samples in billions, keyed by calendar year.
var populationSamples = map[int]float64{
	1950: 2.5,
	1955: 2.8,
	1960: 3.0,
	1965: 3.3,
	1970: 3.7,
	1975: 4.1,
	1980: 4.4,
	1985: 4.9,
	1990: 5.3,
	1995: 5.7,
	2000: 6.1,
	2005: 6.5,
	2010: 6.9,
	2015: 7.3,
	2020: 7.8,
	2023: 8.0,
	2024: 8.1,
	2025: 8.2,
	2026: 8.2,
}

var populationYears = sortedPopulationYears()

func sortedPopulationYears() []int {
	years := make([]int, 0, len(populationSamples))
	for y := range populationSamples {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// EstimatePopulation returns the estimated world population in billions for
// year. Known years are returned as-is, years between samples are linearly
// interpolated and years outside the table clamp to the nearest sample.
func EstimatePopulation(year int) float64 {
	if v, ok := populationSamples[year]; ok {
		return v
	}

	lower := populationYears[0]
	for i := len(populationYears) - 1; i >= 0; i-- {
		if populationYears[i] <= year {
			lower = populationYears[i]
			break
		}
	}
	upper := populationYears[len(populationYears)-1]
	for _, y := range populationYears {
		if y > year {
			upper = y
			break
		}
	}
	if lower == upper {
		return populationSamples[lower]
	}

	ratio := float64(year-lower) / float64(upper-lower)
	return populationSamples[lower] + ratio*(populationSamples[upper]-populationSamples[lower])
}
