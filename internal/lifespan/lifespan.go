// Package lifespan defines the fixed parameters of the simulated lifespan
// and the life-stage milestones that partition its week axis.
package lifespan

const (
	// ExpectancyYears is the assumed total lifespan.
	ExpectancyYears = 90
	// WeeksInYear is the number of grid columns per year.
	WeeksInYear = 52
	// TotalWeeks is the size of the week grid.
	TotalWeeks = ExpectancyYears * WeeksInYear

	// ParentAvgAgeDiff is the assumed age gap between a parent and a child, in years.
	ParentAvgAgeDiff = 28
	// ParentLifeExpectancy is the assumed parental lifespan, in years.
	ParentLifeExpectancy = 82
	// VisitsPerYear is the number of weeks per year assumed to be spent with parents.
	VisitsPerYear = 2
)

// Milestone is a named life-stage band over the week axis.
// Start is inclusive, End is exclusive.
type Milestone struct {
	Label       string
	Start       int
	End         int
	Text        string
	Color       string
	BorderColor string
}

var milestones = [...]Milestone{
	{
		Label:       "childhood",
		Start:       0,
		End:         600,
		Color:       "#BFDBFE",
		BorderColor: "#93C5FD",
		Text:        "the first 600 weeks. playtime while others solve your problems.",
	},
	{
		Label:       "adolescence",
		Start:       600,
		End:         1000,
		Color:       "#C7D2FE",
		BorderColor: "#A5B4FC",
		Text:        "400 weeks to find yourself before the weight of responsibility.",
	},
	{
		Label:       "working life",
		Start:       1000,
		End:         3400,
		Color:       "#FDE68A",
		BorderColor: "#FCD34D",
		Text:        "2,400 weeks of serious adult work. the main block of your existence.",
	},
	{
		Label:       "retirement",
		Start:       3400,
		End:         TotalWeeks,
		Color:       "#A7F3D0",
		BorderColor: "#6EE7B7",
		Text:        "late freedom. roughly as many weeks of leisure as you had as a child.",
	},
}

// Milestones returns a copy of the ordered milestone table.
func Milestones() []Milestone {
	out := make([]Milestone, len(milestones))
	copy(out, milestones[:])
	return out
}

// MilestoneAt returns the milestone whose band contains week.
func MilestoneAt(week int) (Milestone, bool) {
	i := MilestoneIndex(week)
	if i < 0 {
		return Milestone{}, false
	}
	return milestones[i], true
}

// MilestoneIndex returns the position of the milestone containing week, or -1.
func MilestoneIndex(week int) int {
	for i, m := range milestones {
		if week >= m.Start && week < m.End {
			return i
		}
	}
	return -1
}
