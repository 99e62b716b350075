package lifespan

import "testing"

func TestTotalWeeks(t *testing.T) {
	if TotalWeeks != 4680 {
		t.Fatalf("expected 4680 total weeks, got %d", TotalWeeks)
	}
}

func TestMilestonesPartitionWeeks(t *testing.T) {
	ms := Milestones()
	if len(ms) != 4 {
		t.Fatalf("expected 4 milestones, got %d", len(ms))
	}
	if ms[0].Start != 0 {
		t.Fatalf("first milestone must start at 0, got %d", ms[0].Start)
	}
	if last := ms[len(ms)-1]; last.End != TotalWeeks {
		t.Fatalf("last milestone must end at %d, got %d", TotalWeeks, last.End)
	}
	for i := 1; i < len(ms); i++ {
		if ms[i-1].End != ms[i].Start {
			t.Fatalf("gap or overlap between %q and %q: %d != %d", ms[i-1].Label, ms[i].Label, ms[i-1].End, ms[i].Start)
		}
		if ms[i].Start >= ms[i].End {
			t.Fatalf("milestone %q is empty", ms[i].Label)
		}
	}
	want := []int{0, 600, 1000, 3400, 4680}
	for i, m := range ms {
		if m.Start != want[i] || m.End != want[i+1] {
			t.Fatalf("unexpected bounds for %q: [%d,%d)", m.Label, m.Start, m.End)
		}
	}
}

func TestMilestonesReturnsCopy(t *testing.T) {
	ms := Milestones()
	ms[0].Label = "changed"
	if Milestones()[0].Label == "changed" {
		t.Fatalf("milestone table must not be mutable through the accessor")
	}
}

func TestMilestoneAt(t *testing.T) {
	cases := []struct {
		week  int
		label string
		ok    bool
	}{
		{0, "childhood", true},
		{599, "childhood", true},
		{600, "adolescence", true},
		{1000, "working life", true},
		{3399, "working life", true},
		{3400, "retirement", true},
		{TotalWeeks - 1, "retirement", true},
		{TotalWeeks, "", false},
		{-1, "", false},
	}
	for _, tc := range cases {
		m, ok := MilestoneAt(tc.week)
		if ok != tc.ok || m.Label != tc.label {
			t.Fatalf("MilestoneAt(%d) = %q,%v; want %q,%v", tc.week, m.Label, ok, tc.label, tc.ok)
		}
	}
}

func TestMilestoneIndex(t *testing.T) {
	if got := MilestoneIndex(0); got != 0 {
		t.Fatalf("expected index 0, got %d", got)
	}
	if got := MilestoneIndex(3400); got != 3 {
		t.Fatalf("expected index 3, got %d", got)
	}
	if got := MilestoneIndex(TotalWeeks); got != -1 {
		t.Fatalf("expected -1 past the grid, got %d", got)
	}
}
