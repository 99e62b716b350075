package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/verte-zerg/memento/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "nested", "memento.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestInsertAndListSnapshots(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	want := []model.Snapshot{
		{BirthDate: "1990-05-17", ComputedAt: base, LivedDays: 12648, LivedWeeks: 1806, Percentage: 38.6},
		{BirthDate: "1990-05-17", ComputedAt: base.Add(24 * time.Hour), LivedDays: 12649, LivedWeeks: 1807, Percentage: 38.6},
		{BirthDate: "2001-02-03", ComputedAt: base.Add(48 * time.Hour), LivedDays: 8734, LivedWeeks: 1247, Percentage: 26.6},
	}
	// Insert out of order; listing sorts by computed_at.
	for _, i := range []int{2, 0, 1} {
		id, err := st.InsertSnapshot(ctx, want[i])
		if err != nil {
			t.Fatalf("insert snapshot: %v", err)
		}
		if id <= 0 {
			t.Fatalf("expected positive id, got %d", id)
		}
	}

	got, err := st.ListSnapshots(ctx, model.JournalFilter{})
	if err != nil {
		t.Fatalf("list snapshots: %v", err)
	}
	if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(model.Snapshot{}, "ID")); diff != "" {
		t.Fatalf("snapshots mismatch (-want +got):\n%s", diff)
	}

	filtered, err := st.ListSnapshots(ctx, model.JournalFilter{BirthDate: "1990-05-17"})
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	if len(filtered) != 2 {
		t.Fatalf("expected 2 snapshots for birth date, got %d", len(filtered))
	}

	since := base.Add(36 * time.Hour)
	recent, err := st.ListSnapshots(ctx, model.JournalFilter{Since: &since})
	if err != nil {
		t.Fatalf("list since: %v", err)
	}
	if len(recent) != 1 || recent[0].BirthDate != "2001-02-03" {
		t.Fatalf("unexpected since result: %+v", recent)
	}
}

func TestInsertSnapshotRequiresBirthDate(t *testing.T) {
	st := openTestStore(t)
	if _, err := st.InsertSnapshot(context.Background(), model.Snapshot{ComputedAt: time.Now()}); err == nil {
		t.Fatalf("expected error for empty birth date")
	}
}

func TestLastBirthDate(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	got, err := st.LastBirthDate(ctx)
	if err != nil {
		t.Fatalf("last birth date on empty journal: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty birth date, got %q", got)
	}

	base := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	for i, bd := range []string{"1990-05-17", "2001-02-03"} {
		snap := model.Snapshot{BirthDate: bd, ComputedAt: base.Add(time.Duration(i) * time.Hour)}
		if _, err := st.InsertSnapshot(ctx, snap); err != nil {
			t.Fatalf("insert snapshot: %v", err)
		}
	}
	got, err = st.LastBirthDate(ctx)
	if err != nil {
		t.Fatalf("last birth date: %v", err)
	}
	if got != "2001-02-03" {
		t.Fatalf("expected most recent birth date, got %q", got)
	}
}

func TestDeleteSnapshots(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	for _, bd := range []string{"1990-05-17", "1990-05-17", "2001-02-03"} {
		if _, err := st.InsertSnapshot(ctx, model.Snapshot{BirthDate: bd, ComputedAt: now}); err != nil {
			t.Fatalf("insert snapshot: %v", err)
		}
	}

	n, err := st.DeleteSnapshots(ctx, "1990-05-17")
	if err != nil {
		t.Fatalf("delete by birth date: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 deleted rows, got %d", n)
	}
	n, err = st.DeleteSnapshots(ctx, "")
	if err != nil {
		t.Fatalf("delete all: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 deleted row, got %d", n)
	}
	left, err := st.ListSnapshots(ctx, model.JournalFilter{})
	if err != nil {
		t.Fatalf("list snapshots: %v", err)
	}
	if len(left) != 0 {
		t.Fatalf("expected empty journal, got %d rows", len(left))
	}
}
