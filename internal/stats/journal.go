package stats

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/verte-zerg/memento/internal/lifespan"
	"github.com/verte-zerg/memento/internal/model"
	"github.com/verte-zerg/memento/internal/store"
)

const journalTimeLayout = "2006-01-02 15:04"

// Journal contains the snapshots selected for journal rendering.
type Journal struct {
	Snapshots []model.Snapshot
}

// BuildJournal loads snapshots and keeps the last filter.Last of them.
func BuildJournal(ctx context.Context, st *store.Store, filter model.JournalFilter) (Journal, error) {
	snaps, err := st.ListSnapshots(ctx, filter)
	if err != nil {
		return Journal{}, err
	}
	if filter.Last > 0 && len(snaps) > filter.Last {
		snaps = snaps[len(snaps)-filter.Last:]
	}
	return Journal{Snapshots: snaps}, nil
}

// SnapshotOf converts derived stats into a journal row.
func SnapshotOf(s *model.Stats) model.Snapshot {
	pct, err := strconv.ParseFloat(s.Percentage, 64)
	if err != nil {
		pct = float64(s.LivedWeeks) / lifespan.TotalWeeks * 100
	}
	return model.Snapshot{
		BirthDate:  s.BirthDate.Format(BirthDateLayout),
		ComputedAt: s.ComputedAt,
		LivedDays:  s.LivedDays,
		LivedWeeks: s.LivedWeeks,
		Percentage: pct,
	}
}

// RenderJournalTable prints one row per snapshot.
func RenderJournalTable(w io.Writer, snaps []model.Snapshot) error {
	if len(snaps) == 0 {
		_, err := fmt.Fprintln(w, "No snapshots found.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Journal"); err != nil {
		return err
	}
	headers := []string{"Computed", "Birth date", "Days", "Weeks", "Progress"}
	rows := make([][]string, 0, len(snaps))
	pcts := make([]float64, 0, len(snaps))
	for _, s := range snaps {
		rows = append(rows, []string{
			s.ComputedAt.Local().Format(journalTimeLayout),
			s.BirthDate,
			humanize.Comma(s.LivedDays),
			humanize.Comma(s.LivedWeeks),
			fmt.Sprintf("%.1f%%", s.Percentage),
		})
		pcts = append(pcts, s.Percentage)
	}
	for _, line := range formatTable(headers, rows, map[int]bool{2: true, 3: true, 4: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if len(snaps) > 1 {
		if _, err := fmt.Fprintf(w, "Trend: %s\n", Sparkline(pcts)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderJournalCurves plots progress and remaining weeks across snapshots.
func RenderJournalCurves(w io.Writer, snaps []model.Snapshot, window, totalWidth, height int, useColor bool) error {
	if len(snaps) == 0 {
		return nil
	}
	progress := make([]float64, len(snaps))
	remaining := make([]float64, len(snaps))
	for i, s := range snaps {
		progress[i] = s.Percentage
		remaining[i] = float64(max(0, lifespan.TotalWeeks-s.LivedWeeks))
	}
	width := 0
	if totalWidth > 0 {
		width = PlotWidthFor(totalWidth)
	}
	return PlotSeries(w, "Journal Curves", []Series{
		{Name: "Progress %", Values: MovingAverage(progress, window)},
		{Name: "Weeks remaining", Values: MovingAverage(remaining, window)},
	}, width, height, useColor)
}
