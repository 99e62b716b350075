package stats

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/memento/internal/lifespan"
)

const (
	glyphLived  = "●"
	glyphNow    = "◉"
	glyphFuture = "○"

	yearLabelEvery = 5
)

var (
	gridLivedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	gridNowStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F43F5E")).Bold(true)
	gridLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

var gridMilestones = lifespan.Milestones()

// GridOptions controls how the week grid is drawn.
type GridOptions struct {
	Color      bool
	YearLabels bool
}

type cellKind int

const (
	cellLived cellKind = iota
	cellNow
	cellFuture
)

type gridCell struct {
	kind      cellKind
	milestone int
}

func classifyWeek(week int, livedWeeks int64) gridCell {
	switch {
	case int64(week) == livedWeeks:
		return gridCell{kind: cellNow}
	case int64(week) < livedWeeks:
		return gridCell{kind: cellLived}
	}
	return gridCell{kind: cellFuture, milestone: max(0, lifespan.MilestoneIndex(week))}
}

func (c gridCell) glyph() string {
	switch c.kind {
	case cellLived:
		return glyphLived
	case cellNow:
		return glyphNow
	default:
		return glyphFuture
	}
}

func (c gridCell) style() lipgloss.Style {
	switch c.kind {
	case cellLived:
		return gridLivedStyle
	case cellNow:
		return gridNowStyle
	default:
		m := gridMilestones[c.milestone]
		return lipgloss.NewStyle().Foreground(lipgloss.Color(m.BorderColor))
	}
}

// GridLines renders the week grid with one line per year of the expectancy.
func GridLines(livedWeeks int64, opts GridOptions) []string {
	lines := make([]string, 0, lifespan.ExpectancyYears)
	for year := 0; year < lifespan.ExpectancyYears; year++ {
		var b strings.Builder
		if opts.YearLabels {
			label := "    "
			if year%yearLabelEvery == 0 {
				label = fmt.Sprintf("%3d ", year)
			}
			if opts.Color {
				label = gridLabelStyle.Render(label)
			}
			b.WriteString(label)
		}
		// Consecutive cells of the same kind are rendered as one run.
		var run strings.Builder
		var runCell gridCell
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if opts.Color {
				b.WriteString(runCell.style().Render(run.String()))
			} else {
				b.WriteString(run.String())
			}
			run.Reset()
		}
		for col := 0; col < lifespan.WeeksInYear; col++ {
			cell := classifyWeek(year*lifespan.WeeksInYear+col, livedWeeks)
			if run.Len() > 0 && cell != runCell {
				flush()
			}
			runCell = cell
			run.WriteString(cell.glyph())
		}
		flush()
		lines = append(lines, b.String())
	}
	return lines
}

// GridLegend describes the grid glyphs and milestone tints.
func GridLegend(opts GridOptions) string {
	parts := []string{}
	for i, m := range gridMilestones {
		item := gridCell{kind: cellFuture, milestone: i}
		parts = append(parts, legendItem(item, m.Label, opts.Color))
	}
	parts = append(parts,
		legendItem(gridCell{kind: cellLived}, "lived", opts.Color),
		legendItem(gridCell{kind: cellNow}, "now", opts.Color),
	)
	return strings.Join(parts, "  ")
}

func legendItem(c gridCell, label string, color bool) string {
	glyph := c.glyph()
	if color {
		glyph = c.style().Render(glyph)
	}
	return glyph + " " + label
}

// RenderGrid prints the titled week grid followed by its legend.
func RenderGrid(w io.Writer, livedWeeks int64, opts GridOptions) error {
	if _, err := fmt.Fprintf(w, "The Web of Time (%d weeks, one row per year)\n", lifespan.TotalWeeks); err != nil {
		return err
	}
	for _, line := range GridLines(livedWeeks, opts) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, GridLegend(opts)); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}
