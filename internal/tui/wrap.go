package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const dateGuide = "YYYY-MM-DD"

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

// buildGuideRunes styles the date guide against what has been typed so far.
// Positions past the input show the guide letter; the segment holding the
// cursor is highlighted.
func buildGuideRunes(guide, inputRunes []rune, cursorIndex int) []styledRune {
	segments := findSegments(guide)
	current := segmentForCursor(segments, cursorIndex)

	out := make([]styledRune, 0, len(guide))
	for i, want := range guide {
		displayed := want
		style := pendingStyle
		if i < len(inputRunes) {
			displayed = inputRunes[i]
			if guideAccepts(want, inputRunes[i]) {
				style = validStyle
			} else {
				style = invalidStyle
			}
		} else if want != '-' && current != nil && i >= current.start && i < current.end {
			style = currentSegmentStyle
		}
		if i == cursorIndex && i >= len(inputRunes) {
			style = style.Underline(true)
		}
		out = append(out, styledRune{
			s:     style.Render(string(displayed)),
			width: runewidth.RuneWidth(displayed),
		})
	}
	return out
}

func guideAccepts(want, got rune) bool {
	if want == '-' {
		return got == '-'
	}
	return got >= '0' && got <= '9'
}

type segmentRange struct {
	start int
	end   int
}

func findSegments(guide []rune) []segmentRange {
	segments := []segmentRange{}
	start := -1
	for i, r := range guide {
		if r == '-' {
			if start != -1 {
				segments = append(segments, segmentRange{start: start, end: i})
				start = -1
			}
			continue
		}
		if start == -1 {
			start = i
		}
	}
	if start != -1 {
		segments = append(segments, segmentRange{start: start, end: len(guide)})
	}
	return segments
}

func segmentForCursor(segments []segmentRange, cursorIndex int) *segmentRange {
	if len(segments) == 0 || cursorIndex < 0 {
		return nil
	}
	for i, seg := range segments {
		if cursorIndex < seg.end {
			return &segments[i]
		}
	}
	return nil
}

// plainRunes styles every rune of text the same way.
func plainRunes(text string, style lipgloss.Style) []styledRune {
	out := make([]styledRune, 0, len(text))
	for _, r := range text {
		out = append(out, styledRune{
			s:       style.Render(string(r)),
			width:   runewidth.RuneWidth(r),
			isSpace: r == ' ',
		})
	}
	return out
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

// wrapStyledRunes breaks at the last space that fits, or mid-word when a
// single word is wider than the line.
func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var out strings.Builder
	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				out.WriteString(renderStyledRunes(line[:lastSpaceIdx]))
				out.WriteRune('\n')
				line = append([]styledRune{}, line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				out.WriteString(renderStyledRunes(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderStyledRunes(line))
	return out.String()
}

func lineWidthOf(line []styledRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []styledRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
