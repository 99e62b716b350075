package stats

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/memento/internal/lifespan"
	"github.com/verte-zerg/memento/internal/model"
)

// Output formats accepted by Encode.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Encode writes s in the requested format.
func Encode(w io.Writer, s *model.Stats, format string) error {
	if s == nil {
		return fmt.Errorf("no stats to encode")
	}
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatText:
		return RenderSummary(w, s)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want %s, %s or %s)", format, FormatText, FormatJSON, FormatYAML)
	}
}

// RenderSummary prints every section of s as aligned text.
func RenderSummary(w io.Writer, s *model.Stats) error {
	if s == nil {
		_, err := fmt.Fprintln(w, "No birth date set.")
		return err
	}
	for _, sec := range Sections(s) {
		if err := RenderSection(w, sec); err != nil {
			return err
		}
	}
	return nil
}

// RenderSection prints one section: title, aligned rows and note.
func RenderSection(w io.Writer, sec Section) error {
	if _, err := fmt.Fprintln(w, sec.Title); err != nil {
		return err
	}
	for _, line := range sec.Lines() {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if sec.Note != "" {
		if _, err := fmt.Fprintf(w, "  %s\n", sec.Note); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// Lines returns the section rows as indented, aligned label/value lines.
func (sec Section) Lines() []string {
	rows := make([][]string, 0, len(sec.Rows))
	for _, r := range sec.Rows {
		rows = append(rows, []string{"  " + r[0], r[1]})
	}
	return formatTable(nil, rows, map[int]bool{1: true})
}

// RenderGlossary prints the milestone table.
func RenderGlossary(w io.Writer) error {
	headers := []string{"Stage", "Weeks", "Ages", "About"}
	ms := lifespan.Milestones()
	rows := make([][]string, 0, len(ms))
	for _, m := range ms {
		rows = append(rows, []string{
			m.Label,
			fmt.Sprintf("%d-%d", m.Start, m.End-1),
			fmt.Sprintf("%.1f-%.1f", float64(m.Start)/lifespan.WeeksInYear, float64(m.End)/lifespan.WeeksInYear),
			m.Text,
		})
	}
	for _, line := range formatTable(headers, rows, map[int]bool{1: true, 2: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
