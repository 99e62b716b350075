// Package statsui provides the Bubble Tea results interface.
package statsui

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/verte-zerg/memento/internal/lifespan"
	"github.com/verte-zerg/memento/internal/model"
	"github.com/verte-zerg/memento/internal/stats"
	"github.com/verte-zerg/memento/internal/store"
)

const (
	tabOverview = iota
	tabWorld
	tabCosmos
	tabGrid
	tabGlossary
	tabJournal
)

const (
	plotHeight      = 8
	journalWindow   = 3
	defaultWidth    = 80
	cardRowMinWidth = 72
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#F43F5E"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	cardCaptionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")).Italic(true)
	sectionTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	noteStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8")).Italic(true)
)

// ResetMsg asks the parent model to discard the results and show the form again.
type ResetMsg struct{}

// Model implements the Bubble Tea results UI for one set of stats.
type Model struct {
	stats  *model.Stats
	store  *store.Store
	cfg    model.Config
	logger *zap.Logger

	journal stats.Journal
	errMsg  string

	tabs      []string
	activeTab int
	viewports []viewport.Model

	width  int
	height int
}

// NewModel constructs a results UI model. st may be nil when the journal is off.
func NewModel(s *model.Stats, st *store.Store, cfg model.Config, logger *zap.Logger) *Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Model{
		stats:  s,
		store:  st,
		cfg:    cfg,
		logger: logger,
		tabs:   []string{"Overview", "World", "Cosmos", "Grid", "Glossary", "Journal"},
	}
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
	m.refreshJournal()
	m.renderTabContents()
	return m
}

// SetSize applies a terminal size; the parent forwards it when switching screens.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.updateLayout()
	m.renderTabContents()
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		switch msg.String() {
		case "left", "h", "shift+tab":
			m.moveTab(-1)
			return m, nil
		case "right", "l", "tab":
			m.moveTab(1)
			return m, nil
		case "r", "esc":
			return m, func() tea.Msg { return ResetMsg{} }
		case "g", "home":
			m.viewports[m.activeTab].GotoTop()
			return m, nil
		case "G", "end":
			m.viewports[m.activeTab].GotoBottom()
			return m, nil
		default:
			vp := m.viewports[m.activeTab]
			var cmd tea.Cmd
			vp, cmd = vp.Update(msg)
			m.viewports[m.activeTab] = vp
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.viewports[m.activeTab].View(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := max(1, lipgloss.Height(activeNavStyle.Render("X")))
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = max(1, m.height-headerHeight-footerHeight)
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, vpHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = vpHeight
	}
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	if count == 0 {
		return
	}
	m.activeTab = (m.activeTab + delta + count) % count
}

func (m *Model) contentWidth() int {
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}
	if m.cfg.GridWidth > 0 && m.cfg.GridWidth < 1 {
		width = int(float64(width) * m.cfg.GridWidth)
	}
	return max(20, width)
}

func (m *Model) refreshJournal() {
	if m.store == nil || m.stats == nil {
		return
	}
	filter := model.JournalFilter{BirthDate: m.stats.BirthDate.Format(stats.BirthDateLayout)}
	journal, err := stats.BuildJournal(context.Background(), m.store, filter)
	if err != nil {
		m.logger.Warn("failed to load journal", zap.Error(err))
		m.errMsg = fmt.Sprintf("failed to load journal: %v", err)
		return
	}
	m.errMsg = ""
	m.journal = journal
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	summary := "No birth date set."
	if m.stats != nil {
		summary = fmt.Sprintf("Born %s  ·  %s weeks lived  ·  %s%%",
			m.stats.BirthDate.Format(stats.BirthDateLayout), formatCount(m.stats.LivedWeeks), m.stats.Percentage)
	}
	return tabs + "\n" + headerStyle.Render(truncateLine(summary, m.width))
}

func (m *Model) renderFooter() string {
	help := headerStyle.Render("Nav: left/right  Scroll: up/down/pgup/pgdn  New date: r  Quit: q")
	if m.errMsg != "" {
		return help + "\n" + errorStyle.Render(m.errMsg)
	}
	return help
}

func (m *Model) renderTabContents() {
	if len(m.viewports) == 0 {
		return
	}
	if m.stats == nil {
		for i := range m.viewports {
			m.viewports[i].SetContent("No birth date set.")
		}
		return
	}
	width := m.contentWidth()
	sections := indexSections(stats.Sections(m.stats))
	m.viewports[tabOverview].SetContent(renderOverview(m.stats, sections, width))
	m.viewports[tabWorld].SetContent(renderSections(width, sections[stats.SectionSocial], sections[stats.SectionNature]))
	m.viewports[tabCosmos].SetContent(renderSections(width, sections[stats.SectionCosmic], sections[stats.SectionUniverse]))
	m.viewports[tabGrid].SetContent(renderGrid(m.stats.LivedWeeks, m.cfg.Color, m.width))
	m.viewports[tabGlossary].SetContent(renderGlossary(width))
	m.viewports[tabJournal].SetContent(m.renderJournal(width))
}

func indexSections(secs []stats.Section) map[string]stats.Section {
	out := make(map[string]stats.Section, len(secs))
	for _, s := range secs {
		out[s.Title] = s
	}
	return out
}

func renderOverview(s *model.Stats, sections map[string]stats.Section, width int) string {
	cards := []string{
		metricCard("LIVED", formatCount(s.LivedWeeks), "weeks consumed"),
		metricCard("REMAINING", formatCount(s.RemainingWeeks), "weeks to live"),
		metricCard("PROGRESS", s.Percentage+"%", "of the estimate"),
	}
	var top string
	if width < cardRowMinWidth {
		top = strings.Join(cards, "\n")
	} else {
		top = lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	}
	rest := renderSections(width, sections[stats.SectionHigh], sections[stats.SectionParents])
	return strings.TrimRight(top+"\n\n"+rest, "\n")
}

func metricCard(label, value, caption string) string {
	content := fmt.Sprintf("%s\n%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value), cardCaptionStyle.Render(caption))
	return cardStyle.Render(content)
}

func renderSections(width int, secs ...stats.Section) string {
	var parts []string
	for _, sec := range secs {
		if sec.Title == "" {
			continue
		}
		text := sectionTitleStyle.Render(strings.ToUpper(sec.Title)) + "\n" + strings.Join(sec.Lines(), "\n")
		if sec.Note != "" {
			text += "\n" + noteStyle.Width(width).Render(sec.Note)
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, "\n\n")
}

func renderGrid(livedWeeks int64, color bool, width int) string {
	opts := stats.GridOptions{Color: color, YearLabels: true}
	lines := stats.GridLines(livedWeeks, opts)
	grid := strings.Join(lines, "\n") + "\n\n" + stats.GridLegend(opts)
	if width > 0 {
		grid = lipgloss.PlaceHorizontal(width, lipgloss.Center, grid)
	}
	return grid
}

func renderGlossary(width int) string {
	var parts []string
	for _, ms := range lifespan.Milestones() {
		title := lipgloss.NewStyle().Foreground(lipgloss.Color(ms.BorderColor)).Bold(true).Render(strings.ToUpper(ms.Label))
		weeks := headerStyle.Render(fmt.Sprintf("weeks %d-%d", ms.Start, ms.End-1))
		parts = append(parts, title+"  "+weeks+"\n"+noteStyle.Width(width).Render(ms.Text))
	}
	return strings.Join(parts, "\n\n")
}

func (m *Model) renderJournal(width int) string {
	if m.store == nil {
		return "Journal disabled."
	}
	var buf bytes.Buffer
	if err := stats.RenderJournalTable(&buf, m.journal.Snapshots); err != nil {
		return fmt.Sprintf("Failed to render journal: %v", err)
	}
	if len(m.journal.Snapshots) > 1 {
		if err := stats.RenderJournalCurves(&buf, m.journal.Snapshots, journalWindow, width, plotHeight, m.cfg.Color); err != nil {
			return fmt.Sprintf("Failed to render curves: %v", err)
		}
	}
	return strings.TrimRight(buf.String(), "\n")
}
