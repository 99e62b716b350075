// Package tui provides the Bubble Tea birth-date form and hosts the results view.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/verte-zerg/memento/internal/lifespan"
	"github.com/verte-zerg/memento/internal/model"
	"github.com/verte-zerg/memento/internal/stats"
	"github.com/verte-zerg/memento/internal/statsui"
	"github.com/verte-zerg/memento/internal/store"
)

type state int

const (
	stateForm state = iota
	stateResults
)

const introText = "A ninety year life is a grid of %d weeks. " +
	"Enter your birth date to see how much of it is already filled in and what those weeks add up to."

var (
	titleStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("#F43F5E")).Bold(true)
	introStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	validStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	invalidStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentSegmentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	footerStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// Model switches between the birth-date form and the results view.
type Model struct {
	cfg    model.Config
	store  *store.Store
	logger *zap.Logger
	now    func() time.Time

	state   state
	input   textinput.Model
	errMsg  string
	results *statsui.Model

	width  int
	height int
}

// NewModel constructs the app model. st may be nil when the journal is off,
// and now defaults to time.Now.
func NewModel(cfg model.Config, st *store.Store, logger *zap.Logger, now func() time.Time) *Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	input := textinput.New()
	input.Prompt = "Birth date: "
	input.Placeholder = dateGuide
	input.CharLimit = len(dateGuide)
	input.Width = len(dateGuide) + 1
	input.Focus()

	m := &Model{
		cfg:    cfg,
		store:  st,
		logger: logger,
		now:    now,
		input:  input,
	}
	m.input.SetValue(m.initialBirthDate())
	return m
}

func (m *Model) initialBirthDate() string {
	if m.cfg.BirthDate != "" {
		return m.cfg.BirthDate
	}
	if m.store == nil {
		return ""
	}
	last, err := m.store.LastBirthDate(context.Background())
	if err != nil {
		m.logger.Warn("failed to load last birth date", zap.Error(err))
		return ""
	}
	return last
}

// Submit derives stats from the current input and shows the results on success.
func (m *Model) Submit() {
	value := strings.TrimSpace(m.input.Value())
	if value == "" {
		m.errMsg = "Enter a birth date first."
		return
	}
	s, err := stats.DeriveString(value, m.now())
	if err != nil {
		if errors.Is(err, stats.ErrInvalidBirthDate) {
			m.errMsg = fmt.Sprintf("%q is not a valid date, use %s.", value, dateGuide)
		} else {
			m.errMsg = err.Error()
		}
		m.logger.Debug("birth date rejected", zap.String("input", value), zap.Error(err))
		return
	}
	if s == nil {
		return
	}
	m.errMsg = ""
	m.record(s)
	m.results = statsui.NewModel(s, m.store, m.cfg, m.logger)
	m.results.SetSize(m.width, m.height)
	m.state = stateResults
}

func (m *Model) record(s *model.Stats) {
	if m.store == nil || !m.cfg.Journal {
		return
	}
	id, err := m.store.InsertSnapshot(context.Background(), stats.SnapshotOf(s))
	if err != nil {
		m.logger.Warn("failed to save snapshot", zap.Error(err))
		return
	}
	m.logger.Debug("snapshot saved", zap.Int64("id", id), zap.Int64("lived_weeks", s.LivedWeeks))
}

func (m *Model) reset() tea.Cmd {
	m.state = stateForm
	m.results = nil
	m.errMsg = ""
	m.input.Reset()
	return m.input.Focus()
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.results != nil {
			m.results.SetSize(msg.Width, msg.Height)
		}
		return m, nil
	case statsui.ResetMsg:
		return m, m.reset()
	}

	if m.state == stateResults && m.results != nil {
		_, cmd := m.results.Update(msg)
		return m, cmd
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			m.Submit()
			return m, nil
		}
		m.errMsg = ""
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.state == stateResults && m.results != nil {
		return m.results.View()
	}
	content := m.renderForm()
	if m.width == 0 || m.height == 0 {
		return content
	}
	footer := footerStyle.Render("Enter: show my weeks  Esc: quit")
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) contentWidth() int {
	if m.width <= 0 {
		return 60
	}
	return max(1, int(float64(m.width)*0.70))
}

func (m *Model) renderForm() string {
	width := m.contentWidth()
	intro := wrapStyledRunes(plainRunes(fmt.Sprintf(introText, lifespan.TotalWeeks), introStyle), width)

	inputRunes := []rune(m.input.Value())
	cursorIndex := -1
	if len(inputRunes) < len([]rune(dateGuide)) {
		cursorIndex = len(inputRunes)
	}
	guide := renderStyledRunes(buildGuideRunes([]rune(dateGuide), inputRunes, cursorIndex))

	lines := []string{
		titleStyle.Render("MEMENTO MORI"),
		"",
		intro,
		"",
		m.input.View(),
		strings.Repeat(" ", lipgloss.Width(m.input.Prompt)) + guide,
	}
	if m.errMsg != "" {
		lines = append(lines, "", invalidStyle.Render(m.errMsg))
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(lines, "\n"))
}
