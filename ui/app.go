package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cheerioskun/findninja/internal/matchers"
	"github.com/cheerioskun/findninja/internal/messages"
	"github.com/cheerioskun/findninja/internal/models"
	"github.com/cheerioskun/findninja/ui/patterns"
	"github.com/cheerioskun/findninja/ui/results"
)

// FocusedPanel represents which panel is currently focused
type FocusedPanel int

const (
	PatternsPanel FocusedPanel = iota
	ResultsPanel
)

// AppModel is the interactive pattern tester. It scans nothing itself: the
// entries are walked once up front and re-filtered on every pattern change.
type AppModel struct {
	base    *models.Query
	entries []*models.Entry

	patterns *patterns.Model
	results  *results.Model

	focused FocusedPanel
	width   int
	height  int

	status   string
	quitting bool
}

// NewAppModel creates the tester over entries. Patterns already in base seed
// the pattern panel; base's dialect, case, type and timeout apply to every
// evaluation.
func NewAppModel(base *models.Query, entries []*models.Entry) *AppModel {
	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.Path
	}

	pm := patterns.NewModel(base.Dialect, base.IgnoreCase)
	pm.SetPaths(paths)
	for _, p := range base.IncludeRegex {
		pm.AddPattern(p, patterns.IncludeType)
	}
	for _, p := range base.ExcludeRegex {
		pm.AddPattern(p, patterns.ExcludeType)
	}
	pm.Focus()

	return &AppModel{
		base:     base,
		entries:  entries,
		patterns: pm,
		results:  results.NewModel(),
		focused:  PatternsPanel,
		width:    80,
		height:   24,
		status:   "Ready",
	}
}

// Init implements tea.Model
func (m *AppModel) Init() tea.Cmd {
	msg := m.patterns.ChangedMsg()
	return func() tea.Msg { return msg }
}

// Update implements tea.Model
func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizePanels()
		return m, nil

	case messages.PatternsChangedMsg:
		return m, m.applyPatterns(msg)

	case messages.ResultsUpdatedMsg:
		var cmd tea.Cmd
		m.results, cmd = m.results.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		// The text input owns every other key while a pattern is edited
		if !m.patterns.IsEditing() {
			switch msg.String() {
			case "q":
				m.quitting = true
				return m, tea.Quit
			case "tab", "shift+tab":
				m.switchPanel()
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	switch m.focused {
	case PatternsPanel:
		m.patterns, cmd = m.patterns.Update(msg)
	case ResultsPanel:
		m.results, cmd = m.results.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model
func (m *AppModel) View() string {
	if m.quitting {
		return ""
	}

	header := m.renderHeader()
	status := m.renderStatus()

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(status)
	leftWidth := m.width / 2
	rightWidth := m.width - leftWidth

	left := m.panelStyle(PatternsPanel, leftWidth, contentHeight).Render(m.patterns.View())
	right := m.panelStyle(ResultsPanel, rightWidth, contentHeight).Render(m.results.View())

	content := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	return lipgloss.JoinVertical(lipgloss.Left, header, content, status)
}

// Status returns the status line text
func (m *AppModel) Status() string { return m.status }

// Focused returns the focused panel
func (m *AppModel) Focused() FocusedPanel { return m.focused }

// Patterns returns the pattern panel
func (m *AppModel) Patterns() *patterns.Model { return m.patterns }

// Results returns the results panel
func (m *AppModel) Results() *results.Model { return m.results }

// applyPatterns evaluates every entry against the new patterns
func (m *AppModel) applyPatterns(msg messages.PatternsChangedMsg) tea.Cmd {
	q := *m.base
	q.Dialect = msg.Dialect
	q.IgnoreCase = msg.IgnoreCase
	q.IncludeRegex = msg.Include
	q.ExcludeRegex = msg.Exclude

	matcher, err := matchers.Build(&q)
	if err != nil {
		m.status = fmt.Sprintf("Error: %v", err)
		return nil
	}

	mio := matchers.NewMatcherIO()
	update := messages.ResultsUpdatedMsg{
		Entries: make([]*models.Entry, 0),
		Scanned: len(m.entries),
	}
	for _, e := range m.entries {
		if matcher.Matches(e, mio) {
			update.Entries = append(update.Entries, e)
			update.TotalSize += e.Size
		}
	}

	m.status = fmt.Sprintf("%d matches", len(update.Entries))
	if msg.Invalid > 0 {
		m.status += fmt.Sprintf(" • %d invalid pattern(s) ignored", msg.Invalid)
	}

	return func() tea.Msg { return update }
}

func (m *AppModel) renderHeader() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("205")).
		Render("findninja - pattern tester")

	root := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Render(fmt.Sprintf("Root: %s (%d paths)", m.base.Root, len(m.entries)))

	help := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Render("Tab: Switch panel | q: Quit")

	return lipgloss.JoinVertical(lipgloss.Left, title, root, help)
}

func (m *AppModel) renderStatus() string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(max(m.width-2, 1)).
		Padding(0, 1).
		Render(m.status)
}

func (m *AppModel) panelStyle(panel FocusedPanel, width, height int) lipgloss.Style {
	borderColor := lipgloss.Color("240")
	if panel == m.focused {
		borderColor = lipgloss.Color("205")
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Width(max(width-2, 1)).
		Height(max(height-2, 1)).
		Padding(0, 1)
}

func (m *AppModel) resizePanels() {
	// header 3, status 3, borders and padding 4
	contentHeight := max(m.height-6-2, 1)
	panelWidth := max(m.width/2-4, 1)
	m.patterns.SetSize(panelWidth, contentHeight)
	m.results.SetSize(panelWidth, contentHeight)
}

func (m *AppModel) switchPanel() {
	if m.focused == PatternsPanel {
		m.focused = ResultsPanel
		m.patterns.Blur()
		m.results.Focus()
		return
	}
	m.focused = PatternsPanel
	m.results.Blur()
	m.patterns.Focus()
}
