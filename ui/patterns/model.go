package patterns

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cheerioskun/findninja/internal/messages"
	"github.com/cheerioskun/findninja/internal/regex"
)

var (
	primaryColor   = lipgloss.Color("205")
	secondaryColor = lipgloss.Color("240")
	successColor   = lipgloss.Color("46")
	errorColor     = lipgloss.Color("196")
	warningColor   = lipgloss.Color("214")

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Italic(true).
			Padding(0, 1)

	editInputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Margin(0, 0, 1, 0)

	selectedPatternStyle = lipgloss.NewStyle().
				Background(primaryColor).
				Foreground(lipgloss.Color("0")).
				Padding(0, 1)

	patternStyle = lipgloss.NewStyle().
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Padding(0, 1)
)

// SourceName identifies this panel in the messages it sends
const SourceName = "patterns_panel"

// Model is the ordered include/exclude pattern panel. Every pattern is
// compiled under the panel's dialect and case setting.
type Model struct {
	patterns   []Pattern
	dialect    regex.RegexDialect
	ignoreCase bool

	cursor         int
	editMode       bool
	editInput      textinput.Model
	editIndex      int // -1 while adding
	newPatternType PatternType

	focused bool
	width   int
	height  int

	// Paths used for per-pattern match counts
	paths []string
}

// NewModel creates an empty panel using dialect and ignoreCase
func NewModel(dialect regex.RegexDialect, ignoreCase bool) *Model {
	input := textinput.New()
	input.Placeholder = "Enter pattern..."
	input.CharLimit = 256

	return &Model{
		patterns:       make([]Pattern, 0),
		dialect:        dialect,
		ignoreCase:     ignoreCase,
		editInput:      input,
		editIndex:      -1,
		newPatternType: IncludeType,
		width:          40,
		height:         20,
		paths:          make([]string, 0),
	}
}

// Update handles messages for the panel
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	var cmd tea.Cmd

	if m.editMode {
		if key, ok := msg.(tea.KeyMsg); ok {
			switch key.String() {
			case "enter":
				return m.confirmEdit()
			case "esc":
				return m.cancelEdit(), nil
			}
		}
		m.editInput, cmd = m.editInput.Update(msg)
		return m, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		m.moveCursorUp()
	case "down", "j":
		m.moveCursorDown()
	case "a":
		m.newPatternType = IncludeType
		m.startAddPattern()
	case "A":
		m.newPatternType = ExcludeType
		m.startAddPattern()
	case "e", "enter":
		if m.hasPatternAtCursor() {
			m.startEditPattern()
		} else {
			m.newPatternType = IncludeType
			m.startAddPattern()
		}
	case "d", "delete":
		cmd = m.deletePattern()
	case "r":
		cmd = m.SetDialect(nextDialect(m.dialect))
	case "i":
		cmd = m.SetIgnoreCase(!m.ignoreCase)
	}

	return m, cmd
}

// View renders the panel
func (m *Model) View() string {
	if m.editMode {
		return m.renderEditMode()
	}
	return m.renderNormalMode()
}

func (m *Model) Focus() {
	m.focused = true
}

func (m *Model) Blur() {
	m.focused = false
	if m.editMode {
		m.cancelEdit()
	}
}

func (m *Model) IsFocused() bool {
	return m.focused
}

// IsEditing reports whether the text input owns the keyboard
func (m *Model) IsEditing() bool {
	return m.editMode
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetPaths replaces the paths used for match counts
func (m *Model) SetPaths(paths []string) {
	m.paths = paths
	m.countAll()
}

func (m *Model) Dialect() regex.RegexDialect { return m.dialect }

func (m *Model) IgnoreCase() bool { return m.ignoreCase }

func (m *Model) Patterns() []Pattern { return m.patterns }

// AddPattern compiles and appends a pattern
func (m *Model) AddPattern(text string, pt PatternType) tea.Cmd {
	m.patterns = append(m.patterns, m.compilePattern(text, pt))
	m.cursor = len(m.patterns) - 1
	m.countAll()
	return m.emitPatternsChangedCmd()
}

// SetDialect switches dialect and recompiles every pattern
func (m *Model) SetDialect(d regex.RegexDialect) tea.Cmd {
	m.dialect = d
	m.recompileAll()
	return m.emitPatternsChangedCmd()
}

// SetIgnoreCase switches case folding and recompiles every pattern
func (m *Model) SetIgnoreCase(on bool) tea.Cmd {
	m.ignoreCase = on
	m.recompileAll()
	return m.emitPatternsChangedCmd()
}

// ChangedMsg describes the panel's current valid patterns
func (m *Model) ChangedMsg() messages.PatternsChangedMsg {
	msg := messages.PatternsChangedMsg{
		Include:         make([]string, 0),
		Exclude:         make([]string, 0),
		Dialect:         m.dialect,
		IgnoreCase:      m.ignoreCase,
		SourceComponent: SourceName,
	}
	for _, p := range m.patterns {
		switch {
		case !p.Valid:
			msg.Invalid++
		case p.Type == IncludeType:
			msg.Include = append(msg.Include, p.Text)
		default:
			msg.Exclude = append(msg.Exclude, p.Text)
		}
	}
	return msg
}

func (m *Model) renderNormalMode() string {
	title := fmt.Sprintf("Patterns [%s", m.dialect)
	if m.ignoreCase {
		title += ", ignore case"
	}
	title += "]"

	header := headerStyle.Foreground(primaryColor).Render(title)
	if m.focused {
		header = headerStyle.
			Foreground(primaryColor).
			Background(lipgloss.Color("235")).
			Render(title + " *")
	}

	help := ""
	if m.focused {
		helpItems := []string{
			"↑/↓: Navigate",
			"a: Include",
			"A: Exclude",
			"e: Edit",
			"d: Delete",
			"r: Dialect",
			"i: Case",
		}
		help = helpStyle.Render(strings.Join(helpItems, " • "))
	}

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(help)
	if contentHeight < 1 {
		contentHeight = 1
	}

	content := lipgloss.NewStyle().
		Height(contentHeight).
		Render(m.renderPatterns(contentHeight))

	return lipgloss.JoinVertical(lipgloss.Left, header, content, help)
}

func (m *Model) renderEditMode() string {
	title := "Edit Pattern"
	if m.editIndex == -1 {
		title = fmt.Sprintf("Add %s Pattern", m.newPatternType)
	}

	header := headerStyle.Foreground(primaryColor).Render(fmt.Sprintf("%s (%s)", title, m.dialect))
	input := editInputStyle.Render(m.editInput.View())

	lines := []string{header, input}

	// Live feedback while typing
	if value := strings.TrimSpace(m.editInput.Value()); value != "" {
		if _, err := regex.Compile(m.dialect, value, m.ignoreCase); err != nil {
			lines = append(lines, errorStyle.Render(err.Error()))
		}
	}

	lines = append(lines, helpStyle.Render("Enter: Confirm • Esc: Cancel"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *Model) renderPatterns(maxHeight int) string {
	if len(m.patterns) == 0 {
		emptyMsg := "No patterns, every path matches"
		if m.focused {
			emptyMsg += " (press 'a' for include, 'A' for exclude)"
		}
		return lipgloss.NewStyle().
			Foreground(secondaryColor).
			Italic(true).
			Render(emptyMsg)
	}

	// Reserve a line for the error of the selected pattern
	rows := maxHeight - 1
	if rows < 1 {
		rows = 1
	}

	visibleStart := 0
	visibleEnd := len(m.patterns)
	if len(m.patterns) > rows {
		if m.cursor >= rows {
			visibleStart = m.cursor - rows + 1
		}
		visibleEnd = visibleStart + rows
	}

	var lines []string
	if visibleStart > 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(secondaryColor).Render("↑ ..."))
	}
	for i := visibleStart; i < visibleEnd; i++ {
		lines = append(lines, m.renderPattern(m.patterns[i], m.focused && i == m.cursor))
	}
	if visibleEnd < len(m.patterns) {
		lines = append(lines, lipgloss.NewStyle().Foreground(secondaryColor).Render("↓ ..."))
	}

	if m.hasPatternAtCursor() && !m.patterns[m.cursor].Valid {
		lines = append(lines, errorStyle.Render(m.patterns[m.cursor].Error))
	}

	return strings.Join(lines, "\n")
}

func (m *Model) renderPattern(pattern Pattern, isSelected bool) string {
	typeIcon := "+"
	typeColor := successColor
	if pattern.Type == ExcludeType {
		typeIcon = "-"
		typeColor = errorColor
	}

	statusIcon := "✓"
	matchInfo := fmt.Sprintf(" (%d)", pattern.MatchCount)
	if !pattern.Valid {
		statusIcon = "✗"
		typeColor = warningColor
		matchInfo = " (error)"
	}

	text := pattern.Text
	maxText := m.width - 16
	if maxText < 8 {
		maxText = 8
	}
	if len(text) > maxText {
		text = text[:maxText-3] + "..."
	}

	content := fmt.Sprintf("%s %s %s%s", typeIcon, statusIcon, text, matchInfo)
	if isSelected {
		return selectedPatternStyle.Render(content)
	}
	return patternStyle.Foreground(typeColor).Render(content)
}

func (m *Model) hasPatternAtCursor() bool {
	return m.cursor >= 0 && m.cursor < len(m.patterns)
}

func (m *Model) moveCursorUp() {
	if m.cursor > 0 {
		m.cursor--
	} else if len(m.patterns) > 0 {
		m.cursor = len(m.patterns) - 1
	}
}

func (m *Model) moveCursorDown() {
	if len(m.patterns) == 0 {
		m.cursor = 0
		return
	}
	if m.cursor < len(m.patterns)-1 {
		m.cursor++
	} else {
		m.cursor = 0
	}
}

func (m *Model) startAddPattern() {
	m.editMode = true
	m.editIndex = -1
	m.editInput.SetValue("")
	m.editInput.Focus()
}

func (m *Model) startEditPattern() {
	pattern := m.patterns[m.cursor]
	m.editMode = true
	m.editIndex = m.cursor
	m.newPatternType = pattern.Type
	m.editInput.SetValue(pattern.Text)
	m.editInput.Focus()
}

func (m *Model) confirmEdit() (*Model, tea.Cmd) {
	// Patterns are taken verbatim; only an all-blank entry is ignored.
	value := m.editInput.Value()
	if strings.TrimSpace(value) == "" {
		return m.cancelEdit(), nil
	}

	var cmd tea.Cmd
	if m.editIndex == -1 {
		cmd = m.AddPattern(value, m.newPatternType)
	} else {
		m.patterns[m.editIndex] = m.compilePattern(value, m.newPatternType)
		m.countAll()
		cmd = m.emitPatternsChangedCmd()
	}

	return m.cancelEdit(), cmd
}

func (m *Model) cancelEdit() *Model {
	m.editMode = false
	m.editIndex = -1
	m.editInput.Blur()
	m.editInput.SetValue("")
	return m
}

func (m *Model) deletePattern() tea.Cmd {
	if !m.hasPatternAtCursor() {
		return nil
	}

	m.patterns = append(m.patterns[:m.cursor], m.patterns[m.cursor+1:]...)
	if m.cursor >= len(m.patterns) && len(m.patterns) > 0 {
		m.cursor = len(m.patterns) - 1
	} else if len(m.patterns) == 0 {
		m.cursor = 0
	}

	return m.emitPatternsChangedCmd()
}

func (m *Model) compilePattern(text string, pt PatternType) Pattern {
	compiled, err := regex.Compile(m.dialect, text, m.ignoreCase)
	if err != nil {
		return Pattern{Text: text, Type: pt, Error: err.Error()}
	}
	return Pattern{Text: text, Type: pt, Compiled: compiled, Valid: true}
}

func (m *Model) recompileAll() {
	for i, p := range m.patterns {
		m.patterns[i] = m.compilePattern(p.Text, p.Type)
	}
	m.countAll()
}

func (m *Model) countAll() {
	for i := range m.patterns {
		m.patterns[i].MatchCount = m.countMatches(&m.patterns[i])
	}
}

func (m *Model) countMatches(pattern *Pattern) int {
	if !pattern.Valid {
		return 0
	}

	count := 0
	for _, path := range m.paths {
		if pattern.Compiled.Matches(path) {
			count++
		}
	}
	return count
}

func (m *Model) emitPatternsChangedCmd() tea.Cmd {
	msg := m.ChangedMsg()
	return func() tea.Msg {
		return msg
	}
}

// nextDialect cycles through every dialect in order
func nextDialect(d regex.RegexDialect) regex.RegexDialect {
	all := regex.AllDialects()
	for i, candidate := range all {
		if candidate == d {
			return all[(i+1)%len(all)]
		}
	}
	return regex.DefaultDialect()
}
