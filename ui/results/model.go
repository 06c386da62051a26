package results

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cheerioskun/findninja/internal/messages"
	"github.com/cheerioskun/findninja/internal/models"
)

// Model lists the entries matched by the current patterns
type Model struct {
	entries   []*models.Entry
	scanned   int
	totalSize int64

	focused  bool
	width    int
	height   int
	viewport viewport.Model

	titleStyle lipgloss.Style
	dirStyle   lipgloss.Style
	sizeStyle  lipgloss.Style
	emptyStyle lipgloss.Style
}

// NewModel creates an empty results list
func NewModel() *Model {
	vp := viewport.New(40, 6)
	vp.SetContent("")

	return &Model{
		entries:  make([]*models.Entry, 0),
		width:    40,
		height:   10,
		viewport: vp,

		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			Margin(0, 0, 1, 0),

		dirStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")),

		sizeStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),

		emptyStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true),
	}
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case messages.ResultsUpdatedMsg:
		m.entries = msg.Entries
		m.scanned = msg.Scanned
		m.totalSize = msg.TotalSize
		m.updateViewportContent()
		m.viewport.GotoTop()
		return m, nil

	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		switch msg.String() {
		case "home", "g":
			m.viewport.GotoTop()
			return m, nil
		case "end", "G":
			m.viewport.GotoBottom()
			return m, nil
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the component
func (m *Model) View() string {
	title := "Matches"
	if m.focused {
		title += " *"
	}
	header := m.titleStyle.Render(title)

	content := m.emptyStyle.Render("No matching paths")
	if len(m.entries) > 0 {
		content = m.viewport.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, content, m.renderSummary())
}

func (m *Model) Entries() []*models.Entry { return m.entries }

func (m *Model) updateViewportContent() {
	if len(m.entries) == 0 {
		m.viewport.SetContent("")
		return
	}
	m.viewport.SetContent(m.renderEntries())
}

func (m *Model) renderEntries() string {
	maxPathWidth := m.width - 12
	if maxPathWidth < 10 {
		maxPathWidth = 10
	}

	lines := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		path := e.Path
		if len(path) > maxPathWidth {
			path = "..." + path[len(path)-maxPathWidth+3:]
		}

		if e.IsDir {
			lines = append(lines, m.dirStyle.Render(path+"/"))
			continue
		}
		lines = append(lines, fmt.Sprintf("%-*s %s", maxPathWidth, path, m.sizeStyle.Render(formatBytes(e.Size))))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderSummary() string {
	summary := fmt.Sprintf("%d of %d paths • %s", len(m.entries), m.scanned, formatBytes(m.totalSize))
	if len(m.entries) > 0 && m.viewport.Height > 0 {
		summary += fmt.Sprintf(" • %d/%d", m.viewport.YOffset+1, len(m.entries))
	}
	return m.sizeStyle.Render(summary)
}

func (m *Model) Focus() {
	m.focused = true
}

func (m *Model) Blur() {
	m.focused = false
}

func (m *Model) IsFocused() bool {
	return m.focused
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	// Title takes 2 lines, summary 1
	viewportHeight := height - 4
	if viewportHeight < 1 {
		viewportHeight = 1
	}
	m.viewport.Width = width
	m.viewport.Height = viewportHeight

	if len(m.entries) > 0 {
		m.updateViewportContent()
	}
}

// formatBytes formats byte counts in human-readable format
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
