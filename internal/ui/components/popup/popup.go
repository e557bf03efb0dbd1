// Package popup provides a scrollable modal that renders markdown.
package popup

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhath/ezchart/internal/ui/styles"
)

// Styles for the popup
type Styles struct {
	Box    lipgloss.Style
	Header lipgloss.Style
	Footer lipgloss.Style
}

// DefaultStyles builds styles from the active theme
func DefaultStyles() Styles {
	return Styles{
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(styles.AccentColor()).
			Padding(1, 2),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.AccentColor()),
		Footer: lipgloss.NewStyle().
			Foreground(styles.TextFaint()).
			Italic(true),
	}
}

// Model represents the popup state
type Model struct {
	visible  bool
	title    string
	markdown string
	footer   string
	maxWidth int
	screenH  int
	styles   Styles
	viewport viewport.Model
}

// New creates a hidden popup
func New() Model {
	return Model{
		maxWidth: 80,
		styles:   DefaultStyles(),
		viewport: viewport.New(0, 0),
	}
}

// SetScreenSize resizes the popup to fit a w x h screen
func (m Model) SetScreenSize(w, h int) Model {
	m.maxWidth = max(min(80, w-4), 20)
	m.screenH = h
	return m.render()
}

// Show makes the popup visible with markdown content
func (m Model) Show(title, markdown, footer string) Model {
	m.visible = true
	m.title = title
	m.markdown = markdown
	m.footer = footer
	m = m.render()
	m.viewport.GotoTop()
	return m
}

func (m Model) Hide() Model {
	m.visible = false
	return m
}

func (m Model) Visible() bool {
	return m.visible
}

func (m Model) render() Model {
	inner := m.maxWidth - 6
	m.viewport.Width = inner
	m.viewport.Height = max(m.screenH-10, 5)
	m.viewport.SetContent(renderMarkdown(m.markdown, inner))
	return m
}

// renderMarkdown falls back to the raw text when glamour cannot render it
func renderMarkdown(md string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(max(width, 20)),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.visible {
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "q", "esc", "?", "enter":
			m.visible = false
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the popup box, or "" when hidden
func (m Model) View() string {
	if !m.visible {
		return ""
	}

	var b strings.Builder
	if m.title != "" {
		b.WriteString(m.styles.Header.Render(m.title))
		b.WriteString("\n\n")
	}
	b.WriteString(m.viewport.View())
	if m.footer != "" {
		b.WriteString("\n\n")
		b.WriteString(m.styles.Footer.Render(m.footer))
	}

	return m.styles.Box.Width(m.maxWidth).Render(b.String())
}
