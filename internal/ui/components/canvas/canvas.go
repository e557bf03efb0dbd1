// Package canvas shows the current diagram: its tables on the left and the
// selected table's columns or indexes on the right.
package canvas

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/evertras/bubble-table/table"
	"github.com/muesli/reflow/truncate"

	"github.com/nhath/ezchart/internal/diagram"
	eztable "github.com/nhath/ezchart/internal/ui/components/table"
	"github.com/nhath/ezchart/internal/ui/styles"
)

type DetailTab int

const (
	TabColumns DetailTab = iota
	TabIndexes
)

// Styles for the canvas
type Styles struct {
	Pane        lipgloss.Style
	PaneFocused lipgloss.Style
	Title       lipgloss.Style
	Item        lipgloss.Style
	ItemActive  lipgloss.Style
	Meta        lipgloss.Style
	Spinner     lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
}

// DefaultStyles builds styles from the active theme
func DefaultStyles() Styles {
	return Styles{
		Pane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(styles.BorderColor()).
			Padding(0, 1),
		PaneFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(styles.HighlightColor()).
			Padding(0, 1),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.AccentColor()),
		Item: lipgloss.NewStyle().
			Foreground(styles.TextPrimary()),
		ItemActive: lipgloss.NewStyle().
			Foreground(styles.SuccessColor()).
			Bold(true),
		Meta: lipgloss.NewStyle().
			Foreground(styles.TextFaint()).
			Italic(true),
		Spinner: lipgloss.NewStyle().
			Foreground(styles.HighlightColor()),
		TabActive: lipgloss.NewStyle().
			Foreground(styles.SuccessColor()).
			Bold(true).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(styles.SuccessColor()).
			Padding(0, 1),
		TabInactive: lipgloss.NewStyle().
			Foreground(styles.TextFaint()).
			Padding(0, 1),
	}
}

// Model represents the canvas state
type Model struct {
	diagram     *diagram.Diagram
	selectedIdx int
	activeTab   DetailTab
	width       int
	height      int
	styles      Styles
	list        viewport.Model
	detail      table.Model
	spinner     spinner.Model
	loading     string
}

func New() Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	st := DefaultStyles()
	s.Style = st.Spinner

	return Model{
		styles:  st,
		list:    viewport.New(0, 0),
		spinner: s,
	}
}

func (m Model) SetSize(w, h int) Model {
	m.width = w
	m.height = h
	m.list.Width = m.listWidth() - 4
	m.list.Height = max(h-4, 1)
	return m.refresh()
}

// SetDiagram replaces the shown diagram, keeping the selection when the
// selected table still exists
func (m Model) SetDiagram(d *diagram.Diagram) Model {
	var prev string
	if t := m.Selected(); t != nil {
		prev = t.Name
	}
	m.diagram = d
	m.selectedIdx = 0
	if d != nil && prev != "" {
		for i, t := range d.Tables {
			if t.Name == prev {
				m.selectedIdx = i
				break
			}
		}
	}
	return m.refresh()
}

// StartLoading shows a spinner with label until StopLoading
func (m Model) StartLoading(label string) (Model, tea.Cmd) {
	m.loading = label
	return m, m.spinner.Tick
}

func (m Model) StopLoading() Model {
	m.loading = ""
	return m
}

// Selected returns the highlighted table, or nil
func (m Model) Selected() *diagram.Table {
	if m.diagram == nil || m.selectedIdx >= len(m.diagram.Tables) {
		return nil
	}
	return &m.diagram.Tables[m.selectedIdx]
}

func (m Model) ActiveTab() DetailTab { return m.activeTab }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.loading != "" {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case tea.KeyMsg:
		n := 0
		if m.diagram != nil {
			n = len(m.diagram.Tables)
		}
		switch msg.String() {
		case "up", "k":
			if m.selectedIdx > 0 {
				m.selectedIdx--
				m = m.refresh()
			}
			return m, nil
		case "down", "j":
			if m.selectedIdx < n-1 {
				m.selectedIdx++
				m = m.refresh()
			}
			return m, nil
		case "g", "home":
			m.selectedIdx = 0
			return m.refresh(), nil
		case "G", "end":
			m.selectedIdx = max(n-1, 0)
			return m.refresh(), nil
		case "tab", "left", "right", "h", "l":
			if m.activeTab == TabColumns {
				m.activeTab = TabIndexes
			} else {
				m.activeTab = TabColumns
			}
			return m.refresh(), nil
		}
	}

	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m Model) listWidth() int {
	return min(max(m.width/3, 24), 40)
}

func (m Model) refresh() Model {
	m.list.SetContent(m.renderList())
	if m.list.Height > 0 {
		if m.selectedIdx < m.list.YOffset {
			m.list.SetYOffset(m.selectedIdx)
		} else if m.selectedIdx >= m.list.YOffset+m.list.Height {
			m.list.SetYOffset(m.selectedIdx - m.list.Height + 1)
		}
	}

	t := m.Selected()
	if t == nil {
		m.detail = eztable.New(nil)
		return m
	}
	if m.activeTab == TabColumns {
		m.detail = eztable.FromFields(t.Fields)
	} else {
		m.detail = eztable.FromIndexes(t, m.diagram.Relationships)
	}
	m.detail = m.detail.
		WithTargetWidth(max(m.width-m.listWidth()-6, 20)).
		WithPageSize(max(m.height-9, 3)).
		Focused(false)
	return m
}

func (m Model) renderList() string {
	if m.diagram == nil {
		return ""
	}
	var b strings.Builder
	width := m.listWidth() - 6
	for i, t := range m.diagram.Tables {
		style := m.styles.Item
		prefix := "  "
		if i == m.selectedIdx {
			style = m.styles.ItemActive
			prefix = "▸ "
		}
		line := truncate.StringWithTail(t.QualifiedName(), uint(max(width, 4)), "…")
		b.WriteString(style.Render(prefix + line))
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// View renders both panes
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.loading != "" {
		box := m.styles.Pane.Render(fmt.Sprintf("%s %s", m.spinner.View(), m.loading))
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	if m.diagram == nil || len(m.diagram.Tables) == 0 {
		hint := m.styles.Meta.Render("This diagram has no tables yet.\nCreate a new diagram from a connection profile (ctrl+t) or load one with `ezchart load`.")
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, hint)
	}

	lw := m.listWidth()
	left := m.styles.PaneFocused.
		Width(lw - 2).
		Height(m.height - 2).
		Render(m.styles.Title.Render(fmt.Sprintf("Tables (%d)", len(m.diagram.Tables))) + "\n\n" + m.list.View())

	var right strings.Builder
	t := m.Selected()
	right.WriteString(m.styles.Title.Render(t.QualifiedName()))
	right.WriteString("\n")
	colStyle, idxStyle := m.styles.TabInactive, m.styles.TabInactive
	if m.activeTab == TabColumns {
		colStyle = m.styles.TabActive
	} else {
		idxStyle = m.styles.TabActive
	}
	right.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		colStyle.Render("Columns"), idxStyle.Render("Indexes & keys")))
	right.WriteString("\n")
	if m.activeTab == TabIndexes && m.detail.TotalRows() == 0 {
		right.WriteString(m.styles.Meta.Render("  (No indexes or foreign keys)"))
	} else {
		right.WriteString(m.detail.View())
	}

	rightPane := m.styles.Pane.
		Width(max(m.width-lw-2, 10)).
		Height(m.height - 2).
		Render(right.String())

	return lipgloss.JoinHorizontal(lipgloss.Top, left, rightPane)
}
