// Package opendiagram lists stored diagrams and lets the user open or delete one.
package opendiagram

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	bbtable "github.com/evertras/bubble-table/table"
	"github.com/sahilm/fuzzy"

	"github.com/nhath/ezchart/internal/store"
	"github.com/nhath/ezchart/internal/ui/components/table"
	"github.com/nhath/ezchart/internal/ui/dialog"
	"github.com/nhath/ezchart/internal/ui/styles"
)

// Lister is the part of store.Store the dialog needs
type Lister interface {
	List() ([]store.Summary, error)
	Delete(id string) error
}

// OpenDiagramMsg asks the root model to load the diagram with ID
type OpenDiagramMsg struct {
	ID string
}

// LoadedMsg carries the result of listing the store
type LoadedMsg struct {
	Items []store.Summary
	Err   error
}

// DeletedMsg reports a deletion
type DeletedMsg struct {
	ID   string
	Name string
	Err  error
}

type summaries []store.Summary

func (s summaries) String(i int) string { return s[i].Name }
func (s summaries) Len() int            { return len(s) }

type Model struct {
	lister  Lister
	visible bool
	loading bool
	err     error

	items     []store.Summary
	shown     []store.Summary
	table     bbtable.Model
	filter    textinput.Model
	filtering bool
	// confirmID is set after the first x; a second x deletes
	confirmID string

	spinner spinner.Model
	width   int
	height  int
}

func New(lister Lister) Model {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "filter by name"

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.HighlightColor())

	return Model{
		lister:  lister,
		filter:  ti,
		spinner: s,
		table:   table.FromSummaries(nil),
	}
}

func (m Model) SetSize(w, h int) Model {
	m.width = w
	m.height = h
	m.filter.Width = m.boxWidth() - 10
	return m
}

func (m Model) Visible() bool                 { return m.visible }
func (m Model) Loading() bool                 { return m.loading }
func (m Model) Err() error                    { return m.err }
func (m Model) Shown() []store.Summary        { return m.shown }
func (m Model) Filtering() bool               { return m.filtering }
func (m Model) PendingDelete() (string, bool) { return m.confirmID, m.confirmID != "" }

// Open shows the dialog and starts loading the stored diagrams
func (m Model) Open() (Model, tea.Cmd) {
	m.visible = true
	m.loading = true
	m.err = nil
	m.confirmID = ""
	m.filtering = false
	m.filter.Reset()
	m.filter.Blur()
	return m, tea.Batch(m.load(), m.spinner.Tick)
}

func (m Model) Close() Model {
	m.visible = false
	m.filtering = false
	m.filter.Blur()
	return m
}

func (m Model) load() tea.Cmd {
	lister := m.lister
	return func() tea.Msg {
		items, err := lister.List()
		return LoadedMsg{Items: items, Err: err}
	}
}

func dismiss() tea.Msg {
	return dialog.DismissMsg{Kind: dialog.OpenDiagram}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		m.loading = false
		m.err = msg.Err
		m.items = msg.Items
		return m.applyFilter(), nil

	case DeletedMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.loading = true
		return m, m.load()

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		if !m.visible {
			return m, nil
		}
		if m.filtering {
			return m.updateFilter(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m Model) updateFilter(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.filtering = false
		m.filter.Reset()
		m.filter.Blur()
		return m.applyFilter(), nil
	case "enter", "down", "up":
		m.filtering = false
		m.filter.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	return m.applyFilter(), cmd
}

func (m Model) updateList(msg tea.KeyMsg) (Model, tea.Cmd) {
	key := msg.String()
	if key != "x" {
		m.confirmID = ""
	}
	switch key {
	case "esc", "q":
		return m, dismiss
	case "/":
		m.filtering = true
		cmd := m.filter.Focus()
		return m, cmd
	case "r":
		m.loading = true
		return m, m.load()
	case "enter":
		if s, ok := m.highlighted(); ok {
			id := s.ID
			return m, func() tea.Msg { return OpenDiagramMsg{ID: id} }
		}
		return m, nil
	case "x":
		s, ok := m.highlighted()
		if !ok {
			return m, nil
		}
		if m.confirmID != s.ID {
			m.confirmID = s.ID
			return m, nil
		}
		m.confirmID = ""
		return m, m.deleteCmd(s)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) deleteCmd(s store.Summary) tea.Cmd {
	lister := m.lister
	return func() tea.Msg {
		return DeletedMsg{ID: s.ID, Name: s.Name, Err: lister.Delete(s.ID)}
	}
}

func (m Model) highlighted() (store.Summary, bool) {
	if len(m.shown) == 0 {
		return store.Summary{}, false
	}
	id, _ := m.table.HighlightedRow().Data[table.KeyID].(string)
	for _, s := range m.shown {
		if s.ID == id {
			return s, true
		}
	}
	return store.Summary{}, false
}

// applyFilter ranks items by fuzzy match on the name; an empty filter keeps store order
func (m Model) applyFilter() Model {
	q := strings.TrimSpace(m.filter.Value())
	if q == "" {
		m.shown = m.items
	} else {
		matches := fuzzy.FindFrom(q, summaries(m.items))
		m.shown = make([]store.Summary, 0, len(matches))
		for _, match := range matches {
			m.shown = append(m.shown, m.items[match.Index])
		}
	}
	m.table = table.FromSummaries(m.shown)
	return m
}

func (m Model) boxWidth() int {
	return min(max(m.width*3/4, 60), 110)
}

// View renders the dialog box, or "" when hidden
func (m Model) View() string {
	if !m.visible {
		return ""
	}
	var b strings.Builder
	b.WriteString(styles.DialogTitleStyle.Render("Open Diagram"))
	b.WriteString("\n")
	b.WriteString(styles.MetaStyle.Render("Select a diagram to open from the list below."))
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(m.spinner.View() + " Loading diagrams...")
	case m.err != nil:
		b.WriteString(styles.ErrorStyle.Render(fmt.Sprintf("Could not load diagrams: %v", m.err)))
	case len(m.items) == 0:
		b.WriteString(styles.HelpStyle.Render("No diagrams yet. Create one with ctrl+t."))
	default:
		if m.filtering || m.filter.Value() != "" {
			b.WriteString(m.filter.View())
			b.WriteString("\n")
		}
		if len(m.shown) == 0 {
			b.WriteString(styles.HelpStyle.Render("No diagrams match."))
		} else {
			b.WriteString(m.table.View())
		}
	}

	if _, ok := m.PendingDelete(); ok {
		b.WriteString("\n")
		b.WriteString(styles.WarningStyle.Render("Press x again to delete this diagram."))
	}
	return styles.DialogStyle.Width(m.boxWidth()).Render(b.String())
}
