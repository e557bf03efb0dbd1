// Package creatediagram is the two-step modal that starts a new diagram.
package creatediagram

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhath/ezchart/internal/diagram"
	"github.com/nhath/ezchart/internal/ui/dialog"
	"github.com/nhath/ezchart/internal/ui/icons"
	"github.com/nhath/ezchart/internal/ui/styles"
)

// CreateDiagramMsg asks the root model to create (and optionally import) a diagram
type CreateDiagramMsg struct {
	Name         string
	DatabaseType diagram.DatabaseType
	// Profile is the connection profile to import tables from, or ""
	Profile string
}

type step int

const (
	stepDatabase step = iota
	stepDetails
)

type Model struct {
	visible     bool
	step        step
	typeIdx     int
	input       textinput.Model
	profiles    []string
	profileIdx  int // -1 means no import
	defaultName string
	width       int
}

func New(profiles []string, defaultType diagram.DatabaseType) Model {
	ti := textinput.New()
	ti.CharLimit = 120
	ti.Prompt = ""

	m := Model{
		input:      ti,
		profiles:   profiles,
		profileIdx: -1,
	}
	for i, t := range diagram.DatabaseTypes {
		if t == defaultType {
			m.typeIdx = i
		}
	}
	return m
}

func (m Model) SetSize(w, _ int) Model {
	m.width = w
	m.input.Width = m.boxWidth() - 8
	return m
}

// SetProfiles replaces the importable connection profiles
func (m Model) SetProfiles(names []string) Model {
	m.profiles = names
	if m.profileIdx >= len(names) {
		m.profileIdx = -1
	}
	return m
}

func (m Model) Visible() bool                  { return m.visible }
func (m Model) Selected() diagram.DatabaseType { return diagram.DatabaseTypes[m.typeIdx] }
func (m Model) OnDetails() bool                { return m.step == stepDetails }
func (m Model) Profile() string                { return m.profileName() }
func (m Model) DefaultName() string            { return m.defaultName }
func (m Model) profileName() string {
	if m.profileIdx < 0 || m.profileIdx >= len(m.profiles) {
		return ""
	}
	return m.profiles[m.profileIdx]
}

// Open resets the dialog; existing is the number of stored diagrams and
// picks the default "Diagram N" name
func (m Model) Open(existing int) Model {
	m.visible = true
	m.step = stepDatabase
	m.profileIdx = -1
	m.defaultName = fmt.Sprintf("Diagram %d", existing+1)
	m.input.Reset()
	m.input.Placeholder = m.defaultName
	m.input.Blur()
	return m
}

func (m Model) Close() Model {
	m.visible = false
	m.input.Blur()
	return m
}

func dismiss() tea.Msg {
	return dialog.DismissMsg{Kind: dialog.CreateDiagram}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.visible {
		return m, nil
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.step == stepDetails {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.step == stepDatabase {
		return m.updateDatabase(key)
	}
	return m.updateDetails(key)
}

func (m Model) updateDatabase(key tea.KeyMsg) (Model, tea.Cmd) {
	n := len(diagram.DatabaseTypes)
	switch key.String() {
	case "esc", "q":
		return m, dismiss
	case "up", "k", "left", "h":
		m.typeIdx = (m.typeIdx - 1 + n) % n
	case "down", "j", "right", "l", "tab":
		m.typeIdx = (m.typeIdx + 1) % n
	case "1", "2", "3", "4", "5", "6":
		m.typeIdx = int(key.String()[0]-'1') % n
	case "enter":
		m.step = stepDetails
		cmd := m.input.Focus()
		return m, cmd
	}
	return m, nil
}

func (m Model) updateDetails(key tea.KeyMsg) (Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.step = stepDatabase
		m.input.Blur()
		return m, nil
	case "tab":
		if len(m.profiles) > 0 {
			m.profileIdx++
			if m.profileIdx >= len(m.profiles) {
				m.profileIdx = -1
			}
		}
		return m, nil
	case "shift+tab":
		if len(m.profiles) > 0 {
			m.profileIdx--
			if m.profileIdx < -1 {
				m.profileIdx = len(m.profiles) - 1
			}
		}
		return m, nil
	case "enter":
		name := strings.TrimSpace(m.input.Value())
		if name == "" {
			name = m.defaultName
		}
		out := CreateDiagramMsg{
			Name:         name,
			DatabaseType: m.Selected(),
			Profile:      m.profileName(),
		}
		return m, func() tea.Msg { return out }
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(key)
	return m, cmd
}

func (m Model) boxWidth() int {
	return min(max(m.width/2, 50), 70)
}

// View renders the dialog box, or "" when hidden
func (m Model) View() string {
	if !m.visible {
		return ""
	}
	var b strings.Builder
	b.WriteString(styles.DialogTitleStyle.Render("Create Diagram"))
	b.WriteString("\n")

	if m.step == stepDatabase {
		b.WriteString(styles.MetaStyle.Render("What is your Database?"))
		b.WriteString("\n\n")
		for i, t := range diagram.DatabaseTypes {
			line := fmt.Sprintf("%d %s %s", i+1, icons.DatabaseIcon(t), t.Label())
			if i == m.typeIdx {
				b.WriteString(styles.DropdownSelStyle.Render(icons.IconSelect + " " + line))
			} else {
				b.WriteString(styles.DropdownItemStyle.Render("  " + line))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(m.footer("↑/↓: choose • enter: continue • esc: cancel", "Continue"))
		return styles.DialogStyle.Width(m.boxWidth()).Render(b.String())
	}

	t := m.Selected()
	b.WriteString(styles.MetaStyle.Render(fmt.Sprintf("%s %s", icons.DatabaseIcon(t), t.Label())))
	b.WriteString("\n\n")
	b.WriteString("Name\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString("Import from\n")
	if len(m.profiles) == 0 {
		b.WriteString(styles.HelpStyle.Render("No connection profiles configured"))
	} else if p := m.profileName(); p != "" {
		b.WriteString(styles.BadgeStyle.Render(p))
	} else {
		b.WriteString(styles.HelpStyle.Render("Empty diagram"))
	}
	b.WriteString("\n\n")
	b.WriteString(m.footer("tab: import profile • enter: create • esc: back", "Create"))
	return styles.DialogStyle.Width(m.boxWidth()).Render(b.String())
}

func (m Model) footer(help, action string) string {
	button := styles.ButtonActiveStyle.Render(action)
	width := m.boxWidth() - 6
	gap := max(width-lipgloss.Width(help)-lipgloss.Width(button), 1)
	return styles.HelpStyle.Render(help) + strings.Repeat(" ", gap) + button
}
