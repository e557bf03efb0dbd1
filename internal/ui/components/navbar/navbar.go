// Package navbar renders the top bar: menus, the current diagram's name with
// inline rename, and the last-saved badge.
package navbar

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhath/ezchart/internal/config"
	"github.com/nhath/ezchart/internal/diagram"
	"github.com/nhath/ezchart/internal/ui/styles"
)

type Model struct {
	menus []menu
	width int

	// menubar
	focused bool
	menuIdx int
	open    bool
	itemIdx int
	subOpen bool
	subIdx  int

	// diagram
	name      string
	dbType    diagram.DatabaseType
	updatedAt time.Time

	// rename
	editing bool
	input   textinput.Model
}

func New(keys config.KeyMap) Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 128
	ti.TextStyle = styles.NameStyle
	return Model{
		menus: buildMenus(keys),
		input: ti,
	}
}

func (m Model) SetWidth(w int) Model {
	m.width = w
	return m
}

// SetDiagram syncs the bar with the current diagram. A changed name
// replaces the rename draft.
func (m Model) SetDiagram(name string, dbType diagram.DatabaseType, updatedAt time.Time) Model {
	if name != m.name {
		m.name = name
		m.input.SetValue(name)
		m.input.CursorEnd()
	}
	m.dbType = dbType
	m.updatedAt = updatedAt
	return m
}

func (m Model) Name() string   { return m.name }
func (m Model) Draft() string  { return m.input.Value() }
func (m Model) Editing() bool  { return m.editing }
func (m Model) MenuOpen() bool { return m.open }
func (m Model) Focused() bool  { return m.focused }
func (m Model) Height() int    { return 1 }

// StartRename switches the name to an input seeded with the current name
func (m Model) StartRename() (Model, tea.Cmd) {
	if m.editing {
		return m, nil
	}
	m = m.closeMenus()
	m.editing = true
	m.input.SetValue(m.name)
	m.input.CursorEnd()
	m.input.Width = max(len(m.name)+2, 20)
	cmd := m.input.Focus()
	return m, cmd
}

// commitRename leaves editing and emits the trimmed draft. Blank drafts
// are discarded.
func (m Model) commitRename() (Model, tea.Cmd) {
	if !m.editing {
		return m, nil
	}
	m.editing = false
	m.input.Blur()

	name := strings.TrimSpace(m.input.Value())
	if name == "" {
		m.input.SetValue(m.name)
		return m, nil
	}
	m.input.SetValue(name)
	return m, func() tea.Msg { return RenameDiagramMsg{Name: name} }
}

func (m Model) cancelRename() Model {
	m.editing = false
	m.input.Blur()
	m.input.SetValue(m.name)
	return m
}

// FocusMenu activates the menubar with the first menu open
func (m Model) FocusMenu() Model {
	if m.editing {
		return m
	}
	m.focused = true
	m.open = true
	m.menuIdx = 0
	m.itemIdx = 0
	m.subOpen = false
	return m
}

func (m Model) closeMenus() Model {
	m.focused = false
	m.open = false
	m.subOpen = false
	return m
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		if m.focused {
			return m.updateMenu(msg)
		}
	case tea.MouseMsg:
		return m.updateMouse(msg)
	}
	return m, nil
}

func (m Model) updateEditing(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		return m.commitRename()
	case tea.KeyEsc:
		return m.cancelRename(), nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.input.Width = max(len(m.input.Value())+2, 20)
	return m, cmd
}

func (m Model) updateMenu(msg tea.KeyMsg) (Model, tea.Cmd) {
	items := m.menus[m.menuIdx].items
	switch msg.String() {
	case "esc":
		if m.subOpen {
			m.subOpen = false
			return m, nil
		}
		return m.closeMenus(), nil
	case "left", "h":
		if m.subOpen {
			m.subOpen = false
			return m, nil
		}
		m.menuIdx = (m.menuIdx - 1 + len(m.menus)) % len(m.menus)
		m.itemIdx = 0
		m.open = true
	case "right", "l":
		if m.open && !m.subOpen && len(items[m.itemIdx].children) > 0 {
			m.subOpen = true
			m.subIdx = 0
			return m, nil
		}
		m.subOpen = false
		m.menuIdx = (m.menuIdx + 1) % len(m.menus)
		m.itemIdx = 0
		m.open = true
	case "up", "k":
		if m.subOpen {
			children := items[m.itemIdx].children
			m.subIdx = (m.subIdx - 1 + len(children)) % len(children)
		} else {
			m.open = true
			m.itemIdx = nextSelectable(items, m.itemIdx, -1)
		}
	case "down", "j":
		if m.subOpen {
			children := items[m.itemIdx].children
			m.subIdx = (m.subIdx + 1) % len(children)
		} else if !m.open {
			m.open = true
			m.itemIdx = 0
		} else {
			m.itemIdx = nextSelectable(items, m.itemIdx, 1)
		}
	case "enter", " ":
		if !m.open {
			m.open = true
			m.itemIdx = 0
			return m, nil
		}
		if m.subOpen {
			return m.activate(items[m.itemIdx].children[m.subIdx])
		}
		if len(items[m.itemIdx].children) > 0 {
			m.subOpen = true
			m.subIdx = 0
			return m, nil
		}
		return m.activate(items[m.itemIdx])
	}
	return m, nil
}

func (m Model) activate(it item) (Model, tea.Cmd) {
	m = m.closeMenus()
	if it.msg == nil {
		return m, nil
	}
	if _, ok := it.msg.(tea.QuitMsg); ok {
		return m, tea.Quit
	}
	msg := it.msg
	return m, func() tea.Msg { return msg }
}
