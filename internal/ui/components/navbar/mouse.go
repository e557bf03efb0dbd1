package navbar

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// first item row: bar, then the dropdown's top border
const dropdownTop = 2

func (m Model) updateMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	l := m.computeLayout()
	onBar := msg.Y == 0

	if m.editing {
		if onBar && l.name.contains(msg.X) {
			return m, nil
		}
		// the check mark and any click away both commit
		return m.commitRename()
	}

	if m.open {
		if next, cmd, ok := m.clickDropdown(msg.X, msg.Y, l); ok {
			return next, cmd
		}
	}

	if onBar {
		for i, s := range l.titleSpans {
			if s.contains(msg.X) {
				if m.open && m.menuIdx == i {
					return m.closeMenus(), nil
				}
				m.focused = true
				m.open = true
				m.menuIdx = i
				m.itemIdx = 0
				m.subOpen = false
				return m, nil
			}
		}
		if l.name.contains(msg.X) || l.affordance.contains(msg.X) {
			return m.StartRename()
		}
	}

	if m.open {
		return m.closeMenus(), nil
	}
	return m, nil
}

func (m Model) clickDropdown(x, y int, l layout) (Model, tea.Cmd, bool) {
	items := m.menus[m.menuIdx].items
	x0 := l.titleSpans[m.menuIdx].x
	dropW := lipgloss.Width(renderItems(items, m.itemIdx, true))

	if x >= x0 && x < x0+dropW {
		i := y - dropdownTop
		if i < 0 || i >= len(items) || items[i].separator {
			return m, nil, i >= -1 && i <= len(items)
		}
		m.itemIdx = i
		if len(items[i].children) > 0 {
			m.subOpen = true
			m.subIdx = 0
			return m, nil, true
		}
		next, cmd := m.activate(items[i])
		return next, cmd, true
	}

	if m.subOpen {
		children := items[m.itemIdx].children
		subW := lipgloss.Width(renderItems(children, m.subIdx, true))
		if x >= x0+dropW && x < x0+dropW+subW {
			j := y - dropdownTop - m.itemIdx
			if j >= 0 && j < len(children) {
				next, cmd := m.activate(children[j])
				return next, cmd, true
			}
		}
	}
	return m, nil, false
}
