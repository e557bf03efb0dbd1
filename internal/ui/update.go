package ui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhath/ezchart/internal/diagram"
	"github.com/nhath/ezchart/internal/ui/components/navbar"
	"github.com/nhath/ezchart/internal/ui/dialog"
	"github.com/nhath/ezchart/internal/ui/dialog/creatediagram"
	"github.com/nhath/ezchart/internal/ui/dialog/exportsql"
	"github.com/nhath/ezchart/internal/ui/dialog/opendiagram"
)

var errNoDiagram = errors.New("no diagram is open")

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m.update(msg)
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.resize(msg.Width, msg.Height), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case spinner.TickMsg:
		// each spinner ignores ticks that carry another spinner's ID
		var cmds [3]tea.Cmd
		m.export, cmds[0] = m.export.Update(msg)
		m.open, cmds[1] = m.open.Update(msg)
		m.canvas, cmds[2] = m.canvas.Update(msg)
		return m, tea.Batch(cmds[:]...)

	case diagramLoadedMsg:
		m.canvas = m.canvas.StopLoading()
		if msg.err != nil {
			return m.setError(msg.err), nil
		}
		if msg.d == nil {
			return m.update(dialog.OpenCreateDiagramMsg{})
		}
		m.history.reset()
		m = m.setDiagram(msg.d)
		if msg.notice != "" {
			return m.setStatus(msg.notice)
		}
		return m, nil

	case diagramSavedMsg:
		if msg.err != nil {
			return m.setError(fmt.Errorf("save diagram: %w", msg.err)), nil
		}
		if d := m.diagram; d != nil && d.ID == msg.id && msg.updatedAt.After(d.UpdatedAt) {
			d = d.Clone()
			d.UpdatedAt = msg.updatedAt
			m = m.setDiagram(d)
		}
		return m, nil

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.statusMsg = ""
		}
		return m, nil

	// navbar
	case navbar.RenameDiagramMsg:
		return m.rename(msg.Name)
	case navbar.EditMsg:
		return m.edit(msg.Op)
	case navbar.ExportImageMsg:
		if m.diagram == nil {
			return m.setError(errNoDiagram), nil
		}
		return m, m.exportImageCmd(msg.Format)
	case navbar.OpenURLMsg:
		return m, m.openURLCmd(msg.URL)
	case imageExportedMsg:
		if msg.err != nil {
			return m.setError(fmt.Errorf("export image: %w", msg.err)), nil
		}
		return m.setStatus("Exported " + msg.path)
	case urlOpenedMsg:
		if msg.err != nil {
			return m.setError(fmt.Errorf("open %s: %w", msg.url, msg.err)), nil
		}
		return m, nil

	// dialog coordinator
	case dialog.OpenCreateDiagramMsg:
		n, err := m.store.Count()
		if err != nil {
			m.log.WithError(err).Warn("count diagrams")
		}
		m.dialogs.OpenCreateDiagramDialog()
		m.create = m.create.SetProfiles(m.cfg.ListProfiles()).Open(n)
		return m, nil
	case dialog.OpenOpenDiagramMsg:
		m.dialogs.OpenOpenDiagramDialog()
		var cmd tea.Cmd
		m.open, cmd = m.open.Open()
		return m, cmd
	case dialog.OpenExportSQLMsg:
		if m.diagram == nil {
			return m.setError(errNoDiagram), nil
		}
		m.dialogs.OpenExportSQLDialog(msg.Params)
		var cmd tea.Cmd
		m.export, cmd = m.export.Open(msg.Params, m.diagram)
		return m, cmd
	case dialog.DismissMsg:
		return m.dismiss(msg.Kind), nil

	// create dialog
	case creatediagram.CreateDiagramMsg:
		m = m.dismiss(dialog.CreateDiagram)
		if msg.Profile != "" {
			var cmd tea.Cmd
			m.canvas, cmd = m.canvas.StartLoading(fmt.Sprintf("Importing %s...", msg.Profile))
			return m, tea.Batch(cmd, m.importCmd(msg.Profile, msg.Name, msg.DatabaseType))
		}
		return m, m.createCmd(msg.Name, msg.DatabaseType)

	// open dialog
	case opendiagram.OpenDiagramMsg:
		m = m.dismiss(dialog.OpenDiagram)
		return m, m.loadCmd(msg.ID)
	case opendiagram.LoadedMsg:
		var cmd tea.Cmd
		m.open, cmd = m.open.Update(msg)
		return m, cmd
	case opendiagram.DeletedMsg:
		var cmd tea.Cmd
		m.open, cmd = m.open.Update(msg)
		if msg.Err != nil {
			return m.setError(fmt.Errorf("delete diagram: %w", msg.Err)), cmd
		}
		if m.diagram != nil && m.diagram.ID == msg.ID {
			m.history.reset()
			m = m.setDiagram(nil)
		}
		var status tea.Cmd
		m, status = m.setStatus("Deleted " + msg.Name)
		return m, tea.Batch(cmd, status)

	// export dialog
	case exportsql.ResultMsg:
		var cmd tea.Cmd
		m.export, cmd = m.export.Update(msg)
		return m, cmd
	case exportsql.CopiedMsg:
		if msg.Err != nil {
			return m.setError(fmt.Errorf("copy script: %w", msg.Err)), nil
		}
		return m.setStatus("Copied script to clipboard")
	case exportsql.SavedMsg:
		if msg.Err != nil {
			return m.setError(msg.Err), nil
		}
		return m.setStatus("Saved " + msg.Path)
	}

	// remaining messages (cursor blink etc.) go to whatever has focus
	return m.forward(msg)
}

func (m Model) resize(w, h int) Model {
	m.width = w
	m.height = h
	m.navbar = m.navbar.SetWidth(w)
	m.canvas = m.canvas.SetSize(w, max(h-m.navbar.Height()-1, 1))
	m.export = m.export.SetSize(w, h)
	m.create = m.create.SetSize(w, h)
	m.open = m.open.SetSize(w, h)
	m.help = m.help.SetScreenSize(w, h)
	return m
}

// dismiss is the single close path for every dialog
func (m Model) dismiss(k dialog.Kind) Model {
	m.dialogs.Dismiss(k)
	switch k {
	case dialog.CreateDiagram:
		m.create = m.create.Close()
	case dialog.OpenDiagram:
		m.open = m.open.Close()
	case dialog.ExportSQL:
		m.export = m.export.Close()
	}
	return m
}

func (m Model) forward(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	if k, ok := m.dialogs.Active(); ok {
		switch k {
		case dialog.CreateDiagram:
			m.create, cmd = m.create.Update(msg)
		case dialog.OpenDiagram:
			m.open, cmd = m.open.Update(msg)
		case dialog.ExportSQL:
			m.export, cmd = m.export.Update(msg)
		}
		return m, cmd
	}
	if m.help.Visible() {
		m.help, cmd = m.help.Update(msg)
		return m, cmd
	}
	if m.navbarActive() {
		m.navbar, cmd = m.navbar.Update(msg)
		return m, cmd
	}
	m.canvas, cmd = m.canvas.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if _, ok := m.dialogs.Active(); ok || m.help.Visible() || m.navbarActive() {
		return m.forward(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Exit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Menu):
		m.navbar = m.navbar.FocusMenu()
		return m, nil
	case key.Matches(msg, m.keys.NewDiagram):
		return m.update(dialog.OpenCreateDiagramMsg{})
	case key.Matches(msg, m.keys.OpenDiagram):
		return m.update(dialog.OpenOpenDiagramMsg{})
	case key.Matches(msg, m.keys.ExportSQL):
		if m.diagram == nil {
			return m.setError(errNoDiagram), nil
		}
		params := dialog.ExportSQLParams{TargetDatabaseType: m.diagram.DatabaseType}
		return m.update(dialog.OpenExportSQLMsg{Params: params})
	case key.Matches(msg, m.keys.Rename):
		if m.diagram == nil {
			return m, nil
		}
		var cmd tea.Cmd
		m.navbar, cmd = m.navbar.StartRename()
		return m, cmd
	case key.Matches(msg, m.keys.Undo):
		return m.edit(navbar.Undo)
	case key.Matches(msg, m.keys.Redo):
		return m.edit(navbar.Redo)
	case key.Matches(msg, m.keys.Help):
		m.help = m.help.Show("Keyboard shortcuts", m.keys.helpMarkdown(), "esc: close • j/k: scroll")
		return m, nil
	}
	return m.forward(msg)
}

// rename applies a committed name. An unchanged name is still persisted.
func (m Model) rename(name string) (Model, tea.Cmd) {
	if m.diagram == nil {
		return m, nil
	}
	if name != m.diagram.Name {
		m.history.record(m.diagram)
	}
	d := m.diagram.Clone()
	d.Name = name
	d.Touch()
	m = m.setDiagram(d)
	return m, m.renameCmd(d.ID, name)
}

func (m Model) edit(op navbar.EditOp) (Model, tea.Cmd) {
	if m.diagram == nil {
		return m, nil
	}
	var next *diagram.Diagram
	switch op {
	case navbar.Undo:
		prev, ok := m.history.Undo(m.diagram)
		if !ok {
			return m.setStatus("Nothing to undo")
		}
		next = prev
	case navbar.Redo:
		redo, ok := m.history.Redo(m.diagram)
		if !ok {
			return m.setStatus("Nothing to redo")
		}
		next = redo
	case navbar.Clear:
		m.history.record(m.diagram)
		next = m.diagram.Clone()
		next.Tables = nil
		next.Relationships = nil
	default:
		return m, nil
	}
	next.Touch()
	m = m.setDiagram(next)
	return m, m.saveCmd(next)
}

func (m Model) navbarActive() bool {
	return m.navbar.Editing() || m.navbar.Focused() || m.navbar.MenuOpen()
}
