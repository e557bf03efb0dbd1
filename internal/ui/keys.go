package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/nhath/ezchart/internal/config"
)

type keyMap struct {
	Menu        key.Binding
	NewDiagram  key.Binding
	OpenDiagram key.Binding
	ExportSQL   key.Binding
	Rename      key.Binding
	Undo        key.Binding
	Redo        key.Binding
	Copy        key.Binding
	Save        key.Binding
	Help        key.Binding
	Exit        key.Binding
}

func bind(keys []string, desc string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(strings.Join(keys, "/"), desc))
}

func newKeyMap(k config.KeyMap) keyMap {
	return keyMap{
		Menu:        bind(k.Menu, "Open the menu bar"),
		NewDiagram:  bind(k.NewDiagram, "New diagram"),
		OpenDiagram: bind(k.OpenDiagram, "Open diagram"),
		ExportSQL:   bind(k.ExportSQL, "Export SQL for the diagram's database"),
		Rename:      bind(k.Rename, "Rename diagram"),
		Undo:        bind(k.Undo, "Undo"),
		Redo:        bind(k.Redo, "Redo"),
		Copy:        bind(k.Copy, "Copy script (export dialog)"),
		Save:        bind(k.Save, "Save script (export dialog)"),
		Help:        bind(k.Help, "Show this help"),
		Exit:        bind(k.Exit, "Quit"),
	}
}

func section(b *strings.Builder, title string, bindings ...key.Binding) {
	fmt.Fprintf(b, "## %s\n\n| Key | Action |\n|---|---|\n", title)
	for _, kb := range bindings {
		h := kb.Help()
		fmt.Fprintf(b, "| `%s` | %s |\n", h.Key, h.Desc)
	}
	b.WriteString("\n")
}

// helpMarkdown lists the bindings for the help popup
func (k keyMap) helpMarkdown() string {
	var b strings.Builder
	section(&b, "Diagram", k.NewDiagram, k.OpenDiagram, k.ExportSQL, k.Rename, k.Undo, k.Redo)
	section(&b, "Export dialog", k.Copy, k.Save)
	section(&b, "General", k.Menu, k.Help, k.Exit)
	b.WriteString("## Canvas\n\n| Key | Action |\n|---|---|\n")
	b.WriteString("| `j`/`k` | Select table |\n| `tab` | Columns / indexes |\n\n")
	b.WriteString("While renaming, `enter` or a click elsewhere saves the name and `esc` cancels.\n")
	return b.String()
}
