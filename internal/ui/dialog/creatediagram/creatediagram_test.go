package creatediagram

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhath/ezchart/internal/diagram"
	"github.com/nhath/ezchart/internal/ui/dialog"
)

var (
	enter    = tea.KeyMsg{Type: tea.KeyEnter}
	esc      = tea.KeyMsg{Type: tea.KeyEsc}
	tab      = tea.KeyMsg{Type: tea.KeyTab}
	shiftTab = tea.KeyMsg{Type: tea.KeyShiftTab}
	down     = tea.KeyMsg{Type: tea.KeyDown}
	up       = tea.KeyMsg{Type: tea.KeyUp}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		m, cmd = m.Update(msg)
	}
	return m, cmd
}

func TestOpenDefaults(t *testing.T) {
	m := New(nil, diagram.MySQL).SetSize(100, 40).Open(2)
	assert.True(t, m.Visible())
	assert.False(t, m.OnDetails())
	assert.Equal(t, diagram.MySQL, m.Selected())
	assert.Equal(t, "Diagram 3", m.DefaultName())
	assert.Contains(t, m.View(), "What is your Database?")
}

func TestPickDatabaseAndCreate(t *testing.T) {
	m := New(nil, diagram.Generic).SetSize(100, 40).Open(0)

	m, _ = send(m, down, down, up, down)
	assert.Equal(t, diagram.MySQL, m.Selected())

	m, _ = send(m, enter)
	require.True(t, m.OnDetails())

	m, cmd := send(m, runes("Shop"), enter)
	require.NotNil(t, cmd)
	assert.Equal(t, CreateDiagramMsg{Name: "Shop", DatabaseType: diagram.MySQL}, cmd())
}

func TestBlankNameUsesDefault(t *testing.T) {
	m := New(nil, diagram.Generic).Open(4)
	m, _ = send(m, runes("6"), enter)
	assert.Equal(t, diagram.SQLite, m.Selected())

	m, cmd := send(m, runes("   "), enter)
	require.NotNil(t, cmd)
	assert.Equal(t, CreateDiagramMsg{Name: "Diagram 5", DatabaseType: diagram.SQLite}, cmd())
}

func TestProfileCycling(t *testing.T) {
	m := New([]string{"local", "prod"}, diagram.PostgreSQL).Open(0)
	m, _ = send(m, enter)
	assert.Equal(t, "", m.Profile())

	m, _ = send(m, tab)
	assert.Equal(t, "local", m.Profile())
	m, _ = send(m, tab)
	assert.Equal(t, "prod", m.Profile())
	m, _ = send(m, tab)
	assert.Equal(t, "", m.Profile(), "wraps back to no import")
	m, _ = send(m, shiftTab)
	assert.Equal(t, "prod", m.Profile())
	assert.Contains(t, m.View(), "prod")

	_, cmd := send(m, enter)
	require.NotNil(t, cmd)
	msg := cmd().(CreateDiagramMsg)
	assert.Equal(t, "prod", msg.Profile)
	assert.Equal(t, diagram.PostgreSQL, msg.DatabaseType)
}

func TestEscBacksOutThenDismisses(t *testing.T) {
	m := New(nil, diagram.Generic).Open(0)
	m, _ = send(m, enter)
	require.True(t, m.OnDetails())

	m, cmd := send(m, esc)
	assert.False(t, m.OnDetails())
	assert.Nil(t, cmd)

	_, cmd = send(m, esc)
	require.NotNil(t, cmd)
	assert.Equal(t, dialog.DismissMsg{Kind: dialog.CreateDiagram}, cmd())
}

func TestHiddenIgnoresInput(t *testing.T) {
	m := New(nil, diagram.Generic)
	m, cmd := send(m, enter)
	assert.Nil(t, cmd)
	assert.Equal(t, "", m.View())

	m = m.Open(0).Close()
	assert.False(t, m.Visible())
}
