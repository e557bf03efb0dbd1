package opendiagram

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhath/ezchart/internal/diagram"
	"github.com/nhath/ezchart/internal/store"
	"github.com/nhath/ezchart/internal/ui/dialog"
)

type fakeLister struct {
	items   []store.Summary
	err     error
	deleted []string
}

func (f *fakeLister) List() ([]store.Summary, error) { return f.items, f.err }

func (f *fakeLister) Delete(id string) error {
	f.deleted = append(f.deleted, id)
	kept := f.items[:0]
	for _, s := range f.items {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	f.items = kept
	return nil
}

func sample() *fakeLister {
	now := time.Now()
	return &fakeLister{items: []store.Summary{
		{ID: "a", Name: "Shop", DatabaseType: diagram.PostgreSQL, TableCount: 4, UpdatedAt: now},
		{ID: "b", Name: "Billing", DatabaseType: diagram.MySQL, TableCount: 2, UpdatedAt: now.Add(-time.Hour)},
		{ID: "c", Name: "Inventory", DatabaseType: diagram.SQLite, UpdatedAt: now.Add(-2 * time.Hour)},
	}}
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	down  = tea.KeyMsg{Type: tea.KeyDown}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// loadedMsg runs the open command and returns the list result
func loadedMsg(t *testing.T, cmd tea.Cmd) LoadedMsg {
	t.Helper()
	require.NotNil(t, cmd)
	switch msg := cmd().(type) {
	case LoadedMsg:
		return msg
	case tea.BatchMsg:
		for _, c := range msg {
			if c == nil {
				continue
			}
			if l, ok := c().(LoadedMsg); ok {
				return l
			}
		}
	}
	t.Fatal("no LoadedMsg produced")
	return LoadedMsg{}
}

func opened(t *testing.T, l Lister) Model {
	t.Helper()
	m, cmd := New(l).SetSize(120, 40).Open()
	require.True(t, m.Loading())
	m, _ = m.Update(loadedMsg(t, cmd))
	require.False(t, m.Loading())
	return m
}

func TestOpenListsDiagrams(t *testing.T) {
	m := opened(t, sample())
	assert.Len(t, m.Shown(), 3)
	view := m.View()
	assert.Contains(t, view, "Open Diagram")
	assert.Contains(t, view, "Billing")
}

func TestEnterOpensHighlighted(t *testing.T) {
	m := opened(t, sample())
	m, _ = m.Update(down)
	_, cmd := m.Update(enter)
	require.NotNil(t, cmd)
	assert.Equal(t, OpenDiagramMsg{ID: "b"}, cmd())
}

func TestFuzzyFilter(t *testing.T) {
	m := opened(t, sample())
	m, _ = m.Update(runes("/"))
	require.True(t, m.Filtering())

	m, _ = m.Update(runes("inv"))
	require.Len(t, m.Shown(), 1)
	assert.Equal(t, "Inventory", m.Shown()[0].Name)

	m, _ = m.Update(enter)
	assert.False(t, m.Filtering())
	_, cmd := m.Update(enter)
	require.NotNil(t, cmd)
	assert.Equal(t, OpenDiagramMsg{ID: "c"}, cmd())
}

func TestFilterEscRestoresList(t *testing.T) {
	m := opened(t, sample())
	m, _ = m.Update(runes("/"))
	m, _ = m.Update(runes("zzz"))
	assert.Empty(t, m.Shown())
	assert.Contains(t, m.View(), "No diagrams match.")

	m, _ = m.Update(esc)
	assert.False(t, m.Filtering())
	assert.Len(t, m.Shown(), 3)
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	l := sample()
	m := opened(t, l)

	m, cmd := m.Update(runes("x"))
	assert.Nil(t, cmd)
	id, pending := m.PendingDelete()
	require.True(t, pending)
	assert.Equal(t, "a", id)

	m, cmd = m.Update(runes("x"))
	require.NotNil(t, cmd)
	deleted := cmd().(DeletedMsg)
	assert.Equal(t, DeletedMsg{ID: "a", Name: "Shop"}, deleted)
	assert.Equal(t, []string{"a"}, l.deleted)

	m, cmd = m.Update(deleted)
	m, _ = m.Update(loadedMsg(t, cmd))
	assert.Len(t, m.Shown(), 2)
}

func TestOtherKeyCancelsDelete(t *testing.T) {
	m := opened(t, sample())
	m, _ = m.Update(runes("x"))
	m, _ = m.Update(down)
	_, pending := m.PendingDelete()
	assert.False(t, pending)
}

func TestListError(t *testing.T) {
	m := opened(t, &fakeLister{err: errors.New("disk gone")})
	assert.Error(t, m.Err())
	assert.Contains(t, m.View(), "disk gone")
}

func TestEscDismisses(t *testing.T) {
	m := opened(t, sample())
	_, cmd := m.Update(esc)
	require.NotNil(t, cmd)
	assert.Equal(t, dialog.DismissMsg{Kind: dialog.OpenDiagram}, cmd())
}
