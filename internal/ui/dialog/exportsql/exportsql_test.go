package exportsql

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/nhath/ezchart/internal/diagram"
	"github.com/nhath/ezchart/internal/sqlexport"
	"github.com/nhath/ezchart/internal/ui/dialog"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type outcome struct {
	script string
	err    error
}

type stubExporter struct {
	mu       sync.Mutex
	base     string
	outcomes map[diagram.DatabaseType]outcome
	blocking map[diagram.DatabaseType]bool
	calls    []diagram.DatabaseType
}

func (s *stubExporter) BaseSQL(*diagram.Diagram) string { return s.base }

func (s *stubExporter) ExportSQL(ctx context.Context, _ *diagram.Diagram, target diagram.DatabaseType) (string, error) {
	s.mu.Lock()
	s.calls = append(s.calls, target)
	block := s.blocking[target]
	o := s.outcomes[target]
	s.mu.Unlock()

	if block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return o.script, o.err
}

func (s *stubExporter) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func params(t diagram.DatabaseType) dialog.ExportSQLParams {
	return dialog.ExportSQLParams{TargetDatabaseType: t}
}

// resultOf runs cmd, descending into batches, and returns the export result
func resultOf(t *testing.T, cmd tea.Cmd) ResultMsg {
	t.Helper()
	require.NotNil(t, cmd)
	switch msg := cmd().(type) {
	case ResultMsg:
		return msg
	case tea.BatchMsg:
		for _, c := range msg {
			if c == nil {
				continue
			}
			if r, ok := c().(ResultMsg); ok {
				return r
			}
		}
	}
	t.Fatal("no ResultMsg produced")
	return ResultMsg{}
}

// requestOf returns the export request of a batch without running it
func requestOf(t *testing.T, cmd tea.Cmd) tea.Cmd {
	t.Helper()
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	return batch[0]
}

func newModel(exp Exporter) Model {
	return New(exp, nil).SetSize(120, 40)
}

func TestGenericUsesBaseExport(t *testing.T) {
	exp := &stubExporter{base: "CREATE TABLE a (id int);\n"}
	m, cmd := newModel(exp).Open(params(diagram.Generic), diagram.New("d", diagram.Generic))
	require.True(t, m.Loading())

	m, _ = m.Update(resultOf(t, cmd))
	script, ok := m.Script()
	assert.True(t, ok)
	assert.Equal(t, exp.base, script)
	assert.Zero(t, exp.callCount(), "async path must not run for generic")
}

func TestOpenClearsPreviousOutcome(t *testing.T) {
	exp := &stubExporter{outcomes: map[diagram.DatabaseType]outcome{
		diagram.MySQL: {err: errors.New("boom")},
	}}
	d := diagram.New("d", diagram.PostgreSQL)

	m, cmd := newModel(exp).Open(params(diagram.MySQL), d)
	m, _ = m.Update(resultOf(t, cmd))
	require.Error(t, m.Err())
	m = m.Close()

	m, cmd = m.Open(params(diagram.MySQL), d)
	assert.True(t, m.Loading())
	assert.NoError(t, m.Err())
	_, ok := m.Script()
	assert.False(t, ok)
	assert.Contains(t, m.View(), "Generating SQL for MySQL")

	m, _ = m.Update(resultOf(t, cmd))
	assert.Error(t, m.Err())
}

func TestEmptyScriptIsFailure(t *testing.T) {
	tests := []struct {
		name string
		out  outcome
		want error
	}{
		{"empty", outcome{script: ""}, sqlexport.ErrEmptyScript},
		{"blank", outcome{script: " \n"}, sqlexport.ErrEmptyScript},
		{"error", outcome{err: context.DeadlineExceeded}, context.DeadlineExceeded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exp := &stubExporter{outcomes: map[diagram.DatabaseType]outcome{diagram.SQLite: tt.out}}
			m, cmd := newModel(exp).WithHint("set GEMINI_API_KEY").Open(params(diagram.SQLite), diagram.New("d", diagram.Generic))
			m, _ = m.Update(resultOf(t, cmd))

			assert.ErrorIs(t, m.Err(), tt.want)
			script, ok := m.Script()
			assert.False(t, ok)
			assert.Empty(t, script)
			assert.Contains(t, m.View(), errorMessage)
			assert.Contains(t, m.View(), "set GEMINI_API_KEY")
		})
	}
}

func TestLatestOpenWins(t *testing.T) {
	exp := &stubExporter{
		blocking: map[diagram.DatabaseType]bool{diagram.PostgreSQL: true},
		outcomes: map[diagram.DatabaseType]outcome{diagram.MySQL: {script: "-- mysql\n"}},
	}
	d := diagram.New("d", diagram.Generic)

	m, first := newModel(exp).Open(params(diagram.PostgreSQL), d)
	slow := requestOf(t, first)
	late := make(chan tea.Msg, 1)
	go func() { late <- slow() }()

	m, second := m.Open(params(diagram.MySQL), d)
	m, _ = m.Update(resultOf(t, second))

	// the superseded request was cancelled and its result arrives late
	stale := (<-late).(ResultMsg)
	assert.ErrorIs(t, stale.Err, context.Canceled)
	m, _ = m.Update(stale)

	script, ok := m.Script()
	require.True(t, ok)
	assert.Equal(t, "-- mysql\n", script)
	assert.Equal(t, diagram.MySQL, m.Target())
}

func TestStaleSuccessDropped(t *testing.T) {
	exp := &stubExporter{outcomes: map[diagram.DatabaseType]outcome{
		diagram.MySQL:      {script: "-- a\n"},
		diagram.PostgreSQL: {err: errors.New("b failed")},
	}}
	d := diagram.New("d", diagram.Generic)

	m, a := newModel(exp).Open(params(diagram.MySQL), d)
	resA := resultOf(t, a)
	m, b := m.Open(params(diagram.PostgreSQL), d)
	resB := resultOf(t, b)

	m, _ = m.Update(resB)
	m, _ = m.Update(resA)

	assert.EqualError(t, m.Err(), "b failed")
	_, ok := m.Script()
	assert.False(t, ok)
}

func TestCloseCancelsRequest(t *testing.T) {
	exp := &stubExporter{blocking: map[diagram.DatabaseType]bool{diagram.SQLServer: true}}

	m, cmd := newModel(exp).Open(params(diagram.SQLServer), diagram.New("d", diagram.Generic))
	req := requestOf(t, cmd)
	done := make(chan tea.Msg, 1)
	go func() { done <- req() }()

	m = m.Close()
	assert.False(t, m.Visible())

	m, _ = m.Update(<-done)
	assert.False(t, m.Visible())
	assert.NoError(t, m.Err())
	assert.Empty(t, m.View())
}

func TestDismissKeys(t *testing.T) {
	exp := &stubExporter{base: "x"}
	m, _ := newModel(exp).Open(params(diagram.Generic), diagram.New("d", diagram.Generic))

	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyEsc},
		{Type: tea.KeyEnter},
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyRunes, Runes: []rune("c")},
	} {
		_, cmd := m.Update(key)
		require.NotNil(t, cmd, key.String())
		assert.Equal(t, dialog.DismissMsg{Kind: dialog.ExportSQL}, cmd())
	}
}

func TestSaveScript(t *testing.T) {
	dir := t.TempDir()
	exp := &stubExporter{base: "CREATE TABLE a (id int);\n"}
	m, cmd := newModel(exp).WithExportDir(dir).Open(params(diagram.Generic), diagram.New("My Shop", diagram.Generic))
	m, _ = m.Update(resultOf(t, cmd))

	_, save := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	require.NotNil(t, save)
	msg := save().(SavedMsg)
	require.NoError(t, msg.Err)
	assert.Equal(t, filepath.Join(dir, "My_Shop-generic.sql"), msg.Path)

	raw, err := os.ReadFile(msg.Path)
	require.NoError(t, err)
	assert.Equal(t, exp.base, string(raw))
}

func TestActionsIgnoredWhileLoading(t *testing.T) {
	exp := &stubExporter{blocking: map[diagram.DatabaseType]bool{diagram.MySQL: true}}
	m, _ := newModel(exp).Open(params(diagram.MySQL), diagram.New("d", diagram.Generic))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	assert.Nil(t, cmd)
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	assert.Nil(t, cmd)

	m = m.Close()
	assert.False(t, m.Visible())
}
