// Package exportsql is the modal that shows a diagram as a SQL script for
// a chosen database type.
package exportsql

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/nhath/ezchart/internal/diagram"
	"github.com/nhath/ezchart/internal/logging"
	"github.com/nhath/ezchart/internal/sqlexport"
	"github.com/nhath/ezchart/internal/ui/dialog"
	"github.com/nhath/ezchart/internal/ui/highlight"
	"github.com/nhath/ezchart/internal/ui/styles"
)

// Exporter produces scripts. sqlexport.Service satisfies it.
type Exporter interface {
	BaseSQL(d *diagram.Diagram) string
	ExportSQL(ctx context.Context, d *diagram.Diagram, target diagram.DatabaseType) (string, error)
}

type status int

const (
	statusClosed status = iota
	statusLoading
	statusSuccess
	statusError
)

// ResultMsg carries the outcome of one export request
type ResultMsg struct {
	Session uint64
	Script  string
	Err     error
}

// CopiedMsg reports a clipboard copy
type CopiedMsg struct {
	Err error
}

// SavedMsg reports a script written to disk
type SavedMsg struct {
	Path string
	Err  error
}

// Model is the export dialog. Each Open starts a new session; results
// from older sessions are dropped.
type Model struct {
	exporter  Exporter
	log       logrus.FieldLogger
	exportDir string
	hint      string
	ai        bool
	copyKey   key.Binding
	saveKey   key.Binding

	status  status
	params  dialog.ExportSQLParams
	name    string
	session uint64
	cancel  context.CancelFunc
	script  string
	err     error

	viewport viewport.Model
	spinner  spinner.Model
	width    int
	height   int
}

func New(exporter Exporter, log logrus.FieldLogger) Model {
	if log == nil {
		log = logging.Discard()
	}
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.HighlightColor())
	return Model{
		exporter: exporter,
		log:      log,
		viewport: viewport.New(0, 0),
		spinner:  s,
		copyKey:  key.NewBinding(key.WithKeys("y")),
		saveKey:  key.NewBinding(key.WithKeys("s")),
	}
}

// WithKeys overrides the copy and save bindings
func (m Model) WithKeys(copyKeys, saveKeys []string) Model {
	if len(copyKeys) > 0 {
		m.copyKey = key.NewBinding(key.WithKeys(copyKeys...))
	}
	if len(saveKeys) > 0 {
		m.saveKey = key.NewBinding(key.WithKeys(saveKeys...))
	}
	return m
}

// WithExportDir sets where saved scripts go
func (m Model) WithExportDir(dir string) Model {
	m.exportDir = dir
	return m
}

// WithAI switches the loading copy to the AI-assisted wording
func (m Model) WithAI(enabled bool) Model {
	m.ai = enabled
	return m
}

// WithHint sets the extra line shown under the error message
func (m Model) WithHint(hint string) Model {
	m.hint = hint
	return m
}

func (m Model) SetSize(w, h int) Model {
	m.width = w
	m.height = h
	bw, bh := m.boxSize()
	m.viewport.Width = bw - 6
	m.viewport.Height = max(bh-10, 3)
	return m
}

func (m Model) Visible() bool                { return m.status != statusClosed }
func (m Model) Loading() bool                { return m.status == statusLoading }
func (m Model) Script() (string, bool)       { return m.script, m.status == statusSuccess }
func (m Model) Err() error                   { return m.err }
func (m Model) Session() uint64              { return m.session }
func (m Model) Target() diagram.DatabaseType { return m.params.TargetDatabaseType }

// Open clears any previous outcome and starts a new request for d
func (m Model) Open(params dialog.ExportSQLParams, d *diagram.Diagram) (Model, tea.Cmd) {
	m = m.stop()
	m.status = statusLoading
	m.params = params
	m.script = ""
	m.err = nil
	m.viewport.SetContent("")
	m.viewport.GotoTop()
	if d != nil {
		m.name = d.Name
	}

	session := m.session
	target := params.TargetDatabaseType
	m.log.WithFields(logrus.Fields{"session": session, "target": target}).Debug("export requested")

	if target == diagram.Generic {
		script := m.exporter.BaseSQL(d)
		return m, func() tea.Msg {
			return ResultMsg{Session: session, Script: script}
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	snapshot := d.Clone()
	exporter := m.exporter
	run := func() tea.Msg {
		script, err := exporter.ExportSQL(ctx, snapshot, target)
		return ResultMsg{Session: session, Script: script, Err: err}
	}
	return m, tea.Batch(run, m.spinner.Tick)
}

// Close hides the dialog and abandons the in-flight request
func (m Model) Close() Model {
	m = m.stop()
	m.status = statusClosed
	return m
}

// stop cancels the current session and moves to a fresh token
func (m Model) stop() Model {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.session++
	return m
}

func dismiss() tea.Msg {
	return dialog.DismissMsg{Kind: dialog.ExportSQL}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ResultMsg:
		return m.handleResult(msg), nil

	case spinner.TickMsg:
		if m.status == statusLoading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		if !m.Visible() {
			return m, nil
		}
		switch {
		case key.Matches(msg, m.copyKey):
			if m.status == statusSuccess {
				return m, copyCmd(m.script)
			}
			return m, nil
		case key.Matches(msg, m.saveKey):
			if m.status == statusSuccess {
				return m, saveCmd(m.exportDir, m.fileName(), m.script)
			}
			return m, nil
		}
		switch msg.String() {
		case "esc", "q", "enter", "c":
			return m, dismiss
		}
	}

	if m.status == statusSuccess {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleResult(msg ResultMsg) Model {
	fields := logrus.Fields{"session": msg.Session, "target": m.params.TargetDatabaseType}
	if msg.Session != m.session || m.status != statusLoading {
		m.log.WithFields(fields).Debug("dropping stale export result")
		return m
	}
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}

	switch {
	case msg.Err != nil:
		m.status = statusError
		m.err = msg.Err
		m.log.WithFields(fields).WithError(msg.Err).Warn("export failed")
	case strings.TrimSpace(msg.Script) == "":
		m.status = statusError
		m.err = sqlexport.ErrEmptyScript
		m.log.WithFields(fields).Warn("export returned an empty script")
	default:
		m.status = statusSuccess
		m.script = msg.Script
		m.viewport.SetContent(highlight.SQL(msg.Script, m.params.TargetDatabaseType))
		m.viewport.GotoTop()
	}
	return m
}

func (m Model) fileName() string {
	return diagram.FileName(m.name+"-"+string(m.params.TargetDatabaseType), "sql")
}

func copyCmd(script string) tea.Cmd {
	return func() tea.Msg {
		return CopiedMsg{Err: clipboard.WriteAll(script)}
	}
}

func saveCmd(dir, name, script string) tea.Cmd {
	return func() tea.Msg {
		if dir == "" {
			dir = "."
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return SavedMsg{Err: err}
		}
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(script), 0o644); err != nil {
			return SavedMsg{Err: fmt.Errorf("save script: %w", err)}
		}
		return SavedMsg{Path: path}
	}
}
