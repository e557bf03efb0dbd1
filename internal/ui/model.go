// Package ui is the root Bubble Tea model: navbar on top, the canvas below,
// a status bar, and the modal dialogs composited over them.
package ui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/nhath/ezchart/internal/config"
	"github.com/nhath/ezchart/internal/db"
	"github.com/nhath/ezchart/internal/diagram"
	"github.com/nhath/ezchart/internal/logging"
	"github.com/nhath/ezchart/internal/store"
	"github.com/nhath/ezchart/internal/ui/components/canvas"
	"github.com/nhath/ezchart/internal/ui/components/navbar"
	"github.com/nhath/ezchart/internal/ui/components/popup"
	"github.com/nhath/ezchart/internal/ui/dialog"
	"github.com/nhath/ezchart/internal/ui/dialog/creatediagram"
	"github.com/nhath/ezchart/internal/ui/dialog/exportsql"
	"github.com/nhath/ezchart/internal/ui/dialog/opendiagram"
	"github.com/nhath/ezchart/internal/ui/styles"
)

// Store is the diagram persistence the UI needs. store.Store satisfies it.
type Store interface {
	Create(name string, dbType diagram.DatabaseType) (*diagram.Diagram, error)
	Get(id string) (*diagram.Diagram, error)
	Latest() (*diagram.Diagram, error)
	List() ([]store.Summary, error)
	Save(d *diagram.Diagram) error
	UpdateName(id, name string) (time.Time, error)
	Delete(id string) error
	Count() (int, error)
}

// Importer reads a live schema through a connection profile
type Importer func(ctx context.Context, p *config.Profile, name string) (*diagram.Diagram, error)

// Options configures NewModel. Config, Store and Exporter are required.
type Options struct {
	Config   *config.Config
	Store    Store
	Exporter exportsql.Exporter
	// AI reports whether dialect exports go through a model
	AI       bool
	Importer Importer
	OpenURL  func(url string) error
	Log      logrus.FieldLogger
}

// Model is the root Bubble Tea model
type Model struct {
	cfg      *config.Config
	store    Store
	importer Importer
	openURL  func(string) error
	log      logrus.FieldLogger
	keys     keyMap

	width, height int

	diagram *diagram.Diagram
	history editHistory

	dialogs dialog.State
	create  creatediagram.Model
	open    opendiagram.Model
	export  exportsql.Model
	help    popup.Model
	navbar  navbar.Model
	canvas  canvas.Model

	statusMsg string
	errorMsg  string
	statusSeq int
}

// NewModel creates the root model
func NewModel(opts Options) Model {
	cfg := opts.Config
	styles.Init(cfg.Theme)

	log := opts.Log
	if log == nil {
		log = logging.Discard()
	}
	importer := opts.Importer
	if importer == nil {
		importer = func(ctx context.Context, p *config.Profile, name string) (*diagram.Diagram, error) {
			return db.ImportProfile(ctx, p, name, log)
		}
	}
	openURL := opts.OpenURL
	if openURL == nil {
		openURL = openBrowser
	}
	defaultType, err := diagram.ParseDatabaseType(cfg.DefaultDatabaseType)
	if err != nil {
		log.WithError(err).Warn("falling back to generic database type")
		defaultType = diagram.Generic
	}

	hint := "Check the log file for details."
	if !opts.AI && cfg.AI.APIKeyEnv != "" {
		hint = fmt.Sprintf("Set %s to enable AI-assisted dialect export.", cfg.AI.APIKeyEnv)
	}

	return Model{
		cfg:      cfg,
		store:    opts.Store,
		importer: importer,
		openURL:  openURL,
		log:      log,
		keys:     newKeyMap(cfg.Keys),
		create:   creatediagram.New(cfg.ListProfiles(), defaultType),
		open:     opendiagram.New(opts.Store),
		export: exportsql.New(opts.Exporter, log).
			WithExportDir(cfg.ResolveExportDir()).
			WithAI(opts.AI).
			WithHint(hint).
			WithKeys(cfg.Keys.Copy, cfg.Keys.Save),
		help:   popup.New(),
		navbar: navbar.New(cfg.Keys),
		canvas: canvas.New(),
	}
}

// Init loads the most recently edited diagram
func (m Model) Init() tea.Cmd {
	return m.loadLatestCmd()
}

// Diagram returns the diagram being edited, or nil
func (m Model) Diagram() *diagram.Diagram { return m.diagram }

// Dialogs exposes the dialog visibility state
func (m Model) Dialogs() dialog.State { return m.dialogs }

// setDiagram makes d current without touching edit history
func (m Model) setDiagram(d *diagram.Diagram) Model {
	m.diagram = d
	if d == nil {
		m.navbar = m.navbar.SetDiagram("", diagram.Generic, time.Time{})
	} else {
		m.navbar = m.navbar.SetDiagram(d.Name, d.DatabaseType, d.UpdatedAt)
	}
	m.canvas = m.canvas.SetDiagram(d)
	return m
}
