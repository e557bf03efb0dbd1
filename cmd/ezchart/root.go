package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nhath/ezchart/internal/config"
	"github.com/nhath/ezchart/internal/logging"
	"github.com/nhath/ezchart/internal/sqlexport"
	"github.com/nhath/ezchart/internal/store"
	"github.com/nhath/ezchart/internal/ui"
)

type rootOptions struct {
	debug      bool
	logFile    string
	envFile    string
	configPath string
	dbPath     string
}

// app holds what every command needs once bootstrapped
type app struct {
	cfg     *config.Config
	store   *store.Store
	log     *logrus.Logger
	cleanup func()
}

func (a *app) Close() {
	if a.store != nil {
		a.store.Close()
	}
	if a.cleanup != nil {
		a.cleanup()
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "ezchart",
		Short: "Design database diagrams in the terminal",
		Long: `ezchart

A terminal database diagram editor. Create diagrams by hand or import them
from a live PostgreSQL, MySQL, MariaDB or SQLite schema, then export them as
SQL for any supported database or as PNG, JPG and SVG images.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.bootstrap(cmd, true)
			if err != nil {
				return err
			}
			defer a.Close()
			return a.runTUI(cmd.Context())
		},
	}

	f := root.PersistentFlags()
	f.BoolVar(&opts.debug, "debug", false, "Enable debug logging (to ezchart.log unless --log-file is set)")
	f.StringVar(&opts.logFile, "log-file", "", "Write logs to this file")
	f.StringVar(&opts.envFile, "env-file", "", "Load environment variables from this file (default .env when present)")
	f.StringVar(&opts.configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/ezchart/config.toml)")
	f.StringVar(&opts.dbPath, "db", "", "Diagram database (default $XDG_DATA_HOME/ezchart/diagrams.db)")

	root.AddCommand(
		newListCmd(opts),
		newExportCmd(opts),
		newImageCmd(opts),
		newImportCmd(opts),
		newDumpCmd(opts),
		newLoadCmd(opts),
		newProfileCmd(opts),
	)
	return root
}

// loadEnv reads the env file; a missing default .env is not an error
func (o *rootOptions) loadEnv() error {
	if o.envFile != "" {
		if err := godotenv.Load(o.envFile); err != nil {
			return fmt.Errorf("load env file: %w", err)
		}
		return nil
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

func (o *rootOptions) setupLogging(stderr io.Writer, tui bool) (*logrus.Logger, func(), error) {
	level := "info"
	path := o.logFile
	if o.debug {
		level = "debug"
		if path == "" {
			path = "ezchart.log"
		}
	}
	log, cleanup, err := logging.Setup(path, level)
	if err != nil {
		return nil, nil, fmt.Errorf("setup logging: %w", err)
	}
	// one-shot commands own the terminal, so warnings can go to stderr
	if path == "" && !tui {
		log.SetOutput(stderr)
		log.SetLevel(logrus.WarnLevel)
	}
	return log, cleanup, nil
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	if o.configPath != "" {
		return config.LoadFrom(o.configPath)
	}
	return config.Load()
}

func (o *rootOptions) openStore() (*store.Store, error) {
	if o.dbPath != "" {
		return store.Open(o.dbPath)
	}
	return store.NewStore()
}

func (o *rootOptions) bootstrap(cmd *cobra.Command, tui bool) (*app, error) {
	if err := o.loadEnv(); err != nil {
		return nil, err
	}
	log, cleanup, err := o.setupLogging(cmd.ErrOrStderr(), tui)
	if err != nil {
		return nil, err
	}
	a := &app{log: log, cleanup: cleanup}

	if a.cfg, err = o.loadConfig(); err != nil {
		a.Close()
		return nil, fmt.Errorf("load config: %w", err)
	}
	if a.store, err = o.openStore(); err != nil {
		a.Close()
		return nil, fmt.Errorf("open diagram store: %w", err)
	}
	log.WithField("command", cmd.Name()).Debug("bootstrapped")
	return a, nil
}

// exporter builds the SQL export service, going through Gemini when an API key is configured
func (a *app) exporter(ctx context.Context) (*sqlexport.Service, error) {
	opts := []sqlexport.Option{
		sqlexport.WithTimeout(a.cfg.AI.Timeout()),
		sqlexport.WithLogger(a.log),
	}
	if key := a.cfg.AI.APIKey(); key != "" {
		gen, err := sqlexport.NewGeminiGenerator(ctx, key, a.cfg.AI.Model)
		if err != nil {
			return nil, err
		}
		opts = append(opts, sqlexport.WithGenerator(gen))
		a.log.WithField("model", a.cfg.AI.Model).Info("AI-assisted export enabled")
	}
	return sqlexport.NewService(opts...), nil
}

func (a *app) runTUI(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	svc, err := a.exporter(ctx)
	if err != nil {
		return err
	}

	model := ui.NewModel(ui.Options{
		Config:   a.cfg,
		Store:    a.store,
		Exporter: svc,
		AI:       svc.UsesAI(),
		Log:      a.log,
	})
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run TUI: %w", err)
	}
	return nil
}
