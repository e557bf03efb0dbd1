// internal/config/config.go
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
)

// Config represents the application configuration
type Config struct {
	DefaultDatabaseType string    `toml:"default_database_type"`
	ExportDir           string    `toml:"export_dir"`
	Profiles            []Profile `toml:"profiles"`
	AI                  AIConfig  `toml:"ai"`
	Theme               Theme     `toml:"theme_colors"`
	Keys                KeyMap    `toml:"keys"`

	// path is where the config was loaded from; Save writes back to it
	path string
}

// AIConfig controls the AI-assisted dialect export path
type AIConfig struct {
	Model          string `toml:"model"`
	APIKeyEnv      string `toml:"api_key_env"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Timeout returns the export request timeout
func (a AIConfig) Timeout() time.Duration {
	if a.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// APIKey reads the key from the configured environment variable
func (a AIConfig) APIKey() string {
	if a.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(a.APIKeyEnv)
}

// Theme defines the color palette
type Theme struct {
	TextPrimary   string `toml:"text_primary"`
	TextSecondary string `toml:"text_secondary"`
	TextFaint     string `toml:"text_faint"`
	Accent        string `toml:"accent"`
	Success       string `toml:"success"`
	Error         string `toml:"error"`
	Highlight     string `toml:"highlight"`
	Warning       string `toml:"warning"`
	BgPrimary     string `toml:"bg_primary"`
	BgSecondary   string `toml:"bg_secondary"`
	CardBg        string `toml:"card_bg"`
	BorderColor   string `toml:"border_color"`
}

// KeyMap defines key bindings
type KeyMap struct {
	Menu        []string `toml:"menu"`
	NewDiagram  []string `toml:"new_diagram"`
	OpenDiagram []string `toml:"open_diagram"`
	ExportSQL   []string `toml:"export_sql"`
	Rename      []string `toml:"rename"`
	Undo        []string `toml:"undo"`
	Redo        []string `toml:"redo"`
	Copy        []string `toml:"copy"`
	Save        []string `toml:"save"`
	Help        []string `toml:"help"`
	Exit        []string `toml:"exit"`
}

// DefaultConfig returns a config with default values
func DefaultConfig() *Config {
	return &Config{
		DefaultDatabaseType: "generic",
		ExportDir:           "",
		Profiles:            []Profile{},
		AI: AIConfig{
			Model:          "gemini-2.5-flash",
			APIKeyEnv:      "GEMINI_API_KEY",
			TimeoutSeconds: 30,
		},
		Theme: Theme{
			// Nord Theme Defaults
			TextPrimary:   "#D8DEE9",
			TextSecondary: "#81A1C1",
			TextFaint:     "#4C566A",
			Accent:        "#88C0D0",
			Success:       "#A3BE8C",
			Error:         "#BF616A",
			Highlight:     "#8FBCBB",
			Warning:       "#D08770",
			BgPrimary:     "#2E3440",
			BgSecondary:   "#3B4252",
			CardBg:        "#434C5E",
			BorderColor:   "#4C566A",
		},
		Keys: KeyMap{
			Menu:        []string{"f10", "alt+m"},
			NewDiagram:  []string{"ctrl+t"},
			OpenDiagram: []string{"ctrl+o"},
			ExportSQL:   []string{"ctrl+e"},
			Rename:      []string{"r"},
			Undo:        []string{"ctrl+z", "u"},
			Redo:        []string{"ctrl+y"},
			Copy:        []string{"y"},
			Save:        []string{"s"},
			Help:        []string{"?"},
			Exit:        []string{"ctrl+c", "q"},
		},
	}
}

// ConfigPath returns the XDG-compliant config file path
func ConfigPath() (string, error) {
	return xdg.ConfigFile("ezchart/config.toml")
}

// Load loads the config from disk or creates default
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom loads the config at path, creating it with defaults on first run
func LoadFrom(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		// First run: create default
		cfg := DefaultConfig()
		cfg.path = path
		if err := cfg.Save(); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}
	cfg.path = path

	// Populate defaults for missing fields (migration)
	if cfg.migrate() {
		// Proceed with in-memory defaults even if save fails
		_ = cfg.Save()
	}

	// Decrypt passwords
	key, err := GetMasterKey()
	if err == nil {
		for i := range cfg.Profiles {
			if cfg.Profiles[i].EncryptedPassword != "" {
				decrypted, err := Decrypt(cfg.Profiles[i].EncryptedPassword, key)
				if err == nil {
					cfg.Profiles[i].Password = decrypted
				}
			}
			if cfg.Profiles[i].EncryptedSSHPassword != "" {
				decrypted, err := Decrypt(cfg.Profiles[i].EncryptedSSHPassword, key)
				if err == nil {
					cfg.Profiles[i].SSHPassword = decrypted
				}
			}
		}
	}

	return &cfg, nil
}

// migrate fills sections that older config files lack, reporting whether anything changed
func (c *Config) migrate() bool {
	defaults := DefaultConfig()
	updated := false

	if c.DefaultDatabaseType == "" {
		c.DefaultDatabaseType = defaults.DefaultDatabaseType
		updated = true
	}
	if c.Theme.TextPrimary == "" {
		c.Theme = defaults.Theme
		updated = true
	}
	if c.Theme.BorderColor == "" {
		c.Theme.BorderColor = defaults.Theme.BorderColor
		updated = true
	}
	if len(c.Keys.Menu) == 0 {
		c.Keys = defaults.Keys
		updated = true
	}
	if c.AI.APIKeyEnv == "" && c.AI.Model == "" {
		c.AI = defaults.AI
		updated = true
	}
	return updated
}

// ResolveExportDir returns the directory exports are written to
func (c *Config) ResolveExportDir() string {
	if c.ExportDir != "" {
		return c.ExportDir
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return cwd
}

// Save writes the config to disk
func (c *Config) Save() error {
	path := c.path
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return err
		}
		path = p
	}

	// Ensure directory exists with secure permissions
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	// Create/truncate file with secure permissions (owner read/write only)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	// Encrypt passwords before saving
	key, err := GetMasterKey()
	if err == nil {
		for i := range c.Profiles {
			if c.Profiles[i].Password != "" {
				encrypted, err := Encrypt(c.Profiles[i].Password, key)
				if err == nil {
					c.Profiles[i].EncryptedPassword = encrypted
				}
			}
			if c.Profiles[i].SSHPassword != "" {
				encrypted, err := Encrypt(c.Profiles[i].SSHPassword, key)
				if err == nil {
					c.Profiles[i].EncryptedSSHPassword = encrypted
				}
			}
		}
	}

	return toml.NewEncoder(f).Encode(c)
}
