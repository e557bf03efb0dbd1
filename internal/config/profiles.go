// internal/config/profiles.go
package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Profile is a database connection used to import a diagram from a live schema
type Profile struct {
	Name     string `toml:"name"`
	Type     string `toml:"type"` // postgres, mysql, mariadb, sqlite
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Database string `toml:"database"`
	// Password is kept in memory for usage
	Password string `toml:"-"`
	// EncryptedPassword is the one persisted in the config file
	EncryptedPassword string `toml:"password"`

	// SSH Tunnel Configuration
	SSHHost     string `toml:"ssh_host,omitempty"`
	SSHPort     int    `toml:"ssh_port,omitempty"`
	SSHUser     string `toml:"ssh_user,omitempty"`
	SSHPassword string `toml:"-"`
	SSHKeyPath  string `toml:"ssh_key_path,omitempty"`

	EncryptedSSHPassword string `toml:"ssh_password,omitempty"`
}

// GetProfile retrieves a profile by name
func (c *Config) GetProfile(name string) (*Profile, error) {
	for i := range c.Profiles {
		if c.Profiles[i].Name == name {
			return &c.Profiles[i], nil
		}
	}
	return nil, fmt.Errorf("profile not found: %s", name)
}

// AddProfile adds a new profile to the config
func (c *Config) AddProfile(p Profile) error {
	for _, existing := range c.Profiles {
		if existing.Name == p.Name {
			return fmt.Errorf("profile already exists: %s", p.Name)
		}
	}
	c.Profiles = append(c.Profiles, p)
	return c.Save()
}

// DeleteProfile removes a profile from the config
func (c *Config) DeleteProfile(name string) error {
	for i := range c.Profiles {
		if c.Profiles[i].Name == name {
			c.Profiles = append(c.Profiles[:i], c.Profiles[i+1:]...)
			return c.Save()
		}
	}
	return fmt.Errorf("profile not found: %s", name)
}

// ListProfiles returns all profile names
func (c *Config) ListProfiles() []string {
	names := make([]string, len(c.Profiles))
	for i, p := range c.Profiles {
		names[i] = p.Name
	}
	return names
}

// DisplayDSN renders the profile as a URI without its password
func (p *Profile) DisplayDSN() string {
	switch p.Type {
	case "postgres", "mysql", "mariadb":
		return fmt.Sprintf("%s://%s@%s:%d/%s", p.Type, p.User, p.Host, p.Port, p.Database)
	case "sqlite":
		return "sqlite://" + p.Database
	default:
		return ""
	}
}

// ParseDSN parses a connection string into a Profile
func ParseDSN(name, dsn string) (Profile, error) {
	p := Profile{Name: name}

	scheme, _, found := strings.Cut(dsn, "://")
	if !found {
		// file:test.db or a bare path
		p.Type = "sqlite"
		p.Database = strings.TrimPrefix(dsn, "file:")
		return p, nil
	}

	defaultPorts := map[string]int{"postgres": 5432, "mysql": 3306, "mariadb": 3306}
	switch scheme {
	case "postgresql":
		scheme = "postgres"
	case "sqlite", "sqlite3":
		p.Type = "sqlite"
		p.Database = strings.TrimPrefix(dsn, scheme+"://")
		return p, nil
	}
	port, ok := defaultPorts[scheme]
	if !ok {
		return p, fmt.Errorf("unsupported scheme: %s", scheme)
	}

	u, err := url.Parse(dsn)
	if err != nil {
		return p, err
	}
	p.Type = scheme
	p.Host = u.Hostname()
	p.Port = port
	if s := u.Port(); s != "" {
		if p.Port, err = strconv.Atoi(s); err != nil {
			return p, fmt.Errorf("invalid port %q: %w", s, err)
		}
	}
	p.User = u.User.Username()
	p.Password, _ = u.User.Password()
	p.Database = strings.TrimPrefix(u.Path, "/")
	return p, nil
}
