package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = bytes.Repeat([]byte{7}, 32)

func TestMain(m *testing.M) {
	GetMasterKey = func() ([]byte, error) { return testKey, nil }
	os.Exit(m.Run())
}

func TestLoadFromCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ezchart", "config.toml")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Keys, cfg.Keys)
	assert.Equal(t, "generic", cfg.DefaultDatabaseType)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLoadFromMigratesOldFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("export_dir = \"/tmp/out\"\n"), 0o600))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/out", cfg.ExportDir)
	assert.Equal(t, DefaultConfig().Theme, cfg.Theme)
	assert.Equal(t, []string{"f10", "alt+m"}, cfg.Keys.Menu)
	assert.Equal(t, "GEMINI_API_KEY", cfg.AI.APIKeyEnv)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[theme_colors]")
}

func TestProfilePasswordsEncryptedAtRest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	require.NoError(t, cfg.AddProfile(Profile{
		Name: "prod", Type: "postgres", Host: "db", Port: 5432,
		User: "app", Database: "shop", Password: "s3cret", SSHPassword: "tunnel",
	}))
	assert.Error(t, cfg.AddProfile(Profile{Name: "prod"}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "s3cret")
	assert.NotContains(t, string(raw), "tunnel")

	reloaded, err := LoadFrom(path)
	require.NoError(t, err)
	p, err := reloaded.GetProfile("prod")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", p.Password)
	assert.Equal(t, "tunnel", p.SSHPassword)
	assert.Equal(t, []string{"prod"}, reloaded.ListProfiles())

	require.NoError(t, reloaded.DeleteProfile("prod"))
	assert.Error(t, reloaded.DeleteProfile("prod"))
	_, err = reloaded.GetProfile("prod")
	assert.Error(t, err)
}

func TestEncryptDecrypt(t *testing.T) {
	enc, err := Encrypt("hello", testKey)
	require.NoError(t, err)
	assert.NotEqual(t, "hello", enc)

	dec, err := Decrypt(enc, testKey)
	require.NoError(t, err)
	assert.Equal(t, "hello", dec)

	_, err = Decrypt(enc, bytes.Repeat([]byte{8}, 32))
	assert.Error(t, err)
	_, err = Decrypt("abcd", testKey)
	assert.Error(t, err)
}

func TestParseDSN(t *testing.T) {
	tests := []struct {
		dsn  string
		want Profile
	}{
		{"postgresql://app:pw@db.local/shop", Profile{Type: "postgres", Host: "db.local", Port: 5432, User: "app", Password: "pw", Database: "shop"}},
		{"mysql://root@127.0.0.1:3307/app", Profile{Type: "mysql", Host: "127.0.0.1", Port: 3307, User: "root", Database: "app"}},
		{"mariadb://root@maria/app", Profile{Type: "mariadb", Host: "maria", Port: 3306, User: "root", Database: "app"}},
		{"sqlite:///var/data/app.db", Profile{Type: "sqlite", Database: "/var/data/app.db"}},
		{"file:test.db", Profile{Type: "sqlite", Database: "test.db"}},
	}
	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			got, err := ParseDSN("p", tt.dsn)
			require.NoError(t, err)
			tt.want.Name = "p"
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseDSN("p", "oracle://x")
	assert.Error(t, err)
	_, err = ParseDSN("p", "mysql://h:notaport/db")
	assert.Error(t, err)
}

func TestDisplayDSNOmitsPassword(t *testing.T) {
	p := Profile{Type: "mysql", User: "root", Password: "pw", Host: "h", Port: 3306, Database: "d"}
	assert.Equal(t, "mysql://root@h:3306/d", p.DisplayDSN())
}

func TestAIConfig(t *testing.T) {
	t.Setenv("EZCHART_TEST_KEY", "abc")
	ai := AIConfig{APIKeyEnv: "EZCHART_TEST_KEY"}
	assert.Equal(t, "abc", ai.APIKey())
	assert.Equal(t, DefaultConfig().AI.Timeout(), ai.Timeout())
	assert.Empty(t, AIConfig{}.APIKey())
}
