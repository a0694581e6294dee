package app_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"passvault/internal/app"
	"passvault/internal/crypto"
)

func testConfig(t *testing.T) app.Config {
	t.Helper()
	return app.Config{
		Home: filepath.Join(t.TempDir(), "home"),
		Log:  app.LogConfig{Level: "error", Format: "console"},
		Hash: app.HashConfig{Scheme: "sha256", ScryptN: crypto.DefaultScryptN},
	}
}

func TestNew_CreatesHomeAndRegistry(t *testing.T) {
	cfg := testConfig(t)

	a, err := app.New(cfg)
	require.NoError(t, err)
	defer a.Close()

	assert.FileExists(t, filepath.Join(cfg.Home, "users.json"))
	assert.Equal(t, crypto.SchemeSHA256, a.Hasher.Scheme())

	require.NoError(t, a.Registry.Register("alice", "a@x.com", "pw1"))
	sess, err := a.Registry.Authenticate("alice", "pw1")
	require.NoError(t, err)
	require.NoError(t, a.Vault.AddEntry(sess, "mail", "u", "p"))
	rec, err := a.Vault.GetEntry(sess, "mail")
	require.NoError(t, err)
	assert.Equal(t, "p", rec.Password)
}

func TestNew_ScryptScheme(t *testing.T) {
	cfg := testConfig(t)
	cfg.Hash = app.HashConfig{Scheme: "scrypt", ScryptN: 16}

	a, err := app.New(cfg)
	require.NoError(t, err)
	defer a.Close()

	require.NoError(t, a.Registry.Register("alice", "a@x.com", "pw1"))
	acc, err := a.Registry.Lookup("alice")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(acc.PasswordHash, "scrypt$16$"))
}

func TestNew_BadScryptCost(t *testing.T) {
	cfg := testConfig(t)
	cfg.Hash = app.HashConfig{Scheme: "scrypt", ScryptN: 1000}

	_, err := app.New(cfg)
	assert.Error(t, err)
}
