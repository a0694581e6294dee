package vault_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"passvault/internal/crypto"
	"passvault/internal/domain"
	"passvault/internal/services/registry"
	"passvault/internal/services/vault"
	"passvault/internal/store"
)

type fixture struct {
	home     string
	registry *registry.Service
	vault    *vault.Service
	vaults   *store.VaultFileStore
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	home := t.TempDir()
	hasher, err := crypto.NewHasher(crypto.SchemeSHA256)
	require.NoError(t, err)

	vaults := store.NewVaultFileStore(home)
	reg := registry.New(store.NewRegistryFileStore(home), vaults, hasher, nil)
	require.NoError(t, reg.Load())
	return fixture{
		home:     home,
		registry: reg,
		vault:    vault.New(reg, vaults, store.DocumentFileWriter{}, nil),
		vaults:   vaults,
	}
}

func (f fixture) login(t *testing.T, user domain.Username, password string) *domain.Session {
	t.Helper()
	sess, err := f.registry.Authenticate(user, password)
	require.NoError(t, err)
	return sess
}

func TestAliceScenario(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.registry.Register("alice", "a@x.com", "pw1"))
	sess := f.login(t, "alice", "pw1")

	require.NoError(t, f.vault.AddEntry(sess, "mail", "alice_m", "secret"))

	got, err := f.vault.GetEntry(sess, "mail")
	require.NoError(t, err)
	assert.Equal(t, domain.EntryRecord{Username: "alice_m", Password: "secret"}, got)

	raw, err := os.ReadFile(filepath.Join(f.home, "data", "alice.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"accounts": {"mail": {"username": "alice_m", "password": "secret"}}}`, string(raw))
}

func TestAddEntry_Overwrites(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.registry.Register("alice", "a@x.com", "pw1"))
	sess := f.login(t, "alice", "pw1")

	require.NoError(t, f.vault.AddEntry(sess, "mail", "u1", "p1"))
	require.NoError(t, f.vault.AddEntry(sess, "mail", "u2", "p2"))

	entries, err := f.vault.ListEntries(sess)
	require.NoError(t, err)
	assert.Equal(t, domain.Entries{"mail": {Username: "u2", Password: "p2"}}, entries)
}

func TestAddEntry_EmptyService(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.registry.Register("alice", "a@x.com", "pw1"))
	sess := f.login(t, "alice", "pw1")

	err := f.vault.AddEntry(sess, "", "u", "p")
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
}

func TestRemoveEntry(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.registry.Register("alice", "a@x.com", "pw1"))
	sess := f.login(t, "alice", "pw1")
	require.NoError(t, f.vault.AddEntry(sess, "mail", "u", "p"))
	require.NoError(t, f.vault.AddEntry(sess, "bank", "u", "p"))

	require.NoError(t, f.vault.RemoveEntry(sess, "mail"))
	_, err := f.vault.GetEntry(sess, "mail")
	assert.True(t, errors.Is(err, domain.ErrEntryNotFound))

	services, err := f.vault.Services(sess)
	require.NoError(t, err)
	assert.Equal(t, []domain.ServiceName{"bank"}, services)
}

func TestRemoveEntry_MissingLeavesDocumentUntouched(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.registry.Register("alice", "a@x.com", "pw1"))
	sess := f.login(t, "alice", "pw1")
	require.NoError(t, f.vault.AddEntry(sess, "mail", "u", "p"))

	path := f.vaults.Path("alice")
	before, err := os.ReadFile(path)
	require.NoError(t, err)
	infoBefore, err := os.Stat(path)
	require.NoError(t, err)

	err = f.vault.RemoveEntry(sess, "bank")
	assert.True(t, errors.Is(err, domain.ErrEntryNotFound))

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	infoAfter, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, infoBefore.ModTime(), infoAfter.ModTime())
}

func TestListEntries_IsASnapshot(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.registry.Register("alice", "a@x.com", "pw1"))
	sess := f.login(t, "alice", "pw1")
	require.NoError(t, f.vault.AddEntry(sess, "mail", "u", "p"))

	entries, err := f.vault.ListEntries(sess)
	require.NoError(t, err)
	entries["bank"] = domain.EntryRecord{Username: "x", Password: "y"}

	again, err := f.vault.ListEntries(sess)
	require.NoError(t, err)
	assert.Len(t, again, 1)
}

func TestOperationsRequireSession(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.registry.Register("alice", "a@x.com", "pw1"))
	sess := f.login(t, "alice", "pw1")

	user, ok := f.vault.ActiveUser(sess)
	assert.True(t, ok)
	assert.Equal(t, domain.Username("alice"), user)

	f.vault.Logout(sess)
	f.vault.Logout(sess)
	_, ok = f.vault.ActiveUser(sess)
	assert.False(t, ok)

	for _, s := range []*domain.Session{sess, nil, {}} {
		err := f.vault.AddEntry(s, "mail", "u", "p")
		assert.True(t, errors.Is(err, domain.ErrNoActiveSession))
		err = f.vault.RemoveEntry(s, "mail")
		assert.True(t, errors.Is(err, domain.ErrNoActiveSession))
		_, err = f.vault.GetEntry(s, "mail")
		assert.True(t, errors.Is(err, domain.ErrNoActiveSession))
		_, err = f.vault.ListEntries(s)
		assert.True(t, errors.Is(err, domain.ErrNoActiveSession))
		_, err = f.vault.Services(s)
		assert.True(t, errors.Is(err, domain.ErrNoActiveSession))
		err = f.vault.ExportData(s, filepath.Join(f.home, "out.json"))
		assert.True(t, errors.Is(err, domain.ErrNoActiveSession))
	}
	assert.NoFileExists(t, filepath.Join(f.home, "out.json"))
}

func TestSessionsAreIsolated(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.registry.Register("alice", "a@x.com", "pw1"))
	require.NoError(t, f.registry.Register("bob", "b@x.com", "pw2"))
	alice := f.login(t, "alice", "pw1")
	bob := f.login(t, "bob", "pw2")

	require.NoError(t, f.vault.AddEntry(alice, "mail", "a", "1"))
	_, err := f.vault.GetEntry(bob, "mail")
	assert.True(t, errors.Is(err, domain.ErrEntryNotFound))
}

func TestReRegisterStartsEmpty(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.registry.Register("alice", "a@x.com", "pw1"))
	sess := f.login(t, "alice", "pw1")
	require.NoError(t, f.vault.AddEntry(sess, "mail", "u", "p"))

	require.NoError(t, f.registry.Delete("alice"))
	_, err := f.registry.Authenticate("alice", "pw1")
	assert.True(t, errors.Is(err, domain.ErrInvalidCredentials))

	require.NoError(t, f.registry.Register("alice", "a@x.com", "pw3"))
	sess = f.login(t, "alice", "pw3")
	entries, err := f.vault.ListEntries(sess)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDeletedAccountVaultIsGone(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.registry.Register("alice", "a@x.com", "pw1"))
	sess := f.login(t, "alice", "pw1")
	require.NoError(t, f.registry.Delete("alice"))

	err := f.vault.AddEntry(sess, "mail", "u", "p")
	assert.True(t, errors.Is(err, domain.ErrPersistenceIO))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestCorruptVault(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.registry.Register("alice", "a@x.com", "pw1"))
	sess := f.login(t, "alice", "pw1")
	require.NoError(t, os.WriteFile(f.vaults.Path("alice"), []byte(`{"accounts": 7}`), 0o600))

	_, err := f.vault.ListEntries(sess)
	assert.True(t, errors.Is(err, domain.ErrPersistenceCorrupt))
	err = f.vault.AddEntry(sess, "mail", "u", "p")
	assert.True(t, errors.Is(err, domain.ErrPersistenceCorrupt))
}

func TestExportData_JSON(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.registry.Register("alice", "a@x.com", "pw1"))
	sess := f.login(t, "alice", "pw1")
	require.NoError(t, f.vault.AddEntry(sess, "mail", "alice_m", "secret"))

	out := filepath.Join(t.TempDir(), "alice-export.json")
	require.NoError(t, f.vault.ExportData(sess, out))

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	var got domain.ExportDocument
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, domain.ExportDocument{
		Username:     "alice",
		Email:        "a@x.com",
		PasswordHash: crypto.SHA256Hex("pw1"),
		Entries:      domain.Entries{"mail": {Username: "alice_m", Password: "secret"}},
	}, got)
}

func TestExportData_YAML(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.registry.Register("alice", "a@x.com", "pw1"))
	sess := f.login(t, "alice", "pw1")
	require.NoError(t, f.vault.AddEntry(sess, "mail", "alice_m", "secret"))

	out := filepath.Join(t.TempDir(), "alice.yaml")
	require.NoError(t, f.vault.ExportData(sess, out))

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, yaml.Unmarshal(raw, &got))
	assert.Equal(t, "alice", got["username"])
	assert.Equal(t, "a@x.com", got["email"])
	assert.Contains(t, got["entries"], "mail")
}

func TestExportData_Failures(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.registry.Register("alice", "a@x.com", "pw1"))
	sess := f.login(t, "alice", "pw1")

	err := f.vault.ExportData(sess, filepath.Join(t.TempDir(), "missing", "out.json"))
	assert.True(t, errors.Is(err, domain.ErrPersistenceIO))

	err = f.vault.ExportData(sess, "")
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
}
