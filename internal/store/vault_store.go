package store

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/cockroachdb/errors"

	"passvault/internal/domain"
)

const vaultDirname = "data"

// Usernames matching this are used verbatim as file names.
var plainVaultName = regexp.MustCompile(`^[A-Za-z0-9._@+-]+$`)

// VaultFileStore persists one vault document per user under <dir>/data.
type VaultFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewVaultFileStore returns a VaultFileStore rooted at dir.
func NewVaultFileStore(dir string) *VaultFileStore {
	return &VaultFileStore{dir: filepath.Join(dir, vaultDirname)}
}

// VaultFilename maps a username to its document name. Names outside the
// plain character set are hex encoded behind a "~" prefix, which never
// appears in a plain name, so distinct usernames never share a file.
func VaultFilename(username domain.Username) string {
	name := username.String()
	if name != "." && name != ".." && plainVaultName.MatchString(name) {
		return name + ".json"
	}
	return "~" + hex.EncodeToString([]byte(name)) + ".json"
}

// Path returns the location of username's vault document.
func (s *VaultFileStore) Path(username domain.Username) string {
	return filepath.Join(s.dir, VaultFilename(username))
}

// CreateVault writes an empty vault unless one already exists.
func (s *VaultFileStore) CreateVault(username domain.Username) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, dirMode); err != nil {
		return false, ioFailure(err, "create %s", s.dir)
	}
	path := s.Path(username)
	created := false
	err := withLock(path, func() error {
		if _, err := os.Stat(path); err == nil {
			return nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return ioFailure(err, "stat vault %s", path)
		}
		if err := writeDocument(path, domain.NewVaultDocument(), fileMode); err != nil {
			return ioFailure(err, "write vault %s", path)
		}
		created = true
		return nil
	})
	return created, err
}

// LoadVault reads username's vault document.
func (s *VaultFileStore) LoadVault(username domain.Username) (domain.VaultDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.read(username)
}

// UpdateVault reads username's vault, applies mutate and writes the result
// back, all under the document's lock.
func (s *VaultFileStore) UpdateVault(
	username domain.Username,
	mutate func(doc *domain.VaultDocument) error,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.Path(username)
	return withLock(path, func() error {
		doc, err := s.read(username)
		if err != nil {
			return err
		}
		if err := mutate(&doc); err != nil {
			return err
		}
		return ioFailure(writeDocument(path, doc, fileMode), "write vault %s", path)
	})
}

// DeleteVault removes username's vault document and reports whether it existed.
func (s *VaultFileStore) DeleteVault(username domain.Username) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.Path(username)
	if _, err := os.Stat(s.dir); errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	existed := false
	err := withLock(path, func() error {
		err := os.Remove(path)
		switch {
		case err == nil:
			existed = true
			return nil
		case errors.Is(err, os.ErrNotExist):
			return nil
		default:
			return ioFailure(err, "remove vault %s", path)
		}
	})
	if err != nil {
		return existed, err
	}
	_ = os.Remove(path + lockSuffix)
	return existed, nil
}

func (s *VaultFileStore) read(username domain.Username) (domain.VaultDocument, error) {
	path := s.Path(username)
	b, found, err := readFile(path)
	if err != nil {
		return domain.VaultDocument{}, ioFailure(err, "read vault %s", path)
	}
	if !found {
		return domain.VaultDocument{}, ioFailure(os.ErrNotExist, "vault for %q", username)
	}

	var doc domain.VaultDocument
	if err := json.Unmarshal(b, &doc); err != nil {
		return domain.VaultDocument{}, corrupt(err, "decode vault %s", path)
	}
	if err := validateVault(&doc); err != nil {
		return domain.VaultDocument{}, corrupt(err, "validate vault %s", path)
	}
	return doc, nil
}

// Compile-time assertion that VaultFileStore implements domain.VaultStore.
var _ domain.VaultStore = (*VaultFileStore)(nil)
