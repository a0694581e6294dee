package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"passvault/internal/domain"
)

const registryFilename = "users.json"

// RegistryFileStore persists the account registry to disk.
type RegistryFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewRegistryFileStore returns a RegistryFileStore rooted at dir.
func NewRegistryFileStore(dir string) *RegistryFileStore {
	return &RegistryFileStore{dir: dir}
}

// Path returns the location of the registry document.
func (s *RegistryFileStore) Path() string {
	return filepath.Join(s.dir, registryFilename)
}

// LoadRegistry reads and validates the registry document.
func (s *RegistryFileStore) LoadRegistry() (domain.Registry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.Path()
	b, found, err := readFile(path)
	if err != nil {
		return nil, false, ioFailure(err, "read registry %s", path)
	}
	if !found {
		return nil, false, nil
	}

	var reg domain.Registry
	if err := json.Unmarshal(b, &reg); err != nil {
		return nil, true, corrupt(err, "decode registry %s", path)
	}
	if err := validateRegistry(reg); err != nil {
		return nil, true, corrupt(err, "validate registry %s", path)
	}
	return reg, true, nil
}

// SaveRegistry replaces the registry document with reg.
func (s *RegistryFileStore) SaveRegistry(reg domain.Registry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, dirMode); err != nil {
		return ioFailure(err, "create %s", s.dir)
	}
	if reg == nil {
		reg = domain.Registry{}
	}
	path := s.Path()
	return withLock(path, func() error {
		return ioFailure(writeDocument(path, reg, fileMode), "write registry %s", path)
	})
}

// QuarantineRegistry renames the current registry document so a fresh one
// can take its place.
func (s *RegistryFileStore) QuarantineRegistry() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.Path()
	dst := path + ".corrupt-" + time.Now().UTC().Format("20060102T150405.000000000")
	if err := os.Rename(path, dst); err != nil {
		return "", ioFailure(err, "quarantine registry %s", path)
	}
	return dst, nil
}

// Compile-time assertion that RegistryFileStore implements domain.RegistryStore.
var _ domain.RegistryStore = (*RegistryFileStore)(nil)
