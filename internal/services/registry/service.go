package registry

import (
	"slices"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"passvault/internal/domain"
)

// Service owns the username → account mapping.
//
// The registry document is read once by Load and rewritten in full by every
// mutation. Mutations work on a copy that only replaces the in-memory
// registry after the write succeeded, so a failed write leaves the service
// exactly as it was.
type Service struct {
	store  domain.RegistryStore
	vaults domain.VaultStore
	hasher domain.PasswordHasher
	log    *zap.Logger

	mu       sync.Mutex
	accounts domain.Registry
	loaded   bool
}

// New returns a registry service. A nil logger discards log output.
func New(
	store domain.RegistryStore,
	vaults domain.VaultStore,
	hasher domain.PasswordHasher,
	log *zap.Logger,
) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		store:  store,
		vaults: vaults,
		hasher: hasher,
		log:    log.Named("registry"),
	}
}

// Load reads the persisted registry.
//
// A missing document is replaced by an empty, persisted registry. A
// malformed one is moved aside and likewise replaced; that data loss is
// logged but not returned. Other read failures are returned.
func (s *Service) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadLocked()
}

func (s *Service) loadLocked() error {
	s.log.Info("Loading user registry")
	reg, found, err := s.store.LoadRegistry()
	switch {
	case err == nil && found:
		s.accounts, s.loaded = reg, true
		s.log.Debug("User registry loaded", zap.Int("users", len(reg)))
		return nil

	case err == nil:
		s.log.Info("No user registry found, creating a new one")

	case errors.Is(err, domain.ErrPersistenceCorrupt):
		s.log.Warn("User registry is malformed, starting with an empty one", zap.Error(err))
		dst, qerr := s.store.QuarantineRegistry()
		if qerr != nil {
			return qerr
		}
		s.log.Warn("Malformed user registry moved aside", zap.String("path", dst))

	default:
		return err
	}

	if err := s.commit(domain.Registry{}); err != nil {
		return err
	}
	s.loaded = true
	return nil
}

func (s *Service) ensureLoaded() error {
	if s.loaded {
		return nil
	}
	return s.loadLocked()
}

// commit persists next and, on success, makes it the live registry.
func (s *Service) commit(next domain.Registry) error {
	s.log.Debug("Saving user registry", zap.Int("users", len(next)))
	if err := s.store.SaveRegistry(next); err != nil {
		s.log.Error("Saving user registry failed", zap.Error(err))
		return err
	}
	s.accounts = next
	return nil
}

// Register creates an account and its empty vault. An existing vault
// document is kept as is. The vault is created first; if the registry write
// then fails, a vault created by this call is removed again.
func (s *Service) Register(username domain.Username, email, password string) error {
	if username == "" {
		return errors.Wrap(domain.ErrInvalidArgument, "username is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(); err != nil {
		return err
	}
	if _, ok := s.accounts[username]; ok {
		s.log.Warn("Username already in use", zap.Stringer("user", username))
		return errors.Wrapf(domain.ErrDuplicateUser, "register %q", username)
	}

	s.log.Info("Registering new user", zap.Stringer("user", username))
	digest, err := s.hasher.Digest(password)
	if err != nil {
		return errors.Wrapf(err, "digest password for %q", username)
	}

	created, err := s.vaults.CreateVault(username)
	if err != nil {
		s.log.Error("Creating user data failed", zap.Stringer("user", username), zap.Error(err))
		return errors.Wrapf(err, "create vault for %q", username)
	}

	next := s.accounts.Clone()
	next[username] = domain.Account{Username: username, Email: email, PasswordHash: digest}
	if err := s.commit(next); err != nil {
		if created {
			if _, derr := s.vaults.DeleteVault(username); derr != nil {
				s.log.Error("Removing new user data failed", zap.Stringer("user", username), zap.Error(derr))
			}
		}
		return err
	}

	if created {
		s.log.Info("User data created", zap.Stringer("user", username))
	} else {
		s.log.Info("Existing user data kept", zap.Stringer("user", username))
	}
	return nil
}

// Delete removes the account and its vault. A vault that is already gone
// only produces a warning. The vault goes first; if the registry write then
// fails, its entries are written back.
func (s *Service) Delete(username domain.Username) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(); err != nil {
		return err
	}
	if _, ok := s.accounts[username]; !ok {
		s.log.Warn("User does not exist", zap.Stringer("user", username))
		return errors.Wrapf(domain.ErrUnknownUser, "delete %q", username)
	}

	s.log.Info("Deleting user", zap.Stringer("user", username))
	snapshot, snapErr := s.vaults.LoadVault(username)
	existed, err := s.vaults.DeleteVault(username)
	if err != nil {
		s.log.Error("Deleting user data failed", zap.Stringer("user", username), zap.Error(err))
		return errors.Wrapf(err, "delete vault for %q", username)
	}

	next := s.accounts.Clone()
	delete(next, username)
	if err := s.commit(next); err != nil {
		if existed {
			s.restoreVault(username, snapshot, snapErr)
		}
		return err
	}

	if existed {
		s.log.Info("User data deleted", zap.Stringer("user", username))
	} else {
		s.log.Warn("User data file not found", zap.Stringer("user", username))
	}
	return nil
}

// restoreVault writes back a vault removed by a Delete whose registry write
// failed. A vault that could not be read beforehand is recreated empty.
func (s *Service) restoreVault(username domain.Username, doc domain.VaultDocument, loadErr error) {
	if loadErr != nil {
		s.log.Warn("User data was unreadable, restoring an empty vault",
			zap.Stringer("user", username), zap.Error(loadErr))
		doc = domain.NewVaultDocument()
	}
	if _, err := s.vaults.CreateVault(username); err != nil {
		s.log.Error("Restoring user data failed", zap.Stringer("user", username), zap.Error(err))
		return
	}
	err := s.vaults.UpdateVault(username, func(cur *domain.VaultDocument) error {
		cur.Accounts = doc.Accounts
		return nil
	})
	if err != nil {
		s.log.Error("Restoring user data failed", zap.Stringer("user", username), zap.Error(err))
		return
	}
	s.log.Info("User data restored", zap.Stringer("user", username))
}

// Authenticate checks the password and returns a session bound to username.
// Unknown users and wrong passwords fail alike with ErrInvalidCredentials.
func (s *Service) Authenticate(username domain.Username, password string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}

	s.log.Info("Attempting login", zap.Stringer("user", username))
	acc, ok := s.accounts[username]
	if !ok {
		s.log.Warn("Failed login attempt", zap.Stringer("user", username))
		return nil, errors.Wrapf(domain.ErrInvalidCredentials, "login %q", username)
	}
	match, err := s.hasher.Verify(password, acc.PasswordHash)
	if err != nil {
		s.log.Warn("Stored password digest is unusable", zap.Stringer("user", username), zap.Error(err))
		return nil, errors.Mark(errors.Wrapf(err, "login %q", username), domain.ErrInvalidCredentials)
	}
	if !match {
		s.log.Warn("Failed login attempt", zap.Stringer("user", username))
		return nil, errors.Wrapf(domain.ErrInvalidCredentials, "login %q", username)
	}

	sess := &domain.Session{ID: uuid.New(), Username: username, CreatedAt: time.Now().UTC()}
	s.log.Info("User logged in", zap.Stringer("user", username), zap.Stringer("session", sess.ID))
	return sess, nil
}

// UpdateEmail replaces the account's email address.
func (s *Service) UpdateEmail(username domain.Username, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(); err != nil {
		return err
	}
	acc, ok := s.accounts[username]
	if !ok {
		s.log.Warn("User does not exist", zap.Stringer("user", username))
		return errors.Wrapf(domain.ErrUnknownUser, "update email of %q", username)
	}

	s.log.Info("Updating email", zap.Stringer("user", username))
	acc.Email = email
	next := s.accounts.Clone()
	next[username] = acc
	if err := s.commit(next); err != nil {
		return err
	}
	s.log.Info("Email updated", zap.Stringer("user", username), zap.String("email", email))
	return nil
}

// ChangePassword replaces the session user's password after checking the
// old one.
func (s *Service) ChangePassword(session *domain.Session, oldPassword, newPassword string) error {
	if !session.Active() {
		s.log.Warn("No user logged in", zap.String("op", "change password"))
		return errors.Wrap(domain.ErrNoActiveSession, "change password")
	}
	username := session.Username

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(); err != nil {
		return err
	}
	acc, ok := s.accounts[username]
	if !ok {
		return errors.Wrapf(domain.ErrUnknownUser, "change password of %q", username)
	}
	match, err := s.hasher.Verify(oldPassword, acc.PasswordHash)
	if err != nil {
		return errors.Mark(errors.Wrapf(err, "change password of %q", username), domain.ErrIncorrectPassword)
	}
	if !match {
		s.log.Warn("Incorrect old password", zap.Stringer("user", username))
		return errors.Wrapf(domain.ErrIncorrectPassword, "change password of %q", username)
	}

	s.log.Info("Changing password", zap.Stringer("user", username))
	digest, err := s.hasher.Digest(newPassword)
	if err != nil {
		return errors.Wrapf(err, "digest password for %q", username)
	}
	acc.PasswordHash = digest
	next := s.accounts.Clone()
	next[username] = acc
	if err := s.commit(next); err != nil {
		return err
	}
	s.log.Info("Password changed", zap.Stringer("user", username))
	return nil
}

// Lookup returns a copy of the account stored under username.
func (s *Service) Lookup(username domain.Username) (domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(); err != nil {
		return domain.Account{}, err
	}
	acc, ok := s.accounts[username]
	if !ok {
		return domain.Account{}, errors.Wrapf(domain.ErrUnknownUser, "lookup %q", username)
	}
	return acc, nil
}

// Usernames returns the registered usernames in sorted order. A registry
// that cannot be loaded is logged and reported as empty.
func (s *Service) Usernames() []domain.Username {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(); err != nil {
		s.log.Error("Loading user registry failed", zap.Error(err))
		return nil
	}
	out := make([]domain.Username, 0, len(s.accounts))
	for name := range s.accounts {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

// Compile-time assertion that Service implements domain.UserRegistry.
var _ domain.UserRegistry = (*Service)(nil)
