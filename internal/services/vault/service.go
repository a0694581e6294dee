package vault

import (
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"passvault/internal/domain"
)

// Service gates entry operations on an active session.
//
// State machine for a session:
//   - LoggedOut → LoggedIn via UserRegistry.Authenticate.
//   - LoggedIn → LoggedOut via Logout.
//
// Every entry operation fails with domain.ErrNoActiveSession while logged out.
type Service struct {
	accounts domain.AccountDirectory
	vaults   domain.VaultStore
	writer   domain.DocumentWriter
	log      *zap.Logger
}

// New returns a vault service. A nil logger discards log output.
func New(
	accounts domain.AccountDirectory,
	vaults domain.VaultStore,
	writer domain.DocumentWriter,
	log *zap.Logger,
) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		accounts: accounts,
		vaults:   vaults,
		writer:   writer,
		log:      log.Named("vault"),
	}
}

// ActiveUser returns the username session is bound to.
func (s *Service) ActiveUser(session *domain.Session) (domain.Username, bool) {
	if !session.Active() {
		return "", false
	}
	return session.Username, true
}

// Logout unbinds session. Logging out twice is harmless.
func (s *Service) Logout(session *domain.Session) {
	if session.Active() {
		s.log.Info("User is logging out", zap.Stringer("user", session.Username), zap.Stringer("session", session.ID))
	}
	session.Clear()
}

func (s *Service) activeUser(session *domain.Session, op string) (domain.Username, error) {
	if !session.Active() {
		s.log.Warn("No user logged in", zap.String("op", op))
		return "", errors.Wrap(domain.ErrNoActiveSession, op)
	}
	return session.Username, nil
}

// AddEntry stores a credential for service, replacing any existing one.
func (s *Service) AddEntry(
	session *domain.Session,
	service domain.ServiceName,
	username, password string,
) error {
	user, err := s.activeUser(session, "add entry")
	if err != nil {
		return err
	}
	if service == "" {
		return errors.Wrap(domain.ErrInvalidArgument, "service name is required")
	}

	err = s.vaults.UpdateVault(user, func(doc *domain.VaultDocument) error {
		doc.Accounts[service] = domain.EntryRecord{Username: username, Password: password}
		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "add entry %q", service)
	}
	s.log.Info("New entry added", zap.Stringer("user", user), zap.Stringer("service", service))
	return nil
}

// RemoveEntry deletes service's credential. The vault is left untouched
// when there is no such entry.
func (s *Service) RemoveEntry(session *domain.Session, service domain.ServiceName) error {
	user, err := s.activeUser(session, "remove entry")
	if err != nil {
		return err
	}

	err = s.vaults.UpdateVault(user, func(doc *domain.VaultDocument) error {
		if _, ok := doc.Accounts[service]; !ok {
			return domain.ErrEntryNotFound
		}
		delete(doc.Accounts, service)
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrEntryNotFound) {
			s.log.Warn("No entry found", zap.Stringer("user", user), zap.Stringer("service", service))
		}
		return errors.Wrapf(err, "remove entry %q", service)
	}
	s.log.Info("Entry removed", zap.Stringer("user", user), zap.Stringer("service", service))
	return nil
}

// GetEntry returns a copy of service's credential.
func (s *Service) GetEntry(session *domain.Session, service domain.ServiceName) (domain.EntryRecord, error) {
	user, err := s.activeUser(session, "get entry")
	if err != nil {
		return domain.EntryRecord{}, err
	}
	doc, err := s.vaults.LoadVault(user)
	if err != nil {
		return domain.EntryRecord{}, errors.Wrapf(err, "get entry %q", service)
	}
	rec, ok := doc.Accounts[service]
	if !ok {
		s.log.Warn("No entry found", zap.Stringer("user", user), zap.Stringer("service", service))
		return domain.EntryRecord{}, errors.Wrapf(domain.ErrEntryNotFound, "get entry %q", service)
	}
	s.log.Debug("Entry found", zap.Stringer("user", user), zap.Stringer("service", service))
	return rec, nil
}

// ListEntries returns a snapshot of every credential in the vault.
func (s *Service) ListEntries(session *domain.Session) (domain.Entries, error) {
	user, err := s.activeUser(session, "list entries")
	if err != nil {
		return nil, err
	}
	doc, err := s.vaults.LoadVault(user)
	if err != nil {
		return nil, errors.Wrap(err, "list entries")
	}
	s.log.Info("Listing all entries", zap.Stringer("user", user), zap.Int("entries", len(doc.Accounts)))
	return doc.Accounts.Clone(), nil
}

// Services returns the vault's service names in sorted order.
func (s *Service) Services(session *domain.Session) ([]domain.ServiceName, error) {
	entries, err := s.ListEntries(session)
	if err != nil {
		return nil, err
	}
	return entries.Names(), nil
}

// ExportData writes the session user's account and vault to destination.
func (s *Service) ExportData(session *domain.Session, destination string) error {
	user, err := s.activeUser(session, "export data")
	if err != nil {
		return err
	}
	if destination == "" {
		return errors.Wrap(domain.ErrInvalidArgument, "export destination is required")
	}

	s.log.Info("Exporting data", zap.Stringer("user", user))
	acc, err := s.accounts.Lookup(user)
	if err != nil {
		return errors.Wrap(err, "export data")
	}
	doc, err := s.vaults.LoadVault(user)
	if err != nil {
		return errors.Wrap(err, "export data")
	}

	export := domain.ExportDocument{
		Username:     user,
		Email:        acc.Email,
		PasswordHash: acc.PasswordHash,
		Entries:      doc.Accounts,
	}
	if err := s.writer.WriteDocument(destination, export); err != nil {
		s.log.Error("Export failed", zap.Stringer("user", user), zap.Error(err))
		return errors.Wrap(err, "export data")
	}
	s.log.Info("Data exported", zap.Stringer("user", user), zap.String("path", destination))
	return nil
}

// Compile-time assertion that Service implements domain.VaultService.
var _ domain.VaultService = (*Service)(nil)
