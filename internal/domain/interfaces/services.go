package interfaces

import domaintypes "passvault/internal/domain/types"

// AccountDirectory resolves registered accounts.
type AccountDirectory interface {
	Lookup(username domaintypes.Username) (domaintypes.Account, error)
}

// UserRegistry creates, removes and authenticates accounts.
type UserRegistry interface {
	AccountDirectory

	Load() error
	Register(username domaintypes.Username, email, password string) error
	Delete(username domaintypes.Username) error
	Authenticate(username domaintypes.Username, password string) (*domaintypes.Session, error)
	UpdateEmail(username domaintypes.Username, email string) error
	ChangePassword(session *domaintypes.Session, oldPassword, newPassword string) error
	Usernames() []domaintypes.Username
}

// VaultService runs entry operations on behalf of an authenticated session.
type VaultService interface {
	ActiveUser(session *domaintypes.Session) (domaintypes.Username, bool)
	Logout(session *domaintypes.Session)

	AddEntry(session *domaintypes.Session, service domaintypes.ServiceName, username, password string) error
	RemoveEntry(session *domaintypes.Session, service domaintypes.ServiceName) error
	GetEntry(session *domaintypes.Session, service domaintypes.ServiceName) (domaintypes.EntryRecord, error)
	ListEntries(session *domaintypes.Session) (domaintypes.Entries, error)
	Services(session *domaintypes.Session) ([]domaintypes.ServiceName, error)
	ExportData(session *domaintypes.Session, destination string) error
}
