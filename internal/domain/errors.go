package domain

import "github.com/cockroachdb/errors"

// Account, session and entry errors. Callers match them with errors.Is from
// github.com/cockroachdb/errors, which also sees marked errors.
var (
	ErrDuplicateUser      = errors.New("username already in use")
	ErrUnknownUser        = errors.New("user does not exist")
	ErrInvalidCredentials = errors.New("invalid login credentials")
	ErrIncorrectPassword  = errors.New("incorrect old password")
	ErrNoActiveSession    = errors.New("no user logged in")
	ErrEntryNotFound      = errors.New("entry not found")
	ErrInvalidArgument    = errors.New("invalid argument")
)

// Persistence errors.
var (
	// ErrPersistenceCorrupt marks a stored document that does not have the expected shape.
	ErrPersistenceCorrupt = errors.New("persisted document is malformed")
	// ErrPersistenceIO marks a failed read or write of a stored document.
	ErrPersistenceIO = errors.New("persistence i/o failure")
)
