package types

import (
	"time"

	"github.com/google/uuid"
)

// Session binds the currently authenticated account. The zero value, or a
// session that has been logged out, carries no username.
type Session struct {
	ID        uuid.UUID `json:"id"`
	Username  Username  `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// Active reports whether s is bound to a user.
func (s *Session) Active() bool { return s != nil && s.Username != "" }

// Clear unbinds the session.
func (s *Session) Clear() {
	if s == nil {
		return
	}
	s.Username = ""
}
