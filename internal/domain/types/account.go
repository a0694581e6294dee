package types

import "encoding/json"

// Account is a registered identity as stored in the registry document.
// The username is the registry key, so it is not serialised with the record.
type Account struct {
	Username     Username `json:"-" yaml:"-"`
	Email        string   `json:"email" yaml:"email"`
	PasswordHash string   `json:"password_hash" yaml:"password_hash" validate:"required,pwdigest"`
}

// Registry maps usernames to their account records.
type Registry map[Username]Account

// Clone returns a copy that can be mutated without touching r.
func (r Registry) Clone() Registry {
	out := make(Registry, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// UnmarshalJSON accepts the legacy "password" key written by older
// registries as a fallback for "password_hash".
func (a *Account) UnmarshalJSON(data []byte) error {
	var aux struct {
		Email        string `json:"email"`
		PasswordHash string `json:"password_hash"`
		Password     string `json:"password"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	a.Email = aux.Email
	a.PasswordHash = aux.PasswordHash
	if a.PasswordHash == "" {
		a.PasswordHash = aux.Password
	}
	return nil
}
