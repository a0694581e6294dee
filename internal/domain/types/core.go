package types

// Username identifies a registered account. Matching is exact and case-sensitive.
type Username string

// String returns the string form of the username.
func (u Username) String() string { return string(u) }

// ServiceName keys an entry inside a user's vault.
type ServiceName string

// String returns the string form of the service name.
func (s ServiceName) String() string { return string(s) }
