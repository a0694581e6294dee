package types

// ExportDocument is everything known about one account, written by export.
type ExportDocument struct {
	Username     Username `json:"username" yaml:"username"`
	Email        string   `json:"email" yaml:"email"`
	PasswordHash string   `json:"password_hash" yaml:"password_hash"`
	Entries      Entries  `json:"entries" yaml:"entries"`
}
