package models

import "time"

// Account statuses as stored in the accounts table.
const (
	// AccountStatusActive marks an account that may log in.
	AccountStatusActive = 0

	// AccountStatusDisabled marks an account that is administratively
	// locked. Disabled accounts are treated as absent by the login chain.
	AccountStatusDisabled = 1
)

// Account is the authoritative account record resolved during login.
// It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type Account struct {
	// AccountID is the internal unique identifier of the account.
	// It is not exposed via JSON and is used only at the persistence layer.
	AccountID int64 `json:"-"`

	// Account is the unique account identifier presented during login.
	Account string `json:"account"`

	// Name is the display name of the account holder.
	// It is non-sensitive and may be shown in UI.
	Name string `json:"name"`

	// Password stores the SHA-256 hex digest of the account's password.
	// This value MUST be a digest, never plaintext.
	Password string `json:"-"`

	// Status is the lifecycle flag of the account
	// (AccountStatusActive or AccountStatusDisabled).
	Status int `json:"status"`

	// CreatedAt is the timestamp when the account was created.
	// Used for auditing and lifecycle management.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Account model.
func (a Account) TableName() string {
	return "accounts"
}

// Active reports whether the account is allowed to authenticate.
func (a Account) Active() bool {
	return a.Status == AccountStatusActive
}
