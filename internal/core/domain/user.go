package domain

import "time"

// AuthProvider identifies how a user account was created.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "LOCAL"
	ProviderGoogle AuthProvider = "GOOGLE"
)

// User represents an authenticated user of the invoice archive.
type User struct {
	UserID       string       `json:"userID"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Empty for OAuth-only accounts
	Name         string       `json:"name"`
	Provider     AuthProvider `json:"provider"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}
