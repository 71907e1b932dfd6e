package models

import (
	"database/sql"
	"time"
)

// User is the database row shape for the users table.
type User struct {
	UserID       string         `db:"user_id"`
	Email        string         `db:"email"`
	PasswordHash sql.NullString `db:"password_hash"` // NULL for OAuth-only accounts
	Name         string         `db:"name"`
	Provider     string         `db:"provider"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
