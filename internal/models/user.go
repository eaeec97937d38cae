package models

import (
	"database/sql"
	"time"
)

// User is the database row backing a user account.
type User struct {
	UserID          string `db:"user_id"`
	Name            string `db:"name"`
	Email           string `db:"email"`
	Role            string `db:"role"`
	PasswordHash    string `db:"password_hash"`
	Blocked         bool   `db:"blocked"`
	IsEmailVerified bool   `db:"is_email_verified"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`

	RefreshTokenHash       sql.NullString `db:"refresh_token_hash"`
	RefreshTokenExpiryTime sql.NullTime   `db:"refresh_token_expiry_time"`
}
