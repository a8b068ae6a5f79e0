package models

import "time"

// Role is the closed-set classification of an account. It controls which
// dashboard and operations a logged-in session may use.
type Role string

const (
	// RoleAdmin can manage staff accounts in addition to student records.
	RoleAdmin Role = "ADMIN"

	// RoleStaff can manage student records only.
	RoleStaff Role = "STAFF"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleStaff
}

// User represents an account entity used for authentication.
// Accounts are created once (by the bootstrap seeding or by an administrator)
// and are never updated or deleted afterwards.
type User struct {
	// ID is the internal unique identifier of the user, assigned by the
	// database on insert.
	ID int64

	// Username is the unique login identifier.
	Username string

	// PasswordHash is the stored credential digest: 64 lowercase hex
	// characters of an unsalted SHA-256. It is never exposed to the
	// presentation layer.
	PasswordHash string

	// Role determines which dashboard the session gets after login.
	Role Role

	// CreatedAt is the timestamp when the account was created,
	// assigned by the database.
	CreatedAt time.Time
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
