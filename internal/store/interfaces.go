package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"

	"github.com/blerimk/schoolroster/models"
)

// UserRepository is the persistence boundary for account records.
// Accounts are append-only: there is no update or delete operation.
type UserRepository interface {
	// CreateUser persists a new account and returns it with the
	// server-assigned ID and CreatedAt. A duplicate username yields
	// ErrUsernameAlreadyExists.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindByCredentials looks up the single row matching username,
	// password digest, and role; all three are part of the lookup key.
	// Zero matches yield ErrNoAccountFound regardless of which part
	// of the triple was wrong.
	FindByCredentials(ctx context.Context, username, passwordHash string, role models.Role) (models.User, error)

	// CountAdmins returns the number of accounts with the ADMIN role.
	CountAdmins(ctx context.Context) (int64, error)
}

// StudentRepository is the persistence boundary for roster records.
type StudentRepository interface {
	// ListAll returns every student ordered by identifier descending.
	// An empty roster yields an empty slice, not an error.
	ListAll(ctx context.Context) ([]models.Student, error)

	// Search returns students matching the filter, same ordering as
	// ListAll. A zero filter behaves like ListAll.
	Search(ctx context.Context, filter models.StudentFilter) ([]models.Student, error)

	// GetByID returns the student with the given identifier or
	// ErrStudentNotFound.
	GetByID(ctx context.Context, id int64) (models.Student, error)

	// Insert persists a new student and returns the server-assigned
	// identifier. Blank optional fields are stored as NULL.
	Insert(ctx context.Context, student models.Student) (int64, error)

	// Update overwrites all mutable fields of the row with student.ID.
	// A missing identifier is a silent no-op.
	Update(ctx context.Context, student models.Student) error

	// Delete removes the row. A missing identifier is a silent no-op.
	Delete(ctx context.Context, id int64) error
}

// ErrorClassificator inspects driver-level errors so repositories can map
// them to domain sentinels and record transience in logs. No operation is
// ever retried; the classification is informational.
type ErrorClassificator interface {
	// Classify reports whether the failed operation could have succeeded
	// on a retry (transient) or not.
	Classify(err error) ErrorClassification

	// IsUniqueViolation reports whether err is a unique-constraint
	// violation from the underlying driver.
	IsUniqueViolation(err error) bool
}
