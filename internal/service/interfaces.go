package service

import (
	"context"

	"github.com/blerimk/schoolroster/models"
)

// AuthService owns credential hashing and account lifecycle. It sits in
// front of [store.UserRepository] and is the only place plaintext passwords
// are ever seen.
type AuthService interface {
	// Login authenticates the (username, password, role) triple.
	// On no match it returns store.ErrNoAccountFound without revealing
	// which part of the triple was wrong.
	Login(ctx context.Context, username, password string, role models.Role) (models.User, error)

	// AddStaff creates a new STAFF account. A taken username yields
	// store.ErrUsernameAlreadyExists.
	AddStaff(ctx context.Context, username, password string) (models.User, error)

	// EnsureDefaultAdmin seeds the bootstrap administrator when no ADMIN
	// account exists. Idempotent; must be called once at process start,
	// after the schema has been migrated.
	EnsureDefaultAdmin(ctx context.Context) error
}

// StudentService validates roster input and delegates persistence to
// [store.StudentRepository]. Required-field checks live here, not in the
// store.
type StudentService interface {
	List(ctx context.Context) ([]models.Student, error)
	Search(ctx context.Context, filter models.StudentFilter) ([]models.Student, error)
	Get(ctx context.Context, id int64) (models.Student, error)
	Create(ctx context.Context, student models.Student) (int64, error)
	Update(ctx context.Context, student models.Student) error
	Delete(ctx context.Context, id int64) error
}
