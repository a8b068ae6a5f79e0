package store

import "github.com/blerimk/schoolroster/internal/logger"

// Repositories aggregates the persistence layer behind a single wiring
// point for the service layer.
type Repositories struct {
	UserRepository    UserRepository
	StudentRepository StudentRepository
}

// NewRepositories constructs all repositories on the shared connection.
func NewRepositories(db *DB, log *logger.Logger) *Repositories {
	return &Repositories{
		UserRepository:    NewUserRepository(db, log),
		StudentRepository: NewStudentRepository(db, log),
	}
}
