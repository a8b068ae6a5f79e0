package service

import (
	"github.com/blerimk/schoolroster/internal/logger"
	"github.com/blerimk/schoolroster/internal/store"
)

// Services bundles the application services behind their interfaces.
type Services struct {
	AuthService
	StudentService
}

// NewServices wires every service to the matching repository.
func NewServices(repositories *store.Repositories, logger *logger.Logger) *Services {
	return &Services{
		AuthService:    NewAuthService(repositories.UserRepository, logger),
		StudentService: NewStudentService(repositories.StudentRepository, logger),
	}
}
