package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/blerimk/schoolroster/internal/logger"
	"github.com/blerimk/schoolroster/internal/store"
	"github.com/blerimk/schoolroster/internal/utils"
	"github.com/blerimk/schoolroster/models"
)

// Bootstrap administrator credential, seeded exactly once when no ADMIN row
// exists. It is a publicly known default, not a security control: the
// operator is expected to know it, and the digest weakness is documented on
// [utils.Digest].
const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin123"
)

// authService is the concrete implementation of [AuthService].
// It digests plaintext passwords with the legacy unsalted SHA-256 scheme
// and delegates persistence to a [store.UserRepository].
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs an AuthService wired to the given UserRepository.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		logger:         logger,
	}
}

// Login authenticates an existing account.
//
// It validates that username and password are non-empty and the role is one
// of the known values, digests the password, and looks the triple up as a
// single key. The repository's uniform not-found result is passed through,
// so a wrong username, wrong password, and wrong role are indistinguishable
// to the caller.
func (a *authService) Login(ctx context.Context, username, password string, role models.Role) (models.User, error) {
	log := logger.FromContext(ctx)

	username = strings.TrimSpace(username)
	if username == "" || password == "" || !role.Valid() {
		log.Error().Str("username", username).Str("role", string(role)).Msg("invalid login data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindByCredentials(ctx, username, utils.Digest(password), role)
	if err != nil {
		if errors.Is(err, store.ErrNoAccountFound) {
			// not logged with the username to keep failed attempts and
			// unknown accounts equally silent
			return models.User{}, err
		}
		log.Err(err).Str("username", username).Msg("credential lookup failed")
		return models.User{}, fmt.Errorf("credential lookup failed: %w", err)
	}

	return foundUser, nil
}

// AddStaff creates a new account with the role fixed to STAFF.
//
// Returns the persisted user (with a server-assigned ID) or:
//   - ErrInvalidDataProvided if username or password is empty.
//   - store.ErrUsernameAlreadyExists (wrapped) if the username is taken;
//     the caller matches it with errors.Is to show a specific message.
//   - A wrapped storage error for any other failure.
func (a *authService) AddStaff(ctx context.Context, username, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		log.Error().Str("username", username).Msg("invalid staff data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	createdUser, err := a.userRepository.CreateUser(ctx, models.User{
		Username:     username,
		PasswordHash: utils.Digest(password),
		Role:         models.RoleStaff,
	})
	if err != nil {
		log.Err(err).Str("username", username).Msg("staff creation ended with error")
		return models.User{}, fmt.Errorf("staff creation ended with error: %w", err)
	}

	return createdUser, nil
}

// EnsureDefaultAdmin counts existing ADMIN accounts and, when there are
// none, inserts the bootstrap administrator. Calling it again is a no-op,
// so it is safe on every process start.
func (a *authService) EnsureDefaultAdmin(ctx context.Context) error {
	log := logger.FromContext(ctx)

	count, err := a.userRepository.CountAdmins(ctx)
	if err != nil {
		log.Err(err).Msg("failed to count administrators")
		return fmt.Errorf("failed to count administrators: %w", err)
	}

	if count > 0 {
		return nil
	}

	_, err = a.userRepository.CreateUser(ctx, models.User{
		Username:     defaultAdminUsername,
		PasswordHash: utils.Digest(defaultAdminPassword),
		Role:         models.RoleAdmin,
	})
	if err != nil {
		// a concurrent process may have seeded between count and insert;
		// the unique constraint makes that outcome equivalent to ours
		if errors.Is(err, store.ErrUsernameAlreadyExists) {
			return nil
		}
		log.Err(err).Msg("failed to seed default administrator")
		return fmt.Errorf("failed to seed default administrator: %w", err)
	}

	log.Info().Str("username", defaultAdminUsername).Msg("seeded default administrator")
	return nil
}
