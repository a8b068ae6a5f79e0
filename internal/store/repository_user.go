package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/blerimk/schoolroster/internal/logger"
	"github.com/blerimk/schoolroster/models"
)

// userRepository is the SQL-backed implementation of [UserRepository].
// It handles account creation and credential lookup against the "users"
// table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
//
// A debug-level log message is emitted at construction time to aid
// application startup diagnostics.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new account and returns the fully populated
// [models.User] with server-assigned fields (ID, CreatedAt).
//
// The INSERT uses the [createUser] query which returns all columns via a
// RETURNING clause, so the caller receives the canonical database
// representation of the newly created account.
//
// Error handling:
//   - unique-constraint violation → [ErrUsernameAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
//   - Scan failure → returned directly.
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createUser, user.Username, user.PasswordHash, user.Role)

	// create user in db
	if err := row.Err(); err != nil {
		log.Err(err).
			Str("func", "*userRepository.CreateUser").
			Bool("retryable", r.db.errorClassificator.Classify(err) == Retryable).
			Msg("error: row is nil")

		if r.db.errorClassificator.IsUniqueViolation(err) {
			return models.User{}, ErrUsernameAlreadyExists
		}
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	// scan saved user from db
	if err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Role, &user.CreatedAt); err != nil {
		if r.db.errorClassificator.IsUniqueViolation(err) {
			// some drivers surface statement errors at scan time
			return models.User{}, ErrUsernameAlreadyExists
		}
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: scanning error")
		return models.User{}, err
	}

	return user, nil
}

// FindByCredentials retrieves the account matching the full credential
// triple (username, password digest, role). The role is part of the lookup
// key, not a post-check, so an ADMIN login attempt against a STAFF row
// matches nothing.
//
// Error handling:
//   - zero rows → [ErrNoAccountFound]; the caller cannot tell which part
//     of the triple was wrong.
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) FindByCredentials(ctx context.Context, username, passwordHash string, role models.Role) (models.User, error) {
	log := logger.FromContext(ctx)

	var foundUser models.User
	row := r.db.QueryRowContext(ctx, findUserByCredentials, username, passwordHash, role)

	// find user by credential triple
	if err := row.Err(); err != nil {
		log.Err(err).
			Str("func", "*userRepository.FindByCredentials").
			Bool("retryable", r.db.errorClassificator.Classify(err) == Retryable).
			Msg("error: row is nil")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	// scan found user from db
	if err := row.Scan(&foundUser.ID, &foundUser.Username, &foundUser.PasswordHash, &foundUser.Role, &foundUser.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoAccountFound
		}
		log.Err(err).Str("func", "*userRepository.FindByCredentials").Msg("error: scanning error")
		return models.User{}, err
	}

	return foundUser, nil
}

// CountAdmins returns the number of ADMIN accounts. The bootstrap seeding
// uses it to decide whether a default administrator must be inserted.
func (r *userRepository) CountAdmins(ctx context.Context) (int64, error) {
	log := logger.FromContext(ctx)

	var count int64
	row := r.db.QueryRowContext(ctx, countAdminUsers)
	if err := row.Scan(&count); err != nil {
		log.Err(err).
			Str("func", "*userRepository.CountAdmins").
			Bool("retryable", r.db.errorClassificator.Classify(err) == Retryable).
			Msg("failed to count admin accounts")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}
