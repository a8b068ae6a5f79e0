package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/blerimk/schoolroster/internal/config"
	"github.com/blerimk/schoolroster/internal/logger"
	"github.com/blerimk/schoolroster/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &userRepository{
		db: &DB{
			DB:                 db,
			driver:             config.DriverPostgres,
			logger:             l,
			errorClassificator: NewPostgresErrorClassifier(),
		},
		logger: l,
	}
	return repo, mock, db
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func TestCreateUser_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{
		Username:     "teacher1",
		PasswordHash: strings.Repeat("ab", 32),
		Role:         models.RoleStaff,
	}

	now := time.Now()

	rows := sqlmock.
		NewRows([]string{"id", "username", "password_hash", "role", "created_at"}).
		AddRow(1, user.Username, user.PasswordHash, string(user.Role), now)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(user.Username, user.PasswordHash, user.Role).
		WillReturnRows(rows)

	created, err := repo.CreateUser(ctx, user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != 1 {
		t.Errorf("expected ID=1, got %d", created.ID)
	}
	if created.Role != models.RoleStaff {
		t.Errorf("expected role STAFF, got %s", created.Role)
	}
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{Username: "teacher1", Role: models.RoleStaff}

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(ctx, user)
	if !errors.Is(err, ErrUsernameAlreadyExists) {
		t.Fatalf("expected ErrUsernameAlreadyExists, got %v", err)
	}
}

func TestCreateUser_UnexpectedDBError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{Username: "teacher1", Role: models.RoleStaff}

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(errors.New("db network error"))

	_, err := repo.CreateUser(ctx, user)
	if err == nil || !strings.Contains(err.Error(), "unexpected DB error") {
		t.Fatalf("expected wrapped unexpected DB error, got %v", err)
	}
}

func TestCreateUser_ScanError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{Username: "teacher1", Role: models.RoleStaff}

	rows := sqlmock.
		NewRows([]string{"id"}). // intentionally wrong shape → scan error
		AddRow(1)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnRows(rows)

	_, err := repo.CreateUser(ctx, user)
	if err == nil {
		t.Fatal("expected scan error, got nil")
	}
}

func TestFindByCredentials_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	hash := strings.Repeat("cd", 32)
	now := time.Now()

	rows := sqlmock.
		NewRows([]string{"id", "username", "password_hash", "role", "created_at"}).
		AddRow(7, "admin", hash, "ADMIN", now)

	mock.ExpectQuery("SELECT id, username").
		WithArgs("admin", hash, models.RoleAdmin).
		WillReturnRows(rows)

	found, err := repo.FindByCredentials(ctx, "admin", hash, models.RoleAdmin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.ID != 7 || found.Username != "admin" || found.Role != models.RoleAdmin {
		t.Errorf("unexpected user: %+v", found)
	}
}

func TestFindByCredentials_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "username", "password_hash", "role", "created_at"})

	mock.ExpectQuery("SELECT id, username").
		WithArgs("admin", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(rows)

	_, err := repo.FindByCredentials(ctx, "admin", strings.Repeat("00", 32), models.RoleStaff)
	if !errors.Is(err, ErrNoAccountFound) {
		t.Fatalf("expected ErrNoAccountFound, got %v", err)
	}
}

func TestFindByCredentials_UnexpectedDBError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT id, username").
		WillReturnError(errors.New("connection reset"))

	_, err := repo.FindByCredentials(ctx, "admin", strings.Repeat("00", 32), models.RoleAdmin)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if errors.Is(err, ErrNoAccountFound) {
		t.Fatal("connectivity failure must not look like a missing account")
	}
}

func TestCountAdmins_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	count, err := repo.CountAdmins(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 1 {
		t.Errorf("expected count=1, got %d", count)
	}
}

func TestCountAdmins_QueryError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT COUNT").
		WillReturnError(errors.New("db down"))

	_, err := repo.CountAdmins(ctx)
	if !errors.Is(err, ErrExecutingQuery) {
		t.Fatalf("expected ErrExecutingQuery, got %v", err)
	}
}
