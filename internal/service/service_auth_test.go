package service

import (
	"context"
	"errors"
	"testing"

	"github.com/blerimk/schoolroster/internal/logger"
	"github.com/blerimk/schoolroster/internal/mock"
	"github.com/blerimk/schoolroster/internal/store"
	"github.com/blerimk/schoolroster/internal/utils"
	"github.com/blerimk/schoolroster/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestAuthSvc(t *testing.T, ctrl *gomock.Controller) (*authService, *mock.MockUserRepository) {
	t.Helper()
	mockUsers := mock.NewMockUserRepository(ctrl)
	svc := NewAuthService(mockUsers, logger.Nop()).(*authService)
	return svc, mockUsers
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestAuthService_Login_DigestsPasswordBeforeLookup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	want := models.User{ID: 1, Username: "admin", Role: models.RoleAdmin}

	// the repository must see the hex digest, never the plaintext
	mockUsers.EXPECT().
		FindByCredentials(ctx, "admin", utils.Digest("admin123"), models.RoleAdmin).
		Return(want, nil)

	got, err := svc.Login(ctx, "admin", "admin123", models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestAuthService_Login_TrimsUsername(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	mockUsers.EXPECT().
		FindByCredentials(ctx, "clerk", utils.Digest("pw123"), models.RoleStaff).
		Return(models.User{ID: 2, Username: "clerk", Role: models.RoleStaff}, nil)

	_, err := svc.Login(ctx, "  clerk  ", "pw123", models.RoleStaff)
	require.NoError(t, err)
}

func TestAuthService_Login_UniformNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	mockUsers.EXPECT().
		FindByCredentials(ctx, "admin", gomock.Any(), models.RoleStaff).
		Return(models.User{}, store.ErrNoAccountFound)

	// existing username with the wrong role surfaces the same sentinel as
	// an unknown username
	_, err := svc.Login(ctx, "admin", "admin123", models.RoleStaff)
	assert.ErrorIs(t, err, store.ErrNoAccountFound)
}

func TestAuthService_Login_ValidationNeverReachesRepository(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		password string
		role     models.Role
	}{
		{name: "empty username", username: "", password: "pw123", role: models.RoleStaff},
		{name: "blank username", username: "   ", password: "pw123", role: models.RoleStaff},
		{name: "empty password", username: "admin", password: "", role: models.RoleAdmin},
		{name: "unknown role", username: "admin", password: "pw123", role: models.Role("TEACHER")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(ctx, tt.username, tt.password, tt.role)
			assert.ErrorIs(t, err, ErrInvalidDataProvided)
		})
	}
}

func TestAuthService_Login_RepositoryErrorWrapped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	dbErr := errors.New("connection reset")
	mockUsers.EXPECT().
		FindByCredentials(ctx, "admin", gomock.Any(), models.RoleAdmin).
		Return(models.User{}, dbErr)

	_, err := svc.Login(ctx, "admin", "admin123", models.RoleAdmin)
	require.Error(t, err)
	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, store.ErrNoAccountFound)
}

// ── AddStaff ─────────────────────────────────────────────────────────────────

func TestAuthService_AddStaff_CreatesStaffAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	mockUsers.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, u models.User) (models.User, error) {
			assert.Equal(t, "clerk", u.Username)
			assert.Equal(t, utils.Digest("pw123"), u.PasswordHash)
			assert.Equal(t, models.RoleStaff, u.Role, "AddStaff must never create an administrator")
			u.ID = 7
			return u, nil
		},
	)

	created, err := svc.AddStaff(ctx, "clerk", "pw123")
	require.NoError(t, err)
	assert.Equal(t, int64(7), created.ID)
}

func TestAuthService_AddStaff_UsernameTaken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	mockUsers.EXPECT().CreateUser(ctx, gomock.Any()).
		Return(models.User{}, store.ErrUsernameAlreadyExists)

	_, err := svc.AddStaff(ctx, "clerk", "pw123")
	assert.ErrorIs(t, err, store.ErrUsernameAlreadyExists)
}

func TestAuthService_AddStaff_RejectsBlankCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	_, err := svc.AddStaff(ctx, "   ", "pw123")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.AddStaff(ctx, "clerk", "")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

// ── EnsureDefaultAdmin ───────────────────────────────────────────────────────

func TestAuthService_EnsureDefaultAdmin_SeedsWhenEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	gomock.InOrder(
		mockUsers.EXPECT().CountAdmins(ctx).Return(int64(0), nil),
		mockUsers.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, u models.User) (models.User, error) {
				assert.Equal(t, "admin", u.Username)
				assert.Equal(t, utils.Digest("admin123"), u.PasswordHash)
				assert.Equal(t, models.RoleAdmin, u.Role)
				return u, nil
			},
		),
	)

	require.NoError(t, svc.EnsureDefaultAdmin(ctx))
}

func TestAuthService_EnsureDefaultAdmin_NoOpWhenAdminExists(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	// CreateUser must not be called, even when the existing administrator
	// is not named "admin"
	mockUsers.EXPECT().CountAdmins(ctx).Return(int64(3), nil)

	require.NoError(t, svc.EnsureDefaultAdmin(ctx))
}

func TestAuthService_EnsureDefaultAdmin_ConcurrentSeedTolerated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	gomock.InOrder(
		mockUsers.EXPECT().CountAdmins(ctx).Return(int64(0), nil),
		mockUsers.EXPECT().CreateUser(ctx, gomock.Any()).
			Return(models.User{}, store.ErrUsernameAlreadyExists),
	)

	require.NoError(t, svc.EnsureDefaultAdmin(ctx))
}

func TestAuthService_EnsureDefaultAdmin_CountErrorPropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	dbErr := errors.New("relation does not exist")
	mockUsers.EXPECT().CountAdmins(ctx).Return(int64(0), dbErr)

	err := svc.EnsureDefaultAdmin(ctx)
	assert.ErrorIs(t, err, dbErr)
}
