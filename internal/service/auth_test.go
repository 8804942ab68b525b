package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/avinashh10x/invoiceGen/internal/entity"
)

func testAdmin(t *testing.T, password string) entity.Admin {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	return entity.Admin{
		ID:           uuid.Must(uuid.NewV4()),
		Name:         "Test admin",
		Email:        "admin@example.com",
		PasswordHash: string(hash),
		Role:         entity.AdminRoleAdmin,
		IsActive:     true,
	}
}

func TestService_Register(t *testing.T) {
	t.Parallel()

	c := NewTester(t)

	c.repo.EXPECT().AdminByEmail(gomock.Any(), "admin@example.com").Return(entity.Admin{}, entity.ErrNotFound)

	var created entity.Admin

	c.repo.EXPECT().CreateAdmin(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, a entity.Admin) error {
			created = a
			return nil
		})

	admin, token, err := c.s.Register(context.Background(), "Test admin", "admin@example.com", "Password1")
	require.NoError(t, err)

	require.NotEmpty(t, token)
	require.Equal(t, entity.AdminRoleAdmin, admin.Role)
	require.True(t, admin.IsActive)

	// Stored hash verifies against the plain password.
	err = bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("Password1"))
	require.NoError(t, err)
}

func TestService_Register_EmailTaken(t *testing.T) {
	t.Parallel()

	c := NewTester(t)

	c.repo.EXPECT().AdminByEmail(gomock.Any(), "admin@example.com").Return(entity.Admin{}, nil)

	_, _, err := c.s.Register(context.Background(), "Test admin", "admin@example.com", "Password1")
	require.ErrorIs(t, err, entity.ErrEmailTaken)
}

func TestService_Register_WeakPassword(t *testing.T) {
	t.Parallel()

	c := NewTester(t)

	_, _, err := c.s.Register(context.Background(), "Test admin", "admin@example.com", "password")
	require.ErrorIs(t, err, entity.ErrInvalidArgument)
}

func TestService_Login(t *testing.T) {
	t.Parallel()

	c := NewTester(t)

	admin := testAdmin(t, "Password1")

	c.repo.EXPECT().AdminByEmail(gomock.Any(), admin.Email).Return(admin, nil)
	c.repo.EXPECT().UpdateAdminLastLogin(gomock.Any(), admin.ID, gomock.Any()).Return(nil)

	got, token, err := c.s.Login(context.Background(), admin.Email, "Password1")
	require.NoError(t, err)

	require.NotEmpty(t, token)
	require.Equal(t, admin.ID, got.ID)
	require.NotNil(t, got.LastLogin)
}

func TestService_Login_WrongPassword(t *testing.T) {
	t.Parallel()

	c := NewTester(t)

	admin := testAdmin(t, "Password1")

	c.repo.EXPECT().AdminByEmail(gomock.Any(), admin.Email).Return(admin, nil)

	_, _, err := c.s.Login(context.Background(), admin.Email, "WrongPassword1")
	require.ErrorIs(t, err, entity.ErrUnauthenticated)
}

func TestService_Login_UnknownEmail(t *testing.T) {
	t.Parallel()

	c := NewTester(t)

	c.repo.EXPECT().AdminByEmail(gomock.Any(), "nobody@example.com").Return(entity.Admin{}, entity.ErrNotFound)

	_, _, err := c.s.Login(context.Background(), "nobody@example.com", "Password1")
	require.ErrorIs(t, err, entity.ErrUnauthenticated)
}

func TestService_Login_Inactive(t *testing.T) {
	t.Parallel()

	c := NewTester(t)

	admin := testAdmin(t, "Password1")
	admin.IsActive = false

	c.repo.EXPECT().AdminByEmail(gomock.Any(), admin.Email).Return(admin, nil)

	_, _, err := c.s.Login(context.Background(), admin.Email, "Password1")
	require.ErrorIs(t, err, entity.ErrUnauthenticated)
}

func TestService_AdminByToken(t *testing.T) {
	t.Parallel()

	c := NewTester(t)

	admin := testAdmin(t, "Password1")

	c.repo.EXPECT().AdminByEmail(gomock.Any(), admin.Email).Return(admin, nil)
	c.repo.EXPECT().UpdateAdminLastLogin(gomock.Any(), admin.ID, gomock.Any()).Return(nil)

	_, token, err := c.s.Login(context.Background(), admin.Email, "Password1")
	require.NoError(t, err)

	c.repo.EXPECT().Admin(gomock.Any(), admin.ID).Return(admin, nil)

	got, err := c.s.AdminByToken(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, admin.ID, got.ID)
}

func TestService_AdminByToken_Garbage(t *testing.T) {
	t.Parallel()

	c := NewTester(t)

	_, err := c.s.AdminByToken(context.Background(), "not-a-token")
	require.ErrorIs(t, err, entity.ErrUnauthenticated)
}

func TestService_Profile_NoAdminInCtx(t *testing.T) {
	t.Parallel()

	c := NewTester(t)

	_, err := c.s.Profile(context.Background())
	require.ErrorIs(t, err, entity.ErrUnauthenticated)
}

func TestService_UpdateProfile(t *testing.T) {
	t.Parallel()

	c := NewTester(t)

	admin := testAdmin(t, "Password1")
	ctx := entity.CtxWithAdmin(context.Background(), admin)

	c.repo.EXPECT().AdminByEmail(gomock.Any(), "new@example.com").Return(entity.Admin{}, entity.ErrNotFound)
	c.repo.EXPECT().UpdateAdminProfile(gomock.Any(), admin.ID, "New name", "new@example.com", gomock.Any()).Return(nil)

	got, err := c.s.UpdateProfile(ctx, "New name", "new@example.com")
	require.NoError(t, err)

	require.Equal(t, "New name", got.Name)
	require.Equal(t, "new@example.com", got.Email)
	require.WithinDuration(t, time.Now(), got.UpdatedAt, time.Minute)
}
