package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/amirsoft21/bementor/internal/auth"
	"github.com/amirsoft21/bementor/internal/models"
	"github.com/amirsoft21/bementor/internal/repository"
)

func newAuthService(t *testing.T) (*AuthService, *repository.MemoryUserRepo, *repository.MemoryTeacherRepo) {
	t.Helper()
	users := repository.NewMemoryUserRepo()
	teachers := repository.NewMemoryTeacherRepo()
	svc := NewAuthService(users, teachers, auth.NewDevAuthenticator(), zap.NewNop())
	return svc, users, teachers
}

func TestRegisterIssuesWorkingToken(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	u, token, err := svc.Register(ctx, RegisterInput{
		Name: "Jane", Email: "jane@example.com", Password: "secret1", Role: models.RoleStudent,
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.True(t, u.IsActive)
	assert.Equal(t, models.PlanFree, u.PremiumPlan)
	assert.Equal(t, models.DefaultAvatar, u.Avatar)

	// the hash stored must verify and never equal the plaintext
	assert.NotEqual(t, "secret1", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret1")))

	got, err := svc.CurrentUser(ctx, u.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", got.Email)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "dup@example.com", Password: "secret1", Role: models.RoleStudent})
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, RegisterInput{Name: "B", Email: "Dup@Example.com", Password: "secret2", Role: models.RoleTeacher})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterTeacherCreatesEmptyProfile(t *testing.T) {
	svc, _, teachers := newAuthService(t)
	ctx := context.Background()

	u, _, err := svc.Register(ctx, RegisterInput{
		Name: "Tess", Email: "tess@example.com", Password: "secret1", Role: models.RoleTeacher, Location: "Berlin",
	})
	require.NoError(t, err)

	profile, err := teachers.FindByUserID(ctx, u.ID.Hex())
	require.NoError(t, err)
	assert.Empty(t, profile.Subjects)
	assert.Equal(t, "Tess", profile.User.Name)
	assert.Equal(t, "Berlin", profile.User.Location)
	assert.True(t, profile.IsActive)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, RegisterInput{Name: "Jane", Email: "jane@example.com", Password: "secret1", Role: models.RoleStudent})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "jane@example.com", "wrong", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _, _ := newAuthService(t)

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "whatever", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRoleMismatchBeatsPasswordCheck(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, RegisterInput{Name: "Jane", Email: "jane@example.com", Password: "secret1", Role: models.RoleStudent})
	require.NoError(t, err)

	// correct password, wrong portal
	_, _, err = svc.Login(ctx, "jane@example.com", "secret1", models.RoleTeacher)
	assert.ErrorIs(t, err, ErrRoleMismatch)
}

func TestLoginDeactivatedAccount(t *testing.T) {
	svc, users, _ := newAuthService(t)
	ctx := context.Background()

	u, _, err := svc.Register(ctx, RegisterInput{Name: "Jane", Email: "jane@example.com", Password: "secret1", Role: models.RoleStudent})
	require.NoError(t, err)
	require.NoError(t, users.SetActive(ctx, u.ID.Hex(), false))

	_, _, err = svc.Login(ctx, "jane@example.com", "secret1", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRecordsLastLogin(t *testing.T) {
	svc, users, _ := newAuthService(t)
	ctx := context.Background()

	u, _, err := svc.Register(ctx, RegisterInput{Name: "Jane", Email: "jane@example.com", Password: "secret1", Role: models.RoleStudent})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "jane@example.com", "secret1", "")
	require.NoError(t, err)

	got, err := users.FindByID(ctx, u.ID.Hex())
	require.NoError(t, err)
	require.NotNil(t, got.LastLogin)
}

func TestChangePasswordWrongOld(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	u, _, err := svc.Register(ctx, RegisterInput{Name: "Jane", Email: "jane@example.com", Password: "secret1", Role: models.RoleStudent})
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, u.ID.Hex(), "wrong-old", "newsecret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestChangePasswordSameValueIsNoop(t *testing.T) {
	svc, users, _ := newAuthService(t)
	ctx := context.Background()

	u, _, err := svc.Register(ctx, RegisterInput{Name: "Jane", Email: "jane@example.com", Password: "secret1", Role: models.RoleStudent})
	require.NoError(t, err)
	before, err := users.FindByID(ctx, u.ID.Hex())
	require.NoError(t, err)

	require.NoError(t, svc.ChangePassword(ctx, u.ID.Hex(), "secret1", "secret1"))

	after, err := users.FindByID(ctx, u.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, before.PasswordHash, after.PasswordHash)
}

func TestChangePasswordRotatesHash(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	u, _, err := svc.Register(ctx, RegisterInput{Name: "Jane", Email: "jane@example.com", Password: "secret1", Role: models.RoleStudent})
	require.NoError(t, err)

	require.NoError(t, svc.ChangePassword(ctx, u.ID.Hex(), "secret1", "rotated1"))

	_, _, err = svc.Login(ctx, "jane@example.com", "secret1", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Login(ctx, "jane@example.com", "rotated1", "")
	assert.NoError(t, err)
}
