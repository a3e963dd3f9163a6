package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirsoft21/bementor/internal/models"
	"github.com/amirsoft21/bementor/internal/repository"
)

func TestJWTAuthenticatorLiveLookup(t *testing.T) {
	ctx := context.Background()
	users := repository.NewMemoryUserRepo()
	a := NewJWTAuthenticator(NewJWTManager("test-secret", time.Hour), users)

	u := &models.User{Name: "Jane", Email: "jane@example.com", Role: models.RoleStudent, IsActive: true}
	require.NoError(t, users.Create(ctx, u))

	token, err := a.Issue(u)
	require.NoError(t, err)

	ident, err := a.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, u.ID.Hex(), ident.ID)
	assert.Equal(t, "jane@example.com", ident.Email)
	assert.Equal(t, models.RoleStudent, ident.Role)
}

func TestJWTAuthenticatorRejectsDeactivatedUser(t *testing.T) {
	ctx := context.Background()
	users := repository.NewMemoryUserRepo()
	a := NewJWTAuthenticator(NewJWTManager("test-secret", time.Hour), users)

	u := &models.User{Name: "Jane", Email: "jane@example.com", Role: models.RoleStudent, IsActive: true}
	require.NoError(t, users.Create(ctx, u))

	token, err := a.Issue(u)
	require.NoError(t, err)

	require.NoError(t, users.SetActive(ctx, u.ID.Hex(), false))

	_, err = a.Authenticate(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTAuthenticatorRejectsUnknownUser(t *testing.T) {
	ctx := context.Background()
	users := repository.NewMemoryUserRepo()
	a := NewJWTAuthenticator(NewJWTManager("test-secret", time.Hour), users)

	ghost := &models.User{Name: "Ghost", Email: "ghost@example.com", Role: models.RoleStudent, IsActive: true}
	other := repository.NewMemoryUserRepo()
	require.NoError(t, other.Create(context.Background(), ghost))

	token, err := a.Issue(ghost)
	require.NoError(t, err)

	_, err = a.Authenticate(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDevAuthenticatorNoLookup(t *testing.T) {
	a := NewDevAuthenticator()

	u := &models.User{Name: "Jane", Email: "jane@example.com", Role: models.RoleTeacher}
	token, err := a.Issue(u)
	require.NoError(t, err)

	ident, err := a.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", ident.Email)
	assert.Equal(t, models.RoleTeacher, ident.Role)
}
