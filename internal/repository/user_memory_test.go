package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/amirsoft21/bementor/internal/models"
)

func TestMemoryUserRepoCreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepo()

	u := &models.User{Name: "Jane", Email: "Jane@Example.com", Role: models.RoleStudent, IsActive: true}
	require.NoError(t, repo.Create(ctx, u))
	require.False(t, u.ID.IsZero())

	byEmail, err := repo.FindByEmail(ctx, "JANE@example.COM")
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", byEmail.Email)

	byID, err := repo.FindByID(ctx, u.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, u.ID, byID.ID)
}

func TestMemoryUserRepoDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepo()

	require.NoError(t, repo.Create(ctx, &models.User{Name: "A", Email: "same@example.com", Role: models.RoleStudent}))
	err := repo.Create(ctx, &models.User{Name: "B", Email: "SAME@example.com", Role: models.RoleTeacher})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestMemoryUserRepoConcurrentDuplicateRegistration(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepo()

	const workers = 16
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- repo.Create(ctx, &models.User{Name: "Racer", Email: "race@example.com", Role: models.RoleStudent})
		}()
	}
	wg.Wait()
	close(errs)

	created, rejected := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			created++
		default:
			assert.ErrorIs(t, err, ErrDuplicateEmail)
			rejected++
		}
	}
	assert.Equal(t, 1, created)
	assert.Equal(t, workers-1, rejected)
}

func TestMemoryUserRepoReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepo()

	u := &models.User{Name: "Jane", Email: "jane@example.com", Role: models.RoleStudent}
	require.NoError(t, repo.Create(ctx, u))

	got, err := repo.FindByID(ctx, u.ID.Hex())
	require.NoError(t, err)
	got.Name = "Mutated"

	again, err := repo.FindByID(ctx, u.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Jane", again.Name)
}

func TestMemoryUserRepoSetActive(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepo()

	u := &models.User{Name: "Jane", Email: "jane@example.com", Role: models.RoleStudent, IsActive: true}
	require.NoError(t, repo.Create(ctx, u))

	require.NoError(t, repo.SetActive(ctx, u.ID.Hex(), false))
	got, err := repo.FindByID(ctx, u.ID.Hex())
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	assert.ErrorIs(t, repo.SetActive(ctx, "missing", false), ErrNotFound)
}

func TestMemoryUserRepoUpdateEmailChange(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepo()

	a := &models.User{Name: "A", Email: "a@example.com", Role: models.RoleStudent}
	b := &models.User{Name: "B", Email: "b@example.com", Role: models.RoleStudent}
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	// taking another user's address is refused
	a.Email = "B@Example.com"
	assert.ErrorIs(t, repo.Update(ctx, a), ErrDuplicateEmail)

	// the other user's record is untouched
	got, err := repo.FindByEmail(ctx, "b@example.com")
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)

	// a fresh address re-keys both lookups
	a.Email = "new@example.com"
	require.NoError(t, repo.Update(ctx, a))

	_, err = repo.FindByEmail(ctx, "a@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
	got, err = repo.FindByEmail(ctx, "new@example.com")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
}

func TestMemoryUserRepoUpdateMissing(t *testing.T) {
	repo := NewMemoryUserRepo()
	u := &models.User{Name: "Nobody", Email: "nobody@example.com", ID: primitive.NewObjectID()}
	assert.ErrorIs(t, repo.Update(context.Background(), u), ErrNotFound)
}
