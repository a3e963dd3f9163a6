package auth

import (
	"context"
	"errors"

	"github.com/amirsoft21/bementor/internal/models"
)

// Identity is the caller resolved from a bearer token. A token resolves to
// exactly one identity or the request is rejected; there is no partial
// trust state.
type Identity struct {
	ID    string      `json:"id"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Authenticator pairs token issuance with verification. Both sides must use
// the same mode: a token only round-trips through the Authenticator that
// minted it.
type Authenticator interface {
	Issue(u *models.User) (string, error)
	Authenticate(ctx context.Context, token string) (*Identity, error)
}
