package auth

import (
	"context"
	"errors"

	"github.com/amirsoft21/bementor/internal/models"
	"github.com/amirsoft21/bementor/internal/repository"
)

// jwtAuthenticator is the durable-mode pair: signed expiring tokens plus a
// live user lookup, so a deactivated or deleted account stops
// authenticating immediately even with a valid token.
type jwtAuthenticator struct {
	manager *JWTManager
	users   repository.UserRepository
}

func NewJWTAuthenticator(manager *JWTManager, users repository.UserRepository) Authenticator {
	return &jwtAuthenticator{manager: manager, users: users}
}

func (a *jwtAuthenticator) Issue(u *models.User) (string, error) {
	return a.manager.Generate(u.ID.Hex())
}

func (a *jwtAuthenticator) Authenticate(ctx context.Context, token string) (*Identity, error) {
	userID, err := a.manager.Parse(token)
	if err != nil {
		return nil, err
	}
	u, err := a.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if !u.IsActive {
		return nil, ErrInvalidToken
	}
	return &Identity{ID: u.ID.Hex(), Email: u.Email, Role: u.Role}, nil
}

// devAuthenticator is the transient-mode pair: a reversible unsigned
// encoding with no expiry and no live lookup. The identity is synthesized
// from the decoded fields alone. Gated to the in-memory store, which is
// itself refused in production.
type devAuthenticator struct {
	codec DevTokenCodec
}

func NewDevAuthenticator() Authenticator {
	return &devAuthenticator{}
}

func (a *devAuthenticator) Issue(u *models.User) (string, error) {
	return a.codec.Encode(u.ID.Hex(), u.Email, u.Role)
}

func (a *devAuthenticator) Authenticate(_ context.Context, token string) (*Identity, error) {
	return a.codec.Decode(token)
}
