package auth

import (
	"encoding/base64"
	"encoding/json"

	"github.com/amirsoft21/bementor/internal/models"
)

// DevTokenCodec is the transient-mode token scheme: a reversible base64
// encoding of the identity with no signature and no expiry. Trust is placed
// entirely in possession of the string, which is only acceptable for local
// development against the in-memory store. The codec is constructed solely
// when the memory fallback is active, never alongside the signed path.
type DevTokenCodec struct{}

type devClaims struct {
	ID    string      `json:"id"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

func (DevTokenCodec) Encode(id, email string, role models.Role) (string, error) {
	b, err := json.Marshal(devClaims{ID: id, Email: email, Role: role})
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

func (DevTokenCodec) Decode(token string) (*Identity, error) {
	b, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	var c devClaims
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, ErrInvalidToken
	}
	if c.ID == "" || !models.ValidRole(c.Role) {
		return nil, ErrInvalidToken
	}
	return &Identity{ID: c.ID, Email: c.Email, Role: c.Role}, nil
}
