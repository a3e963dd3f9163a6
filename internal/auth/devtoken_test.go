package auth

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirsoft21/bementor/internal/models"
)

func TestDevTokenRoundTrip(t *testing.T) {
	var codec DevTokenCodec

	token, err := codec.Encode("abc123", "jane@example.com", models.RoleTeacher)
	require.NoError(t, err)

	ident, err := codec.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "abc123", ident.ID)
	assert.Equal(t, "jane@example.com", ident.Email)
	assert.Equal(t, models.RoleTeacher, ident.Role)
}

func TestDevTokenDecodeRejectsGarbage(t *testing.T) {
	var codec DevTokenCodec

	_, err := codec.Decode("!!not-base64!!")
	assert.ErrorIs(t, err, ErrInvalidToken)

	notJSON := base64.StdEncoding.EncodeToString([]byte("plain text"))
	_, err = codec.Decode(notJSON)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDevTokenDecodeRejectsBadClaims(t *testing.T) {
	var codec DevTokenCodec

	missingID := base64.StdEncoding.EncodeToString([]byte(`{"id":"","email":"a@b.c","role":"student"}`))
	_, err := codec.Decode(missingID)
	assert.ErrorIs(t, err, ErrInvalidToken)

	badRole := base64.StdEncoding.EncodeToString([]byte(`{"id":"abc","email":"a@b.c","role":"superuser"}`))
	_, err = codec.Decode(badRole)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
