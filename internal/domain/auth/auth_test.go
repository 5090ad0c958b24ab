package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func hashFor(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestStaticVerifier(t *testing.T) {
	verifier, err := NewStaticVerifier([]string{"ana:" + hashFor(t, "secret"), " ", "luis:" + hashFor(t, "other")})
	require.NoError(t, err)
	assert.Equal(t, 2, verifier.Len())
	ctx := context.Background()

	user, err := verifier.Verify(ctx, "ana", "secret")
	require.NoError(t, err)
	assert.Equal(t, "ana", user.Username)

	_, err = verifier.Verify(ctx, "ana", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = verifier.Verify(ctx, "marta", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestStaticVerifierRejectsBadEntries(t *testing.T) {
	_, err := NewStaticVerifier([]string{"ana"})
	assert.ErrorIs(t, err, ErrInvalidUserEntry)

	_, err = NewStaticVerifier([]string{"ana:plaintext"})
	assert.ErrorIs(t, err, ErrInvalidUserEntry)
}

func TestTokenIssuerRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	issuer.now = func() time.Time { return now }

	token, expiresAt, err := issuer.Issue(User{Username: "ana"})
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), expiresAt)

	user, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "ana", user.Username)

	_, err = NewTokenIssuer("other-secret", time.Hour).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	now = now.Add(2 * time.Hour)
	_, err = issuer.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestServiceLogin(t *testing.T) {
	verifier, err := NewStaticVerifier([]string{"ana:" + hashFor(t, "secret")})
	require.NoError(t, err)
	service := NewService(verifier, NewTokenIssuer("test-secret", time.Hour))
	ctx := context.Background()

	token, _, err := service.Login(ctx, "ana", "secret")
	require.NoError(t, err)

	user, err := service.Authenticate(token)
	require.NoError(t, err)
	assert.Equal(t, "ana", user.Username)

	_, _, err = service.Login(ctx, "", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = service.Authenticate("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
