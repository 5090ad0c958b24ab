package auth

import "context"

type User struct {
	Username string
}

// CredentialVerifier checks a username and password pair.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) (User, error)
}
