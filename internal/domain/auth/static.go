package auth

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// StaticVerifier checks credentials against a fixed set of bcrypt hashes.
type StaticVerifier struct {
	hashes map[string][]byte
}

// NewStaticVerifier parses "name:hash" entries. Blank entries are skipped.
func NewStaticVerifier(entries []string) (*StaticVerifier, error) {
	hashes := make(map[string][]byte, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name, hash, ok := strings.Cut(entry, ":")
		name = strings.TrimSpace(name)
		hash = strings.TrimSpace(hash)
		if !ok || name == "" || hash == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidUserEntry, name)
		}
		if _, err := bcrypt.Cost([]byte(hash)); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidUserEntry, name, err)
		}
		hashes[name] = []byte(hash)
	}
	return &StaticVerifier{hashes: hashes}, nil
}

func (v *StaticVerifier) Verify(_ context.Context, username, password string) (User, error) {
	hash, ok := v.hashes[strings.TrimSpace(username)]
	if !ok {
		return User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return User{Username: strings.TrimSpace(username)}, nil
}

func (v *StaticVerifier) Len() int {
	return len(v.hashes)
}
