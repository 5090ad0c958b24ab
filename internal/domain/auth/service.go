package auth

import (
	"context"
	"strings"
	"time"
)

type Service struct {
	verifier CredentialVerifier
	tokens   *TokenIssuer
}

func NewService(verifier CredentialVerifier, tokens *TokenIssuer) *Service {
	return &Service{verifier: verifier, tokens: tokens}
}

func (s *Service) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return "", time.Time{}, ErrInvalidCredentials
	}
	user, err := s.verifier.Verify(ctx, username, password)
	if err != nil {
		return "", time.Time{}, err
	}
	return s.tokens.Issue(user)
}

func (s *Service) Authenticate(token string) (User, error) {
	return s.tokens.Parse(token)
}
