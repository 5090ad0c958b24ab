package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	authdomain "dealer-app-go/internal/domain/auth"
)

type contextKey int

const (
	userKey contextKey = iota
	userSlotKey
)

// userSlot lets an outer middleware see the user resolved further down the chain.
type userSlot struct {
	user authdomain.User
}

// Authenticator resolves a bearer token into a user.
type Authenticator interface {
	Authenticate(token string) (authdomain.User, error)
}

type BearerAuth struct {
	auth Authenticator
}

func NewBearerAuth(auth Authenticator) *BearerAuth {
	return &BearerAuth{auth: auth}
}

func (a *BearerAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			unauthorized(w)
			return
		}

		user, err := a.auth.Authenticate(token)
		if err != nil {
			unauthorized(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

func bearerToken(value string) (string, bool) {
	parts := strings.Fields(value)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func unauthorized(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
}

func WithUser(ctx context.Context, user authdomain.User) context.Context {
	if slot, ok := ctx.Value(userSlotKey).(*userSlot); ok {
		slot.user = user
	}
	return context.WithValue(ctx, userKey, user)
}

func withUserSlot(ctx context.Context) (context.Context, *userSlot) {
	slot := &userSlot{}
	return context.WithValue(ctx, userSlotKey, slot), slot
}

func UserFromContext(ctx context.Context) (authdomain.User, bool) {
	user, ok := ctx.Value(userKey).(authdomain.User)
	if !ok || user.Username == "" {
		return authdomain.User{}, false
	}
	return user, true
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
