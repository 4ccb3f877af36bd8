package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/ShababulAlam/quantum-ecommerce/internal/domain"
	"github.com/ShababulAlam/quantum-ecommerce/internal/repository"
)

// SessionCookie carries the anonymous cart identity across requests.
const SessionCookie = "cart_session"

type ctxKey int

const (
	userKey ctxKey = iota
	sessionKey
)

type AuthMiddleware struct {
	users  repository.UserRepository
	logger *zap.Logger
}

func NewAuthMiddleware(users repository.UserRepository, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{users: users, logger: logger}
}

// Identify resolves the caller's identity: a Bearer token names a user, the
// session cookie names an anonymous cart. An unknown token just falls back
// to anonymous; endpoints that need a user reject it themselves.
func (m *AuthMiddleware) Identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if token := bearerToken(r); token != "" {
			user, err := m.users.FindUserByToken(ctx, token)
			if err == nil {
				ctx = context.WithValue(ctx, userKey, user)
			} else if !errors.Is(err, repository.ErrUserNotFound) {
				m.logger.Warn("token lookup failed", zap.Error(err))
			}
		}

		if cookie, err := r.Cookie(SessionCookie); err == nil && cookie.Value != "" {
			ctx = context.WithValue(ctx, sessionKey, cookie.Value)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

func userFrom(ctx context.Context) *domain.User {
	if u, ok := ctx.Value(userKey).(*domain.User); ok {
		return u
	}
	return nil
}

func sessionFrom(ctx context.Context) string {
	if s, ok := ctx.Value(sessionKey).(string); ok {
		return s
	}
	return ""
}

// identityFrom picks the identity driving ownership checks: the user when
// logged in, the session otherwise, zero when neither is present.
func identityFrom(ctx context.Context) domain.Identity {
	if u := userFrom(ctx); u != nil {
		return domain.UserOwned(u.ID)
	}
	if s := sessionFrom(ctx); s != "" {
		return domain.SessionOwned(s)
	}
	return domain.Identity{}
}

// requireAdmin guards the admin surface.
func requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := userFrom(r.Context())
		if user == nil || !user.IsAdmin {
			respondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next(w, r)
	}
}

func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		HttpOnly: true,
		MaxAge:   60 * 60 * 24 * 30, // 30 days
		Path:     "/",
	})
}
