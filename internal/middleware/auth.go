package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/vinted-clone/marketplace-backend/internal/logging"
	"github.com/vinted-clone/marketplace-backend/internal/models"
	"github.com/vinted-clone/marketplace-backend/internal/store"
)

type TokenLookup interface {
	FindByToken(ctx context.Context, token string) (*models.User, error)
}

type userKey struct{}

// RequireUser resolves "Authorization: Bearer <token>" to a user, answering
// 401 {"error":"Unauthorized"} when that fails.
func RequireUser(users TokenLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				unauthorized(w)
				return
			}

			user, err := users.FindByToken(r.Context(), token)
			if err != nil {
				if !errors.Is(err, store.ErrNotFound) {
					logging.FromContext(r.Context()).Error("token lookup failed", "error", err)
				}
				unauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey{}, user)))
		})
	}
}

// UserFromContext returns the authenticated caller set by RequireUser.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey{}).(*models.User)
	return user, ok && user != nil
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || scheme != "Bearer" {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(w http.ResponseWriter) {
	reject(w, http.StatusUnauthorized, `{"error":"Unauthorized"}`)
}

// reject answers with a fixed JSON error body in the API's error shape.
func reject(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(body))
}
