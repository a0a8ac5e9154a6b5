package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vinted-clone/marketplace-backend/internal/logging"
	"github.com/vinted-clone/marketplace-backend/internal/models"
	"github.com/vinted-clone/marketplace-backend/internal/store"
)

type fakeTokens map[string]*models.User

func (f fakeTokens) FindByToken(_ context.Context, token string) (*models.User, error) {
	if token == "explode" {
		return nil, errors.New("connection reset")
	}
	u, ok := f[token]
	if !ok {
		return nil, store.ErrNotFound
	}
	return u, nil
}

func TestRequireUser(t *testing.T) {
	alice := &models.User{ID: primitive.NewObjectID(), Account: models.Account{Username: "alice"}}
	gate := RequireUser(fakeTokens{"good": alice})

	var seen *models.User
	h := gate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = UserFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/offer/publish", nil)
		req.Header.Set("Authorization", "Bearer good")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Same(t, alice, seen)
	})

	for name, header := range map[string]string{
		"missing header": "",
		"wrong scheme":   "Basic good",
		"empty token":    "Bearer ",
		"unknown token":  "Bearer nope",
		"lookup failure": "Bearer explode",
		"no separator":   "Bearergood",
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/offer/publish", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())
		})
	}
}

func TestUserFromContext_Empty(t *testing.T) {
	_, ok := UserFromContext(context.Background())
	assert.False(t, ok)
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	h := RequestLogger(logger, false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logging.FromContext(r.Context()).Info("inside")
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/offers", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	id := rec.Header().Get("X-Request-ID")
	require.Len(t, id, 36)
	assert.Equal(t, http.StatusTeapot, rec.Code)

	out := buf.String()
	assert.Contains(t, out, "msg=inside request_id="+id)
	assert.Contains(t, out, "status=418")
	assert.Contains(t, out, "path=/offers")
}

func TestSecurityHeaders(t *testing.T) {
	noop := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	t.Run("development", func(t *testing.T) {
		rec := httptest.NewRecorder()
		SecurityHeaders(false)(noop).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
		assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
		assert.Contains(t, rec.Header().Get("Content-Security-Policy"), "https://fonts.gstatic.com")
		assert.Empty(t, rec.Header().Get("Strict-Transport-Security"))
	})

	t.Run("production adds HSTS", func(t *testing.T) {
		rec := httptest.NewRecorder()
		SecurityHeaders(true)(noop).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Contains(t, rec.Header().Get("Strict-Transport-Security"), "max-age=")
	})
}

func TestHostCheck(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	tests := []struct {
		allowed []string
		host    string
		want    int
	}{
		{nil, "anything.example", http.StatusOK},
		{[]string{"api.example.com"}, "api.example.com:443", http.StatusOK},
		{[]string{"api.example.com"}, "API.example.com", http.StatusOK},
		{[]string{"api.example.com", "www.example.com"}, "www.example.com", http.StatusOK},
		{[]string{"api.example.com"}, "evil.example", http.StatusForbidden},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Host = tt.host
		rec := httptest.NewRecorder()
		HostCheck(tt.allowed)(ok).ServeHTTP(rec, req)
		assert.Equal(t, tt.want, rec.Code, "host %q allowed %q", tt.host, tt.allowed)
		if tt.want == http.StatusForbidden {
			assert.JSONEq(t, `{"error":"Forbidden"}`, rec.Body.String())
		}
	}
}

func TestCORS(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	t.Run("wildcard", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/offers", nil)
		req.Header.Set("Origin", "https://shop.example")
		rec := httptest.NewRecorder()
		CORS([]string{"*"})(ok).ServeHTTP(rec, req)

		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("listed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/offers", nil)
		req.Header.Set("Origin", "https://shop.example")
		rec := httptest.NewRecorder()
		CORS([]string{"https://shop.example"})(ok).ServeHTTP(rec, req)

		assert.Equal(t, "https://shop.example", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("unlisted origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/offers", nil)
		req.Header.Set("Origin", "https://evil.example")
		rec := httptest.NewRecorder()
		CORS([]string{"https://shop.example"})(ok).ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}
