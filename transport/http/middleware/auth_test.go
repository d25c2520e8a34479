package middleware_test

import (
	"context"
	"errors"
	"hotelier/config"
	"hotelier/infras/jwt"
	jwtMocks "hotelier/infras/jwt/mocks"
	"hotelier/infras/otel/mocks"
	"hotelier/permissions"
	"hotelier/shared/constant"
	"hotelier/transport/http/middleware"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testPermissions = `{
  "skip": false,
  "endpoints": [
    {"path": "/v1/auth/login", "method": "POST", "permissions": [], "skip": true},
    {"path": "/v1/bookings/{id}", "method": "GET", "permissions": ["superadmin", "admin", "operator"]},
    {"path": "/v1/archives/export", "method": "GET", "permissions": ["superadmin", "admin"]}
  ]
}`

type revokedTokens map[string]bool

func (r revokedTokens) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	if tokenID == "broken" {
		return false, errors.New("redis down")
	}

	return r[tokenID], nil
}

func newRouter(t *testing.T, jwtService jwt.JWT) http.Handler {
	t.Helper()

	perms, err := permissions.Parse([]byte(testPermissions))
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.App.APIKey = "internal-key"

	auth := middleware.NewAuthRoleMiddleware(jwtService, revokedTokens{"revoked": true}, mocks.NewOtel(), perms, cfg)

	echoRole := func(w http.ResponseWriter, r *http.Request) {
		role, _ := r.Context().Value(constant.ContextKeyUserRole).(string)
		_, _ = w.Write([]byte(role))
	}

	router := chi.NewRouter()
	router.Group(func(r chi.Router) {
		r.Use(auth.APIKey, auth.Auth, auth.RBAC)
		r.Post("/v1/auth/login", echoRole)
		r.Get("/v1/bookings/{id}", echoRole)
		r.Get("/v1/archives/export", echoRole)
	})

	return router
}

func claimsFor(role, tokenID string) *jwt.Claims {
	return &jwt.Claims{UserID: "user-1", Email: "frontdesk@hotel.test", Role: role, TokenID: tokenID, Type: jwt.AccessToken}
}

func TestAuthRole(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		path     string
		header   map[string]string
		setup    func(m *jwtMocks.MockJWT)
		wantCode int
		wantBody string
	}{
		{
			name:     "public login needs no token",
			method:   http.MethodPost,
			path:     "/v1/auth/login",
			setup:    func(*jwtMocks.MockJWT) {},
			wantCode: http.StatusOK,
		},
		{
			name:     "missing header",
			method:   http.MethodGet,
			path:     "/v1/bookings/7",
			setup:    func(*jwtMocks.MockJWT) {},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "malformed header",
			method:   http.MethodGet,
			path:     "/v1/bookings/7",
			header:   map[string]string{"Authorization": "Token abc"},
			setup:    func(*jwtMocks.MockJWT) {},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:   "expired token",
			method: http.MethodGet,
			path:   "/v1/bookings/7",
			header: map[string]string{"Authorization": "Bearer expired"},
			setup: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken("expired", jwt.AccessToken).Return(nil, jwt.ErrExpiredToken)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:   "revoked token",
			method: http.MethodGet,
			path:   "/v1/bookings/7",
			header: map[string]string{"Authorization": "Bearer t"},
			setup: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken("t", jwt.AccessToken).Return(claimsFor("operator", "revoked"), nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:   "operator reads a booking",
			method: http.MethodGet,
			path:   "/v1/bookings/7",
			header: map[string]string{"Authorization": "Bearer t"},
			setup: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken("t", jwt.AccessToken).Return(claimsFor("operator", "fresh"), nil)
			},
			wantCode: http.StatusOK,
			wantBody: "operator",
		},
		{
			name:   "revocation store failure does not lock users out",
			method: http.MethodGet,
			path:   "/v1/bookings/7",
			header: map[string]string{"Authorization": "Bearer t"},
			setup: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken("t", jwt.AccessToken).Return(claimsFor("admin", "broken"), nil)
			},
			wantCode: http.StatusOK,
			wantBody: "admin",
		},
		{
			name:   "operator cannot export archives",
			method: http.MethodGet,
			path:   "/v1/archives/export",
			header: map[string]string{"Authorization": "Bearer t"},
			setup: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken("t", jwt.AccessToken).Return(claimsFor("operator", "fresh"), nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:     "internal api key bypasses auth",
			method:   http.MethodGet,
			path:     "/v1/archives/export",
			header:   map[string]string{"X-API-Key": "internal-key"},
			setup:    func(*jwtMocks.MockJWT) {},
			wantCode: http.StatusOK,
		},
		{
			name:     "wrong api key",
			method:   http.MethodGet,
			path:     "/v1/archives/export",
			header:   map[string]string{"X-API-Key": "guess"},
			setup:    func(*jwtMocks.MockJWT) {},
			wantCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			jwtService := jwtMocks.NewMockJWT(ctrl)
			tt.setup(jwtService)

			req := httptest.NewRequest(tt.method, tt.path, nil)
			for key, value := range tt.header {
				req.Header.Set(key, value)
			}

			rec := httptest.NewRecorder()
			newRouter(t, jwtService).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}
