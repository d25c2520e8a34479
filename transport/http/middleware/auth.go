package middleware

import (
	"context"
	"crypto/subtle"
	"errors"
	"hotelier/config"
	"hotelier/infras/jwt"
	"hotelier/infras/otel"
	"hotelier/permissions"
	"hotelier/shared/constant"
	"hotelier/shared/failure"
	"hotelier/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// internalCallKey marks a request authenticated by the internal API key.
type internalCallKey struct{}

type Auth interface {
	Auth(http.Handler) http.Handler
	APIKey(http.Handler) http.Handler
}

type Role interface {
	RBAC(http.Handler) http.Handler
}

type AuthRole interface {
	Auth
	Role
}

// TokenRevocation reports whether a session token id was revoked by logout or refresh rotation.
type TokenRevocation interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type authRoleImpl struct {
	jwtService jwt.JWT
	revocation TokenRevocation
	otel       otel.Otel
	permission *permissions.PermissionData
	cfg        *config.Config
}

func NewAuthRoleMiddleware(jwtService jwt.JWT, revocation TokenRevocation, otel otel.Otel, permissions *permissions.PermissionData, cfg *config.Config) AuthRole {
	return &authRoleImpl{
		jwtService: jwtService,
		revocation: revocation,
		otel:       otel,
		permission: permissions,
		cfg:        cfg,
	}
}

func internalCall(ctx context.Context) bool {
	internal, _ := ctx.Value(internalCallKey{}).(bool)

	return internal
}

// Auth requires a valid, unrevoked access token unless the route is public or the
// request already passed APIKey. The token's identity is copied into the context.
func (m *authRoleImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "auth.middleware")
		defer scope.End()

		path := findRoute(request)

		if internalCall(ctx) || (m.permission != nil && isPublic(m.permission, path, request.Method)) {
			next.ServeHTTP(writer, request)

			return
		}

		scope.SetAttributes(map[string]any{"http.path": path, "http.method": request.Method})

		claims, err := m.authenticate(ctx, request.Header.Get(constant.RequestHeaderAuthorization))
		if err != nil {
			scope.TraceError(err)
			response.WithError(writer, err)

			return
		}

		ctx = context.WithValue(ctx, constant.ContextKeyUserID, claims.UserID)
		ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, claims.Email)
		ctx = context.WithValue(ctx, constant.ContextKeyUserRole, claims.Role)
		ctx = context.WithValue(ctx, constant.ContextKeyTokenID, claims.TokenID)

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// authenticate turns an Authorization header into access claims or a 401 failure.
// A revocation store outage is logged and the token is accepted.
func (m *authRoleImpl) authenticate(ctx context.Context, header string) (*jwt.Claims, error) {
	token, err := jwt.ExtractTokenFromHeader(header)
	if errors.Is(err, jwt.ErrMissingToken) {
		return nil, failure.Unauthorized("missing authorization header")
	}

	if err != nil {
		return nil, failure.Unauthorized("invalid authorization header format")
	}

	claims, err := m.jwtService.ValidateToken(token, jwt.AccessToken)
	if err != nil {
		return nil, failure.Unauthorized(tokenMessage(err))
	}

	if claims.UserID == "" || claims.Email == "" {
		log.Error().Str("token_id", claims.TokenID).Msg("access token without user id or email")

		return nil, failure.Unauthorized("invalid token claims")
	}

	revoked, err := m.revocation.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		log.Error().Err(err).Str("token_id", claims.TokenID).Msg("failed to check token revocation")
	}

	if revoked {
		return nil, failure.Unauthorized("token has been revoked")
	}

	return claims, nil
}

func tokenMessage(err error) string {
	switch {
	case errors.Is(err, jwt.ErrExpiredToken):
		return "token has expired"
	case errors.Is(err, jwt.ErrInvalidClaim):
		return "invalid token claims"
	case errors.Is(err, jwt.ErrInvalidToken):
		return "invalid token"
	default:
		return "token validation failed"
	}
}

// RBAC checks the authenticated role against the route's permission entry. Routes
// without an entry are let through for any authenticated role.
func (m *authRoleImpl) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "rbac.middleware")
		defer scope.End()

		if internalCall(ctx) {
			next.ServeHTTP(writer, request)

			return
		}

		if m.permission == nil {
			response.WithError(writer, failure.ForbiddenError)

			return
		}

		path := findRoute(request)

		permission, found := m.permission.FindPermissions(path, request.Method)
		if !found {
			log.Warn().Str("path", path).Str("method", request.Method).Msg("route has no permission entry")
		}

		role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

		if m.permission.Skip || permission.Skip || permission.Allows(role) {
			next.ServeHTTP(writer, request)

			return
		}

		scope.SetAttributes(map[string]any{"user_role": role, "allowed_roles": permission.Permissions})
		scope.TraceError(failure.ForbiddenError)
		response.WithError(writer, failure.ForbiddenError)
	})
}

// APIKey lets internal callers presenting the configured X-API-Key skip Auth and RBAC.
// Requests without the header continue as ordinary clients; a wrong key is rejected.
func (m *authRoleImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "api_key.middleware")
		defer scope.End()

		key := request.Header.Get(constant.RequestHeaderAPIKey)
		if key == "" {
			scope.SetAttribute("http.source", "client")
			next.ServeHTTP(writer, request)

			return
		}

		scope.SetAttribute("http.source", "internal")

		if m.cfg.App.APIKey == "" || subtle.ConstantTimeCompare([]byte(key), []byte(m.cfg.App.APIKey)) != 1 {
			scope.TraceError(failure.ForbiddenError)
			response.WithError(writer, failure.ForbiddenError)

			return
		}

		next.ServeHTTP(writer, request.WithContext(context.WithValue(ctx, internalCallKey{}, true)))
	})
}

func isPublic(data *permissions.PermissionData, path, method string) bool {
	permission, _ := data.FindPermissions(path, method)

	return permission.Skip
}

// findRoute resolves the request to its registered chi pattern, e.g. /v1/bookings/{id}.
func findRoute(request *http.Request) string {
	rctx := chi.RouteContext(request.Context())
	if rctx == nil || rctx.Routes == nil {
		return request.URL.Path
	}

	if pattern := rctx.Routes.Find(chi.NewRouteContext(), request.Method, request.URL.Path); pattern != "" {
		return pattern
	}

	return request.URL.Path
}
