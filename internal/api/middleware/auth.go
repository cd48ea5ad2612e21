package middleware

import (
	"errors"
	"net/http"

	"github.com/phrazzld/servicehub-api/internal/api"
	"github.com/phrazzld/servicehub-api/internal/api/shared"
	"github.com/phrazzld/servicehub-api/internal/domain"
	"github.com/phrazzld/servicehub-api/internal/platform/logger"
	"github.com/phrazzld/servicehub-api/internal/service/auth"
)

// AuthMiddleware provides cookie-based JWT authentication for routes.
type AuthMiddleware struct {
	jwtService auth.JWTService
	cookieName string
}

// NewAuthMiddleware creates a new AuthMiddleware reading the credential from
// the named cookie.
func NewAuthMiddleware(jwtService auth.JWTService, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		cookieName: cookieName,
	}
}

// Authenticate validates the JWT carried in the credential cookie and attaches
// an auth.Authenticated principal to the request context. Requests with no
// cookie or a token that fails validation are rejected with 401 before the
// next handler runs. A presented but rejected token is logged at WARN.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(m.cookieName)
		if err != nil || cookie.Value == "" {
			api.HandleAPIError(w, r, auth.ErrMissingToken)
			return
		}

		identity, err := m.jwtService.ValidateToken(r.Context(), cookie.Value)
		if err != nil {
			if !errors.Is(err, auth.ErrExpiredToken) && !errors.Is(err, auth.ErrInvalidToken) {
				err = errors.Join(auth.ErrInvalidToken, err)
			}
			api.HandleAPIError(w, r, err, shared.WithElevatedLogLevel())
			return
		}

		ctx := auth.WithPrincipal(r.Context(), auth.Authenticated{Identity: *identity})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireMatchingEmail returns middleware that admits the request only when
// the path parameter named param equals the authenticated identity's email.
// It must run after Authenticate; an anonymous principal is rejected with 401
// and a mismatch with 403.
func RequireMatchingEmail(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := auth.IdentityFromContext(r.Context())
			if !ok {
				api.HandleAPIError(w, r, domain.ErrUnauthorized)
				return
			}

			email, err := shared.PathParam(r, param)
			if err != nil {
				api.HandleAPIError(w, r, err)
				return
			}

			if identity.Email == "" || email != identity.Email {
				logger.FromContextOrDefault(r.Context(), nil).Debug("identity does not own resource",
					"token_id", identity.ID)
				api.HandleAPIError(w, r, domain.ErrForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
