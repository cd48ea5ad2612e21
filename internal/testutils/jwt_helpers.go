package testutils

import (
	"context"
	"net/http"
	"testing"

	"github.com/phrazzld/servicehub-api/internal/config"
	"github.com/phrazzld/servicehub-api/internal/service/auth"
	"github.com/stretchr/testify/require"
)

const (
	// TestJWTSecret is a dedicated test-only secret for signing JWTs.
	// This must never be used in production.
	TestJWTSecret = "test-jwt-secret-that-is-32-chars-long"

	// TestCookieName is the credential cookie name used in tests.
	TestCookieName = "token"
)

// TestAuthConfig returns an auth configuration suitable for tests.
func TestAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:            TestJWTSecret,
		TokenLifetimeMinutes: 60,
		CookieName:           TestCookieName,
		CookieSecure:         true,
		CookieSameSite:       "none",
	}
}

// NewTestJWTService creates a real HMAC JWT service using the test secret.
func NewTestJWTService(t *testing.T) auth.JWTService {
	t.Helper()
	svc, err := auth.NewJWTService(TestAuthConfig())
	require.NoError(t, err, "failed to create test JWT service")
	return svc
}

// UserPayload returns the identity payload shape the identity-match policy
// reads: {"user": {"email": email}}.
func UserPayload(email string) map[string]any {
	return map[string]any{"user": map[string]any{"email": email}}
}

// CredentialCookie signs a token for email with svc and wraps it in the
// credential cookie.
func CredentialCookie(t *testing.T, svc auth.JWTService, email string) *http.Cookie {
	t.Helper()
	token, err := svc.GenerateToken(context.Background(), UserPayload(email))
	require.NoError(t, err, "failed to generate test token")
	return &http.Cookie{Name: TestCookieName, Value: token}
}
