package auth

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/phrazzld/servicehub-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret  = "test-secret-that-is-long-enough-for-testing"
	wrongSecret = "wrong-secret-that-is-long-enough-for-testing"
)

var fixedTime = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, secret string, now time.Time) JWTService {
	t.Helper()
	svc, err := NewJWTServiceWithClock(config.AuthConfig{
		JWTSecret:            secret,
		TokenLifetimeMinutes: 60,
	}, func() time.Time { return now })
	require.NoError(t, err)
	return svc
}

// payloadFromJSON builds a payload the way the HTTP layer does.
func payloadFromJSON(t *testing.T, s string) map[string]any {
	t.Helper()
	var p map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &p))
	return p
}

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	_, err := NewJWTService(config.AuthConfig{JWTSecret: "short", TokenLifetimeMinutes: 60})
	assert.Error(t, err)

	_, err = NewJWTService(config.AuthConfig{JWTSecret: testSecret, TokenLifetimeMinutes: 0})
	assert.Error(t, err)

	svc, err := NewJWTService(config.AuthConfig{JWTSecret: testSecret, TokenLifetimeMinutes: 60})
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestGenerateToken_RoundTrip(t *testing.T) {
	t.Parallel()

	payloads := []string{
		`{"user":{"email":"a@x.com"}}`,
		`{"user":{"email":"a@x.com","name":"Ann","roles":["buyer","seller"]}}`,
		`{"email":"flat@x.com","n":3}`,
		`{}`,
	}

	svc := newTestService(t, testSecret, fixedTime)

	for _, raw := range payloads {
		raw := raw
		t.Run(raw, func(t *testing.T) {
			t.Parallel()
			payload := payloadFromJSON(t, raw)

			token, err := svc.GenerateToken(context.Background(), payload)
			require.NoError(t, err)
			require.NotEmpty(t, token)

			identity, err := svc.ValidateToken(context.Background(), token)
			require.NoError(t, err)

			assert.Equal(t, payload, identity.Payload, "decoded payload must equal the issued payload")
			assert.Equal(t, EmailFromPayload(payload), identity.Email)
			assert.Equal(t, fixedTime.Unix(), identity.IssuedAt.Unix())
			assert.Equal(t, fixedTime.Add(time.Hour).Unix(), identity.ExpiresAt.Unix())
			assert.NotEmpty(t, identity.ID)
		})
	}
}

func TestGenerateToken_ReservedClaims(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, testSecret, fixedTime)
	for _, name := range []string{"exp", "iat", "nbf", "jti"} {
		_, err := svc.GenerateToken(context.Background(), map[string]any{name: 1})
		assert.True(t, errors.Is(err, ErrInvalidPayload), name)
	}
}

func TestGenerateToken_UniqueIDs(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, testSecret, fixedTime)
	payload := payloadFromJSON(t, `{"user":{"email":"a@x.com"}}`)

	a, err := svc.GenerateToken(context.Background(), payload)
	require.NoError(t, err)
	b, err := svc.GenerateToken(context.Background(), payload)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestValidateToken(t *testing.T) {
	t.Parallel()

	payload := map[string]any{"user": map[string]any{"email": "a@x.com"}}
	issuer := newTestService(t, testSecret, fixedTime)
	token, err := issuer.GenerateToken(context.Background(), payload)
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"user": payload["user"],
		"exp":  fixedTime.Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExpToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user": payload["user"],
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	tests := []struct {
		name    string
		svc     JWTService
		token   string
		wantErr error
	}{
		{
			name:  "valid token",
			svc:   issuer,
			token: token,
		},
		{
			name:  "valid just before expiry",
			svc:   newTestService(t, testSecret, fixedTime.Add(59*time.Minute)),
			token: token,
		},
		{
			name:    "expired token",
			svc:     newTestService(t, testSecret, fixedTime.Add(time.Hour+time.Second)),
			token:   token,
			wantErr: ErrExpiredToken,
		},
		{
			name:    "invalid signature",
			svc:     newTestService(t, wrongSecret, fixedTime),
			token:   token,
			wantErr: ErrInvalidToken,
		},
		{
			name:    "tampered payload",
			svc:     issuer,
			token:   tampered,
			wantErr: ErrInvalidToken,
		},
		{
			name:    "malformed token",
			svc:     issuer,
			token:   "this.is.not.a.valid.jwt.token",
			wantErr: ErrInvalidToken,
		},
		{
			name:    "empty token",
			svc:     issuer,
			token:   "",
			wantErr: ErrInvalidToken,
		},
		{
			name:    "alg none",
			svc:     issuer,
			token:   noneToken,
			wantErr: ErrInvalidToken,
		},
		{
			name:    "missing expiry",
			svc:     issuer,
			token:   noExpToken,
			wantErr: ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			identity, err := tt.svc.ValidateToken(context.Background(), tt.token)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
				assert.Nil(t, identity)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "a@x.com", identity.Email)
		})
	}
}

func TestEmailFromPayload(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a@x.com", EmailFromPayload(map[string]any{"user": map[string]any{"email": "a@x.com"}}))
	assert.Equal(t, "", EmailFromPayload(map[string]any{"email": "a@x.com"}))
	assert.Equal(t, "", EmailFromPayload(map[string]any{"user": "a@x.com"}))
	assert.Equal(t, "", EmailFromPayload(map[string]any{"user": map[string]any{"email": 7}}))
	assert.Equal(t, "", EmailFromPayload(nil))
}

func TestPrincipalFromContext(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Anonymous{}, PrincipalFromContext(context.Background()))
	_, ok := IdentityFromContext(context.Background())
	assert.False(t, ok)

	id := Identity{Email: "a@x.com"}
	ctx := WithPrincipal(context.Background(), Authenticated{Identity: id})

	p := PrincipalFromContext(ctx)
	assert.IsType(t, Authenticated{}, p)

	got, ok := IdentityFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "a@x.com", got.Email)

	ctx = WithPrincipal(ctx, Anonymous{})
	_, ok = IdentityFromContext(ctx)
	assert.False(t, ok)
}
