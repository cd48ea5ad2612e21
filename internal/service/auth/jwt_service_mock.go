package auth

import (
	"context"
	"time"
)

// MockJWTService is a mock implementation of the JWTService interface for testing.
// This is the single canonical mock implementation to be used in all tests.
type MockJWTService struct {
	GenerateTokenFunc func(ctx context.Context, payload map[string]any) (string, error)
	ValidateTokenFunc func(ctx context.Context, tokenString string) (*Identity, error)

	Token           string    // Default token to return
	TokenError      error     // Default error for token generation
	ValidationError error     // Default error for token validation
	Identity        *Identity // Default identity to return

	// ValidateCalls counts ValidateToken invocations.
	ValidateCalls int
}

// NewMockJWTService creates a mock whose tokens validate to an identity for email.
func NewMockJWTService(email string) *MockJWTService {
	now := time.Now()
	payload := map[string]any{"user": map[string]any{"email": email}}
	return &MockJWTService{
		Token: "mock-jwt-token",
		Identity: &Identity{
			Payload:   payload,
			Email:     email,
			ID:        "mock-token-id",
			IssuedAt:  now,
			ExpiresAt: now.Add(time.Hour),
		},
	}
}

// GenerateToken implements the JWTService.GenerateToken method.
func (m *MockJWTService) GenerateToken(ctx context.Context, payload map[string]any) (string, error) {
	if m.GenerateTokenFunc != nil {
		return m.GenerateTokenFunc(ctx, payload)
	}
	return m.Token, m.TokenError
}

// ValidateToken implements the JWTService.ValidateToken method.
func (m *MockJWTService) ValidateToken(ctx context.Context, tokenString string) (*Identity, error) {
	m.ValidateCalls++
	if m.ValidateTokenFunc != nil {
		return m.ValidateTokenFunc(ctx, tokenString)
	}
	if m.ValidationError != nil {
		return nil, m.ValidationError
	}
	return m.Identity, nil
}
