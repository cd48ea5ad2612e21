package auth

import (
	"context"
	"time"
)

// JWTService defines operations for issuing and verifying credentials.
type JWTService interface {
	// GenerateToken signs payload together with issued-at, expiry and token
	// id claims. Returns ErrInvalidPayload if payload sets any of those.
	GenerateToken(ctx context.Context, payload map[string]any) (string, error)

	// ValidateToken verifies the signature and expiry of tokenString and
	// returns the identity it carries. Returns ErrExpiredToken for an
	// expired credential and ErrInvalidToken for anything else that fails.
	ValidateToken(ctx context.Context, tokenString string) (*Identity, error)
}

// Identity is the decoded content of a valid credential.
type Identity struct {
	// Payload is exactly the payload the credential was issued for.
	Payload map[string]any

	// Email is Payload["user"]["email"], or empty if the payload has none.
	Email string

	ID        string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// EmailFromPayload extracts the nested user email from an identity payload
// of the form {"user": {"email": "..."}}.
func EmailFromPayload(payload map[string]any) string {
	user, ok := payload["user"].(map[string]any)
	if !ok {
		return ""
	}
	email, _ := user["email"].(string)
	return email
}
