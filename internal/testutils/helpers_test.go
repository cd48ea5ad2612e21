package testutils

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/servicehub-api/internal/api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialCookie(t *testing.T) {
	t.Parallel()

	svc := NewTestJWTService(t)
	c := CredentialCookie(t, svc, "a@x.com")
	assert.Equal(t, TestCookieName, c.Name)

	identity, err := svc.ValidateToken(context.Background(), c.Value)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", identity.Email)
	assert.Equal(t, UserPayload("a@x.com"), identity.Payload)
}

func TestAssertErrorResponse(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(shared.WithTraceID(req.Context(), "trace-1"))
	rr := httptest.NewRecorder()
	shared.RespondWithError(rr, req, http.StatusForbidden, "forbidden access")

	AssertErrorResponse(t, rr.Result(), http.StatusForbidden, "forbidden")
}

func TestTestSlogHandler(t *testing.T) {
	t.Parallel()

	h := NewTestSlogHandler()
	log := h.Logger().With("component", "test")
	log.Info("hello", "n", 1)
	log.Debug("hello", "n", 2)

	entries := h.FindEntries("hello")
	require.Len(t, entries, 2)
	assert.Equal(t, "test", entries[0]["component"])
	assert.Equal(t, "DEBUG", entries[1]["level"])

	h.Clear()
	assert.Empty(t, h.Entries())
}
