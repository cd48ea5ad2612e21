package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/servicehub-api/internal/domain"
	"github.com/phrazzld/servicehub-api/internal/service/auth"
	"github.com/phrazzld/servicehub-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"missing token", auth.ErrMissingToken, http.StatusUnauthorized},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"invalid path parameter", fmt.Errorf("%w: email", domain.ErrInvalidParameter), http.StatusBadRequest},
		{"invalid id", store.ErrInvalidID, http.StatusBadRequest},
		{"email exists", store.ErrEmailExists, http.StatusBadRequest},
		{
			"wrapped email exists",
			store.NewStoreError("user", "insert", "duplicate email", store.ErrEmailExists),
			http.StatusBadRequest,
		},
		{"invalid document", fmt.Errorf("%w: not an object", domain.ErrInvalidDocument), http.StatusBadRequest},
		{"invalid payload", auth.ErrInvalidPayload, http.StatusBadRequest},
		{"store failure", errors.New("connection reset"), http.StatusInternalServerError},
		{"not found", store.ErrNotFound, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
	assert.Equal(t, "unauthorized access", GetSafeErrorMessage(auth.ErrExpiredToken))
	assert.Equal(t, "forbidden access", GetSafeErrorMessage(domain.ErrForbidden))
	assert.Equal(t, "User already exists", GetSafeErrorMessage(store.ErrEmailExists))
	assert.Equal(t, "Entity already exists", GetSafeErrorMessage(store.ErrDuplicate))
	assert.Equal(t, "Invalid identifier", GetSafeErrorMessage(store.ErrInvalidID))
	assert.Equal(t, "Invalid path parameter", GetSafeErrorMessage(domain.ErrInvalidParameter))

	internal := errors.New("server selection error: mongodb+srv://admin:pw@cluster0.example.net")
	msg := GetSafeErrorMessage(internal)
	assert.Equal(t, "An unexpected error occurred", msg)
	assert.NotContains(t, msg, "mongodb")
}

func TestHandle(t *testing.T) {
	t.Parallel()

	t.Run("error becomes response", func(t *testing.T) {
		t.Parallel()
		h := Handle(func(w http.ResponseWriter, r *http.Request) error {
			return fmt.Errorf("insert failed: %w", errors.New("socket closed"))
		})

		rr := httptest.NewRecorder()
		h(rr, httptest.NewRequest(http.MethodPost, "/addService", nil))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "An unexpected error occurred", body["message"])
		assert.NotContains(t, rr.Body.String(), "socket")
	})

	t.Run("success passes through", func(t *testing.T) {
		t.Parallel()
		h := Handle(func(w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusAccepted)
			return nil
		})

		rr := httptest.NewRecorder()
		h(rr, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusAccepted, rr.Code)
		assert.Empty(t, rr.Body.String())
	})
}
