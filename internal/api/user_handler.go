package api

import (
	"net/http"

	"github.com/phrazzld/servicehub-api/internal/api/shared"
	"github.com/phrazzld/servicehub-api/internal/store"
)

// UserHandler handles user profile requests.
type UserHandler struct {
	users store.UserStore
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users store.UserStore) *UserHandler {
	return &UserHandler{users: users}
}

// Add handles POST /addUser. A duplicate email is rejected by the store and
// surfaces as a 400.
func (h *UserHandler) Add(w http.ResponseWriter, r *http.Request) error {
	doc, err := shared.DecodeDocument(w, r)
	if err != nil {
		return err
	}

	res, err := h.users.Create(r.Context(), doc)
	if err != nil {
		return err
	}
	shared.RespondWithJSON(w, r, http.StatusOK, res)
	return nil
}
