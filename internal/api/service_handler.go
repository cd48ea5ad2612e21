package api

import (
	"net/http"

	"github.com/phrazzld/servicehub-api/internal/api/shared"
	"github.com/phrazzld/servicehub-api/internal/store"
)

// ServiceHandler handles service listing requests.
type ServiceHandler struct {
	services store.ServiceStore
}

// NewServiceHandler creates a new ServiceHandler.
func NewServiceHandler(services store.ServiceStore) *ServiceHandler {
	return &ServiceHandler{services: services}
}

// Add handles POST /addService.
func (h *ServiceHandler) Add(w http.ResponseWriter, r *http.Request) error {
	doc, err := shared.DecodeDocument(w, r)
	if err != nil {
		return err
	}

	res, err := h.services.Create(r.Context(), doc)
	if err != nil {
		return err
	}
	shared.RespondWithJSON(w, r, http.StatusOK, res)
	return nil
}

// Delete handles DELETE /deleteService/{id}. A missing service is reported
// as a zero deletedCount, not an error.
func (h *ServiceHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	id, err := pathParam(r, paramID)
	if err != nil {
		return err
	}

	res, err := h.services.Delete(r.Context(), id)
	if err != nil {
		return err
	}
	shared.RespondWithJSON(w, r, http.StatusOK, res)
	return nil
}

// Update handles PUT /updateService/{id}, merging the body into the stored
// document.
func (h *ServiceHandler) Update(w http.ResponseWriter, r *http.Request) error {
	id, err := pathParam(r, paramID)
	if err != nil {
		return err
	}
	fields, err := shared.DecodeDocument(w, r)
	if err != nil {
		return err
	}

	res, err := h.services.Update(r.Context(), id, fields)
	if err != nil {
		return err
	}
	shared.RespondWithJSON(w, r, http.StatusOK, res)
	return nil
}

// List handles GET /services?limit=N.
func (h *ServiceHandler) List(w http.ResponseWriter, r *http.Request) error {
	limit := parseLimit(r.URL.Query().Get("limit"))

	docs, err := h.services.List(r.Context(), limit)
	if err != nil {
		return err
	}
	shared.RespondWithJSON(w, r, http.StatusOK, docs)
	return nil
}

// Get handles GET /service/{id}. A missing service is rendered as null.
func (h *ServiceHandler) Get(w http.ResponseWriter, r *http.Request) error {
	id, err := pathParam(r, paramID)
	if err != nil {
		return err
	}

	doc, err := h.services.GetByID(r.Context(), id)
	if store.IsNotFoundError(err) {
		shared.RespondWithJSON(w, r, http.StatusOK, nil)
		return nil
	}
	if err != nil {
		return err
	}
	shared.RespondWithJSON(w, r, http.StatusOK, doc)
	return nil
}

// ListByCreator handles GET /services/{email}.
func (h *ServiceHandler) ListByCreator(w http.ResponseWriter, r *http.Request) error {
	email, err := pathParam(r, paramEmail)
	if err != nil {
		return err
	}

	docs, err := h.services.ListByCreator(r.Context(), email)
	if err != nil {
		return err
	}
	shared.RespondWithJSON(w, r, http.StatusOK, docs)
	return nil
}
