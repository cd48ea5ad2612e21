package api

import (
	"net/http"

	"github.com/phrazzld/servicehub-api/internal/api/shared"
	"github.com/phrazzld/servicehub-api/internal/store"
)

// ReviewHandler handles review requests.
type ReviewHandler struct {
	reviews store.ReviewStore
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviews store.ReviewStore) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// Add handles POST /addReview.
func (h *ReviewHandler) Add(w http.ResponseWriter, r *http.Request) error {
	doc, err := shared.DecodeDocument(w, r)
	if err != nil {
		return err
	}

	res, err := h.reviews.Create(r.Context(), doc)
	if err != nil {
		return err
	}
	shared.RespondWithJSON(w, r, http.StatusOK, res)
	return nil
}

// ListByServiceID handles GET /reviews/{id}. The id is the business id
// carried in each review, not a store identifier.
func (h *ReviewHandler) ListByServiceID(w http.ResponseWriter, r *http.Request) error {
	id, err := pathParam(r, paramID)
	if err != nil {
		return err
	}

	docs, err := h.reviews.ListByServiceID(r.Context(), id)
	if err != nil {
		return err
	}
	shared.RespondWithJSON(w, r, http.StatusOK, docs)
	return nil
}

// ListAll handles GET /allReviews.
func (h *ReviewHandler) ListAll(w http.ResponseWriter, r *http.Request) error {
	docs, err := h.reviews.List(r.Context())
	if err != nil {
		return err
	}
	shared.RespondWithJSON(w, r, http.StatusOK, docs)
	return nil
}

// MyReviews handles GET /myReviews/{email}. Ownership is checked by
// middleware before this runs.
func (h *ReviewHandler) MyReviews(w http.ResponseWriter, r *http.Request) error {
	email, err := pathParam(r, paramEmail)
	if err != nil {
		return err
	}

	docs, err := h.reviews.ListByEmail(r.Context(), email)
	if err != nil {
		return err
	}
	shared.RespondWithJSON(w, r, http.StatusOK, docs)
	return nil
}

// Delete handles DELETE /deleteReview/{email}/{id}, removing one review
// matching both the owner and the business id.
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	email, err := pathParam(r, paramEmail)
	if err != nil {
		return err
	}
	id, err := pathParam(r, paramID)
	if err != nil {
		return err
	}

	res, err := h.reviews.DeleteOwned(r.Context(), email, id)
	if err != nil {
		return err
	}
	shared.RespondWithJSON(w, r, http.StatusOK, res)
	return nil
}

// Update handles PUT /updateReview/{id}, where id is the store identifier.
func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) error {
	id, err := pathParam(r, paramID)
	if err != nil {
		return err
	}
	fields, err := shared.DecodeDocument(w, r)
	if err != nil {
		return err
	}

	res, err := h.reviews.Update(r.Context(), id, fields)
	if err != nil {
		return err
	}
	shared.RespondWithJSON(w, r, http.StatusOK, res)
	return nil
}
