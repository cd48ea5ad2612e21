package api

import (
	"net/http"

	"github.com/phrazzld/servicehub-api/internal/api/shared"
	"github.com/phrazzld/servicehub-api/internal/service"
)

// StatsHandler serves aggregate counts.
type StatsHandler struct {
	stats service.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(stats service.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// CountData handles GET /countData.
func (h *StatsHandler) CountData(w http.ResponseWriter, r *http.Request) error {
	counts, err := h.stats.CountData(r.Context())
	if err != nil {
		return err
	}
	shared.RespondWithJSON(w, r, http.StatusOK, counts)
	return nil
}
