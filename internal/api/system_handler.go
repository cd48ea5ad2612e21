package api

import (
	"context"
	"net/http"
	"time"

	"github.com/phrazzld/servicehub-api/internal/api/shared"
	"github.com/phrazzld/servicehub-api/internal/store"
)

const healthCheckTimeout = 2 * time.Second

// Greeting handles GET /.
func Greeting(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithText(w, r, http.StatusOK, "Hello World")
}

// Health returns a handler for GET /health that reports whether the store is
// reachable.
func Health(p store.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()

		if err := p.Ping(ctx); err != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusServiceUnavailable, "store unavailable", err)
			return
		}
		shared.RespondWithText(w, r, http.StatusOK, "OK")
	}
}
