package api

import (
	"net/http"
	"time"

	"github.com/phrazzld/servicehub-api/internal/api/shared"
	"github.com/phrazzld/servicehub-api/internal/config"
	"github.com/phrazzld/servicehub-api/internal/platform/logger"
	"github.com/phrazzld/servicehub-api/internal/service/auth"
)

// AuthHandler issues and clears the credential cookie.
type AuthHandler struct {
	jwtService auth.JWTService
	cfg        config.AuthConfig
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(jwtService auth.JWTService, cfg config.AuthConfig) *AuthHandler {
	return &AuthHandler{
		jwtService: jwtService,
		cfg:        cfg,
	}
}

// IssueToken handles POST /jwt. The request body is the identity payload to
// sign. The token is returned only as an HTTP-only cookie; the body is a bare
// acknowledgement.
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) error {
	payload, err := shared.DecodeDocument(w, r)
	if err != nil {
		return err
	}

	token, err := h.jwtService.GenerateToken(r.Context(), payload)
	if err != nil {
		return err
	}

	http.SetCookie(w, h.cookie(token, int(h.cfg.TokenLifetime().Seconds())))

	logger.FromContext(r.Context()).Debug("issued credential cookie",
		"expires_in", h.cfg.TokenLifetime().String())

	shared.RespondWithJSON(w, r, http.StatusOK, shared.SuccessResponse{Success: true})
	return nil
}

// Logout handles POST /logout by expiring the credential cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) error {
	c := h.cookie("", -1)
	c.Expires = time.Unix(0, 0)
	http.SetCookie(w, c)

	shared.RespondWithJSON(w, r, http.StatusOK, shared.SuccessResponse{Success: true})
	return nil
}

func (h *AuthHandler) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     h.cfg.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: sameSiteMode(h.cfg.CookieSameSite),
	}
}

func sameSiteMode(s string) http.SameSite {
	switch s {
	case "lax":
		return http.SameSiteLaxMode
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteDefaultMode
	}
}
