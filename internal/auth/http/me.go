package http

import (
	"net/http"

	"github.com/soomhq/soom-auth/internal/auth/service"
	"github.com/soomhq/soom-auth/pkg/httpx"
)

// MeHandler serves GET /auth/me for authenticated requests.
type MeHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Current user
//	@Description	Returns the profile bound to the presented access token.
//	@Tags			Auth
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	httpx.Envelope{data=domain.PublicUser}
//	@Failure		400	{object}	httpx.Envelope
//	@Failure		401	{object}	httpx.Envelope
//	@Router			/auth/me [get].
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IdentityFrom(r.Context())
	if !ok {
		// RequireAuth guards this route; reaching here without an
		// identity is a wiring bug.
		httpx.WriteFailure(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.AuthService.CurrentUser(r.Context(), id.Email)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, MsgOK, user)
}
