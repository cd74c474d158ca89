package http

import (
	"net/http"

	"github.com/soomhq/soom-auth/internal/auth/service"
	"github.com/soomhq/soom-auth/pkg/httpx"
)

// LogoutHandler serves POST /auth/logout. Logout is idempotent: a missing
// or already-revoked cookie still yields a success response, and the
// cookie is always cleared.
type LogoutHandler struct {
	AuthService *service.AuthService
	Cookies     CookieConfig
}

// ServeHTTP godoc
//
//	@Summary		Logout
//	@Description	Revokes the refresh token from the cookie and clears the cookie.
//	@Description	Safe to call repeatedly.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	httpx.Envelope
//	@Failure		500	{object}	httpx.Envelope
//	@Router			/auth/logout [post].
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := h.AuthService.Logout(r.Context(), refreshCookieValue(r)); err != nil {
		writeServiceError(w, r, err)
		return
	}

	clearRefreshCookie(w, h.Cookies)
	httpx.WriteSuccess(w, http.StatusOK, MsgLogoutOK, nil)
}
