package http

import (
	"net/http"

	"github.com/soomhq/soom-auth/internal/auth/domain"
	"github.com/soomhq/soom-auth/internal/auth/service"
	"github.com/soomhq/soom-auth/pkg/httpx"
)

// RefreshHandler serves POST /auth/refresh. The refresh token travels in
// the HttpOnly cookie, never in the request body.
type RefreshHandler struct {
	AuthService *service.AuthService
	Cookies     CookieConfig
}

type refreshResponse struct {
	AccessToken string            `json:"accessToken"`
	User        domain.PublicUser `json:"user"`
}

// ServeHTTP godoc
//
//	@Summary		Refresh session
//	@Description	Rotates the refresh token from the cookie and issues a new
//	@Description	access token. The consumed refresh token is invalidated.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	httpx.Envelope{data=refreshResponse}
//	@Failure		400	{object}	httpx.Envelope
//	@Failure		500	{object}	httpx.Envelope
//	@Header			200	{string}	Set-Cookie	"refreshToken (rotated)"
//	@Router			/auth/refresh [post].
func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	opaque := refreshCookieValue(r)
	if opaque == "" {
		httpx.WriteFailure(w, http.StatusBadRequest, MsgRefreshMissing)
		return
	}

	session, err := h.AuthService.Refresh(r.Context(), opaque)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	setRefreshCookie(w, h.Cookies, session.RefreshToken, session.RefreshTTL)
	httpx.WriteSuccess(w, http.StatusOK, MsgRefreshOK, refreshResponse{
		AccessToken: session.AccessToken,
		User:        session.User,
	})
}
