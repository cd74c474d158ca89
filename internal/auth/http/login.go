package http

import (
	"encoding/json"
	"net/http"
	"net/mail"
	"strings"

	"github.com/soomhq/soom-auth/internal/auth/domain"
	"github.com/soomhq/soom-auth/internal/auth/service"
	"github.com/soomhq/soom-auth/pkg/httpx"
)

// LoginHandler serves POST /auth/login.
type LoginHandler struct {
	AuthService *service.AuthService
	Cookies     CookieConfig
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string            `json:"accessToken"`
	User        domain.PublicUser `json:"user"`
}

// ServeHTTP godoc
//
//	@Summary		Login
//	@Description	Verifies the email/password pair and opens a session. The access
//	@Description	token is returned in the body; the refresh token is set as an
//	@Description	HttpOnly cookie.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		loginRequest	true	"Credentials"
//	@Success		200		{object}	httpx.Envelope{data=loginResponse}
//	@Failure		400		{object}	httpx.Envelope
//	@Failure		500		{object}	httpx.Envelope
//	@Header			200		{string}	Set-Cookie	"refreshToken"
//	@Router			/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "body: tidak dapat dibaca")
		return
	}

	if msg, ok := validateLogin(req); !ok {
		httpx.WriteFailure(w, http.StatusBadRequest, msg)
		return
	}

	session, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	setRefreshCookie(w, h.Cookies, session.RefreshToken, session.RefreshTTL)
	httpx.WriteSuccess(w, http.StatusOK, MsgLoginOK, loginResponse{
		AccessToken: session.AccessToken,
		User:        session.User,
	})
}

// validateLogin reports the first failing field as "field: message".
func validateLogin(req loginRequest) (string, bool) {
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return "email: wajib diisi", false
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "email: format tidak valid", false
	}
	if req.Password == "" {
		return "password: wajib diisi", false
	}
	return "", true
}
