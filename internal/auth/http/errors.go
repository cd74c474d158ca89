package http

import (
	"errors"
	"net/http"

	"github.com/soomhq/soom-auth/internal/auth/service"
	"github.com/soomhq/soom-auth/pkg/httpx"
	"github.com/soomhq/soom-auth/pkg/slogx"
)

// Client-facing messages, kept byte-for-byte compatible with the existing
// backend so consumers matching on them keep working.
const (
	MsgOK                  = "OK"
	MsgLoginOK             = "Login berhasil"
	MsgRefreshOK           = "Token berhasil diperbarui"
	MsgLogoutOK            = "Logout berhasil"
	MsgInvalidCredentials  = "Email atau password salah"
	MsgAccountInactive     = "Akun tidak aktif"
	MsgRefreshMissing      = "Refresh token tidak ditemukan"
	MsgRefreshInvalid      = "Refresh token tidak valid"
	MsgRefreshExpired      = "Refresh token expired, silakan login ulang"
	MsgUserNotFound        = "User tidak ditemukan"
	MsgInternalServerError = "Terjadi kesalahan sistem"
)

// writeServiceError maps service sentinels to the enveloped 400 business
// responses. Anything unrecognized is logged and reported as the fixed
// 500 message so internals never leak to clients.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteFailure(w, http.StatusBadRequest, MsgInvalidCredentials)
	case errors.Is(err, service.ErrAccountInactive):
		httpx.WriteFailure(w, http.StatusBadRequest, MsgAccountInactive)
	case errors.Is(err, service.ErrMissingRefreshToken):
		httpx.WriteFailure(w, http.StatusBadRequest, MsgRefreshMissing)
	case errors.Is(err, service.ErrInvalidRefreshToken):
		httpx.WriteFailure(w, http.StatusBadRequest, MsgRefreshInvalid)
	case errors.Is(err, service.ErrRefreshTokenExpired):
		httpx.WriteFailure(w, http.StatusBadRequest, MsgRefreshExpired)
	case errors.Is(err, service.ErrUserNotFound):
		httpx.WriteFailure(w, http.StatusBadRequest, MsgUserNotFound)
	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		httpx.WriteFailure(w, http.StatusInternalServerError, MsgInternalServerError)
	}
}
