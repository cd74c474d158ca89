package httpx_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/soomhq/soom-auth/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func TestWriteSuccessEnvelope(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	httpx.WriteSuccess(rec, http.StatusOK, "Login berhasil", map[string]string{"accessToken": "abc"})

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	var env httpx.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.True(t, env.Success)
	require.Equal(t, "Login berhasil", env.Message)
	require.Equal(t, map[string]any{"accessToken": "abc"}, env.Data)
}

func TestWriteFailureEnvelopeHasNullData(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	httpx.WriteFailure(rec, http.StatusBadRequest, "Email atau password salah")

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	require.JSONEq(t, "false", string(raw["success"]))
	require.JSONEq(t, "null", string(raw["data"]))
}

func TestChainOrdersOutsideIn(t *testing.T) {
	t.Parallel()

	var order []string
	mw := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}), mw("outer"), mw("inner"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"outer", "inner", "handler"}, order)
}
