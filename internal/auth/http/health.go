package http

import (
	"net/http"
	"time"

	"github.com/soomhq/soom-auth/internal/auth/store"
	"github.com/soomhq/soom-auth/pkg/httpx"
)

type healthData struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Version string `json:"version"`
}

// HealthHandler godoc
//
//	@Summary		Health check
//	@Description	Liveness endpoint reporting uptime, version, and database
//	@Description	connectivity.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	httpx.Envelope{data=healthData}
//	@Failure		503	{object}	httpx.Envelope{data=healthData}
//	@Router			/api/health [get].
func HealthHandler(startTime time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := healthData{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		}

		if err := st.Ping(r.Context()); err != nil {
			data.Status = "degraded"
			httpx.WriteJSON(w, http.StatusServiceUnavailable, httpx.Envelope{
				Success: false,
				Message: MsgInternalServerError,
				Data:    data,
			})
			return
		}

		httpx.WriteSuccess(w, http.StatusOK, MsgOK, data)
	}
}
