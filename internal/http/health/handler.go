package health

import (
	"encoding/json"
	"net/http"
	"time"
)

// Response is the payload for the admin health endpoint.
type Response struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

// Handler returns a plain liveness handler for the admin listener. It reports
// the build version and the time elapsed since started.
func Handler(version string, started time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(Response{
			Status:  "healthy",
			Version: version,
			Uptime:  time.Since(started).Truncate(time.Second).String(),
		})
	}
}
