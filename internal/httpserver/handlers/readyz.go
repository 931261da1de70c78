package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/cfxlookup/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready bool `json:"ready"`
}

// Readyz reports ready once every relay upstream is wired. A missing
// platform key does not make the relay unready; /infra reports it.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ready := d.Chat != nil && d.Platform != nil && d.Avatars != nil
		status := http.StatusOK
		if !ready {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, readyzResponse{Ready: ready})
	}
}
