package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/MrSnakeDoc/cfxlookup/internal/domain"
	"github.com/MrSnakeDoc/cfxlookup/internal/httpserver/deps"
	"github.com/MrSnakeDoc/cfxlookup/internal/logger"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeRaw(w http.ResponseWriter, body json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// statusFor maps a classified failure to the relay's HTTP status.
func statusFor(err error) int {
	switch domain.FailureOf(err) {
	case domain.FailureInvalidIdentifier:
		return http.StatusBadRequest
	case domain.FailureNotFound:
		return http.StatusNotFound
	case domain.FailureMissingCredential:
		return http.StatusInternalServerError
	default:
		return http.StatusBadGateway
	}
}

// fail writes the error body for err. 4xx carry the classified message;
// 5xx carry a generic one and the cause goes to the log only.
func fail(w http.ResponseWriter, r *http.Request, d deps.Deps, route string, err error) {
	status := statusFor(err)
	msg := domain.PublicMessage(err)
	if status >= 500 {
		msg = domain.GenericFailureMessage
		d.Logger.Error("relay upstream failure",
			logger.String("route", route),
			logger.String("failure", domain.FailureOf(err).String()),
			logger.String("request_id", requestID(r)),
			logger.Error(err))
	}
	writeJSON(w, status, errorResponse{Error: msg})
}
