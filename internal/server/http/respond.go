package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/smartdrive/internal/common"
)

type messageResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}

// errorStatusCode maps service errors onto HTTP status codes.
func errorStatusCode(err error) int {
	switch {
	case errors.Is(err, common.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, common.ErrInvalidCredentials),
		errors.Is(err, common.ErrUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err. Storage failures are reported under failMsg with
// the provider error attached; other internal errors are not exposed.
func respondError(w http.ResponseWriter, err error, failMsg string) {
	code := errorStatusCode(err)
	switch {
	case errors.Is(err, common.ErrStorageFailure):
		writeJSON(w, code, messageResponse{Message: failMsg, Error: err.Error()})
	case code == http.StatusInternalServerError:
		writeMessage(w, code, common.ErrorInternal.Error())
	default:
		writeMessage(w, code, err.Error())
	}
}
