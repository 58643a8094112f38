package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"gp1-tickets/internal/models"
)

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps domain sentinel errors onto HTTP statuses. Unrecognized
// errors surface as a 500 with a generic message so internals never leak.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, models.ErrDuplicateEvent):
		status, message = http.StatusConflict, err.Error()
	case errors.Is(err, models.ErrNotFound):
		status, message = http.StatusNotFound, err.Error()
	case errors.Is(err, models.ErrValidationRejected):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, models.ErrConfirmationRequired):
		status, message = http.StatusConflict, err.Error()
	case errors.Is(err, models.ErrInvalidTransition):
		status, message = http.StatusConflict, err.Error()
	case errors.Is(err, models.ErrUnauthorized):
		status, message = http.StatusUnauthorized, err.Error()
	case errors.Is(err, models.ErrStorageUnavailable):
		status, message = http.StatusServiceUnavailable, err.Error()
	case errors.Is(err, models.ErrWriteFailed):
		status, message = http.StatusBadGateway, err.Error()
	}

	writeJSON(w, status, errorResponse{Error: message})
}

// decodeJSON decodes the request body into v, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	return nil
}
