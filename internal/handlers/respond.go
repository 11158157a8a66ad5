package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"curaise/internal/models"
)

// envelope is the wire shape shared with the frontend: {data, message} on
// success, {message} on failure.
type envelope struct {
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message"`
}

// respondJSON writes a success envelope
func respondJSON(w http.ResponseWriter, status int, data interface{}, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Data: data, Message: message}); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// respondError writes a failure envelope
func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Message: message}); err != nil {
		log.Printf("Failed to encode error response: %v", err)
	}
}

// respondServiceError maps service errors onto HTTP statuses, always carrying
// the error's message in the envelope
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrUserNotFound),
		errors.Is(err, models.ErrOrganizationNotFound),
		errors.Is(err, models.ErrFundraiserNotFound),
		errors.Is(err, models.ErrItemNotFound),
		errors.Is(err, models.ErrOrderNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrUnauthorized):
		respondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, models.ErrDuplicateEntry):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, models.ErrBuyingWindowClosed),
		errors.Is(err, models.ErrInvalidInput),
		strings.Contains(err.Error(), "validation failed"):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("Internal error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeJSON decodes a request body into dst
func decodeJSON(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}
