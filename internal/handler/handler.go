package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/edusys/school-payments/internal/repository"
	"github.com/edusys/school-payments/internal/service"
)

// Handler exposes the REST surface of the payments service
type Handler struct {
	svc      *service.Service
	log      *logrus.Logger
	validate *validator.Validate
}

// NewHandler initializes a new handler
func NewHandler(svc *service.Service, log *logrus.Logger) *Handler {
	return &Handler{
		svc:      svc,
		log:      log,
		validate: validator.New(),
	}
}

// respondJSON writes v as a JSON response
func (h *Handler) respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Errorf("Failed to encode response: %v", err)
	}
}

// respondError maps service errors to HTTP statuses. The message field is
// what the mobile clients show to the user.
func (h *Handler) respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, repository.ErrInvalidTransition):
		status = http.StatusConflict
	}
	h.respondJSON(w, status, map[string]string{"message": err.Error()})
}

// decodeJSON parses a request body into dst and runs struct validation.
func (h *Handler) decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed request body", service.ErrValidation)
	}
	if err := h.validate.Struct(dst); err != nil {
		return fmt.Errorf("%w: %v", service.ErrValidation, err)
	}
	return nil
}
