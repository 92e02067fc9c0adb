package handler

import (
	"net/http"

	"github.com/edusys/school-payments/internal/middleware"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login handles staff authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	token, err := h.svc.Login(req.Email, req.Password)
	if err != nil {
		h.respondJSON(w, http.StatusUnauthorized, map[string]string{"message": err.Error()})
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"token": token})
}

// Me returns the acting user resolved from the bearer token
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.respondJSON(w, http.StatusUnauthorized, map[string]string{"message": "not authenticated"})
		return
	}
	user, err := h.svc.Me(userID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, user)
}
