package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/edusys/school-payments/internal/models"
	"github.com/edusys/school-payments/internal/service"
)

// ListPayments returns the flat payment rows, optionally filtered by status
func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.ListPayments(r.URL.Query().Get("status"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	if rows == nil {
		rows = []models.PaymentRow{}
	}
	h.respondJSON(w, http.StatusOK, rows)
}

type verifyRequest struct {
	VerifiedBy int64 `json:"verifiedBy" validate:"required"`
}

// VerifyPayment marks one installment verified
func (h *Handler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	var req verifyRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	inst, err := h.svc.VerifyPayment(id, req.VerifiedBy)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, inst)
}

type rejectRequest struct {
	Reason     string `json:"reason"`
	VerifiedBy int64  `json:"verifiedBy" validate:"required"`
}

// RejectPayment returns one installment to pending with a reason
func (h *Handler) RejectPayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	var req rejectRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	inst, err := h.svc.RejectPayment(id, req.Reason, req.VerifiedBy)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, inst)
}

// PaymentProof returns the proof-of-payment reference for one installment
func (h *Handler) PaymentProof(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	proofURL, err := h.svc.PaymentProof(id)
	if err != nil {
		h.respondJSON(w, http.StatusNotFound, map[string]string{"message": err.Error()})
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"proofUrl": proofURL})
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid id in path", service.ErrValidation)
	}
	return id, nil
}
