package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/edusys/school-payments/internal/models"
)

// ListPayments retrieves the flat payment rows, optionally narrowed to one
// status. An unknown status value is rejected before hitting the database.
func (s *Service) ListPayments(status string) ([]models.PaymentRow, error) {
	st := models.Status(status)
	if status != "" && !st.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	return s.repo.ListPaymentRows(st)
}

// VerifyPayment confirms a submitted payment proof, moving the installment
// from paid to verified. The transition, the audit entry and the student
// notice happen in that order; a failed notice is logged but does not undo
// the verification.
func (s *Service) VerifyPayment(installmentID, verifierID int64) (*models.Installment, error) {
	verifier, err := s.repo.FindUserByID(verifierID)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown verifier %d", ErrValidation, verifierID)
	}
	if !verifier.Role.CanVerify() {
		return nil, fmt.Errorf("%w: role %s may not verify payments", ErrValidation, verifier.Role)
	}

	inst, err := s.repo.VerifyInstallment(installmentID, verifierID)
	if err != nil {
		return nil, err
	}

	s.audit(verifierID, models.ActionVerifyPayment, "installment", installmentID, fmt.Sprintf("amount=%.2f", inst.Amount))
	s.log.Infof("Installment %d verified by user %d", installmentID, verifierID)
	s.notifyVerified(inst)
	return inst, nil
}

// RejectPayment refuses a submitted payment proof, returning the installment
// to pending with the given reason. An empty or whitespace reason is a
// validation error and touches nothing.
func (s *Service) RejectPayment(installmentID int64, reason string, verifierID int64) (*models.Installment, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", ErrValidation)
	}
	verifier, err := s.repo.FindUserByID(verifierID)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown verifier %d", ErrValidation, verifierID)
	}
	if !verifier.Role.CanVerify() {
		return nil, fmt.Errorf("%w: role %s may not reject payments", ErrValidation, verifier.Role)
	}

	inst, err := s.repo.RejectInstallment(installmentID, reason)
	if err != nil {
		return nil, err
	}

	s.audit(verifierID, models.ActionRejectPayment, "installment", installmentID, reason)
	s.log.Infof("Installment %d rejected by user %d: %s", installmentID, verifierID, reason)
	s.notifyRejected(inst, reason)
	return inst, nil
}

// PaymentProof resolves the stored proof-of-payment reference for an
// installment.
func (s *Service) PaymentProof(installmentID int64) (string, error) {
	inst, err := s.repo.FindInstallment(installmentID)
	if err != nil {
		return "", err
	}
	if inst.ProofRef == "" {
		return "", fmt.Errorf("installment has no payment proof")
	}
	return inst.ProofRef, nil
}

// MarkOverduePayments flips pending installments past their due date to
// overdue. Run from the scheduler; actor 0 marks system-initiated entries.
func (s *Service) MarkOverduePayments(now time.Time) (int, error) {
	ids, err := s.repo.MarkOverdue(now)
	if err != nil {
		return 0, err
	}
	for _, id := range ids {
		s.audit(0, models.ActionMarkOverdue, "installment", id, "")
	}
	if len(ids) > 0 {
		s.log.Infof("Marked %d installments overdue", len(ids))
	}
	return len(ids), nil
}

func (s *Service) notifyVerified(inst *models.Installment) {
	if !s.config.EmailEnabled || s.mailer == nil {
		return
	}
	to, name, course, err := s.repo.NotificationTarget(inst.ID)
	if err != nil || to == "" {
		return
	}
	if err := s.mailer.SendPaymentVerified(to, name, course, inst.Number, inst.Amount); err != nil {
		s.log.Warnf("Verification notice for installment %d not sent: %v", inst.ID, err)
	}
}

func (s *Service) notifyRejected(inst *models.Installment, reason string) {
	if !s.config.EmailEnabled || s.mailer == nil {
		return
	}
	to, name, course, err := s.repo.NotificationTarget(inst.ID)
	if err != nil || to == "" {
		return
	}
	if err := s.mailer.SendPaymentRejected(to, name, course, inst.Number, reason); err != nil {
		s.log.Warnf("Rejection notice for installment %d not sent: %v", inst.ID, err)
	}
}
