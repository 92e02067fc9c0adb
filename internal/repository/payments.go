package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/edusys/school-payments/internal/models"
)

// ErrInvalidTransition is returned when an installment is not in the state
// the requested transition starts from.
var ErrInvalidTransition = errors.New("installment is not awaiting verification")

// ListPaymentRows retrieves the flat denormalized payment rows the mobile
// clients aggregate: one row per installment with its student and course.
// A non-empty status narrows the result; ordering is stable (enrollment
// creation order, then installment number) so clients see a deterministic
// first-seen order.
func (r *Repository) ListPaymentRows(status models.Status) ([]models.PaymentRow, error) {
	query := `
		SELECT e.student_cedula, e.student_name, c.id, c.name, c.code,
		       i.id, i.enrollment_id, i.number, i.amount, i.due_date, i.paid_at,
		       COALESCE(i.method, ''), COALESCE(i.proof_ref, ''), i.status,
		       i.verified_by, i.verified_at, COALESCE(i.rejection_reason, ''),
		       i.created_at, i.updated_at
		FROM school.installments i
		JOIN school.enrollments e ON e.id = i.enrollment_id
		JOIN school.courses c ON c.id = e.course_id
		WHERE ($1 = '' OR i.status = $1)
		ORDER BY e.id, i.number`
	rows, err := r.db.Query(query, string(status))
	if err != nil {
		return nil, fmt.Errorf("failed to list payment rows: %w", err)
	}
	defer rows.Close()

	var result []models.PaymentRow
	for rows.Next() {
		var row models.PaymentRow
		if err := rows.Scan(
			&row.StudentID, &row.StudentName, &row.CourseID, &row.CourseName, &row.CourseCode,
			&row.Installment.ID, &row.EnrollmentID, &row.Number, &row.Amount, &row.DueDate, &row.PaidAt,
			&row.Method, &row.ProofRef, &row.Installment.Status,
			&row.VerifiedBy, &row.VerifiedAt, &row.RejectionReason,
			&row.Installment.CreatedAt, &row.Installment.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// FindInstallment retrieves one installment by id
func (r *Repository) FindInstallment(id int64) (*models.Installment, error) {
	inst := &models.Installment{}
	query := `
		SELECT id, enrollment_id, number, amount, due_date, paid_at,
		       COALESCE(method, ''), COALESCE(proof_ref, ''), status,
		       verified_by, verified_at, COALESCE(rejection_reason, ''),
		       created_at, updated_at
		FROM school.installments
		WHERE id = $1`
	err := r.db.QueryRow(query, id).Scan(
		&inst.ID, &inst.EnrollmentID, &inst.Number, &inst.Amount, &inst.DueDate, &inst.PaidAt,
		&inst.Method, &inst.ProofRef, &inst.Status,
		&inst.VerifiedBy, &inst.VerifiedAt, &inst.RejectionReason,
		&inst.CreatedAt, &inst.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("installment not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find installment: %w", err)
	}
	return inst, nil
}

// VerifyInstallment moves a paid installment to verified, recording who
// verified it and when. The status guard is part of the statement so a
// concurrent transition cannot slip through.
func (r *Repository) VerifyInstallment(id, verifierID int64) (*models.Installment, error) {
	query := `
		UPDATE school.installments
		SET status = $1, verified_by = $2, verified_at = CURRENT_TIMESTAMP,
		    rejection_reason = NULL, updated_at = CURRENT_TIMESTAMP
		WHERE id = $3 AND status = $4
		RETURNING id`
	var returned int64
	err := r.db.QueryRow(query, models.StatusVerified, verifierID, id, models.StatusPaid).Scan(&returned)
	if err == sql.ErrNoRows {
		return nil, ErrInvalidTransition
	}
	if err != nil {
		return nil, fmt.Errorf("failed to verify installment: %w", err)
	}
	return r.FindInstallment(id)
}

// RejectInstallment returns a paid installment to pending with a reason.
func (r *Repository) RejectInstallment(id int64, reason string) (*models.Installment, error) {
	query := `
		UPDATE school.installments
		SET status = $1, paid_at = NULL, proof_ref = NULL, rejection_reason = $2,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $3 AND status = $4
		RETURNING id`
	var returned int64
	err := r.db.QueryRow(query, models.StatusPending, reason, id, models.StatusPaid).Scan(&returned)
	if err == sql.ErrNoRows {
		return nil, ErrInvalidTransition
	}
	if err != nil {
		return nil, fmt.Errorf("failed to reject installment: %w", err)
	}
	return r.FindInstallment(id)
}

// MarkOverdue flips pending installments whose due date has passed to
// overdue and returns the ids it touched.
func (r *Repository) MarkOverdue(now time.Time) ([]int64, error) {
	query := `
		UPDATE school.installments
		SET status = $1, updated_at = CURRENT_TIMESTAMP
		WHERE status = $2 AND due_date < $3
		RETURNING id`
	rows, err := r.db.Query(query, models.StatusOverdue, models.StatusPending, now)
	if err != nil {
		return nil, fmt.Errorf("failed to mark overdue installments: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan installment id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// NotificationTarget resolves the contact email, student name and course
// name for the enrollment owning an installment; the email is empty when
// none is recorded.
func (r *Repository) NotificationTarget(installmentID int64) (email, studentName, courseName string, err error) {
	query := `
		SELECT COALESCE(e.contact_email, ''), e.student_name, c.name
		FROM school.enrollments e
		JOIN school.installments i ON i.enrollment_id = e.id
		JOIN school.courses c ON c.id = e.course_id
		WHERE i.id = $1`
	err = r.db.QueryRow(query, installmentID).Scan(&email, &studentName, &courseName)
	if err == sql.ErrNoRows {
		return "", "", "", fmt.Errorf("installment not found")
	}
	if err != nil {
		return "", "", "", fmt.Errorf("failed to resolve notification target: %w", err)
	}
	return email, studentName, courseName, nil
}
