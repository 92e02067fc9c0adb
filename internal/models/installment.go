package models

import "time"

// Status is the lifecycle state of an installment.
//
// pending -> paid -> verified is the happy path. A rejected payment goes
// paid -> pending with a stored reason; an unpaid installment past its due
// date goes pending -> overdue, and a late payment brings it back to paid.
// Nothing leaves verified.
type Status string

const (
	StatusPending  Status = "pending"
	StatusPaid     Status = "paid"
	StatusVerified Status = "verified"
	StatusOverdue  Status = "overdue"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusVerified, StatusOverdue:
		return true
	}
	return false
}

// PaymentMethod is how a student paid an installment.
type PaymentMethod string

const (
	MethodTransfer PaymentMethod = "transfer"
	MethodCash     PaymentMethod = "cash"
	MethodOther    PaymentMethod = "other"
)

// Installment is one scheduled payment obligation tied to a course enrollment.
type Installment struct {
	ID              int64         `json:"id"`
	EnrollmentID    int64         `json:"enrollmentId"`
	Number          int           `json:"number"`
	Amount          float64       `json:"amount"`
	DueDate         time.Time     `json:"dueDate"`
	PaidAt          *time.Time    `json:"paidAt,omitempty"`
	Method          PaymentMethod `json:"method,omitempty"`
	ProofRef        string        `json:"proofRef,omitempty"`
	Status          Status        `json:"status"`
	VerifiedBy      *int64        `json:"verifiedBy,omitempty"`
	VerifiedAt      *time.Time    `json:"verifiedAt,omitempty"`
	RejectionReason string        `json:"rejectionReason,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

// PaymentRow is the denormalized wire format of GET /payments: one row per
// installment, carrying the owning student and course alongside it.
type PaymentRow struct {
	StudentID   string `json:"studentId"` // national identifier (cedula)
	StudentName string `json:"studentName"`
	CourseID    int64  `json:"courseId"`
	CourseName  string `json:"courseName"`
	CourseCode  string `json:"courseCode"`
	Installment
}
