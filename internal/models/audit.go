package models

import "time"

// AuditEntry is one record of the append-only audit trail. Every payment
// mutation writes one, in the order the mutations were applied.
type AuditEntry struct {
	ID        int64     `json:"id"`
	ActorID   int64     `json:"actorId"`
	Action    string    `json:"action"`
	Entity    string    `json:"entity"`
	EntityID  int64     `json:"entityId"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Audit actions recorded by the payments service.
const (
	ActionVerifyPayment = "payment.verify"
	ActionRejectPayment = "payment.reject"
	ActionMarkOverdue   = "payment.overdue"
	ActionCreateUser    = "user.create"
	ActionToggleUser    = "user.active"
	ActionCreateCourse  = "course.create"
)
