package verify

import (
	"fmt"

	"github.com/edusys/school-payments/internal/models"
)

// Candidates returns the installments of the given student/course eligible
// for batch verification starting from fromInstallmentID: those with a
// sequence number at or after the starting one whose status is paid, in
// ascending number order. Installments already verified, back at pending,
// overdue, or before the starting point are excluded — they are either
// resolved or not the verifier's to touch in this batch.
func Candidates(aggs []StudentAggregate, studentID string, courseID int64, fromInstallmentID int64) []models.Installment {
	course := findCourse(aggs, studentID, courseID)
	if course == nil {
		return nil
	}

	fromNumber := -1
	for _, inst := range course.Installments {
		if inst.ID == fromInstallmentID {
			fromNumber = inst.Number
			break
		}
	}
	if fromNumber < 0 {
		return nil
	}

	var candidates []models.Installment
	for _, inst := range course.Installments {
		if inst.Number >= fromNumber && inst.Status == models.StatusPaid {
			candidates = append(candidates, inst)
		}
	}
	return candidates
}

// BatchPlan is the transient state of the verification dialog: the candidate
// set plus which of them the verifier has opted in. It lives only while the
// dialog is open and is discarded on cancel or commit.
type BatchPlan struct {
	candidates []models.Installment
	chosen     map[int64]bool
}

// PlanSummary is what the dialog shows for the current chosen set.
type PlanSummary struct {
	TotalAmount float64
	Count       int
}

// NewBatchPlan starts a plan over the candidate set with only the starting
// installment chosen; batch members must be explicitly opted in.
func NewBatchPlan(candidates []models.Installment, fromInstallmentID int64) (*BatchPlan, error) {
	p := &BatchPlan{
		candidates: candidates,
		chosen:     map[int64]bool{},
	}
	if !p.isCandidate(fromInstallmentID) {
		return nil, fmt.Errorf("installment %d is not awaiting verification", fromInstallmentID)
	}
	p.chosen[fromInstallmentID] = true
	return p, nil
}

// Toggle flips membership of one candidate in the chosen set. Ids outside
// the candidate set are ignored, so the plan can never include one.
func (p *BatchPlan) Toggle(installmentID int64) {
	if !p.isCandidate(installmentID) {
		return
	}
	if p.chosen[installmentID] {
		delete(p.chosen, installmentID)
	} else {
		p.chosen[installmentID] = true
	}
}

// ChosenIDs returns the chosen installment ids in candidate (number) order.
func (p *BatchPlan) ChosenIDs() []int64 {
	var ids []int64
	for _, inst := range p.candidates {
		if p.chosen[inst.ID] {
			ids = append(ids, inst.ID)
		}
	}
	return ids
}

// Summary recomputes the total amount and count over the chosen set.
func (p *BatchPlan) Summary() PlanSummary {
	var s PlanSummary
	for _, inst := range p.candidates {
		if p.chosen[inst.ID] {
			s.TotalAmount += inst.Amount
			s.Count++
		}
	}
	return s
}

func (p *BatchPlan) isCandidate(installmentID int64) bool {
	for _, inst := range p.candidates {
		if inst.ID == installmentID {
			return true
		}
	}
	return false
}
