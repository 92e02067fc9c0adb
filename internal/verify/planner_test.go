package verify

import (
	"testing"

	"github.com/edusys/school-payments/internal/models"
)

func plannerAggregate() []StudentAggregate {
	return Aggregate([]models.PaymentRow{
		row("0102030405", "Ana Mora", 10, "Math", 1, 1, models.StatusVerified, 50),
		row("0102030405", "Ana Mora", 10, "Math", 2, 2, models.StatusPaid, 50),
		row("0102030405", "Ana Mora", 10, "Math", 3, 3, models.StatusPaid, 50),
		row("0102030405", "Ana Mora", 10, "Math", 4, 4, models.StatusVerified, 50),
		row("0102030405", "Ana Mora", 10, "Math", 5, 5, models.StatusPending, 50),
	})
}

func TestCandidates(t *testing.T) {
	aggs := plannerAggregate()

	tests := []struct {
		name    string
		student string
		course  int64
		from    int64
		wantIDs []int64
	}{
		{name: "from first paid", student: "0102030405", course: 10, from: 2, wantIDs: []int64{2, 3}},
		{name: "from later paid", student: "0102030405", course: 10, from: 3, wantIDs: []int64{3}},
		{name: "from verified includes later paid", student: "0102030405", course: 10, from: 1, wantIDs: []int64{2, 3}},
		{name: "unknown installment", student: "0102030405", course: 10, from: 99, wantIDs: nil},
		{name: "unknown course", student: "0102030405", course: 30, from: 2, wantIDs: nil},
		{name: "unknown student", student: "0999999999", course: 10, from: 2, wantIDs: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Candidates(aggs, tt.student, tt.course, tt.from)
			var gotIDs []int64
			for _, inst := range got {
				gotIDs = append(gotIDs, inst.ID)
			}
			if len(gotIDs) != len(tt.wantIDs) {
				t.Fatalf("Candidates() = %v, want %v", gotIDs, tt.wantIDs)
			}
			for i := range tt.wantIDs {
				if gotIDs[i] != tt.wantIDs[i] {
					t.Errorf("Candidates() = %v, want %v", gotIDs, tt.wantIDs)
				}
			}
		})
	}
}

// Candidates never include an installment before the starting number or one
// that is not awaiting verification.
func TestCandidatesExcludeResolved(t *testing.T) {
	aggs := plannerAggregate()
	got := Candidates(aggs, "0102030405", 10, 2)
	for _, inst := range got {
		if inst.Number < 2 {
			t.Errorf("candidate #%d is before the starting installment", inst.Number)
		}
		if inst.Status != models.StatusPaid {
			t.Errorf("candidate #%d has status %s, want paid", inst.Number, inst.Status)
		}
	}
}

func TestBatchPlan(t *testing.T) {
	aggs := plannerAggregate()
	candidates := Candidates(aggs, "0102030405", 10, 2)

	plan, err := NewBatchPlan(candidates, 2)
	if err != nil {
		t.Fatalf("NewBatchPlan() error = %v", err)
	}

	// Default: only the starting installment is chosen
	if s := plan.Summary(); s.Count != 1 || s.TotalAmount != 50 {
		t.Errorf("default plan = %+v, want count 1 total 50.00", s)
	}

	// Opting in the second candidate: total 100.00, count 2
	plan.Toggle(3)
	if s := plan.Summary(); s.Count != 2 || s.TotalAmount != 100 {
		t.Errorf("plan after opt-in = %+v, want count 2 total 100.00", s)
	}

	// Toggling again removes it; the summary must not go stale
	plan.Toggle(3)
	if s := plan.Summary(); s.Count != 1 || s.TotalAmount != 50 {
		t.Errorf("plan after opt-out = %+v, want count 1 total 50.00", s)
	}

	// Non-candidates can never enter the chosen set
	plan.Toggle(5)
	plan.Toggle(99)
	ids := plan.ChosenIDs()
	if len(ids) != 1 || ids[0] != 2 {
		t.Errorf("ChosenIDs() = %v, want [2]", ids)
	}
}

func TestNewBatchPlanRequiresCandidateStart(t *testing.T) {
	aggs := plannerAggregate()
	candidates := Candidates(aggs, "0102030405", 10, 2)

	if _, err := NewBatchPlan(candidates, 5); err == nil {
		t.Error("NewBatchPlan() accepted a non-candidate starting installment")
	}
}

// A single paid installment with nothing after it is still verifiable alone.
func TestSingleInstallmentPlan(t *testing.T) {
	aggs := Aggregate([]models.PaymentRow{
		row("0102030405", "Ana Mora", 10, "Math", 1, 1, models.StatusVerified, 50),
		row("0102030405", "Ana Mora", 10, "Math", 2, 2, models.StatusPaid, 50),
	})
	candidates := Candidates(aggs, "0102030405", 10, 2)
	plan, err := NewBatchPlan(candidates, 2)
	if err != nil {
		t.Fatalf("NewBatchPlan() error = %v", err)
	}
	if s := plan.Summary(); s.Count != 1 {
		t.Errorf("plan = %+v, want the single starting installment", s)
	}
}
