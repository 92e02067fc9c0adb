package verify

import (
	"testing"

	"github.com/edusys/school-payments/internal/models"
)

func twoCourseAggregate() []StudentAggregate {
	return Aggregate([]models.PaymentRow{
		row("0102030405", "Ana Mora", 10, "Math", 1, 1, models.StatusVerified, 50),
		row("0102030405", "Ana Mora", 10, "Math", 2, 2, models.StatusPaid, 50),
		row("0102030405", "Ana Mora", 20, "Biology", 3, 1, models.StatusPending, 30),
	})
}

func TestInitialSelection(t *testing.T) {
	tests := []struct {
		name    string
		rows    []models.PaymentRow
		student string
		wantSel Selection
	}{
		{
			name: "first paid installment wins",
			rows: []models.PaymentRow{
				row("0102030405", "Ana Mora", 10, "Math", 1, 1, models.StatusVerified, 50),
				row("0102030405", "Ana Mora", 10, "Math", 2, 2, models.StatusPaid, 50),
				row("0102030405", "Ana Mora", 10, "Math", 3, 3, models.StatusPaid, 50),
			},
			student: "0102030405",
			wantSel: Selection{CourseID: 10, InstallmentID: 2},
		},
		{
			name: "no paid installment falls back to first",
			rows: []models.PaymentRow{
				row("0102030405", "Ana Mora", 10, "Math", 1, 1, models.StatusVerified, 50),
				row("0102030405", "Ana Mora", 10, "Math", 2, 2, models.StatusOverdue, 50),
			},
			student: "0102030405",
			wantSel: Selection{CourseID: 10, InstallmentID: 1},
		},
		{
			name: "first course is selected",
			rows: []models.PaymentRow{
				row("0102030405", "Ana Mora", 20, "Biology", 3, 1, models.StatusPaid, 30),
				row("0102030405", "Ana Mora", 10, "Math", 1, 1, models.StatusPaid, 50),
			},
			student: "0102030405",
			wantSel: Selection{CourseID: 20, InstallmentID: 3},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			aggs := Aggregate(tt.rows)
			got := InitialSelection(aggs)[tt.student]
			if got != tt.wantSel {
				t.Errorf("InitialSelection() = %+v, want %+v", got, tt.wantSel)
			}
		})
	}
}

// The selected installment must always exist within the selected course.
func TestInitialSelectionResolvesWithinCourse(t *testing.T) {
	aggs := twoCourseAggregate()
	for studentID, sel := range InitialSelection(aggs) {
		course := findCourse(aggs, studentID, sel.CourseID)
		if course == nil {
			t.Fatalf("selection points at missing course %d", sel.CourseID)
		}
		found := false
		for _, inst := range course.Installments {
			if inst.ID == sel.InstallmentID {
				found = true
			}
		}
		if !found {
			t.Errorf("selection of %s points at installment %d outside course %d", studentID, sel.InstallmentID, sel.CourseID)
		}
	}
}

// Scenario: switching to a course with no paid installment selects its
// first installment, never carrying over the previous course's selection.
func TestSelectCourse(t *testing.T) {
	aggs := twoCourseAggregate()
	selections := InitialSelection(aggs)

	if sel := selections["0102030405"]; sel.CourseID != 10 || sel.InstallmentID != 2 {
		t.Fatalf("initial selection = %+v, want course 10 installment 2", sel)
	}

	SelectCourse(selections, aggs, "0102030405", 20)
	if sel := selections["0102030405"]; sel.CourseID != 20 || sel.InstallmentID != 3 {
		t.Errorf("after SelectCourse = %+v, want course 20 installment 3", sel)
	}

	// Unknown course leaves the selection untouched
	SelectCourse(selections, aggs, "0102030405", 99)
	if sel := selections["0102030405"]; sel.CourseID != 20 {
		t.Errorf("selection changed for unknown course: %+v", sel)
	}
}

func TestSelectInstallment(t *testing.T) {
	aggs := twoCourseAggregate()
	selections := InitialSelection(aggs)

	SelectInstallment(selections, aggs, "0102030405", 1)
	if sel := selections["0102030405"]; sel.InstallmentID != 1 {
		t.Errorf("after SelectInstallment = %+v, want installment 1", sel)
	}

	// An installment from another course is not selectable
	SelectInstallment(selections, aggs, "0102030405", 3)
	if sel := selections["0102030405"]; sel.InstallmentID != 1 {
		t.Errorf("selection moved to another course's installment: %+v", sel)
	}
}
