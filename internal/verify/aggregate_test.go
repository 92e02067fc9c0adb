package verify

import (
	"testing"
	"time"

	"github.com/edusys/school-payments/internal/models"
)

func row(studentID, studentName string, courseID int64, courseName string, instID int64, number int, status models.Status, amount float64) models.PaymentRow {
	return models.PaymentRow{
		StudentID:   studentID,
		StudentName: studentName,
		CourseID:    courseID,
		CourseName:  courseName,
		CourseCode:  courseName,
		Installment: models.Installment{
			ID:      instID,
			Number:  number,
			Amount:  amount,
			DueDate: time.Date(2026, 3, number, 0, 0, 0, 0, time.UTC),
			Status:  status,
		},
	}
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name         string
		rows         []models.PaymentRow
		wantStudents []string
		wantCourses  map[string][]int64
	}{
		{
			name: "single student single course",
			rows: []models.PaymentRow{
				row("0102030405", "Ana Mora", 10, "Math", 1, 1, models.StatusVerified, 50),
				row("0102030405", "Ana Mora", 10, "Math", 2, 2, models.StatusPaid, 50),
			},
			wantStudents: []string{"0102030405"},
			wantCourses:  map[string][]int64{"0102030405": {10}},
		},
		{
			name: "courses keep first-seen order",
			rows: []models.PaymentRow{
				row("0102030405", "Ana Mora", 10, "Math", 1, 1, models.StatusVerified, 50),
				row("0102030405", "Ana Mora", 20, "Biology", 3, 1, models.StatusPending, 30),
				row("0102030405", "Ana Mora", 10, "Math", 2, 2, models.StatusPaid, 50),
			},
			wantStudents: []string{"0102030405"},
			wantCourses:  map[string][]int64{"0102030405": {10, 20}},
		},
		{
			name: "students keep first-seen order",
			rows: []models.PaymentRow{
				row("0913572468", "Luis Paz", 10, "Math", 5, 1, models.StatusPending, 40),
				row("0102030405", "Ana Mora", 10, "Math", 1, 1, models.StatusPaid, 50),
				row("0913572468", "Luis Paz", 20, "Biology", 6, 1, models.StatusPaid, 30),
			},
			wantStudents: []string{"0913572468", "0102030405"},
			wantCourses:  map[string][]int64{"0913572468": {10, 20}, "0102030405": {10}},
		},
		{
			name:         "empty input",
			rows:         nil,
			wantStudents: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			aggs := Aggregate(tt.rows)
			if len(aggs) != len(tt.wantStudents) {
				t.Fatalf("Aggregate() students = %d, want %d", len(aggs), len(tt.wantStudents))
			}
			for i, want := range tt.wantStudents {
				if aggs[i].StudentID != want {
					t.Errorf("student[%d] = %s, want %s", i, aggs[i].StudentID, want)
				}
				var gotCourses []int64
				for _, c := range aggs[i].Courses {
					gotCourses = append(gotCourses, c.CourseID)
				}
				wantCourses := tt.wantCourses[want]
				if len(gotCourses) != len(wantCourses) {
					t.Fatalf("student %s courses = %v, want %v", want, gotCourses, wantCourses)
				}
				for j := range wantCourses {
					if gotCourses[j] != wantCourses[j] {
						t.Errorf("student %s courses = %v, want %v", want, gotCourses, wantCourses)
					}
				}
			}
		})
	}
}

// Every input row must land in exactly one installment slot, and every
// course's installment list must be sorted by number.
func TestAggregatePreservesRowsAndOrder(t *testing.T) {
	rows := []models.PaymentRow{
		row("0102030405", "Ana Mora", 10, "Math", 4, 4, models.StatusPending, 50),
		row("0102030405", "Ana Mora", 10, "Math", 1, 1, models.StatusVerified, 50),
		row("0913572468", "Luis Paz", 10, "Math", 7, 2, models.StatusPaid, 40),
		row("0102030405", "Ana Mora", 20, "Biology", 5, 1, models.StatusOverdue, 30),
		row("0102030405", "Ana Mora", 10, "Math", 2, 2, models.StatusPaid, 50),
		row("0913572468", "Luis Paz", 10, "Math", 6, 1, models.StatusVerified, 40),
		row("0102030405", "Ana Mora", 10, "Math", 3, 3, models.StatusPaid, 50),
	}

	aggs := Aggregate(rows)

	seen := map[int64]int{}
	total := 0
	for _, agg := range aggs {
		for _, course := range agg.Courses {
			for i := 1; i < len(course.Installments); i++ {
				if course.Installments[i-1].Number > course.Installments[i].Number {
					t.Errorf("course %d of %s not sorted by number: %d before %d",
						course.CourseID, agg.StudentID,
						course.Installments[i-1].Number, course.Installments[i].Number)
				}
			}
			for _, inst := range course.Installments {
				seen[inst.ID]++
				total++
			}
		}
	}

	if total != len(rows) {
		t.Errorf("aggregate holds %d installments, want %d", total, len(rows))
	}
	for _, r := range rows {
		if seen[r.Installment.ID] != 1 {
			t.Errorf("installment %d appears %d times, want 1", r.Installment.ID, seen[r.Installment.ID])
		}
	}
}

func TestAggregateScenarioA(t *testing.T) {
	rows := []models.PaymentRow{
		row("0102030405", "Ana Mora", 10, "Math", 1, 1, models.StatusVerified, 50),
		row("0102030405", "Ana Mora", 10, "Math", 2, 2, models.StatusPaid, 50),
	}

	aggs := Aggregate(rows)
	if len(aggs) != 1 || len(aggs[0].Courses) != 1 {
		t.Fatalf("want one student with one course, got %+v", aggs)
	}
	insts := aggs[0].Courses[0].Installments
	if len(insts) != 2 || insts[0].Number != 1 || insts[1].Number != 2 {
		t.Fatalf("want installments [#1 #2], got %+v", insts)
	}

	sel := InitialSelection(aggs)["0102030405"]
	if sel.InstallmentID != 2 {
		t.Errorf("initial selection = installment %d, want 2 (the paid one)", sel.InstallmentID)
	}
}
