package verify

import "github.com/edusys/school-payments/internal/models"

// Selection is the course and installment currently shown for one student.
type Selection struct {
	CourseID      int64
	InstallmentID int64
}

// InitialSelection derives the default selection for every student in the
// aggregate: the first course, and within it the first installment awaiting
// verification (status paid), else the course's first installment. The
// aggregate itself is never mutated.
func InitialSelection(aggs []StudentAggregate) map[string]Selection {
	selections := make(map[string]Selection, len(aggs))
	for _, agg := range aggs {
		if len(agg.Courses) == 0 {
			continue
		}
		course := agg.Courses[0]
		selections[agg.StudentID] = Selection{
			CourseID:      course.CourseID,
			InstallmentID: defaultInstallment(course),
		}
	}
	return selections
}

// SelectCourse switches a student's selection to another course, re-deriving
// the installment with the same first-paid-else-first rule so a selection
// from the previous course is never carried over. Unknown student/course
// combinations leave the map untouched.
func SelectCourse(selections map[string]Selection, aggs []StudentAggregate, studentID string, courseID int64) {
	course := findCourse(aggs, studentID, courseID)
	if course == nil {
		return
	}
	selections[studentID] = Selection{
		CourseID:      courseID,
		InstallmentID: defaultInstallment(*course),
	}
}

// SelectInstallment points a student's selection at a specific installment
// of the currently selected course.
func SelectInstallment(selections map[string]Selection, aggs []StudentAggregate, studentID string, installmentID int64) {
	sel, ok := selections[studentID]
	if !ok {
		return
	}
	course := findCourse(aggs, studentID, sel.CourseID)
	if course == nil {
		return
	}
	for _, inst := range course.Installments {
		if inst.ID == installmentID {
			sel.InstallmentID = installmentID
			selections[studentID] = sel
			return
		}
	}
}

// defaultInstallment picks the first installment awaiting verification, else
// the first by number. Installments are already sorted by Aggregate.
func defaultInstallment(course CourseGroup) int64 {
	for _, inst := range course.Installments {
		if inst.Status == models.StatusPaid {
			return inst.ID
		}
	}
	if len(course.Installments) > 0 {
		return course.Installments[0].ID
	}
	return 0
}
