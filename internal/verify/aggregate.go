// Package verify implements the payment verification workflow used by the
// admin tooling: it reshapes the flat rows of GET /payments into the
// student -> course -> installment tree the screens display, tracks which
// course and installment are selected per student, plans batch
// verifications, and executes verify/reject commands against the API.
package verify

import (
	"sort"

	"github.com/edusys/school-payments/internal/models"
)

// CourseGroup is one course of a student with its ordered installments.
type CourseGroup struct {
	CourseID     int64
	CourseName   string
	CourseCode   string
	Installments []models.Installment
}

// StudentAggregate groups all courses of one student, keyed by cedula.
type StudentAggregate struct {
	StudentID   string
	StudentName string
	Courses     []CourseGroup
}

// Aggregate reshapes flat payment rows into one aggregate per student.
// Students keep the order of their first appearance in the input, and so do
// courses within a student; installments are sorted ascending by number.
// Rows are never dropped or deduplicated; the backend does not emit
// duplicates for a given filter.
func Aggregate(rows []models.PaymentRow) []StudentAggregate {
	var result []StudentAggregate
	studentIdx := make(map[string]int)
	courseIdx := make(map[string]map[int64]int)

	for _, row := range rows {
		si, ok := studentIdx[row.StudentID]
		if !ok {
			si = len(result)
			studentIdx[row.StudentID] = si
			courseIdx[row.StudentID] = make(map[int64]int)
			result = append(result, StudentAggregate{
				StudentID:   row.StudentID,
				StudentName: row.StudentName,
			})
		}

		ci, ok := courseIdx[row.StudentID][row.CourseID]
		if !ok {
			ci = len(result[si].Courses)
			courseIdx[row.StudentID][row.CourseID] = ci
			result[si].Courses = append(result[si].Courses, CourseGroup{
				CourseID:   row.CourseID,
				CourseName: row.CourseName,
				CourseCode: row.CourseCode,
			})
		}

		course := &result[si].Courses[ci]
		course.Installments = append(course.Installments, row.Installment)
	}

	for si := range result {
		for ci := range result[si].Courses {
			insts := result[si].Courses[ci].Installments
			sort.SliceStable(insts, func(a, b int) bool {
				return insts[a].Number < insts[b].Number
			})
		}
	}
	return result
}

// findCourse locates a course within a student aggregate; nil when either
// the student or the course is absent.
func findCourse(aggs []StudentAggregate, studentID string, courseID int64) *CourseGroup {
	for si := range aggs {
		if aggs[si].StudentID != studentID {
			continue
		}
		for ci := range aggs[si].Courses {
			if aggs[si].Courses[ci].CourseID == courseID {
				return &aggs[si].Courses[ci]
			}
		}
	}
	return nil
}
