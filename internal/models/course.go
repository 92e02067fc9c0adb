package models

import "time"

// Course represents a course students enroll into
type Course struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Enrollment links a student to a course; installments hang off it.
type Enrollment struct {
	ID            int64     `json:"id"`
	StudentCedula string    `json:"studentCedula"`
	StudentName   string    `json:"studentName"`
	CourseID      int64     `json:"courseId"`
	CreatedAt     time.Time `json:"createdAt"`
}
