package model

import "time"

// Grade is a student-recorded subject result used by the CGPA calculator.
// One row per student+subject; re-recording a subject updates the row.
type Grade struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	StudentID   uint      `json:"studentId" gorm:"not null;uniqueIndex:idx_grade_subject"`
	Subject     string    `json:"subject" gorm:"size:255;not null;uniqueIndex:idx_grade_subject"`
	SubjectCode string    `json:"subjectCode" gorm:"size:30;not null"`
	Credits     int       `json:"credits" gorm:"not null"`
	Percentage  float64   `json:"percentage" gorm:"not null"`
	GradePoint  int       `json:"gradePoint" gorm:"not null"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
