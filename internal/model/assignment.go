package model

import "time"

// Assignment is work set by a teacher for one subject. Submissions live in
// their own table with a uniqueness constraint per assignment+student.
type Assignment struct {
	ID           uint         `json:"id" gorm:"primaryKey"`
	Title        string       `json:"title" gorm:"size:255;not null"`
	Description  string       `json:"description" gorm:"size:2000"`
	SubjectID    uint         `json:"subjectId" gorm:"index;not null"`
	Subject      *Subject     `json:"subject,omitempty" gorm:"foreignKey:SubjectID"`
	TeacherID    uint         `json:"teacherId" gorm:"index;not null"`
	Teacher      *User        `json:"teacher,omitempty" gorm:"foreignKey:TeacherID"`
	DueDate      time.Time    `json:"dueDate" gorm:"not null"`
	MaxMarks     int          `json:"maxMarks" gorm:"not null"`
	Instructions string       `json:"instructions,omitempty" gorm:"size:2000"`
	IsActive     bool         `json:"isActive" gorm:"default:true"`
	Submissions  []Submission `json:"submissions,omitempty" gorm:"foreignKey:AssignmentID"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// Submission records one student's answer to an assignment, graded in place
// by the owning teacher.
type Submission struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	AssignmentID uint       `json:"assignmentId" gorm:"not null;uniqueIndex:idx_submission_once"`
	StudentID    uint       `json:"studentId" gorm:"not null;uniqueIndex:idx_submission_once"`
	Student      *User      `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	Content      string     `json:"content" gorm:"size:5000"`
	SubmittedAt  time.Time  `json:"submittedAt"`
	IsLate       bool       `json:"isLate" gorm:"default:false"`
	GradeMarks   *int       `json:"gradeMarks,omitempty"`
	GradeComment string     `json:"gradeComment,omitempty" gorm:"size:1000"`
	GradedAt     *time.Time `json:"gradedAt,omitempty"`
	GradedByID   *uint      `json:"gradedById,omitempty"`
}

// Graded reports whether the submission has been marked.
func (s *Submission) Graded() bool {
	return s.GradeMarks != nil
}
