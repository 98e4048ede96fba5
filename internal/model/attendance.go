package model

import "time"

// AttendanceStatus is the per-lecture presence state.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
)

// Valid reports whether s is a known attendance status.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLate:
		return true
	}
	return false
}

// Attendance is one student's presence record for one subject on one day.
// A repeat mark on the same day overwrites the earlier one.
type Attendance struct {
	ID         uint             `json:"id" gorm:"primaryKey"`
	StudentID  uint             `json:"studentId" gorm:"not null;uniqueIndex:idx_attendance_day"`
	Student    *User            `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	SubjectID  uint             `json:"subjectId" gorm:"not null;uniqueIndex:idx_attendance_day"`
	Subject    *Subject         `json:"subject,omitempty" gorm:"foreignKey:SubjectID"`
	Date       time.Time        `json:"date" gorm:"not null;uniqueIndex:idx_attendance_day"` // truncated to midnight
	Status     AttendanceStatus `json:"status" gorm:"size:10;not null"`
	MarkedByID uint             `json:"markedById" gorm:"not null"`
	MarkedAt   time.Time        `json:"markedAt"`
	Remarks    string           `json:"remarks,omitempty" gorm:"size:500"`
	CreatedAt  time.Time        `json:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt"`
}
