package model

import "time"

// Class groups students of one branch/year/section. TotalStudents is a
// denormalized counter maintained by the user service; it is not updated in
// the same transaction as the user row, so it can drift after a crash.
type Class struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Name           string    `json:"name" gorm:"size:255;not null"`
	Branch         string    `json:"branch" gorm:"size:100;not null;uniqueIndex:idx_class_identity"`
	Year           int       `json:"year" gorm:"not null;uniqueIndex:idx_class_identity"`
	Section        string    `json:"section" gorm:"size:10;default:'A';uniqueIndex:idx_class_identity"`
	ClassTeacherID *uint     `json:"classTeacherId,omitempty"`
	ClassTeacher   *User     `json:"classTeacher,omitempty" gorm:"foreignKey:ClassTeacherID"`
	Subjects       []Subject `json:"subjects,omitempty" gorm:"foreignKey:ClassID"`
	TotalStudents  int       `json:"totalStudents" gorm:"default:0"`
	IsActive       bool      `json:"isActive" gorm:"default:true"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
