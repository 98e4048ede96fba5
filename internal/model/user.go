package model

import "time"

const DefaultProfileImage = "/assets/images/default-avatar.png"

// User represents any account in the system: students, teachers and admins
// share one table and are distinguished by Role. Role-specific columns are
// nullable and only populated for the matching role. Users are soft-deleted
// via IsActive, never removed.
type User struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Name         string `json:"name" gorm:"size:255;not null"`
	Email        string `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         Role   `json:"role" gorm:"size:20;not null"`
	ProfileImage string `json:"profileImage" gorm:"size:255"`

	// Student specific fields
	RollNumber string `json:"rollNumber,omitempty" gorm:"size:50"`
	Branch     string `json:"branch,omitempty" gorm:"size:100"`
	Year       int    `json:"year,omitempty"`
	ClassID    *uint  `json:"classId,omitempty" gorm:"index"`
	Class      *Class `json:"class,omitempty" gorm:"foreignKey:ClassID"`

	// Teacher specific fields
	Department string    `json:"department,omitempty" gorm:"size:100"`
	Subjects   []Subject `json:"subjects,omitempty" gorm:"foreignKey:TeacherID"`

	// Common fields
	Phone    string `json:"phone,omitempty" gorm:"size:30"`
	Address  string `json:"address,omitempty" gorm:"size:255"`
	IsActive bool   `json:"isActive" gorm:"default:true"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
