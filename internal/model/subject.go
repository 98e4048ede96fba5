package model

import "time"

// Subject is taught by exactly one teacher to exactly one class.
type Subject struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	Code        string    `json:"code" gorm:"uniqueIndex;size:30;not null"` // stored uppercase
	Credits     int       `json:"credits" gorm:"not null"`
	TeacherID   *uint     `json:"teacherId,omitempty" gorm:"index"`
	Teacher     *User     `json:"teacher,omitempty" gorm:"foreignKey:TeacherID"`
	ClassID     uint      `json:"classId" gorm:"index;not null"`
	Class       *Class    `json:"class,omitempty" gorm:"foreignKey:ClassID"`
	Description string    `json:"description,omitempty" gorm:"size:1000"`
	Syllabus    string    `json:"syllabus,omitempty" gorm:"size:2000"`
	IsActive    bool      `json:"isActive" gorm:"default:true"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
