package model

import "time"

// AnnouncementStatus controls visibility: only published announcements reach
// the public feed.
type AnnouncementStatus string

const (
	AnnouncementDraft       AnnouncementStatus = "draft"
	AnnouncementPublished   AnnouncementStatus = "published"
	AnnouncementDeactivated AnnouncementStatus = "deactivated"
)

// Valid reports whether s is a known announcement status.
func (s AnnouncementStatus) Valid() bool {
	switch s {
	case AnnouncementDraft, AnnouncementPublished, AnnouncementDeactivated:
		return true
	}
	return false
}

// Announcement is an admin-authored notice shown on the public feed once
// published.
type Announcement struct {
	ID             uint               `json:"id" gorm:"primaryKey"`
	Title          string             `json:"title" gorm:"size:255;not null"`
	Content        string             `json:"content" gorm:"size:5000;not null"`
	AuthorID       uint               `json:"authorId" gorm:"not null"`
	Author         *User              `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Status         AnnouncementStatus `json:"status" gorm:"size:20;default:'draft'"`
	Priority       string             `json:"priority" gorm:"size:20;default:'normal'"` // low|normal|high|urgent
	TargetAudience string             `json:"targetAudience" gorm:"size:50;default:'all'"`
	CreatedAt      time.Time          `json:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt"`
}
