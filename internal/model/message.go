package model

import "time"

// Message is a direct message between two users of any role.
type Message struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	SenderID   uint       `json:"senderId" gorm:"index:idx_message_pair;not null"`
	Sender     *User      `json:"sender,omitempty" gorm:"foreignKey:SenderID"`
	ReceiverID uint       `json:"receiverId" gorm:"index:idx_message_pair;index:idx_message_unread;not null"`
	Receiver   *User      `json:"receiver,omitempty" gorm:"foreignKey:ReceiverID"`
	Content    string     `json:"content" gorm:"size:2000;not null"`
	IsRead     bool       `json:"isRead" gorm:"index:idx_message_unread;default:false"`
	ReadAt     *time.Time `json:"readAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}
