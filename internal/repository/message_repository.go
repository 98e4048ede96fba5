package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/HimanshuAlien/college-management-system/internal/model"
)

// MessageRepository defines persistence operations over direct messages.
type MessageRepository interface {
	Create(ctx context.Context, message *model.Message) error
	FindByID(ctx context.Context, id uint) (*model.Message, error)
	// ListByUser returns every message sent or received by userID, newest
	// first, with both participants resolved.
	ListByUser(ctx context.Context, userID uint) ([]model.Message, error)
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository builds a GORM-backed repository.
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func participantSelect(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "role", "profile_image")
}

func (r *messageRepository) Create(ctx context.Context, message *model.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *messageRepository) FindByID(ctx context.Context, id uint) (*model.Message, error) {
	var message model.Message
	err := r.db.WithContext(ctx).
		Preload("Sender", participantSelect).
		Preload("Receiver", participantSelect).
		First(&message, id).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *messageRepository) ListByUser(ctx context.Context, userID uint) ([]model.Message, error) {
	var messages []model.Message
	err := r.db.WithContext(ctx).
		Preload("Sender", participantSelect).
		Preload("Receiver", participantSelect).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}
