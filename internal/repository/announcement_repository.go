package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/HimanshuAlien/college-management-system/internal/model"
)

// AnnouncementRepository defines persistence operations over announcements.
type AnnouncementRepository interface {
	Create(ctx context.Context, announcement *model.Announcement) error
	Update(ctx context.Context, announcement *model.Announcement) error
	FindByID(ctx context.Context, id uint) (*model.Announcement, error)
	Delete(ctx context.Context, id uint) error
	ListAll(ctx context.Context) ([]model.Announcement, error)
	ListPublished(ctx context.Context, limit int) ([]model.Announcement, error)
}

type announcementRepository struct {
	db *gorm.DB
}

// NewAnnouncementRepository builds a GORM-backed repository.
func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &announcementRepository{db: db}
}

func authorSelect(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "role")
}

func (r *announcementRepository) Create(ctx context.Context, announcement *model.Announcement) error {
	return r.db.WithContext(ctx).Create(announcement).Error
}

func (r *announcementRepository) Update(ctx context.Context, announcement *model.Announcement) error {
	return r.db.WithContext(ctx).Save(announcement).Error
}

func (r *announcementRepository) FindByID(ctx context.Context, id uint) (*model.Announcement, error) {
	var announcement model.Announcement
	if err := r.db.WithContext(ctx).First(&announcement, id).Error; err != nil {
		return nil, err
	}
	return &announcement, nil
}

func (r *announcementRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Announcement{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *announcementRepository) ListAll(ctx context.Context) ([]model.Announcement, error) {
	var announcements []model.Announcement
	err := r.db.WithContext(ctx).
		Preload("Author", authorSelect).
		Order("created_at DESC").
		Find(&announcements).Error
	if err != nil {
		return nil, err
	}
	return announcements, nil
}

func (r *announcementRepository) ListPublished(ctx context.Context, limit int) ([]model.Announcement, error) {
	var announcements []model.Announcement
	err := r.db.WithContext(ctx).
		Preload("Author", authorSelect).
		Where("status = ?", model.AnnouncementPublished).
		Order("created_at DESC").
		Limit(limit).
		Find(&announcements).Error
	if err != nil {
		return nil, err
	}
	return announcements, nil
}
