package service

import (
	"context"
	"fmt"
	"time"

	"github.com/HimanshuAlien/college-management-system/internal/cache"
	apperrors "github.com/HimanshuAlien/college-management-system/internal/errors"
	"github.com/HimanshuAlien/college-management-system/internal/model"
	"github.com/HimanshuAlien/college-management-system/internal/repository"
)

const (
	publishedFeedKey   = "announcements:published"
	publishedFeedTTL   = time.Minute
	publishedFeedLimit = 10
)

// CreateAnnouncementInput carries an admin announcement payload.
type CreateAnnouncementInput struct {
	Title          string
	Content        string
	Status         model.AnnouncementStatus
	Priority       string
	TargetAudience string
}

// AnnouncementService exposes admin announcement management plus the public
// published feed.
type AnnouncementService interface {
	Create(ctx context.Context, authorID uint, in CreateAnnouncementInput) (*model.Announcement, error)
	ListAll(ctx context.Context) ([]model.Announcement, error)
	UpdateStatus(ctx context.Context, id uint, status model.AnnouncementStatus) (*model.Announcement, error)
	Delete(ctx context.Context, id uint) error
	// Published returns the public feed; served from cache when warm.
	Published(ctx context.Context) ([]model.Announcement, error)
}

type announcementService struct {
	announcements repository.AnnouncementRepository
	cache         *cache.Client
}

// NewAnnouncementService builds an AnnouncementService.
func NewAnnouncementService(announcements repository.AnnouncementRepository, cacheClient *cache.Client) AnnouncementService {
	return &announcementService{announcements: announcements, cache: cacheClient}
}

func (s *announcementService) Create(ctx context.Context, authorID uint, in CreateAnnouncementInput) (*model.Announcement, error) {
	if in.Title == "" || in.Content == "" {
		return nil, apperrors.ErrValidation
	}
	if in.Status == "" {
		in.Status = model.AnnouncementDraft
	}
	if !in.Status.Valid() {
		return nil, apperrors.ErrValidation
	}
	if in.Priority == "" {
		in.Priority = "normal"
	}
	if in.TargetAudience == "" {
		in.TargetAudience = "all"
	}

	announcement := &model.Announcement{
		Title:          in.Title,
		Content:        in.Content,
		AuthorID:       authorID,
		Status:         in.Status,
		Priority:       in.Priority,
		TargetAudience: in.TargetAudience,
	}
	if err := s.announcements.Create(ctx, announcement); err != nil {
		return nil, fmt.Errorf("create announcement: %w", err)
	}
	_ = s.cache.Delete(ctx, publishedFeedKey)
	return announcement, nil
}

func (s *announcementService) ListAll(ctx context.Context) ([]model.Announcement, error) {
	return s.announcements.ListAll(ctx)
}

func (s *announcementService) UpdateStatus(ctx context.Context, id uint, status model.AnnouncementStatus) (*model.Announcement, error) {
	if !status.Valid() {
		return nil, apperrors.ErrValidation
	}
	announcement, err := s.announcements.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.ErrAnnouncementNotFound
	}

	announcement.Status = status
	if err := s.announcements.Update(ctx, announcement); err != nil {
		return nil, fmt.Errorf("update announcement: %w", err)
	}
	_ = s.cache.Delete(ctx, publishedFeedKey)
	return announcement, nil
}

func (s *announcementService) Delete(ctx context.Context, id uint) error {
	if err := s.announcements.Delete(ctx, id); err != nil {
		return apperrors.ErrAnnouncementNotFound
	}
	_ = s.cache.Delete(ctx, publishedFeedKey)
	return nil
}

func (s *announcementService) Published(ctx context.Context) ([]model.Announcement, error) {
	var cached []model.Announcement
	if s.cache.GetJSON(ctx, publishedFeedKey, &cached) {
		return cached, nil
	}

	announcements, err := s.announcements.ListPublished(ctx, publishedFeedLimit)
	if err != nil {
		return nil, fmt.Errorf("list published announcements: %w", err)
	}
	s.cache.SetJSON(ctx, publishedFeedKey, announcements, publishedFeedTTL)
	return announcements, nil
}
