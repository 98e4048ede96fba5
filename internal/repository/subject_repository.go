package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/HimanshuAlien/college-management-system/internal/model"
)

// SubjectRepository defines persistence operations over subjects.
type SubjectRepository interface {
	Create(ctx context.Context, subject *model.Subject) error
	Update(ctx context.Context, subject *model.Subject) error
	FindByID(ctx context.Context, id uint) (*model.Subject, error)
	FindByCode(ctx context.Context, code string) (*model.Subject, error)
	// FindOwned returns the subject only when teacherID teaches it.
	FindOwned(ctx context.Context, id, teacherID uint) (*model.Subject, error)
	ListActive(ctx context.Context, classID uint) ([]model.Subject, error)
	ListByTeacher(ctx context.Context, teacherID uint) ([]model.Subject, error)
	ListByClass(ctx context.Context, classID uint) ([]model.Subject, error)
	CountActive(ctx context.Context) (int64, error)
}

type subjectRepository struct {
	db *gorm.DB
}

// NewSubjectRepository builds a GORM-backed repository.
func NewSubjectRepository(db *gorm.DB) SubjectRepository {
	return &subjectRepository{db: db}
}

func (r *subjectRepository) Create(ctx context.Context, subject *model.Subject) error {
	return r.db.WithContext(ctx).Create(subject).Error
}

func (r *subjectRepository) Update(ctx context.Context, subject *model.Subject) error {
	return r.db.WithContext(ctx).Save(subject).Error
}

func (r *subjectRepository) FindByID(ctx context.Context, id uint) (*model.Subject, error) {
	var subject model.Subject
	err := r.db.WithContext(ctx).
		Preload("Teacher").
		Preload("Class").
		First(&subject, id).Error
	if err != nil {
		return nil, err
	}
	return &subject, nil
}

func (r *subjectRepository) FindByCode(ctx context.Context, code string) (*model.Subject, error) {
	var subject model.Subject
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&subject).Error; err != nil {
		return nil, err
	}
	return &subject, nil
}

func (r *subjectRepository) FindOwned(ctx context.Context, id, teacherID uint) (*model.Subject, error) {
	var subject model.Subject
	err := r.db.WithContext(ctx).
		Preload("Class").
		Where("id = ? AND teacher_id = ?", id, teacherID).
		First(&subject).Error
	if err != nil {
		return nil, err
	}
	return &subject, nil
}

func (r *subjectRepository) ListActive(ctx context.Context, classID uint) ([]model.Subject, error) {
	q := r.db.WithContext(ctx).
		Preload("Teacher").
		Preload("Class").
		Where("is_active = ?", true)
	if classID != 0 {
		q = q.Where("class_id = ?", classID)
	}
	var subjects []model.Subject
	if err := q.Order("name ASC").Find(&subjects).Error; err != nil {
		return nil, err
	}
	return subjects, nil
}

func (r *subjectRepository) ListByTeacher(ctx context.Context, teacherID uint) ([]model.Subject, error) {
	var subjects []model.Subject
	err := r.db.WithContext(ctx).
		Preload("Class").
		Where("teacher_id = ? AND is_active = ?", teacherID, true).
		Order("name ASC").
		Find(&subjects).Error
	if err != nil {
		return nil, err
	}
	return subjects, nil
}

func (r *subjectRepository) ListByClass(ctx context.Context, classID uint) ([]model.Subject, error) {
	var subjects []model.Subject
	err := r.db.WithContext(ctx).
		Preload("Teacher").
		Where("class_id = ? AND is_active = ?", classID, true).
		Order("name ASC").
		Find(&subjects).Error
	if err != nil {
		return nil, err
	}
	return subjects, nil
}

func (r *subjectRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Subject{}).
		Where("is_active = ?", true).
		Count(&count).Error
	return count, err
}
