package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/HimanshuAlien/college-management-system/internal/model"
)

// ClassRepository defines persistence operations over classes.
type ClassRepository interface {
	Create(ctx context.Context, class *model.Class) error
	Update(ctx context.Context, class *model.Class) error
	FindByID(ctx context.Context, id uint) (*model.Class, error)
	FindByIdentity(ctx context.Context, branch string, year int, section string) (*model.Class, error)
	ListActive(ctx context.Context) ([]model.Class, error)
	CountActive(ctx context.Context) (int64, error)
	AdjustStudentCount(ctx context.Context, id uint, delta int) error
	Deactivate(ctx context.Context, id uint) error
}

type classRepository struct {
	db *gorm.DB
}

// NewClassRepository builds a GORM-backed repository.
func NewClassRepository(db *gorm.DB) ClassRepository {
	return &classRepository{db: db}
}

func (r *classRepository) Create(ctx context.Context, class *model.Class) error {
	return r.db.WithContext(ctx).Create(class).Error
}

func (r *classRepository) Update(ctx context.Context, class *model.Class) error {
	return r.db.WithContext(ctx).Save(class).Error
}

func (r *classRepository) FindByID(ctx context.Context, id uint) (*model.Class, error) {
	var class model.Class
	err := r.db.WithContext(ctx).
		Preload("ClassTeacher").
		Preload("Subjects").
		First(&class, id).Error
	if err != nil {
		return nil, err
	}
	return &class, nil
}

func (r *classRepository) FindByIdentity(ctx context.Context, branch string, year int, section string) (*model.Class, error) {
	var class model.Class
	err := r.db.WithContext(ctx).
		Where("branch = ? AND year = ? AND section = ?", branch, year, section).
		First(&class).Error
	if err != nil {
		return nil, err
	}
	return &class, nil
}

func (r *classRepository) ListActive(ctx context.Context) ([]model.Class, error) {
	var classes []model.Class
	err := r.db.WithContext(ctx).
		Preload("ClassTeacher").
		Preload("Subjects").
		Where("is_active = ?", true).
		Order("branch ASC, year ASC, section ASC").
		Find(&classes).Error
	if err != nil {
		return nil, err
	}
	return classes, nil
}

func (r *classRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Class{}).
		Where("is_active = ?", true).
		Count(&count).Error
	return count, err
}

// AdjustStudentCount shifts the denormalized counter. Not atomic with the user
// write that triggers it; an accepted consistency gap.
func (r *classRepository) AdjustStudentCount(ctx context.Context, id uint, delta int) error {
	return r.db.WithContext(ctx).Model(&model.Class{}).
		Where("id = ?", id).
		UpdateColumn("total_students", gorm.Expr("total_students + ?", delta)).Error
}

func (r *classRepository) Deactivate(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&model.Class{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}
