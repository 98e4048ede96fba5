package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/HimanshuAlien/college-management-system/internal/model"
)

// GradeRepository defines persistence operations over self-recorded grades.
type GradeRepository interface {
	Create(ctx context.Context, grade *model.Grade) error
	Update(ctx context.Context, grade *model.Grade) error
	FindByStudentAndSubject(ctx context.Context, studentID uint, subject string) (*model.Grade, error)
	ListByStudent(ctx context.Context, studentID uint) ([]model.Grade, error)
}

type gradeRepository struct {
	db *gorm.DB
}

// NewGradeRepository builds a GORM-backed repository.
func NewGradeRepository(db *gorm.DB) GradeRepository {
	return &gradeRepository{db: db}
}

func (r *gradeRepository) Create(ctx context.Context, grade *model.Grade) error {
	return r.db.WithContext(ctx).Create(grade).Error
}

func (r *gradeRepository) Update(ctx context.Context, grade *model.Grade) error {
	return r.db.WithContext(ctx).Save(grade).Error
}

func (r *gradeRepository) FindByStudentAndSubject(ctx context.Context, studentID uint, subject string) (*model.Grade, error) {
	var grade model.Grade
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND subject = ?", studentID, subject).
		First(&grade).Error
	if err != nil {
		return nil, err
	}
	return &grade, nil
}

func (r *gradeRepository) ListByStudent(ctx context.Context, studentID uint) ([]model.Grade, error) {
	var grades []model.Grade
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("subject ASC").
		Find(&grades).Error
	if err != nil {
		return nil, err
	}
	return grades, nil
}
