package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/HimanshuAlien/college-management-system/internal/model"
)

// AssignmentRepository defines persistence operations over assignments and
// their submissions.
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *model.Assignment) error
	FindByID(ctx context.Context, id uint) (*model.Assignment, error)
	// FindOwned returns the assignment only when teacherID set it.
	FindOwned(ctx context.Context, id, teacherID uint) (*model.Assignment, error)
	// FindOwnedWithSubmissions additionally resolves submissions and their students.
	FindOwnedWithSubmissions(ctx context.Context, id, teacherID uint) (*model.Assignment, error)
	Delete(ctx context.Context, id uint) error
	ListByTeacher(ctx context.Context, teacherID, subjectID uint) ([]model.Assignment, error)
	ListRecentByTeacher(ctx context.Context, teacherID uint, limit int) ([]model.Assignment, error)
	ListBySubjects(ctx context.Context, subjectIDs []uint) ([]model.Assignment, error)
	ListUpcomingBySubjects(ctx context.Context, subjectIDs []uint, after time.Time, limit int) ([]model.Assignment, error)

	CreateSubmission(ctx context.Context, submission *model.Submission) error
	UpdateSubmission(ctx context.Context, submission *model.Submission) error
	FindSubmission(ctx context.Context, assignmentID, studentID uint) (*model.Submission, error)
	FindSubmissionByID(ctx context.Context, id uint) (*model.Submission, error)
}

type assignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository builds a GORM-backed repository.
func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) Create(ctx context.Context, assignment *model.Assignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *assignmentRepository) FindByID(ctx context.Context, id uint) (*model.Assignment, error) {
	var assignment model.Assignment
	err := r.db.WithContext(ctx).
		Preload("Subject").
		First(&assignment, id).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *assignmentRepository) FindOwned(ctx context.Context, id, teacherID uint) (*model.Assignment, error) {
	var assignment model.Assignment
	err := r.db.WithContext(ctx).
		Where("id = ? AND teacher_id = ?", id, teacherID).
		First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *assignmentRepository) FindOwnedWithSubmissions(ctx context.Context, id, teacherID uint) (*model.Assignment, error) {
	var assignment model.Assignment
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Preload("Submissions").
		Preload("Submissions.Student", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "roll_number", "profile_image")
		}).
		Where("id = ? AND teacher_id = ?", id, teacherID).
		First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *assignmentRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Assignment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *assignmentRepository) ListByTeacher(ctx context.Context, teacherID, subjectID uint) ([]model.Assignment, error) {
	q := r.db.WithContext(ctx).
		Preload("Subject").
		Preload("Submissions").
		Where("teacher_id = ?", teacherID)
	if subjectID != 0 {
		q = q.Where("subject_id = ?", subjectID)
	}
	var assignments []model.Assignment
	if err := q.Order("created_at DESC").Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *assignmentRepository) ListRecentByTeacher(ctx context.Context, teacherID uint, limit int) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Where("teacher_id = ?", teacherID).
		Order("created_at DESC").
		Limit(limit).
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *assignmentRepository) ListBySubjects(ctx context.Context, subjectIDs []uint) ([]model.Assignment, error) {
	if len(subjectIDs) == 0 {
		return nil, nil
	}
	var assignments []model.Assignment
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Preload("Teacher", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name")
		}).
		Preload("Submissions").
		Where("subject_id IN ?", subjectIDs).
		Order("created_at DESC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *assignmentRepository) ListUpcomingBySubjects(ctx context.Context, subjectIDs []uint, after time.Time, limit int) ([]model.Assignment, error) {
	if len(subjectIDs) == 0 {
		return nil, nil
	}
	var assignments []model.Assignment
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Where("subject_id IN ? AND due_date >= ?", subjectIDs, after).
		Order("due_date ASC").
		Limit(limit).
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *assignmentRepository) CreateSubmission(ctx context.Context, submission *model.Submission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

func (r *assignmentRepository) UpdateSubmission(ctx context.Context, submission *model.Submission) error {
	return r.db.WithContext(ctx).Save(submission).Error
}

func (r *assignmentRepository) FindSubmission(ctx context.Context, assignmentID, studentID uint) (*model.Submission, error) {
	var submission model.Submission
	err := r.db.WithContext(ctx).
		Where("assignment_id = ? AND student_id = ?", assignmentID, studentID).
		First(&submission).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *assignmentRepository) FindSubmissionByID(ctx context.Context, id uint) (*model.Submission, error) {
	var submission model.Submission
	if err := r.db.WithContext(ctx).First(&submission, id).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}
