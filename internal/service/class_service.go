package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "github.com/HimanshuAlien/college-management-system/internal/errors"
	"github.com/HimanshuAlien/college-management-system/internal/model"
	"github.com/HimanshuAlien/college-management-system/internal/repository"
)

// ClassWithCount pairs a class with its live student count. The count is
// computed from user rows, not from the denormalized TotalStudents column.
type ClassWithCount struct {
	model.Class
	StudentCount int64 `json:"studentCount"`
}

// CreateClassInput carries a class-creation payload.
type CreateClassInput struct {
	Name           string
	Branch         string
	Year           int
	Section        string
	ClassTeacherID *uint
}

// UpdateClassInput carries a class-update payload.
type UpdateClassInput struct {
	Name           *string
	Branch         *string
	Year           *int
	Section        *string
	ClassTeacherID *uint
}

// ClassService exposes admin class management.
type ClassService interface {
	List(ctx context.Context) ([]ClassWithCount, error)
	Create(ctx context.Context, in CreateClassInput) (*model.Class, error)
	Update(ctx context.Context, id uint, in UpdateClassInput) (*model.Class, error)
	// Delete deactivates the class; refused while active students remain.
	Delete(ctx context.Context, id uint) error
}

type classService struct {
	classes repository.ClassRepository
	users   repository.UserRepository
}

// NewClassService builds a ClassService.
func NewClassService(classes repository.ClassRepository, users repository.UserRepository) ClassService {
	return &classService{classes: classes, users: users}
}

func (s *classService) List(ctx context.Context) ([]ClassWithCount, error) {
	classes, err := s.classes.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}

	out := make([]ClassWithCount, 0, len(classes))
	for _, class := range classes {
		count, err := s.users.CountActiveStudentsInClass(ctx, class.ID)
		if err != nil {
			return nil, fmt.Errorf("count students: %w", err)
		}
		out = append(out, ClassWithCount{Class: class, StudentCount: count})
	}
	return out, nil
}

func (s *classService) Create(ctx context.Context, in CreateClassInput) (*model.Class, error) {
	if in.Section == "" {
		in.Section = "A"
	}
	if in.Name == "" || in.Branch == "" || in.Year < 1 || in.Year > 4 {
		return nil, apperrors.ErrValidation
	}

	existing, err := s.classes.FindByIdentity(ctx, in.Branch, in.Year, in.Section)
	if err == nil && existing != nil {
		return nil, apperrors.ErrClassExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check class existence: %w", err)
	}

	class := &model.Class{
		Name:           in.Name,
		Branch:         in.Branch,
		Year:           in.Year,
		Section:        in.Section,
		ClassTeacherID: in.ClassTeacherID,
		IsActive:       true,
	}
	if err := s.classes.Create(ctx, class); err != nil {
		return nil, fmt.Errorf("create class: %w", err)
	}
	return s.classes.FindByID(ctx, class.ID)
}

func (s *classService) Update(ctx context.Context, id uint, in UpdateClassInput) (*model.Class, error) {
	class, err := s.classes.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.ErrClassNotFound
	}

	if in.Name != nil {
		class.Name = *in.Name
	}
	if in.Branch != nil {
		class.Branch = *in.Branch
	}
	if in.Year != nil {
		class.Year = *in.Year
	}
	if in.Section != nil {
		class.Section = *in.Section
	}
	if in.ClassTeacherID != nil {
		class.ClassTeacherID = in.ClassTeacherID
	}

	if err := s.classes.Update(ctx, class); err != nil {
		return nil, fmt.Errorf("update class: %w", err)
	}
	return s.classes.FindByID(ctx, id)
}

func (s *classService) Delete(ctx context.Context, id uint) error {
	if _, err := s.classes.FindByID(ctx, id); err != nil {
		return apperrors.ErrClassNotFound
	}

	count, err := s.users.CountActiveStudentsInClass(ctx, id)
	if err != nil {
		return fmt.Errorf("count students: %w", err)
	}
	if count > 0 {
		return apperrors.ErrClassHasStudents
	}

	return s.classes.Deactivate(ctx, id)
}
