package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	apperrors "github.com/HimanshuAlien/college-management-system/internal/errors"
	"github.com/HimanshuAlien/college-management-system/internal/model"
	"github.com/HimanshuAlien/college-management-system/internal/repository"
)

// CreateSubjectInput carries a subject-creation payload.
type CreateSubjectInput struct {
	Name        string
	Code        string
	Credits     int
	TeacherID   *uint
	ClassID     uint
	Description string
	Syllabus    string
}

// UpdateSubjectInput carries a subject-update payload.
type UpdateSubjectInput struct {
	Name        *string
	Credits     *int
	TeacherID   *uint
	Description *string
	Syllabus    *string
}

// Roster is a subject's class list: the students a teacher marks attendance for.
type Roster struct {
	Subject  *model.Subject `json:"subject"`
	Students []model.User   `json:"students"`
}

// SubjectService exposes subject management plus the ownership capability
// consumed by the authorization layer.
type SubjectService interface {
	List(ctx context.Context, classID uint) ([]model.Subject, error)
	ListByTeacher(ctx context.Context, teacherID uint) ([]model.Subject, error)
	Create(ctx context.Context, in CreateSubjectInput) (*model.Subject, error)
	Update(ctx context.Context, id uint, in UpdateSubjectInput) (*model.Subject, error)
	// EnsureOwner is the capability predicate: nil when teacherID teaches the
	// subject, ErrNotOwner otherwise.
	EnsureOwner(ctx context.Context, teacherID, subjectID uint) error
	Roster(ctx context.Context, subjectID uint) (*Roster, error)
}

type subjectService struct {
	subjects repository.SubjectRepository
	users    repository.UserRepository
}

// NewSubjectService builds a SubjectService.
func NewSubjectService(subjects repository.SubjectRepository, users repository.UserRepository) SubjectService {
	return &subjectService{subjects: subjects, users: users}
}

func (s *subjectService) List(ctx context.Context, classID uint) ([]model.Subject, error) {
	return s.subjects.ListActive(ctx, classID)
}

func (s *subjectService) ListByTeacher(ctx context.Context, teacherID uint) ([]model.Subject, error) {
	return s.subjects.ListByTeacher(ctx, teacherID)
}

func (s *subjectService) Create(ctx context.Context, in CreateSubjectInput) (*model.Subject, error) {
	if in.Name == "" || in.Code == "" || in.ClassID == 0 || in.Credits < 1 || in.Credits > 6 {
		return nil, apperrors.ErrValidation
	}

	code := strings.ToUpper(strings.TrimSpace(in.Code))
	existing, err := s.subjects.FindByCode(ctx, code)
	if err == nil && existing != nil {
		return nil, apperrors.ErrSubjectCodeTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check subject code: %w", err)
	}

	subject := &model.Subject{
		Name:        in.Name,
		Code:        code,
		Credits:     in.Credits,
		TeacherID:   in.TeacherID,
		ClassID:     in.ClassID,
		Description: in.Description,
		Syllabus:    in.Syllabus,
		IsActive:    true,
	}
	if err := s.subjects.Create(ctx, subject); err != nil {
		return nil, fmt.Errorf("create subject: %w", err)
	}
	return s.subjects.FindByID(ctx, subject.ID)
}

func (s *subjectService) Update(ctx context.Context, id uint, in UpdateSubjectInput) (*model.Subject, error) {
	subject, err := s.subjects.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.ErrSubjectNotFound
	}

	if in.Name != nil {
		subject.Name = *in.Name
	}
	if in.Credits != nil {
		subject.Credits = *in.Credits
	}
	if in.TeacherID != nil {
		subject.TeacherID = in.TeacherID
	}
	if in.Description != nil {
		subject.Description = *in.Description
	}
	if in.Syllabus != nil {
		subject.Syllabus = *in.Syllabus
	}

	// Save without the preloaded associations
	subject.Teacher = nil
	subject.Class = nil
	if err := s.subjects.Update(ctx, subject); err != nil {
		return nil, fmt.Errorf("update subject: %w", err)
	}
	return s.subjects.FindByID(ctx, id)
}

func (s *subjectService) EnsureOwner(ctx context.Context, teacherID, subjectID uint) error {
	if _, err := s.subjects.FindOwned(ctx, subjectID, teacherID); err != nil {
		return apperrors.ErrNotOwner
	}
	return nil
}

func (s *subjectService) Roster(ctx context.Context, subjectID uint) (*Roster, error) {
	subject, err := s.subjects.FindByID(ctx, subjectID)
	if err != nil {
		return nil, apperrors.ErrSubjectNotFound
	}
	students, err := s.users.ListStudentsByClass(ctx, subject.ClassID)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return &Roster{Subject: subject, Students: students}, nil
}
