package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/HimanshuAlien/college-management-system/internal/errors"
	"github.com/HimanshuAlien/college-management-system/internal/model"
	"github.com/HimanshuAlien/college-management-system/internal/repository"
)

// AssignmentStatus values surfaced to students.
const (
	StatusPending   = "pending"
	StatusSubmitted = "submitted"
	StatusGraded    = "graded"
	StatusOverdue   = "overdue"
)

// CreateAssignmentInput carries a teacher's assignment-creation payload.
type CreateAssignmentInput struct {
	SubjectID    uint
	Title        string
	Description  string
	DueDate      time.Time
	MaxMarks     int
	Instructions string
}

// AssignmentSummary is a teacher-facing listing row with submission counts.
type AssignmentSummary struct {
	model.Assignment
	TotalSubmissions  int `json:"totalSubmissions"`
	GradedSubmissions int `json:"gradedSubmissions"`
}

// StudentAssignment is a student-facing listing row: the assignment plus the
// caller's own submission and derived status.
type StudentAssignment struct {
	model.Assignment
	Submission *model.Submission `json:"submission"`
	Status     string            `json:"status"`
}

// GradeInput carries marks and feedback for one submission.
type GradeInput struct {
	Marks    int
	Feedback string
}

// AssignmentService exposes assignment and submission operations for both
// teachers and students.
type AssignmentService interface {
	Create(ctx context.Context, teacherID uint, in CreateAssignmentInput) (*model.Assignment, error)
	ListByTeacher(ctx context.Context, teacherID, subjectID uint) ([]AssignmentSummary, error)
	Delete(ctx context.Context, id uint) error
	Submissions(ctx context.Context, teacherID, assignmentID uint) (*model.Assignment, error)
	GradeSubmission(ctx context.Context, teacherID, assignmentID, submissionID uint, in GradeInput) (*model.Submission, error)
	// EnsureOwner is the capability predicate for assignment routes.
	EnsureOwner(ctx context.Context, teacherID, assignmentID uint) error

	ListForStudent(ctx context.Context, studentID uint) ([]StudentAssignment, error)
	Submit(ctx context.Context, studentID, assignmentID uint, content string) error
}

type assignmentService struct {
	assignments repository.AssignmentRepository
	subjects    repository.SubjectRepository
	users       repository.UserRepository
	now         func() time.Time
}

// NewAssignmentService builds an AssignmentService.
func NewAssignmentService(
	assignments repository.AssignmentRepository,
	subjects repository.SubjectRepository,
	users repository.UserRepository,
) AssignmentService {
	return &assignmentService{
		assignments: assignments,
		subjects:    subjects,
		users:       users,
		now:         time.Now,
	}
}

// Create sets an assignment on a subject the teacher owns.
func (s *assignmentService) Create(ctx context.Context, teacherID uint, in CreateAssignmentInput) (*model.Assignment, error) {
	if in.SubjectID == 0 || in.Title == "" || in.MaxMarks < 1 {
		return nil, apperrors.ErrValidation
	}
	if _, err := s.subjects.FindOwned(ctx, in.SubjectID, teacherID); err != nil {
		return nil, apperrors.ErrNotOwner
	}

	assignment := &model.Assignment{
		Title:        in.Title,
		Description:  in.Description,
		SubjectID:    in.SubjectID,
		TeacherID:    teacherID,
		DueDate:      in.DueDate,
		MaxMarks:     in.MaxMarks,
		Instructions: in.Instructions,
		IsActive:     true,
	}
	if err := s.assignments.Create(ctx, assignment); err != nil {
		return nil, fmt.Errorf("create assignment: %w", err)
	}
	return s.assignments.FindByID(ctx, assignment.ID)
}

func (s *assignmentService) ListByTeacher(ctx context.Context, teacherID, subjectID uint) ([]AssignmentSummary, error) {
	assignments, err := s.assignments.ListByTeacher(ctx, teacherID, subjectID)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}

	out := make([]AssignmentSummary, 0, len(assignments))
	for _, a := range assignments {
		graded := 0
		for i := range a.Submissions {
			if a.Submissions[i].Graded() {
				graded++
			}
		}
		out = append(out, AssignmentSummary{
			Assignment:        a,
			TotalSubmissions:  len(a.Submissions),
			GradedSubmissions: graded,
		})
	}
	return out, nil
}

func (s *assignmentService) Delete(ctx context.Context, id uint) error {
	if err := s.assignments.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrAssignmentNotFound
		}
		return fmt.Errorf("delete assignment: %w", err)
	}
	return nil
}

func (s *assignmentService) Submissions(ctx context.Context, teacherID, assignmentID uint) (*model.Assignment, error) {
	assignment, err := s.assignments.FindOwnedWithSubmissions(ctx, assignmentID, teacherID)
	if err != nil {
		return nil, apperrors.ErrAssignmentNotFound
	}
	return assignment, nil
}

func (s *assignmentService) GradeSubmission(ctx context.Context, teacherID, assignmentID, submissionID uint, in GradeInput) (*model.Submission, error) {
	assignment, err := s.assignments.FindOwned(ctx, assignmentID, teacherID)
	if err != nil {
		return nil, apperrors.ErrAssignmentNotFound
	}
	if in.Marks < 0 || in.Marks > assignment.MaxMarks {
		return nil, apperrors.ErrValidation
	}

	submission, err := s.assignments.FindSubmissionByID(ctx, submissionID)
	if err != nil || submission.AssignmentID != assignmentID {
		return nil, apperrors.ErrSubmissionNotFound
	}

	now := s.now()
	submission.GradeMarks = &in.Marks
	submission.GradeComment = in.Feedback
	submission.GradedAt = &now
	submission.GradedByID = &teacherID

	if err := s.assignments.UpdateSubmission(ctx, submission); err != nil {
		return nil, fmt.Errorf("grade submission: %w", err)
	}
	return submission, nil
}

func (s *assignmentService) EnsureOwner(ctx context.Context, teacherID, assignmentID uint) error {
	if _, err := s.assignments.FindOwned(ctx, assignmentID, teacherID); err != nil {
		return apperrors.ErrNotOwner
	}
	return nil
}

// ListForStudent returns every assignment of the student's class subjects with
// the caller's submission state resolved.
func (s *assignmentService) ListForStudent(ctx context.Context, studentID uint) ([]StudentAssignment, error) {
	student, err := s.users.FindByID(ctx, studentID)
	if err != nil {
		return nil, apperrors.ErrUserNotFound
	}
	if student.ClassID == nil {
		return []StudentAssignment{}, nil
	}

	subjects, err := s.subjects.ListByClass(ctx, *student.ClassID)
	if err != nil {
		return nil, fmt.Errorf("list class subjects: %w", err)
	}
	subjectIDs := make([]uint, 0, len(subjects))
	for _, subject := range subjects {
		subjectIDs = append(subjectIDs, subject.ID)
	}

	assignments, err := s.assignments.ListBySubjects(ctx, subjectIDs)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}

	now := s.now()
	out := make([]StudentAssignment, 0, len(assignments))
	for _, a := range assignments {
		var own *model.Submission
		for i := range a.Submissions {
			if a.Submissions[i].StudentID == studentID {
				own = &a.Submissions[i]
				break
			}
		}

		status := StatusPending
		switch {
		case own != nil && own.Graded():
			status = StatusGraded
		case own != nil:
			status = StatusSubmitted
		case now.After(a.DueDate):
			status = StatusOverdue
		}

		a.Submissions = nil // do not leak other students' submissions
		out = append(out, StudentAssignment{Assignment: a, Submission: own, Status: status})
	}
	return out, nil
}

// Submit records a student's one-shot submission; late work is accepted but
// flagged.
func (s *assignmentService) Submit(ctx context.Context, studentID, assignmentID uint, content string) error {
	assignment, err := s.assignments.FindByID(ctx, assignmentID)
	if err != nil {
		return apperrors.ErrAssignmentNotFound
	}

	if existing, err := s.assignments.FindSubmission(ctx, assignmentID, studentID); err == nil && existing != nil {
		return apperrors.ErrAlreadySubmitted
	}

	now := s.now()
	submission := &model.Submission{
		AssignmentID: assignmentID,
		StudentID:    studentID,
		Content:      content,
		SubmittedAt:  now,
		IsLate:       now.After(assignment.DueDate),
	}
	if err := s.assignments.CreateSubmission(ctx, submission); err != nil {
		return fmt.Errorf("create submission: %w", err)
	}
	return nil
}
