package service

import (
	"context"
	"fmt"
	"math"

	apperrors "github.com/HimanshuAlien/college-management-system/internal/errors"
	"github.com/HimanshuAlien/college-management-system/internal/model"
	"github.com/HimanshuAlien/college-management-system/internal/repository"
)

// RecordGradeInput carries a student's self-recorded subject result.
type RecordGradeInput struct {
	Subject     string
	SubjectCode string
	Credits     int
	Percentage  float64
}

// GradeReport is the CGPA calculator output.
type GradeReport struct {
	Grades       []model.Grade `json:"gradesBySubject"`
	CGPA         float64       `json:"cgpa"`
	TotalCredits int           `json:"totalCredits"`
}

// GradeService exposes the student CGPA calculator.
type GradeService interface {
	Record(ctx context.Context, studentID uint, in RecordGradeInput) (*model.Grade, float64, error)
	Report(ctx context.Context, studentID uint) (*GradeReport, error)
}

type gradeService struct {
	grades repository.GradeRepository
}

// NewGradeService builds a GradeService.
func NewGradeService(grades repository.GradeRepository) GradeService {
	return &gradeService{grades: grades}
}

// GradePoint maps a percentage onto the 10-point ladder.
func GradePoint(percentage float64) int {
	switch {
	case percentage >= 90:
		return 10
	case percentage >= 80:
		return 9
	case percentage >= 70:
		return 8
	case percentage >= 60:
		return 7
	case percentage >= 50:
		return 6
	case percentage >= 40:
		return 5
	default:
		return 0
	}
}

// CGPA is the credit-weighted mean of grade points, rounded to two decimals.
// Failed subjects (grade point 0) still count their credits.
func CGPA(grades []model.Grade) (cgpa float64, totalCredits int) {
	weighted := 0
	for _, grade := range grades {
		totalCredits += grade.Credits
		weighted += grade.GradePoint * grade.Credits
	}
	if totalCredits == 0 {
		return 0, 0
	}
	cgpa = math.Round(float64(weighted)/float64(totalCredits)*100) / 100
	return cgpa, totalCredits
}

// Record upserts one subject result and returns the refreshed CGPA.
func (s *gradeService) Record(ctx context.Context, studentID uint, in RecordGradeInput) (*model.Grade, float64, error) {
	if in.Subject == "" || in.SubjectCode == "" || in.Credits < 1 || in.Percentage < 0 || in.Percentage > 100 {
		return nil, 0, apperrors.ErrValidation
	}

	point := GradePoint(in.Percentage)

	grade, err := s.grades.FindByStudentAndSubject(ctx, studentID, in.Subject)
	if err == nil && grade != nil {
		grade.SubjectCode = in.SubjectCode
		grade.Credits = in.Credits
		grade.Percentage = in.Percentage
		grade.GradePoint = point
		if err := s.grades.Update(ctx, grade); err != nil {
			return nil, 0, fmt.Errorf("update grade: %w", err)
		}
	} else {
		grade = &model.Grade{
			StudentID:   studentID,
			Subject:     in.Subject,
			SubjectCode: in.SubjectCode,
			Credits:     in.Credits,
			Percentage:  in.Percentage,
			GradePoint:  point,
		}
		if err := s.grades.Create(ctx, grade); err != nil {
			return nil, 0, fmt.Errorf("create grade: %w", err)
		}
	}

	all, err := s.grades.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, 0, fmt.Errorf("list grades: %w", err)
	}
	cgpa, _ := CGPA(all)
	return grade, cgpa, nil
}

func (s *gradeService) Report(ctx context.Context, studentID uint) (*GradeReport, error) {
	grades, err := s.grades.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("list grades: %w", err)
	}
	cgpa, credits := CGPA(grades)
	return &GradeReport{Grades: grades, CGPA: cgpa, TotalCredits: credits}, nil
}
