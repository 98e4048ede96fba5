package service

import (
	"context"
	"fmt"
	"math"
	"time"

	apperrors "github.com/HimanshuAlien/college-management-system/internal/errors"
	"github.com/HimanshuAlien/college-management-system/internal/model"
	"github.com/HimanshuAlien/college-management-system/internal/repository"
)

const recentRecordsPerSubject = 10

// MarkAttendanceInput carries a teacher's attendance mark. The subject id
// arrives in the body, so ownership is checked here rather than by the route
// guard.
type MarkAttendanceInput struct {
	StudentID uint
	SubjectID uint
	Date      time.Time
	Status    model.AttendanceStatus
	Remarks   string
}

// SubjectAttendance summarizes one subject's attendance for a student.
type SubjectAttendance struct {
	Subject        *model.Subject     `json:"subject"`
	TotalClasses   int                `json:"totalClasses"`
	PresentClasses int                `json:"presentClasses"`
	Percentage     int                `json:"percentage"`
	Records        []model.Attendance `json:"records"`
}

// AttendanceService exposes attendance marking and student summaries.
type AttendanceService interface {
	Mark(ctx context.Context, teacherID uint, in MarkAttendanceInput) (*model.Attendance, error)
	// SubjectLog lists a subject's marks for one day, for teachers reviewing
	// what they already recorded.
	SubjectLog(ctx context.Context, subjectID uint, date time.Time) ([]model.Attendance, error)
	// StudentSummary groups a student's attendance by class subject with
	// percentages and the most recent records.
	StudentSummary(ctx context.Context, studentID uint) ([]SubjectAttendance, error)
}

type attendanceService struct {
	attendance repository.AttendanceRepository
	subjects   repository.SubjectRepository
	users      repository.UserRepository
	now        func() time.Time
}

// NewAttendanceService builds an AttendanceService.
func NewAttendanceService(
	attendance repository.AttendanceRepository,
	subjects repository.SubjectRepository,
	users repository.UserRepository,
) AttendanceService {
	return &attendanceService{
		attendance: attendance,
		subjects:   subjects,
		users:      users,
		now:        time.Now,
	}
}

func (s *attendanceService) Mark(ctx context.Context, teacherID uint, in MarkAttendanceInput) (*model.Attendance, error) {
	if !in.Status.Valid() || in.StudentID == 0 || in.SubjectID == 0 {
		return nil, apperrors.ErrValidation
	}
	if _, err := s.subjects.FindOwned(ctx, in.SubjectID, teacherID); err != nil {
		return nil, apperrors.ErrNotOwner
	}

	day := in.Date
	if day.IsZero() {
		day = s.now()
	}
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	record := &model.Attendance{
		StudentID:  in.StudentID,
		SubjectID:  in.SubjectID,
		Date:       day,
		Status:     in.Status,
		MarkedByID: teacherID,
		MarkedAt:   s.now(),
		Remarks:    in.Remarks,
	}
	if err := s.attendance.Upsert(ctx, record); err != nil {
		return nil, fmt.Errorf("mark attendance: %w", err)
	}
	return record, nil
}

func (s *attendanceService) SubjectLog(ctx context.Context, subjectID uint, date time.Time) ([]model.Attendance, error) {
	if date.IsZero() {
		date = s.now()
	}
	date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	records, err := s.attendance.ListBySubjectOnDate(ctx, subjectID, date)
	if err != nil {
		return nil, fmt.Errorf("list subject attendance: %w", err)
	}
	return records, nil
}

func (s *attendanceService) StudentSummary(ctx context.Context, studentID uint) ([]SubjectAttendance, error) {
	student, err := s.users.FindByID(ctx, studentID)
	if err != nil {
		return nil, apperrors.ErrUserNotFound
	}
	if student.ClassID == nil {
		return []SubjectAttendance{}, nil
	}

	subjects, err := s.subjects.ListByClass(ctx, *student.ClassID)
	if err != nil {
		return nil, fmt.Errorf("list class subjects: %w", err)
	}
	subjectIDs := make([]uint, 0, len(subjects))
	for _, subject := range subjects {
		subjectIDs = append(subjectIDs, subject.ID)
	}

	records, err := s.attendance.ListByStudent(ctx, studentID, subjectIDs)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}

	bySubject := make(map[uint][]model.Attendance, len(subjects))
	for _, record := range records {
		bySubject[record.SubjectID] = append(bySubject[record.SubjectID], record)
	}

	out := make([]SubjectAttendance, 0, len(subjects))
	for i := range subjects {
		subject := subjects[i]
		subjectRecords := bySubject[subject.ID]

		present := 0
		for _, record := range subjectRecords {
			if record.Status == model.AttendancePresent {
				present++
			}
		}

		percentage := 0
		if len(subjectRecords) > 0 {
			percentage = int(math.Round(float64(present) / float64(len(subjectRecords)) * 100))
		}

		recent := subjectRecords
		if len(recent) > recentRecordsPerSubject {
			recent = recent[:recentRecordsPerSubject]
		}

		out = append(out, SubjectAttendance{
			Subject:        &subject,
			TotalClasses:   len(subjectRecords),
			PresentClasses: present,
			Percentage:     percentage,
			Records:        recent,
		})
	}
	return out, nil
}
