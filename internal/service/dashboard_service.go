package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/HimanshuAlien/college-management-system/internal/cache"
	apperrors "github.com/HimanshuAlien/college-management-system/internal/errors"
	"github.com/HimanshuAlien/college-management-system/internal/model"
	"github.com/HimanshuAlien/college-management-system/internal/repository"
)

const (
	adminStatsKey = "dashboard:admin"
	adminStatsTTL = time.Minute

	recentUsersLimit       = 10
	recentAssignmentsLimit = 5
)

// AdminDashboard aggregates system-wide counts for the admin landing page.
type AdminDashboard struct {
	TotalStudents int64        `json:"totalStudents"`
	TotalTeachers int64        `json:"totalTeachers"`
	TotalClasses  int64        `json:"totalClasses"`
	TotalSubjects int64        `json:"totalSubjects"`
	RecentUsers   []model.User `json:"recentUsers"`
}

// TeacherDashboard aggregates a teacher's subjects and recent assignments.
type TeacherDashboard struct {
	TotalSubjects     int                `json:"totalSubjects"`
	TotalStudents     int                `json:"totalStudents"`
	TotalClasses      int                `json:"totalClasses"`
	Subjects          []model.Subject    `json:"subjects"`
	RecentAssignments []model.Assignment `json:"recentAssignments"`
}

// StudentDashboard aggregates a student's class, attendance and upcoming work.
type StudentDashboard struct {
	Student             *model.User         `json:"student"`
	Subjects            []model.Subject     `json:"subjects"`
	OverallAttendance   int                 `json:"overallAttendance"`
	AttendanceBySubject []SubjectAttendance `json:"attendanceBySubject"`
	RecentAssignments   []model.Assignment  `json:"recentAssignments"`
	PendingAssignments  int                 `json:"pendingAssignments"`
}

// DashboardService builds the role-specific landing pages.
type DashboardService interface {
	Admin(ctx context.Context) (*AdminDashboard, error)
	Teacher(ctx context.Context, teacherID uint) (*TeacherDashboard, error)
	Student(ctx context.Context, studentID uint) (*StudentDashboard, error)
}

type dashboardService struct {
	users       repository.UserRepository
	classes     repository.ClassRepository
	subjects    repository.SubjectRepository
	assignments repository.AssignmentRepository
	attendance  AttendanceService
	cache       *cache.Client
	now         func() time.Time
}

// NewDashboardService builds a DashboardService.
func NewDashboardService(
	users repository.UserRepository,
	classes repository.ClassRepository,
	subjects repository.SubjectRepository,
	assignments repository.AssignmentRepository,
	attendance AttendanceService,
	cacheClient *cache.Client,
) DashboardService {
	return &dashboardService{
		users:       users,
		classes:     classes,
		subjects:    subjects,
		assignments: assignments,
		attendance:  attendance,
		cache:       cacheClient,
		now:         time.Now,
	}
}

// Admin serves the system-wide stats, cached briefly since every admin page
// load hits it.
func (s *dashboardService) Admin(ctx context.Context) (*AdminDashboard, error) {
	var cached AdminDashboard
	if s.cache.GetJSON(ctx, adminStatsKey, &cached) {
		return &cached, nil
	}

	students, err := s.users.CountActiveByRole(ctx, model.RoleStudent)
	if err != nil {
		return nil, fmt.Errorf("count students: %w", err)
	}
	teachers, err := s.users.CountActiveByRole(ctx, model.RoleTeacher)
	if err != nil {
		return nil, fmt.Errorf("count teachers: %w", err)
	}
	classes, err := s.classes.CountActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("count classes: %w", err)
	}
	subjects, err := s.subjects.CountActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("count subjects: %w", err)
	}
	recent, err := s.users.ListRecent(ctx, recentUsersLimit)
	if err != nil {
		return nil, fmt.Errorf("list recent users: %w", err)
	}

	dashboard := &AdminDashboard{
		TotalStudents: students,
		TotalTeachers: teachers,
		TotalClasses:  classes,
		TotalSubjects: subjects,
		RecentUsers:   recent,
	}
	s.cache.SetJSON(ctx, adminStatsKey, dashboard, adminStatsTTL)
	return dashboard, nil
}

func (s *dashboardService) Teacher(ctx context.Context, teacherID uint) (*TeacherDashboard, error) {
	subjects, err := s.subjects.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}

	totalStudents := 0
	for _, subject := range subjects {
		if subject.Class != nil {
			totalStudents += subject.Class.TotalStudents
		}
	}

	recent, err := s.assignments.ListRecentByTeacher(ctx, teacherID, recentAssignmentsLimit)
	if err != nil {
		return nil, fmt.Errorf("list recent assignments: %w", err)
	}

	return &TeacherDashboard{
		TotalSubjects:     len(subjects),
		TotalStudents:     totalStudents,
		TotalClasses:      len(subjects),
		Subjects:          subjects,
		RecentAssignments: recent,
	}, nil
}

func (s *dashboardService) Student(ctx context.Context, studentID uint) (*StudentDashboard, error) {
	student, err := s.users.FindByIDWithRefs(ctx, studentID)
	if err != nil {
		return nil, apperrors.ErrUserNotFound
	}

	dashboard := &StudentDashboard{Student: student}
	if student.ClassID == nil {
		return dashboard, nil
	}

	subjects, err := s.subjects.ListByClass(ctx, *student.ClassID)
	if err != nil {
		return nil, fmt.Errorf("list class subjects: %w", err)
	}
	dashboard.Subjects = subjects

	summary, err := s.attendance.StudentSummary(ctx, studentID)
	if err != nil {
		return nil, err
	}
	dashboard.AttendanceBySubject = summary

	totalClasses, totalPresent := 0, 0
	for _, entry := range summary {
		totalClasses += entry.TotalClasses
		totalPresent += entry.PresentClasses
	}
	if totalClasses > 0 {
		dashboard.OverallAttendance = int(math.Round(float64(totalPresent) / float64(totalClasses) * 100))
	}

	subjectIDs := make([]uint, 0, len(subjects))
	for _, subject := range subjects {
		subjectIDs = append(subjectIDs, subject.ID)
	}
	upcoming, err := s.assignments.ListUpcomingBySubjects(ctx, subjectIDs, s.now(), recentAssignmentsLimit)
	if err != nil {
		return nil, fmt.Errorf("list upcoming assignments: %w", err)
	}
	dashboard.RecentAssignments = upcoming
	dashboard.PendingAssignments = len(upcoming)

	return dashboard, nil
}
