package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/HimanshuAlien/college-management-system/internal/model"
	"github.com/HimanshuAlien/college-management-system/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByIDWithRefs(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindActiveByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, filter repository.UserFilter) ([]model.User, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) Search(ctx context.Context, query string, limit int) ([]model.User, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) ListTeachers(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) ListRecent(ctx context.Context, limit int) ([]model.User, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) ListStudentsByClass(ctx context.Context, classID uint) ([]model.User, error) {
	args := m.Called(ctx, classID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) CountActiveByRole(ctx context.Context, role model.Role) (int64, error) {
	args := m.Called(ctx, role)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) CountActiveStudentsInClass(ctx context.Context, classID uint) (int64, error) {
	args := m.Called(ctx, classID)
	return args.Get(0).(int64), args.Error(1)
}

// MockClassRepository is a mock implementation of ClassRepository.
type MockClassRepository struct {
	mock.Mock
}

func (m *MockClassRepository) Create(ctx context.Context, class *model.Class) error {
	args := m.Called(ctx, class)
	return args.Error(0)
}

func (m *MockClassRepository) Update(ctx context.Context, class *model.Class) error {
	args := m.Called(ctx, class)
	return args.Error(0)
}

func (m *MockClassRepository) FindByID(ctx context.Context, id uint) (*model.Class, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Class), args.Error(1)
}

func (m *MockClassRepository) FindByIdentity(ctx context.Context, branch string, year int, section string) (*model.Class, error) {
	args := m.Called(ctx, branch, year, section)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Class), args.Error(1)
}

func (m *MockClassRepository) ListActive(ctx context.Context) ([]model.Class, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Class), args.Error(1)
}

func (m *MockClassRepository) CountActive(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockClassRepository) AdjustStudentCount(ctx context.Context, id uint, delta int) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

func (m *MockClassRepository) Deactivate(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSubjectRepository is a mock implementation of SubjectRepository.
type MockSubjectRepository struct {
	mock.Mock
}

func (m *MockSubjectRepository) Create(ctx context.Context, subject *model.Subject) error {
	args := m.Called(ctx, subject)
	return args.Error(0)
}

func (m *MockSubjectRepository) Update(ctx context.Context, subject *model.Subject) error {
	args := m.Called(ctx, subject)
	return args.Error(0)
}

func (m *MockSubjectRepository) FindByID(ctx context.Context, id uint) (*model.Subject, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Subject), args.Error(1)
}

func (m *MockSubjectRepository) FindByCode(ctx context.Context, code string) (*model.Subject, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Subject), args.Error(1)
}

func (m *MockSubjectRepository) FindOwned(ctx context.Context, id, teacherID uint) (*model.Subject, error) {
	args := m.Called(ctx, id, teacherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Subject), args.Error(1)
}

func (m *MockSubjectRepository) ListActive(ctx context.Context, classID uint) ([]model.Subject, error) {
	args := m.Called(ctx, classID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Subject), args.Error(1)
}

func (m *MockSubjectRepository) ListByTeacher(ctx context.Context, teacherID uint) ([]model.Subject, error) {
	args := m.Called(ctx, teacherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Subject), args.Error(1)
}

func (m *MockSubjectRepository) ListByClass(ctx context.Context, classID uint) ([]model.Subject, error) {
	args := m.Called(ctx, classID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Subject), args.Error(1)
}

func (m *MockSubjectRepository) CountActive(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockAssignmentRepository is a mock implementation of AssignmentRepository.
type MockAssignmentRepository struct {
	mock.Mock
}

func (m *MockAssignmentRepository) Create(ctx context.Context, assignment *model.Assignment) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

func (m *MockAssignmentRepository) FindByID(ctx context.Context, id uint) (*model.Assignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) FindOwned(ctx context.Context, id, teacherID uint) (*model.Assignment, error) {
	args := m.Called(ctx, id, teacherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) FindOwnedWithSubmissions(ctx context.Context, id, teacherID uint) (*model.Assignment, error) {
	args := m.Called(ctx, id, teacherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAssignmentRepository) ListByTeacher(ctx context.Context, teacherID, subjectID uint) ([]model.Assignment, error) {
	args := m.Called(ctx, teacherID, subjectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) ListRecentByTeacher(ctx context.Context, teacherID uint, limit int) ([]model.Assignment, error) {
	args := m.Called(ctx, teacherID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) ListBySubjects(ctx context.Context, subjectIDs []uint) ([]model.Assignment, error) {
	args := m.Called(ctx, subjectIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) ListUpcomingBySubjects(ctx context.Context, subjectIDs []uint, after time.Time, limit int) ([]model.Assignment, error) {
	args := m.Called(ctx, subjectIDs, after, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) CreateSubmission(ctx context.Context, submission *model.Submission) error {
	args := m.Called(ctx, submission)
	return args.Error(0)
}

func (m *MockAssignmentRepository) UpdateSubmission(ctx context.Context, submission *model.Submission) error {
	args := m.Called(ctx, submission)
	return args.Error(0)
}

func (m *MockAssignmentRepository) FindSubmission(ctx context.Context, assignmentID, studentID uint) (*model.Submission, error) {
	args := m.Called(ctx, assignmentID, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Submission), args.Error(1)
}

func (m *MockAssignmentRepository) FindSubmissionByID(ctx context.Context, id uint) (*model.Submission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Submission), args.Error(1)
}

// MockGradeRepository is a mock implementation of GradeRepository.
type MockGradeRepository struct {
	mock.Mock
}

func (m *MockGradeRepository) Create(ctx context.Context, grade *model.Grade) error {
	args := m.Called(ctx, grade)
	return args.Error(0)
}

func (m *MockGradeRepository) Update(ctx context.Context, grade *model.Grade) error {
	args := m.Called(ctx, grade)
	return args.Error(0)
}

func (m *MockGradeRepository) FindByStudentAndSubject(ctx context.Context, studentID uint, subject string) (*model.Grade, error) {
	args := m.Called(ctx, studentID, subject)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Grade), args.Error(1)
}

func (m *MockGradeRepository) ListByStudent(ctx context.Context, studentID uint) ([]model.Grade, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Grade), args.Error(1)
}

// MockMessageRepository is a mock implementation of MessageRepository.
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(ctx context.Context, message *model.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockMessageRepository) FindByID(ctx context.Context, id uint) (*model.Message, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Message), args.Error(1)
}

func (m *MockMessageRepository) ListByUser(ctx context.Context, userID uint) ([]model.Message, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Message), args.Error(1)
}

// MockAttendanceRepository is a mock implementation of AttendanceRepository.
type MockAttendanceRepository struct {
	mock.Mock
}

func (m *MockAttendanceRepository) Upsert(ctx context.Context, attendance *model.Attendance) error {
	args := m.Called(ctx, attendance)
	return args.Error(0)
}

func (m *MockAttendanceRepository) ListByStudent(ctx context.Context, studentID uint, subjectIDs []uint) ([]model.Attendance, error) {
	args := m.Called(ctx, studentID, subjectIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Attendance), args.Error(1)
}

func (m *MockAttendanceRepository) ListBySubjectOnDate(ctx context.Context, subjectID uint, date time.Time) ([]model.Attendance, error) {
	args := m.Called(ctx, subjectID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Attendance), args.Error(1)
}
