package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "github.com/HimanshuAlien/college-management-system/internal/errors"
	"github.com/HimanshuAlien/college-management-system/internal/model"
)

func TestAssignmentService_Create_Ownership(t *testing.T) {
	due := time.Now().Add(48 * time.Hour)

	tests := []struct {
		name          string
		setupMock     func(*MockAssignmentRepository, *MockSubjectRepository)
		expectedError error
	}{
		{
			name: "teacher owns the subject",
			setupMock: func(ma *MockAssignmentRepository, ms *MockSubjectRepository) {
				ms.On("FindOwned", mock.Anything, uint(5), uint(1)).Return(&model.Subject{ID: 5, TeacherID: ptrUint(1)}, nil)
				ma.On("Create", mock.Anything, mock.AnythingOfType("*model.Assignment")).Return(nil)
				ma.On("FindByID", mock.Anything, mock.AnythingOfType("uint")).Return(&model.Assignment{
					Title: "Essay", SubjectID: 5, TeacherID: 1, MaxMarks: 100,
				}, nil)
			},
		},
		{
			name: "teacher does not own the subject",
			setupMock: func(ma *MockAssignmentRepository, ms *MockSubjectRepository) {
				ms.On("FindOwned", mock.Anything, uint(5), uint(1)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrNotOwner,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockAssignments := new(MockAssignmentRepository)
			mockSubjects := new(MockSubjectRepository)
			tt.setupMock(mockAssignments, mockSubjects)

			service := NewAssignmentService(mockAssignments, mockSubjects, new(MockUserRepository))
			assignment, err := service.Create(context.Background(), 1, CreateAssignmentInput{
				SubjectID: 5, Title: "Essay", DueDate: due, MaxMarks: 100,
			})

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, assignment)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, assignment)
			}

			mockAssignments.AssertExpectations(t)
			mockSubjects.AssertExpectations(t)
		})
	}
}

func TestAssignmentService_Submit(t *testing.T) {
	due := time.Date(2025, 3, 1, 23, 59, 0, 0, time.UTC)

	tests := []struct {
		name          string
		now           time.Time
		setupMock     func(*MockAssignmentRepository)
		wantLate      bool
		expectedError error
	}{
		{
			name: "on-time submission",
			now:  due.Add(-time.Hour),
			setupMock: func(m *MockAssignmentRepository) {
				m.On("FindByID", mock.Anything, uint(3)).Return(&model.Assignment{ID: 3, DueDate: due}, nil)
				m.On("FindSubmission", mock.Anything, uint(3), uint(1)).Return(nil, gorm.ErrRecordNotFound)
				m.On("CreateSubmission", mock.Anything, mock.MatchedBy(func(s *model.Submission) bool {
					return !s.IsLate
				})).Return(nil)
			},
		},
		{
			name: "late submission is accepted but flagged",
			now:  due.Add(time.Hour),
			setupMock: func(m *MockAssignmentRepository) {
				m.On("FindByID", mock.Anything, uint(3)).Return(&model.Assignment{ID: 3, DueDate: due}, nil)
				m.On("FindSubmission", mock.Anything, uint(3), uint(1)).Return(nil, gorm.ErrRecordNotFound)
				m.On("CreateSubmission", mock.Anything, mock.MatchedBy(func(s *model.Submission) bool {
					return s.IsLate
				})).Return(nil)
			},
			wantLate: true,
		},
		{
			name: "second submission is refused",
			now:  due.Add(-time.Hour),
			setupMock: func(m *MockAssignmentRepository) {
				m.On("FindByID", mock.Anything, uint(3)).Return(&model.Assignment{ID: 3, DueDate: due}, nil)
				m.On("FindSubmission", mock.Anything, uint(3), uint(1)).Return(&model.Submission{ID: 9}, nil)
			},
			expectedError: apperrors.ErrAlreadySubmitted,
		},
		{
			name: "unknown assignment",
			now:  due,
			setupMock: func(m *MockAssignmentRepository) {
				m.On("FindByID", mock.Anything, uint(3)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrAssignmentNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockAssignments := new(MockAssignmentRepository)
			tt.setupMock(mockAssignments)

			svc := NewAssignmentService(mockAssignments, new(MockSubjectRepository), new(MockUserRepository)).(*assignmentService)
			svc.now = func() time.Time { return tt.now }

			err := svc.Submit(context.Background(), 1, 3, "my answer")

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
			} else {
				assert.NoError(t, err)
			}

			mockAssignments.AssertExpectations(t)
		})
	}
}

func TestAssignmentService_GradeSubmission(t *testing.T) {
	tests := []struct {
		name          string
		marks         int
		setupMock     func(*MockAssignmentRepository)
		expectedError error
	}{
		{
			name:  "valid grade",
			marks: 85,
			setupMock: func(m *MockAssignmentRepository) {
				m.On("FindOwned", mock.Anything, uint(3), uint(1)).Return(&model.Assignment{ID: 3, MaxMarks: 100}, nil)
				m.On("FindSubmissionByID", mock.Anything, uint(9)).Return(&model.Submission{ID: 9, AssignmentID: 3}, nil)
				m.On("UpdateSubmission", mock.Anything, mock.AnythingOfType("*model.Submission")).Return(nil)
			},
		},
		{
			name:  "marks above maximum",
			marks: 120,
			setupMock: func(m *MockAssignmentRepository) {
				m.On("FindOwned", mock.Anything, uint(3), uint(1)).Return(&model.Assignment{ID: 3, MaxMarks: 100}, nil)
			},
			expectedError: apperrors.ErrValidation,
		},
		{
			name:  "submission belongs to another assignment",
			marks: 50,
			setupMock: func(m *MockAssignmentRepository) {
				m.On("FindOwned", mock.Anything, uint(3), uint(1)).Return(&model.Assignment{ID: 3, MaxMarks: 100}, nil)
				m.On("FindSubmissionByID", mock.Anything, uint(9)).Return(&model.Submission{ID: 9, AssignmentID: 4}, nil)
			},
			expectedError: apperrors.ErrSubmissionNotFound,
		},
		{
			name:  "assignment not owned",
			marks: 50,
			setupMock: func(m *MockAssignmentRepository) {
				m.On("FindOwned", mock.Anything, uint(3), uint(1)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrAssignmentNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockAssignments := new(MockAssignmentRepository)
			tt.setupMock(mockAssignments)

			service := NewAssignmentService(mockAssignments, new(MockSubjectRepository), new(MockUserRepository))
			submission, err := service.GradeSubmission(context.Background(), 1, 3, 9, GradeInput{Marks: tt.marks, Feedback: "ok"})

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, submission)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, submission)
				assert.True(t, submission.Graded())
				assert.Equal(t, tt.marks, *submission.GradeMarks)
				assert.Equal(t, uint(1), *submission.GradedByID)
			}

			mockAssignments.AssertExpectations(t)
		})
	}
}

func ptrUint(v uint) *uint { return &v }
