package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "github.com/HimanshuAlien/college-management-system/internal/errors"
	"github.com/HimanshuAlien/college-management-system/internal/model"
)

func TestAttendanceService_Mark(t *testing.T) {
	clock := time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)
	kolkata := time.FixedZone("IST", 5*3600+1800)

	tests := []struct {
		name          string
		teacherID     uint
		input         MarkAttendanceInput
		setupMock     func(att *MockAttendanceRepository, subjects *MockSubjectRepository)
		expectedDate  time.Time
		expectedError error
	}{
		{
			name:      "zero date defaults to today at UTC midnight",
			teacherID: 2,
			input: MarkAttendanceInput{
				StudentID: 5,
				SubjectID: 11,
				Status:    model.AttendancePresent,
			},
			setupMock: func(att *MockAttendanceRepository, subjects *MockSubjectRepository) {
				subjects.On("FindOwned", mock.Anything, uint(11), uint(2)).Return(&model.Subject{ID: 11}, nil)
				att.On("Upsert", mock.Anything, mock.AnythingOfType("*model.Attendance")).Return(nil)
			},
			expectedDate: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "offset date keys on its own calendar day",
			teacherID: 2,
			input: MarkAttendanceInput{
				StudentID: 5,
				SubjectID: 11,
				Date:      time.Date(2024, 3, 5, 1, 30, 0, 0, kolkata),
				Status:    model.AttendanceLate,
			},
			setupMock: func(att *MockAttendanceRepository, subjects *MockSubjectRepository) {
				subjects.On("FindOwned", mock.Anything, uint(11), uint(2)).Return(&model.Subject{ID: 11}, nil)
				att.On("Upsert", mock.Anything, mock.AnythingOfType("*model.Attendance")).Return(nil)
			},
			expectedDate: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "morning and evening marks share one day key",
			teacherID: 2,
			input: MarkAttendanceInput{
				StudentID: 5,
				SubjectID: 11,
				Date:      time.Date(2024, 3, 5, 23, 59, 0, 0, time.UTC),
				Status:    model.AttendanceAbsent,
			},
			setupMock: func(att *MockAttendanceRepository, subjects *MockSubjectRepository) {
				subjects.On("FindOwned", mock.Anything, uint(11), uint(2)).Return(&model.Subject{ID: 11}, nil)
				att.On("Upsert", mock.Anything, mock.AnythingOfType("*model.Attendance")).Return(nil)
			},
			expectedDate: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "subject not owned by teacher",
			teacherID: 3,
			input: MarkAttendanceInput{
				StudentID: 5,
				SubjectID: 11,
				Status:    model.AttendancePresent,
			},
			setupMock: func(att *MockAttendanceRepository, subjects *MockSubjectRepository) {
				subjects.On("FindOwned", mock.Anything, uint(11), uint(3)).Return(nil, errors.New("record not found"))
			},
			expectedError: apperrors.ErrNotOwner,
		},
		{
			name:      "unknown status rejected",
			teacherID: 2,
			input: MarkAttendanceInput{
				StudentID: 5,
				SubjectID: 11,
				Status:    model.AttendanceStatus("excused"),
			},
			setupMock:     func(att *MockAttendanceRepository, subjects *MockSubjectRepository) {},
			expectedError: apperrors.ErrValidation,
		},
		{
			name:      "missing student rejected",
			teacherID: 2,
			input: MarkAttendanceInput{
				SubjectID: 11,
				Status:    model.AttendancePresent,
			},
			setupMock:     func(att *MockAttendanceRepository, subjects *MockSubjectRepository) {},
			expectedError: apperrors.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			att := new(MockAttendanceRepository)
			subjects := new(MockSubjectRepository)
			users := new(MockUserRepository)
			tt.setupMock(att, subjects)

			svc := NewAttendanceService(att, subjects, users).(*attendanceService)
			svc.now = func() time.Time { return clock }

			record, err := svc.Mark(context.Background(), tt.teacherID, tt.input)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, record)
			} else {
				assert.NoError(t, err)
				assert.True(t, record.Date.Equal(tt.expectedDate), "got day key %v", record.Date)
				assert.Equal(t, tt.input.StudentID, record.StudentID)
				assert.Equal(t, tt.input.Status, record.Status)
				assert.Equal(t, tt.teacherID, record.MarkedByID)
				assert.Equal(t, clock, record.MarkedAt)
			}
			att.AssertExpectations(t)
			subjects.AssertExpectations(t)
		})
	}
}

func TestAttendanceService_StudentSummary(t *testing.T) {
	classID := uint(4)
	student := &model.User{ID: 5, Role: model.RoleStudent, ClassID: &classID}
	subjects := []model.Subject{{ID: 11, Name: "Algorithms"}, {ID: 12, Name: "Networks"}}
	records := []model.Attendance{
		{SubjectID: 11, Status: model.AttendancePresent},
		{SubjectID: 11, Status: model.AttendancePresent},
		{SubjectID: 11, Status: model.AttendanceAbsent},
	}

	att := new(MockAttendanceRepository)
	subjectRepo := new(MockSubjectRepository)
	users := new(MockUserRepository)

	users.On("FindByID", mock.Anything, uint(5)).Return(student, nil)
	subjectRepo.On("ListByClass", mock.Anything, classID).Return(subjects, nil)
	att.On("ListByStudent", mock.Anything, uint(5), []uint{11, 12}).Return(records, nil)

	svc := NewAttendanceService(att, subjectRepo, users)
	summary, err := svc.StudentSummary(context.Background(), 5)

	assert.NoError(t, err)
	assert.Len(t, summary, 2)
	assert.Equal(t, 3, summary[0].TotalClasses)
	assert.Equal(t, 2, summary[0].PresentClasses)
	assert.Equal(t, 67, summary[0].Percentage)
	assert.Equal(t, 0, summary[1].TotalClasses)
	assert.Equal(t, 0, summary[1].Percentage)
}

func TestAttendanceService_StudentSummary_NoClass(t *testing.T) {
	att := new(MockAttendanceRepository)
	subjectRepo := new(MockSubjectRepository)
	users := new(MockUserRepository)

	users.On("FindByID", mock.Anything, uint(8)).Return(&model.User{ID: 8, Role: model.RoleStudent}, nil)

	svc := NewAttendanceService(att, subjectRepo, users)
	summary, err := svc.StudentSummary(context.Background(), 8)

	assert.NoError(t, err)
	assert.Empty(t, summary)
}
