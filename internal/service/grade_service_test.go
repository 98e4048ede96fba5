package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "github.com/HimanshuAlien/college-management-system/internal/errors"
	"github.com/HimanshuAlien/college-management-system/internal/model"
)

func TestGradePoint(t *testing.T) {
	tests := []struct {
		percentage float64
		want       int
	}{
		{100, 10},
		{90, 10},
		{89.9, 9},
		{80, 9},
		{79.9, 8},
		{70, 8},
		{60, 7},
		{50, 6},
		{40, 5},
		{39.9, 0},
		{0, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, GradePoint(tt.percentage), "percentage %.1f", tt.percentage)
	}
}

func TestCGPA(t *testing.T) {
	tests := []struct {
		name        string
		grades      []model.Grade
		wantCGPA    float64
		wantCredits int
	}{
		{
			name:        "no grades",
			grades:      nil,
			wantCGPA:    0,
			wantCredits: 0,
		},
		{
			name: "single subject",
			grades: []model.Grade{
				{Credits: 4, GradePoint: 9},
			},
			wantCGPA:    9,
			wantCredits: 4,
		},
		{
			name: "credit weighting",
			grades: []model.Grade{
				{Credits: 4, GradePoint: 10},
				{Credits: 2, GradePoint: 7},
			},
			wantCGPA:    9,
			wantCredits: 6,
		},
		{
			name: "failed subject still counts credits",
			grades: []model.Grade{
				{Credits: 3, GradePoint: 8},
				{Credits: 3, GradePoint: 0},
			},
			wantCGPA:    4,
			wantCredits: 6,
		},
		{
			name: "rounding to two decimals",
			grades: []model.Grade{
				{Credits: 1, GradePoint: 10},
				{Credits: 1, GradePoint: 9},
				{Credits: 1, GradePoint: 9},
			},
			wantCGPA:    9.33,
			wantCredits: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cgpa, credits := CGPA(tt.grades)
			assert.Equal(t, tt.wantCGPA, cgpa)
			assert.Equal(t, tt.wantCredits, credits)
		})
	}
}

func TestGradeService_Record(t *testing.T) {
	tests := []struct {
		name          string
		input         RecordGradeInput
		setupMock     func(*MockGradeRepository)
		wantCGPA      float64
		expectedError error
	}{
		{
			name:  "new subject result",
			input: RecordGradeInput{Subject: "Maths", SubjectCode: "MA101", Credits: 4, Percentage: 85},
			setupMock: func(m *MockGradeRepository) {
				m.On("FindByStudentAndSubject", mock.Anything, uint(1), "Maths").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Grade")).Return(nil)
				m.On("ListByStudent", mock.Anything, uint(1)).Return([]model.Grade{
					{Subject: "Maths", Credits: 4, GradePoint: 9},
				}, nil)
			},
			wantCGPA: 9,
		},
		{
			name:  "re-recording updates the existing row",
			input: RecordGradeInput{Subject: "Maths", SubjectCode: "MA101", Credits: 4, Percentage: 92},
			setupMock: func(m *MockGradeRepository) {
				m.On("FindByStudentAndSubject", mock.Anything, uint(1), "Maths").Return(&model.Grade{
					ID: 7, StudentID: 1, Subject: "Maths", Credits: 4, Percentage: 85, GradePoint: 9,
				}, nil)
				m.On("Update", mock.Anything, mock.AnythingOfType("*model.Grade")).Return(nil)
				m.On("ListByStudent", mock.Anything, uint(1)).Return([]model.Grade{
					{Subject: "Maths", Credits: 4, GradePoint: 10},
				}, nil)
			},
			wantCGPA: 10,
		},
		{
			name:          "percentage out of range",
			input:         RecordGradeInput{Subject: "Maths", SubjectCode: "MA101", Credits: 4, Percentage: 105},
			setupMock:     func(m *MockGradeRepository) {},
			expectedError: apperrors.ErrValidation,
		},
		{
			name:          "zero credits",
			input:         RecordGradeInput{Subject: "Maths", SubjectCode: "MA101", Credits: 0, Percentage: 80},
			setupMock:     func(m *MockGradeRepository) {},
			expectedError: apperrors.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockGradeRepository)
			tt.setupMock(mockRepo)

			service := NewGradeService(mockRepo)
			grade, cgpa, err := service.Record(context.Background(), 1, tt.input)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, grade)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, grade)
				assert.Equal(t, GradePoint(tt.input.Percentage), grade.GradePoint)
				assert.Equal(t, tt.wantCGPA, cgpa)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}
