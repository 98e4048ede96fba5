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

func TestClassService_Create(t *testing.T) {
	tests := []struct {
		name          string
		input         CreateClassInput
		setupMock     func(*MockClassRepository)
		expectedError error
	}{
		{
			name:  "successful creation with default section",
			input: CreateClassInput{Name: "CSE Second Year", Branch: "CSE", Year: 2},
			setupMock: func(m *MockClassRepository) {
				m.On("FindByIdentity", mock.Anything, "CSE", 2, "A").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Class")).Return(nil)
				m.On("FindByID", mock.Anything, mock.AnythingOfType("uint")).Return(&model.Class{
					Name: "CSE Second Year", Branch: "CSE", Year: 2, Section: "A", IsActive: true,
				}, nil)
			},
		},
		{
			name:  "duplicate branch/year/section",
			input: CreateClassInput{Name: "CSE Second Year", Branch: "CSE", Year: 2, Section: "A"},
			setupMock: func(m *MockClassRepository) {
				m.On("FindByIdentity", mock.Anything, "CSE", 2, "A").Return(&model.Class{ID: 1}, nil)
			},
			expectedError: apperrors.ErrClassExists,
		},
		{
			name:          "year out of range",
			input:         CreateClassInput{Name: "CSE Fifth Year", Branch: "CSE", Year: 5},
			setupMock:     func(m *MockClassRepository) {},
			expectedError: apperrors.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockClasses := new(MockClassRepository)
			tt.setupMock(mockClasses)

			service := NewClassService(mockClasses, new(MockUserRepository))
			class, err := service.Create(context.Background(), tt.input)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, class)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, class)
				assert.Equal(t, "A", class.Section)
			}

			mockClasses.AssertExpectations(t)
		})
	}
}

func TestClassService_Delete(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(*MockClassRepository, *MockUserRepository)
		expectedError error
	}{
		{
			name: "empty class is deactivated",
			setupMock: func(mc *MockClassRepository, mu *MockUserRepository) {
				mc.On("FindByID", mock.Anything, uint(1)).Return(&model.Class{ID: 1}, nil)
				mu.On("CountActiveStudentsInClass", mock.Anything, uint(1)).Return(int64(0), nil)
				mc.On("Deactivate", mock.Anything, uint(1)).Return(nil)
			},
		},
		{
			name: "class with students is refused",
			setupMock: func(mc *MockClassRepository, mu *MockUserRepository) {
				mc.On("FindByID", mock.Anything, uint(1)).Return(&model.Class{ID: 1}, nil)
				mu.On("CountActiveStudentsInClass", mock.Anything, uint(1)).Return(int64(12), nil)
			},
			expectedError: apperrors.ErrClassHasStudents,
		},
		{
			name: "unknown class",
			setupMock: func(mc *MockClassRepository, mu *MockUserRepository) {
				mc.On("FindByID", mock.Anything, uint(1)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrClassNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockClasses := new(MockClassRepository)
			mockUsers := new(MockUserRepository)
			tt.setupMock(mockClasses, mockUsers)

			service := NewClassService(mockClasses, mockUsers)
			err := service.Delete(context.Background(), 1)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
			} else {
				assert.NoError(t, err)
			}

			mockClasses.AssertExpectations(t)
			mockUsers.AssertExpectations(t)
		})
	}
}

func TestClassService_List(t *testing.T) {
	mockClasses := new(MockClassRepository)
	mockUsers := new(MockUserRepository)

	mockClasses.On("ListActive", mock.Anything).Return([]model.Class{
		{ID: 1, Name: "CSE 3A", TotalStudents: 40},
		{ID: 2, Name: "ECE 2A", TotalStudents: 35},
	}, nil)
	// live counts disagree with the denormalized column; the live count wins
	mockUsers.On("CountActiveStudentsInClass", mock.Anything, uint(1)).Return(int64(38), nil)
	mockUsers.On("CountActiveStudentsInClass", mock.Anything, uint(2)).Return(int64(35), nil)

	service := NewClassService(mockClasses, mockUsers)
	classes, err := service.List(context.Background())

	assert.NoError(t, err)
	assert.Len(t, classes, 2)
	assert.Equal(t, int64(38), classes[0].StudentCount)
	assert.Equal(t, int64(35), classes[1].StudentCount)
}
