package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "github.com/HimanshuAlien/college-management-system/internal/errors"
	"github.com/HimanshuAlien/college-management-system/internal/model"
	"github.com/HimanshuAlien/college-management-system/internal/repository"
)

const searchMinLength = 2

// Pagination describes one page of an admin listing.
type Pagination struct {
	Current int   `json:"current"`
	Pages   int   `json:"pages"`
	Total   int64 `json:"total"`
}

// CreateUserInput carries an admin user-creation payload.
type CreateUserInput struct {
	Name       string
	Email      string
	Password   string
	Role       model.Role
	RollNumber string
	Branch     string
	Year       int
	ClassID    *uint
	Department string
	Phone      string
	Address    string
}

// UpdateUserInput carries an admin user-update payload. Nil pointers leave the
// field untouched.
type UpdateUserInput struct {
	Name       *string
	Email      *string
	RollNumber *string
	Branch     *string
	Year       *int
	ClassID    *uint
	Department *string
	Phone      *string
	Address    *string
}

// UserService exposes admin user management and shared user search.
type UserService interface {
	List(ctx context.Context, filter repository.UserFilter) ([]model.User, Pagination, error)
	Create(ctx context.Context, in CreateUserInput) (*model.User, error)
	Update(ctx context.Context, id uint, in UpdateUserInput) (*model.User, error)
	// Delete deactivates the user; records are never removed.
	Delete(ctx context.Context, id uint) error
	Teachers(ctx context.Context) ([]model.User, error)
	Search(ctx context.Context, query string) ([]model.User, error)
}

type userService struct {
	users   repository.UserRepository
	classes repository.ClassRepository
}

// NewUserService builds a UserService.
func NewUserService(users repository.UserRepository, classes repository.ClassRepository) UserService {
	return &userService{users: users, classes: classes}
}

func (s *userService) List(ctx context.Context, filter repository.UserFilter) ([]model.User, Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}

	users, total, err := s.users.List(ctx, filter)
	if err != nil {
		return nil, Pagination{}, fmt.Errorf("list users: %w", err)
	}

	pages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return users, Pagination{Current: filter.Page, Pages: pages, Total: total}, nil
}

func (s *userService) Create(ctx context.Context, in CreateUserInput) (*model.User, error) {
	if !in.Role.Valid() {
		return nil, apperrors.ErrValidation
	}

	existing, err := s.users.FindByEmail(ctx, in.Email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrEmailTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hashed),
		Role:         in.Role,
		ProfileImage: model.DefaultProfileImage,
		RollNumber:   in.RollNumber,
		Branch:       in.Branch,
		Year:         in.Year,
		ClassID:      in.ClassID,
		Department:   in.Department,
		Phone:        in.Phone,
		Address:      in.Address,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	// Counter update is a separate write; a crash in between leaves it stale.
	if user.Role == model.RoleStudent && user.ClassID != nil {
		_ = s.classes.AdjustStudentCount(ctx, *user.ClassID, 1)
	}

	return s.users.FindByIDWithRefs(ctx, user.ID)
}

func (s *userService) Update(ctx context.Context, id uint, in UpdateUserInput) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.ErrUserNotFound
	}

	oldClassID := user.ClassID

	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Email != nil && *in.Email != user.Email {
		if other, err := s.users.FindByEmail(ctx, *in.Email); err == nil && other != nil && other.ID != id {
			return nil, apperrors.ErrEmailTaken
		}
		user.Email = *in.Email
	}
	if in.RollNumber != nil {
		user.RollNumber = *in.RollNumber
	}
	if in.Branch != nil {
		user.Branch = *in.Branch
	}
	if in.Year != nil {
		user.Year = *in.Year
	}
	if in.ClassID != nil {
		user.ClassID = in.ClassID
	}
	if in.Department != nil {
		user.Department = *in.Department
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if in.Address != nil {
		user.Address = *in.Address
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	if user.Role == model.RoleStudent && in.ClassID != nil {
		if oldClassID == nil || *oldClassID != *in.ClassID {
			if oldClassID != nil {
				_ = s.classes.AdjustStudentCount(ctx, *oldClassID, -1)
			}
			_ = s.classes.AdjustStudentCount(ctx, *in.ClassID, 1)
		}
	}

	return s.users.FindByIDWithRefs(ctx, id)
}

func (s *userService) Delete(ctx context.Context, id uint) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return apperrors.ErrUserNotFound
	}

	user.IsActive = false
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("deactivate user: %w", err)
	}

	if user.Role == model.RoleStudent && user.ClassID != nil {
		_ = s.classes.AdjustStudentCount(ctx, *user.ClassID, -1)
	}
	return nil
}

func (s *userService) Teachers(ctx context.Context) ([]model.User, error) {
	return s.users.ListTeachers(ctx)
}

// Search matches users by name or email. Queries shorter than two characters
// return an empty result instead of scanning everything.
func (s *userService) Search(ctx context.Context, query string) ([]model.User, error) {
	if len(query) < searchMinLength {
		return []model.User{}, nil
	}
	return s.users.Search(ctx, query, 10)
}
