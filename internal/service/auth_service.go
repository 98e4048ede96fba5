package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/HimanshuAlien/college-management-system/internal/auth"
	apperrors "github.com/HimanshuAlien/college-management-system/internal/errors"
	"github.com/HimanshuAlien/college-management-system/internal/model"
	"github.com/HimanshuAlien/college-management-system/internal/repository"
)

const bcryptCost = 12

// ErrInvalidCredentials is returned when email or password is incorrect, or
// when the account has been deactivated. One error for all three cases.
var ErrInvalidCredentials = errors.New("Invalid credentials")

// RegisterInput carries a registration payload. Role-specific fields are
// required only for the matching role.
type RegisterInput struct {
	Name       string
	Email      string
	Password   string
	Role       model.Role
	RollNumber string
	Branch     string
	Year       int
	ClassID    *uint
	Department string
}

// ProfileUpdateInput carries the self-service profile fields a user may change.
type ProfileUpdateInput struct {
	Name  string
	Email string
	Phone string
}

// AuthService handles registration, login and profile operations.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (token string, user *model.User, err error)
	Login(ctx context.Context, email, password string) (token string, user *model.User, err error)
	Me(ctx context.Context, userID uint) (*model.User, error)
	UpdateProfile(ctx context.Context, userID uint, in ProfileUpdateInput) (*model.User, error)
}

type authService struct {
	users   repository.UserRepository
	classes repository.ClassRepository
	tokens  *auth.TokenService
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, classes repository.ClassRepository, tokens *auth.TokenService) AuthService {
	return &authService{users: users, classes: classes, tokens: tokens}
}

// Register creates a user with a hashed password and issues a token for the
// new account.
func (s *authService) Register(ctx context.Context, in RegisterInput) (string, *model.User, error) {
	if err := validateRegistration(in); err != nil {
		return "", nil, err
	}

	existing, err := s.users.FindByEmail(ctx, in.Email)
	if err == nil && existing != nil {
		return "", nil, apperrors.ErrEmailTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, fmt.Errorf("check user existence: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hashed),
		Role:         in.Role,
		ProfileImage: model.DefaultProfileImage,
		IsActive:     true,
	}
	switch in.Role {
	case model.RoleStudent:
		user.RollNumber = in.RollNumber
		user.Branch = in.Branch
		user.Year = in.Year
		user.ClassID = in.ClassID
	case model.RoleTeacher:
		user.Department = in.Department
	}

	if err := s.users.Create(ctx, user); err != nil {
		return "", nil, fmt.Errorf("create user: %w", err)
	}
	if user.Role == model.RoleStudent && user.ClassID != nil {
		// Counter drift is tolerated; listings recount live.
		_ = s.classes.AdjustStudentCount(ctx, *user.ClassID, 1)
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}

// Login authenticates an active account and returns a fresh token. Unknown
// email, wrong password and deactivated account are indistinguishable to the
// caller.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.users.FindActiveByEmail(ctx, email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}

// Me returns the caller's record with class and subject references resolved.
func (s *authService) Me(ctx context.Context, userID uint) (*model.User, error) {
	user, err := s.users.FindByIDWithRefs(ctx, userID)
	if err != nil {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile changes the caller's self-service fields.
func (s *authService) UpdateProfile(ctx context.Context, userID uint, in ProfileUpdateInput) (*model.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, apperrors.ErrUserNotFound
	}

	if in.Name != "" {
		user.Name = in.Name
	}
	if in.Email != "" && in.Email != user.Email {
		if other, err := s.users.FindByEmail(ctx, in.Email); err == nil && other != nil && other.ID != userID {
			return nil, apperrors.ErrEmailTaken
		}
		user.Email = in.Email
	}
	if in.Phone != "" {
		user.Phone = in.Phone
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return user, nil
}

func validateRegistration(in RegisterInput) error {
	if !in.Role.Valid() {
		return apperrors.ErrValidation
	}
	switch in.Role {
	case model.RoleStudent:
		if in.RollNumber == "" || in.Branch == "" || in.Year == 0 {
			return apperrors.ErrValidation
		}
	case model.RoleTeacher:
		if in.Department == "" {
			return apperrors.ErrValidation
		}
	}
	return nil
}
