package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/HimanshuAlien/college-management-system/internal/model"
)

// UserFilter narrows admin user listings.
type UserFilter struct {
	Role   model.Role
	Search string
	Page   int
	Limit  int
}

// UserRepository defines persistence operations over users.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByIDWithRefs(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindActiveByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context, filter UserFilter) ([]model.User, int64, error)
	Search(ctx context.Context, query string, limit int) ([]model.User, error)
	ListTeachers(ctx context.Context) ([]model.User, error)
	ListRecent(ctx context.Context, limit int) ([]model.User, error)
	ListStudentsByClass(ctx context.Context, classID uint) ([]model.User, error)
	CountActiveByRole(ctx context.Context, role model.Role) (int64, error)
	CountActiveStudentsInClass(ctx context.Context, classID uint) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByIDWithRefs loads the user with class and subject references resolved,
// mirroring what the profile and dashboard endpoints return.
func (r *userRepository) FindByIDWithRefs(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Preload("Class").
		Preload("Subjects").
		Preload("Subjects.Class").
		First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindActiveByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("email = ? AND is_active = ?", email, true).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context, filter UserFilter) ([]model.User, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.User{}).Where("is_active = ?", true)
	if filter.Role != "" {
		q = q.Where("role = ?", filter.Role)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where("name LIKE ? OR email LIKE ? OR roll_number LIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []model.User
	err := q.Preload("Class").Preload("Subjects").
		Order("created_at DESC").
		Limit(filter.Limit).
		Offset((filter.Page - 1) * filter.Limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *userRepository) Search(ctx context.Context, query string, limit int) ([]model.User, error) {
	pattern := "%" + query + "%"
	var users []model.User
	err := r.db.WithContext(ctx).
		Select("id", "name", "email", "role").
		Where("name LIKE ? OR email LIKE ?", pattern, pattern).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) ListTeachers(ctx context.Context) ([]model.User, error) {
	var teachers []model.User
	err := r.db.WithContext(ctx).
		Select("id", "name", "email", "department").
		Where("role = ? AND is_active = ?", model.RoleTeacher, true).
		Order("name ASC").
		Find(&teachers).Error
	if err != nil {
		return nil, err
	}
	return teachers, nil
}

func (r *userRepository) ListRecent(ctx context.Context, limit int) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Select("id", "name", "email", "role", "created_at").
		Where("is_active = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) ListStudentsByClass(ctx context.Context, classID uint) ([]model.User, error) {
	var students []model.User
	err := r.db.WithContext(ctx).
		Select("id", "name", "roll_number", "profile_image").
		Where("class_id = ? AND role = ? AND is_active = ?", classID, model.RoleStudent, true).
		Order("roll_number ASC").
		Find(&students).Error
	if err != nil {
		return nil, err
	}
	return students, nil
}

func (r *userRepository) CountActiveByRole(ctx context.Context, role model.Role) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("role = ? AND is_active = ?", role, true).
		Count(&count).Error
	return count, err
}

func (r *userRepository) CountActiveStudentsInClass(ctx context.Context, classID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("class_id = ? AND role = ? AND is_active = ?", classID, model.RoleStudent, true).
		Count(&count).Error
	return count, err
}
