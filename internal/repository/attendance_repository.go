package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/HimanshuAlien/college-management-system/internal/model"
)

// AttendanceRepository defines persistence operations over attendance records.
type AttendanceRepository interface {
	// Upsert inserts the record or overwrites the existing mark for the same
	// student+subject+day.
	Upsert(ctx context.Context, attendance *model.Attendance) error
	ListByStudent(ctx context.Context, studentID uint, subjectIDs []uint) ([]model.Attendance, error)
	ListBySubjectOnDate(ctx context.Context, subjectID uint, date time.Time) ([]model.Attendance, error)
}

type attendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository builds a GORM-backed repository.
func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) Upsert(ctx context.Context, attendance *model.Attendance) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "student_id"}, {Name: "subject_id"}, {Name: "date"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"status", "marked_by_id", "marked_at", "remarks"}),
	}).Create(attendance).Error
}

func (r *attendanceRepository) ListByStudent(ctx context.Context, studentID uint, subjectIDs []uint) ([]model.Attendance, error) {
	if len(subjectIDs) == 0 {
		return nil, nil
	}
	var records []model.Attendance
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Where("student_id = ? AND subject_id IN ?", studentID, subjectIDs).
		Order("date DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *attendanceRepository) ListBySubjectOnDate(ctx context.Context, subjectID uint, date time.Time) ([]model.Attendance, error) {
	var records []model.Attendance
	err := r.db.WithContext(ctx).
		Preload("Student", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "roll_number", "profile_image")
		}).
		Where("subject_id = ? AND date = ?", subjectID, date).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
