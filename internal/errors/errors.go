package errors

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

var (
	// ErrUserNotFound is returned when a user lookup finds no record.
	ErrUserNotFound = errors.New("User not found")
	// ErrEmailTaken is returned when registering or creating a user with an existing email.
	ErrEmailTaken = errors.New("Email already exists")
	// ErrClassNotFound is returned when a class lookup finds no record.
	ErrClassNotFound = errors.New("Class not found")
	// ErrClassExists is returned when a class with the same branch/year/section already exists.
	ErrClassExists = errors.New("Class already exists")
	// ErrClassHasStudents is returned when deleting a class that still has active students.
	ErrClassHasStudents = errors.New("Cannot delete class with active students")
	// ErrSubjectNotFound is returned when a subject lookup finds no record.
	ErrSubjectNotFound = errors.New("Subject not found")
	// ErrSubjectCodeTaken is returned when creating a subject with an existing code.
	ErrSubjectCodeTaken = errors.New("Subject code already exists")
	// ErrAssignmentNotFound is returned when an assignment lookup finds no record.
	ErrAssignmentNotFound = errors.New("Assignment not found")
	// ErrSubmissionNotFound is returned when a submission lookup finds no record.
	ErrSubmissionNotFound = errors.New("Submission not found")
	// ErrAlreadySubmitted is returned on a second submission to the same assignment.
	ErrAlreadySubmitted = errors.New("Assignment already submitted")
	// ErrAnnouncementNotFound is returned when an announcement lookup finds no record.
	ErrAnnouncementNotFound = errors.New("Announcement not found")
	// ErrNotOwner is returned when a teacher touches a subject or assignment they do not own.
	ErrNotOwner = errors.New("Access denied")
	// ErrNotEnrolled is returned when a student acts outside their own class.
	ErrNotEnrolled = errors.New("Access denied")
	// ErrValidation is returned when a payload fails a domain-level check.
	ErrValidation = errors.New("Invalid request data")
)

// ToHTTP maps a domain error to an echo.HTTPError whose JSON body follows the
// {"message": ...} contract used across the API.
func ToHTTP(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrClassNotFound),
		errors.Is(err, ErrSubjectNotFound),
		errors.Is(err, ErrAssignmentNotFound),
		errors.Is(err, ErrSubmissionNotFound),
		errors.Is(err, ErrAnnouncementNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrEmailTaken),
		errors.Is(err, ErrClassExists),
		errors.Is(err, ErrClassHasStudents),
		errors.Is(err, ErrSubjectCodeTaken),
		errors.Is(err, ErrAlreadySubmitted),
		errors.Is(err, ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotOwner), errors.Is(err, ErrNotEnrolled):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
}
