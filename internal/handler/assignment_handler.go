package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "github.com/HimanshuAlien/college-management-system/internal/errors"
	"github.com/HimanshuAlien/college-management-system/internal/middleware"
	"github.com/HimanshuAlien/college-management-system/internal/service"
)

// AssignmentHandler handles teacher assignment management and student
// submissions.
type AssignmentHandler struct {
	assignmentService service.AssignmentService
}

// NewAssignmentHandler creates a new assignment handler.
func NewAssignmentHandler(assignmentService service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentService: assignmentService}
}

// CreateAssignmentRequest represents a teacher's assignment payload.
type CreateAssignmentRequest struct {
	SubjectID    uint      `json:"subjectId" validate:"required"`
	Title        string    `json:"title" validate:"required"`
	Description  string    `json:"description"`
	DueDate      time.Time `json:"dueDate" validate:"required"`
	MaxMarks     int       `json:"maxMarks" validate:"required,min=1"`
	Instructions string    `json:"instructions"`
}

// GradeSubmissionRequest carries marks and feedback for one submission.
type GradeSubmissionRequest struct {
	Marks    *int   `json:"marks" validate:"required,min=0"`
	Feedback string `json:"feedback"`
}

// SubmitAssignmentRequest carries a student's submission content.
type SubmitAssignmentRequest struct {
	Content string `json:"content" validate:"required"`
}

// Create godoc
// @Summary Create an assignment on an owned subject
// @Tags teacher
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateAssignmentRequest true "Assignment data"
// @Success 201 {object} map[string]interface{}
// @Failure 403 {object} map[string]string
// @Router /teacher/assignments [post]
func (h *AssignmentHandler) Create(c echo.Context) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Access denied")
	}

	var req CreateAssignmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	assignment, err := h.assignmentService.Create(c.Request().Context(), ident.ID, service.CreateAssignmentInput{
		SubjectID:    req.SubjectID,
		Title:        req.Title,
		Description:  req.Description,
		DueDate:      req.DueDate,
		MaxMarks:     req.MaxMarks,
		Instructions: req.Instructions,
	})
	if err != nil {
		return apperrors.ToHTTP(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message":    "Assignment created successfully",
		"assignment": assignment,
	})
}

// ListForTeacher godoc
// @Summary List the caller's assignments with submission counts
// @Tags teacher
// @Produce json
// @Security BearerAuth
// @Param subjectId query int false "Subject filter"
// @Success 200 {object} map[string]interface{}
// @Router /teacher/assignments [get]
func (h *AssignmentHandler) ListForTeacher(c echo.Context) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Access denied")
	}

	var subjectID uint
	if raw := c.QueryParam("subjectId"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid subject ID")
		}
		subjectID = uint(parsed)
	}

	assignments, err := h.assignmentService.ListByTeacher(c.Request().Context(), ident.ID, subjectID)
	if err != nil {
		return apperrors.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"assignments": assignments})
}

// Delete godoc
// @Summary Delete an owned assignment
// @Tags teacher
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assignment ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /teacher/assignments/{id} [delete]
func (h *AssignmentHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid id")
	}

	if err := h.assignmentService.Delete(c.Request().Context(), uint(id)); err != nil {
		return apperrors.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Assignment deleted successfully"})
}

// Submissions godoc
// @Summary List submissions for an owned assignment
// @Tags teacher
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assignment ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /teacher/assignments/{id}/submissions [get]
func (h *AssignmentHandler) Submissions(c echo.Context) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Access denied")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid id")
	}

	assignment, err := h.assignmentService.Submissions(c.Request().Context(), ident.ID, uint(id))
	if err != nil {
		return apperrors.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"assignment":  assignment,
		"submissions": assignment.Submissions,
	})
}

// Grade godoc
// @Summary Grade one submission of an owned assignment
// @Tags teacher
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param assignmentId path int true "Assignment ID"
// @Param submissionId path int true "Submission ID"
// @Param request body GradeSubmissionRequest true "Marks and feedback"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /teacher/assignments/{assignmentId}/grade/{submissionId} [put]
func (h *AssignmentHandler) Grade(c echo.Context) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Access denied")
	}

	assignmentID, err := strconv.ParseUint(c.Param("assignmentId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid id")
	}
	submissionID, err := strconv.ParseUint(c.Param("submissionId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid id")
	}

	var req GradeSubmissionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	submission, err := h.assignmentService.GradeSubmission(
		c.Request().Context(), ident.ID, uint(assignmentID), uint(submissionID),
		service.GradeInput{Marks: *req.Marks, Feedback: req.Feedback},
	)
	if err != nil {
		return apperrors.ToHTTP(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":    "Submission graded successfully",
		"submission": submission,
	})
}

// ListForStudent godoc
// @Summary List the caller's class assignments with submission status
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /student/assignments [get]
func (h *AssignmentHandler) ListForStudent(c echo.Context) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Access denied")
	}

	assignments, err := h.assignmentService.ListForStudent(c.Request().Context(), ident.ID)
	if err != nil {
		return apperrors.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"assignments": assignments})
}

// Submit godoc
// @Summary Submit work for an assignment
// @Tags student
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assignment ID"
// @Param request body SubmitAssignmentRequest true "Submission content"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /student/assignments/{id}/submit [post]
func (h *AssignmentHandler) Submit(c echo.Context) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Access denied")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid id")
	}

	var req SubmitAssignmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.assignmentService.Submit(c.Request().Context(), ident.ID, uint(id), req.Content); err != nil {
		return apperrors.ToHTTP(err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Assignment submitted successfully"})
}
