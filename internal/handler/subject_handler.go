package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "github.com/HimanshuAlien/college-management-system/internal/errors"
	"github.com/HimanshuAlien/college-management-system/internal/middleware"
	"github.com/HimanshuAlien/college-management-system/internal/service"
)

// SubjectHandler handles admin subject management and teacher subject views.
type SubjectHandler struct {
	subjectService service.SubjectService
}

// NewSubjectHandler creates a new subject handler.
func NewSubjectHandler(subjectService service.SubjectService) *SubjectHandler {
	return &SubjectHandler{subjectService: subjectService}
}

// CreateSubjectRequest represents a subject-creation payload.
type CreateSubjectRequest struct {
	Name        string `json:"name" validate:"required"`
	Code        string `json:"code" validate:"required"`
	Credits     int    `json:"credits" validate:"required,min=1,max=6"`
	TeacherID   *uint  `json:"teacherId"`
	ClassID     uint   `json:"classId" validate:"required"`
	Description string `json:"description"`
	Syllabus    string `json:"syllabus"`
}

// UpdateSubjectRequest represents a subject-update payload.
type UpdateSubjectRequest struct {
	Name        *string `json:"name"`
	Credits     *int    `json:"credits" validate:"omitempty,min=1,max=6"`
	TeacherID   *uint   `json:"teacherId"`
	Description *string `json:"description"`
	Syllabus    *string `json:"syllabus"`
}

// List godoc
// @Summary List active subjects, optionally per class
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param classId query int false "Class filter"
// @Success 200 {object} map[string]interface{}
// @Router /admin/subjects [get]
func (h *SubjectHandler) List(c echo.Context) error {
	var classID uint
	if raw := c.QueryParam("classId"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid class ID")
		}
		classID = uint(parsed)
	}

	subjects, err := h.subjectService.List(c.Request().Context(), classID)
	if err != nil {
		return apperrors.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"subjects": subjects})
}

// Create godoc
// @Summary Create a subject
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateSubjectRequest true "Subject data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /admin/subjects [post]
func (h *SubjectHandler) Create(c echo.Context) error {
	var req CreateSubjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	subject, err := h.subjectService.Create(c.Request().Context(), service.CreateSubjectInput{
		Name:        req.Name,
		Code:        req.Code,
		Credits:     req.Credits,
		TeacherID:   req.TeacherID,
		ClassID:     req.ClassID,
		Description: req.Description,
		Syllabus:    req.Syllabus,
	})
	if err != nil {
		return apperrors.ToHTTP(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Subject created successfully",
		"subject": subject,
	})
}

// Update godoc
// @Summary Update a subject
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subject ID"
// @Param request body UpdateSubjectRequest true "Fields to change"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /admin/subjects/{id} [put]
func (h *SubjectHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid id")
	}

	var req UpdateSubjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	subject, err := h.subjectService.Update(c.Request().Context(), uint(id), service.UpdateSubjectInput{
		Name:        req.Name,
		Credits:     req.Credits,
		TeacherID:   req.TeacherID,
		Description: req.Description,
		Syllabus:    req.Syllabus,
	})
	if err != nil {
		return apperrors.ToHTTP(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Subject updated successfully",
		"subject": subject,
	})
}

// Mine godoc
// @Summary Subjects taught by the calling teacher
// @Tags teacher
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /teacher/subjects [get]
func (h *SubjectHandler) Mine(c echo.Context) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Access denied")
	}

	subjects, err := h.subjectService.ListByTeacher(c.Request().Context(), ident.ID)
	if err != nil {
		return apperrors.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"subjects": subjects})
}

// Roster godoc
// @Summary Class roster for an owned subject
// @Tags teacher
// @Produce json
// @Security BearerAuth
// @Param subjectId path int true "Subject ID"
// @Success 200 {object} service.Roster
// @Failure 403 {object} map[string]string
// @Router /teacher/students/{subjectId} [get]
func (h *SubjectHandler) Roster(c echo.Context) error {
	subjectID, err := strconv.ParseUint(c.Param("subjectId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid id")
	}

	roster, err := h.subjectService.Roster(c.Request().Context(), uint(subjectID))
	if err != nil {
		return apperrors.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, roster)
}
