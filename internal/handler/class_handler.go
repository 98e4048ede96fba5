package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "github.com/HimanshuAlien/college-management-system/internal/errors"
	"github.com/HimanshuAlien/college-management-system/internal/service"
)

// ClassHandler handles admin class management.
type ClassHandler struct {
	classService service.ClassService
}

// NewClassHandler creates a new class handler.
func NewClassHandler(classService service.ClassService) *ClassHandler {
	return &ClassHandler{classService: classService}
}

// CreateClassRequest represents a class-creation payload.
type CreateClassRequest struct {
	Name           string `json:"name" validate:"required"`
	Branch         string `json:"branch" validate:"required"`
	Year           int    `json:"year" validate:"required,min=1,max=4"`
	Section        string `json:"section"`
	ClassTeacherID *uint  `json:"classTeacherId"`
}

// UpdateClassRequest represents a class-update payload.
type UpdateClassRequest struct {
	Name           *string `json:"name"`
	Branch         *string `json:"branch"`
	Year           *int    `json:"year" validate:"omitempty,min=1,max=4"`
	Section        *string `json:"section"`
	ClassTeacherID *uint   `json:"classTeacherId"`
}

// List godoc
// @Summary List active classes with live student counts
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /admin/classes [get]
func (h *ClassHandler) List(c echo.Context) error {
	classes, err := h.classService.List(c.Request().Context())
	if err != nil {
		return apperrors.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"classes": classes})
}

// Create godoc
// @Summary Create a class
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateClassRequest true "Class data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /admin/classes [post]
func (h *ClassHandler) Create(c echo.Context) error {
	var req CreateClassRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	class, err := h.classService.Create(c.Request().Context(), service.CreateClassInput{
		Name:           req.Name,
		Branch:         req.Branch,
		Year:           req.Year,
		Section:        req.Section,
		ClassTeacherID: req.ClassTeacherID,
	})
	if err != nil {
		return apperrors.ToHTTP(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Class created successfully",
		"class":   class,
	})
}

// Update godoc
// @Summary Update a class
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Class ID"
// @Param request body UpdateClassRequest true "Fields to change"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /admin/classes/{id} [put]
func (h *ClassHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid id")
	}

	var req UpdateClassRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	class, err := h.classService.Update(c.Request().Context(), uint(id), service.UpdateClassInput{
		Name:           req.Name,
		Branch:         req.Branch,
		Year:           req.Year,
		Section:        req.Section,
		ClassTeacherID: req.ClassTeacherID,
	})
	if err != nil {
		return apperrors.ToHTTP(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Class updated successfully",
		"class":   class,
	})
}

// Delete godoc
// @Summary Deactivate a class
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Class ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /admin/classes/{id} [delete]
func (h *ClassHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid id")
	}

	if err := h.classService.Delete(c.Request().Context(), uint(id)); err != nil {
		return apperrors.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Class deleted successfully"})
}
