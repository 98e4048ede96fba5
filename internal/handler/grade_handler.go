package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "github.com/HimanshuAlien/college-management-system/internal/errors"
	"github.com/HimanshuAlien/college-management-system/internal/middleware"
	"github.com/HimanshuAlien/college-management-system/internal/service"
)

// GradeHandler handles the student CGPA calculator.
type GradeHandler struct {
	gradeService service.GradeService
}

// NewGradeHandler creates a new grade handler.
func NewGradeHandler(gradeService service.GradeService) *GradeHandler {
	return &GradeHandler{gradeService: gradeService}
}

// RecordGradeRequest represents one subject result.
type RecordGradeRequest struct {
	Subject     string  `json:"subject" validate:"required"`
	SubjectCode string  `json:"subjectCode" validate:"required"`
	Credits     int     `json:"credits" validate:"required,min=1"`
	Percentage  float64 `json:"percentage" validate:"min=0,max=100"`
}

// Record godoc
// @Summary Record a subject result and refresh the CGPA
// @Tags student
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RecordGradeRequest true "Subject result"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /student/grades [post]
func (h *GradeHandler) Record(c echo.Context) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Access denied")
	}

	var req RecordGradeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	grade, cgpa, err := h.gradeService.Record(c.Request().Context(), ident.ID, service.RecordGradeInput{
		Subject:     req.Subject,
		SubjectCode: req.SubjectCode,
		Credits:     req.Credits,
		Percentage:  req.Percentage,
	})
	if err != nil {
		return apperrors.ToHTTP(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Grade recorded successfully",
		"grade":   grade,
		"cgpa":    cgpa,
	})
}

// Report godoc
// @Summary The caller's grades and CGPA
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.GradeReport
// @Router /student/grades [get]
func (h *GradeHandler) Report(c echo.Context) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Access denied")
	}

	report, err := h.gradeService.Report(c.Request().Context(), ident.ID)
	if err != nil {
		return apperrors.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, report)
}
