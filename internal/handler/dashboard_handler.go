package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "github.com/HimanshuAlien/college-management-system/internal/errors"
	"github.com/HimanshuAlien/college-management-system/internal/middleware"
	"github.com/HimanshuAlien/college-management-system/internal/service"
)

// DashboardHandler serves the per-role dashboard aggregates.
type DashboardHandler struct {
	dashboardService service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Admin godoc
// @Summary Admin dashboard counters and recent users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.AdminDashboard
// @Router /admin/dashboard [get]
func (h *DashboardHandler) Admin(c echo.Context) error {
	dashboard, err := h.dashboardService.Admin(c.Request().Context())
	if err != nil {
		return apperrors.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, dashboard)
}

// Teacher godoc
// @Summary Teacher dashboard with subjects and recent assignments
// @Tags teacher
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.TeacherDashboard
// @Router /teacher/dashboard [get]
func (h *DashboardHandler) Teacher(c echo.Context) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Access denied")
	}

	dashboard, err := h.dashboardService.Teacher(c.Request().Context(), ident.ID)
	if err != nil {
		return apperrors.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, dashboard)
}

// Student godoc
// @Summary Student dashboard with attendance and upcoming work
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.StudentDashboard
// @Router /student/dashboard [get]
func (h *DashboardHandler) Student(c echo.Context) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Access denied")
	}

	dashboard, err := h.dashboardService.Student(c.Request().Context(), ident.ID)
	if err != nil {
		return apperrors.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, dashboard)
}
