package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "github.com/HimanshuAlien/college-management-system/internal/errors"
	"github.com/HimanshuAlien/college-management-system/internal/middleware"
	"github.com/HimanshuAlien/college-management-system/internal/model"
	"github.com/HimanshuAlien/college-management-system/internal/service"
)

// AttendanceHandler handles attendance marking and student summaries.
type AttendanceHandler struct {
	attendanceService service.AttendanceService
}

// NewAttendanceHandler creates a new attendance handler.
func NewAttendanceHandler(attendanceService service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

// MarkAttendanceRequest represents one attendance mark. Date defaults to today
// when omitted.
type MarkAttendanceRequest struct {
	StudentID uint       `json:"studentId" validate:"required"`
	SubjectID uint       `json:"subjectId" validate:"required"`
	Date      *time.Time `json:"date"`
	Status    string     `json:"status" validate:"required,oneof=present absent late"`
	Remarks   string     `json:"remarks"`
}

// Mark godoc
// @Summary Mark a student's attendance for an owned subject
// @Tags teacher
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body MarkAttendanceRequest true "Attendance mark"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]string
// @Router /teacher/attendance [post]
func (h *AttendanceHandler) Mark(c echo.Context) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Access denied")
	}

	var req MarkAttendanceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	in := service.MarkAttendanceInput{
		StudentID: req.StudentID,
		SubjectID: req.SubjectID,
		Status:    model.AttendanceStatus(req.Status),
		Remarks:   req.Remarks,
	}
	if req.Date != nil {
		in.Date = *req.Date
	}

	record, err := h.attendanceService.Mark(c.Request().Context(), ident.ID, in)
	if err != nil {
		return apperrors.ToHTTP(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":    "Attendance marked successfully",
		"attendance": record,
	})
}

// Log godoc
// @Summary One day's marks for an owned subject
// @Tags teacher
// @Produce json
// @Security BearerAuth
// @Param subjectId path int true "Subject ID"
// @Param date query string false "Day (RFC 3339), defaults to today"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]string
// @Router /teacher/attendance/{subjectId} [get]
func (h *AttendanceHandler) Log(c echo.Context) error {
	subjectID, err := strconv.ParseUint(c.Param("subjectId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid id")
	}

	var date time.Time
	if raw := c.QueryParam("date"); raw != "" {
		date, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			date, err = time.Parse("2006-01-02", raw)
		}
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid date")
		}
	}

	records, err := h.attendanceService.SubjectLog(c.Request().Context(), uint(subjectID), date)
	if err != nil {
		return apperrors.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"attendance": records})
}

// Summary godoc
// @Summary The caller's attendance grouped by subject
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /student/attendance [get]
func (h *AttendanceHandler) Summary(c echo.Context) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Access denied")
	}

	summary, err := h.attendanceService.StudentSummary(c.Request().Context(), ident.ID)
	if err != nil {
		return apperrors.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"attendance": summary})
}
