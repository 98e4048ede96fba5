package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "github.com/HimanshuAlien/college-management-system/internal/errors"
	"github.com/HimanshuAlien/college-management-system/internal/middleware"
	"github.com/HimanshuAlien/college-management-system/internal/model"
	"github.com/HimanshuAlien/college-management-system/internal/service"
)

// AnnouncementHandler handles admin announcement management and the public
// published feed.
type AnnouncementHandler struct {
	announcementService service.AnnouncementService
}

// NewAnnouncementHandler creates a new announcement handler.
func NewAnnouncementHandler(announcementService service.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{announcementService: announcementService}
}

// CreateAnnouncementRequest represents an announcement payload.
type CreateAnnouncementRequest struct {
	Title          string `json:"title" validate:"required"`
	Content        string `json:"content" validate:"required"`
	Status         string `json:"status" validate:"omitempty,oneof=draft published deactivated"`
	Priority       string `json:"priority"`
	TargetAudience string `json:"targetAudience"`
}

// UpdateAnnouncementStatusRequest carries a status transition.
type UpdateAnnouncementStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft published deactivated"`
}

// Create godoc
// @Summary Create an announcement
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateAnnouncementRequest true "Announcement data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /admin/announcements [post]
func (h *AnnouncementHandler) Create(c echo.Context) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Access denied")
	}

	var req CreateAnnouncementRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	announcement, err := h.announcementService.Create(c.Request().Context(), ident.ID, service.CreateAnnouncementInput{
		Title:          req.Title,
		Content:        req.Content,
		Status:         model.AnnouncementStatus(req.Status),
		Priority:       req.Priority,
		TargetAudience: req.TargetAudience,
	})
	if err != nil {
		return apperrors.ToHTTP(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message":      "Announcement created successfully",
		"announcement": announcement,
	})
}

// List godoc
// @Summary List every announcement regardless of status
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /admin/announcements [get]
func (h *AnnouncementHandler) List(c echo.Context) error {
	announcements, err := h.announcementService.ListAll(c.Request().Context())
	if err != nil {
		return apperrors.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"announcements": announcements})
}

// UpdateStatus godoc
// @Summary Change an announcement's status
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Announcement ID"
// @Param request body UpdateAnnouncementStatusRequest true "New status"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /admin/announcements/{id} [put]
func (h *AnnouncementHandler) UpdateStatus(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid id")
	}

	var req UpdateAnnouncementStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	announcement, err := h.announcementService.UpdateStatus(c.Request().Context(), uint(id), model.AnnouncementStatus(req.Status))
	if err != nil {
		return apperrors.ToHTTP(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":      "Announcement updated successfully",
		"announcement": announcement,
	})
}

// Delete godoc
// @Summary Delete an announcement
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Announcement ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/announcements/{id} [delete]
func (h *AnnouncementHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid id")
	}

	if err := h.announcementService.Delete(c.Request().Context(), uint(id)); err != nil {
		return apperrors.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Announcement deleted successfully"})
}

// Published godoc
// @Summary The public feed of published announcements
// @Tags announcements
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /announcements [get]
func (h *AnnouncementHandler) Published(c echo.Context) error {
	announcements, err := h.announcementService.Published(c.Request().Context())
	if err != nil {
		return apperrors.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"announcements": announcements})
}
