package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "github.com/HimanshuAlien/college-management-system/internal/errors"
	"github.com/HimanshuAlien/college-management-system/internal/middleware"
	"github.com/HimanshuAlien/college-management-system/internal/service"
)

// MessageHandler handles direct messaging, available to every role.
type MessageHandler struct {
	messageService service.MessageService
}

// NewMessageHandler creates a new message handler.
func NewMessageHandler(messageService service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// SendMessageRequest represents one outgoing message.
type SendMessageRequest struct {
	ReceiverID uint   `json:"receiverId" validate:"required"`
	Content    string `json:"content" validate:"required"`
}

// Conversations godoc
// @Summary The caller's conversations grouped by partner
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /messages [get]
func (h *MessageHandler) Conversations(c echo.Context) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Access denied")
	}

	conversations, err := h.messageService.Conversations(c.Request().Context(), ident.ID)
	if err != nil {
		return apperrors.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"conversations": conversations})
}

// Send godoc
// @Summary Send a direct message
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SendMessageRequest true "Message"
// @Success 201 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /messages [post]
func (h *MessageHandler) Send(c echo.Context) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Access denied")
	}

	var req SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	message, err := h.messageService.Send(c.Request().Context(), ident.ID, req.ReceiverID, req.Content)
	if err != nil {
		return apperrors.ToHTTP(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Message sent successfully",
		"data":    message,
	})
}
