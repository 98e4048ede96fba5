package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "github.com/HimanshuAlien/college-management-system/internal/errors"
	"github.com/HimanshuAlien/college-management-system/internal/model"
	"github.com/HimanshuAlien/college-management-system/internal/repository"
	"github.com/HimanshuAlien/college-management-system/internal/service"
)

// UserHandler handles admin user management and the shared user search.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// CreateUserRequest represents an admin user-creation payload.
type CreateUserRequest struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
	Role       string `json:"role" validate:"required,oneof=student teacher admin"`
	RollNumber string `json:"rollNumber"`
	Branch     string `json:"branch"`
	Year       int    `json:"year"`
	ClassID    *uint  `json:"classId"`
	Department string `json:"department"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
}

// UpdateUserRequest represents an admin user-update payload.
type UpdateUserRequest struct {
	Name       *string `json:"name"`
	Email      *string `json:"email" validate:"omitempty,email"`
	RollNumber *string `json:"rollNumber"`
	Branch     *string `json:"branch"`
	Year       *int    `json:"year"`
	ClassID    *uint   `json:"classId"`
	Department *string `json:"department"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
}

// List godoc
// @Summary List users with role filter, search and pagination
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param role query string false "Role filter"
// @Param search query string false "Name/email/roll-number search"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Router /admin/users [get]
func (h *UserHandler) List(c echo.Context) error {
	filter := repository.UserFilter{
		Search: c.QueryParam("search"),
	}
	if role := c.QueryParam("role"); role != "" && role != "all" {
		filter.Role = model.Role(role)
	}
	filter.Page, _ = strconv.Atoi(c.QueryParam("page"))
	filter.Limit, _ = strconv.Atoi(c.QueryParam("limit"))

	users, pagination, err := h.userService.List(c.Request().Context(), filter)
	if err != nil {
		return apperrors.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"users":      users,
		"pagination": pagination,
	})
}

// Create godoc
// @Summary Create a user
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateUserRequest true "User data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /admin/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.Create(c.Request().Context(), service.CreateUserInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Role:       model.Role(req.Role),
		RollNumber: req.RollNumber,
		Branch:     req.Branch,
		Year:       req.Year,
		ClassID:    req.ClassID,
		Department: req.Department,
		Phone:      req.Phone,
		Address:    req.Address,
	})
	if err != nil {
		return apperrors.ToHTTP(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "User created successfully",
		"user":    user,
	})
}

// Update godoc
// @Summary Update a user
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body UpdateUserRequest true "Fields to change"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /admin/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid id")
	}

	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.Update(c.Request().Context(), uint(id), service.UpdateUserInput{
		Name:       req.Name,
		Email:      req.Email,
		RollNumber: req.RollNumber,
		Branch:     req.Branch,
		Year:       req.Year,
		ClassID:    req.ClassID,
		Department: req.Department,
		Phone:      req.Phone,
		Address:    req.Address,
	})
	if err != nil {
		return apperrors.ToHTTP(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "User updated successfully",
		"user":    user,
	})
}

// Delete godoc
// @Summary Deactivate a user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid id")
	}

	if err := h.userService.Delete(c.Request().Context(), uint(id)); err != nil {
		return apperrors.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "User deleted successfully"})
}

// Teachers godoc
// @Summary List active teachers
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /admin/teachers [get]
func (h *UserHandler) Teachers(c echo.Context) error {
	teachers, err := h.userService.Teachers(c.Request().Context())
	if err != nil {
		return apperrors.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"teachers": teachers})
}

// Search godoc
// @Summary Search users by name or email
// @Tags shared
// @Produce json
// @Security BearerAuth
// @Param query query string true "Search text (min 2 chars)"
// @Success 200 {object} map[string]interface{}
// @Router /search-users [get]
func (h *UserHandler) Search(c echo.Context) error {
	users, err := h.userService.Search(c.Request().Context(), c.QueryParam("query"))
	if err != nil {
		return apperrors.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"users": users})
}
