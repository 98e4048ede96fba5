package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/HimanshuAlien/college-management-system/internal/auth"
	"github.com/HimanshuAlien/college-management-system/internal/config"
	"github.com/HimanshuAlien/college-management-system/internal/handler"
	"github.com/HimanshuAlien/college-management-system/internal/middleware"
	"github.com/HimanshuAlien/college-management-system/internal/model"
	"github.com/HimanshuAlien/college-management-system/internal/repository"
	"github.com/HimanshuAlien/college-management-system/internal/service"
)

// Handlers bundles every route handler for registration.
type Handlers struct {
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
	Class        *handler.ClassHandler
	Subject      *handler.SubjectHandler
	Assignment   *handler.AssignmentHandler
	Attendance   *handler.AttendanceHandler
	Grade        *handler.GradeHandler
	Message      *handler.MessageHandler
	Announcement *handler.AnnouncementHandler
	Dashboard    *handler.DashboardHandler
}

// Register wires routes and middleware. Protected groups run the same chain:
// token verification, identity loading, then role authorization; teacher
// routes carrying a resource id in the path add an ownership guard on top.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	tokens *auth.TokenService,
	users repository.UserRepository,
	subjects service.SubjectService,
	assignments service.AssignmentService,
	h Handlers,
) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: uuid.NewString,
	}))

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)
	api.GET("/announcements", h.Announcement.Published)

	// Routes shared by every authenticated role
	authed := api.Group("",
		middleware.VerifyToken(tokens),
		middleware.LoadIdentity(users, cfg.RejectInactive),
	)
	authed.GET("/auth/me", h.Auth.Me)
	authed.GET("/profile", h.Auth.Profile)
	authed.PUT("/profile", h.Auth.UpdateProfile)
	authed.GET("/search-users", h.User.Search)
	authed.GET("/messages", h.Message.Conversations)
	authed.POST("/messages", h.Message.Send)

	// Admin routes
	admin := authed.Group("/admin", middleware.RequireRoles(model.RoleAdmin))
	admin.GET("/dashboard", h.Dashboard.Admin)
	admin.GET("/users", h.User.List)
	admin.POST("/users", h.User.Create)
	admin.PUT("/users/:id", h.User.Update)
	admin.DELETE("/users/:id", h.User.Delete)
	admin.GET("/teachers", h.User.Teachers)
	admin.GET("/classes", h.Class.List)
	admin.POST("/classes", h.Class.Create)
	admin.PUT("/classes/:id", h.Class.Update)
	admin.DELETE("/classes/:id", h.Class.Delete)
	admin.GET("/subjects", h.Subject.List)
	admin.POST("/subjects", h.Subject.Create)
	admin.PUT("/subjects/:id", h.Subject.Update)
	admin.GET("/announcements", h.Announcement.List)
	admin.POST("/announcements", h.Announcement.Create)
	admin.PUT("/announcements/:id", h.Announcement.UpdateStatus)
	admin.DELETE("/announcements/:id", h.Announcement.Delete)

	// Teacher routes
	teacher := authed.Group("/teacher", middleware.RequireRoles(model.RoleTeacher))
	teacher.GET("/dashboard", h.Dashboard.Teacher)
	teacher.GET("/subjects", h.Subject.Mine)
	teacher.GET("/students/:subjectId", h.Subject.Roster,
		middleware.RequireOwner("subjectId", subjects.EnsureOwner))
	teacher.GET("/attendance/:subjectId", h.Attendance.Log,
		middleware.RequireOwner("subjectId", subjects.EnsureOwner))
	teacher.POST("/attendance", h.Attendance.Mark)
	teacher.GET("/assignments", h.Assignment.ListForTeacher)
	teacher.POST("/assignments", h.Assignment.Create)
	teacher.DELETE("/assignments/:id", h.Assignment.Delete,
		middleware.RequireOwner("id", assignments.EnsureOwner))
	teacher.GET("/assignments/:id/submissions", h.Assignment.Submissions)
	teacher.PUT("/assignments/:assignmentId/grade/:submissionId", h.Assignment.Grade,
		middleware.RequireOwner("assignmentId", assignments.EnsureOwner))

	// Student routes
	student := authed.Group("/student", middleware.RequireRoles(model.RoleStudent))
	student.GET("/dashboard", h.Dashboard.Student)
	student.GET("/attendance", h.Attendance.Summary)
	student.GET("/assignments", h.Assignment.ListForStudent)
	student.POST("/assignments/:id/submit", h.Assignment.Submit)
	student.GET("/grades", h.Grade.Report)
	student.POST("/grades", h.Grade.Record)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
