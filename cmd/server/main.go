package main

import (
	"log"
	"net/http"
	"os"

	"github.com/HimanshuAlien/college-management-system/docs"

	"github.com/labstack/echo/v4"

	"github.com/HimanshuAlien/college-management-system/internal/auth"
	"github.com/HimanshuAlien/college-management-system/internal/cache"
	"github.com/HimanshuAlien/college-management-system/internal/config"
	"github.com/HimanshuAlien/college-management-system/internal/db"
	"github.com/HimanshuAlien/college-management-system/internal/handler"
	"github.com/HimanshuAlien/college-management-system/internal/model"
	"github.com/HimanshuAlien/college-management-system/internal/repository"
	"github.com/HimanshuAlien/college-management-system/internal/router"
	"github.com/HimanshuAlien/college-management-system/internal/service"
)

// @title College Management API
// @version 1.0
// @description Role-based college management API covering users, classes, subjects, attendance, assignments, grades, messaging and announcements.
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Submission{},
			&model.Assignment{},
			&model.Attendance{},
			&model.Grade{},
			&model.Message{},
			&model.Announcement{},
			&model.Subject{},
			&model.User{},
			&model.Class{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.Class{},
		&model.User{},
		&model.Subject{},
		&model.Assignment{},
		&model.Submission{},
		&model.Attendance{},
		&model.Grade{},
		&model.Message{},
		&model.Announcement{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	classRepo := repository.NewClassRepository(gormDB)
	subjectRepo := repository.NewSubjectRepository(gormDB)
	assignmentRepo := repository.NewAssignmentRepository(gormDB)
	attendanceRepo := repository.NewAttendanceRepository(gormDB)
	gradeRepo := repository.NewGradeRepository(gormDB)
	messageRepo := repository.NewMessageRepository(gormDB)
	announcementRepo := repository.NewAnnouncementRepository(gormDB)

	tokenService := auth.NewTokenService(cfg.JWTSecret)

	// Initialize services
	authService := service.NewAuthService(userRepo, classRepo, tokenService)
	userService := service.NewUserService(userRepo, classRepo)
	classService := service.NewClassService(classRepo, userRepo)
	subjectService := service.NewSubjectService(subjectRepo, userRepo)
	assignmentService := service.NewAssignmentService(assignmentRepo, subjectRepo, userRepo)
	attendanceService := service.NewAttendanceService(attendanceRepo, subjectRepo, userRepo)
	gradeService := service.NewGradeService(gradeRepo)
	messageService := service.NewMessageService(messageRepo, userRepo)
	announcementService := service.NewAnnouncementService(announcementRepo, cacheClient)
	dashboardService := service.NewDashboardService(userRepo, classRepo, subjectRepo, assignmentRepo, attendanceService, cacheClient)

	// Initialize handlers
	handlers := router.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		User:         handler.NewUserHandler(userService),
		Class:        handler.NewClassHandler(classService),
		Subject:      handler.NewSubjectHandler(subjectService),
		Assignment:   handler.NewAssignmentHandler(assignmentService),
		Attendance:   handler.NewAttendanceHandler(attendanceService),
		Grade:        handler.NewGradeHandler(gradeService),
		Message:      handler.NewMessageHandler(messageService),
		Announcement: handler.NewAnnouncementHandler(announcementService),
		Dashboard:    handler.NewDashboardHandler(dashboardService),
	}

	// Register routes
	router.Register(e, cfg, tokenService, userRepo, subjectService, assignmentService, handlers)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
