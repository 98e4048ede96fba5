package main

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/HimanshuAlien/college-management-system/internal/config"
	"github.com/HimanshuAlien/college-management-system/internal/db"
	"github.com/HimanshuAlien/college-management-system/internal/model"
	"github.com/HimanshuAlien/college-management-system/internal/repository"
)

const seedPassword = "changeme123"

type seedUser struct {
	Name       string
	Email      string
	Role       model.Role
	RollNumber string
	Branch     string
	Year       int
	Department string
	ClassKey   string
}

type seedClass struct {
	Name    string
	Branch  string
	Year    int
	Section string
}

var classes = map[string]seedClass{
	"cse-3a": {Name: "CSE Third Year A", Branch: "CSE", Year: 3, Section: "A"},
	"ece-2a": {Name: "ECE Second Year A", Branch: "ECE", Year: 2, Section: "A"},
}

var users = []seedUser{
	{Name: "Admin", Email: "admin@college.edu", Role: model.RoleAdmin},
	{Name: "Ravi Sharma", Email: "ravi.sharma@college.edu", Role: model.RoleTeacher, Department: "Computer Science"},
	{Name: "Priya Nair", Email: "priya.nair@college.edu", Role: model.RoleTeacher, Department: "Electronics"},
	{Name: "Amit Kumar", Email: "amit.kumar@college.edu", Role: model.RoleStudent, RollNumber: "CSE2101", Branch: "CSE", Year: 3, ClassKey: "cse-3a"},
	{Name: "Sneha Verma", Email: "sneha.verma@college.edu", Role: model.RoleStudent, RollNumber: "CSE2102", Branch: "CSE", Year: 3, ClassKey: "cse-3a"},
	{Name: "Rahul Gupta", Email: "rahul.gupta@college.edu", Role: model.RoleStudent, RollNumber: "ECE2201", Branch: "ECE", Year: 2, ClassKey: "ece-2a"},
}

type seedSubject struct {
	Name         string
	Code         string
	Credits      int
	ClassKey     string
	TeacherEmail string
}

var subjects = []seedSubject{
	{Name: "Operating Systems", Code: "CS301", Credits: 4, ClassKey: "cse-3a", TeacherEmail: "ravi.sharma@college.edu"},
	{Name: "Database Systems", Code: "CS302", Credits: 4, ClassKey: "cse-3a", TeacherEmail: "ravi.sharma@college.edu"},
	{Name: "Digital Circuits", Code: "EC201", Credits: 3, ClassKey: "ece-2a", TeacherEmail: "priya.nair@college.edu"},
}

func main() {
	log.Println("Starting seed script...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.Class{},
		&model.User{},
		&model.Subject{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	classRepo := repository.NewClassRepository(gormDB)
	subjectRepo := repository.NewSubjectRepository(gormDB)

	classIDs, err := seedClasses(ctx, classRepo)
	if err != nil {
		log.Fatalf("Failed to seed classes: %v", err)
	}

	userIDs, err := seedUsers(ctx, userRepo, classRepo, classIDs)
	if err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}

	created, err := seedSubjects(ctx, subjectRepo, classIDs, userIDs)
	if err != nil {
		log.Fatalf("Failed to seed subjects: %v", err)
	}

	log.Printf("Seed completed: %d classes, %d users, %d new subjects", len(classIDs), len(userIDs), created)
	log.Printf("All seeded accounts use the password %q", seedPassword)
}

func seedClasses(ctx context.Context, repo repository.ClassRepository) (map[string]uint, error) {
	ids := make(map[string]uint, len(classes))
	for key, c := range classes {
		existing, err := repo.FindByIdentity(ctx, c.Branch, c.Year, c.Section)
		if err == nil && existing != nil {
			ids[key] = existing.ID
			continue
		}
		if err != nil && err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("check class %s: %w", key, err)
		}

		class := &model.Class{
			Name:     c.Name,
			Branch:   c.Branch,
			Year:     c.Year,
			Section:  c.Section,
			IsActive: true,
		}
		if err := repo.Create(ctx, class); err != nil {
			return nil, fmt.Errorf("create class %s: %w", key, err)
		}
		ids[key] = class.ID
	}
	return ids, nil
}

func seedUsers(ctx context.Context, repo repository.UserRepository, classRepo repository.ClassRepository, classIDs map[string]uint) (map[string]uint, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(seedPassword), 12)
	if err != nil {
		return nil, fmt.Errorf("hash seed password: %w", err)
	}

	ids := make(map[string]uint, len(users))
	for _, u := range users {
		existing, err := repo.FindByEmail(ctx, u.Email)
		if err == nil && existing != nil {
			ids[u.Email] = existing.ID
			continue
		}
		if err != nil && err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("check user %s: %w", u.Email, err)
		}

		user := &model.User{
			Name:         u.Name,
			Email:        u.Email,
			PasswordHash: string(hashed),
			Role:         u.Role,
			RollNumber:   u.RollNumber,
			Branch:       u.Branch,
			Year:         u.Year,
			Department:   u.Department,
			ProfileImage: model.DefaultProfileImage,
			IsActive:     true,
		}
		if u.ClassKey != "" {
			classID := classIDs[u.ClassKey]
			user.ClassID = &classID
		}
		if err := repo.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("create user %s: %w", u.Email, err)
		}
		if user.ClassID != nil {
			if err := classRepo.AdjustStudentCount(ctx, *user.ClassID, 1); err != nil {
				return nil, fmt.Errorf("adjust class count for %s: %w", u.Email, err)
			}
		}
		ids[u.Email] = user.ID
	}
	return ids, nil
}

func seedSubjects(ctx context.Context, repo repository.SubjectRepository, classIDs, userIDs map[string]uint) (int, error) {
	created := 0
	for _, s := range subjects {
		existing, err := repo.FindByCode(ctx, s.Code)
		if err == nil && existing != nil {
			continue
		}
		if err != nil && err != gorm.ErrRecordNotFound {
			return created, fmt.Errorf("check subject %s: %w", s.Code, err)
		}

		teacherID := userIDs[s.TeacherEmail]
		subject := &model.Subject{
			Name:      s.Name,
			Code:      s.Code,
			Credits:   s.Credits,
			TeacherID: &teacherID,
			ClassID:   classIDs[s.ClassKey],
			IsActive:  true,
		}
		if err := repo.Create(ctx, subject); err != nil {
			return created, fmt.Errorf("create subject %s: %w", s.Code, err)
		}
		created++
	}
	return created, nil
}
