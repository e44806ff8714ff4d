package database

import (
	"fmt"
	"log"
	"os"

	"github.com/sahilchouksey/neurolearn-api/model"
	"github.com/sahilchouksey/neurolearn-api/utils/auth"
	"gorm.io/gorm"
)

// RunSeeds is the entrypoint used by cmd/seed
func RunSeeds(db *gorm.DB) error {
	return NewSeeder(db).SeedAll()
}

// Seeder handles database seeding operations
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// SeedAll runs all seed functions
func (s *Seeder) SeedAll() error {
	log.Println("🌱 Starting database seeding...")

	// Run seeds in order (respecting foreign key constraints)
	if err := s.SeedAdminUser(); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	if err := s.SeedCourses(); err != nil {
		return fmt.Errorf("failed to seed courses: %w", err)
	}

	log.Println("✅ Database seeding completed successfully!")
	return nil
}

// SeedAdminUser creates the default admin user
func (s *Seeder) SeedAdminUser() error {
	var count int64
	if err := s.db.Model(&model.User{}).Where("role = ?", "admin").Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("⏭️  Admin user already exists, skipping...")
		return nil
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminEmail == "" || adminPassword == "" {
		log.Println("⚠️  ADMIN_EMAIL and ADMIN_PASSWORD environment variables not set, skipping admin user creation")
		return nil
	}

	passwordHash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &model.User{
		StudentID:    "STU-admin001",
		Email:        adminEmail,
		PasswordHash: passwordHash,
		FullName:     "System Administrator",
		Role:         "admin",
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Created admin user: %s\n", admin.Email)
	return nil
}

// SeedCourses creates sample courses with curricula so a fresh install has
// something to plan against.
func (s *Seeder) SeedCourses() error {
	var count int64
	if err := s.db.Model(&model.Course{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("⏭️  Courses already exist, skipping...")
		return nil
	}

	type seedTopic struct {
		title    string
		minutes  int
		prereqOf []int // indexes of earlier topics this one depends on
	}

	seedCourses := []struct {
		course model.Course
		topics []seedTopic
	}{
		{
			course: model.Course{
				Title:           "Introduction to Python",
				Description:     "Core Python from variables to modules.",
				Category:        "programming",
				DifficultyLevel: model.DifficultyBeginner,
				InstructorName:  "Dr. Meera Joshi",
			},
			topics: []seedTopic{
				{title: "Variables and Types", minutes: 45},
				{title: "Control Flow", minutes: 60, prereqOf: []int{0}},
				{title: "Functions", minutes: 60, prereqOf: []int{1}},
				{title: "Collections", minutes: 90, prereqOf: []int{1}},
				{title: "Modules and Packages", minutes: 60, prereqOf: []int{2, 3}},
			},
		},
		{
			course: model.Course{
				Title:           "Linear Algebra Essentials",
				Description:     "Vectors, matrices and transformations for ML foundations.",
				Category:        "mathematics",
				DifficultyLevel: model.DifficultyIntermediate,
				InstructorName:  "Prof. R. Nair",
			},
			topics: []seedTopic{
				{title: "Vectors and Spaces", minutes: 90},
				{title: "Matrix Operations", minutes: 90, prereqOf: []int{0}},
				{title: "Determinants", minutes: 60, prereqOf: []int{1}},
				{title: "Eigenvalues and Eigenvectors", minutes: 120, prereqOf: []int{1, 2}},
			},
		},
	}

	for _, sc := range seedCourses {
		if err := s.db.Create(&sc.course).Error; err != nil {
			return err
		}

		created := make([]model.Topic, 0, len(sc.topics))
		for i, st := range sc.topics {
			topic := model.Topic{
				CourseID:                 sc.course.ID,
				Title:                    st.title,
				SequenceOrder:            i + 1,
				EstimatedDurationMinutes: st.minutes,
			}
			if err := s.db.Create(&topic).Error; err != nil {
				return err
			}
			created = append(created, topic)
		}

		for i, st := range sc.topics {
			for _, prereqIdx := range st.prereqOf {
				edge := model.Prerequisite{
					TopicID:        created[i].ID,
					PrerequisiteID: created[prereqIdx].ID,
				}
				if err := s.db.Create(&edge).Error; err != nil {
					return err
				}
			}
		}

		log.Printf("✅ Created course: %s (%d topics)\n", sc.course.Title, len(sc.topics))
	}

	return nil
}
