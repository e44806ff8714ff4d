package router

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/neurolearn-api/database"
	"github.com/sahilchouksey/neurolearn-api/handlers"
	auth_handlers "github.com/sahilchouksey/neurolearn-api/handlers/auth"
	course_handlers "github.com/sahilchouksey/neurolearn-api/handlers/course"
	task_handlers "github.com/sahilchouksey/neurolearn-api/handlers/task"
	workload_handlers "github.com/sahilchouksey/neurolearn-api/handlers/workload"
	"github.com/sahilchouksey/neurolearn-api/services"
	"github.com/sahilchouksey/neurolearn-api/utils/auth"
	"github.com/sahilchouksey/neurolearn-api/utils/cache"
	"github.com/sahilchouksey/neurolearn-api/utils/middleware"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, store database.Storage) {
	// Get JWT secret from environment
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	jwtIssuer := os.Getenv("JWT_ISSUER")
	if jwtIssuer == "" {
		jwtIssuer = "neurolearn-api"
	}

	// Initialize JWT manager with config
	jwtConfig := auth.JWTConfig{
		Secret:        jwtSecret,
		Expiry:        24 * time.Hour,     // Access token expires in 24 hours
		RefreshExpiry: 7 * 24 * time.Hour, // Refresh token expires in 7 days
		Issuer:        jwtIssuer,
	}
	jwtManager := auth.NewJWTManager(jwtConfig)

	// Get DB instance (type assert from interface)
	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		log.Fatal("Failed to get GORM DB instance")
	}

	// Initialize Redis cache for plan caching and brute force protection
	redisCache, err := cache.NewRedisCache(cache.EnvRedisURL())
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Plan caching and brute force protection will be disabled.", err)
	}

	var bruteForceProtection *middleware.BruteForceProtection
	if redisCache != nil {
		bruteForceProtection = middleware.NewBruteForceProtection(redisCache)
	}

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, db)

	// Initialize services
	workloadService := services.NewWorkloadService(db, redisCache)
	courseService := services.NewCourseService(db, workloadService)
	learningPathService := services.NewLearningPathService(db, workloadService)

	// Initialize handlers
	authHandler := auth_handlers.NewAuthHandler(db, jwtManager, bruteForceProtection)
	taskHandler := task_handlers.NewTaskHandler(db, workloadService)
	workloadHandler := workload_handlers.NewWorkloadHandler(workloadService)
	courseHandler := course_handlers.NewCourseHandler(db, courseService)
	learningPathHandler := course_handlers.NewLearningPathHandler(learningPathService)

	// Apply security middleware
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000,http://localhost:3001"
	}

	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    allowedOrigins,
		RateLimitRequests: 100,             // 100 requests
		RateLimitWindow:   1 * time.Minute, // per minute
	})

	// Health check endpoint (public)
	app.Get("/ping", handlers.HandleCheckHealth(store))

	// API v1 group
	api := app.Group("/api/v1")

	// Auth routes (public)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)

	// Login with brute force protection
	if bruteForceProtection != nil {
		authGroup.Post("/login", bruteForceProtection.CheckAndRecordAttempt(), authHandler.Login)
	} else {
		authGroup.Post("/login", authHandler.Login)
	}

	authGroup.Post("/refresh", authHandler.RefreshToken)

	// Profile routes (protected)
	profileGroup := api.Group("/profile", authMiddleware.Required())
	profileGroup.Get("/", authHandler.GetProfile)
	profileGroup.Put("/", authHandler.UpdateProfile)

	// Task routes (protected)
	tasks := api.Group("/tasks", authMiddleware.Required())
	tasks.Get("/", taskHandler.ListTasks)
	tasks.Post("/", taskHandler.CreateTask)
	tasks.Patch("/:id", taskHandler.UpdateTask)
	tasks.Delete("/:id", taskHandler.DeleteTask)

	// Study schedule routes (protected)
	schedule := api.Group("/schedule", authMiddleware.Required())
	schedule.Get("/", taskHandler.GetSchedule)
	schedule.Put("/", taskHandler.UpdateSchedule)

	// Workload routes (protected)
	workload := api.Group("/workload", authMiddleware.Required())
	workload.Get("/optimize", workloadHandler.OptimizePlan)

	// Course routes
	courses := api.Group("/courses")
	courses.Get("/", courseHandler.ListCourses)  // Public: List all courses
	courses.Get("/:id", courseHandler.GetCourse) // Public: Get course with curriculum
	courses.Post("/", authMiddleware.Required(), courseHandler.CreateCourse)                    // Protected: Create course with topics
	courses.Post("/:id/enroll", authMiddleware.Required(), courseHandler.Enroll)                // Protected: Enroll in course
	courses.Post("/:id/remedial", authMiddleware.Required(), courseHandler.InsertRemedialTopic) // Protected: Splice in remedial topic

	// Enrollment routes (protected)
	api.Get("/enrollments", authMiddleware.Required(), courseHandler.ListEnrollments)

	// Topic routes (protected)
	api.Post("/topics/:id/complete", authMiddleware.Required(), courseHandler.CompleteTopic)

	// Learning path routes (protected)
	api.Get("/learning-path/active", authMiddleware.Required(), learningPathHandler.GetLearningPath)
}
