package course

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/neurolearn-api/model"
	"github.com/sahilchouksey/neurolearn-api/services"
	"github.com/sahilchouksey/neurolearn-api/utils/middleware"
	"github.com/sahilchouksey/neurolearn-api/utils/response"
	"github.com/sahilchouksey/neurolearn-api/utils/validation"
	"gorm.io/gorm"
)

// CourseHandler handles course and enrollment requests
type CourseHandler struct {
	db        *gorm.DB
	validator *validation.Validator
	courses   *services.CourseService
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(db *gorm.DB, courses *services.CourseService) *CourseHandler {
	return &CourseHandler{
		db:        db,
		validator: validation.NewValidator(),
		courses:   courses,
	}
}

// CreateCourseRequest represents the request body for creating a course with
// its generated curriculum.
type CreateCourseRequest struct {
	Title           string                `json:"title" validate:"required,min=3,max=200"`
	Description     string                `json:"description" validate:"omitempty,max=5000"`
	Category        string                `json:"category" validate:"omitempty,max=100"`
	DifficultyLevel string                `json:"difficulty_level" validate:"omitempty,oneof=beginner intermediate advanced"`
	InstructorName  string                `json:"instructor_name" validate:"omitempty,max=100"`
	Topics          []services.TopicInput `json:"topics" validate:"required,min=1,dive"`
}

// CompleteTopicRequest represents the request body for completing a topic
type CompleteTopicRequest struct {
	ActualDurationMinutes int `json:"actual_duration_minutes" validate:"omitempty,min=0"`
}

// RemedialTopicRequest represents the request body for inserting a remedial
// topic ahead of a struggling student's next topic.
type RemedialTopicRequest struct {
	BeforeTopicID   uint   `json:"before_topic_id" validate:"required,min=1"`
	Title           string `json:"title" validate:"required,min=2,max=200"`
	Description     string `json:"description" validate:"omitempty,max=5000"`
	DurationMinutes int    `json:"duration_minutes" validate:"omitempty,min=0"`
}

// ListCourses handles GET /api/v1/courses
func (h *CourseHandler) ListCourses(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	query := h.db.Model(&model.Course{})
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if difficulty := c.Query("difficulty"); difficulty != "" {
		query = query.Where("difficulty_level = ?", difficulty)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count courses")
	}

	offset := (page - 1) * limit
	pagination := response.CalculatePagination(page, limit, total)

	var courses []model.Course
	if err := query.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&courses).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch courses")
	}

	return response.Paginated(c, courses, pagination)
}

// GetCourse handles GET /api/v1/courses/:id
func (h *CourseHandler) GetCourse(c *fiber.Ctx) error {
	courseID := c.Params("id")

	var course model.Course
	if err := h.db.Preload("Topics", func(db *gorm.DB) *gorm.DB {
		return db.Order("sequence_order")
	}).Preload("Topics.Prerequisites").First(&course, courseID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to fetch course")
	}

	return response.Success(c, course)
}

// CreateCourse handles POST /api/v1/courses
func (h *CourseHandler) CreateCourse(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var req CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	req.Title = validation.SanitizeString(req.Title)

	course := model.Course{
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		DifficultyLevel: req.DifficultyLevel,
		InstructorName:  req.InstructorName,
	}
	if course.DifficultyLevel == "" {
		course.DifficultyLevel = model.DifficultyIntermediate
	}

	created, err := h.courses.CreateCourseWithTopics(userID, course, req.Topics)
	if err != nil {
		return response.InternalServerError(c, "Failed to create course")
	}

	return response.Created(c, created)
}

// Enroll handles POST /api/v1/courses/:id/enroll
func (h *CourseHandler) Enroll(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	courseID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || courseID == 0 {
		return response.BadRequest(c, "Invalid course ID")
	}

	enrollment, err := h.courses.Enroll(userID, uint(courseID))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to enroll")
	}

	return response.Created(c, enrollment)
}

// ListEnrollments handles GET /api/v1/enrollments
func (h *CourseHandler) ListEnrollments(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	query := h.db.Preload("Course").Where("user_id = ?", userID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var enrollments []model.Enrollment
	if err := query.Order("enrolled_at DESC").Find(&enrollments).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch enrollments")
	}

	return response.Success(c, enrollments)
}

// CompleteTopic handles POST /api/v1/topics/:id/complete
func (h *CourseHandler) CompleteTopic(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	topicID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || topicID == 0 {
		return response.BadRequest(c, "Invalid topic ID")
	}

	var req CompleteTopicRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return response.BadRequest(c, "Invalid request body")
		}
	}

	topic, err := h.courses.CompleteTopic(userID, uint(topicID), req.ActualDurationMinutes)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Topic or enrollment not found")
		}
		return response.InternalServerError(c, "Failed to complete topic")
	}

	return response.Success(c, topic)
}

// InsertRemedialTopic handles POST /api/v1/courses/:id/remedial
func (h *CourseHandler) InsertRemedialTopic(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	courseID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || courseID == 0 {
		return response.BadRequest(c, "Invalid course ID")
	}

	var req RemedialTopicRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	topic, err := h.courses.InsertRemedialTopic(userID, uint(courseID), req.BeforeTopicID, req.Title, req.Description, req.DurationMinutes)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Topic not found in course")
		}
		return response.InternalServerError(c, "Failed to insert remedial topic")
	}

	return response.Created(c, topic)
}
