package task

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/neurolearn-api/model"
	"github.com/sahilchouksey/neurolearn-api/services"
	"github.com/sahilchouksey/neurolearn-api/utils/middleware"
	"github.com/sahilchouksey/neurolearn-api/utils/response"
	"github.com/sahilchouksey/neurolearn-api/utils/validation"
	"gorm.io/gorm"
)

// TaskHandler handles manual task requests
type TaskHandler struct {
	db        *gorm.DB
	validator *validation.Validator
	workload  *services.WorkloadService
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(db *gorm.DB, workload *services.WorkloadService) *TaskHandler {
	return &TaskHandler{
		db:        db,
		validator: validation.NewValidator(),
		workload:  workload,
	}
}

// CreateTaskRequest represents the request body for creating a task
type CreateTaskRequest struct {
	Title          string  `json:"title" validate:"required,min=1,max=200"`
	Description    string  `json:"description" validate:"omitempty,max=5000"`
	Priority       string  `json:"priority" validate:"omitempty,oneof=low medium high critical"`
	DueDate        string  `json:"due_date" validate:"omitempty"` // "2006-01-02"
	EstimatedHours float64 `json:"estimated_hours" validate:"omitempty,min=0,max=100"`
	Category       string  `json:"category" validate:"omitempty,oneof=school study personal creative"`
}

// UpdateTaskRequest represents the request body for updating a task
type UpdateTaskRequest struct {
	Title          string   `json:"title" validate:"omitempty,min=1,max=200"`
	Description    *string  `json:"description" validate:"omitempty,max=5000"`
	Status         string   `json:"status" validate:"omitempty,oneof=todo in_progress done"`
	Priority       string   `json:"priority" validate:"omitempty,oneof=low medium high critical"`
	DueDate        *string  `json:"due_date"`
	EstimatedHours *float64 `json:"estimated_hours" validate:"omitempty,min=0,max=100"`
}

// ListTasks handles GET /api/v1/tasks
func (h *TaskHandler) ListTasks(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	query := h.db.Model(&model.Task{}).Where("user_id = ?", userID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count tasks")
	}

	offset := (page - 1) * limit
	pagination := response.CalculatePagination(page, limit, total)

	var tasks []model.Task
	if err := query.Order("due_date ASC NULLS LAST, created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&tasks).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch tasks")
	}

	return response.Paginated(c, tasks, pagination)
}

// CreateTask handles POST /api/v1/tasks
func (h *TaskHandler) CreateTask(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	req.Title = validation.SanitizeString(req.Title)

	task := model.Task{
		UserID:         userID,
		Title:          req.Title,
		Description:    req.Description,
		Status:         model.TaskTodo,
		Priority:       req.Priority,
		EstimatedHours: req.EstimatedHours,
		Category:       req.Category,
	}
	if task.Priority == "" {
		task.Priority = "medium"
	}
	if task.Category == "" {
		task.Category = "study"
	}
	if task.EstimatedHours <= 0 {
		task.EstimatedHours = 1
	}

	if req.DueDate != "" {
		due, err := time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			return response.BadRequest(c, "Invalid due_date, expected YYYY-MM-DD")
		}
		task.DueDate = &due
	}

	if err := h.db.Create(&task).Error; err != nil {
		return response.InternalServerError(c, "Failed to create task")
	}

	// A new obligation changes the compiled plan.
	h.workload.InvalidatePlan(c.Context(), userID)

	return response.Created(c, task)
}

// UpdateTask handles PATCH /api/v1/tasks/:id
func (h *TaskHandler) UpdateTask(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	taskID := c.Params("id")

	var req UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var task model.Task
	if err := h.db.Where("id = ? AND user_id = ?", taskID, userID).First(&task).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Task not found")
		}
		return response.InternalServerError(c, "Failed to fetch task")
	}

	if req.Title != "" {
		task.Title = validation.SanitizeString(req.Title)
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != "" {
		task.Status = req.Status
	}
	if req.Priority != "" {
		task.Priority = req.Priority
	}
	if req.EstimatedHours != nil && *req.EstimatedHours > 0 {
		task.EstimatedHours = *req.EstimatedHours
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			task.DueDate = nil
		} else {
			due, err := time.Parse("2006-01-02", *req.DueDate)
			if err != nil {
				return response.BadRequest(c, "Invalid due_date, expected YYYY-MM-DD")
			}
			task.DueDate = &due
		}
	}

	if err := h.db.Save(&task).Error; err != nil {
		return response.InternalServerError(c, "Failed to update task")
	}

	h.workload.InvalidatePlan(c.Context(), userID)

	return response.Success(c, task)
}

// DeleteTask handles DELETE /api/v1/tasks/:id
func (h *TaskHandler) DeleteTask(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	taskID := c.Params("id")

	result := h.db.Where("id = ? AND user_id = ?", taskID, userID).Delete(&model.Task{})
	if result.Error != nil {
		return response.InternalServerError(c, "Failed to delete task")
	}
	if result.RowsAffected == 0 {
		return response.NotFound(c, "Task not found")
	}

	h.workload.InvalidatePlan(c.Context(), userID)

	return response.NoContent(c)
}
