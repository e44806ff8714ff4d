package course

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/neurolearn-api/services"
	"github.com/sahilchouksey/neurolearn-api/utils/middleware"
	"github.com/sahilchouksey/neurolearn-api/utils/response"
	"gorm.io/gorm"
)

// LearningPathHandler serves prerequisite-ordered learning paths
type LearningPathHandler struct {
	paths *services.LearningPathService
}

// NewLearningPathHandler creates a new learning path handler
func NewLearningPathHandler(paths *services.LearningPathService) *LearningPathHandler {
	return &LearningPathHandler{
		paths: paths,
	}
}

// GetLearningPath handles GET /api/v1/learning-path/active. An optional course_id
// query selects a specific active enrollment; otherwise the most recent one
// is used.
func (h *LearningPathHandler) GetLearningPath(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var courseID uint
	if raw := c.Query("course_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return response.BadRequest(c, "Invalid course_id")
		}
		courseID = uint(parsed)
	}

	path, err := h.paths.ActivePath(userID, courseID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "No active enrollment found")
		}
		return response.InternalServerError(c, "Failed to compute learning path")
	}

	return response.Success(c, path)
}
