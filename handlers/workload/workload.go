package workload

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/neurolearn-api/services"
	"github.com/sahilchouksey/neurolearn-api/utils/middleware"
	"github.com/sahilchouksey/neurolearn-api/utils/response"
)

// WorkloadHandler serves the compiled study plan
type WorkloadHandler struct {
	workload *services.WorkloadService
}

// NewWorkloadHandler creates a new workload handler
func NewWorkloadHandler(workload *services.WorkloadService) *WorkloadHandler {
	return &WorkloadHandler{
		workload: workload,
	}
}

// OptimizePlan handles GET /api/v1/workload/optimize. It returns the 7-day
// plan, computing it fresh when no cached copy exists.
func (h *WorkloadHandler) OptimizePlan(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	plan, err := h.workload.OptimizePlan(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to optimize workload")
	}

	return response.Success(c, fiber.Map{
		"optimized_schedule": plan,
	})
}
