package task

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/neurolearn-api/model"
	"github.com/sahilchouksey/neurolearn-api/utils/middleware"
	"github.com/sahilchouksey/neurolearn-api/utils/response"
	"gorm.io/gorm"
)

// UpdateScheduleRequest represents the request body for updating the study
// schedule. Times are 24-hour "HH:MM" clock strings; the capacity model
// trusts stored schedules, so malformed times must be rejected here.
type UpdateScheduleRequest struct {
	SleepStart  string `json:"sleep_start" validate:"required,datetime=15:04"`
	SleepEnd    string `json:"sleep_end" validate:"required,datetime=15:04"`
	SchoolStart string `json:"school_start" validate:"required,datetime=15:04"`
	SchoolEnd   string `json:"school_end" validate:"required,datetime=15:04"`
}

// GetSchedule handles GET /api/v1/schedule. Students who never configured a
// schedule get the defaults back.
func (h *TaskHandler) GetSchedule(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var schedule model.StudySchedule
	if err := h.db.Where("user_id = ?", userID).First(&schedule).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.Success(c, model.StudySchedule{
				UserID:      userID,
				SleepStart:  "23:00",
				SleepEnd:    "07:00",
				SchoolStart: "09:00",
				SchoolEnd:   "16:00",
			})
		}
		return response.InternalServerError(c, "Failed to fetch schedule")
	}

	return response.Success(c, schedule)
}

// UpdateSchedule handles PUT /api/v1/schedule (upsert)
func (h *TaskHandler) UpdateSchedule(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var req UpdateScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var schedule model.StudySchedule
	err := h.db.Where("user_id = ?", userID).First(&schedule).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		return response.InternalServerError(c, "Failed to fetch schedule")
	}

	schedule.UserID = userID
	schedule.SleepStart = req.SleepStart
	schedule.SleepEnd = req.SleepEnd
	schedule.SchoolStart = req.SchoolStart
	schedule.SchoolEnd = req.SchoolEnd

	if err := h.db.Save(&schedule).Error; err != nil {
		return response.InternalServerError(c, "Failed to save schedule")
	}

	// Capacity changed, the cached plan is stale.
	h.workload.InvalidatePlan(c.Context(), userID)

	return response.Success(c, schedule)
}
