package task

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

// scheduleTestApp mounts UpdateSchedule behind a stub auth middleware. The
// handler never reaches the database for the rejection cases below, so the
// nil db is safe.
func scheduleTestApp() *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", uint(1))
		return c.Next()
	})

	h := NewTaskHandler(nil, nil)
	app.Put("/schedule", h.UpdateSchedule)
	return app
}

func TestUpdateScheduleRejectsMalformedTimes(t *testing.T) {
	app := scheduleTestApp()

	cases := []struct {
		name string
		body string
	}{
		{
			name: "non-numeric clock",
			body: `{"sleep_start":"ab:cd","sleep_end":"07:00","school_start":"09:00","school_end":"16:00"}`,
		},
		{
			name: "out of range",
			body: `{"sleep_start":"23:00","sleep_end":"25:99","school_start":"09:00","school_end":"16:00"}`,
		},
		{
			name: "seconds not allowed",
			body: `{"sleep_start":"23:00","sleep_end":"07:00","school_start":"09:00:00","school_end":"16:00"}`,
		},
		{
			name: "missing field",
			body: `{"sleep_start":"23:00","sleep_end":"07:00","school_start":"09:00"}`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("PUT", "/schedule", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != fiber.StatusUnprocessableEntity {
				t.Errorf("status = %d, want %d", resp.StatusCode, fiber.StatusUnprocessableEntity)
			}
		})
	}
}
