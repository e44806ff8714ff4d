package cron

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sahilchouksey/neurolearn-api/model"
)

// EscalateDueTasks bumps open tasks that are due within 24 hours to high
// priority so the next plan compilation schedules them first. Runs hourly.
func (m *CronManager) EscalateDueTasks() {
	jobName := "escalate_due_tasks"

	cutoff := time.Now().Add(24 * time.Hour)

	result := m.db.Model(&model.Task{}).
		Where("status = ? AND due_date IS NOT NULL AND due_date <= ? AND priority IN ?",
			model.TaskTodo, cutoff, []string{"low", "medium"}).
		Update("priority", "high")

	if result.Error != nil {
		m.logJobError(jobName, fmt.Errorf("failed to escalate tasks: %w", result.Error))
		return
	}

	if result.RowsAffected > 0 {
		// Escalated priorities change plan ordering; drop stale cached plans.
		var userIDs []uint
		m.db.Model(&model.Task{}).
			Where("status = ? AND due_date IS NOT NULL AND due_date <= ?", model.TaskTodo, cutoff).
			Distinct("user_id").
			Pluck("user_id", &userIDs)

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		for _, userID := range userIDs {
			m.workload.InvalidatePlan(ctx, userID)
		}
	}

	m.logJobComplete(jobName, fmt.Sprintf("Escalated %d tasks", result.RowsAffected))
}

// RecalculateTimelines re-runs deadline assignment for every active
// enrollment so suggested deadlines stay aligned with each student's real
// progress. Runs nightly.
func (m *CronManager) RecalculateTimelines() {
	jobName := "recalculate_timelines"

	var enrollments []model.Enrollment
	if err := m.db.Where("status = ?", model.EnrollmentActive).Find(&enrollments).Error; err != nil {
		m.logJobError(jobName, fmt.Errorf("failed to query enrollments: %w", err))
		return
	}

	if len(enrollments) == 0 {
		m.logJobComplete(jobName, "No active enrollments")
		return
	}

	updated := 0
	failed := 0
	for _, enrollment := range enrollments {
		if err := m.workload.RecalculateCourseTimeline(enrollment.UserID, enrollment.CourseID); err != nil {
			log.Printf("[CRON] Failed to recalculate timeline for user %d course %d: %v",
				enrollment.UserID, enrollment.CourseID, err)
			failed++
			continue
		}
		updated++
	}

	m.logJobComplete(jobName, fmt.Sprintf("Recalculated %d timelines, failed %d", updated, failed))
}

// CleanupJobLogs deletes cron job logs older than 30 days. Runs nightly.
func (m *CronManager) CleanupJobLogs() {
	jobName := "cleanup_job_logs"

	cutoff := time.Now().AddDate(0, 0, -30)

	result := m.db.Unscoped().
		Where("started_at < ?", cutoff).
		Delete(&model.CronJobLog{})

	if result.Error != nil {
		m.logJobError(jobName, fmt.Errorf("failed to delete old logs: %w", result.Error))
		return
	}

	m.logJobComplete(jobName, fmt.Sprintf("Deleted %d old job logs", result.RowsAffected))
}
