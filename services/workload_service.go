package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/sahilchouksey/neurolearn-api/model"
	"github.com/sahilchouksey/neurolearn-api/services/planner"
	"github.com/sahilchouksey/neurolearn-api/utils/cache"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// planCacheTTL is how long a compiled plan stays valid in Redis before the
// next request recomputes it. Task and schedule mutations invalidate early.
const planCacheTTL = 5 * time.Minute

// WorkloadService collects a student's obligations, runs the workload
// allocator and the deadline assignment service, and persists/caches the
// results. The allocator itself never touches the database; this service is
// the adapter that feeds it resolved value objects.
type WorkloadService struct {
	db    *gorm.DB
	cache *cache.RedisCache // nil disables plan caching
}

// NewWorkloadService creates a new workload service
func NewWorkloadService(db *gorm.DB, redisCache *cache.RedisCache) *WorkloadService {
	return &WorkloadService{
		db:    db,
		cache: redisCache,
	}
}

// Schedule loads the student's study schedule as a planner value object.
// Returns nil when the student never configured one (defaults apply).
func (s *WorkloadService) Schedule(userID uint) (*planner.Schedule, error) {
	var schedule model.StudySchedule
	err := s.db.Where("user_id = ?", userID).First(&schedule).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch schedule: %w", err)
	}
	return &planner.Schedule{
		SleepStart:  schedule.SleepStart,
		SleepEnd:    schedule.SleepEnd,
		SchoolStart: schedule.SchoolStart,
		SchoolEnd:   schedule.SchoolEnd,
	}, nil
}

// CollectObligations gathers the two obligation streams for a student:
// open manual tasks and the pending topics of every active enrollment,
// annotated with difficulty-weighted hour estimates. Read-only.
func (s *WorkloadService) CollectObligations(userID uint) ([]planner.FixedTask, []planner.FlexibleTopic, error) {
	var tasks []model.Task
	if err := s.db.Where("user_id = ? AND status = ?", userID, model.TaskTodo).Find(&tasks).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to fetch tasks: %w", err)
	}

	fixed := make([]planner.FixedTask, 0, len(tasks))
	for _, task := range tasks {
		fixed = append(fixed, planner.FixedTask{
			ID:       task.ID,
			Title:    task.Title,
			Hours:    task.EstimatedHours,
			Priority: task.Priority,
			DueDate:  task.DueDate,
			Category: task.Category,
		})
	}

	var enrollments []model.Enrollment
	if err := s.db.Preload("Course").
		Where("user_id = ? AND status = ?", userID, model.EnrollmentActive).
		Find(&enrollments).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to fetch enrollments: %w", err)
	}

	var flexible []planner.FlexibleTopic
	for _, enrollment := range enrollments {
		var topics []model.Topic
		if err := s.db.Where("course_id = ? AND completed_at IS NULL", enrollment.CourseID).
			Order("sequence_order").
			Find(&topics).Error; err != nil {
			return nil, nil, fmt.Errorf("failed to fetch topics for course %d: %w", enrollment.CourseID, err)
		}

		for _, topic := range topics {
			flexible = append(flexible, planner.FlexibleTopic{
				ID:       topic.ID,
				Title:    fmt.Sprintf("%s: %s", enrollment.Course.Title, topic.Title),
				Hours:    EstimateTopicHours(topic, enrollment.Course.DifficultyLevel),
				CourseID: enrollment.CourseID,
				Sequence: topic.SequenceOrder,
			})
		}
	}

	return fixed, flexible, nil
}

// EstimateTopicHours converts a topic into an hour estimate. An explicit
// duration wins; otherwise a crude regression proxy scales the description
// length by the course difficulty. The formula is kept as calibrated in
// production; do not "improve" it without re-baselining the plans.
func EstimateTopicHours(topic model.Topic, difficultyLevel string) float64 {
	if topic.EstimatedDurationMinutes > 0 {
		return roundHours(float64(topic.EstimatedDurationMinutes) / 60.0)
	}
	baseHours := float64(len(topic.Description))/800.0 + 0.5
	return roundHours(baseHours * difficultyMultiplier(difficultyLevel))
}

func difficultyMultiplier(level string) float64 {
	if level == "" {
		level = model.DifficultyIntermediate
	}
	switch strings.ToLower(level) {
	case model.DifficultyBeginner:
		return 1.0
	case model.DifficultyIntermediate:
		return 1.5
	case model.DifficultyAdvanced:
		return 2.0
	default:
		return 1.2
	}
}

func roundHours(h float64) float64 {
	return math.Round(h*10) / 10
}

// OptimizePlan computes (or serves from cache) the student's 7-day plan
// and persists it as the latest snapshot.
func (s *WorkloadService) OptimizePlan(ctx context.Context, userID uint) ([]planner.DayPlan, error) {
	cacheKey := planCacheKey(userID)
	if s.cache != nil {
		var cached []planner.DayPlan
		if err := s.cache.GetJSON(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	schedule, err := s.Schedule(userID)
	if err != nil {
		return nil, err
	}
	weekdayHours, weekendBonus := planner.DailyCapacity(schedule)

	fixed, flexible, err := s.CollectObligations(userID)
	if err != nil {
		return nil, err
	}

	plan := planner.Optimize(fixed, flexible, weekdayHours, weekendBonus, time.Now(), planner.DefaultHorizonDays)

	if err := s.saveSnapshot(userID, plan); err != nil {
		// A failed snapshot write must not break the response.
		log.Printf("WorkloadService: failed to persist plan snapshot for user %d: %v", userID, err)
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, cacheKey, plan, planCacheTTL); err != nil {
			log.Printf("WorkloadService: failed to cache plan for user %d: %v", userID, err)
		}
	}

	return plan, nil
}

// InvalidatePlan drops the cached plan after a task or schedule mutation.
func (s *WorkloadService) InvalidatePlan(ctx context.Context, userID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, planCacheKey(userID)); err != nil {
		log.Printf("WorkloadService: failed to invalidate plan cache for user %d: %v", userID, err)
	}
}

func (s *WorkloadService) saveSnapshot(userID uint, plan []planner.DayPlan) error {
	payload, err := json.Marshal(plan)
	if err != nil {
		return err
	}
	snapshot := model.PlanSnapshot{
		UserID:      userID,
		HorizonDays: planner.DefaultHorizonDays,
		Plan:        payload,
		GeneratedAt: time.Now(),
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(&snapshot).Error
}

// AssignTopicDeadlines stamps a suggested deadline onto each topic, in
// input order, routing around the student's existing due-dated tasks.
func (s *WorkloadService) AssignTopicDeadlines(userID uint, topics []model.Topic) ([]time.Time, error) {
	schedule, err := s.Schedule(userID)
	if err != nil {
		return nil, err
	}

	var tasks []model.Task
	if err := s.db.Where("user_id = ? AND status = ?", userID, model.TaskTodo).Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch tasks: %w", err)
	}

	existing := make([]planner.FixedTask, 0, len(tasks))
	for _, task := range tasks {
		existing = append(existing, planner.FixedTask{
			ID:      task.ID,
			Hours:   task.EstimatedHours,
			DueDate: task.DueDate,
		})
	}

	estimates := make([]planner.TopicEstimate, 0, len(topics))
	for _, topic := range topics {
		estimates = append(estimates, planner.TopicEstimate{
			TopicID:         topic.ID,
			DurationMinutes: topic.EstimatedDurationMinutes,
		})
	}

	return planner.AssignDeadlines(estimates, existing, schedule, time.Now()), nil
}

// RecalculateCourseTimeline re-runs deadline assignment over all currently
// incomplete topics of a course (in sequence order) and overwrites their
// suggested deadlines. Invoked after remedial topics are spliced in or a
// curriculum is renumbered.
func (s *WorkloadService) RecalculateCourseTimeline(userID, courseID uint) error {
	var enrollment model.Enrollment
	if err := s.db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return fmt.Errorf("failed to fetch enrollment: %w", err)
	}

	var topics []model.Topic
	if err := s.db.Where("course_id = ? AND completed_at IS NULL", courseID).
		Order("sequence_order").
		Find(&topics).Error; err != nil {
		return fmt.Errorf("failed to fetch topics: %w", err)
	}
	if len(topics) == 0 {
		return nil
	}

	deadlines, err := s.AssignTopicDeadlines(userID, topics)
	if err != nil {
		return err
	}

	for i := range topics {
		topics[i].SuggestedDeadline = &deadlines[i]
		if err := s.db.Model(&model.Topic{}).Where("id = ?", topics[i].ID).
			Update("suggested_deadline", deadlines[i]).Error; err != nil {
			return fmt.Errorf("failed to update topic %d deadline: %w", topics[i].ID, err)
		}
	}

	last := deadlines[len(deadlines)-1]
	updates := map[string]interface{}{
		"adjusted_target_date": last,
		"adjustment_reason":    fmt.Sprintf("Timeline shifted due to curriculum changes on %s", time.Now().Format("2006-01-02")),
	}
	if err := s.db.Model(&enrollment).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update enrollment target date: %w", err)
	}

	return nil
}

func planCacheKey(userID uint) string {
	return fmt.Sprintf("workload:plan:%d", userID)
}
