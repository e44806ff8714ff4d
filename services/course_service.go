package services

import (
	"fmt"
	"math"
	"time"

	"github.com/sahilchouksey/neurolearn-api/model"
	"gorm.io/gorm"
)

// CourseService handles curriculum lifecycle: course creation with
// generated topics, topic completion, and remedial topic insertion. The
// topics themselves arrive pre-generated (the content generator is an
// external collaborator returning structured JSON).
type CourseService struct {
	db       *gorm.DB
	workload *WorkloadService
}

// NewCourseService creates a new course service
func NewCourseService(db *gorm.DB, workload *WorkloadService) *CourseService {
	return &CourseService{
		db:       db,
		workload: workload,
	}
}

// TopicInput is one generated curriculum unit. PrerequisiteIndexes point at
// earlier entries of the same payload (by zero-based position).
type TopicInput struct {
	Title               string `json:"title" validate:"required,min=2,max=200"`
	Description         string `json:"description" validate:"omitempty,max=5000"`
	DurationMinutes     int    `json:"duration_minutes" validate:"omitempty,min=0"`
	PrerequisiteIndexes []int  `json:"prerequisite_indexes" validate:"omitempty,dive,min=0"`
}

// CreateCourseWithTopics creates a course, its topics (numbered by payload
// order) and their prerequisite edges, enrolls the creating student, and
// stamps suggested deadlines onto every topic in one transaction.
func (s *CourseService) CreateCourseWithTopics(userID uint, course model.Course, topicInputs []TopicInput) (*model.Course, error) {
	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(&course).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	topics := make([]model.Topic, 0, len(topicInputs))
	for i, input := range topicInputs {
		topic := model.Topic{
			CourseID:                 course.ID,
			Title:                    input.Title,
			Description:              input.Description,
			SequenceOrder:            i + 1,
			EstimatedDurationMinutes: input.DurationMinutes,
		}
		if err := tx.Create(&topic).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to create topic %q: %w", input.Title, err)
		}
		topics = append(topics, topic)
	}

	for i, input := range topicInputs {
		for _, prereqIdx := range input.PrerequisiteIndexes {
			if prereqIdx < 0 || prereqIdx >= len(topics) || prereqIdx == i {
				continue
			}
			edge := model.Prerequisite{
				TopicID:        topics[i].ID,
				PrerequisiteID: topics[prereqIdx].ID,
			}
			if err := tx.Create(&edge).Error; err != nil {
				tx.Rollback()
				return nil, fmt.Errorf("failed to create prerequisite edge: %w", err)
			}
		}
	}

	enrollment := model.Enrollment{
		UserID:     userID,
		CourseID:   course.ID,
		EnrolledAt: time.Now(),
		Status:     model.EnrollmentActive,
	}
	if err := tx.Create(&enrollment).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to enroll student: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	// Deadlines are computed outside the transaction; the curriculum is
	// already durable and a deadline failure only loses the stamps.
	deadlines, err := s.workload.AssignTopicDeadlines(userID, topics)
	if err == nil {
		for i := range topics {
			s.db.Model(&model.Topic{}).Where("id = ?", topics[i].ID).
				Update("suggested_deadline", deadlines[i])
		}
		if len(deadlines) > 0 {
			last := deadlines[len(deadlines)-1]
			s.db.Model(&enrollment).Update("target_completion_date", last)
		}
	}

	var created model.Course
	if err := s.db.Preload("Topics", func(db *gorm.DB) *gorm.DB {
		return db.Order("sequence_order")
	}).First(&created, course.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload course: %w", err)
	}
	return &created, nil
}

// Enroll adds a student to an existing course.
func (s *CourseService) Enroll(userID, courseID uint) (*model.Enrollment, error) {
	var course model.Course
	if err := s.db.First(&course, courseID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to fetch course: %w", err)
	}

	var existing model.Enrollment
	if err := s.db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&existing).Error; err == nil {
		return &existing, nil
	}

	enrollment := model.Enrollment{
		UserID:     userID,
		CourseID:   courseID,
		EnrolledAt: time.Now(),
		Status:     model.EnrollmentActive,
	}
	if err := s.db.Create(&enrollment).Error; err != nil {
		return nil, fmt.Errorf("failed to create enrollment: %w", err)
	}

	s.db.Model(&course).Update("total_students", gorm.Expr("total_students + 1"))

	return &enrollment, nil
}

// CompleteTopic marks a topic finished, refreshes the enrollment's
// completion percentage, and closes the enrollment once everything is done.
func (s *CourseService) CompleteTopic(userID, topicID uint, actualMinutes int) (*model.Topic, error) {
	var topic model.Topic
	if err := s.db.First(&topic, topicID).Error; err != nil {
		return nil, err
	}

	var enrollment model.Enrollment
	if err := s.db.Where("user_id = ? AND course_id = ?", userID, topic.CourseID).First(&enrollment).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	updates := map[string]interface{}{"completed_at": now}
	if actualMinutes > 0 {
		updates["actual_duration_minutes"] = actualMinutes
	}
	if err := s.db.Model(&topic).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to complete topic: %w", err)
	}
	topic.CompletedAt = &now

	var total, completed int64
	s.db.Model(&model.Topic{}).Where("course_id = ?", topic.CourseID).Count(&total)
	s.db.Model(&model.Topic{}).Where("course_id = ? AND completed_at IS NOT NULL", topic.CourseID).Count(&completed)

	if total > 0 {
		percentage := math.Round(float64(completed)/float64(total)*1000) / 10
		enrollmentUpdates := map[string]interface{}{"completion_percentage": percentage}
		if completed == total {
			enrollmentUpdates["status"] = model.EnrollmentCompleted
		}
		if err := s.db.Model(&enrollment).Updates(enrollmentUpdates).Error; err != nil {
			return nil, fmt.Errorf("failed to update enrollment progress: %w", err)
		}
	}

	return &topic, nil
}

// InsertRemedialTopic splices a personalized topic in front of an existing
// one, shifting later sequence numbers up, then recalculates the course
// timeline so every pending deadline reflects the new workload.
func (s *CourseService) InsertRemedialTopic(userID, courseID, beforeTopicID uint, title, description string, durationMinutes int) (*model.Topic, error) {
	var anchor model.Topic
	if err := s.db.Where("id = ? AND course_id = ?", beforeTopicID, courseID).First(&anchor).Error; err != nil {
		return nil, err
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	// Make room at the anchor's position.
	if err := tx.Model(&model.Topic{}).
		Where("course_id = ? AND sequence_order >= ?", courseID, anchor.SequenceOrder).
		Update("sequence_order", gorm.Expr("sequence_order + 1")).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to renumber topics: %w", err)
	}

	remedial := model.Topic{
		CourseID:                 courseID,
		UserID:                   &userID,
		Title:                    title,
		Description:              description,
		SequenceOrder:            anchor.SequenceOrder,
		EstimatedDurationMinutes: durationMinutes,
		ClarificationNotes:       fmt.Sprintf("Remedial content inserted before %q", anchor.Title),
	}
	if err := tx.Create(&remedial).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create remedial topic: %w", err)
	}

	// The remedial topic becomes a prerequisite of its anchor.
	edge := model.Prerequisite{TopicID: anchor.ID, PrerequisiteID: remedial.ID}
	if err := tx.Create(&edge).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to link remedial prerequisite: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	if err := s.workload.RecalculateCourseTimeline(userID, courseID); err != nil {
		return nil, err
	}

	return &remedial, nil
}
