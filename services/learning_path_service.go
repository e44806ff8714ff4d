package services

import (
	"fmt"

	"github.com/sahilchouksey/neurolearn-api/model"
	"github.com/sahilchouksey/neurolearn-api/services/planner"
	"gorm.io/gorm"
)

// LearningPathService linearizes a course's prerequisite graph into a study
// order and annotates each topic with its lock state and suggested
// deadline.
type LearningPathService struct {
	db       *gorm.DB
	workload *WorkloadService
}

// NewLearningPathService creates a new learning path service
func NewLearningPathService(db *gorm.DB, workload *WorkloadService) *LearningPathService {
	return &LearningPathService{
		db:       db,
		workload: workload,
	}
}

// PathTopic is a topic in the computed study order.
type PathTopic struct {
	model.Topic
	Status            string `json:"status"` // locked, active, completed
	SuggestedDeadline string `json:"suggested_deadline"`
}

// LearningPath is the full payload of a learning path query.
type LearningPath struct {
	Course       model.Course `json:"course"`
	Progress     float64      `json:"progress"`
	Topics       []PathTopic  `json:"topics"`
	PathStrategy string       `json:"path_strategy"`
}

// ActivePath computes the learning path for one of the student's active
// enrollments. With courseID zero the most recent active enrollment wins.
// Returns gorm.ErrRecordNotFound when the student has no matching active
// enrollment.
func (s *LearningPathService) ActivePath(userID, courseID uint) (*LearningPath, error) {
	query := s.db.Preload("Course").Where("user_id = ? AND status = ?", userID, model.EnrollmentActive)
	if courseID != 0 {
		query = query.Where("course_id = ?", courseID)
	}

	var enrollment model.Enrollment
	if err := query.Order("enrolled_at DESC").First(&enrollment).Error; err != nil {
		return nil, err
	}

	var topics []model.Topic
	if err := s.db.Where("course_id = ?", enrollment.CourseID).Find(&topics).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch topics: %w", err)
	}

	topicIDs := make([]uint, 0, len(topics))
	byID := make(map[uint]model.Topic, len(topics))
	nodes := make([]planner.PathTopic, 0, len(topics))
	for _, topic := range topics {
		topicIDs = append(topicIDs, topic.ID)
		byID[topic.ID] = topic
		nodes = append(nodes, planner.PathTopic{
			ID:        topic.ID,
			Sequence:  topic.SequenceOrder,
			Completed: topic.CompletedAt != nil,
		})
	}

	var prereqs []model.Prerequisite
	if len(topicIDs) > 0 {
		if err := s.db.Where("topic_id IN ?", topicIDs).Find(&prereqs).Error; err != nil {
			return nil, fmt.Errorf("failed to fetch prerequisites: %w", err)
		}
	}
	edges := make([]planner.Edge, 0, len(prereqs))
	for _, p := range prereqs {
		edges = append(edges, planner.Edge{Prerequisite: p.PrerequisiteID, Topic: p.TopicID})
	}

	ordered := planner.PlanPath(nodes, edges)
	statuses := planner.PathStatuses(ordered)

	orderedModels := make([]model.Topic, 0, len(ordered))
	for _, node := range ordered {
		orderedModels = append(orderedModels, byID[node.ID])
	}

	deadlines, err := s.workload.AssignTopicDeadlines(userID, orderedModels)
	if err != nil {
		return nil, err
	}

	pathTopics := make([]PathTopic, 0, len(orderedModels))
	for i, topic := range orderedModels {
		pathTopics = append(pathTopics, PathTopic{
			Topic:             topic,
			Status:            statuses[i],
			SuggestedDeadline: deadlines[i].Format("2006-01-02"),
		})
	}

	return &LearningPath{
		Course:       enrollment.Course,
		Progress:     enrollment.CompletionPercentage,
		Topics:       pathTopics,
		PathStrategy: "graph-based topological sort",
	}, nil
}
