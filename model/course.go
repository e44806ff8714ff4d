package model

import (
	"time"

	"gorm.io/gorm"
)

// Course difficulty levels drive the topic hour-estimation multiplier.
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// Enrollment lifecycle states.
const (
	EnrollmentActive    = "active"
	EnrollmentCompleted = "completed"
	EnrollmentDropped   = "dropped"
)

// Course represents a study course whose curriculum is a sequence of topics
type Course struct {
	ID                     uint           `gorm:"primaryKey" json:"id"`
	CreatedAt              time.Time      `json:"created_at"`
	UpdatedAt              time.Time      `json:"updated_at"`
	DeletedAt              gorm.DeletedAt `gorm:"index" json:"-"`
	Title                  string         `gorm:"not null" json:"title"`
	Description            string         `gorm:"type:text" json:"description"`
	Category               string         `gorm:"type:varchar(100)" json:"category"`
	DifficultyLevel        string         `gorm:"type:varchar(20)" json:"difficulty_level"` // beginner, intermediate, advanced
	EstimatedDurationHours int            `json:"estimated_duration_hours"`
	InstructorName         string         `gorm:"type:varchar(100)" json:"instructor_name"`
	Rating                 float64        `gorm:"default:0" json:"rating"`
	TotalStudents          int            `gorm:"default:0" json:"total_students"`

	// Relationships
	Topics      []Topic      `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"topics,omitempty"`
	Enrollments []Enrollment `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
}

// Enrollment links a student to a course they are studying
type Enrollment struct {
	ID                   uint           `gorm:"primaryKey" json:"id"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`
	UserID               uint           `gorm:"not null;index" json:"user_id"`
	CourseID             uint           `gorm:"not null;index" json:"course_id"`
	EnrolledAt           time.Time      `json:"enrolled_at"`
	CompletionPercentage float64        `gorm:"default:0" json:"completion_percentage"`
	Status               string         `gorm:"type:varchar(20);default:'active'" json:"status"` // active, completed, dropped
	TargetCompletionDate *time.Time     `json:"target_completion_date"`
	AdjustedTargetDate   *time.Time     `json:"adjusted_target_date"`
	AdjustmentReason     string         `gorm:"type:text" json:"adjustment_reason"`

	// Relationships
	User   User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Course Course `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"course,omitempty"`
}

// Topic is one unit of a course curriculum. SequenceOrder defines the
// intra-course precedence used by the learning path planner; UserID is set
// only for personalized remedial topics spliced in after a weak quiz.
type Topic struct {
	ID                       uint           `gorm:"primaryKey" json:"id"`
	CreatedAt                time.Time      `json:"created_at"`
	UpdatedAt                time.Time      `json:"updated_at"`
	DeletedAt                gorm.DeletedAt `gorm:"index" json:"-"`
	CourseID                 uint           `gorm:"not null;index" json:"course_id"`
	UserID                   *uint          `gorm:"index" json:"user_id,omitempty"`
	Title                    string         `gorm:"not null" json:"title"`
	Description              string         `gorm:"type:text" json:"description"`
	SequenceOrder            int            `gorm:"not null" json:"sequence_order"`
	EstimatedDurationMinutes int            `json:"estimated_duration_minutes"`
	ActualDurationMinutes    int            `json:"actual_duration_minutes"`
	ClarificationNotes       string         `gorm:"type:text" json:"clarification_notes"`
	CompletedAt              *time.Time     `json:"completed_at"`
	SuggestedDeadline        *time.Time     `json:"suggested_deadline"`

	// Relationships
	Course        Course         `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
	Prerequisites []Prerequisite `gorm:"foreignKey:TopicID;constraint:OnDelete:CASCADE" json:"prerequisites,omitempty"`
}

// Prerequisite is a directed edge of the topic dependency graph:
// PrerequisiteID must be completed before TopicID becomes available.
type Prerequisite struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	TopicID        uint      `gorm:"not null;index" json:"topic_id"`
	PrerequisiteID uint      `gorm:"not null;index" json:"prerequisite_id"`

	// Relationships
	Topic Topic `gorm:"foreignKey:TopicID;constraint:OnDelete:CASCADE" json:"-"`
}
