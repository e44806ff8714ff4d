package model

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered student (or admin)
type User struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
	StudentID        string         `gorm:"type:varchar(20);uniqueIndex;not null" json:"student_id"` // public identifier, e.g. "STU-1a2b3c4d"
	Email            string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash     string         `gorm:"not null" json:"-"` // Never expose password in JSON
	FullName         string         `gorm:"not null" json:"full_name"`
	Role             string         `gorm:"type:varchar(20);default:'student'" json:"role"` // student, admin
	LearningStyle    string         `gorm:"type:varchar(50)" json:"learning_style"`         // visual, auditory, kinesthetic, reading/writing
	PerformanceLevel string         `gorm:"type:varchar(20)" json:"performance_level"`      // beginner, intermediate, advanced
	LastLogin        *time.Time     `json:"last_login"`

	// Relationships
	Enrollments []Enrollment   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"enrollments,omitempty"`
	Tasks       []Task         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Schedule    *StudySchedule `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"schedule,omitempty"`
	Snapshots   []PlanSnapshot `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
