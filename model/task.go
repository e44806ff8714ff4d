package model

import (
	"time"

	"gorm.io/gorm"
)

// Task lifecycle states.
const (
	TaskTodo       = "todo"
	TaskInProgress = "in_progress"
	TaskDone       = "done"
)

// Task is a manual student obligation with a fixed due date semantics. The
// workload allocator treats todo tasks as hard constraints.
type Task struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
	UserID         uint           `gorm:"not null;index" json:"user_id"`
	Title          string         `gorm:"not null" json:"title"`
	Description    string         `gorm:"type:text" json:"description"`
	Status         string         `gorm:"type:varchar(20);default:'todo'" json:"status"`     // todo, in_progress, done
	Priority       string         `gorm:"type:varchar(20);default:'medium'" json:"priority"` // low, medium, high, critical
	DueDate        *time.Time     `json:"due_date"`
	EstimatedHours float64        `gorm:"default:1" json:"estimated_hours"`
	Category       string         `gorm:"type:varchar(50);default:'study'" json:"category"` // school, study, personal, creative

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// StudySchedule holds a student's daily time windows as "HH:MM" clock
// strings. Sleep may wrap past midnight. The capacity model derives the
// available study hours from these windows.
type StudySchedule struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	UserID      uint           `gorm:"not null;uniqueIndex" json:"user_id"`
	SleepStart  string         `gorm:"type:varchar(5);default:'23:00'" json:"sleep_start"`
	SleepEnd    string         `gorm:"type:varchar(5);default:'07:00'" json:"sleep_end"`
	SchoolStart string         `gorm:"type:varchar(5);default:'09:00'" json:"school_start"`
	SchoolEnd   string         `gorm:"type:varchar(5);default:'16:00'" json:"school_end"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
