package model

import (
	"time"

	"gorm.io/datatypes"
)

// PlanSnapshot persists the most recently compiled workload plan for a
// student. One row per user, overwritten on every optimization run; the
// plan itself is stored as the JSON the API returned.
type PlanSnapshot struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	UserID      uint           `gorm:"not null;uniqueIndex" json:"user_id"`
	HorizonDays int            `json:"horizon_days"`
	Plan        datatypes.JSON `gorm:"type:jsonb" json:"plan"`
	GeneratedAt time.Time      `json:"generated_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for PlanSnapshot
func (PlanSnapshot) TableName() string {
	return "plan_snapshots"
}
