// Package planner implements the adaptive workload scheduler: a greedy
// constraint-satisfaction engine that packs a student's fixed tasks and
// flexible course topics into day-sized capacity bins, plus the
// prerequisite-graph learning path planner. Everything in this package is
// pure computation over value objects; persistence adapters in the services
// package populate the inputs.
package planner

import "time"

// Task priorities. Fixed tasks carry one of these; flexible topics are
// always medium until a cron job escalates them near their deadline.
const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

// Placement flags surfaced in the compiled plan.
const (
	StatusOverdue  = "overdue"  // due date already passed, forced into today
	StatusOverload = "overload" // no bin had room, forced into the last day
)

// Obligation types in the compiled plan.
const (
	TypeManual   = "manual"
	TypeFlexible = "flexible"
)

// Stress levels derived from a day's load ratio.
const (
	StressLow      = "low"
	StressMedium   = "medium"
	StressHigh     = "high"
	StressCritical = "critical"
)

// Schedule is a student's daily availability window. Times are "HH:MM"
// clock strings; sleep may wrap past midnight (23:00 to 07:00). Callers
// must validate the format before handing a schedule to this package.
type Schedule struct {
	SleepStart  string
	SleepEnd    string
	SchoolStart string
	SchoolEnd   string
}

// FixedTask is a manual obligation with a hard deadline semantics: its due
// date is not negotiable during allocation.
type FixedTask struct {
	ID       uint
	Title    string
	Hours    float64
	Priority string
	DueDate  *time.Time
	Category string
}

// FlexibleTopic is a pending course unit placed as a soft constraint.
// Sequence preserves the intra-course precedence order; Hours is the
// difficulty-weighted estimate produced by the task collector.
type FlexibleTopic struct {
	ID       uint
	Title    string
	Hours    float64
	CourseID uint
	Sequence int
}

// PlannedItem is one obligation placed into a day bin.
type PlannedItem struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Hours    float64 `json:"hours"`
	Priority string  `json:"priority"`
	Type     string  `json:"type"`
	Category string  `json:"category"`
	Status   string  `json:"status,omitempty"`
}

// DayPlan is one day of the compiled plan.
type DayPlan struct {
	Date           string        `json:"date"`
	Day            string        `json:"day"`
	Tasks          []PlannedItem `json:"tasks"`
	AllocatedHours float64       `json:"allocated_hours"`
	Capacity       float64       `json:"capacity"`
	Stress         string        `json:"stress"`
}
