package planner

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"
)

// DefaultHorizonDays is the rolling window of the live workload plan.
const DefaultHorizonDays = 7

// Load ratio thresholds for stress classification.
const (
	criticalLoadRatio = 1.10
	highLoadRatio     = 0.85
	mediumLoadRatio   = 0.60
)

// dayBin is one day's capacity bucket during an allocation run. Bins are
// owned exclusively by a single Optimize call; no state survives the run.
type dayBin struct {
	date      time.Time
	capacity  float64
	allocated float64
	tasks     []PlannedItem
}

// Optimize packs fixed tasks and flexible topics into horizonDays day bins
// starting at today and compiles the daily plan with stress indicators.
//
// Fixed tasks are hard constraints: an in-horizon due date claims exactly
// that day's bin even past capacity, an overdue task is forced into today
// as critical, and a task without a due date takes the first bin with room
// (or the last bin, flagged overload). Flexible topics are soft: they are
// interleaved round-robin across courses and first-fit packed; whatever
// does not fit stays in the backlog and is simply absent from the plan.
//
// The allocation is greedy and single-pass. A placed obligation is never
// moved to make room for a later one; that trade-off is part of the
// contract, not an oversight to optimize away.
func Optimize(fixed []FixedTask, flexible []FlexibleTopic, weekdayHours, weekendBonus float64, today time.Time, horizonDays int) []DayPlan {
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}
	today = truncateToDay(today)
	bins := buildBins(today, horizonDays, weekdayHours, weekendBonus)

	placeFixedTasks(bins, fixed, today)
	placeFlexibleTopics(bins, flexible)

	return compilePlan(bins)
}

func buildBins(today time.Time, horizonDays int, weekdayHours, weekendBonus float64) []*dayBin {
	bins := make([]*dayBin, horizonDays)
	for i := range bins {
		date := today.AddDate(0, 0, i)
		capacity := weekdayHours
		if isWeekend(date) {
			capacity += weekendBonus
		}
		bins[i] = &dayBin{date: date, capacity: capacity}
	}
	return bins
}

// placeFixedTasks applies the hard constraints, highest priority first and
// earlier due dates first within a priority tier. Tasks due beyond the
// horizon are out of scope for this plan and skipped.
func placeFixedTasks(bins []*dayBin, fixed []FixedTask, today time.Time) {
	tasks := append([]FixedTask(nil), fixed...)
	sort.SliceStable(tasks, func(i, j int) bool {
		ti, tj := tierOf(tasks[i]), tierOf(tasks[j])
		if ti != tj {
			return ti < tj
		}
		return dueOrMax(tasks[i].DueDate).Before(dueOrMax(tasks[j].DueDate))
	})

	horizonEnd := bins[len(bins)-1].date

	for _, task := range tasks {
		hours := task.Hours
		if hours <= 0 {
			hours = 1.0
		}
		item := PlannedItem{
			ID:       strconv.FormatUint(uint64(task.ID), 10),
			Title:    task.Title,
			Hours:    hours,
			Priority: task.Priority,
			Type:     TypeManual,
			Category: task.Category,
		}

		if task.DueDate == nil {
			placed := false
			for _, bin := range bins {
				if bin.allocated+hours <= bin.capacity {
					bin.tasks = append(bin.tasks, item)
					bin.allocated += hours
					placed = true
					break
				}
			}
			if !placed {
				// Every bin is full: push to the end of the window and
				// flag it so the overload is visible, not silent.
				item.Status = StatusOverload
				last := bins[len(bins)-1]
				last.tasks = append(last.tasks, item)
			}
			continue
		}

		due := truncateToDay(*task.DueDate)
		switch {
		case !due.Before(today) && !due.After(horizonEnd):
			// Deadlines are not negotiable: claim the exact day even if
			// that pushes the bin past capacity.
			bin := binFor(bins, due)
			bin.tasks = append(bin.tasks, item)
			bin.allocated += hours
		case due.Before(today):
			// Overdue: force into today as critical.
			item.Priority = PriorityCritical
			item.Status = StatusOverdue
			bins[0].tasks = append(bins[0].tasks, item)
			bins[0].allocated += hours
		default:
			// Due beyond the horizon; excluded from this planning cycle.
		}
	}
}

// placeFlexibleTopics interleaves topics round-robin across courses so the
// plan mixes subjects instead of exhausting one course first, then
// first-fit packs each topic chronologically. Unplaced topics are backlog.
func placeFlexibleTopics(bins []*dayBin, flexible []FlexibleTopic) {
	var courseOrder []uint
	queues := make(map[uint][]FlexibleTopic)
	for _, topic := range flexible {
		if _, seen := queues[topic.CourseID]; !seen {
			courseOrder = append(courseOrder, topic.CourseID)
		}
		queues[topic.CourseID] = append(queues[topic.CourseID], topic)
	}

	maxLen := 0
	for _, q := range queues {
		if len(q) > maxLen {
			maxLen = len(q)
		}
	}

	var interleaved []FlexibleTopic
	for i := 0; i < maxLen; i++ {
		for _, courseID := range courseOrder {
			if i < len(queues[courseID]) {
				interleaved = append(interleaved, queues[courseID][i])
			}
		}
	}

	for _, topic := range interleaved {
		for _, bin := range bins {
			if bin.allocated+topic.Hours <= bin.capacity {
				bin.tasks = append(bin.tasks, PlannedItem{
					ID:       fmt.Sprintf("topic_%d", topic.ID),
					Title:    topic.Title,
					Hours:    topic.Hours,
					Priority: PriorityMedium,
					Type:     TypeFlexible,
					Category: "study",
				})
				bin.allocated += topic.Hours
				break
			}
		}
	}
}

func compilePlan(bins []*dayBin) []DayPlan {
	plan := make([]DayPlan, 0, len(bins))
	for _, bin := range bins {
		loadRatio := 1.0
		if bin.capacity > 0 {
			loadRatio = bin.allocated / bin.capacity
		}

		stress := StressLow
		switch {
		case loadRatio > criticalLoadRatio:
			stress = StressCritical
		case loadRatio > highLoadRatio:
			stress = StressHigh
		case loadRatio > mediumLoadRatio:
			stress = StressMedium
		}

		tasks := bin.tasks
		if tasks == nil {
			tasks = []PlannedItem{}
		}

		plan = append(plan, DayPlan{
			Date:           bin.date.Format("2006-01-02"),
			Day:            bin.date.Weekday().String(),
			Tasks:          tasks,
			AllocatedHours: round1(bin.allocated),
			Capacity:       bin.capacity,
			Stress:         stress,
		})
	}
	return plan
}

func tierOf(t FixedTask) int {
	if t.Priority == PriorityHigh {
		return 0
	}
	return 1
}

func binFor(bins []*dayBin, date time.Time) *dayBin {
	for _, bin := range bins {
		if bin.date.Equal(date) {
			return bin
		}
	}
	return bins[len(bins)-1]
}

// farFuture sorts tasks without a due date behind every dated task within
// their priority tier.
var farFuture = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)

func dueOrMax(due *time.Time) time.Time {
	if due == nil {
		return farFuture
	}
	return *due
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
