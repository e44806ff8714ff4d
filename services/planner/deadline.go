package planner

import (
	"math"
	"time"
)

// DeadlineHorizonDays is the window deadline assignment packs into.
const DeadlineHorizonDays = 14

// deadlineWeekendBonus is the flat weekend capacity bump used by deadline
// assignment. Unlike the live allocator it does not derive the bonus from
// the school window; deadline math works in whole hours throughout.
const deadlineWeekendBonus = 4.0

// TopicEstimate is the input to deadline assignment: a topic and its raw
// duration estimate. A zero duration falls back to one hour.
type TopicEstimate struct {
	TopicID         uint
	DurationMinutes int
}

// AssignDeadlines stamps a suggested calendar date onto each topic, in
// input order. Bins over a 14-day horizon are pre-seeded with the hours of
// the student's existing due-dated tasks so new topics route around known
// obligations. A single forward cursor walks the days: once a day is full
// for the current topic it is never revisited for a later one. Topics that
// exhaust the horizon get today+14 as the overflow fallback.
func AssignDeadlines(topics []TopicEstimate, existing []FixedTask, schedule *Schedule, today time.Time) []time.Time {
	availHours := DefaultWeekdayHours
	if schedule != nil {
		sleepDuration := (clockHour(schedule.SleepEnd) + 24 - clockHour(schedule.SleepStart)) % 24
		schoolDuration := clockHour(schedule.SchoolEnd) - clockHour(schedule.SchoolStart)
		availHours = math.Max(minDailyHours, 24-float64(sleepDuration)-float64(schoolDuration)-bufferHours)
	}

	today = truncateToDay(today)
	bins := buildBins(today, DeadlineHorizonDays, availHours, deadlineWeekendBonus)

	// Pre-seed with hours already committed to due-dated fixed tasks.
	for _, task := range existing {
		if task.DueDate == nil {
			continue
		}
		due := truncateToDay(*task.DueDate)
		if due.Before(today) || due.After(bins[len(bins)-1].date) {
			continue
		}
		binFor(bins, due).allocated += task.Hours
	}

	overflow := today.AddDate(0, 0, DeadlineHorizonDays)
	dates := make([]time.Time, 0, len(topics))
	cursor := 0

	for _, topic := range topics {
		minutes := topic.DurationMinutes
		if minutes <= 0 {
			minutes = 60
		}
		hours := float64(minutes) / 60.0

		placed := false
		for cursor < DeadlineHorizonDays {
			bin := bins[cursor]
			if bin.allocated+hours <= bin.capacity {
				dates = append(dates, bin.date)
				bin.allocated += hours
				placed = true
				break
			}
			cursor++
		}
		if !placed {
			dates = append(dates, overflow)
		}
	}

	return dates
}
