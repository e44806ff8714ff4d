package planner

import (
	"math"
	"strconv"
	"strings"
)

const (
	// DefaultWeekdayHours is assumed when a student has no schedule on file.
	DefaultWeekdayHours = 6.0
	// DefaultWeekendBonus is the extra weekend capacity without a schedule.
	DefaultWeekendBonus = 4.0

	// bufferHours is reserved every day for meals and hygiene.
	bufferHours = 2.0
	// minDailyHours is the floor on derived capacity.
	minDailyHours = 2.0
)

// DailyCapacity derives a student's available study hours from their
// schedule. Weekdays lose sleep, school and a fixed buffer; weekends regain
// the school hours as a bonus. A nil schedule yields the defaults.
func DailyCapacity(s *Schedule) (weekdayHours, weekendBonus float64) {
	if s == nil {
		return DefaultWeekdayHours, DefaultWeekendBonus
	}

	sleepStart := clockHours(s.SleepStart)
	sleepEnd := clockHours(s.SleepEnd)
	schoolStart := clockHours(s.SchoolStart)
	schoolEnd := clockHours(s.SchoolEnd)

	// Sleep usually wraps midnight (23:00 to 07:00 is 8 hours).
	sleepDuration := math.Mod(sleepEnd+24-sleepStart, 24)

	schoolDuration := 0.0
	if schoolEnd > schoolStart {
		schoolDuration = schoolEnd - schoolStart
	}

	weekdayHours = math.Max(minDailyHours, 24-sleepDuration-schoolDuration-bufferHours)
	return weekdayHours, schoolDuration
}

// clockHours parses "HH:MM" into fractional hours. Malformed input is a
// caller precondition violation and degrades to zero components.
func clockHours(t string) float64 {
	h, m := splitClock(t)
	return float64(h) + float64(m)/60.0
}

// clockHour parses only the hour component of "HH:MM". The deadline
// assignment path intentionally works in whole hours.
func clockHour(t string) int {
	h, _ := splitClock(t)
	return h
}

func splitClock(t string) (hour, minute int) {
	parts := strings.SplitN(t, ":", 2)
	hour, _ = strconv.Atoi(parts[0])
	if len(parts) > 1 {
		minute, _ = strconv.Atoi(parts[1])
	}
	return hour, minute
}
