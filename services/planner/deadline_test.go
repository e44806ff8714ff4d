package planner

import (
	"testing"
	"time"
)

func TestAssignDeadlinesSequentialFill(t *testing.T) {
	// 6h default capacity, three 2h topics and one 4h topic: the first
	// three share day 0, the fourth spills to day 1.
	topics := []TopicEstimate{
		{TopicID: 1, DurationMinutes: 120},
		{TopicID: 2, DurationMinutes: 120},
		{TopicID: 3, DurationMinutes: 120},
		{TopicID: 4, DurationMinutes: 240},
	}
	dates := AssignDeadlines(topics, nil, nil, monday)
	if len(dates) != 4 {
		t.Fatalf("expected 4 dates, got %d", len(dates))
	}
	for i := 0; i < 3; i++ {
		if !dates[i].Equal(monday) {
			t.Errorf("topic %d assigned %v, want day 0", i+1, dates[i])
		}
	}
	if !dates[3].Equal(monday.AddDate(0, 0, 1)) {
		t.Errorf("topic 4 assigned %v, want day 1", dates[3])
	}
}

func TestAssignDeadlinesDefaultsToOneHour(t *testing.T) {
	topics := []TopicEstimate{{TopicID: 1}, {TopicID: 2}}
	dates := AssignDeadlines(topics, nil, nil, monday)
	if !dates[0].Equal(monday) || !dates[1].Equal(monday) {
		t.Errorf("two 1h topics should both fit day 0, got %v and %v", dates[0], dates[1])
	}
}

// Existing due-dated tasks pre-claim their day's hours, so new topics route
// around them.
func TestAssignDeadlinesPreSeededWithFixedTasks(t *testing.T) {
	existing := []FixedTask{
		{ID: 1, Hours: 6, DueDate: datePtr(monday)}, // day 0 fully booked
	}
	topics := []TopicEstimate{{TopicID: 1, DurationMinutes: 60}}
	dates := AssignDeadlines(topics, existing, nil, monday)
	if !dates[0].Equal(monday.AddDate(0, 0, 1)) {
		t.Errorf("topic assigned %v, want day 1 (day 0 pre-seeded full)", dates[0])
	}
}

// The day cursor only moves forward: once a day rejects a topic it is never
// offered to a later topic, even one small enough to fit.
func TestAssignDeadlinesCursorNeverRewinds(t *testing.T) {
	existing := []FixedTask{
		{ID: 1, Hours: 5, DueDate: datePtr(monday)}, // 1h left on day 0
	}
	topics := []TopicEstimate{
		{TopicID: 1, DurationMinutes: 120}, // too big for day 0, advances cursor
		{TopicID: 2, DurationMinutes: 30},  // would fit day 0, but cursor moved on
	}
	dates := AssignDeadlines(topics, existing, nil, monday)
	day1 := monday.AddDate(0, 0, 1)
	if !dates[0].Equal(day1) {
		t.Errorf("topic 1 assigned %v, want day 1", dates[0])
	}
	if !dates[1].Equal(day1) {
		t.Errorf("topic 2 assigned %v, want day 1 (no rewind to day 0)", dates[1])
	}
}

func TestAssignDeadlinesOverflowFallback(t *testing.T) {
	// Each topic eats a whole default day; topics beyond the horizon all
	// collapse onto the today+14 fallback date.
	var topics []TopicEstimate
	for i := 1; i <= 16; i++ {
		topics = append(topics, TopicEstimate{TopicID: uint(i), DurationMinutes: 6 * 60})
	}
	dates := AssignDeadlines(topics, nil, nil, monday)

	overflow := monday.AddDate(0, 0, DeadlineHorizonDays)
	if !dates[15].Equal(overflow) {
		t.Errorf("overflow topic assigned %v, want %v", dates[15], overflow)
	}
	if dates[0].Equal(overflow) {
		t.Error("first topic should not overflow")
	}
}

func TestAssignDeadlinesUsesScheduleWholeHours(t *testing.T) {
	// 8h sleep + 7h school + 2h buffer leaves 7h per weekday; minutes are
	// deliberately ignored on this path.
	schedule := &Schedule{
		SleepStart:  "23:45",
		SleepEnd:    "07:45",
		SchoolStart: "09:30",
		SchoolEnd:   "16:30",
	}
	topics := []TopicEstimate{
		{TopicID: 1, DurationMinutes: 7 * 60},
		{TopicID: 2, DurationMinutes: 60},
	}
	dates := AssignDeadlines(topics, nil, schedule, monday)
	if !dates[0].Equal(monday) {
		t.Errorf("7h topic should fill day 0 exactly, got %v", dates[0])
	}
	if !dates[1].Equal(monday.AddDate(0, 0, 1)) {
		t.Errorf("next topic should land on day 1, got %v", dates[1])
	}
}

func TestAssignDeadlinesWeekendBonus(t *testing.T) {
	// Saturday is day 5 from monday; its capacity is 6+4. A 10h topic fits
	// only there within the first week.
	topics := []TopicEstimate{{TopicID: 1, DurationMinutes: 10 * 60}}
	dates := AssignDeadlines(topics, nil, nil, monday)
	saturday := monday.AddDate(0, 0, 5)
	if !dates[0].Equal(saturday) {
		t.Errorf("10h topic assigned %v, want saturday %v", dates[0], saturday)
	}
}

func TestAssignDeadlinesEmptyTopics(t *testing.T) {
	dates := AssignDeadlines(nil, nil, nil, time.Now())
	if len(dates) != 0 {
		t.Errorf("expected no dates, got %d", len(dates))
	}
}
