package planner

import (
	"reflect"
	"testing"
	"time"
)

// monday is a fixed Monday so weekday/weekend bins land deterministically:
// indexes 0-4 are weekdays, 5 and 6 the weekend.
var monday = time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)

func datePtr(t time.Time) *time.Time { return &t }

func findItem(plan []DayPlan, id string) (dayIndex int, item PlannedItem, found bool) {
	for i, day := range plan {
		for _, task := range day.Tasks {
			if task.ID == id {
				return i, task, true
			}
		}
	}
	return 0, PlannedItem{}, false
}

func countItems(plan []DayPlan) int {
	n := 0
	for _, day := range plan {
		n += len(day.Tasks)
	}
	return n
}

func TestOptimizeEmptyObligations(t *testing.T) {
	plan := Optimize(nil, nil, 6, 4, monday, DefaultHorizonDays)
	if len(plan) != DefaultHorizonDays {
		t.Fatalf("expected %d days, got %d", DefaultHorizonDays, len(plan))
	}
	for _, day := range plan {
		if day.AllocatedHours != 0 {
			t.Errorf("%s: expected zero allocation, got %v", day.Date, day.AllocatedHours)
		}
		if day.Stress != StressLow {
			t.Errorf("%s: expected low stress, got %s", day.Date, day.Stress)
		}
		if day.Tasks == nil {
			t.Errorf("%s: tasks should be an empty slice, not nil", day.Date)
		}
	}
	if plan[0].Date != "2025-03-03" || plan[0].Day != "Monday" {
		t.Errorf("unexpected first day %s %s", plan[0].Date, plan[0].Day)
	}
	if plan[5].Capacity != 10 {
		t.Errorf("saturday capacity = %v, want weekday 6 + bonus 4", plan[5].Capacity)
	}
}

// A due date inside the horizon claims exactly that day's bin, even when
// the placement blows past capacity.
func TestOptimizeDueDateClaimsExactDay(t *testing.T) {
	fixed := []FixedTask{
		{ID: 1, Title: "Physics assignment", Hours: 3, Priority: PriorityHigh, DueDate: datePtr(monday.AddDate(0, 0, 3)), Category: "school"},
		{ID: 2, Title: "Huge revision", Hours: 40, Priority: PriorityHigh, DueDate: datePtr(monday.AddDate(0, 0, 3)), Category: "study"},
	}
	plan := Optimize(fixed, nil, 6, 4, monday, DefaultHorizonDays)

	day, item, ok := findItem(plan, "1")
	if !ok {
		t.Fatal("task 1 missing from plan")
	}
	if day != 3 {
		t.Errorf("task 1 placed on day %d, want 3", day)
	}
	if item.Status != "" {
		t.Errorf("in-horizon due task should carry no status flag, got %q", item.Status)
	}

	if day, _, ok = findItem(plan, "2"); !ok || day != 3 {
		t.Fatalf("task 2 must also land on day 3 regardless of capacity (ok=%v day=%d)", ok, day)
	}
	if plan[3].AllocatedHours <= plan[3].Capacity {
		t.Errorf("expected day 3 overcommitted, allocated %v capacity %v", plan[3].AllocatedHours, plan[3].Capacity)
	}
	if plan[3].Stress != StressCritical {
		t.Errorf("overcommitted day stress = %s, want critical", plan[3].Stress)
	}
}

func TestOptimizeOverdueForcedIntoToday(t *testing.T) {
	fixed := []FixedTask{
		{ID: 7, Title: "Late essay", Hours: 2, Priority: PriorityMedium, DueDate: datePtr(monday.AddDate(0, 0, -2)), Category: "school"},
	}
	plan := Optimize(fixed, nil, 6, 4, monday, DefaultHorizonDays)

	day, item, ok := findItem(plan, "7")
	if !ok {
		t.Fatal("overdue task missing from plan")
	}
	if day != 0 {
		t.Errorf("overdue task placed on day %d, want 0", day)
	}
	if item.Status != StatusOverdue {
		t.Errorf("status = %q, want %q", item.Status, StatusOverdue)
	}
	if item.Priority != PriorityCritical {
		t.Errorf("priority = %q, want escalated to critical", item.Priority)
	}
}

func TestOptimizeNoDueDateFirstFitThenOverload(t *testing.T) {
	// Fill every day except day 2, then add a task without a due date.
	fixed := []FixedTask{
		{ID: 10, Title: "Free floating", Hours: 4, Priority: PriorityLow},
	}
	var blockers []FixedTask
	for i := 0; i < DefaultHorizonDays; i++ {
		if i == 2 {
			continue
		}
		blockers = append(blockers, FixedTask{
			ID: uint(100 + i), Title: "Blocker", Hours: 20, Priority: PriorityHigh,
			DueDate: datePtr(monday.AddDate(0, 0, i)),
		})
	}
	plan := Optimize(append(blockers, fixed...), nil, 6, 4, monday, DefaultHorizonDays)

	day, item, ok := findItem(plan, "10")
	if !ok {
		t.Fatal("task missing")
	}
	if day != 2 {
		t.Errorf("first-fit placed on day %d, want 2", day)
	}
	if item.Status != "" {
		t.Errorf("fitting task should not be flagged, got %q", item.Status)
	}

	// Now saturate everything: the task lands in the last bin, flagged.
	blockers = append(blockers, FixedTask{
		ID: 102, Title: "Blocker", Hours: 20, Priority: PriorityHigh,
		DueDate: datePtr(monday.AddDate(0, 0, 2)),
	})
	plan = Optimize(append(blockers, fixed...), nil, 6, 4, monday, DefaultHorizonDays)

	day, item, ok = findItem(plan, "10")
	if !ok {
		t.Fatal("task missing after saturation")
	}
	if day != DefaultHorizonDays-1 {
		t.Errorf("overloaded task on day %d, want last day %d", day, DefaultHorizonDays-1)
	}
	if item.Status != StatusOverload {
		t.Errorf("status = %q, want %q", item.Status, StatusOverload)
	}
}

func TestOptimizeDueBeyondHorizonExcluded(t *testing.T) {
	fixed := []FixedTask{
		{ID: 3, Title: "Next month exam prep", Hours: 5, Priority: PriorityHigh, DueDate: datePtr(monday.AddDate(0, 0, 20))},
	}
	plan := Optimize(fixed, nil, 6, 4, monday, DefaultHorizonDays)
	if _, _, ok := findItem(plan, "3"); ok {
		t.Error("task due beyond the horizon must not appear in this plan")
	}
}

// Every fixed task due inside the horizon appears exactly once.
func TestOptimizeNoSilentLoss(t *testing.T) {
	var fixed []FixedTask
	for i := 0; i < DefaultHorizonDays; i++ {
		fixed = append(fixed, FixedTask{
			ID: uint(i + 1), Title: "Task", Hours: 9, Priority: PriorityMedium,
			DueDate: datePtr(monday.AddDate(0, 0, i)),
		})
	}
	plan := Optimize(fixed, nil, 6, 4, monday, DefaultHorizonDays)

	seen := map[string]int{}
	for _, day := range plan {
		for _, task := range day.Tasks {
			seen[task.ID]++
		}
	}
	for i := 1; i <= DefaultHorizonDays; i++ {
		id := string(rune('0' + i))
		if seen[id] != 1 {
			t.Errorf("task %s appears %d times, want exactly once", id, seen[id])
		}
	}
}

func TestOptimizeHighPriorityPlacedFirst(t *testing.T) {
	// Day 0 has 6 hours. The high priority task is listed last but must be
	// allocated first, pushing the medium task to day 1.
	fixed := []FixedTask{
		{ID: 1, Title: "Medium filler", Hours: 4, Priority: PriorityMedium},
		{ID: 2, Title: "High priority", Hours: 4, Priority: PriorityHigh},
	}
	plan := Optimize(fixed, nil, 6, 0, monday, DefaultHorizonDays)

	if day, _, _ := findItem(plan, "2"); day != 0 {
		t.Errorf("high priority task on day %d, want 0", day)
	}
	if day, _, _ := findItem(plan, "1"); day != 1 {
		t.Errorf("medium task on day %d, want 1", day)
	}
}

func TestOptimizeRoundRobinInterleavesCourses(t *testing.T) {
	flexible := []FlexibleTopic{
		{ID: 1, Title: "Math: Algebra", Hours: 1, CourseID: 1, Sequence: 1},
		{ID: 2, Title: "Math: Geometry", Hours: 1, CourseID: 1, Sequence: 2},
		{ID: 3, Title: "History: Rome", Hours: 1, CourseID: 2, Sequence: 1},
		{ID: 4, Title: "History: Greece", Hours: 1, CourseID: 2, Sequence: 2},
	}
	plan := Optimize(nil, flexible, 6, 4, monday, DefaultHorizonDays)

	var ids []string
	for _, task := range plan[0].Tasks {
		ids = append(ids, task.ID)
	}
	want := []string{"topic_1", "topic_3", "topic_2", "topic_4"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("day 0 order = %v, want interleaved %v", ids, want)
	}
}

func TestOptimizeFlexibleBacklog(t *testing.T) {
	var flexible []FlexibleTopic
	for i := 1; i <= 10; i++ {
		flexible = append(flexible, FlexibleTopic{
			ID: uint(i), Title: "Topic", Hours: 1, CourseID: 1, Sequence: i,
		})
	}
	plan := Optimize(nil, flexible, 3, 0, monday, 2)
	if got := countItems(plan); got != 6 {
		t.Errorf("placed %d topics across a 2x3h horizon, want 6 (rest is backlog)", got)
	}
}

func TestOptimizeStressBoundaries(t *testing.T) {
	tests := []struct {
		hours float64
		want  string
	}{
		{5.99, StressLow},
		{6.01, StressMedium},
		{8.51, StressHigh},
		{11.01, StressCritical},
	}
	for _, tt := range tests {
		fixed := []FixedTask{
			{ID: 1, Title: "Load", Hours: tt.hours, Priority: PriorityHigh, DueDate: datePtr(monday)},
		}
		plan := Optimize(fixed, nil, 10, 0, monday, DefaultHorizonDays)
		if plan[0].Stress != tt.want {
			t.Errorf("ratio %v/10: stress = %s, want %s", tt.hours, plan[0].Stress, tt.want)
		}
	}
}

func TestOptimizeZeroCapacityTreatedAsFullyLoaded(t *testing.T) {
	// A floor of 2 hours makes zero weekday capacity impossible through
	// DailyCapacity, but the allocator itself must not divide by zero.
	plan := Optimize(nil, nil, 0, 0, monday, DefaultHorizonDays)
	for _, day := range plan {
		// The ratio pins to 1.0, which classifies as high rather than
		// critical or a division panic.
		if day.Stress != StressHigh {
			t.Errorf("%s: stress = %s, want high for pinned ratio", day.Date, day.Stress)
		}
	}
}

func TestOptimizeIdempotent(t *testing.T) {
	fixed := []FixedTask{
		{ID: 1, Title: "Essay", Hours: 2, Priority: PriorityHigh, DueDate: datePtr(monday.AddDate(0, 0, 2))},
		{ID: 2, Title: "Reading", Hours: 1.5, Priority: PriorityLow},
	}
	flexible := []FlexibleTopic{
		{ID: 1, Title: "Math: Algebra", Hours: 1.2, CourseID: 1, Sequence: 1},
		{ID: 2, Title: "Math: Geometry", Hours: 0.8, CourseID: 1, Sequence: 2},
	}

	first := Optimize(fixed, flexible, 6, 4, monday, DefaultHorizonDays)
	second := Optimize(fixed, flexible, 6, 4, monday, DefaultHorizonDays)
	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs must yield an identical plan")
	}
}

// The concrete end-to-end scenario: 7h weekdays, 14h weekends, one fixed
// task due on day 3, ten 1h topics from a single course.
func TestOptimizeConcreteScenario(t *testing.T) {
	weekday, bonus := DailyCapacity(&Schedule{
		SleepStart:  "23:00",
		SleepEnd:    "07:00",
		SchoolStart: "09:00",
		SchoolEnd:   "16:00",
	})
	if weekday != 7 || bonus != 7 {
		t.Fatalf("capacity = (%v, %v), want (7, 7)", weekday, bonus)
	}

	fixed := []FixedTask{
		{ID: 1, Title: "Project milestone", Hours: 3, Priority: PriorityHigh, DueDate: datePtr(monday.AddDate(0, 0, 3))},
	}
	var flexible []FlexibleTopic
	for i := 1; i <= 10; i++ {
		flexible = append(flexible, FlexibleTopic{
			ID: uint(i), Title: "Course: Topic", Hours: 1, CourseID: 1, Sequence: i,
		})
	}

	plan := Optimize(fixed, flexible, weekday, bonus, monday, DefaultHorizonDays)

	if day, _, ok := findItem(plan, "1"); !ok || day != 3 {
		t.Errorf("fixed task on day %d (found=%v), want day 3", day, ok)
	}
	// 7h on day 0 swallows the first seven topics; the remaining three fit
	// on day 1, nothing becomes backlog here.
	if len(plan[0].Tasks) != 7 {
		t.Errorf("day 0 holds %d topics, want 7", len(plan[0].Tasks))
	}
	if plan[0].AllocatedHours != 7 {
		t.Errorf("day 0 allocated %v, want 7", plan[0].AllocatedHours)
	}
}
