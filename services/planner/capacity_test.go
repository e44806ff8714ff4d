package planner

import "testing"

func TestDailyCapacityDefaults(t *testing.T) {
	weekday, bonus := DailyCapacity(nil)
	if weekday != DefaultWeekdayHours {
		t.Errorf("expected default weekday hours %v, got %v", DefaultWeekdayHours, weekday)
	}
	if bonus != DefaultWeekendBonus {
		t.Errorf("expected default weekend bonus %v, got %v", DefaultWeekendBonus, bonus)
	}
}

func TestDailyCapacity(t *testing.T) {
	tests := []struct {
		name        string
		schedule    Schedule
		wantWeekday float64
		wantBonus   float64
	}{
		{
			name: "typical school day",
			schedule: Schedule{
				SleepStart:  "23:00",
				SleepEnd:    "07:00",
				SchoolStart: "09:00",
				SchoolEnd:   "16:00",
			},
			// 24 - 8 sleep - 7 school - 2 buffer
			wantWeekday: 7,
			wantBonus:   7,
		},
		{
			name: "sleep wrapping midnight",
			schedule: Schedule{
				SleepStart:  "01:00",
				SleepEnd:    "09:00",
				SchoolStart: "10:00",
				SchoolEnd:   "14:00",
			},
			wantWeekday: 10,
			wantBonus:   4,
		},
		{
			name: "half hours",
			schedule: Schedule{
				SleepStart:  "22:30",
				SleepEnd:    "06:30",
				SchoolStart: "08:00",
				SchoolEnd:   "15:30",
			},
			wantWeekday: 6.5,
			wantBonus:   7.5,
		},
		{
			name: "heavy schedule clamps to the two hour floor",
			schedule: Schedule{
				SleepStart:  "21:00",
				SleepEnd:    "08:00",
				SchoolStart: "08:00",
				SchoolEnd:   "19:00",
			},
			wantWeekday: 2,
			wantBonus:   11,
		},
		{
			name: "inverted school window counts as no school",
			schedule: Schedule{
				SleepStart:  "23:00",
				SleepEnd:    "07:00",
				SchoolStart: "16:00",
				SchoolEnd:   "09:00",
			},
			wantWeekday: 14,
			wantBonus:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			weekday, bonus := DailyCapacity(&tt.schedule)
			if weekday != tt.wantWeekday {
				t.Errorf("weekday hours = %v, want %v", weekday, tt.wantWeekday)
			}
			if bonus != tt.wantBonus {
				t.Errorf("weekend bonus = %v, want %v", bonus, tt.wantBonus)
			}
		})
	}
}

// Weekday capacity never drops below the floor and weekends never have
// less capacity than weekdays.
func TestDailyCapacityMonotonicity(t *testing.T) {
	schedules := []Schedule{
		{SleepStart: "20:00", SleepEnd: "10:00", SchoolStart: "10:00", SchoolEnd: "20:00"},
		{SleepStart: "23:00", SleepEnd: "07:00", SchoolStart: "09:00", SchoolEnd: "16:00"},
		{SleepStart: "00:00", SleepEnd: "06:00", SchoolStart: "08:00", SchoolEnd: "12:00"},
	}
	for _, s := range schedules {
		weekday, bonus := DailyCapacity(&s)
		if weekday < 2 {
			t.Errorf("weekday hours %v below floor for %+v", weekday, s)
		}
		if weekday+bonus < weekday {
			t.Errorf("weekend capacity %v below weekday %v for %+v", weekday+bonus, weekday, s)
		}
	}
}
