package services

import (
	"testing"

	"github.com/sahilchouksey/neurolearn-api/model"
)

func TestEstimateTopicHoursExplicitDuration(t *testing.T) {
	topic := model.Topic{EstimatedDurationMinutes: 90}

	got := EstimateTopicHours(topic, model.DifficultyAdvanced)
	if got != 1.5 {
		t.Fatalf("expected explicit 90 minutes to win as 1.5h, got %v", got)
	}
}

func TestEstimateTopicHoursDescriptionHeuristic(t *testing.T) {
	// 800 chars of description adds one base hour on top of the 0.5 floor.
	longDesc := make([]byte, 800)
	for i := range longDesc {
		longDesc[i] = 'a'
	}

	tests := []struct {
		name       string
		topic      model.Topic
		difficulty string
		want       float64
	}{
		{
			name:       "empty description beginner",
			topic:      model.Topic{},
			difficulty: model.DifficultyBeginner,
			want:       0.5,
		},
		{
			name:       "empty description intermediate",
			topic:      model.Topic{},
			difficulty: model.DifficultyIntermediate,
			want:       0.8, // 0.5 * 1.5 rounded
		},
		{
			name:       "empty description advanced",
			topic:      model.Topic{},
			difficulty: model.DifficultyAdvanced,
			want:       1.0,
		},
		{
			name:       "long description beginner",
			topic:      model.Topic{Description: string(longDesc)},
			difficulty: model.DifficultyBeginner,
			want:       1.5,
		},
		{
			name:       "long description advanced",
			topic:      model.Topic{Description: string(longDesc)},
			difficulty: model.DifficultyAdvanced,
			want:       3.0,
		},
		{
			name:       "missing difficulty falls back to intermediate",
			topic:      model.Topic{},
			difficulty: "",
			want:       0.8,
		},
		{
			name:       "unknown difficulty gets mild weighting",
			topic:      model.Topic{},
			difficulty: "expert",
			want:       0.6, // 0.5 * 1.2
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateTopicHours(tt.topic, tt.difficulty)
			if got != tt.want {
				t.Errorf("EstimateTopicHours() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEstimateTopicHoursCaseInsensitiveDifficulty(t *testing.T) {
	topic := model.Topic{}
	if got := EstimateTopicHours(topic, "Advanced"); got != 1.0 {
		t.Errorf("mixed-case difficulty should match, got %v", got)
	}
}

func TestRoundHours(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{1.0, 1.0},
		{1.04, 1.0},
		{1.05, 1.1},
		{2.349, 2.3},
		{0.0, 0.0},
	}
	for _, tt := range tests {
		if got := roundHours(tt.in); got != tt.want {
			t.Errorf("roundHours(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPlanCacheKeyIsPerUser(t *testing.T) {
	if planCacheKey(1) == planCacheKey(2) {
		t.Fatal("cache keys must differ per user")
	}
	if planCacheKey(42) != "workload:plan:42" {
		t.Fatalf("unexpected cache key format: %s", planCacheKey(42))
	}
}
