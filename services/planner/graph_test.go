package planner

import (
	"reflect"
	"testing"
)

func orderedIDs(topics []PathTopic) []uint {
	ids := make([]uint, len(topics))
	for i, t := range topics {
		ids[i] = t.ID
	}
	return ids
}

func TestPlanPathEmpty(t *testing.T) {
	if got := PlanPath(nil, nil); got != nil {
		t.Errorf("empty topic set should return nil, got %v", got)
	}
}

func TestPlanPathLinearChain(t *testing.T) {
	topics := []PathTopic{
		{ID: 3, Sequence: 3},
		{ID: 1, Sequence: 1},
		{ID: 2, Sequence: 2},
	}
	edges := []Edge{
		{Prerequisite: 1, Topic: 2},
		{Prerequisite: 2, Topic: 3},
	}
	got := orderedIDs(PlanPath(topics, edges))
	want := []uint{1, 2, 3}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

// Among unlocked topics the lower sequence dequeues first; exact sequence
// ties resolve by id.
func TestPlanPathTieBreaks(t *testing.T) {
	topics := []PathTopic{
		{ID: 5, Sequence: 2},
		{ID: 4, Sequence: 1},
		{ID: 7, Sequence: 2},
		{ID: 6, Sequence: 3},
	}
	got := orderedIDs(PlanPath(topics, nil))
	want := []uint{4, 5, 7, 6}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

// Every prerequisite edge must be respected: A strictly before B.
func TestPlanPathTopologicalValidity(t *testing.T) {
	topics := []PathTopic{
		{ID: 1, Sequence: 1},
		{ID: 2, Sequence: 2},
		{ID: 3, Sequence: 3},
		{ID: 4, Sequence: 4},
		{ID: 5, Sequence: 5},
	}
	// Sequence says 2 early, but 2 depends on 4.
	edges := []Edge{
		{Prerequisite: 4, Topic: 2},
		{Prerequisite: 1, Topic: 3},
		{Prerequisite: 3, Topic: 5},
	}
	order := PlanPath(topics, edges)
	position := map[uint]int{}
	for i, topic := range order {
		position[topic.ID] = i
	}
	for _, e := range edges {
		if position[e.Prerequisite] >= position[e.Topic] {
			t.Errorf("edge %d->%d violated: positions %d >= %d",
				e.Prerequisite, e.Topic, position[e.Prerequisite], position[e.Topic])
		}
	}
	if len(order) != len(topics) {
		t.Errorf("order has %d topics, want %d", len(order), len(topics))
	}
}

func TestPlanPathCycleFallsBackToSequence(t *testing.T) {
	topics := []PathTopic{
		{ID: 2, Sequence: 2},
		{ID: 1, Sequence: 1},
	}
	edges := []Edge{
		{Prerequisite: 1, Topic: 2},
		{Prerequisite: 2, Topic: 1},
	}
	got := orderedIDs(PlanPath(topics, edges))
	want := []uint{1, 2}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("cycle fallback order = %v, want sequence order %v", got, want)
	}
}

func TestPlanPathIgnoresUnknownEdges(t *testing.T) {
	topics := []PathTopic{
		{ID: 1, Sequence: 1},
		{ID: 2, Sequence: 2},
	}
	edges := []Edge{
		{Prerequisite: 99, Topic: 2},
		{Prerequisite: 1, Topic: 98},
	}
	got := orderedIDs(PlanPath(topics, edges))
	want := []uint{1, 2}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestPathStatuses(t *testing.T) {
	tests := []struct {
		name    string
		ordered []PathTopic
		want    []string
	}{
		{
			name: "nothing done yet",
			ordered: []PathTopic{
				{ID: 1}, {ID: 2}, {ID: 3},
			},
			want: []string{TopicActive, TopicLocked, TopicLocked},
		},
		{
			name: "first completed unlocks second",
			ordered: []PathTopic{
				{ID: 1, Completed: true}, {ID: 2}, {ID: 3},
			},
			want: []string{TopicCompleted, TopicActive, TopicLocked},
		},
		{
			name: "all completed",
			ordered: []PathTopic{
				{ID: 1, Completed: true}, {ID: 2, Completed: true},
			},
			want: []string{TopicCompleted, TopicCompleted},
		},
		{
			name: "gap keeps later topics locked",
			ordered: []PathTopic{
				{ID: 1, Completed: true}, {ID: 2}, {ID: 3}, {ID: 4},
			},
			want: []string{TopicCompleted, TopicActive, TopicLocked, TopicLocked},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PathStatuses(tt.ordered)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("statuses = %v, want %v", got, tt.want)
			}
		})
	}
}
