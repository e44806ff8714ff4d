package planner

import (
	"container/heap"
	"log"
	"sort"
)

// Topic statuses along a learning path. A topic never regresses.
const (
	TopicLocked    = "locked"
	TopicActive    = "active"
	TopicCompleted = "completed"
)

// PathTopic is a node in one course's prerequisite graph.
type PathTopic struct {
	ID        uint
	Sequence  int
	Completed bool
}

// Edge states that Prerequisite must be completed before Topic.
type Edge struct {
	Prerequisite uint
	Topic        uint
}

// PlanPath linearizes a course's topics into a valid study order using
// Kahn's algorithm with a min-heap keyed by (sequence, id), so that among
// the currently unlocked topics the original curriculum order wins and
// exact ties resolve deterministically by id. Edges referencing topics
// outside the set are ignored. A cycle is not an error: the graph is
// discarded and the topics fall back to plain sequence order.
func PlanPath(topics []PathTopic, edges []Edge) []PathTopic {
	if len(topics) == 0 {
		return nil
	}

	byID := make(map[uint]PathTopic, len(topics))
	adjacency := make(map[uint][]uint, len(topics))
	inDegree := make(map[uint]int, len(topics))
	for _, t := range topics {
		byID[t.ID] = t
		inDegree[t.ID] = 0
	}

	for _, e := range edges {
		if _, ok := byID[e.Prerequisite]; !ok {
			continue
		}
		if _, ok := byID[e.Topic]; !ok {
			continue
		}
		adjacency[e.Prerequisite] = append(adjacency[e.Prerequisite], e.Topic)
		inDegree[e.Topic]++
	}

	queue := &topicHeap{}
	heap.Init(queue)
	for id, degree := range inDegree {
		if degree == 0 {
			heap.Push(queue, heapNode{sequence: byID[id].Sequence, id: id})
		}
	}

	order := make([]PathTopic, 0, len(topics))
	for queue.Len() > 0 {
		node := heap.Pop(queue).(heapNode)
		order = append(order, byID[node.id])
		for _, dependent := range adjacency[node.id] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				heap.Push(queue, heapNode{sequence: byID[dependent].Sequence, id: dependent})
			}
		}
	}

	if len(order) < len(topics) {
		log.Printf("planner: prerequisite cycle detected, falling back to sequence order")
		order = append([]PathTopic(nil), topics...)
		sort.SliceStable(order, func(i, j int) bool {
			return order[i].Sequence < order[j].Sequence
		})
	}

	return order
}

// PathStatuses derives the lock state for each topic of an ordered path:
// the first incomplete topic whose predecessor is done is active,
// everything behind an incomplete predecessor stays locked.
func PathStatuses(ordered []PathTopic) []string {
	statuses := make([]string, len(ordered))
	for i, t := range ordered {
		switch {
		case t.Completed:
			statuses[i] = TopicCompleted
		case i == 0 || ordered[i-1].Completed:
			statuses[i] = TopicActive
		default:
			statuses[i] = TopicLocked
		}
	}
	return statuses
}

type heapNode struct {
	sequence int
	id       uint
}

type topicHeap []heapNode

func (h topicHeap) Len() int { return len(h) }

func (h topicHeap) Less(i, j int) bool {
	if h[i].sequence != h[j].sequence {
		return h[i].sequence < h[j].sequence
	}
	return h[i].id < h[j].id
}

func (h topicHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *topicHeap) Push(x any) { *h = append(*h, x.(heapNode)) }

func (h *topicHeap) Pop() any {
	old := *h
	n := len(old)
	node := old[n-1]
	*h = old[:n-1]
	return node
}
