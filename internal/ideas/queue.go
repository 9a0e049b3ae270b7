package ideas

import (
	"errors"
	"sync"
)

var ErrEmptyQueue = errors.New("ideas: queue is empty")

// Queue is an append-only list of topics read round-robin. The cursor is a
// monotonic counter, so ideas appended later join the rotation in insertion order.
type Queue struct {
	mu     sync.Mutex
	ideas  []string
	cursor int
}

func NewQueue(seed []string) *Queue {
	ideas := make([]string, len(seed))
	copy(ideas, seed)
	return &Queue{ideas: ideas}
}

// Append adds idea as-is and returns the new number of ideas.
func (q *Queue) Append(idea string) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.ideas = append(q.ideas, idea)
	return len(q.ideas)
}

func (q *Queue) Next() (string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.ideas) == 0 {
		return "", ErrEmptyQueue
	}
	idea := q.ideas[q.cursor%len(q.ideas)]
	q.cursor++
	return idea, nil
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.ideas)
}

// Remaining is the number of ideas left before the rotation wraps.
func (q *Queue) Remaining() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.ideas) == 0 {
		return 0
	}
	return len(q.ideas) - q.cursor%len(q.ideas)
}
