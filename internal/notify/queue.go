package notify

import (
	"sync"
	"time"

	"github.com/angelmondragon/scent-storefront/pkg/types"
)

const maxPending = 20

// Queue collects toast notices for one visitor until the next response drains them.
type Queue struct {
	mu      sync.Mutex
	pending []types.Notice
	now     func() time.Time
}

func NewQueue() *Queue {
	return &Queue{now: time.Now}
}

func (q *Queue) Success(message string) { q.push(types.NoticeSuccess, message) }

func (q *Queue) Error(message string) { q.push(types.NoticeError, message) }

func (q *Queue) Info(message string) { q.push(types.NoticeInfo, message) }

func (q *Queue) push(level types.NoticeLevel, message string) {
	if q == nil || message == "" {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, types.Notice{Level: level, Message: message, CreatedAt: q.now()})
	// Oldest notices go first when a visitor never collects them.
	if len(q.pending) > maxPending {
		q.pending = q.pending[len(q.pending)-maxPending:]
	}
}

// Drain returns the queued notices in order and empties the queue.
func (q *Queue) Drain() []types.Notice {
	if q == nil {
		return nil
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.pending
	q.pending = nil
	return out
}

// Len reports how many notices are waiting.
func (q *Queue) Len() int {
	if q == nil {
		return 0
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
