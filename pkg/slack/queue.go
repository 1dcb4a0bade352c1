package slack

import (
	"context"
	"sync"

	"chatbridge/pkg/chat"
)

// queue is the unbounded hand-off between the listener goroutine and
// the consumer pump. Put never blocks and never drops; Get waits until
// an item, cancellation, or close.
type queue struct {
	mu     sync.Mutex
	items  []chat.Message
	wake   chan struct{}
	closed bool
}

func newQueue() *queue {
	return &queue{wake: make(chan struct{}, 1)}
}

func (q *queue) Put(msg chat.Message) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.items = append(q.items, msg)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// Get returns the next message in arrival order. The second return is
// false once the queue is closed and drained, or the context ends.
func (q *queue) Get(ctx context.Context) (chat.Message, bool) {
	for {
		q.mu.Lock()
		if len(q.items) > 0 {
			msg := q.items[0]
			q.items = q.items[1:]
			q.mu.Unlock()
			return msg, true
		}
		closed := q.closed
		q.mu.Unlock()

		if closed {
			return chat.Message{}, false
		}

		select {
		case <-ctx.Done():
			return chat.Message{}, false
		case <-q.wake:
		}
	}
}

// Close wakes any waiter. Messages already queued are still delivered
// before Get reports closed.
func (q *queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

func (q *queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
