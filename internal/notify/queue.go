// Package notify provides an in-memory queue of transient user-facing
// notifications. Entries expire on their own after a fixed delay or can be
// dismissed explicitly before that.
package notify

import (
	"sync"
	"time"

	"lockerhub/internal/core/domain/model/kernel"
)

// DefaultDelay is how long an entry stays visible before expiring on its
// own.
const DefaultDelay = 3500 * time.Millisecond

// Handle identifies one queued notification for dismissal.
type Handle = kernel.UUID

// Entry is one visible notification.
type Entry struct {
	Handle    Handle    `json:"id"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Queue holds notifications in insertion order. Each entry owns a timer
// that removes it after the configured delay; Dismiss stops the timer and
// removes the entry immediately. Expiry callbacks and Dismiss race safely:
// whoever takes the lock first wins, the other finds the entry gone and
// does nothing.
type Queue struct {
	mu      sync.Mutex
	delay   time.Duration
	entries []queued
}

type queued struct {
	entry Entry
	timer *time.Timer
}

// NewQueue creates a queue with the default expiry delay.
func NewQueue() *Queue {
	return NewQueueWithDelay(DefaultDelay)
}

// NewQueueWithDelay creates a queue whose entries expire after the given
// delay. A non-positive delay falls back to the default.
func NewQueueWithDelay(delay time.Duration) *Queue {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Queue{delay: delay}
}

// Notify enqueues a notification, implementing the application layer's
// notifier contract. The handle is discarded; callers that need to dismiss
// use Enqueue.
func (q *Queue) Notify(kind string, message string) {
	q.Enqueue(kind, message)
}

// Enqueue adds a notification and returns its handle. The entry expires
// after the queue's delay unless dismissed first.
func (q *Queue) Enqueue(kind string, message string) Handle {
	q.mu.Lock()
	defer q.mu.Unlock()

	handle := kernel.NewUUID()
	item := queued{
		entry: Entry{
			Handle:    handle,
			Kind:      kind,
			Message:   message,
			CreatedAt: time.Now(),
		},
	}
	item.timer = time.AfterFunc(q.delay, func() {
		q.remove(handle)
	})
	q.entries = append(q.entries, item)

	return handle
}

// Dismiss removes an entry before its timer fires. Dismissing an expired or
// unknown handle is a no-op.
func (q *Queue) Dismiss(handle Handle) {
	q.remove(handle)
}

// Entries returns a snapshot of the visible notifications in insertion
// order.
func (q *Queue) Entries() []Entry {
	q.mu.Lock()
	defer q.mu.Unlock()

	entries := make([]Entry, 0, len(q.entries))
	for _, item := range q.entries {
		entries = append(entries, item.entry)
	}
	return entries
}

// Len returns the number of visible notifications.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

// remove deletes the entry with the given handle and stops its timer. The
// membership re-check under the lock makes expiry and dismissal idempotent
// against each other.
func (q *Queue) remove(handle Handle) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, item := range q.entries {
		if item.entry.Handle.IsEqual(handle) {
			item.timer.Stop()
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			return
		}
	}
}
