// Package runqueue marshals work from foreign goroutines onto the render thread.
package runqueue

import (
	"log/slog"
	"runtime/debug"
	"sync"
)

type item struct {
	work func()

	// closed once the item ran or was dropped, only set for Call
	done chan struct{}
	ran  bool
}

// Queue is a multi producer, single consumer queue of work items.
// Enqueue and Call may be used from any goroutine, Drain and Close only from
// the render thread.
type Queue struct {
	mu     sync.Mutex
	items  []*item
	closed bool
}

func New() *Queue {
	return &Queue{}
}

// Enqueue appends work to the queue and returns immediately.
// The queue grows without bound. Work enqueued after Close is dropped.
func (q *Queue) Enqueue(work func()) {
	if work == nil {
		return
	}

	q.push(&item{work: work})
}

// Call enqueues work and waits until the render thread has executed it.
// It returns false without waiting if the queue is closed, or once the
// queue is closed before the work ran. Calling this on the render thread
// deadlocks.
func (q *Queue) Call(work func()) bool {
	if work == nil {
		return false
	}

	it := &item{work: work, done: make(chan struct{})}
	if !q.push(it) {
		return false
	}

	<-it.done
	return it.ran
}

func (q *Queue) push(it *item) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		slog.Warn("Dropping work item, queue is closed")
		return false
	}

	q.items = append(q.items, it)
	return true
}

// Len returns the number of pending work items.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.items)
}

// Drain runs all work items that are queued at the time of the call in
// FIFO order and returns how many were run. Items enqueued while draining
// are left for the next call. A panicking item does not stop the drain.
func (q *Queue) Drain() int {
	items := q.take()

	for idx, it := range items {
		run(it.work)

		it.ran = true
		if it.done != nil {
			close(it.done)
		}

		// allow the closure to be collected early
		items[idx] = nil
	}

	return len(items)
}

// Close drops all pending work and rejects new work. Goroutines waiting in
// Call return. Close is called once the render thread stops draining.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()

	items := q.take()
	if len(items) > 0 {
		slog.Warn("Dropping pending work items", slog.Int("count", len(items)))
	}

	for _, it := range items {
		if it.done != nil {
			close(it.done)
		}
	}
}

// Closed reports whether Close was called.
func (q *Queue) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.closed
}

func (q *Queue) take() []*item {
	q.mu.Lock()
	defer q.mu.Unlock()

	items := q.items
	q.items = nil
	return items
}

func run(work func()) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Work item panicked",
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())),
			)
		}
	}()

	work()
}
