package queue

const UnlimitedCapacity = -1

// MutateFunc is invoked after queue length or capacity changes.
type MutateFunc func(length int, capacity int)

// Hooks defines callbacks for queue lifecycle events.
type Hooks[T any] struct {
	OnEnqueue func(item T, cycle int)
	OnDequeue func(item T, cycle int)
}

// TrackedQueue is a strict FIFO with capacity bookkeeping and lifecycle
// hooks. It backs both the scoreboard's expected-result queue and the
// elastic storage inside the in-process DUT models.
type TrackedQueue[T any] struct {
	name     string
	capacity int
	items    []T
	hooks    Hooks[T]
	mutate   MutateFunc
	maxLen   int
}

// NewTrackedQueue constructs a tracked queue with optional hooks and mutate
// callback. Use UnlimitedCapacity for no bound.
func NewTrackedQueue[T any](name string, capacity int, mutate MutateFunc, hooks Hooks[T]) *TrackedQueue[T] {
	q := &TrackedQueue[T]{
		name:     name,
		capacity: capacity,
		hooks:    hooks,
		mutate:   mutate,
	}
	q.notify()
	return q
}

// Name returns the queue name.
func (q *TrackedQueue[T]) Name() string {
	if q == nil {
		return ""
	}
	return q.name
}

// Capacity returns current capacity (-1 for unlimited).
func (q *TrackedQueue[T]) Capacity() int {
	if q == nil {
		return 0
	}
	return q.capacity
}

// Len returns the number of items.
func (q *TrackedQueue[T]) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// MaxLen returns the largest length the queue has reached since creation.
func (q *TrackedQueue[T]) MaxLen() int {
	if q == nil {
		return 0
	}
	return q.maxLen
}

// CanAccept checks if the queue can take itemsCount more entries.
func (q *TrackedQueue[T]) CanAccept(itemsCount int) bool {
	if q == nil {
		return true
	}
	if q.capacity < 0 {
		return true
	}
	return len(q.items)+itemsCount <= q.capacity
}

// Enqueue appends an item. Returns false if capacity would be exceeded.
func (q *TrackedQueue[T]) Enqueue(item T, cycle int) bool {
	if q == nil {
		return false
	}
	if q.capacity >= 0 && len(q.items) >= q.capacity {
		return false
	}
	q.items = append(q.items, item)
	if len(q.items) > q.maxLen {
		q.maxLen = len(q.items)
	}
	if q.hooks.OnEnqueue != nil {
		q.hooks.OnEnqueue(item, cycle)
	}
	q.notify()
	return true
}

// Front returns the oldest item without removing it.
func (q *TrackedQueue[T]) Front() (T, bool) {
	var zero T
	if q == nil || len(q.items) == 0 {
		return zero, false
	}
	return q.items[0], true
}

// PopFront removes and returns the oldest item.
func (q *TrackedQueue[T]) PopFront(cycle int) (T, bool) {
	var zero T
	if q == nil || len(q.items) == 0 {
		return zero, false
	}
	item := q.items[0]
	q.items = q.items[1:]
	if q.hooks.OnDequeue != nil {
		q.hooks.OnDequeue(item, cycle)
	}
	q.notify()
	return item, true
}

// Clear drops all items without firing dequeue hooks. Used on reset.
func (q *TrackedQueue[T]) Clear() {
	if q == nil {
		return
	}
	q.items = q.items[:0]
	q.notify()
}

// ForEach iterates items in FIFO order.
func (q *TrackedQueue[T]) ForEach(fn func(idx int, item T)) {
	if q == nil || fn == nil {
		return
	}
	for i, item := range q.items {
		fn(i, item)
	}
}

func (q *TrackedQueue[T]) notify() {
	if q == nil || q.mutate == nil {
		return
	}
	q.mutate(len(q.items), q.capacity)
}
