package autosave

import (
	"sync"

	"snapkeep/value"
)

// updateQueue is an unbounded multi-producer queue of pending snapshots.
// push never blocks; the persistence loop is the only consumer.
type updateQueue struct {
	mu    sync.Mutex
	items []*value.Object
}

func newUpdateQueue() *updateQueue {
	return &updateQueue{}
}

// push appends a snapshot. Safe to call from any goroutine.
func (q *updateQueue) push(o *value.Object) {
	q.mu.Lock()
	q.items = append(q.items, o)
	q.mu.Unlock()
}

// drain removes and returns everything queued at this instant, in enqueue
// order. Snapshots pushed after drain returns wait for the next cycle.
func (q *updateQueue) drain() []*value.Object {
	q.mu.Lock()
	batch := q.items
	q.items = nil
	q.mu.Unlock()
	return batch
}

// size returns the number of queued snapshots.
func (q *updateQueue) size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
