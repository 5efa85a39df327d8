// Package host models the environment the viewer runs in: a per-refresh frame scheduler,
// resize notifications and the container the drawing surface fills.
// Everything here is driven from the single UI thread; none of it is safe for concurrent use.
package host

// FrameID identifies a scheduled frame callback. Zero is never issued.
type FrameID uint64

// Scheduler runs callbacks once, on the next display refresh.
type Scheduler interface {
	RequestFrame(fn func()) FrameID
	CancelFrame(id FrameID)
}

type pendingFrame struct {
	id FrameID
	fn func()
}

// FrameQueue is a Scheduler pumped by the main loop calling Tick once per refresh.
// Callbacks requested while a Tick is running are deferred to the next Tick.
type FrameQueue struct {
	next    FrameID
	pending []pendingFrame
}

// NewFrameQueue returns an empty queue.
func NewFrameQueue() *FrameQueue {
	return &FrameQueue{}
}

// RequestFrame schedules fn for the next Tick and returns its handle.
func (q *FrameQueue) RequestFrame(fn func()) FrameID {
	q.next++
	q.pending = append(q.pending, pendingFrame{id: q.next, fn: fn})
	return q.next
}

// CancelFrame drops a pending callback. Unknown, already-run or in-flight ids are ignored.
func (q *FrameQueue) CancelFrame(id FrameID) {
	for i, p := range q.pending {
		if p.id == id {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
}

// Tick runs every callback pending at entry, in request order, and returns how many ran.
func (q *FrameQueue) Tick() int {
	batch := q.pending
	q.pending = nil
	for _, p := range batch {
		p.fn()
	}
	return len(batch)
}

// Pending returns the number of callbacks waiting for the next Tick.
func (q *FrameQueue) Pending() int {
	return len(q.pending)
}
