package input

import "sync"

// SyntheticQueue holds core-generated events until the next input poll.
//
// Producers push from the game-logic context (including scheduler jobs);
// the poll hook drains. Drain swaps the whole queue out under the lock and
// hands it back, so the caller processes it lock-free.
type SyntheticQueue struct {
	mu      sync.Mutex
	pending Batch
}

// NewSyntheticQueue creates an empty queue.
func NewSyntheticQueue() *SyntheticQueue {
	return &SyntheticQueue{}
}

// Push appends events in order.
func (q *SyntheticQueue) Push(events ...Event) {
	if len(events) == 0 {
		return
	}
	q.mu.Lock()
	for _, ev := range events {
		ev.Synthetic = true
		q.pending = append(q.pending, ev)
	}
	q.mu.Unlock()
}

// Drain removes and returns everything queued so far.
func (q *SyntheticQueue) Drain() Batch {
	q.mu.Lock()
	out := q.pending
	q.pending = nil
	q.mu.Unlock()
	return out
}

// Len returns the number of queued events.
func (q *SyntheticQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Splice drains the queue and returns it followed by incoming. Neither group is
// reordered.
func (q *SyntheticQueue) Splice(incoming Batch) Batch {
	synth := q.Drain()
	if len(synth) == 0 {
		return incoming
	}
	out := make(Batch, 0, len(synth)+len(incoming))
	out = append(out, synth...)
	return append(out, incoming...)
}
