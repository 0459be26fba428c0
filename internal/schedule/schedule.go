// Package schedule runs deferred work on the tick that owns the game state.
//
// Jobs are keyed by a deadline on the tick clock and run from Poll, which the
// tick loop calls once per input batch. Nothing here sleeps or spawns
// goroutines; a delay is just a deadline that some later Poll passes. Other
// goroutines may Post or schedule jobs; the work still runs inside Poll.
package schedule

import (
	"container/heap"
	"sync"
	"time"
)

type job struct {
	key   string
	at    time.Time
	seq   uint64
	fn    func()
	index int
}

type jobHeap []*job

func (h jobHeap) Len() int { return len(h) }

func (h jobHeap) Less(i, j int) bool {
	if h[i].at.Equal(h[j].at) {
		return h[i].seq < h[j].seq
	}
	return h[i].at.Before(h[j].at)
}

func (h jobHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *jobHeap) Push(x any) {
	j := x.(*job)
	j.index = len(*h)
	*h = append(*h, j)
}

func (h *jobHeap) Pop() any {
	old := *h
	n := len(old)
	j := old[n-1]
	old[n-1] = nil
	j.index = -1
	*h = old[:n-1]
	return j
}

// Scheduler holds deadline-ordered jobs.
type Scheduler struct {
	mu    sync.Mutex
	now   time.Time
	seq   uint64
	jobs  jobHeap
	byKey map[string]*job
}

// New creates a scheduler whose clock starts at now.
func New(now time.Time) *Scheduler {
	return &Scheduler{now: now, byKey: make(map[string]*job)}
}

// Now returns the time of the last Poll.
func (s *Scheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// After schedules fn to run delay after the last Poll. A non-empty key
// replaces any job already scheduled under it.
func (s *Scheduler) After(key string, delay time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addLocked(key, s.now.Add(delay), fn)
}

// At schedules fn for an absolute deadline.
func (s *Scheduler) At(key string, at time.Time, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addLocked(key, at, fn)
}

// Post runs fn on the next Poll.
func (s *Scheduler) Post(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addLocked("", s.now, fn)
}

func (s *Scheduler) addLocked(key string, at time.Time, fn func()) {
	if fn == nil {
		return
	}
	if key != "" {
		if old, ok := s.byKey[key]; ok {
			heap.Remove(&s.jobs, old.index)
		}
	}
	s.seq++
	j := &job{key: key, at: at, seq: s.seq, fn: fn}
	heap.Push(&s.jobs, j)
	if key != "" {
		s.byKey[key] = j
	}
}

// Cancel drops the job under key. It reports whether one was pending.
func (s *Scheduler) Cancel(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.byKey[key]
	if !ok {
		return false
	}
	heap.Remove(&s.jobs, j.index)
	delete(s.byKey, key)
	return true
}

// Pending reports whether a job is scheduled under key.
func (s *Scheduler) Pending(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.byKey[key]
	return ok
}

// Len returns the number of scheduled jobs.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// Poll advances the clock to now and runs every job that is due, earliest
// first. Jobs scheduled by a running job for a time not after now run in the
// same Poll. It returns how many jobs ran.
func (s *Scheduler) Poll(now time.Time) int {
	s.mu.Lock()
	if now.After(s.now) {
		s.now = now
	}
	s.mu.Unlock()

	ran := 0
	for {
		s.mu.Lock()
		if len(s.jobs) == 0 || s.jobs[0].at.After(s.now) {
			s.mu.Unlock()
			return ran
		}
		j := heap.Pop(&s.jobs).(*job)
		if j.key != "" {
			delete(s.byKey, j.key)
		}
		s.mu.Unlock()

		j.fn()
		ran++
	}
}

// Clear drops every job.
func (s *Scheduler) Clear() {
	s.mu.Lock()
	s.jobs = nil
	s.byKey = make(map[string]*job)
	s.mu.Unlock()
}
