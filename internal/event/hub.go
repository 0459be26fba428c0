package event

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/quickdraw/internal/input"
)

// PanicHandler is called when a listener panics.
type PanicHandler func(listener any, recovered any)

// Subscription is a handle to one registered capability.
type Subscription struct {
	id     string
	cancel func()
	active *atomic.Bool
}

// ID returns the subscription identifier.
func (s Subscription) ID() string {
	return s.id
}

// IsActive reports whether the subscription still receives events.
func (s Subscription) IsActive() bool {
	return s.active != nil && s.active.Load()
}

// Cancel stops delivery. It is safe to call more than once.
func (s Subscription) Cancel() {
	if s.cancel != nil {
		s.cancel()
	}
}

type entry[T any] struct {
	id      string
	sink    T
	pattern string
	active  *atomic.Bool
}

// Hub fans events out to registered sinks.
type Hub struct {
	mu      sync.RWMutex
	inputs  []entry[InputSink]
	anims   []entry[AnimationSink]
	notices []entry[NoticeSink]

	onPanic PanicHandler
	now     func() time.Time

	delivered atomic.Uint64
	panicked  atomic.Uint64
}

// HubOption configures a Hub.
type HubOption func(*Hub)

// WithPanicHandler sets the listener panic handler.
func WithPanicHandler(h PanicHandler) HubOption {
	return func(hub *Hub) {
		hub.onPanic = h
	}
}

// WithClock sets the clock used to stamp notices.
func WithClock(now func() time.Time) HubOption {
	return func(hub *Hub) {
		hub.now = now
	}
}

// NewHub creates an empty hub.
func NewHub(opts ...HubOption) *Hub {
	h := &Hub{now: time.Now}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register adds l under every capability it implements. Notices are
// delivered for all topics.
func (h *Hub) Register(l any) ([]Subscription, error) {
	if l == nil {
		return nil, ErrNilListener
	}
	var subs []Subscription
	if s, ok := l.(InputSink); ok {
		subs = append(subs, h.RegisterInput(s))
	}
	if s, ok := l.(AnimationSink); ok {
		subs = append(subs, h.RegisterAnimation(s))
	}
	if s, ok := l.(NoticeSink); ok {
		subs = append(subs, h.RegisterNotice("*", s))
	}
	if len(subs) == 0 {
		return nil, ErrNoCapability
	}
	return subs, nil
}

// RegisterInput adds an input sink.
func (h *Hub) RegisterInput(s InputSink) Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()
	e := newEntry(s, "")
	h.inputs = append(h.inputs, e)
	return h.subscription(e.id, e.active, func() {
		h.inputs = removeEntry(h.inputs, e.id)
	})
}

// RegisterAnimation adds an animation sink.
func (h *Hub) RegisterAnimation(s AnimationSink) Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()
	e := newEntry(s, "")
	h.anims = append(h.anims, e)
	return h.subscription(e.id, e.active, func() {
		h.anims = removeEntry(h.anims, e.id)
	})
}

// RegisterNotice adds a notice sink for topics matching pattern. A pattern
// is an exact topic, a prefix ending in ".*", or "*" for everything.
func (h *Hub) RegisterNotice(pattern string, s NoticeSink) Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()
	e := newEntry(s, pattern)
	h.notices = append(h.notices, e)
	return h.subscription(e.id, e.active, func() {
		h.notices = removeEntry(h.notices, e.id)
	})
}

func (h *Hub) subscription(id string, active *atomic.Bool, remove func()) Subscription {
	return Subscription{
		id:     id,
		active: active,
		cancel: func() {
			if !active.Swap(false) {
				return
			}
			h.mu.Lock()
			remove()
			h.mu.Unlock()
		},
	}
}

// DispatchInput delivers a batch to every input sink.
func (h *Hub) DispatchInput(batch input.Batch) {
	h.mu.RLock()
	sinks := append([]entry[InputSink](nil), h.inputs...)
	h.mu.RUnlock()
	for _, e := range sinks {
		if e.active.Load() {
			h.safely(e.sink, func() { e.sink.OnInput(batch) })
		}
	}
}

// DispatchAnimation delivers a tag to every animation sink and returns how
// many used it.
func (h *Hub) DispatchAnimation(tag string) int {
	h.mu.RLock()
	sinks := append([]entry[AnimationSink](nil), h.anims...)
	h.mu.RUnlock()
	used := 0
	for _, e := range sinks {
		if !e.active.Load() {
			continue
		}
		h.safely(e.sink, func() {
			if e.sink.OnAnimationEvent(tag) {
				used++
			}
		})
	}
	return used
}

// Notify publishes a notice to matching sinks.
func (h *Hub) Notify(topic string, payload any) {
	n := Notice{Topic: topic, Payload: payload, Time: h.now()}
	h.mu.RLock()
	sinks := append([]entry[NoticeSink](nil), h.notices...)
	h.mu.RUnlock()
	for _, e := range sinks {
		if e.active.Load() && Match(e.pattern, topic) {
			h.safely(e.sink, func() { e.sink.OnNotice(n) })
		}
	}
}

// Delivered returns how many listener calls completed.
func (h *Hub) Delivered() uint64 {
	return h.delivered.Load()
}

// Panicked returns how many listener calls panicked.
func (h *Hub) Panicked() uint64 {
	return h.panicked.Load()
}

func (h *Hub) safely(listener any, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			h.panicked.Add(1)
			if h.onPanic != nil {
				h.onPanic(listener, r)
			}
		}
	}()
	fn()
	h.delivered.Add(1)
}

// Match reports whether topic matches pattern.
func Match(pattern, topic string) bool {
	switch {
	case pattern == "*" || pattern == topic:
		return true
	case strings.HasSuffix(pattern, ".*"):
		return strings.HasPrefix(topic, pattern[:len(pattern)-1])
	}
	return false
}

func newEntry[T any](sink T, pattern string) entry[T] {
	active := &atomic.Bool{}
	active.Store(true)
	return entry[T]{id: uuid.NewString(), sink: sink, pattern: pattern, active: active}
}

func removeEntry[T any](list []entry[T], id string) []entry[T] {
	for i, e := range list {
		if e.id == id {
			return append(list[:i:i], list[i+1:]...)
		}
	}
	return list
}
