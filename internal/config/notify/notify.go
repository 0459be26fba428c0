// Package notify delivers configuration change notifications.
//
// Observers subscribe either to every change or to a dot-separated path;
// a path subscription also sees changes below it ("hotkey" sees
// "hotkey.mode"). Delivery is synchronous on the notifying goroutine,
// outside the notifier's lock.
package notify

import "sync"

// ChangeType represents the type of configuration change.
type ChangeType int

const (
	// ChangeSet indicates a value was set or updated.
	ChangeSet ChangeType = iota

	// ChangeReload indicates the entire configuration was reloaded.
	ChangeReload
)

// String returns the change type name.
func (c ChangeType) String() string {
	switch c {
	case ChangeSet:
		return "set"
	case ChangeReload:
		return "reload"
	default:
		return "unknown"
	}
}

// Change represents a configuration change event.
type Change struct {
	// Path is the dot-separated path to the changed setting.
	// Empty for reload events.
	Path string

	Type     ChangeType
	OldValue any
	NewValue any

	// Source identifies where the change came from ("file", "env", "ui").
	Source string
}

// Observer is called when configuration changes occur.
type Observer func(change Change)

// Subscription represents an active observer subscription.
type Subscription struct {
	id       uint64
	notifier *Notifier
}

// Unsubscribe removes this subscription.
func (s *Subscription) Unsubscribe() {
	if s.notifier != nil {
		s.notifier.unsubscribe(s.id)
	}
}

type observerEntry struct {
	id   uint64
	path string
	fn   Observer
}

// Notifier manages configuration change subscriptions.
type Notifier struct {
	mu        sync.RWMutex
	observers []observerEntry
	nextID    uint64
	closed    bool
}

// New creates a Notifier.
func New() *Notifier {
	return &Notifier{}
}

// Subscribe registers an observer for all changes.
func (n *Notifier) Subscribe(observer Observer) *Subscription {
	return n.SubscribePath("", observer)
}

// SubscribePath registers an observer for path and everything below it.
func (n *Notifier) SubscribePath(path string, observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.nextID++
	n.observers = append(n.observers, observerEntry{id: n.nextID, path: path, fn: observer})
	return &Subscription{id: n.nextID, notifier: n}
}

// Notify sends a change to all matching observers, in subscription order.
func (n *Notifier) Notify(change Change) {
	n.mu.RLock()
	if n.closed {
		n.mu.RUnlock()
		return
	}
	var targets []Observer
	for _, e := range n.observers {
		if change.Type == ChangeReload || e.path == "" || e.path == change.Path || isParentPath(e.path, change.Path) {
			targets = append(targets, e.fn)
		}
	}
	n.mu.RUnlock()

	for _, fn := range targets {
		fn(change)
	}
}

// NotifySet is a convenience method for set changes.
func (n *Notifier) NotifySet(path string, oldValue, newValue any, source string) {
	n.Notify(Change{Path: path, Type: ChangeSet, OldValue: oldValue, NewValue: newValue, Source: source})
}

// NotifyReload is a convenience method for reload events.
func (n *Notifier) NotifyReload(source string) {
	n.Notify(Change{Type: ChangeReload, Source: source})
}

// Close stops delivery. It is safe to call Close multiple times.
func (n *Notifier) Close() {
	n.mu.Lock()
	n.closed = true
	n.observers = nil
	n.mu.Unlock()
}

func (n *Notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, e := range n.observers {
		if e.id == id {
			n.observers = append(n.observers[:i], n.observers[i+1:]...)
			return
		}
	}
}

// isParentPath checks if parent is a parent path of child.
// e.g., "bow" is parent of "bow.auto_draw".
func isParentPath(parent, child string) bool {
	if len(parent) >= len(child) {
		return false
	}
	return child[:len(parent)] == parent && child[len(parent)] == '.'
}

// Batch collects changes and delivers them together on Commit.
type Batch struct {
	mu       sync.Mutex
	notifier *Notifier
	changes  []Change
}

// NewBatch creates a batch bound to n.
func (n *Notifier) NewBatch() *Batch {
	return &Batch{notifier: n}
}

// Set adds a set change to the batch.
func (b *Batch) Set(path string, oldValue, newValue any, source string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.changes = append(b.changes, Change{Path: path, Type: ChangeSet, OldValue: oldValue, NewValue: newValue, Source: source})
}

// Len returns the number of pending changes.
func (b *Batch) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.changes)
}

// Commit sends all batched changes to observers.
func (b *Batch) Commit() {
	b.mu.Lock()
	changes := b.changes
	b.changes = nil
	b.mu.Unlock()

	for _, change := range changes {
		b.notifier.Notify(change)
	}
}
