package event

import (
	"time"

	"github.com/dshills/quickdraw/internal/input"
)

// InputSink receives each input batch after the core has processed it.
type InputSink interface {
	OnInput(batch input.Batch)
}

// AnimationSink receives the player's animation tags. It reports whether
// the tag was used.
type AnimationSink interface {
	OnAnimationEvent(tag string) bool
}

// NoticeSink receives core notices.
type NoticeSink interface {
	OnNotice(n Notice)
}

// Notice topics.
const (
	TopicPhase          = "bowmode.phase"
	TopicConfigReloaded = "config.reloaded"
	TopicCaptured       = "hotkey.captured"
	TopicPrefsApplied   = "prefs.applied"
)

// Notice is a core notification.
type Notice struct {
	Topic   string
	Payload any
	Time    time.Time
}

// PhaseChange is the payload of TopicPhase.
type PhaseChange struct {
	From string
	To   string
}

// Captured is the payload of TopicCaptured.
type Captured struct {
	// Code is the encoded capture; negative values are gamepad buttons.
	Code int
	Name string
}

// Func adapters.
type (
	InputFunc     func(batch input.Batch)
	AnimationFunc func(tag string) bool
	NoticeFunc    func(n Notice)
)

// OnInput implements InputSink.
func (f InputFunc) OnInput(batch input.Batch) { f(batch) }

// OnAnimationEvent implements AnimationSink.
func (f AnimationFunc) OnAnimationEvent(tag string) bool { return f(tag) }

// OnNotice implements NoticeSink.
func (f NoticeFunc) OnNotice(n Notice) { f(n) }
