package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/quickdraw/internal/input"
)

type recorder struct {
	batches int
	tags    []string
	notices []string
}

func (r *recorder) OnInput(input.Batch) { r.batches++ }

func (r *recorder) OnAnimationEvent(tag string) bool {
	r.tags = append(r.tags, tag)
	return tag == "EnableBumper"
}

func (r *recorder) OnNotice(n Notice) { r.notices = append(r.notices, n.Topic) }

func TestRegisterByCapability(t *testing.T) {
	h := NewHub()
	rec := &recorder{}
	subs, err := h.Register(rec)
	require.NoError(t, err)
	assert.Len(t, subs, 3)

	h.DispatchInput(input.Batch{{Device: input.DeviceKeyboard, Code: 0x2F, Value: 1}})
	assert.Equal(t, 1, h.DispatchAnimation("EnableBumper"))
	assert.Zero(t, h.DispatchAnimation("weaponSwing"))
	h.Notify(TopicPhase, PhaseChange{From: "idle", To: "active"})

	assert.Equal(t, 1, rec.batches)
	assert.Equal(t, []string{"EnableBumper", "weaponSwing"}, rec.tags)
	assert.Equal(t, []string{TopicPhase}, rec.notices)
}

func TestRegisterRejects(t *testing.T) {
	h := NewHub()
	_, err := h.Register(nil)
	assert.ErrorIs(t, err, ErrNilListener)
	_, err = h.Register(42)
	assert.ErrorIs(t, err, ErrNoCapability)
}

func TestCancelStopsDelivery(t *testing.T) {
	h := NewHub()
	count := 0
	sub := h.RegisterAnimation(AnimationFunc(func(string) bool {
		count++
		return true
	}))
	require.True(t, sub.IsActive())

	h.DispatchAnimation("a")
	sub.Cancel()
	sub.Cancel()
	h.DispatchAnimation("b")

	assert.Equal(t, 1, count)
	assert.False(t, sub.IsActive())
}

func TestNoticePatterns(t *testing.T) {
	h := NewHub()
	var got []string
	h.RegisterNotice("config.*", NoticeFunc(func(n Notice) { got = append(got, n.Topic) }))

	h.Notify(TopicConfigReloaded, nil)
	h.Notify(TopicPhase, nil)
	assert.Equal(t, []string{TopicConfigReloaded}, got)

	assert.True(t, Match("*", "anything"))
	assert.True(t, Match(TopicPhase, TopicPhase))
	assert.False(t, Match("bowmode.*", "bowmodex"))
}

func TestPanickingListenerIsContained(t *testing.T) {
	var recovered any
	h := NewHub(WithPanicHandler(func(_ any, r any) { recovered = r }))
	after := 0
	h.RegisterInput(InputFunc(func(input.Batch) { panic("boom") }))
	h.RegisterInput(InputFunc(func(input.Batch) { after++ }))

	h.DispatchInput(nil)
	assert.Equal(t, "boom", recovered)
	assert.Equal(t, 1, after)
	assert.Equal(t, uint64(1), h.Panicked())
	assert.Equal(t, uint64(1), h.Delivered())
}
