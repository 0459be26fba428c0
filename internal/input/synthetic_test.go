package input

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyntheticSpliceOrder(t *testing.T) {
	q := NewSyntheticQueue()
	q.Push(NewAttackEvent(1, 0), NewAttackEvent(1, 0.1))

	incoming := Batch{
		{Device: DeviceKeyboard, Code: int(KeyW), Value: 1},
		{Device: DeviceKeyboard, Code: int(KeyA), Value: 1},
	}
	out := q.Splice(incoming)

	require.Len(t, out, 4)
	assert.True(t, out[0].Synthetic)
	assert.Equal(t, float32(0), out[0].Held)
	assert.Equal(t, float32(0.1), out[1].Held)
	assert.Equal(t, int(KeyW), out[2].Code)
	assert.Equal(t, int(KeyA), out[3].Code)
	assert.Zero(t, q.Len())
}

func TestSyntheticSpliceEmptyQueueReturnsReal(t *testing.T) {
	q := NewSyntheticQueue()
	incoming := Batch{{Device: DeviceKeyboard, Code: 1, Value: 1}}
	assert.Equal(t, incoming, q.Splice(incoming))
}

func TestSyntheticPushMarksEvents(t *testing.T) {
	q := NewSyntheticQueue()
	q.Push(Event{Device: DeviceMouse, Value: 1})
	out := q.Drain()
	require.Len(t, out, 1)
	assert.True(t, out[0].Synthetic)
	assert.Nil(t, q.Drain())
}

func TestSyntheticConcurrentPush(t *testing.T) {
	q := NewSyntheticQueue()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				q.Push(NewAttackEvent(1, float32(j)))
			}
		}()
	}

	drained := 0
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	for {
		drained += len(q.Drain())
		select {
		case <-done:
			drained += len(q.Drain())
			assert.Equal(t, 800, drained)
			return
		default:
		}
	}
}
