package schedule

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestPollRunsDueJobsInOrder(t *testing.T) {
	s := New(epoch)
	var got []string
	s.After("b", 200*time.Millisecond, func() { got = append(got, "b") })
	s.After("a", 100*time.Millisecond, func() { got = append(got, "a") })
	s.After("", 100*time.Millisecond, func() { got = append(got, "a2") })

	assert.Zero(t, s.Poll(epoch.Add(50*time.Millisecond)))
	assert.Equal(t, 2, s.Poll(epoch.Add(150*time.Millisecond)))
	assert.Equal(t, []string{"a", "a2"}, got)

	assert.Equal(t, 1, s.Poll(epoch.Add(time.Second)))
	assert.Equal(t, []string{"a", "a2", "b"}, got)
	assert.Zero(t, s.Len())
}

func TestKeyReplacesAndCancels(t *testing.T) {
	s := New(epoch)
	runs := 0
	s.After("restore", time.Second, func() { runs++ })
	s.After("restore", 2*time.Second, func() { runs += 10 })
	assert.Equal(t, 1, s.Len())

	s.Poll(epoch.Add(1500 * time.Millisecond))
	assert.Zero(t, runs)
	assert.True(t, s.Pending("restore"))

	assert.True(t, s.Cancel("restore"))
	assert.False(t, s.Cancel("restore"))
	s.Poll(epoch.Add(5 * time.Second))
	assert.Zero(t, runs)
}

func TestJobMayScheduleFollowUp(t *testing.T) {
	s := New(epoch)
	var got []string
	s.After("first", 10*time.Millisecond, func() {
		got = append(got, "first")
		s.Post(func() { got = append(got, "posted") })
		s.After("later", time.Second, func() { got = append(got, "later") })
	})

	s.Poll(epoch.Add(20 * time.Millisecond))
	assert.Equal(t, []string{"first", "posted"}, got)
	assert.True(t, s.Pending("later"))
}

func TestClockNeverRunsBackwards(t *testing.T) {
	s := New(epoch)
	s.Poll(epoch.Add(time.Second))
	s.Poll(epoch)
	assert.Equal(t, epoch.Add(time.Second), s.Now())
}

func TestPostFromOtherGoroutines(t *testing.T) {
	s := New(epoch)
	var mu sync.Mutex
	count := 0
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				s.Post(func() {
					mu.Lock()
					count++
					mu.Unlock()
				})
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 100, s.Poll(epoch))
	assert.Equal(t, 100, count)
}
