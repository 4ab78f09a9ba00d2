package stopwatch

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{d: 0, expected: "00:00:00"},
		{d: 999 * time.Millisecond, expected: "00:00:00"},
		{d: 65 * time.Second, expected: "00:01:05"},
		{d: time.Hour + 2*time.Minute + 3*time.Second, expected: "01:02:03"},
		{d: 100 * time.Hour, expected: "100:00:00"},
		{d: -time.Second, expected: "00:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatElapsed(tt.d))
		})
	}
}

func TestStopwatch_StartOnce(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)}
	s := New(nil)
	s.now = clock.Now
	defer s.Stop()

	assert.Equal(t, "00:00:00", s.String())
	assert.Equal(t, "Time: 00:00:00", s.Display())
	assert.False(t, s.Started())

	assert.True(t, s.Start())
	clock.Advance(90 * time.Second)
	assert.False(t, s.Start())

	assert.Equal(t, 90*time.Second, s.Elapsed())
	assert.Equal(t, "Time: 00:01:30", s.Display())
	assert.True(t, s.Started())
}

func TestStopwatch_Ticks(t *testing.T) {
	ticks := make(chan string, 4)
	s := New(func(display string) {
		select {
		case ticks <- display:
		default:
		}
	})
	s.Start()
	defer s.Stop()

	select {
	case display := <-ticks:
		assert.Contains(t, display, "Time: 00:00:0")
	case <-time.After(2 * time.Second):
		t.Fatal("no tick within two seconds")
	}
}

func TestStopwatch_StopIsIdempotent(t *testing.T) {
	s := New(nil)
	s.Stop()
	s.Start()
	s.Stop()
	s.Stop()
	assert.True(t, s.Started())
}
