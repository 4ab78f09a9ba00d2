package speech

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPauseGate_OpenByDefault(t *testing.T) {
	var g PauseGate
	assert.False(t, g.Paused())
	assert.NoError(t, g.Wait(context.Background()))
}

func TestPauseGate_ResumeReleasesWaiters(t *testing.T) {
	var g PauseGate
	g.Pause()
	g.Pause()
	assert.True(t, g.Paused())

	done := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() { done <- g.Wait(context.Background()) }()
	}

	select {
	case <-done:
		t.Fatal("wait returned while paused")
	case <-time.After(50 * time.Millisecond):
	}

	g.Resume()
	for i := 0; i < 2; i++ {
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(100 * time.Millisecond):
			t.Fatal("resume not observed within 100ms")
		}
	}
	assert.False(t, g.Paused())
}

func TestPauseGate_WaitCancelled(t *testing.T) {
	var g PauseGate
	g.Pause()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, g.Wait(ctx), context.DeadlineExceeded)
}
