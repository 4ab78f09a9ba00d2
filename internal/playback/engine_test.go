package playback

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"wordreader/internal/domain"
)

type call struct {
	text string
	lang string
}

type recordingSpeaker struct {
	mu    sync.Mutex
	calls []call
	// block, when set, holds every Speak until it is closed or ctx ends
	block chan struct{}
	err   error
}

func (s *recordingSpeaker) Speak(ctx context.Context, text, lang string) error {
	s.mu.Lock()
	s.calls = append(s.calls, call{text: text, lang: lang})
	block := s.block
	s.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return s.err
}

func (s *recordingSpeaker) recorded() []call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]call(nil), s.calls...)
}

type recordingHighlighter struct {
	mu      sync.Mutex
	marks   []string
	cleared int
}

func (h *recordingHighlighter) Highlight(c domain.Coordinate) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.marks = append(h.marks, c.String())
}

func (h *recordingHighlighter) ClearHighlight() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cleared++
}

type countingTimer struct {
	mu     sync.Mutex
	starts int
}

func (c *countingTimer) Start() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.starts++
	return c.starts == 1
}

func newTestEngine(speaker Speaker) (*Engine, *recordingHighlighter, *countingTimer) {
	h := &recordingHighlighter{}
	timer := &countingTimer{}
	return NewEngine(speaker, h, timer, domain.DefaultLocales(), zap.NewNop()), h, timer
}

func TestEngine_RunSpeaksInOrder(t *testing.T) {
	speaker := &recordingSpeaker{}
	e, h, timer := newTestEngine(speaker)

	err := e.Run(context.Background(), [][]string{{"hola", "hello"}, {"adios", "bye"}}, 2)
	require.NoError(t, err)

	assert.Equal(t, []call{
		{"hola", "es-ES"}, {"hello", "en-GB"},
		{"hola", "es-ES"}, {"hello", "en-GB"},
		{"adios", "es-ES"}, {"bye", "en-GB"},
		{"adios", "es-ES"}, {"bye", "en-GB"},
	}, speaker.recorded())
	assert.Equal(t, []string{"1,1", "1,2", "1,1", "1,2", "2,1", "2,2", "2,1", "2,2"}, h.marks)
	assert.Equal(t, 1, h.cleared)
	assert.Equal(t, 1, timer.starts)
	assert.Equal(t, StateIdle, e.Status().State)
	assert.False(t, e.Running())
}

func TestEngine_TimerStartsOnce(t *testing.T) {
	e, _, timer := newTestEngine(&recordingSpeaker{})

	for i := 0; i < 3; i++ {
		require.NoError(t, e.Run(context.Background(), [][]string{{"uno", "one"}}, 1))
	}
	assert.Equal(t, 1, timer.starts)
}

func TestEngine_EmptyTable(t *testing.T) {
	speaker := &recordingSpeaker{}
	e, h, _ := newTestEngine(speaker)

	require.NoError(t, e.Run(context.Background(), [][]string{{"", ""}}, 3))
	assert.Empty(t, speaker.recorded())
	assert.Empty(t, h.marks)
	assert.Equal(t, StateIdle, e.Status().State)
}

func TestEngine_AlreadyPlaying(t *testing.T) {
	speaker := &recordingSpeaker{block: make(chan struct{})}
	e, _, _ := newTestEngine(speaker)

	done, err := e.Start(context.Background(), [][]string{{"hola", "hello"}}, 1)
	require.NoError(t, err)

	_, err = e.Start(context.Background(), [][]string{{"otro", "other"}}, 1)
	assert.ErrorIs(t, err, ErrAlreadyPlaying)

	assert.Eventually(t, func() bool { return e.Status().State == StateSpeaking }, time.Second, 5*time.Millisecond)
	status := e.Status()
	assert.Equal(t, "1,1", status.Coord)
	assert.Equal(t, 1, status.Pass)

	close(speaker.block)
	require.NoError(t, <-done)
}

func TestEngine_Stop(t *testing.T) {
	speaker := &recordingSpeaker{block: make(chan struct{})}
	e, h, _ := newTestEngine(speaker)

	done, err := e.Start(context.Background(), [][]string{{"hola", "hello"}, {"adios", "bye"}}, 1)
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return len(speaker.recorded()) == 1 }, time.Second, 5*time.Millisecond)
	e.Stop()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("stop did not end the pass")
	}
	assert.Len(t, speaker.recorded(), 1)
	assert.Equal(t, 1, h.cleared)
	assert.False(t, e.Running())
}

func TestEngine_SpeakerError(t *testing.T) {
	speaker := &recordingSpeaker{err: errors.New("no audio device")}
	e, _, _ := newTestEngine(speaker)

	err := e.Run(context.Background(), [][]string{{"hola", "hello"}}, 1)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "1,1")
	assert.Len(t, speaker.recorded(), 1)
	assert.False(t, e.Running())
}
