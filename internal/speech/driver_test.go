package speech

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

type fakeEngine struct {
	mu        sync.Mutex
	voices    []domain.Voice
	voicesErr error
	speakErr  error
	spoken    []Utterance
}

func (f *fakeEngine) Name() string { return "fake" }

func (f *fakeEngine) Voices(_ context.Context) ([]domain.Voice, error) {
	return f.voices, f.voicesErr
}

func (f *fakeEngine) Speak(_ context.Context, u Utterance) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.spoken = append(f.spoken, u)
	return f.speakErr
}

func (f *fakeEngine) utterances() []Utterance {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Utterance(nil), f.spoken...)
}

func newTestDriver(t *testing.T) (*Driver, *fakeEngine) {
	t.Helper()
	engine := &fakeEngine{voices: platformVoices}
	voices := NewVoiceRegistry("es-ES", "en-GB")
	require.NoError(t, voices.Load(context.Background(), engine))
	return NewDriver(engine, voices, zap.NewNop()), engine
}

func TestDriver_SpeakUsesDefaultVoice(t *testing.T) {
	d, engine := newTestDriver(t)

	require.NoError(t, d.Speak(context.Background(), "hola", "es-ES"))
	require.NoError(t, d.Speak(context.Background(), "hello", "en-GB"))

	assert.Equal(t, []Utterance{
		{Text: "hola", Lang: "es-ES", Voice: "es", Rate: 1},
		{Text: "hello", Lang: "en-GB", Voice: "en-gb", Rate: 1},
	}, engine.utterances())
}

func TestDriver_SelectVoiceAndRate(t *testing.T) {
	d, engine := newTestDriver(t)

	require.NoError(t, d.SelectVoice("es-ES", "Paulina"))
	require.NoError(t, d.SetRate(1.5))
	assert.Equal(t, "Paulina", d.SelectedVoice("es"))

	require.NoError(t, d.Speak(context.Background(), "hola", "es-ES"))
	assert.Equal(t, Utterance{Text: "hola", Lang: "es-ES", Voice: "es-mx", Rate: 1.5}, engine.utterances()[0])

	assert.ErrorIs(t, d.SelectVoice("es-ES", "Nobody"), ErrUnknownVoice)
	assert.Equal(t, "Paulina", d.SelectedVoice("es-ES"))

	require.NoError(t, d.SelectVoice("es-ES", ""))
	assert.Equal(t, "Monica", d.SelectedVoice("es-ES"))
}

func TestDriver_SetRateBounds(t *testing.T) {
	d, _ := newTestDriver(t)

	tests := []struct {
		rate    float64
		wantErr bool
	}{
		{rate: 0, wantErr: true},
		{rate: -1, wantErr: true},
		{rate: 0.5},
		{rate: 10},
		{rate: 10.5, wantErr: true},
	}

	for _, tt := range tests {
		err := d.SetRate(tt.rate)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidRate)
		} else {
			assert.NoError(t, err)
			assert.Equal(t, tt.rate, d.Rate())
		}
	}
}

func TestDriver_NoVoiceForLanguage(t *testing.T) {
	d, engine := newTestDriver(t)

	require.NoError(t, d.Speak(context.Background(), "hallo", "de-DE"))
	assert.Equal(t, "", engine.utterances()[0].Voice)
	assert.Equal(t, "", d.SelectedVoice("de-DE"))
}

func TestDriver_EmptyTextReachesEngine(t *testing.T) {
	d, engine := newTestDriver(t)

	require.NoError(t, d.Speak(context.Background(), "", "es-ES"))
	assert.Len(t, engine.utterances(), 1)
}

func TestDriver_PauseDefersUtterance(t *testing.T) {
	d, engine := newTestDriver(t)
	d.Pause()
	assert.True(t, d.Paused())

	done := make(chan error, 1)
	go func() { done <- d.Speak(context.Background(), "hola", "es-ES") }()

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, engine.utterances())

	d.Resume()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(100 * time.Millisecond):
		t.Fatal("utterance not released within 100ms of resume")
	}
	assert.Len(t, engine.utterances(), 1)
}

func TestDriver_EngineError(t *testing.T) {
	d, engine := newTestDriver(t)
	engine.speakErr = errors.New("device busy")

	err := d.Speak(context.Background(), "hola", "es-ES")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "device busy")
}

func TestFormatRate(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{rate: 1, want: "1.0x"},
		{rate: 1.5, want: "1.5x"},
		{rate: 0.5, want: "0.5x"},
		{rate: 10, want: "10.0x"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatRate(tt.rate))
		})
	}
}
