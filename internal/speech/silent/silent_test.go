package silent

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordreader/internal/speech"
)

func TestEngine_Estimate(t *testing.T) {
	e := New(120)

	tests := []struct {
		name     string
		u        speech.Utterance
		expected time.Duration
	}{
		{name: "empty text", u: speech.Utterance{Text: "  "}, expected: 0},
		{name: "one word", u: speech.Utterance{Text: "hola", Rate: 1}, expected: 500 * time.Millisecond},
		{name: "two words double rate", u: speech.Utterance{Text: "buenos dias", Rate: 2}, expected: 500 * time.Millisecond},
		{name: "zero rate means normal", u: speech.Utterance{Text: "hola"}, expected: 500 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, e.Estimate(tt.u))
		})
	}
}

func TestEngine_SpeakCancelled(t *testing.T) {
	e := New(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := e.Speak(ctx, speech.Utterance{Text: "a very long sentence", Rate: 1})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEngine_SpeakWaits(t *testing.T) {
	e := New(6000) // 10ms per word

	start := time.Now()
	err := e.Speak(context.Background(), speech.Utterance{Text: "hola amigo", Rate: 1})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestRegistered(t *testing.T) {
	engine, err := speech.Engines.Create("silent", map[string]string{
		"source_lang": "fr-FR",
		"target_lang": "de-DE",
	})
	require.NoError(t, err)

	voices, err := engine.Voices(context.Background())
	require.NoError(t, err)
	require.Len(t, voices, 2)
	assert.Equal(t, "fr-FR", voices[0].Lang)
	assert.Equal(t, "Silent de-DE", voices[1].Name)
}
