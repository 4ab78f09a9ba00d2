package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"wordreader/internal/speech"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestVoices loads the engine's voices into a registry for es-ES / en-GB
func NewTestVoices(t *testing.T, engine speech.Engine) *speech.VoiceRegistry {
	t.Helper()
	voices := speech.NewVoiceRegistry("es-ES", "en-GB")
	require.NoError(t, voices.Load(context.Background(), engine))
	return voices
}
