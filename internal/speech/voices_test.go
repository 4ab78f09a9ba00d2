package speech

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordreader/internal/domain"
)

var platformVoices = []domain.Voice{
	{ID: "es", Name: "Monica", Lang: "es-ES"},
	{ID: "en-gb", Name: "Daniel", Lang: "en-GB"},
	{ID: "fr", Name: "Thomas", Lang: "fr-FR"},
	{ID: "es-mx", Name: "Paulina", Lang: "es-MX"},
	{ID: "en-us", Name: "Samantha", Lang: "en_US"},
}

func TestVoiceRegistry_Refresh(t *testing.T) {
	r := NewVoiceRegistry("es-ES", "en-GB")
	r.Refresh(platformVoices)

	assert.Equal(t, []string{"Monica", "Paulina"}, voiceNames(r.ForLanguage("es-ES")))
	assert.Equal(t, []string{"Daniel", "Samantha"}, voiceNames(r.ForLanguage("en")))
	assert.Empty(t, r.ForLanguage("fr-FR"))
	assert.Len(t, r.All(), len(platformVoices))

	// a second availability event replaces, never appends
	r.Refresh(platformVoices[:2])
	assert.Equal(t, []string{"Monica"}, voiceNames(r.ForLanguage("es-ES")))
	assert.Len(t, r.All(), 2)
}

func TestVoiceRegistry_Find(t *testing.T) {
	r := NewVoiceRegistry("es-ES", "en-GB")
	r.Refresh(platformVoices)

	v, ok := r.Find("Thomas")
	require.True(t, ok)
	assert.Equal(t, "fr", v.ID)

	_, ok = r.Find("thomas")
	assert.False(t, ok)

	_, ok = r.Find("")
	assert.False(t, ok)
}

func TestVoiceRegistry_Load(t *testing.T) {
	r := NewVoiceRegistry("es-ES", "en-GB")

	require.NoError(t, r.Load(context.Background(), &fakeEngine{voices: platformVoices}))
	assert.Len(t, r.All(), len(platformVoices))

	err := r.Load(context.Background(), &fakeEngine{voicesErr: errors.New("no audio")})
	assert.Error(t, err)
	assert.Len(t, r.All(), len(platformVoices))
}

func voiceNames(voices []domain.Voice) []string {
	names := make([]string, 0, len(voices))
	for _, v := range voices {
		names = append(names, v.Name)
	}
	return names
}
