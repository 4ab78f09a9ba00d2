package handler

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"wordreader/internal/domain"
	"wordreader/internal/playback"
	"wordreader/internal/service"
)

func TestNoticeFor(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantMsg   string
		wantKnown bool
	}{
		{
			name:      "sentinel",
			err:       domain.ErrNameRequired,
			wantMsg:   "⚠️ Please enter a table name",
			wantKnown: true,
		},
		{
			name:      "wrapped sentinel",
			err:       fmt.Errorf("%w: 3,9", domain.ErrCellOutOfRange),
			wantMsg:   "⚠️ Cell out of range: 3,9",
			wantKnown: true,
		},
		{
			name:      "already playing",
			err:       playback.ErrAlreadyPlaying,
			wantKnown: true,
		},
		{
			name:      "relay failure",
			err:       fmt.Errorf("%w: status 500", service.ErrSessionNotDelivered),
			wantKnown: true,
		},
		{
			name:      "infrastructure error",
			err:       errors.New("disk on fire"),
			wantMsg:   genericError,
			wantKnown: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, known := noticeFor(tt.err)
			assert.Equal(t, tt.wantKnown, known)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, msg)
			}
		})
	}
}

func TestRenderTable(t *testing.T) {
	table := domain.NewTable()
	table.Import("hola,hello,adios, ")

	text := renderTable(table, "greetings", domain.Coordinate{Row: 2, Col: 1})
	assert.Equal(t, "📋 greetings\nSpanish | English\n\n1. hola — hello\n2. ▶ adios — ·\n", text)
}

func TestRenderTable_Empty(t *testing.T) {
	text := renderTable(domain.NewTable(), "", domain.Coordinate{})
	assert.True(t, strings.HasPrefix(text, "📋 Your table\n"))
	assert.Contains(t, text, "Empty")
}

func TestRenderTable_Truncated(t *testing.T) {
	table := domain.NewTable()
	for i := 0; i < 500; i++ {
		table.Import("palabra,word")
	}

	text := renderTable(table, "", domain.Coordinate{})
	assert.Equal(t, maxMessageLen+1, len([]rune(text)))
	assert.True(t, strings.HasSuffix(text, "…"))
}

func TestParseRepeat(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    int
		wantErr bool
	}{
		{name: "default", args: nil, want: 0},
		{name: "number", args: []string{"3"}, want: 3},
		{name: "zero", args: []string{"0"}, wantErr: true},
		{name: "word", args: []string{"twice"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseRepeat(tt.args)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveLanguage(t *testing.T) {
	locales := domain.DefaultLocales()
	assert.Equal(t, "es-ES", resolveLanguage("source", locales))
	assert.Equal(t, "en-GB", resolveLanguage("Target", locales))
	assert.Equal(t, "fr-FR", resolveLanguage("fr-FR", locales))
}
