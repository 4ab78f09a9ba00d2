package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanCallbackData(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "button unique", input: "play", expected: "play"},
		{name: "form feed prefix", input: "\fpause", expected: "pause"},
		{name: "surrounding whitespace", input: "  stop  ", expected: "stop"},
		{name: "newline inside", input: "main\n_menu", expected: "main_menu"},
		{name: "control characters", input: "ex\x00port\x01", expected: "export"},
		{name: "only whitespace", input: "   ", expected: ""},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cleanCallbackData(tt.input))
		})
	}
}

func TestCallbackRoute(t *testing.T) {
	h := &Handler{}

	for _, key := range []string{"play", "pause", "resume", "stop", "table", "export", "main_menu"} {
		assert.NotNil(t, h.callbackRoute(key), key)
	}
	assert.Nil(t, h.callbackRoute("view_days"))
	assert.Nil(t, h.callbackRoute(""))
}
