package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkspaceID(t *testing.T) {
	tests := []struct {
		name   string
		chatID int64
		want   string
	}{
		{name: "private chat", chatID: 42, want: "42"},
		{name: "group chat", chatID: -1001234567890, want: "-1001234567890"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := WorkspaceID(tt.chatID)
			assert.Equal(t, tt.want, id)

			chatID, err := ChatID(id)
			require.NoError(t, err)
			assert.Equal(t, tt.chatID, chatID)
		})
	}
}

func TestChatID_Invalid(t *testing.T) {
	_, err := ChatID("3f2a-uuid")
	assert.Error(t, err)
}
