package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_RoundTrip(t *testing.T) {
	s := NewJWTService("secret")

	token, err := s.GenerateToken("ana@example.com", "ws-1", "session-1")
	require.NoError(t, err)

	claims, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, "ws-1", claims.Workspace)
	assert.Equal(t, "session-1", claims.ID)
}

func TestJWTService_Rejects(t *testing.T) {
	s := NewJWTService("secret")
	token, err := s.GenerateToken("ana@example.com", "ws-1", "session-1")
	require.NoError(t, err)

	tests := []struct {
		name    string
		service *JWTService
		token   string
	}{
		{name: "wrong secret", service: NewJWTService("other"), token: token},
		{name: "garbage", service: s, token: "not.a.token"},
		{
			name: "expired",
			service: &JWTService{
				secret: []byte("secret"),
				now:    func() time.Time { return time.Now().Add(TokenTTL + time.Hour) },
			},
			token: token,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.service.ValidateToken(tt.token)
			assert.Error(t, err)
		})
	}
}
