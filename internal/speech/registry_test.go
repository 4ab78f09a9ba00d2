package speech

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry[string]()
	r.Register("b", func(config map[string]string) (string, error) { return "b:" + config["x"], nil })
	r.Register("a", func(map[string]string) (string, error) { return "", errors.New("broken") })

	assert.True(t, r.Has("a"))
	assert.False(t, r.Has("c"))
	assert.Equal(t, []string{"a", "b"}, r.List())

	v, err := r.Create("b", map[string]string{"x": "1"})
	require.NoError(t, err)
	assert.Equal(t, "b:1", v)

	_, err = r.Create("a", nil)
	assert.Error(t, err)

	_, err = r.Create("c", nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "c")
}
