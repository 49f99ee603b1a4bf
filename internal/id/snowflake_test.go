package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reset() {
	mu.Lock()
	node, nodeID = nil, 0
	mu.Unlock()
}

func TestNew_PanicsBeforeInit(t *testing.T) {
	reset()
	t.Cleanup(reset)

	assert.PanicsWithValue(t, "id: New called before Init", func() { New() })
}

func TestInit(t *testing.T) {
	reset()
	t.Cleanup(reset)

	require.Error(t, Init(-1))
	assert.Panics(t, func() { New() })

	require.NoError(t, Init(3))
	require.NoError(t, Init(3))
	assert.ErrorIs(t, Init(4), ErrAlreadyInitialized)

	a, b := New(), New()
	assert.Greater(t, b, a)
}
