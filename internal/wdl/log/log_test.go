package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_verboseAndQuiet(t *testing.T) {
	l, err := New(true)
	require.NoError(t, err)
	assert.NotNil(t, l)

	l, err = New(false)
	require.NoError(t, err)
	assert.NotNil(t, l)
}

func TestNop_isNonNil(t *testing.T) {
	assert.NotNil(t, Nop())
}
