package clipboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory(t *testing.T) {
	var c Clipboard = &Memory{}

	text, err := c.ReadAll()
	require.NoError(t, err)
	assert.Empty(t, text)

	require.NoError(t, c.WriteAll("yanked\ntext"))
	text, err = c.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "yanked\ntext", text)
}

func TestNew_Internal(t *testing.T) {
	assert.IsType(t, &Memory{}, New(false))
}
