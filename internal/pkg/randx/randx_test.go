package randx

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherID(t *testing.T) {
	a, b := WatcherID(), WatcherID()
	require.NotEqual(t, a, b)

	raw, ok := strings.CutPrefix(a, WatcherIDPrefix)
	require.True(t, ok)
	_, err := uuid.Parse(raw)
	assert.NoError(t, err)
}
