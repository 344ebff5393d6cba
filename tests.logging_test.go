package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRSyncWriteSync ensures syncing is safe before any write happened,
// since the log file is opened lazily on the first write.
func TestRSyncWriteSync(t *testing.T) {
	w := NewRSyncWriter(&Config{LogFolder: t.TempDir(), LogMaxSize: 1}, NewMockClocker())
	t.Cleanup(func() { assert.NoError(t, w.Close()) })

	assert.NoError(t, w.Sync())

	n, err := w.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.NoError(t, w.Sync())
}
