package jobs

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcus-crane/pholish-mpris/playback"
)

type countingStatus struct {
	mu    sync.Mutex
	loads int
}

func (c *countingStatus) Load() (playback.Record, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loads++
	return playback.Record{}, false
}

func (c *countingStatus) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loads
}

func TestWatcher_ChecksOnStatusWrites(t *testing.T) {
	dir := t.TempDir()
	statusPath := filepath.Join(dir, "media_status.json")
	status := &countingStatus{}
	poller := NewPoller(status, &sync.Mutex{})

	watcher, err := NewWatcher(statusPath, poller)
	require.NoError(t, err)
	defer watcher.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go watcher.Run(ctx)

	// Unrelated files in the same directory are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "media_command"), []byte("play:1"), 0644))
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, status.count())

	require.NoError(t, os.WriteFile(statusPath, []byte(`{"title":"Song A"}`), 0644))
	assert.Eventually(t, func() bool { return status.count() > 0 }, time.Second, 10*time.Millisecond)
}

func TestNewWatcher_MissingDirectory(t *testing.T) {
	poller := NewPoller(&countingStatus{}, &sync.Mutex{})
	_, err := NewWatcher(filepath.Join(t.TempDir(), "gone", "media_status.json"), poller)
	assert.Error(t, err)
}
