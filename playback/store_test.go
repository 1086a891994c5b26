package playback

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.UnixMilli(1_700_000_000_000)

func setupStore(t *testing.T) *FileStore {
	t.Helper()
	store := NewFileStore(filepath.Join(t.TempDir(), "media_status.json"))
	store.now = func() time.Time { return fixedNow }
	return store
}

func writeStatus(t *testing.T, store *FileStore, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(store.Path(), []byte(content), 0644))
}

func statusJSON(playing bool, ageMs int64) string {
	return fmt.Sprintf(`{"title":"Song A","artist":"Band","app":"music","playing":%t,"duration":200,"position":30,"timestamp":%d}`,
		playing, fixedNow.UnixMilli()-ageMs)
}

func TestFileStore_Load_FreshPlayingRecord(t *testing.T) {
	store := setupStore(t)
	writeStatus(t, store, statusJSON(true, 0))

	rec, present := store.Load()
	require.True(t, present)
	assert.Equal(t, Record{
		Title:     "Song A",
		Artist:    "Band",
		App:       "music",
		Playing:   true,
		Duration:  200,
		Position:  30,
		Timestamp: fixedNow.UnixMilli(),
	}, rec)
}

func TestFileStore_Load_FreshnessWindows(t *testing.T) {
	cases := []struct {
		name    string
		playing bool
		ageMs   int64
		present bool
	}{
		{"playing just written", true, 0, true},
		{"playing under window", true, 9999, true},
		{"playing at window", true, 10000, false},
		{"playing past window", true, 30000, false},
		{"paused 45s old", false, 45000, true},
		{"paused under window", false, 59999, true},
		{"paused at window", false, 60000, false},
		{"paused past window", false, 120000, false},
		{"written in the future", true, -5000, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := setupStore(t)
			writeStatus(t, store, statusJSON(tc.playing, tc.ageMs))

			rec, present := store.Load()
			assert.Equal(t, tc.present, present)
			if !tc.present {
				assert.Equal(t, Record{}, rec)
			}
		})
	}
}

func TestFileStore_Load_MissingTitleIsAbsent(t *testing.T) {
	store := setupStore(t)
	writeStatus(t, store, fmt.Sprintf(`{"artist":"Band","playing":true,"timestamp":%d}`, fixedNow.UnixMilli()))

	rec, present := store.Load()
	assert.False(t, present)
	assert.Equal(t, Record{}, rec)

	writeStatus(t, store, fmt.Sprintf(`{"title":"","playing":false,"timestamp":%d}`, fixedNow.UnixMilli()))
	_, present = store.Load()
	assert.False(t, present)
}

func TestFileStore_Load_UnusableFiles(t *testing.T) {
	cases := map[string]string{
		"empty":       "",
		"whitespace":  "  \n\t",
		"truncated":   `{"title":"Song A","playing":tr`,
		"not json":    "title=Song A",
		"wrong types": `{"title":42,"timestamp":"now"}`,
		"json null":   "null",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			store := setupStore(t)
			writeStatus(t, store, content)

			rec, present := store.Load()
			assert.False(t, present)
			assert.Equal(t, Record{}, rec)
		})
	}
}

func TestFileStore_Load_NoFile(t *testing.T) {
	store := setupStore(t)

	rec, present := store.Load()
	assert.False(t, present)
	assert.Equal(t, Record{}, rec)
}

func TestFileStore_Load_DefaultsApp(t *testing.T) {
	store := setupStore(t)
	writeStatus(t, store, fmt.Sprintf(`{"title":"Episode 4","playing":true,"timestamp":%d}`, fixedNow.UnixMilli()))

	rec, present := store.Load()
	require.True(t, present)
	assert.Equal(t, "music", rec.App)
	assert.Equal(t, "", rec.Artist)
}

func TestFileStore_Load_FractionalNumbers(t *testing.T) {
	store := setupStore(t)
	writeStatus(t, store, fmt.Sprintf(`{"title":"Clip","app":"video","playing":true,"duration":200.7,"position":12.2,"timestamp":%d}`, fixedNow.UnixMilli()))

	rec, present := store.Load()
	require.True(t, present)
	assert.Equal(t, int64(200), rec.Duration)
	assert.Equal(t, int64(12), rec.Position)
}

func TestFileStore_Load_RereadsEveryCall(t *testing.T) {
	store := setupStore(t)
	writeStatus(t, store, statusJSON(true, 0))

	_, present := store.Load()
	require.True(t, present)

	require.NoError(t, os.Remove(store.Path()))
	_, present = store.Load()
	assert.False(t, present)

	writeStatus(t, store, statusJSON(false, 1000))
	rec, present := store.Load()
	assert.True(t, present)
	assert.False(t, rec.Playing)
}
