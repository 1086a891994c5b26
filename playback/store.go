package playback

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/marcus-crane/pholish-mpris/shared"
)

var errEmptyStatus = errors.New("status file is empty")

// statusFile mirrors what the media apps write. Numbers are decoded as floats
// because some writers emit fractional seconds.
type statusFile struct {
	Title     string  `json:"title"`
	Artist    string  `json:"artist"`
	App       string  `json:"app"`
	Playing   bool    `json:"playing"`
	Duration  float64 `json:"duration"`
	Position  float64 `json:"position"`
	Timestamp float64 `json:"timestamp"`
}

// FileStore reads the status file on every call. The writer replaces the file
// without any locking, so a torn read is just treated as no session.
type FileStore struct {
	path string
	now  func() time.Time
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, now: time.Now}
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Load() (Record, bool) {
	rec, err := s.read()
	if err != nil {
		if !errors.Is(err, errEmptyStatus) && !errors.Is(err, fs.ErrNotExist) {
			slog.Debug("Failed to load media status",
				slog.String("path", s.path),
				slog.String("stack", err.Error()))
		}
		return Record{}, false
	}
	if rec.Title == "" || !rec.IsFresh(s.now()) {
		return Record{}, false
	}
	return rec, true
}

func (s *FileStore) read() (Record, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		return Record{}, err
	}
	if len(bytes.TrimSpace(content)) == 0 {
		return Record{}, errEmptyStatus
	}

	var raw statusFile
	if err := json.Unmarshal(content, &raw); err != nil {
		return Record{}, fmt.Errorf("failed to parse status file: %w", err)
	}

	app := raw.App
	if app == "" {
		app = shared.DEFAULT_APP
	}

	return Record{
		Title:     raw.Title,
		Artist:    raw.Artist,
		App:       app,
		Playing:   raw.Playing,
		Duration:  int64(raw.Duration),
		Position:  int64(raw.Position),
		Timestamp: int64(raw.Timestamp),
	}, nil
}
