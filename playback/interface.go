package playback

import (
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/marcus-crane/pholish-mpris/shared"
)

// StatusReader hands out the current media status. present is false whenever
// there is no usable session, in which case the Record is always zero.
type StatusReader interface {
	Load() (rec Record, present bool)
}

// CommandSender delivers a command to the media app. Delivery is best effort
// so there is nothing to report back.
type CommandSender interface {
	Send(verb Verb)
}

type Status string

const (
	StatusPlaying Status = "Playing"
	StatusPaused  Status = "Paused"
	StatusStopped Status = "Stopped"
)

const (
	PlayingMaxAge = 10 * time.Second
	PausedMaxAge  = 60 * time.Second
)

// Record is the snapshot the media apps write to media_status.json. Records
// are compared with == so every field must stay comparable.
type Record struct {
	Title     string
	Artist    string
	App       string
	Playing   bool
	Duration  int64 // seconds
	Position  int64 // seconds
	Timestamp int64 // milliseconds since epoch, set by the writer
}

// MaxAge is how old a record may get before the session is considered gone.
// Paused apps tend to stop rewriting the file, so they get a longer window.
func (r Record) MaxAge() time.Duration {
	if r.Playing {
		return PlayingMaxAge
	}
	return PausedMaxAge
}

func (r Record) IsFresh(now time.Time) bool {
	age := now.UnixMilli() - r.Timestamp
	return age < r.MaxAge().Milliseconds()
}

func StatusOf(rec Record, present bool) Status {
	if !present {
		return StatusStopped
	}
	if rec.Playing {
		return StatusPlaying
	}
	return StatusPaused
}

// SupportsTrackSkip reports whether the app understands next/prev. Everything
// other than the music app (podcasts, audiobooks, video) seeks instead.
func (r Record) SupportsTrackSkip() bool {
	return r.App == shared.DEFAULT_APP
}

// GenerateTrackID builds a D-Bus object path for the current track. It only
// needs to be stable for a given app and title while the process is running.
func GenerateTrackID(r Record) string {
	hash := xxhash.Sum64String(r.App+"\x00"+r.Title) & 0xFFFFFFFF
	return fmt.Sprintf("%s/%s/track/%d", shared.TRACK_ID_PREFIX, pathElement(r.App), hash)
}

// pathElement squashes an app identifier into the [A-Za-z0-9_] alphabet that
// object path elements are restricted to.
func pathElement(s string) string {
	if s == "" {
		return "unknown"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		}
		return '_'
	}, s)
}

// View is the JSON shape served over the status stream
type View struct {
	Status     Status `json:"status"`
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	App        string `json:"app"`
	PositionMs int64  `json:"position_ms"`
	DurationMs int64  `json:"duration_ms"`
	UpdatedAt  int64  `json:"updated_at"`
}

func NewView(rec Record, present bool) View {
	return View{
		Status:     StatusOf(rec, present),
		Title:      rec.Title,
		Artist:     rec.Artist,
		App:        rec.App,
		PositionMs: rec.Position * 1000,
		DurationMs: rec.Duration * 1000,
		UpdatedAt:  rec.Timestamp,
	}
}
