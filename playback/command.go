package playback

import (
	"fmt"
	"log/slog"
	"os"
	"time"
)

// Verb is the command part of a media_command payload
type Verb string

const (
	VerbPlay     Verb = "play"
	VerbPause    Verb = "pause"
	VerbNext     Verb = "next"
	VerbPrevious Verb = "prev"
)

// SkipOffsetMs is how far apps without track skipping jump on next/previous
const SkipOffsetMs = 30000

// SeekBy asks the app to move relative to the current position
func SeekBy(offsetMs int64) Verb {
	return Verb(fmt.Sprintf("seek:%d", offsetMs))
}

// SeekTo asks the app to jump to an absolute position
func SeekTo(positionMs int64) Verb {
	return Verb(fmt.Sprintf("seek_to:%d", positionMs))
}

// EncodeCommand produces the "<verb>:<timestamp_ms>" payload. The timestamp lets
// the app tell a repeated command apart from one it has already handled.
func EncodeCommand(verb Verb, issuedAt time.Time) string {
	return fmt.Sprintf("%s:%d", verb, issuedAt.UnixMilli())
}

// CommandSink writes commands into a single slot file. A command that the app
// has not picked up yet is replaced by the next one.
type CommandSink struct {
	path string
	now  func() time.Time
}

func NewCommandSink(path string) *CommandSink {
	return &CommandSink{path: path, now: time.Now}
}

func (cs *CommandSink) Send(verb Verb) {
	payload := EncodeCommand(verb, cs.now())
	if err := os.WriteFile(cs.path, []byte(payload), 0644); err != nil {
		slog.Error("Failed to send media command",
			slog.String("command", string(verb)),
			slog.String("path", cs.path),
			slog.String("stack", err.Error()))
		return
	}
	slog.Info("Sent media command", slog.String("command", string(verb)))
}
