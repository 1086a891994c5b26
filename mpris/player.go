package mpris

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/godbus/dbus/v5"

	"github.com/marcus-crane/pholish-mpris/playback"
)

// Player maps the media status file onto org.mpris.MediaPlayer2.Player.
// Nothing is cached: every property read and method call loads the status
// again, so callers always see what the app last wrote.
type Player struct {
	status   playback.StatusReader
	commands playback.CommandSender
}

func NewPlayer(status playback.StatusReader, commands playback.CommandSender) *Player {
	return &Player{status: status, commands: commands}
}

// Properties returns the full property set for GetAll
func (p *Player) Properties() map[string]dbus.Variant {
	rec, present := p.status.Load()
	return playerProperties(rec, present)
}

func (p *Player) Property(name string) (dbus.Variant, bool) {
	v, ok := p.Properties()[name]
	return v, ok
}

// ChangedProperties is the payload of PropertiesChanged. Only the values that
// follow the status file are included, the rest never change.
func ChangedProperties(rec playback.Record, present bool) map[string]dbus.Variant {
	return map[string]dbus.Variant{
		"PlaybackStatus": dbus.MakeVariant(string(playback.StatusOf(rec, present))),
		"Metadata":       dbus.MakeVariant(Metadata(rec, present)),
		"Position":       dbus.MakeVariant(Position(rec, present)),
	}
}

func playerProperties(rec playback.Record, present bool) map[string]dbus.Variant {
	props := ChangedProperties(rec, present)
	for name, value := range staticPlayerProperties {
		props[name] = dbus.MakeVariant(value)
	}
	return props
}

// The app doesn't tell us what it can do, so everything is advertised and
// commands it can't honour are dropped on its side.
var staticPlayerProperties = map[string]interface{}{
	"LoopStatus":    "None",
	"Rate":          1.0,
	"Shuffle":       false,
	"Volume":        1.0,
	"MinimumRate":   1.0,
	"MaximumRate":   1.0,
	"CanGoNext":     true,
	"CanGoPrevious": true,
	"CanPlay":       true,
	"CanPause":      true,
	"CanSeek":       true,
	"CanControl":    true,
}

// Metadata builds the xesam/mpris metadata map. The status file counts in
// seconds while MPRIS uses microseconds, hence the scaling below.
func Metadata(rec playback.Record, present bool) map[string]dbus.Variant {
	if !present {
		return map[string]dbus.Variant{}
	}
	return map[string]dbus.Variant{
		"mpris:trackid": dbus.MakeVariant(dbus.ObjectPath(playback.GenerateTrackID(rec))),
		"mpris:length":  dbus.MakeVariant(rec.Duration * 1000),
		"xesam:title":   dbus.MakeVariant(rec.Title),
		"xesam:artist":  dbus.MakeVariant([]string{rec.Artist}),
		"xesam:album":   dbus.MakeVariant(albumName(rec.App)),
	}
}

func Position(rec playback.Record, present bool) int64 {
	if !present {
		return 0
	}
	return rec.Position * 1000
}

// albumName stands in for an album, which the apps have no notion of
func albumName(app string) string {
	if app == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(app)
	return string(unicode.ToUpper(r)) + strings.ToLower(app[size:])
}

// command loads the status, lets pick choose a verb from it and sends it
func (p *Player) command(pick func(rec playback.Record, present bool) playback.Verb) {
	rec, present := p.status.Load()
	p.commands.Send(pick(rec, present))
}

func (p *Player) Next() {
	p.command(func(rec playback.Record, present bool) playback.Verb {
		if !present || rec.SupportsTrackSkip() {
			return playback.VerbNext
		}
		return playback.SeekBy(playback.SkipOffsetMs)
	})
}

func (p *Player) Previous() {
	p.command(func(rec playback.Record, present bool) playback.Verb {
		if !present || rec.SupportsTrackSkip() {
			return playback.VerbPrevious
		}
		return playback.SeekBy(-playback.SkipOffsetMs)
	})
}

func (p *Player) Play() {
	p.command(func(playback.Record, bool) playback.Verb { return playback.VerbPlay })
}

func (p *Player) Pause() {
	p.command(func(playback.Record, bool) playback.Verb { return playback.VerbPause })
}

// Stop pauses, there is no way to tell the apps to stop outright
func (p *Player) Stop() {
	p.Pause()
}

func (p *Player) PlayPause() {
	p.command(func(rec playback.Record, _ bool) playback.Verb {
		if rec.Playing {
			return playback.VerbPause
		}
		return playback.VerbPlay
	})
}

// Seek takes a relative offset in microseconds
func (p *Player) Seek(offsetUs int64) {
	p.command(func(playback.Record, bool) playback.Verb { return playback.SeekBy(offsetUs / 1000) })
}

// SetPosition takes an absolute position in microseconds. The track id is
// ignored since there is only ever one track.
func (p *Player) SetPosition(_ dbus.ObjectPath, positionUs int64) {
	p.command(func(playback.Record, bool) playback.Verb { return playback.SeekTo(positionUs / 1000) })
}

func (p *Player) OpenUri(string) {}
