package mpris

import (
	"github.com/godbus/dbus/v5"

	"github.com/marcus-crane/pholish-mpris/shared"
)

// Root is org.mpris.MediaPlayer2. The bridge can't be raised or quit.
type Root struct{}

func (Root) Properties() map[string]dbus.Variant {
	return map[string]dbus.Variant{
		"CanQuit":             dbus.MakeVariant(false),
		"CanRaise":            dbus.MakeVariant(false),
		"HasTrackList":        dbus.MakeVariant(false),
		"Identity":            dbus.MakeVariant(shared.IDENTITY),
		"DesktopEntry":        dbus.MakeVariant(shared.DESKTOP_ENTRY),
		"SupportedUriSchemes": dbus.MakeVariant([]string{}),
		"SupportedMimeTypes":  dbus.MakeVariant([]string{}),
	}
}

func (Root) Raise() {}

func (Root) Quit() {}
