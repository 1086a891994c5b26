package mpris

import (
	"github.com/godbus/dbus/v5/introspect"
	"github.com/godbus/dbus/v5/prop"

	"github.com/marcus-crane/pholish-mpris/shared"
)

func readProperty(name, signature string) introspect.Property {
	return introspect.Property{Name: name, Type: signature, Access: "read"}
}

func readWriteProperty(name, signature string) introspect.Property {
	return introspect.Property{Name: name, Type: signature, Access: "readwrite"}
}

func noArgMethod(name string) introspect.Method {
	return introspect.Method{Name: name}
}

var rootIntrospection = introspect.Interface{
	Name: shared.MPRIS_INTERFACE,
	Methods: []introspect.Method{
		noArgMethod("Raise"),
		noArgMethod("Quit"),
	},
	Properties: []introspect.Property{
		readProperty("CanQuit", "b"),
		readProperty("CanRaise", "b"),
		readProperty("HasTrackList", "b"),
		readProperty("Identity", "s"),
		readProperty("DesktopEntry", "s"),
		readProperty("SupportedUriSchemes", "as"),
		readProperty("SupportedMimeTypes", "as"),
	},
}

// Writable properties are advertised as such, but writes are dropped
var playerIntrospection = introspect.Interface{
	Name: shared.MPRIS_PLAYER_INTERFACE,
	Methods: []introspect.Method{
		noArgMethod("Next"),
		noArgMethod("Previous"),
		noArgMethod("Pause"),
		noArgMethod("PlayPause"),
		noArgMethod("Stop"),
		noArgMethod("Play"),
		{
			Name: "Seek",
			Args: []introspect.Arg{{Name: "Offset", Type: "x", Direction: "in"}},
		},
		{
			Name: "SetPosition",
			Args: []introspect.Arg{
				{Name: "TrackId", Type: "o", Direction: "in"},
				{Name: "Position", Type: "x", Direction: "in"},
			},
		},
		{
			Name: "OpenUri",
			Args: []introspect.Arg{{Name: "Uri", Type: "s", Direction: "in"}},
		},
	},
	Signals: []introspect.Signal{
		{
			Name: "Seeked",
			Args: []introspect.Arg{{Name: "Position", Type: "x"}},
		},
	},
	Properties: []introspect.Property{
		readProperty("PlaybackStatus", "s"),
		readWriteProperty("LoopStatus", "s"),
		readWriteProperty("Rate", "d"),
		readWriteProperty("Shuffle", "b"),
		readProperty("Metadata", "a{sv}"),
		readWriteProperty("Volume", "d"),
		readProperty("Position", "x"),
		readProperty("MinimumRate", "d"),
		readProperty("MaximumRate", "d"),
		readProperty("CanGoNext", "b"),
		readProperty("CanGoPrevious", "b"),
		readProperty("CanPlay", "b"),
		readProperty("CanPause", "b"),
		readProperty("CanSeek", "b"),
		readProperty("CanControl", "b"),
	},
}

func introspectNode() *introspect.Node {
	return &introspect.Node{
		Name: shared.OBJECT_PATH,
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			prop.IntrospectData,
			rootIntrospection,
			playerIntrospection,
		},
	}
}
