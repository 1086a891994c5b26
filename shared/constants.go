package shared

const (
	BUS_NAME    = "org.mpris.MediaPlayer2.pholish"
	OBJECT_PATH = "/org/mpris/MediaPlayer2"

	MPRIS_INTERFACE        = "org.mpris.MediaPlayer2"
	MPRIS_PLAYER_INTERFACE = "org.mpris.MediaPlayer2.Player"
	PROPERTIES_INTERFACE   = "org.freedesktop.DBus.Properties"

	IDENTITY      = "Pholish Media"
	DESKTOP_ENTRY = "pholish"

	// Track ids are published under this prefix, followed by /<app>/track/<hash>
	TRACK_ID_PREFIX = "/org/pholish"

	STATE_DIR_RELATIVE = ".local/state/flick"
	MEDIA_STATUS_FILE  = "media_status.json"
	MEDIA_COMMAND_FILE = "media_command"
	DEFAULT_HOME       = "/home/droidian"
	DEFAULT_APP        = "music"
	PLAYBACK_STREAM    = "playback"
	USER_AGENT         = "pholish-mpris/1.0 <github.com/marcus-crane/pholish-mpris>"
)
