package mpris

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
	"github.com/godbus/dbus/v5/prop"

	"github.com/marcus-crane/pholish-mpris/playback"
	"github.com/marcus-crane/pholish-mpris/shared"
)

// Bus is the part of *dbus.Conn the server needs
type Bus interface {
	Export(v interface{}, path dbus.ObjectPath, iface string) error
	ExportMethodTable(methods map[string]interface{}, path dbus.ObjectPath, iface string) error
	Emit(path dbus.ObjectPath, name string, values ...interface{}) error
	RequestName(name string, flags dbus.RequestNameFlags) (dbus.RequestNameReply, error)
	ReleaseName(name string) (dbus.ReleaseNameReply, error)
	Close() error
}

// Server exports Root and Player on the session bus. Every handler runs while
// holding mu, which is shared with the poller, so no two of them interleave.
type Server struct {
	bus    Bus
	root   Root
	player *Player
	mu     *sync.Mutex
}

func NewServer(bus Bus, player *Player, mu *sync.Mutex) *Server {
	return &Server{bus: bus, player: player, mu: mu}
}

// locked wraps fn into a D-Bus method handler that never returns an error
func (s *Server) locked(fn func()) func() *dbus.Error {
	return func() *dbus.Error {
		s.mu.Lock()
		defer s.mu.Unlock()
		fn()
		return nil
	}
}

func (s *Server) rootMethods() map[string]interface{} {
	return map[string]interface{}{
		"Raise": s.locked(s.root.Raise),
		"Quit":  s.locked(s.root.Quit),
	}
}

func (s *Server) playerMethods() map[string]interface{} {
	return map[string]interface{}{
		"Next":      s.locked(s.player.Next),
		"Previous":  s.locked(s.player.Previous),
		"Play":      s.locked(s.player.Play),
		"Pause":     s.locked(s.player.Pause),
		"Stop":      s.locked(s.player.Stop),
		"PlayPause": s.locked(s.player.PlayPause),
		"Seek": func(offset int64) *dbus.Error {
			return s.locked(func() { s.player.Seek(offset) })()
		},
		"SetPosition": func(trackID dbus.ObjectPath, position int64) *dbus.Error {
			return s.locked(func() { s.player.SetPosition(trackID, position) })()
		},
		"OpenUri": func(uri string) *dbus.Error {
			return s.locked(func() { s.player.OpenUri(uri) })()
		},
	}
}

func (s *Server) propertyMethods() map[string]interface{} {
	return map[string]interface{}{
		"Get":    s.Get,
		"GetAll": s.GetAll,
		"Set":    s.Set,
	}
}

// Register exports every interface and then claims the well known name, so
// the objects are in place by the time anyone sees the name appear.
func (s *Server) Register() error {
	path := dbus.ObjectPath(shared.OBJECT_PATH)

	tables := []struct {
		iface   string
		methods map[string]interface{}
	}{
		{shared.MPRIS_INTERFACE, s.rootMethods()},
		{shared.MPRIS_PLAYER_INTERFACE, s.playerMethods()},
		{shared.PROPERTIES_INTERFACE, s.propertyMethods()},
	}
	for _, table := range tables {
		if err := s.bus.ExportMethodTable(table.methods, path, table.iface); err != nil {
			return fmt.Errorf("failed to export %s: %w", table.iface, err)
		}
	}

	introspectable := introspect.NewIntrospectable(introspectNode())
	if err := s.bus.Export(introspectable, path, "org.freedesktop.DBus.Introspectable"); err != nil {
		return fmt.Errorf("failed to export introspection data: %w", err)
	}

	reply, err := s.bus.RequestName(shared.BUS_NAME, dbus.NameFlagDoNotQueue)
	if err != nil {
		return fmt.Errorf("failed to request bus name %s: %w", shared.BUS_NAME, err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		return fmt.Errorf("bus name %s is already taken", shared.BUS_NAME)
	}
	return nil
}

// Get serves org.freedesktop.DBus.Properties.Get. An empty interface name
// searches both interfaces, which D-Bus permits.
func (s *Server) Get(iface, name string) (dbus.Variant, *dbus.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch iface {
	case shared.MPRIS_PLAYER_INTERFACE:
		if v, ok := s.player.Property(name); ok {
			return v, nil
		}
	case shared.MPRIS_INTERFACE:
		if v, ok := s.root.Properties()[name]; ok {
			return v, nil
		}
	case "":
		if v, ok := s.player.Property(name); ok {
			return v, nil
		}
		if v, ok := s.root.Properties()[name]; ok {
			return v, nil
		}
	default:
		return dbus.Variant{}, prop.ErrIfaceNotFound
	}
	return dbus.Variant{}, prop.ErrPropNotFound
}

func (s *Server) GetAll(iface string) (map[string]dbus.Variant, *dbus.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch iface {
	case shared.MPRIS_PLAYER_INTERFACE:
		return s.player.Properties(), nil
	case shared.MPRIS_INTERFACE:
		return s.root.Properties(), nil
	}
	return map[string]dbus.Variant{}, nil
}

// Set accepts and drops every write. Shells poke at Volume and friends, and
// an error would only get logged on their side.
func (s *Server) Set(iface, name string, value dbus.Variant) *dbus.Error {
	slog.Debug("Ignoring property write",
		slog.String("interface", iface),
		slog.String("property", name),
		slog.String("value", value.String()))
	return nil
}

// Notify emits PropertiesChanged for the player. It is called by the poller,
// which already holds mu.
func (s *Server) Notify(rec playback.Record, present bool) {
	err := s.bus.Emit(
		dbus.ObjectPath(shared.OBJECT_PATH),
		shared.PROPERTIES_INTERFACE+".PropertiesChanged",
		shared.MPRIS_PLAYER_INTERFACE,
		ChangedProperties(rec, present),
		[]string{},
	)
	if err != nil {
		slog.Error("Failed to emit PropertiesChanged", slog.String("stack", err.Error()))
	}
}

func (s *Server) Close() error {
	if _, err := s.bus.ReleaseName(shared.BUS_NAME); err != nil {
		slog.Debug("Failed to release bus name", slog.String("stack", err.Error()))
	}
	return s.bus.Close()
}
