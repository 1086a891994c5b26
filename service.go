package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/r3labs/sse/v2"

	"github.com/marcus-crane/pholish-mpris/config"
	"github.com/marcus-crane/pholish-mpris/events"
	"github.com/marcus-crane/pholish-mpris/jobs"
	"github.com/marcus-crane/pholish-mpris/mpris"
	"github.com/marcus-crane/pholish-mpris/playback"
	"github.com/marcus-crane/pholish-mpris/routes"
)

const shutdownTimeout = 5 * time.Second

// Service wires the status file, the MPRIS objects and the poller together.
// mu plays the part of a single threaded event loop: bus handlers, poll ticks
// and watcher checks all take it before touching anything.
type Service struct {
	cfg config.Config
	bus mpris.Bus
	mu  sync.Mutex

	server    *mpris.Server
	scheduler *gocron.Scheduler
	watcher   *jobs.Watcher
	events    *sse.Server
	http      *http.Server
}

func NewService(cfg config.Config, bus mpris.Bus) *Service {
	return &Service{cfg: cfg, bus: bus}
}

func (s *Service) Start(ctx context.Context) error {
	if err := os.MkdirAll(s.cfg.Bridge.StateDir, 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	store := playback.NewFileStore(s.cfg.StatusPath())
	sink := playback.NewCommandSink(s.cfg.CommandPath())
	player := mpris.NewPlayer(store, sink)

	s.server = mpris.NewServer(s.bus, player, &s.mu)
	if err := s.server.Register(); err != nil {
		return err
	}

	notifiers := []jobs.Notifier{s.server}
	if s.cfg.Events.Addr != "" {
		s.events = events.New()
		notifiers = append(notifiers, events.NewPublisher(s.events))
	}

	poller := jobs.NewPoller(store, &s.mu, notifiers...)

	scheduler, err := jobs.SetupInBackground(poller, s.cfg.PollInterval())
	if err != nil {
		return err
	}
	s.scheduler = scheduler
	s.scheduler.StartAsync()

	if !s.cfg.Bridge.WatchDisabled {
		watcher, err := jobs.NewWatcher(store.Path(), poller)
		if err != nil {
			// Polling alone still covers everything, just a little later
			slog.Warn("Status watcher unavailable, relying on polling", slog.String("stack", err.Error()))
		} else {
			s.watcher = watcher
			go s.watcher.Run(ctx)
		}
	}

	if s.events != nil {
		s.http = &http.Server{
			Addr:              s.cfg.Events.Addr,
			Handler:           routes.Register(http.NewServeMux(), store, s.events, s.cfg.AllowedOrigins()),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("Status stream stopped", slog.String("stack", err.Error()))
			}
		}()
		slog.Info("Status stream listening", slog.String("addr", s.cfg.Events.Addr))
	}

	return nil
}

// Stop tears everything down in reverse order. There are no long running
// operations to wait for, only the HTTP listener gets a grace period.
func (s *Service) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
	if s.watcher != nil {
		s.watcher.Close()
	}
	if s.http != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.http.Shutdown(ctx); err != nil {
			slog.Error("Failed to shut down status stream", slog.String("stack", err.Error()))
		}
	}
	if s.events != nil {
		s.events.Close()
	}
	if s.server != nil {
		if err := s.server.Close(); err != nil {
			slog.Error("Failed to close bus connection", slog.String("stack", err.Error()))
		}
	}
}
