package jobs

import (
	"context"
	"log/slog"
	"sync"

	"github.com/marcus-crane/pholish-mpris/playback"
)

// Notifier is told about every status change the poller detects
type Notifier interface {
	Notify(rec playback.Record, present bool)
}

// Poller re-reads the status and fans changes out to its notifiers. last is
// only used to decide whether something changed, property reads never see it.
type Poller struct {
	status    playback.StatusReader
	notifiers []Notifier
	mu        *sync.Mutex
	last      playback.Record
}

func NewPoller(status playback.StatusReader, mu *sync.Mutex, notifiers ...Notifier) *Poller {
	return &Poller{
		status:    status,
		notifiers: notifiers,
		mu:        mu,
	}
}

// Check runs a single poll. The timestamp takes part in the comparison, so a
// producer rewriting the same track still gets a notification and clients
// resync their position. A failed check must never take the schedule down.
func (p *Poller) Check() {
	p.mu.Lock()
	defer p.mu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			slog.Debug("Recovered from failed status check", slog.Any("panic", r))
		}
	}()

	rec, present := p.status.Load()
	if rec == p.last {
		return
	}

	// Position updates arrive every second, only track or state changes are worth info
	level := slog.LevelDebug
	if rec.Title != p.last.Title || rec.Playing != p.last.Playing {
		level = slog.LevelInfo
	}
	p.last = rec

	slog.Log(context.Background(), level, "Media status changed",
		slog.String("title", rec.Title),
		slog.String("app", rec.App),
		slog.String("status", string(playback.StatusOf(rec, present))))

	for _, n := range p.notifiers {
		n.Notify(rec, present)
	}
}

// Last returns the snapshot the next check compares against
func (p *Poller) Last() playback.Record {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}
