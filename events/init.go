package events

import (
	"encoding/json"
	"log/slog"

	"github.com/r3labs/sse/v2"

	"github.com/marcus-crane/pholish-mpris/playback"
	"github.com/marcus-crane/pholish-mpris/shared"
)

// New creates the SSE server with the playback stream already in place.
// Late subscribers don't get a replay, they fetch /api/v1/playing instead.
func New() *sse.Server {
	server := sse.New()
	server.AutoReplay = false
	server.CreateStream(shared.PLAYBACK_STREAM)
	return server
}

// Publisher forwards status changes to everyone subscribed to the stream
type Publisher struct {
	server *sse.Server
}

func NewPublisher(server *sse.Server) *Publisher {
	return &Publisher{server: server}
}

func (p *Publisher) Notify(rec playback.Record, present bool) {
	data, err := json.Marshal(playback.NewView(rec, present))
	if err != nil {
		slog.Error("Failed to encode playback event", slog.String("stack", err.Error()))
		return
	}
	p.server.Publish(shared.PLAYBACK_STREAM, &sse.Event{Data: data})
}
