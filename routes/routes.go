package routes

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/r3labs/sse/v2"
	"github.com/rs/cors"

	"github.com/marcus-crane/pholish-mpris/playback"
	"github.com/marcus-crane/pholish-mpris/shared"
)

func renderJSONMessage(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	res := map[string]string{"message": message}
	json.NewEncoder(w).Encode(res)
}

func Register(mux *http.ServeMux, status playback.StatusReader, events *sse.Server, allowedOrigins []string) http.Handler {

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		fmt.Fprintf(w, "%s\nBridging %s to the session bus as %s\n", shared.USER_AGENT, shared.IDENTITY, shared.BUS_NAME)
	})

	mux.HandleFunc("/api", func(w http.ResponseWriter, r *http.Request) {
		renderJSONMessage(w, "This is the base of the bridge status API")
	})

	mux.HandleFunc("/api/v1/playing", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(playback.NewView(status.Load()))
	})

	mux.HandleFunc("/events", events.ServeHTTP)

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET"},
		AllowedHeaders: []string{"Origin", "Content-Type", "Accept"},
	})

	return c.Handler(mux)
}
