package server

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/Kailash-Mistry/Interviewly/internal/config"
	"github.com/Kailash-Mistry/Interviewly/internal/relay"
)

// newUpgrader builds the websocket upgrader. With no configured origins every
// origin is accepted, which is what development wants; production sets
// INTERVIEWLY_ALLOWED_ORIGINS.
func newUpgrader(cfg *config.Server) *websocket.Upgrader {
	return &websocket.Upgrader{
		ReadBufferSize:  64 * 1024,
		WriteBufferSize: 64 * 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(cfg.AllowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range cfg.AllowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
	}
}

// ServeWs returns the handler that upgrades a request and hands the
// connection to the hub.
func ServeWs(cfg *config.Server, hub *relay.Hub) http.HandlerFunc {
	upgrader := newUpgrader(cfg)
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
			return
		}

		client := relay.NewClient(hub, conn)
		hub.Register(client)

		go client.WritePump()
		go client.ReadPump()
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Relay server is healthy."))
}

// NewMux wires the HTTP surface: the websocket endpoint and a liveness check.
func NewMux(cfg *config.Server, hub *relay.Hub) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthHandler)
	mux.HandleFunc("/ws", ServeWs(cfg, hub))
	return mux
}
