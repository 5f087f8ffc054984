package handler

import (
	"net/http"
	"strings"

	"ecosync/backend/internal/api/envelope"
	"ecosync/backend/internal/events"
	"ecosync/backend/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// newUpgrader accepts same-origin requests, clients that send no Origin and
// the configured browser origins.
func newUpgrader(origins []string) websocket.Upgrader {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[strings.TrimRight(o, "/")] = true
	}
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || allowed[origin] {
				return true
			}
			return origin == "http://"+r.Host || origin == "https://"+r.Host
		},
	}
}

// ServeComplaintFeed upgrades GET /api/realtime/complaints to a websocket
// that streams complaint change events.
func (h *Handler) ServeComplaintFeed(upgrader websocket.Upgrader) gin.HandlerFunc {
	return func(c *gin.Context) {
		select {
		case <-h.Hub.Done():
			envelope.Fail(c, events.ErrHubStopped)
			return
		default:
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade has already replied to the client.
			logger.FromContext(c.Request.Context()).WithError(err).Warn("feed upgrade failed")
			return
		}

		client := events.NewWebSocketClient(h.Hub, conn)
		h.Hub.Register(client)
		logger.FromContext(c.Request.Context()).WithField("client", client.GetID()).Info("feed subscriber connected")
	}
}
