package ws

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/dired/backend/internal/events"
	"github.com/GriffinCanCode/dired/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/dired/backend/internal/logging"
	"github.com/GriffinCanCode/dired/backend/internal/shared/types"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in dev
	},
}

// Handler manages WebSocket connections
type Handler struct {
	hub     *events.Hub
	metrics *monitoring.Metrics
	log     *logging.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *events.Hub, metrics *monitoring.Metrics, log *logging.Logger) *Handler {
	return &Handler{hub: hub, metrics: metrics, log: log}
}

// HandleConnection handles WebSocket upgrade and messages
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	if h.metrics != nil {
		h.metrics.IncWSConnections()
		defer h.metrics.DecWSConnections()
	}

	// Concurrent writes on one connection are not allowed.
	var writeMu sync.Mutex
	send := func(msgType string, payload interface{}) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		if h.metrics != nil {
			h.metrics.RecordWSMessage("out", msgType)
		}
		return conn.WriteJSON(map[string]interface{}{
			"type":    msgType,
			"payload": payload,
		})
	}

	if err := send("system", "connected to dired backend"); err != nil {
		return
	}

	notifications, cancel := h.hub.Subscribe()
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for n := range notifications {
			if err := send("notification", n); err != nil {
				return
			}
		}
	}()

	// Read loop: only pings are expected from clients.
	for {
		var msg types.WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			h.log.Debug("WebSocket closed", zap.Error(err))
			break
		}
		if h.metrics != nil {
			h.metrics.RecordWSMessage("in", msg.Type)
		}

		switch msg.Type {
		case "ping":
			if err := send("pong", nil); err != nil {
				return
			}
		default:
			_ = send("error", "unknown message type")
		}
	}

	cancel()
	<-done
}
