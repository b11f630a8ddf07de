package handlers

import (
	"log"
	"net/http"

	"github.com/cube5963/feedo-cfes/internal/events"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type WSHandler struct {
	hub *events.Hub
}

func NewWSHandler(hub *events.Hub) *WSHandler {
	return &WSHandler{hub: hub}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleStatisticsWebSocket godoc
// @Summary      Live statistics over WebSocket
// @Description  Same event stream as the SSE endpoint, for clients that already hold a socket.
// @Tags         statistics
// @Param        formId path string true "Form UUID"
// @Router       /ws/statistics/{formId} [get]
func (h *WSHandler) HandleStatisticsWebSocket(c *gin.Context) {
	formUUID := c.Param("formId")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	ch := h.hub.Subscribe(formUUID)
	defer h.hub.Unsubscribe(formUUID, ch)

	if err := conn.WriteJSON(events.Event{Type: events.TypeConnected}); err != nil {
		return
	}

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				log.Printf("ws: write error: %v", err)
				return
			}
		}
	}
}
