package ws

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Server upgrades HTTP requests to websocket connections and starts the
// per-connection pumps.
type Server struct {
	hub    *Hub
	router *Router
}

func NewServer(hub *Hub, router *Router) *Server {
	return &Server{hub: hub, router: router}
}

// HandleConnection handles GET /ws - upgrades the request and attaches
// the connection to the hub.
func (s *Server) HandleConnection(ctx echo.Context) error {
	conn, err := upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		return err
	}

	client := newClient(uuid.NewString(), conn, s.hub, s.router)
	s.hub.Add(client)

	go client.writePump()
	go client.readPump()

	return nil
}
