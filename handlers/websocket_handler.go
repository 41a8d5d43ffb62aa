package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/sut-badminton/registration/live"
)

type WebSocketHandler struct {
	responder
	hub      *live.Hub
	upgrader websocket.Upgrader
}

// NewWebSocketHandler accepts upgrades only from origins for which
// originAllowed returns true. Requests without an Origin header (non-browser
// clients) are accepted.
func NewWebSocketHandler(hub *live.Hub, originAllowed func(origin string) bool, logger *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		responder: newResponder(logger),
		hub:       hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" || originAllowed == nil {
					return true
				}
				return originAllowed(origin)
			},
		},
	}
}

// ServeWs подключает админ-панель к ленте событий.
// Авторизация выполняется middleware до апгрейда.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade сам отправляет HTTP ошибку клиенту.
		h.logger.WarnContext(r.Context(), "websocket upgrade failed", slog.Any("error", err))
		return
	}
	h.hub.Attach(conn)
	h.logger.InfoContext(r.Context(), "admin feed client connected", slog.String("remote_addr", r.RemoteAddr))
}
