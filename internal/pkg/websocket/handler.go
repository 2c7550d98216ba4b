package websocket

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/campusbuzz/internal/app/models/dto"
)

// Handler for WebSocket connections
type Handler struct {
	hub       *Hub
	onConnect func(userID string) []Event
	logger    zerolog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, logger zerolog.Logger) *Handler {
	return &Handler{
		hub:    hub,
		logger: logger.With().Str("component", "websocket").Logger(),
	}
}

// OnConnect sets a function whose events are sent to every new connection,
// such as the toast that is currently visible
func (h *Handler) OnConnect(fn func(userID string) []Event) {
	h.onConnect = fn
}

// HandleConnection godoc
// @Summary Open the push channel
// @Description Upgrades to a WebSocket that streams the acting user's notifications and toast transitions. Browsers pass the session token as the token query parameter.
// @Tags websocket
// @Security BearerAuth
// @Param token query string false "Session token"
// @Success 101 {string} string "Switching Protocols to WebSocket"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: token missing or invalid"
// @Router /ws [get]
func (h *Handler) HandleConnection(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().Err(err).Str("userID", userID).Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := &Client{
		hub:    h.hub,
		conn:   conn,
		send:   make(chan []byte, 256),
		userID: userID,
		logger: h.logger,
	}
	select {
	case h.hub.register <- client:
	case <-h.hub.done:
		conn.Close()
		return
	}

	if h.onConnect != nil {
		for _, event := range h.onConnect(userID) {
			client.reply(event)
		}
	}

	// the request context ends when this handler returns
	ctx := context.WithoutCancel(c.Request.Context())
	go client.writePump()
	go client.readPump(ctx)

	h.logger.Info().
		Str("userID", userID).
		Str("remoteAddr", conn.RemoteAddr().String()).
		Msg("WebSocket connection established")
}
