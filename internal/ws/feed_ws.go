package ws

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"

	"social-media-service/internal/middleware"
	"social-media-service/internal/observability"
	"social-media-service/internal/repositories"
)

// FeedWebSocketHandler upgrades feed subscriptions.
type FeedWebSocketHandler struct {
	hub         *Hub
	accountRepo repositories.AccountRepository
}

// NewFeedWebSocketHandler constructs a FeedWebSocketHandler.
func NewFeedWebSocketHandler(hub *Hub, accountRepo repositories.AccountRepository) *FeedWebSocketHandler {
	return &FeedWebSocketHandler{hub: hub, accountRepo: accountRepo}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleFirehose subscribes the client to every message event.
func (h *FeedWebSocketHandler) HandleFirehose(c *gin.Context) {
	ctx, span := otel.Tracer("social-media-service/ws").Start(c.Request.Context(), "ws.handshake")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	info := h.connInfo(c, 0)
	h.hub.AddFirehoseClient(conn, info)
	observability.IncWSActive("firehose")
	observability.IncWSEvent("firehose", "ws_connect")

	go h.readLoop(conn, "firehose", func() {
		h.hub.RemoveFirehoseClient(conn)
	})
}

// HandleAccount subscribes the client to one account's message events.
func (h *FeedWebSocketHandler) HandleAccount(c *gin.Context) {
	accountID, err := strconv.Atoi(c.Param("account_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid account id"})
		return
	}

	ctx, span := otel.Tracer("social-media-service/ws").Start(c.Request.Context(), "ws.handshake")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	exists, err := h.accountRepo.AccountExists(c.Request.Context(), accountID)
	if err != nil || !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown account"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	info := h.connInfo(c, accountID)
	h.hub.AddAccountClient(accountID, conn, info)
	observability.IncWSActive("account")
	observability.IncWSEvent("account", "ws_connect")

	go h.readLoop(conn, "account", func() {
		h.hub.RemoveAccountClient(accountID, conn)
	})
}

func (h *FeedWebSocketHandler) connInfo(c *gin.Context, accountID int) ConnInfo {
	return ConnInfo{
		ConnID:      newConnID(),
		AccountID:   accountID,
		IP:          observability.IPFromRequest(c.Request),
		RequestID:   c.GetString(middleware.ContextKey),
		ConnectedAt: time.Now(),
	}
}

// readLoop drains the connection until the peer goes away, then
// unregisters it. Subscribers are read-only; inbound frames are
// discarded.
func (h *FeedWebSocketHandler) readLoop(conn *websocket.Conn, kind string, remove func()) {
	defer func() {
		remove()
		observability.DecWSActive(kind)
		observability.IncWSEvent(kind, "ws_disconnect")
		conn.Close()
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				observability.IncWSEvent(kind, "ws_error")
			}
			return
		}
	}
}
