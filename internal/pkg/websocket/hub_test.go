package websocket

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/campusbuzz/internal/app/models"
)

func startHub(t *testing.T) (*Hub, *Handler, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(zerolog.Nop())
	go hub.Run(ctx)

	handler := NewHandler(hub, zerolog.Nop())
	r := gin.New()
	r.GET("/ws", func(c *gin.Context) {
		c.Set("userID", c.Query("as"))
		handler.HandleConnection(c)
	})
	srv := httptest.NewServer(r)
	t.Cleanup(func() {
		cancel()
		srv.Close()
	})
	return hub, handler, "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func dial(t *testing.T, hub *Hub, url, userID string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url+"?as="+userID, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.Eventually(t, func() bool { return hub.ClientsCount(userID) > 0 }, time.Second, 5*time.Millisecond)
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var event map[string]any
	require.NoError(t, json.Unmarshal(data, &event))
	return event
}

func TestDeliverReachesOnlyRecipient(t *testing.T) {
	hub, _, url := startHub(t)
	alex := dial(t, hub, url, "u1")
	priya := dial(t, hub, url, "u2")

	hub.Deliver(context.Background(), models.Notification{ID: "n1", RecipientID: "u2", Text: "hello", Type: models.NotificationMessage})
	hub.Deliver(context.Background(), models.Notification{ID: "n2", RecipientID: "u1", Text: "for alex", Type: models.NotificationPost})

	event := readEvent(t, priya)
	assert.Equal(t, EventNotification, event["type"])
	assert.Equal(t, "n1", event["data"].(map[string]any)["id"])

	event = readEvent(t, alex)
	assert.Equal(t, "n2", event["data"].(map[string]any)["id"])
}

func TestCommandsRunAsConnectionUser(t *testing.T) {
	hub, _, url := startHub(t)
	got := make(chan string, 1)
	hub.SetCommandHandler(func(_ context.Context, userID string, msg ClientMessage) error {
		if msg.Type != CommandCloseToast {
			return assert.AnError
		}
		got <- userID
		return nil
	})
	conn := dial(t, hub, url, "u1")

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: CommandCloseToast}))
	select {
	case userID := <-got:
		assert.Equal(t, "u1", userID)
	case <-time.After(2 * time.Second):
		t.Fatal("command not handled")
	}

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: "dance"}))
	event := readEvent(t, conn)
	assert.Equal(t, EventError, event["type"])
}

func TestOnConnectEventsAndDisconnect(t *testing.T) {
	hub, handler, url := startHub(t)
	handler.OnConnect(func(userID string) []Event {
		return []Event{{Type: EventToast, Data: map[string]string{"phase": "hidden"}}}
	})

	conn := dial(t, hub, url, "u3")
	event := readEvent(t, conn)
	assert.Equal(t, EventToast, event["type"])

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return hub.ClientsCount("u3") == 0 }, 2*time.Second, 10*time.Millisecond)
}
