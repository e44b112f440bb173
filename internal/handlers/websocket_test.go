package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ternarybob/sentinel/internal/common"
	"github.com/ternarybob/sentinel/internal/interfaces"
	"github.com/ternarybob/sentinel/internal/services/events"
)

func dialTestHandler(t *testing.T, h *WebSocketHandler) *websocket.Conn {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(h.HandleWebSocket))
	t.Cleanup(server.Close)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) WSMessage {
	t.Helper()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var msg WSMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return msg
}

func TestWebSocketHandler_ConnectAndBroadcast(t *testing.T) {
	h := NewWebSocketHandler(nil, common.GetLogger(), &common.WebSocketConfig{})
	conn := dialTestHandler(t, h)

	msg := readMessage(t, conn)
	if msg.Type != "connected" {
		t.Fatalf("first message type = %s, want connected", msg.Type)
	}

	// Wait for the server to register the client.
	deadline := time.Now().Add(time.Second)
	for h.ClientCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	h.Broadcast("risk_updated", map[string]interface{}{"asset_id": "lithium", "score": 6.8})

	msg = readMessage(t, conn)
	if msg.Type != "risk_updated" {
		t.Errorf("type = %s, want risk_updated", msg.Type)
	}
}

func TestWebSocketHandler_Whitelist(t *testing.T) {
	h := NewWebSocketHandler(nil, common.GetLogger(), &common.WebSocketConfig{
		AllowedEvents: []string{"risk_updated"},
	})
	conn := dialTestHandler(t, h)
	readMessage(t, conn) // connected

	deadline := time.Now().Add(time.Second)
	for h.ClientCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	h.Broadcast("log_message", "suppressed")
	h.Broadcast("risk_updated", "delivered")

	msg := readMessage(t, conn)
	if msg.Type != "risk_updated" {
		t.Errorf("whitelisted broadcast leaked %s", msg.Type)
	}
}

func TestWebSocketHandler_Throttle(t *testing.T) {
	h := NewWebSocketHandler(nil, common.GetLogger(), &common.WebSocketConfig{
		ThrottleIntervals: map[string]string{"scan_progress": "1m"},
	})
	conn := dialTestHandler(t, h)
	readMessage(t, conn) // connected

	deadline := time.Now().Add(time.Second)
	for h.ClientCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	h.Broadcast("scan_progress", 1)
	h.Broadcast("scan_progress", 2) // throttled away
	h.Broadcast("risk_updated", "after")

	msg := readMessage(t, conn)
	if msg.Type != "scan_progress" {
		t.Fatalf("type = %s, want scan_progress", msg.Type)
	}
	msg = readMessage(t, conn)
	if msg.Type != "risk_updated" {
		t.Errorf("throttled event should have been dropped, got %s", msg.Type)
	}
}

func TestWebSocketHandler_EventServiceBridge(t *testing.T) {
	eventService := events.NewService(common.GetLogger())
	h := NewWebSocketHandler(eventService, common.GetLogger(), &common.WebSocketConfig{})
	conn := dialTestHandler(t, h)
	readMessage(t, conn) // connected

	deadline := time.Now().Add(time.Second)
	for h.ClientCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	if err := eventService.PublishSync(context.Background(), interfaces.Event{
		Type:    interfaces.EventAnalysisComplete,
		Payload: map[string]string{"asset_id": "semiconductors"},
	}); err != nil {
		t.Fatalf("PublishSync: %v", err)
	}

	msg := readMessage(t, conn)
	if msg.Type != string(interfaces.EventAnalysisComplete) {
		t.Errorf("type = %s, want %s", msg.Type, interfaces.EventAnalysisComplete)
	}
}
