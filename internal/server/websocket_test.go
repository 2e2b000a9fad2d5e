// File: websocket_test.go
// Title: WebSocket Stream Tests
// Description: Tests the parse stream against a live test server.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

type wsReply struct {
	Type    string          `json:"type"`
	ID      string          `json:"id"`
	Payload json.RawMessage `json:"payload"`
}

func dialTestServer(t *testing.T, header http.Header) *websocket.Conn {
	t.Helper()
	ts := httptest.NewServer(newTestServer(t).Handler())
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/v1/parse/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, msg interface{}) wsReply {
	t.Helper()
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	var reply wsReply
	if err := conn.ReadJSON(&reply); err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	return reply
}

func TestWebSocketPing(t *testing.T) {
	conn := dialTestServer(t, nil)
	reply := roundTrip(t, conn, map[string]string{"type": "ping", "id": "p1"})
	if reply.Type != "pong" || reply.ID != "p1" {
		t.Errorf("reply = %+v", reply)
	}
}

func TestWebSocketParse(t *testing.T) {
	conn := dialTestServer(t, http.Header{"Accept-Language": []string{"fr"}})

	tests := []struct {
		id        string
		payload   string
		wantOK    bool
		canonical string
		code      string
	}{
		{"1", `{"text":"Sun Nov 6 08:49:37 1994"}`, true, "AD 1994-11-06 08:49:37 +0000", ""},
		{"2", `{"text":"25 décembre 1992"}`, true, "AD 1992-12-25 00:00:00 +0000", ""},
		{"3", `{"text":"12:00 13:00"}`, false, "", "DATETIME_LEFTOVER"},
	}

	for _, tt := range tests {
		reply := roundTrip(t, conn, map[string]interface{}{
			"type":    "parse",
			"id":      tt.id,
			"payload": json.RawMessage(tt.payload),
		})
		if reply.Type != "result" || reply.ID != tt.id {
			t.Fatalf("reply = %+v", reply)
		}
		var resp parseReply
		if err := json.Unmarshal(reply.Payload, &resp); err != nil {
			t.Fatal(err)
		}
		if resp.OK != tt.wantOK || resp.Canonical != tt.canonical {
			t.Errorf("message %s: %+v", tt.id, resp)
		}
		if resp.Locale != "fr" {
			t.Errorf("message %s: locale = %q, want fr", tt.id, resp.Locale)
		}
		if tt.code != "" && (resp.Error == nil || resp.Error.Code != tt.code) {
			t.Errorf("message %s: error = %+v, want %s", tt.id, resp.Error, tt.code)
		}
	}
}

func TestWebSocketBadMessages(t *testing.T) {
	conn := dialTestServer(t, nil)

	reply := roundTrip(t, conn, map[string]string{"type": "shout"})
	if reply.Type != "error" {
		t.Errorf("unknown type reply = %+v", reply)
	}

	reply = roundTrip(t, conn, map[string]interface{}{"type": "parse", "payload": "not an object"})
	if reply.Type != "error" {
		t.Errorf("bad payload reply = %+v", reply)
	}
	var body ErrorBody
	if err := json.Unmarshal(reply.Payload, &body); err != nil || body.Code != "INVALID_INPUT" {
		t.Errorf("error payload = %s", reply.Payload)
	}
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"https://app.example"})

	tests := []struct {
		origin string
		want   bool
	}{
		{"", true},
		{"https://app.example", true},
		{"https://evil.example", false},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/api/v1/parse/ws", nil)
		if tt.origin != "" {
			r.Header.Set("Origin", tt.origin)
		}
		if got := check(r); got != tt.want {
			t.Errorf("origin %q: got %v, want %v", tt.origin, got, tt.want)
		}
	}
}

func TestWebSocketReadLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxBodyBytes = 256
	ts := httptest.NewServer(New(cfg, newTestParsers(t, nil), nil).Handler())
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/v1/parse/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	reply := roundTrip(t, conn, map[string]string{"type": "ping", "id": "small"})
	if reply.Type != "pong" {
		t.Fatalf("reply = %+v", reply)
	}

	big := map[string]interface{}{
		"type":    "parse",
		"id":      "big",
		"payload": map[string]string{"text": strings.Repeat("1", 1024)},
	}
	if err := conn.WriteJSON(big); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	var r wsReply
	if err := conn.ReadJSON(&r); err == nil {
		t.Errorf("oversized message answered with %+v", r)
	}
}
