// File: websocket.go
// Title: WebSocket Parse Stream
// Description: Streams parse requests over a WebSocket connection. Each
//              "parse" message is answered with one "result" message in
//              order; "ping" is answered with "pong".
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
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	dterror "github.com/msto63/dtparse/core/error"
	dtlog "github.com/msto63/dtparse/core/log"
)

const wsReadTimeout = 120 * time.Second

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type    string          `json:"type"`              // "parse", "ping"
	ID      string          `json:"id,omitempty"`      // echoed in the reply
	Payload json.RawMessage `json:"payload,omitempty"` // ParseRequest for "parse"
}

// WSResponse represents a WebSocket response
type WSResponse struct {
	Type    string      `json:"type"` // "result", "error", "pong"
	ID      string      `json:"id,omitempty"`
	Payload interface{} `json:"payload,omitempty"`
}

// WebSocketHandler handles WebSocket connections
type WebSocketHandler struct {
	handler  *Handler
	upgrader websocket.Upgrader
	logger   *dtlog.Logger
}

// NewWebSocketHandler creates a new WebSocket handler. An empty origin
// list accepts every origin.
func NewWebSocketHandler(h *Handler, allowedOrigins []string, logger *dtlog.Logger) *WebSocketHandler {
	if logger == nil {
		logger = dtlog.GetDefault()
	}
	return &WebSocketHandler{
		handler: h,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		logger: logger.WithName("websocket"),
	}
}

func originChecker(allowed []string) func(*http.Request) bool {
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || strings.EqualFold(a, origin) {
				return true
			}
		}
		return false
	}
}

// ServeHTTP handles WebSocket upgrade and connections
func (ws *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := ws.upgrader.Upgrade(w, r, nil)
	if err != nil {
		ws.logger.WarnWithErr("WebSocket upgrade failed", err)
		return
	}

	session := uuid.NewString()
	logger := loggerFrom(r, ws.logger).WithField("session", session)
	ws.handleConnection(conn, r.Header.Get("Accept-Language"), logger)
}

// handleConnection serves one connection until the client goes away
func (ws *WebSocketHandler) handleConnection(conn *websocket.Conn, acceptLanguage string, logger *dtlog.Logger) {
	defer conn.Close()

	logger.Info("WebSocket connection established", dtlog.Fields{"remote": conn.RemoteAddr().String()})

	if ws.handler.maxBody > 0 {
		conn.SetReadLimit(ws.handler.maxBody)
	}
	conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	})

	for {
		var msg WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.WarnWithErr("WebSocket read error", err)
			} else {
				logger.Info("WebSocket connection closed")
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(wsReadTimeout))

		switch msg.Type {
		case "ping":
			ws.send(conn, logger, WSResponse{Type: "pong", ID: msg.ID})

		case "parse":
			var req ParseRequest
			if err := json.Unmarshal(msg.Payload, &req); err != nil {
				ws.sendError(conn, logger, msg.ID, dterror.CodeInvalidInput, "invalid parse payload")
				continue
			}
			resp, _ := ws.handler.Parse(req, acceptLanguage)
			ws.send(conn, logger, WSResponse{Type: "result", ID: msg.ID, Payload: resp})

		default:
			ws.sendError(conn, logger, msg.ID, dterror.CodeInvalidInput, "unknown message type: "+msg.Type)
		}
	}
}

// send sends a response message via WebSocket
func (ws *WebSocketHandler) send(conn *websocket.Conn, logger *dtlog.Logger, resp WSResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		logger.WarnWithErr("WebSocket send error", err)
	}
}

// sendError sends an error response via WebSocket
func (ws *WebSocketHandler) sendError(conn *websocket.Conn, logger *dtlog.Logger, id string, code dterror.Code, message string) {
	ws.send(conn, logger, WSResponse{
		Type:    "error",
		ID:      id,
		Payload: ErrorBody{Code: code.String(), Message: message},
	})
}
