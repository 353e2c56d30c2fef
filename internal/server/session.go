package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/lumina-tools/planner/internal/build"
	"github.com/lumina-tools/planner/internal/token"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// sessionRequest is the incoming WebSocket message format.
type sessionRequest struct {
	Type   string       `json:"type"` // "intent" or "load"
	Intent build.Intent `json:"intent,omitempty"`
	Token  string       `json:"token,omitempty"` // for "load"
}

// sessionResponse is the outgoing WebSocket message format. After every
// accepted mutation the client receives the fresh token and share URL —
// one message per discrete action, no debouncing.
type sessionResponse struct {
	Type      string `json:"type"` // "state" or "error"
	SessionID string `json:"session_id"`
	Error     string `json:"error,omitempty"`
	buildResponse
}

// handleSession runs one live planner session. The build state lives in
// this connection's memory and nowhere else; closing the tab loses
// anything not carried away in the URL, exactly like the original planner.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("session: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	sessionID := uuid.New().String()
	state := build.NewState()

	// Initial sync so the client starts from the empty build.
	s.sendState(conn, sessionID, state, false)

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("session %s: websocket read: %v", sessionID, err)
			}
			return
		}

		var req sessionRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			s.sendError(conn, sessionID, "invalid message format")
			continue
		}

		switch req.Type {
		case "intent":
			next, err := build.Apply(state, req.Intent)
			if err != nil {
				s.sendError(conn, sessionID, err.Error())
				continue
			}
			state = next
			s.sendState(conn, sessionID, state, false)

		case "load":
			// The back/forward/pasted-link path: the token replaces the
			// session state wholesale.
			dec := token.Decode(req.Token)
			if dec.Recovered {
				log.Printf("session %s: recovered from malformed token: %v", sessionID, dec.Err)
			}
			state = dec.State
			s.sendState(conn, sessionID, state, dec.Recovered)

		default:
			s.sendError(conn, sessionID, "unknown message type: "+req.Type)
		}
	}
}

func (s *Server) sendState(conn *websocket.Conn, sessionID string, st build.State, recovered bool) {
	resp := sessionResponse{
		Type:          "state",
		SessionID:     sessionID,
		buildResponse: s.buildResponseFor(st, recovered),
	}
	if err := conn.WriteJSON(resp); err != nil {
		log.Printf("session %s: websocket write: %v", sessionID, err)
	}
}

func (s *Server) sendError(conn *websocket.Conn, sessionID, msg string) {
	resp := sessionResponse{Type: "error", SessionID: sessionID, Error: msg}
	if err := conn.WriteJSON(resp); err != nil {
		log.Printf("session %s: websocket write: %v", sessionID, err)
	}
}
