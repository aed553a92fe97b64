package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"debatesim/internal/debate"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	// In production, adjust the CheckOrigin function to allow only trusted origins.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const writeWait = 10 * time.Second

var manager *debate.Manager

// Setup wires the stream handler to the session registry.
func Setup(m *debate.Manager) {
	manager = m
}

// ClientMessage is a command sent by the browser over the stream.
type ClientMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// DebateStreamHandler upgrades the connection and streams session events
// (messages, typing, control state) while accepting client commands on the
// same socket.
func DebateStreamHandler(c *gin.Context) {
	session, ok := manager.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	events := session.Subscribe()
	defer session.Unsubscribe(events)

	// Writer: pump session events to the client.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for event := range events {
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(event); err != nil {
				log.Printf("session %s: websocket write failed: %v", session.ID, err)
				return
			}
		}
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session closed"))
	}()

	// Reader: apply client commands until the connection drops.
	for {
		var msg ClientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			break
		}
		handleClientMessage(session, msg)
	}
	// Close the event stream now so the writer drains out even when the
	// session is quiet; otherwise this handler would block until the next
	// event arrives.
	session.Unsubscribe(events)
	<-done
}

func handleClientMessage(session *debate.Session, msg ClientMessage) {
	switch msg.Type {
	case "message":
		var payload struct {
			Content string `json:"content"`
		}
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return
		}
		if _, err := session.SendUserMessage(payload.Content); err != nil {
			log.Printf("session %s: send rejected: %v", session.ID, err)
		}
	case "pause":
		session.SetPaused(true)
	case "resume":
		session.SetPaused(false)
	case "speed":
		session.ToggleSpeed()
	case "modal":
		var payload struct {
			Modal string `json:"modal"`
			Open  bool   `json:"open"`
		}
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return
		}
		modal, err := debate.ParseModal(payload.Modal)
		if err != nil {
			return
		}
		session.SetModal(modal, payload.Open)
	case "restart":
		session.Restart()
	default:
		log.Printf("session %s: unknown client message type %q", session.ID, msg.Type)
	}
}
