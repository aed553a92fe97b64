package debate

import (
	"encoding/json"
	"time"

	"debatesim/models"
)

// Event types streamed to connected clients.
const (
	EventMessage = "message"
	EventTyping  = "typing"
	EventState   = "state"
	EventReset   = "reset"
)

// Event is a session update pushed over the WebSocket stream.
type Event struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp int64           `json:"timestamp"`
}

// MessagePayload carries a freshly appended transcript entry.
type MessagePayload struct {
	Message models.Message `json:"message"`
}

// TypingPayload names the participant whose turn is being generated, or nil
// once generation completes.
type TypingPayload struct {
	Participant *models.Participant `json:"participant"`
}

// StatePayload mirrors the session controls a client renders.
type StatePayload struct {
	Paused       bool   `json:"paused"`
	SpeedIndex   int    `json:"speedIndex"`
	SpeedLabel   string `json:"speedLabel"`
	MessageCount int    `json:"messageCount"`
	MaxMessages  int    `json:"maxMessages"`
	Duration     int    `json:"duration"`
}

// ResetPayload announces a restart or topic change with the reseeded state.
type ResetPayload struct {
	Topic    models.Topic     `json:"topic"`
	Messages []models.Message `json:"messages"`
}

// NewEvent marshals a payload into a timestamped event.
func NewEvent(eventType string, payload interface{}) (*Event, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Event{
		Type:      eventType,
		Payload:   payloadBytes,
		Timestamp: time.Now().Unix(),
	}, nil
}
