package models

import (
	"time"

	"github.com/google/uuid"
)

// SystemAuthor is the synthetic author used for error and notice messages
// injected into a transcript.
const SystemAuthor = "System"

// Message is a single transcript entry. Display metadata is captured from the
// authoring participant at creation time so past messages keep their visual
// identity.
type Message struct {
	ID          string `json:"id"`
	Author      string `json:"author"`
	Content     string `json:"content"`
	Avatar      string `json:"avatar"`
	Color       string `json:"color"`
	BubbleColor string `json:"bubbleColor"`
	Time        string `json:"time"`
}

// ClockTime renders a timestamp the way messages display it, e.g. "2:34 PM".
func ClockTime(t time.Time) string {
	return t.Format("3:04 PM")
}

// NewMessage stamps a message from a participant with a fresh id and the
// current clock time.
func NewMessage(author Participant, content string) Message {
	return Message{
		ID:          uuid.NewString(),
		Author:      author.Name,
		Content:     content,
		Avatar:      author.Avatar,
		Color:       author.Color,
		BubbleColor: author.BubbleColor,
		Time:        ClockTime(time.Now()),
	}
}

// NewSystemMessage builds a System-authored notice, used for surfacing
// generation failures inline in the transcript.
func NewSystemMessage(content string) Message {
	return Message{
		ID:          uuid.NewString(),
		Author:      SystemAuthor,
		Content:     content,
		Avatar:      "⚙️",
		Color:       "bg-gray-500",
		BubbleColor: "bg-gray-700/50",
		Time:        ClockTime(time.Now()),
	}
}
