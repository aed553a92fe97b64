package models

// Participant represents a named debate actor, either an AI persona or the
// human user. Participants are fixed once a topic is loaded.
type Participant struct {
	Name        string `json:"name"`
	Role        string `json:"role"`
	Avatar      string `json:"avatar"`
	Color       string `json:"color"`
	BubbleColor string `json:"bubbleColor"`
	Online      bool   `json:"online"`
	IsUser      bool   `json:"isUser"`
	// Persona is the behavioural description embedded into generation
	// prompts. Empty for the user participant.
	Persona string `json:"persona,omitempty"`
}
