package debate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"debatesim/models"
)

// TextGenerator is the outbound boundary to a generative-language backend.
// Implementations issue exactly one external request per call.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Gateway turns topic metadata plus transcript history into one generated
// message per invocation. Remote and parse failures never propagate: they
// come back as System-authored messages so a failed turn stays visible in the
// transcript and pacing continues.
type Gateway struct {
	gen TextGenerator
}

// NewGateway wraps a text generator. A nil generator is valid and means the
// backend is not configured; every turn then yields a System diagnostic.
func NewGateway(gen TextGenerator) *Gateway {
	return &Gateway{gen: gen}
}

// generationResult is the structured payload the model is instructed to
// return.
type generationResult struct {
	Content string `json:"content"`
}

// RequestNextMessage produces the next AI turn. The returned error is
// non-nil only for local scheduling failures (no determinable speaker);
// those skip the cycle without producing a chat message.
func (g *Gateway) RequestNextMessage(ctx context.Context, topic models.Topic, transcript []models.Message) (models.Message, error) {
	speaker, err := NextSpeaker(topic.Participants, transcript)
	if err != nil {
		return models.Message{}, err
	}

	if g.gen == nil {
		return models.NewSystemMessage("Error: Gemini API key is not configured."), nil
	}

	prompt := buildPrompt(topic, transcript, speaker)
	raw, err := g.gen.GenerateText(ctx, prompt)
	if err != nil {
		return models.NewSystemMessage(fmt.Sprintf("Error: %v", err)), nil
	}

	cleaned := cleanModelOutput(raw)
	if cleaned == "" {
		return models.NewSystemMessage("Error: the model returned an empty response."), nil
	}

	var result generationResult
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return models.NewSystemMessage("Error: the model response was not valid JSON."), nil
	}
	if result.Content == "" {
		return models.NewSystemMessage("Error: the model returned an empty response."), nil
	}

	return models.NewMessage(speaker, Normalize(result.Content)), nil
}

// FormatTranscript renders history as "author: content" lines in
// conversation order, the form the prompt embeds.
func FormatTranscript(transcript []models.Message) string {
	var sb strings.Builder
	for _, msg := range transcript {
		sb.WriteString(fmt.Sprintf("%s: %s\n", msg.Author, msg.Content))
	}
	return sb.String()
}

func buildPrompt(topic models.Topic, transcript []models.Message, speaker models.Participant) string {
	var personas strings.Builder
	for _, p := range topic.Participants {
		persona := p.Persona
		if persona == "" {
			persona = "A participant in the discussion, sharing their personal thoughts."
		}
		personas.WriteString(fmt.Sprintf("- %s (%s): %s\n", p.Name, p.Role, persona))
	}

	interjection := ""
	if len(transcript) > 0 {
		last := transcript[len(transcript)-1]
		if user, ok := topic.User(); ok && last.Author == user.Name {
			interjection = fmt.Sprintf(
				`IMPORTANT: The user, a participant, has just said: "%s". Your primary task is to respond directly to the user's message, acknowledging their point while staying in character as %s.`,
				last.Content, speaker.Name,
			)
		}
	}

	return fmt.Sprintf(
		`You are an expert AI debate simulator generating the next response in a debate between multiple AI therapist personas.
The topic: "%s - %s".
Participants & Personas:
%s
Conversation History:
%s
%s
The next speaker is %s.
RULES:
1. Generate natural and meaningful response as %s complete sentences.
2. The message must continue the debate logically and emotionally, keeping the therapist's style and tone.
3. The total message length should be between 50 and 60 words — NOT shorter or longer.
4. Avoid first-person filler not relevant to the message (keep it concise and professional).
5. Do NOT include "%s:" before the text.
6. Respond strictly in valid JSON format with a single key: {"content": "text here"}.`,
		topic.Title, topic.Description,
		personas.String(),
		FormatTranscript(transcript),
		interjection,
		speaker.Name,
		speaker.Name,
		speaker.Name,
	)
}

// cleanModelOutput strips the code-fence markup models like to wrap JSON in.
func cleanModelOutput(text string) string {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```JSON")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}
