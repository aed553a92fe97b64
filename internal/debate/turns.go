package debate

import (
	"errors"

	"debatesim/models"
)

var (
	// ErrEmptyTranscript means there is no last message to key the rotation
	// off. Callers must not ask for a speaker on an empty transcript.
	ErrEmptyTranscript = errors.New("no messages to respond to")
	// ErrNoAIParticipants means the topic has no AI personas; this is a
	// setup defect, not a runtime event.
	ErrNoAIParticipants = errors.New("could not determine the next speaker")
)

// NextSpeaker picks the AI participant that takes the next turn: strict
// round-robin over the non-user participants, keyed off the last message's
// author. A user (or System) message does not advance the rotation; the
// lookup falls through to index -1 and the first AI participant speaks next.
func NextSpeaker(participants []models.Participant, transcript []models.Message) (models.Participant, error) {
	ai := make([]models.Participant, 0, len(participants))
	for _, p := range participants {
		if !p.IsUser {
			ai = append(ai, p)
		}
	}
	if len(ai) == 0 {
		return models.Participant{}, ErrNoAIParticipants
	}
	if len(transcript) == 0 {
		return models.Participant{}, ErrEmptyTranscript
	}

	last := transcript[len(transcript)-1]
	lastIndex := -1
	for i, p := range ai {
		if p.Name == last.Author {
			lastIndex = i
			break
		}
	}
	return ai[(lastIndex+1)%len(ai)], nil
}
