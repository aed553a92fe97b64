package models

// Topic bundles a debate subject: title, description, tags, the ordered
// participant list (user included) and the seed messages a fresh session
// starts from.
type Topic struct {
	ID              int           `json:"id"`
	Icon            string        `json:"icon"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	Tags            []string      `json:"tags"`
	Participants    []Participant `json:"participants"`
	InitialMessages []Message     `json:"initialMessages"`
}

// AIParticipants returns the ordered sub-list of participants excluding the
// user identity. Order matches the topic's participant list.
func (t Topic) AIParticipants() []Participant {
	ai := make([]Participant, 0, len(t.Participants))
	for _, p := range t.Participants {
		if !p.IsUser {
			ai = append(ai, p)
		}
	}
	return ai
}

// User returns the distinguished user participant, if the topic has one.
func (t Topic) User() (Participant, bool) {
	for _, p := range t.Participants {
		if p.IsUser {
			return p, true
		}
	}
	return Participant{}, false
}

// ParticipantByName resolves a participant from its stable name.
func (t Topic) ParticipantByName(name string) (Participant, bool) {
	for _, p := range t.Participants {
		if p.Name == name {
			return p, true
		}
	}
	return Participant{}, false
}
