package utils

import "debatesim/models"

// UserParticipant is the distinguished human identity present in every topic.
var UserParticipant = models.Participant{
	Name:        "You",
	Role:        "Participant",
	Avatar:      "👤",
	Color:       "bg-blue-500",
	BubbleColor: "bg-blue-600/50",
	Online:      true,
	IsUser:      true,
}

var drSarah = models.Participant{
	Name:        "Dr. Sarah Chen",
	Role:        "CBT Expert",
	Avatar:      "🧠",
	Color:       "bg-cyan-500",
	BubbleColor: "bg-cyan-600/50",
	Online:      true,
	Persona:     "Believes in structured, research-backed methods. Often cites studies and statistics. Advocates for Cognitive Behavioral Therapy. Pragmatic and solution-focused.",
}

var drJames = models.Participant{
	Name:        "Dr. James Williams",
	Role:        "Holistic Healer",
	Avatar:      "✨",
	Color:       "bg-purple-500",
	BubbleColor: "bg-purple-600/50",
	Online:      true,
	Persona:     "Emphasizes mind-body-spirit connection. Incorporates meditation and mindfulness. References Eastern philosophy. Calm and reflective communication style.",
}

var drMaria = models.Participant{
	Name:        "Dr. Maria Rodriguez",
	Role:        "Analytical Psychologist",
	Avatar:      "❤️‍🩹",
	Color:       "bg-red-500",
	BubbleColor: "bg-red-600/50",
	Online:      true,
	Persona:     "Focuses on understanding root causes. Explores childhood and past experiences. Advocates for long-term therapeutic relationships. Empathetic but probing questioning style.",
}

func allTherapists() []models.Participant {
	return []models.Participant{drSarah, drJames, drMaria, UserParticipant}
}

// SeedTopics returns the built-in debate catalog. Seed message ids are minted
// per session, not here.
func SeedTopics() []models.Topic {
	return []models.Topic{
		{
			ID:           1,
			Icon:         "😥",
			Title:        "Best Approaches for Treating Anxiety",
			Description:  "CBT, medication, and holistic approaches",
			Tags:         []string{"7 min", "Clinical"},
			Participants: allTherapists(),
			InitialMessages: []models.Message{
				{
					Author:      drSarah.Name,
					Time:        "2:34 PM",
					Content:     "Let's begin. From an evidence-based perspective, Cognitive Behavioral Therapy is the undeniable gold standard for treating anxiety. The data supports its efficacy more than any other modality.",
					Avatar:      drSarah.Avatar,
					Color:       drSarah.Color,
					BubbleColor: drSarah.BubbleColor,
				},
			},
		},
		{
			ID:           2,
			Icon:         "💻",
			Title:        "Digital Therapy vs Traditional Sessions",
			Description:  "The effectiveness of online therapy sessions",
			Tags:         []string{"5 min", "Technology"},
			Participants: allTherapists(),
			InitialMessages: []models.Message{
				{
					Author:      drJames.Name,
					Time:        "10:15 AM",
					Content:     "The digital realm offers unprecedented access to care, but can a therapeutic connection truly flourish through a screen? I believe the energetic exchange of in-person sessions is irreplaceable.",
					Avatar:      drJames.Avatar,
					Color:       drJames.Color,
					BubbleColor: drJames.BubbleColor,
				},
			},
		},
		{
			ID:           3,
			Icon:         "⚖️",
			Title:        "Work-Life Balance in Modern Times",
			Description:  "Strategies for preventing burnout",
			Tags:         []string{"6 min", "Lifestyle"},
			Participants: allTherapists(),
			InitialMessages: []models.Message{
				{
					Author:      drMaria.Name,
					Time:        "4:00 PM",
					Content:     "The concept of 'work-life balance' itself is intriguing. It often implies a conflict. I wonder, what childhood messages did we receive about work and rest that perpetuate this struggle?",
					Avatar:      drMaria.Avatar,
					Color:       drMaria.Color,
					BubbleColor: drMaria.BubbleColor,
				},
			},
		},
	}
}

// TopicByID resolves a catalog topic.
func TopicByID(topics []models.Topic, id int) (models.Topic, bool) {
	for _, t := range topics {
		if t.ID == id {
			return t, true
		}
	}
	return models.Topic{}, false
}
