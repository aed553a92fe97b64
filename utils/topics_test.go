package utils

import "testing"

func TestTopicByID(t *testing.T) {
	topics := SeedTopics()

	topic, ok := TopicByID(topics, topics[1].ID)
	if !ok {
		t.Fatalf("Expected topic %d to resolve", topics[1].ID)
	}
	if topic.Title != topics[1].Title {
		t.Errorf("Expected %q, got %q", topics[1].Title, topic.Title)
	}

	if _, ok := TopicByID(topics, 99); ok {
		t.Error("Expected unknown topic id to miss")
	}
}

func TestSeedTopicsHaveUserAndAIs(t *testing.T) {
	for _, topic := range SeedTopics() {
		if _, ok := topic.User(); !ok {
			t.Errorf("Topic %d has no user participant", topic.ID)
		}
		if len(topic.AIParticipants()) == 0 {
			t.Errorf("Topic %d has no AI participants", topic.ID)
		}
	}
}
