package services

import (
	"encoding/json"
	"strings"
	"testing"

	"debatesim/models"
)

func exportFixture() []models.Message {
	return []models.Message{
		{Author: "Dr. Sarah Chen", Content: "Let's begin.", Time: "2:34 PM"},
		{Author: "You", Content: "What about medication?", Time: "2:35 PM"},
		{Author: "System", Content: "Error: request failed", Time: "2:36 PM"},
		{Author: "Dr. James Williams", Content: "Consider the whole person.", Time: "2:37 PM"},
	}
}

func TestExportTextFormat(t *testing.T) {
	opts := DefaultExportOptions()
	result, err := ExportTranscript("Best Approaches for Treating Anxiety", "You", exportFixture(), opts)
	if err != nil {
		t.Fatalf("ExportTranscript failed: %v", err)
	}
	if result.FileName != "debate-best-approaches-for-treating-anxiety.txt" {
		t.Errorf("Unexpected file name %q", result.FileName)
	}

	content := string(result.Data)
	if !strings.HasPrefix(content, "Topic: Best Approaches for Treating Anxiety\n\n") {
		t.Errorf("Expected topic header, got %q", content)
	}
	if !strings.Contains(content, "[2:34 PM] Dr. Sarah Chen: Let's begin.") {
		t.Errorf("Expected timestamped sender line, got %q", content)
	}
	if strings.Contains(content, "is typing...") {
		t.Errorf("Typing indicators must be off by default")
	}
}

func TestExportTextOptionToggles(t *testing.T) {
	opts := DefaultExportOptions()
	opts.IncludeTimestamps = false
	opts.IncludeSenderNames = false
	opts.IncludeUserMessages = false
	opts.IncludeTypingIndicators = true

	result, err := ExportTranscript("Topic", "You", exportFixture(), opts)
	if err != nil {
		t.Fatalf("ExportTranscript failed: %v", err)
	}
	content := string(result.Data)

	if strings.Contains(content, "What about medication?") {
		t.Errorf("Expected user messages excluded")
	}
	if strings.Contains(content, "[2:34 PM]") {
		t.Errorf("Expected timestamps excluded")
	}
	if strings.Contains(content, "Dr. Sarah Chen: ") {
		t.Errorf("Expected sender names excluded")
	}
	if !strings.Contains(content, "Dr. Sarah Chen is typing...") {
		t.Errorf("Expected typing indicator lines for persona messages")
	}
	if strings.Contains(content, "System is typing...") {
		t.Errorf("System messages must not get typing indicators")
	}
}

func TestExportJSONFormat(t *testing.T) {
	opts := DefaultExportOptions()
	opts.Format = FormatJSON
	result, err := ExportTranscript("Topic Title", "You", exportFixture(), opts)
	if err != nil {
		t.Fatalf("ExportTranscript failed: %v", err)
	}
	if result.ContentType != "application/json" {
		t.Errorf("Unexpected content type %q", result.ContentType)
	}

	var parsed struct {
		Topic      string `json:"topic"`
		Transcript []struct {
			Type    string `json:"type"`
			Author  string `json:"author"`
			Content string `json:"content"`
			Time    string `json:"time"`
		} `json:"transcript"`
	}
	if err := json.Unmarshal(result.Data, &parsed); err != nil {
		t.Fatalf("Export is not valid JSON: %v", err)
	}
	if parsed.Topic != "Topic Title" {
		t.Errorf("Expected topic in payload, got %q", parsed.Topic)
	}
	if len(parsed.Transcript) != 4 {
		t.Errorf("Expected 4 transcript entries, got %d", len(parsed.Transcript))
	}
	if parsed.Transcript[0].Author != "Dr. Sarah Chen" || parsed.Transcript[0].Time != "2:34 PM" {
		t.Errorf("Expected author and time on entries, got %+v", parsed.Transcript[0])
	}
}

func TestExportDocumentPaginates(t *testing.T) {
	messages := make([]models.Message, 30)
	for i := range messages {
		messages[i] = models.Message{Author: "Dr. Sarah Chen", Content: "A point.", Time: "2:34 PM"}
	}

	opts := DefaultExportOptions()
	opts.Format = FormatDocument
	result, err := ExportTranscript("Topic", "You", messages, opts)
	if err != nil {
		t.Fatalf("ExportTranscript failed: %v", err)
	}
	content := string(result.Data)
	if !strings.Contains(content, "--- Page 1 ---") {
		t.Errorf("Expected page headers")
	}
	if !strings.Contains(content, "--- Page 2 ---") {
		t.Errorf("Expected a second page for a long transcript")
	}
}

func TestExportUnknownFormat(t *testing.T) {
	opts := DefaultExportOptions()
	opts.Format = "pdf"
	if _, err := ExportTranscript("Topic", "You", exportFixture(), opts); err == nil {
		t.Errorf("Expected unknown format to be rejected")
	}
}
