package services

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"debatesim/models"
)

// Export formats.
const (
	FormatText     = "txt"
	FormatJSON     = "json"
	FormatDocument = "doc"
)

// docPageLines is how many rendered lines fit on one page of the paginated
// document format.
const docPageLines = 40

// ExportOptions selects the export format and which details the snapshot
// includes.
type ExportOptions struct {
	Format                  string
	IncludeTimestamps       bool
	IncludeSenderNames      bool
	IncludeTypingIndicators bool
	IncludeUserMessages     bool
}

// DefaultExportOptions mirrors the export dialog's initial state.
func DefaultExportOptions() ExportOptions {
	return ExportOptions{
		Format:              FormatText,
		IncludeTimestamps:   true,
		IncludeSenderNames:  true,
		IncludeUserMessages: true,
	}
}

// ExportResult is a rendered one-way snapshot of a transcript.
type ExportResult struct {
	FileName    string
	ContentType string
	Data        []byte
}

var slugPattern = regexp.MustCompile(`\s+`)

func exportFileName(topicTitle, ext string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(topicTitle), "-")
	return fmt.Sprintf("debate-%s.%s", slug, ext)
}

// ExportTranscript renders an immutable snapshot of the transcript for
// download. The transcript itself is never modified.
func ExportTranscript(topicTitle string, userName string, messages []models.Message, opts ExportOptions) (*ExportResult, error) {
	filtered := messages
	if !opts.IncludeUserMessages {
		filtered = make([]models.Message, 0, len(messages))
		for _, msg := range messages {
			if msg.Author != userName {
				filtered = append(filtered, msg)
			}
		}
	}

	switch opts.Format {
	case FormatText:
		content := renderText(topicTitle, userName, filtered, opts)
		return &ExportResult{
			FileName:    exportFileName(topicTitle, "txt"),
			ContentType: "text/plain; charset=utf-8",
			Data:        []byte(content),
		}, nil
	case FormatJSON:
		data, err := renderJSON(topicTitle, userName, filtered, opts)
		if err != nil {
			return nil, err
		}
		return &ExportResult{
			FileName:    exportFileName(topicTitle, "json"),
			ContentType: "application/json",
			Data:        data,
		}, nil
	case FormatDocument:
		content := renderDocument(topicTitle, userName, filtered, opts)
		return &ExportResult{
			FileName:    exportFileName(topicTitle, "doc.txt"),
			ContentType: "text/plain; charset=utf-8",
			Data:        []byte(content),
		}, nil
	}
	return nil, fmt.Errorf("unknown export format %q", opts.Format)
}

func isPersonaAuthor(msg models.Message, userName string) bool {
	return msg.Author != userName && msg.Author != models.SystemAuthor
}

func renderText(topicTitle, userName string, messages []models.Message, opts ExportOptions) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Topic: %s\n\n", topicTitle))
	for _, msg := range messages {
		if opts.IncludeTypingIndicators && isPersonaAuthor(msg, userName) {
			sb.WriteString(fmt.Sprintf("%s is typing...\n\n", msg.Author))
		}
		timestamp := ""
		if opts.IncludeTimestamps {
			timestamp = fmt.Sprintf("[%s] ", msg.Time)
		}
		sender := ""
		if opts.IncludeSenderNames {
			sender = fmt.Sprintf("%s: ", msg.Author)
		}
		sb.WriteString(fmt.Sprintf("%s%s%s\n\n", timestamp, sender, msg.Content))
	}
	return sb.String()
}

type exportEntry struct {
	Type    string `json:"type"`
	Author  string `json:"author,omitempty"`
	Content string `json:"content,omitempty"`
	Time    string `json:"time,omitempty"`
}

func renderJSON(topicTitle, userName string, messages []models.Message, opts ExportOptions) ([]byte, error) {
	transcript := make([]exportEntry, 0, len(messages)*2)
	for _, msg := range messages {
		if opts.IncludeTypingIndicators && isPersonaAuthor(msg, userName) {
			transcript = append(transcript, exportEntry{Type: "indicator", Author: msg.Author})
		}
		entry := exportEntry{Type: "message", Content: msg.Content}
		if opts.IncludeSenderNames {
			entry.Author = msg.Author
		}
		if opts.IncludeTimestamps {
			entry.Time = msg.Time
		}
		transcript = append(transcript, entry)
	}
	return json.MarshalIndent(struct {
		Topic      string        `json:"topic"`
		Transcript []exportEntry `json:"transcript"`
	}{Topic: topicTitle, Transcript: transcript}, "", "  ")
}

// renderDocument lays the text export out in numbered pages, the plain-text
// stand-in for a paginated document download.
func renderDocument(topicTitle, userName string, messages []models.Message, opts ExportOptions) string {
	body := renderText(topicTitle, userName, messages, opts)
	lines := strings.Split(body, "\n")

	var sb strings.Builder
	page := 1
	for start := 0; start < len(lines); start += docPageLines {
		end := start + docPageLines
		if end > len(lines) {
			end = len(lines)
		}
		if page > 1 {
			sb.WriteString("\f")
		}
		sb.WriteString(fmt.Sprintf("--- Page %d ---\n", page))
		sb.WriteString(strings.Join(lines[start:end], "\n"))
		sb.WriteString("\n")
		page++
	}
	return sb.String()
}
