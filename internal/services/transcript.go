package services

import (
	"strings"

	"converso-backend/internal/models"
)

// BuildTranscript renders stored history as alternating speaker-labeled
// lines, in the order given. The output is deterministic: the same
// history always yields byte-identical text. Empty history yields "".
func BuildTranscript(messages []*models.Message) string {
	var b strings.Builder
	for _, msg := range messages {
		b.WriteString("User: ")
		b.WriteString(msg.Question)
		b.WriteString("\nAssistant: ")
		b.WriteString(msg.Answer)
		b.WriteString("\n")
	}
	return b.String()
}

// BuildPrompt appends the new question to the transcript, leaving the
// assistant turn open for the generation backend to complete.
func BuildPrompt(transcript, question string) string {
	return transcript + "User: " + question + "\nAssistant:"
}
