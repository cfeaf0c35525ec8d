package models

import "github.com/google/uuid"

// ChatRequest is the payload sent to the chat endpoint. The user's
// stored history becomes the prompt prefix; the exchange itself is not
// persisted by the chat call.
type ChatRequest struct {
	UserID uuid.UUID `json:"user_id"`
	Prompt string    `json:"prompt"`
}

// ChatResponse carries the generated text (or the fallback literal when
// the generation backend answered with an unexpected shape).
type ChatResponse struct {
	Response string `json:"response"`
}
