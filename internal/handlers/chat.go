package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"converso-backend/internal/models"
	"converso-backend/internal/services"
)

type generationService interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type ChatHandler struct {
	messages  messageRepository
	generator generationService
}

func NewChatHandler(messages messageRepository, generator generationService) *ChatHandler {
	return &ChatHandler{
		messages:  messages,
		generator: generator,
	}
}

// Chat assembles the user's stored history into a transcript, appends
// the new prompt and proxies the result to the generation backend. The
// exchange is not persisted here; clients record it through the
// messages endpoint.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if strings.TrimSpace(req.Prompt) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Prompt is required", r))
		return
	}

	history, err := h.messages.ListByUser(r.Context(), req.UserID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	transcript := services.BuildTranscript(history)
	prompt := services.BuildPrompt(transcript, req.Prompt)

	result, err := h.generator.Generate(r.Context(), prompt)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.ChatResponse{Response: result})
}
