package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"converso-backend/internal/cache"
	"converso-backend/internal/models"
	"converso-backend/internal/repository"
)

type messageRepository interface {
	Create(ctx context.Context, msg *models.Message) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Message, error)
	Update(ctx context.Context, id uuid.UUID, question, answer string) (*models.Message, error)
	DeleteByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

type MessagesHandler struct {
	messages messageRepository
	cache    *cache.MessageCache
}

func NewMessagesHandler(messages messageRepository, msgCache *cache.MessageCache) *MessagesHandler {
	return &MessagesHandler{
		messages: messages,
		cache:    msgCache,
	}
}

func (h *MessagesHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid user ID", r))
		return
	}

	var req models.MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	msg := &models.Message{
		UserID:   userID,
		Question: req.Question,
		Answer:   req.Answer,
	}

	if err := h.messages.Create(r.Context(), msg); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "User not found", r))
			return
		}
		handleServiceError(w, r, err)
		return
	}

	h.cache.Invalidate(r.Context(), userID)

	writeJSON(w, http.StatusCreated, msg)
}

func (h *MessagesHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid user ID", r))
		return
	}

	if messages, ok := h.cache.Get(r.Context(), userID); ok {
		writeJSON(w, http.StatusOK, messages)
		return
	}

	messages, err := h.messages.ListByUser(r.Context(), userID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	h.cache.Set(r.Context(), userID, messages)

	writeJSON(w, http.StatusOK, messages)
}

// Update overwrites both fields of the message. Ownership is not
// checked; the id alone identifies the record.
func (h *MessagesHandler) Update(w http.ResponseWriter, r *http.Request) {
	msgID, err := uuid.Parse(chi.URLParam(r, "messageID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid message ID", r))
		return
	}

	var req models.MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	msg, err := h.messages.Update(r.Context(), msgID, req.Question, req.Answer)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Message not found", r))
			return
		}
		handleServiceError(w, r, err)
		return
	}

	h.cache.Invalidate(r.Context(), msg.UserID)

	writeJSON(w, http.StatusOK, msg)
}

// DeleteAll removes the user's entire history. It answers 200 with the
// same body whether or not any messages existed.
func (h *MessagesHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid user ID", r))
		return
	}

	if _, err := h.messages.DeleteByUser(r.Context(), userID); err != nil {
		handleServiceError(w, r, err)
		return
	}

	h.cache.Invalidate(r.Context(), userID)

	writeJSON(w, http.StatusOK, map[string]string{"detail": "Messages deleted"})
}
