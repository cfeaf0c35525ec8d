package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"converso-backend/internal/models"
)

type stubMessageRepo struct {
	messages  []*models.Message
	listErr   error
	created   *models.Message
	createErr error
	updated   *models.Message
	updateErr error
	deleted   bool
	lastUser  uuid.UUID
	rows      int64
}

func (s *stubMessageRepo) Create(ctx context.Context, msg *models.Message) error {
	if s.createErr != nil {
		return s.createErr
	}
	msg.ID = uuid.New()
	msg.Timestamp = time.Now()
	s.created = msg
	return nil
}

func (s *stubMessageRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Message, error) {
	s.lastUser = userID
	if s.listErr != nil {
		return nil, s.listErr
	}
	if s.messages == nil {
		return make([]*models.Message, 0), nil
	}
	return s.messages, nil
}

func (s *stubMessageRepo) Update(ctx context.Context, id uuid.UUID, question, answer string) (*models.Message, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	s.updated = &models.Message{
		ID:        id,
		UserID:    uuid.New(),
		Question:  question,
		Answer:    answer,
		Timestamp: time.Now(),
	}
	return s.updated, nil
}

func (s *stubMessageRepo) DeleteByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	s.deleted = true
	s.lastUser = userID
	return s.rows, nil
}

func newRequestWithParam(method, target, param, value string, body []byte) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(param, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestMessagesHandler_List_EmptyHistoryIsEmptyArray(t *testing.T) {
	userID := uuid.New()
	repo := &stubMessageRepo{}
	h := NewMessagesHandler(repo, nil)

	req := newRequestWithParam(http.MethodGet, "/users/"+userID.String()+"/messages", "userID", userID.String(), nil)
	rr := httptest.NewRecorder()
	h.List(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if body := strings.TrimSpace(rr.Body.String()); body != "[]" {
		t.Errorf("expected empty array body, got %q", body)
	}
	if repo.lastUser != userID {
		t.Errorf("expected lookup for user %s, got %s", userID, repo.lastUser)
	}
}

func TestMessagesHandler_List_InvalidUserID(t *testing.T) {
	h := NewMessagesHandler(&stubMessageRepo{}, nil)

	req := newRequestWithParam(http.MethodGet, "/users/not-a-uuid/messages", "userID", "not-a-uuid", nil)
	rr := httptest.NewRecorder()
	h.List(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
}

func TestMessagesHandler_Create(t *testing.T) {
	userID := uuid.New()
	repo := &stubMessageRepo{}
	h := NewMessagesHandler(repo, nil)

	body, _ := json.Marshal(models.MessageRequest{Question: "hi", Answer: "hello"})
	req := newRequestWithParam(http.MethodPost, "/users/"+userID.String()+"/messages", "userID", userID.String(), body)
	rr := httptest.NewRecorder()
	h.Create(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, rr.Code)
	}

	var msg models.Message
	if err := json.NewDecoder(rr.Body).Decode(&msg); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if msg.Question != "hi" || msg.Answer != "hello" {
		t.Errorf("unexpected message content: %+v", msg)
	}
	if msg.ID == uuid.Nil {
		t.Error("expected assigned message id")
	}
	if msg.Timestamp.IsZero() {
		t.Error("expected assigned timestamp")
	}
	if repo.created == nil || repo.created.UserID != userID {
		t.Errorf("expected message created for user %s", userID)
	}
}

func TestMessagesHandler_Update_UnknownID(t *testing.T) {
	repo := &stubMessageRepo{updateErr: pgx.ErrNoRows}
	h := NewMessagesHandler(repo, nil)

	msgID := uuid.New()
	body, _ := json.Marshal(models.MessageRequest{Question: "q", Answer: "a"})
	req := newRequestWithParam(http.MethodPut, "/messages/"+msgID.String(), "messageID", msgID.String(), body)
	rr := httptest.NewRecorder()
	h.Update(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, rr.Code)
	}
}

func TestMessagesHandler_Update_OverwritesBothFields(t *testing.T) {
	repo := &stubMessageRepo{}
	h := NewMessagesHandler(repo, nil)

	msgID := uuid.New()
	// Answer omitted on purpose: full-overwrite semantics write it
	// through as empty.
	body := []byte(`{"question":"new question"}`)
	req := newRequestWithParam(http.MethodPut, "/messages/"+msgID.String(), "messageID", msgID.String(), body)
	rr := httptest.NewRecorder()
	h.Update(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if repo.updated.Question != "new question" {
		t.Errorf("expected question overwritten, got %q", repo.updated.Question)
	}
	if repo.updated.Answer != "" {
		t.Errorf("expected omitted answer written as empty, got %q", repo.updated.Answer)
	}
}

func TestMessagesHandler_DeleteAll(t *testing.T) {
	tests := []struct {
		name string
		rows int64
	}{
		{"with messages", 3},
		{"no messages is a no-op", 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			userID := uuid.New()
			repo := &stubMessageRepo{rows: tc.rows}
			h := NewMessagesHandler(repo, nil)

			req := newRequestWithParam(http.MethodDelete, "/users/"+userID.String()+"/messages", "userID", userID.String(), nil)
			rr := httptest.NewRecorder()
			h.DeleteAll(rr, req)

			if rr.Code != http.StatusOK {
				t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
			}

			var payload map[string]string
			if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if payload["detail"] != "Messages deleted" {
				t.Errorf("unexpected detail: %q", payload["detail"])
			}
			if !repo.deleted {
				t.Error("expected delete to be executed")
			}
		})
	}
}
