package models

import (
	"time"

	"github.com/google/uuid"
)

// Message is one question/answer exchange owned by a single user.
// Timestamp is assigned by the database at insert time and is the
// ordering key for a user's history.
type Message struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Timestamp time.Time `json:"timestamp"`
}

// MessageRequest is the body for both message creation and update.
// Updates overwrite both fields; an omitted field is written through
// as the empty string.
type MessageRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
