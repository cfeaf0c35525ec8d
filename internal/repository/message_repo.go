package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"converso-backend/internal/models"
)

// ErrUserNotFound is returned when a message insert references a user
// that does not exist (foreign key violation).
var ErrUserNotFound = errors.New("user not found")

type MessageRepo struct {
	pool *pgxpool.Pool
}

func NewMessageRepo(pool *pgxpool.Pool) *MessageRepo {
	return &MessageRepo{pool: pool}
}

func (r *MessageRepo) Create(ctx context.Context, msg *models.Message) error {
	query := `
		INSERT INTO messages (id, user_id, question, answer)
		VALUES ($1, $2, $3, $4)
		RETURNING timestamp`

	msg.ID = uuid.New()

	err := r.pool.QueryRow(ctx, query, msg.ID, msg.UserID, msg.Question, msg.Answer).Scan(&msg.Timestamp)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// ListByUser returns all messages for the user, oldest first. Timestamp
// ties are broken by id so repeated reads see the same relative order.
// A user with no messages (or an unknown user) yields an empty slice.
func (r *MessageRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Message, error) {
	query := `
		SELECT id, user_id, question, answer, timestamp
		FROM messages
		WHERE user_id = $1
		ORDER BY timestamp ASC, id ASC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]*models.Message, 0)
	for rows.Next() {
		msg := &models.Message{}
		if scanErr := rows.Scan(&msg.ID, &msg.UserID, &msg.Question, &msg.Answer, &msg.Timestamp); scanErr != nil {
			return nil, scanErr
		}
		messages = append(messages, msg)
	}

	return messages, rows.Err()
}

// Update overwrites both text fields of the message. There is no
// ownership check: any caller holding a message id can rewrite it.
// Returns pgx.ErrNoRows if no message with that id exists.
func (r *MessageRepo) Update(ctx context.Context, id uuid.UUID, question, answer string) (*models.Message, error) {
	query := `
		UPDATE messages
		SET question = $2, answer = $3
		WHERE id = $1
		RETURNING id, user_id, question, answer, timestamp`

	msg := &models.Message{}
	err := r.pool.QueryRow(ctx, query, id, question, answer).Scan(
		&msg.ID, &msg.UserID, &msg.Question, &msg.Answer, &msg.Timestamp,
	)
	if err != nil {
		return nil, err
	}
	return msg, nil
}

// DeleteByUser removes every message owned by the user and reports how
// many rows went away. Deleting for a user with no messages is a no-op.
func (r *MessageRepo) DeleteByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM messages WHERE user_id = $1`, userID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
