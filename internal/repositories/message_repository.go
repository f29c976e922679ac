package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"social-media-service/internal/models"
)

var ErrMessageNotFound = errors.New("message not found")

// MessageRepository abstracts message persistence.
type MessageRepository interface {
	CreateMessage(ctx context.Context, msg models.Message) (models.Message, error)
	ListMessages(ctx context.Context) ([]models.Message, error)
	ListMessagesByAccount(ctx context.Context, postedBy int) ([]models.Message, error)
	GetMessage(ctx context.Context, messageID int) (models.Message, error)
	DeleteMessage(ctx context.Context, messageID int) (models.Message, error)
	UpdateMessageText(ctx context.Context, messageID int, text string) (models.Message, error)
}

// MessageRepo is a sqlx-backed repository.
type MessageRepo struct {
	db *sqlx.DB
}

// NewMessageRepo constructs MessageRepo.
func NewMessageRepo(db *sqlx.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

// CreateMessage inserts a message after probing that the posting
// account exists. A missing account maps to ErrAccountNotFound; no
// insert is attempted in that case.
func (r *MessageRepo) CreateMessage(ctx context.Context, msg models.Message) (models.Message, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM account WHERE account_id=$1)`, msg.PostedBy); err != nil {
		return models.Message{}, err
	}
	if !exists {
		return models.Message{}, ErrAccountNotFound
	}

	var created models.Message
	err := r.db.QueryRowxContext(ctx, `INSERT INTO message (posted_by, message_text, time_posted_epoch) VALUES ($1, $2, $3) RETURNING message_id, posted_by, message_text, time_posted_epoch`, msg.PostedBy, msg.MessageText, msg.TimePostedEpoch).
		Scan(&created.MessageID, &created.PostedBy, &created.MessageText, &created.TimePostedEpoch)
	if err != nil {
		return models.Message{}, err
	}
	return created, nil
}

// ListMessages returns every message in storage order.
func (r *MessageRepo) ListMessages(ctx context.Context) ([]models.Message, error) {
	var msgs []models.Message
	err := r.db.SelectContext(ctx, &msgs, `SELECT message_id, posted_by, message_text, time_posted_epoch FROM message`)
	return msgs, err
}

// ListMessagesByAccount returns every message posted by the account.
func (r *MessageRepo) ListMessagesByAccount(ctx context.Context, postedBy int) ([]models.Message, error) {
	var msgs []models.Message
	err := r.db.SelectContext(ctx, &msgs, `SELECT message_id, posted_by, message_text, time_posted_epoch FROM message WHERE posted_by=$1`, postedBy)
	return msgs, err
}

// GetMessage retrieves a single message by id.
func (r *MessageRepo) GetMessage(ctx context.Context, messageID int) (models.Message, error) {
	var msg models.Message
	err := r.db.GetContext(ctx, &msg, `SELECT message_id, posted_by, message_text, time_posted_epoch FROM message WHERE message_id=$1`, messageID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Message{}, ErrMessageNotFound
	}
	return msg, err
}

// DeleteMessage reads the message and then deletes it, returning the
// row as it was before deletion. The read and the delete are separate
// statements; if the delete affects zero rows the message is reported
// as not found even when the read succeeded.
func (r *MessageRepo) DeleteMessage(ctx context.Context, messageID int) (models.Message, error) {
	msg, err := r.GetMessage(ctx, messageID)
	if err != nil {
		return models.Message{}, err
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM message WHERE message_id=$1`, messageID)
	if err != nil {
		return models.Message{}, err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return models.Message{}, err
	}
	if count == 0 {
		return models.Message{}, ErrMessageNotFound
	}
	return msg, nil
}

// UpdateMessageText replaces the text of a message unconditionally and
// re-reads the updated row. Zero rows affected maps to
// ErrMessageNotFound. Text validation happens at the handler layer.
func (r *MessageRepo) UpdateMessageText(ctx context.Context, messageID int, text string) (models.Message, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE message SET message_text=$1 WHERE message_id=$2`, text, messageID)
	if err != nil {
		return models.Message{}, err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return models.Message{}, err
	}
	if count == 0 {
		return models.Message{}, ErrMessageNotFound
	}
	return r.GetMessage(ctx, messageID)
}
