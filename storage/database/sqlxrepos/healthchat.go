package sqlxrepos

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/acuhub/portal/core/healthchat"
)

type HealthChatRepository struct {
	db *sqlx.DB
}

var _ healthchat.Repository = (*HealthChatRepository)(nil)

func NewHealthChatRepository(db *sqlx.DB) *HealthChatRepository {
	return &HealthChatRepository{db: db}
}

type healthChatRow struct {
	ID        string      `db:"id"`
	StudentID string      `db:"student_id"`
	StaffID   null.String `db:"staff_id"`
	Status    string      `db:"status"`
	Priority  string      `db:"priority"`
	CreatedAt time.Time   `db:"created_at"`
	UpdatedAt time.Time   `db:"updated_at"`
}

func (row healthChatRow) chat() healthchat.Chat {
	return healthchat.Chat{
		ID:        row.ID,
		StudentID: row.StudentID,
		StaffID:   row.StaffID,
		Status:    row.Status,
		Priority:  row.Priority,
		CreatedAt: row.CreatedAt.UTC(),
		UpdatedAt: row.UpdatedAt.UTC(),
	}
}

type healthChatMessageRow struct {
	ID        string    `db:"id"`
	ChatID    string    `db:"chat_id"`
	Sender    string    `db:"sender"`
	SenderID  string    `db:"sender_id"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
}

func (row healthChatMessageRow) message() healthchat.Message {
	return healthchat.Message{
		ID:        row.ID,
		ChatID:    row.ChatID,
		Sender:    row.Sender,
		SenderID:  row.SenderID,
		Content:   row.Content,
		CreatedAt: row.CreatedAt.UTC(),
	}
}

func (repo *HealthChatRepository) CreateChat(ctx context.Context, chat healthchat.Chat) (healthchat.Chat, error) {
	chat.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO health_chat (id, student_id, staff_id, status, priority, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		chat.ID, chat.StudentID, chat.StaffID, chat.Status, chat.Priority, chat.CreatedAt, chat.UpdatedAt,
	)
	if err != nil {
		return healthchat.Chat{}, errors.Wrap(err, "inserting chat")
	}
	return chat, nil
}

func (repo *HealthChatRepository) GetChat(ctx context.Context, id string) (healthchat.Chat, error) {
	if _, err := uuid.Parse(id); err != nil {
		return healthchat.Chat{}, healthchat.ErrNotFound
	}
	var row healthChatRow
	err := repo.db.GetContext(ctx, &row, `SELECT * FROM health_chat WHERE id = $1`, id)
	if err != nil {
		if errors.Cause(err) == sql.ErrNoRows {
			return healthchat.Chat{}, healthchat.ErrNotFound
		}
		return healthchat.Chat{}, errors.Wrap(err, "getting chat")
	}
	chat := row.chat()

	var msgRows []healthChatMessageRow
	err = repo.db.SelectContext(ctx, &msgRows,
		`SELECT * FROM health_chat_message WHERE chat_id = $1 ORDER BY created_at`, id)
	if err != nil {
		return healthchat.Chat{}, errors.Wrap(err, "getting chat messages")
	}
	chat.Messages = make([]healthchat.Message, 0, len(msgRows))
	for _, msgRow := range msgRows {
		chat.Messages = append(chat.Messages, msgRow.message())
	}
	return chat, nil
}

func (repo *HealthChatRepository) QueryChats(ctx context.Context, filter *healthchat.QueryFilter) ([]healthchat.Chat, error) {
	query := `SELECT * FROM health_chat`
	var args []interface{}

	if filter != nil {
		var where []string
		if filter.StudentID != "" {
			args = append(args, filter.StudentID)
			where = append(where, "student_id::text = "+placeholder(len(args)))
		}
		if filter.Status != "" {
			args = append(args, filter.Status)
			where = append(where, "status = "+placeholder(len(args)))
		}
		if len(where) > 0 {
			query += " WHERE " + strings.Join(where, " AND ")
		}
	}
	query += ` ORDER BY updated_at DESC`

	var rows []healthChatRow
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying chats")
	}
	chats := make([]healthchat.Chat, 0, len(rows))
	for _, row := range rows {
		chats = append(chats, row.chat())
	}
	return chats, nil
}

func (repo *HealthChatRepository) AppendMessage(ctx context.Context, msg healthchat.Message) (healthchat.Message, error) {
	msg.ID = uuid.New().String()
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return healthchat.Message{}, errors.Wrap(err, "beginning transaction")
	}
	defer tx.Rollback() // nolint

	_, err = tx.ExecContext(ctx,
		`INSERT INTO health_chat_message (id, chat_id, sender, sender_id, content, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		msg.ID, msg.ChatID, msg.Sender, msg.SenderID, msg.Content, msg.CreatedAt,
	)
	if err != nil {
		return healthchat.Message{}, errors.Wrap(err, "inserting message")
	}
	_, err = tx.ExecContext(ctx,
		`UPDATE health_chat SET updated_at = $1 WHERE id = $2`, msg.CreatedAt, msg.ChatID)
	if err != nil {
		return healthchat.Message{}, errors.Wrap(err, "touching chat")
	}
	if err = tx.Commit(); err != nil {
		return healthchat.Message{}, errors.Wrap(err, "committing message")
	}
	return msg, nil
}
