package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/rl-Rahul/balu-property-sub001/internal/domain/model"
)

// MessageRepository — доступ к таблице messages.
type MessageRepository interface {
	// Create создаёт сообщение.
	Create(ctx context.Context, m *model.Message) error
	// GetByPublicID возвращает сообщение по публичному идентификатору.
	GetByPublicID(ctx context.Context, publicID string) (*model.Message, error)
	// ListInbox возвращает входящие сообщения получателя.
	ListInbox(ctx context.Context, recipientID int64, archived *bool, limit, offset int) ([]*model.Message, error)
	// CountInbox возвращает количество входящих без учёта пагинации.
	CountInbox(ctx context.Context, recipientID int64, archived *bool) (int, error)
	// Archive помечает сообщение получателя архивным.
	Archive(ctx context.Context, recipientID int64, publicID string) error
	// MarkRead проставляет время прочтения.
	MarkRead(ctx context.Context, recipientID int64, publicID string) error
}

// messageRepo — реализация MessageRepository.
type messageRepo struct {
	db DBTX
}

// NewMessageRepository создаёт репозиторий сообщений.
func NewMessageRepository(db DBTX) MessageRepository {
	return &messageRepo{db: db}
}

const messageColumns = `id, public_id, sender_id, recipient_id, subject, body,
	sender_role, archived, read_at, created_at`

func scanMessage(row pgx.Row) (*model.Message, error) {
	m := &model.Message{}
	err := row.Scan(
		&m.ID, &m.PublicID, &m.SenderID, &m.RecipientID, &m.Subject, &m.Body,
		&m.SenderRole, &m.Archived, &m.ReadAt, &m.CreatedAt,
	)
	return m, err
}

func (r *messageRepo) Create(ctx context.Context, m *model.Message) error {
	query := `
		INSERT INTO messages (public_id, sender_id, recipient_id, subject, body, sender_role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query,
		m.PublicID, m.SenderID, m.RecipientID, m.Subject, m.Body, m.SenderRole,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка создания сообщения: %w", err)
	}
	return nil
}

func (r *messageRepo) GetByPublicID(ctx context.Context, publicID string) (*model.Message, error) {
	query := fmt.Sprintf(`SELECT %s FROM messages WHERE public_id = $1`, messageColumns)
	m, err := scanMessage(r.db.QueryRow(ctx, query, publicID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения сообщения: %w", err)
	}
	return m, nil
}

func (r *messageRepo) ListInbox(ctx context.Context, recipientID int64, archived *bool, limit, offset int) ([]*model.Message, error) {
	conditions := []string{"recipient_id = $1"}
	args := []any{recipientID}
	argNum := 2

	if archived != nil {
		conditions = append(conditions, fmt.Sprintf("archived = $%d", argNum))
		args = append(args, *archived)
		argNum++
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM messages
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, messageColumns, strings.Join(conditions, " AND "), argNum, argNum+1)

	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения входящих: %w", err)
	}
	defer rows.Close()

	var result []*model.Message
	for rows.Next() {
		m := &model.Message{}
		if err := rows.Scan(
			&m.ID, &m.PublicID, &m.SenderID, &m.RecipientID, &m.Subject, &m.Body,
			&m.SenderRole, &m.Archived, &m.ReadAt, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования сообщения: %w", err)
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

func (r *messageRepo) CountInbox(ctx context.Context, recipientID int64, archived *bool) (int, error) {
	query := `SELECT COUNT(*) FROM messages WHERE recipient_id = $1`
	args := []any{recipientID}
	if archived != nil {
		query += ` AND archived = $2`
		args = append(args, *archived)
	}

	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("ошибка подсчёта входящих: %w", err)
	}
	return count, nil
}

func (r *messageRepo) Archive(ctx context.Context, recipientID int64, publicID string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE messages SET archived = TRUE WHERE recipient_id = $1 AND public_id = $2`,
		recipientID, publicID,
	)
	if err != nil {
		return fmt.Errorf("ошибка архивации сообщения: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *messageRepo) MarkRead(ctx context.Context, recipientID int64, publicID string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE messages SET read_at = now() WHERE recipient_id = $1 AND public_id = $2 AND read_at IS NULL`,
		recipientID, publicID,
	)
	if err != nil {
		return fmt.Errorf("ошибка отметки прочтения: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
