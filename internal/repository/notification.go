package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/rl-Rahul/balu-property-sub001/internal/domain/model"
)

// NotificationRepository — доступ к таблице notifications.
type NotificationRepository interface {
	// Create создаёт уведомление.
	Create(ctx context.Context, n *model.Notification) error
	// ListByUser возвращает уведомления пользователя.
	ListByUser(ctx context.Context, userID int64, unreadOnly bool, limit, offset int) ([]*model.Notification, error)
	// CountByUser возвращает количество уведомлений без учёта пагинации.
	CountByUser(ctx context.Context, userID int64, unreadOnly bool) (int, error)
	// MarkRead помечает уведомление пользователя прочитанным.
	MarkRead(ctx context.Context, userID int64, publicID string) error
}

// notificationRepo — реализация NotificationRepository.
type notificationRepo struct {
	db DBTX
}

// NewNotificationRepository создаёт репозиторий уведомлений.
func NewNotificationRepository(db DBTX) NotificationRepository {
	return &notificationRepo{db: db}
}

const notificationColumns = `id, public_id, user_id, kind, message_key, payload, read, created_at`

func (r *notificationRepo) Create(ctx context.Context, n *model.Notification) error {
	query := `
		INSERT INTO notifications (public_id, user_id, kind, message_key, payload)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query,
		n.PublicID, n.UserID, n.Kind, n.MessageKey, n.Payload,
	).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка создания уведомления: %w", err)
	}
	return nil
}

func (r *notificationRepo) ListByUser(ctx context.Context, userID int64, unreadOnly bool, limit, offset int) ([]*model.Notification, error) {
	conditions := []string{"user_id = $1"}
	args := []any{userID}
	argNum := 2

	if unreadOnly {
		conditions = append(conditions, "read = FALSE")
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM notifications
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, notificationColumns, strings.Join(conditions, " AND "), argNum, argNum+1)

	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения уведомлений: %w", err)
	}
	defer rows.Close()

	var result []*model.Notification
	for rows.Next() {
		n := &model.Notification{}
		if err := rows.Scan(
			&n.ID, &n.PublicID, &n.UserID, &n.Kind, &n.MessageKey, &n.Payload, &n.Read, &n.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования уведомления: %w", err)
		}
		result = append(result, n)
	}
	return result, rows.Err()
}

func (r *notificationRepo) CountByUser(ctx context.Context, userID int64, unreadOnly bool) (int, error) {
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1`
	if unreadOnly {
		query += ` AND read = FALSE`
	}

	var count int
	if err := r.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("ошибка подсчёта уведомлений: %w", err)
	}
	return count, nil
}

func (r *notificationRepo) MarkRead(ctx context.Context, userID int64, publicID string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE notifications SET read = TRUE WHERE user_id = $1 AND public_id = $2`,
		userID, publicID,
	)
	if err != nil {
		return fmt.Errorf("ошибка отметки уведомления: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
