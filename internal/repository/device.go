package repository

import (
	"context"
	"fmt"

	"github.com/rl-Rahul/balu-property-sub001/internal/domain/model"
)

// DeviceRepository — доступ к таблице devices (push-токены).
type DeviceRepository interface {
	// Upsert регистрирует токен устройства, перенося его к новому пользователю.
	Upsert(ctx context.Context, d *model.Device) error
	// DeleteByToken удаляет токен устройства пользователя.
	DeleteByToken(ctx context.Context, userID int64, token string) error
	// ListTokensByUser возвращает активные токены пользователя.
	ListTokensByUser(ctx context.Context, userID int64) ([]string, error)
}

// deviceRepo — реализация DeviceRepository.
type deviceRepo struct {
	db DBTX
}

// NewDeviceRepository создаёт репозиторий устройств.
func NewDeviceRepository(db DBTX) DeviceRepository {
	return &deviceRepo{db: db}
}

func (r *deviceRepo) Upsert(ctx context.Context, d *model.Device) error {
	query := `
		INSERT INTO devices (user_id, token, platform)
		VALUES ($1, $2, $3)
		ON CONFLICT (token) DO UPDATE
		SET user_id = EXCLUDED.user_id, platform = EXCLUDED.platform
		RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query,
		d.UserID, d.Token, d.Platform,
	).Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка регистрации устройства: %w", err)
	}
	return nil
}

func (r *deviceRepo) DeleteByToken(ctx context.Context, userID int64, token string) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM devices WHERE user_id = $1 AND token = $2`,
		userID, token,
	)
	if err != nil {
		return fmt.Errorf("ошибка удаления устройства: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *deviceRepo) ListTokensByUser(ctx context.Context, userID int64) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT token FROM devices WHERE user_id = $1 ORDER BY created_at`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения токенов устройств: %w", err)
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("ошибка сканирования токена: %w", err)
		}
		tokens = append(tokens, t)
	}
	return tokens, rows.Err()
}
