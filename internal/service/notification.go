// notification.go — сервис уведомлений пользователя.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rl-Rahul/balu-property-sub001/internal/apperr"
	"github.com/rl-Rahul/balu-property-sub001/internal/domain/model"
	"github.com/rl-Rahul/balu-property-sub001/internal/repository"
)

// NotificationView — представление уведомления для API.
type NotificationView struct {
	ID         string          `json:"id"`
	Kind       string          `json:"kind"`
	MessageKey string          `json:"messageKey"`
	Payload    json.RawMessage `json:"payload"`
	Read       bool            `json:"read"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// NotificationList — страница уведомлений с полным количеством.
type NotificationList struct {
	Rows    []*NotificationView `json:"rows"`
	Count   int                 `json:"count"`
	MaxPage int                 `json:"maxPage"`
}

// ReadResult — итог отметки одного уведомления из пакета.
type ReadResult struct {
	ID      string `json:"id"`
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// NotificationService — сервис уведомлений.
type NotificationService struct {
	repo   repository.NotificationRepository
	logger *slog.Logger
}

// NewNotificationService создаёт сервис уведомлений.
func NewNotificationService(repo repository.NotificationRepository, logger *slog.Logger) *NotificationService {
	return &NotificationService{
		repo:   repo,
		logger: logger.With(slog.String("component", "notification_service")),
	}
}

// List возвращает уведомления пользователя.
// Count не зависит от limit/offset.
func (s *NotificationService) List(ctx context.Context, userID int64, unreadOnly bool, limit, offset int) (*NotificationList, error) {
	items, err := s.repo.ListByUser(ctx, userID, unreadOnly, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("выборка уведомлений: %w", err)
	}
	count, err := s.repo.CountByUser(ctx, userID, unreadOnly)
	if err != nil {
		return nil, fmt.Errorf("подсчёт уведомлений: %w", err)
	}

	rows := make([]*NotificationView, 0, len(items))
	for _, n := range items {
		rows = append(rows, newNotificationView(n))
	}
	return &NotificationList{Rows: rows, Count: count, MaxPage: maxPage(count, limit)}, nil
}

// ReadBatch помечает пакет уведомлений прочитанными.
// Позиции обрабатываются независимо, как при архивации сообщений.
func (s *NotificationService) ReadBatch(ctx context.Context, userID int64, ids []string) ([]ReadResult, error) {
	if len(ids) == 0 {
		return nil, apperr.Domain("invalidNotification")
	}

	results := make([]ReadResult, 0, len(ids))
	for _, id := range ids {
		err := s.repo.MarkRead(ctx, userID, id)
		switch {
		case err == nil:
			results = append(results, ReadResult{ID: id, Error: false, Message: "notificationRead"})
		case errors.Is(err, repository.ErrNotFound):
			results = append(results, ReadResult{ID: id, Error: true, Message: "invalidNotification"})
		default:
			return nil, fmt.Errorf("отметка уведомления %s: %w", id, err)
		}
	}
	return results, nil
}

func newNotificationView(n *model.Notification) *NotificationView {
	return &NotificationView{
		ID:         n.PublicID,
		Kind:       n.Kind,
		MessageKey: n.MessageKey,
		Payload:    json.RawMessage(n.Payload),
		Read:       n.Read,
		CreatedAt:  n.CreatedAt,
	}
}
