// message.go — сервис сообщений между пользователями.
// Сообщение и уведомление получателя создаются в одной транзакции;
// push-рассылка выполняется строго ПОСЛЕ коммита, её ошибки
// логируются и не влияют на результат запроса.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/rl-Rahul/balu-property-sub001/internal/apperr"
	"github.com/rl-Rahul/balu-property-sub001/internal/domain/model"
	"github.com/rl-Rahul/balu-property-sub001/internal/pushclient"
	"github.com/rl-Rahul/balu-property-sub001/internal/repository"
)

// MessageView — представление сообщения для API.
type MessageView struct {
	ID         string     `json:"id"`
	Subject    string     `json:"subject"`
	Body       string     `json:"body"`
	SenderRole string     `json:"senderRole"`
	Archived   bool       `json:"archived"`
	ReadAt     *time.Time `json:"readAt"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// MessageList — страница входящих с полным количеством.
type MessageList struct {
	Rows    []*MessageView `json:"rows"`
	Count   int            `json:"count"`
	MaxPage int            `json:"maxPage"`
}

// SendInput — данные отправки сообщения после валидации.
type SendInput struct {
	RecipientID string
	Subject     string
	Body        string
}

// ArchiveResult — итог архивации одного сообщения из пакета.
// Пакетная операция не атомарна: каждая позиция получает
// собственный результат.
type ArchiveResult struct {
	ID      string `json:"id"`
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// MessageService — сервис сообщений.
type MessageService struct {
	msgRepo    repository.MessageRepository
	userRepo   repository.UserRepository
	deviceRepo repository.DeviceRepository
	txRunner   *repository.TxRunner
	push       pushclient.Sender
	logger     *slog.Logger
}

// NewMessageService создаёт сервис сообщений.
func NewMessageService(
	msgRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	deviceRepo repository.DeviceRepository,
	txRunner *repository.TxRunner,
	push pushclient.Sender,
	logger *slog.Logger,
) *MessageService {
	return &MessageService{
		msgRepo:    msgRepo,
		userRepo:   userRepo,
		deviceRepo: deviceRepo,
		txRunner:   txRunner,
		push:       push,
		logger:     logger.With(slog.String("component", "message_service")),
	}
}

// Send отправляет сообщение: запись сообщения и уведомление
// получателя коммитятся атомарно, затем рассылается push.
func (s *MessageService) Send(ctx context.Context, sender *model.UserIdentity, senderRole string, input SendInput) (*MessageView, error) {
	recipient, err := s.userRepo.GetByPublicID(ctx, input.RecipientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.Domain("invalidUser")
		}
		return nil, fmt.Errorf("получение получателя: %w", err)
	}
	if !recipient.Enabled {
		return nil, apperr.Domain("unsupportedUser")
	}

	msg := &model.Message{
		PublicID:    uuid.NewString(),
		SenderID:    sender.ID,
		RecipientID: recipient.ID,
		Subject:     input.Subject,
		Body:        input.Body,
		SenderRole:  senderRole,
	}

	err = s.txRunner.RunInTx(ctx, func(tx pgx.Tx) error {
		if err := repository.NewMessageRepository(tx).Create(ctx, msg); err != nil {
			return err
		}

		payload, err := json.Marshal(map[string]string{
			"messageId": msg.PublicID,
			"sender":    sender.DisplayName(),
		})
		if err != nil {
			return fmt.Errorf("сериализация payload уведомления: %w", err)
		}
		n := &model.Notification{
			PublicID:   uuid.NewString(),
			UserID:     recipient.ID,
			Kind:       "message",
			MessageKey: "messageReceived",
			Payload:    payload,
		}
		return repository.NewNotificationRepository(tx).Create(ctx, n)
	})
	if err != nil {
		return nil, err
	}

	// Рассылка только после надёжного коммита.
	s.fanOutPush(ctx, recipient.ID, sender.DisplayName(), input.Subject, msg.PublicID)

	return newMessageView(msg), nil
}

// fanOutPush отправляет push на все устройства получателя.
// Сбой рассылки не отменяет уже закоммиченное сообщение.
func (s *MessageService) fanOutPush(ctx context.Context, recipientID int64, senderName, subject, messageID string) {
	tokens, err := s.deviceRepo.ListTokensByUser(ctx, recipientID)
	if err != nil {
		s.logger.Warn("не удалось получить токены устройств",
			slog.Int64("recipient_id", recipientID),
			slog.String("error", err.Error()),
		)
		return
	}

	err = s.push.Send(ctx, pushclient.PushMessage{
		Tokens: tokens,
		Title:  senderName,
		Body:   subject,
		Data:   map[string]string{"messageId": messageID},
	})
	if err != nil {
		s.logger.Warn("push-рассылка не удалась",
			slog.Int64("recipient_id", recipientID),
			slog.String("error", err.Error()),
		)
	}
}

// ListInbox возвращает входящие пользователя.
// Count не зависит от limit/offset.
func (s *MessageService) ListInbox(ctx context.Context, recipientID int64, archived *bool, limit, offset int) (*MessageList, error) {
	msgs, err := s.msgRepo.ListInbox(ctx, recipientID, archived, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("выборка входящих: %w", err)
	}
	count, err := s.msgRepo.CountInbox(ctx, recipientID, archived)
	if err != nil {
		return nil, fmt.Errorf("подсчёт входящих: %w", err)
	}

	rows := make([]*MessageView, 0, len(msgs))
	for _, m := range msgs {
		rows = append(rows, newMessageView(m))
	}
	return &MessageList{Rows: rows, Count: count, MaxPage: maxPage(count, limit)}, nil
}

// ArchiveBatch архивирует пакет сообщений получателя.
// Каждая позиция обрабатывается независимо: нерешаемый идентификатор
// даёт ошибку только для своей позиции, остальные архивируются.
func (s *MessageService) ArchiveBatch(ctx context.Context, recipientID int64, ids []string) ([]ArchiveResult, error) {
	if len(ids) == 0 {
		return nil, apperr.Domain("invalidMessage")
	}

	results := make([]ArchiveResult, 0, len(ids))
	for _, id := range ids {
		err := s.msgRepo.Archive(ctx, recipientID, id)
		switch {
		case err == nil:
			results = append(results, ArchiveResult{ID: id, Error: false, Message: "messageArchived"})
		case errors.Is(err, repository.ErrNotFound):
			results = append(results, ArchiveResult{ID: id, Error: true, Message: "invalidMessage"})
		default:
			return nil, fmt.Errorf("архивация сообщения %s: %w", id, err)
		}
	}
	return results, nil
}

// Get возвращает сообщение получателя по публичному идентификатору.
// Чужое или отсутствующее сообщение неразличимы для вызывающего.
func (s *MessageService) Get(ctx context.Context, recipientID int64, publicID string) (*MessageView, error) {
	m, err := s.msgRepo.GetByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.Domain("invalidMessage")
		}
		return nil, fmt.Errorf("получение сообщения: %w", err)
	}
	if m.RecipientID != recipientID {
		return nil, apperr.Domain("invalidMessage")
	}
	return newMessageView(m), nil
}

// MarkRead помечает сообщение получателя прочитанным.
func (s *MessageService) MarkRead(ctx context.Context, recipientID int64, publicID string) error {
	err := s.msgRepo.MarkRead(ctx, recipientID, publicID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.Domain("invalidMessage")
		}
		return fmt.Errorf("отметка прочтения: %w", err)
	}
	return nil
}

func newMessageView(m *model.Message) *MessageView {
	return &MessageView{
		ID:         m.PublicID,
		Subject:    m.Subject,
		Body:       m.Body,
		SenderRole: m.SenderRole,
		Archived:   m.Archived,
		ReadAt:     m.ReadAt,
		CreatedAt:  m.CreatedAt,
	}
}
