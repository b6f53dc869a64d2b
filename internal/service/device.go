// device.go — сервис регистрации устройств для push-уведомлений.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/rl-Rahul/balu-property-sub001/internal/apperr"
	"github.com/rl-Rahul/balu-property-sub001/internal/domain/model"
	"github.com/rl-Rahul/balu-property-sub001/internal/repository"
)

// DeviceService — сервис устройств.
type DeviceService struct {
	deviceRepo repository.DeviceRepository
	txRunner   *repository.TxRunner
	logger     *slog.Logger
}

// NewDeviceService создаёт сервис устройств.
func NewDeviceService(deviceRepo repository.DeviceRepository, txRunner *repository.TxRunner, logger *slog.Logger) *DeviceService {
	return &DeviceService{
		deviceRepo: deviceRepo,
		txRunner:   txRunner,
		logger:     logger.With(slog.String("component", "device_service")),
	}
}

// Register регистрирует push-токен устройства пользователя.
// Повторная регистрация токена переносит его к текущему пользователю.
func (s *DeviceService) Register(ctx context.Context, userID int64, token, platform string) error {
	d := &model.Device{
		UserID:   userID,
		Token:    token,
		Platform: platform,
	}

	err := s.txRunner.RunInTx(ctx, func(tx pgx.Tx) error {
		return repository.NewDeviceRepository(tx).Upsert(ctx, d)
	})
	if err != nil {
		return fmt.Errorf("регистрация устройства: %w", err)
	}

	s.logger.Debug("устройство зарегистрировано",
		slog.Int64("user_id", userID),
		slog.String("platform", platform),
	)
	return nil
}

// Remove удаляет push-токен устройства пользователя.
func (s *DeviceService) Remove(ctx context.Context, userID int64, token string) error {
	err := s.txRunner.RunInTx(ctx, func(tx pgx.Tx) error {
		return repository.NewDeviceRepository(tx).DeleteByToken(ctx, userID, token)
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.Domain("invalidDevice")
		}
		return fmt.Errorf("удаление устройства: %w", err)
	}
	return nil
}
