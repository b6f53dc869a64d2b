// auth.go — сервис аутентификации: проверка пароля и выпуск JWT.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rl-Rahul/balu-property-sub001/internal/apperr"
	"github.com/rl-Rahul/balu-property-sub001/internal/password"
	"github.com/rl-Rahul/balu-property-sub001/internal/repository"
	"github.com/rl-Rahul/balu-property-sub001/internal/token"
)

// AuthService — сервис аутентификации.
type AuthService struct {
	userRepo repository.UserRepository
	hasher   *password.Hasher
	signer   *token.Signer
	logger   *slog.Logger
}

// NewAuthService создаёт сервис аутентификации.
func NewAuthService(
	userRepo repository.UserRepository,
	hasher *password.Hasher,
	signer *token.Signer,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		hasher:   hasher,
		signer:   signer,
		logger:   logger.With(slog.String("component", "auth_service")),
	}
}

// LoginResult — результат успешного входа.
type LoginResult struct {
	Token string       `json:"token"`
	User  *ProfileView `json:"user"`
}

// Login проверяет учётные данные и выпускает JWT.
// Несуществующий email и неверный пароль неразличимы для клиента.
func (s *AuthService) Login(ctx context.Context, email, pass string) (*LoginResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.Domain("invalidCredentials")
		}
		return nil, fmt.Errorf("поиск пользователя: %w", err)
	}

	ok, err := s.hasher.Verify(pass, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("проверка пароля: %w", err)
	}
	if !ok {
		return nil, apperr.Domain("invalidCredentials")
	}

	if !user.Enabled {
		return nil, apperr.Domain("accountDisabled")
	}

	jwt, err := s.signer.Issue(user.PublicID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("выпуск токена: %w", err)
	}

	s.logger.Info("пользователь вошёл в систему",
		slog.String("public_id", user.PublicID),
	)
	return &LoginResult{Token: jwt, User: NewProfileView(user)}, nil
}
