// registration.go — сервис регистрации пользователей.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/rl-Rahul/balu-property-sub001/internal/apperr"
	"github.com/rl-Rahul/balu-property-sub001/internal/domain/model"
	"github.com/rl-Rahul/balu-property-sub001/internal/domain/role"
	"github.com/rl-Rahul/balu-property-sub001/internal/password"
	"github.com/rl-Rahul/balu-property-sub001/internal/repository"
)

// RegisterInput — данные регистрации после валидации формы.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
	Role      string
	Language  string
	// Company — данные компании (собственник-юрлицо либо
	// управляющая компания).
	Company *CompanyInput
}

// CompanyInput — данные компании при регистрации.
type CompanyInput struct {
	Name    string
	Address string
	Phone   string
	Email   string
}

// RegistrationService — сервис регистрации.
type RegistrationService struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	txRunner    *repository.TxRunner
	hasher      *password.Hasher
	logger      *slog.Logger
}

// NewRegistrationService создаёт сервис регистрации.
func NewRegistrationService(
	userRepo repository.UserRepository,
	companyRepo repository.CompanyRepository,
	txRunner *repository.TxRunner,
	hasher *password.Hasher,
	logger *slog.Logger,
) *RegistrationService {
	return &RegistrationService{
		userRepo:    userRepo,
		companyRepo: companyRepo,
		txRunner:    txRunner,
		hasher:      hasher,
		logger:      logger.With(slog.String("component", "registration_service")),
	}
}

// EnsureEmailAvailable проверяет, что email свободен.
// Вызывается ДО валидации формы и хэширования пароля: занятый email
// завершает запрос ошибкой userExists без лишней работы.
func (s *RegistrationService) EnsureEmailAvailable(ctx context.Context, email string) error {
	if email == "" {
		return nil
	}
	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("проверка занятости email: %w", err)
	}
	if exists {
		return apperr.Domain("userExists")
	}
	return nil
}

// Register создаёт учётную запись пользователя в одной транзакции.
// Для собственника-юрлица и управляющей компании сначала создаётся
// компания.
func (s *RegistrationService) Register(ctx context.Context, input RegisterInput) (*model.UserIdentity, error) {
	if !role.IsValidRole(input.Role) || input.Role == role.RoleSuperAdmin {
		return nil, apperr.Domain("invalidRole")
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("хэширование пароля: %w", err)
	}

	user := &model.UserIdentity{
		PublicID:     uuid.NewString(),
		Email:        input.Email,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Phone:        input.Phone,
		Role:         input.Role,
		Language:     input.Language,
		Enabled:      true,
	}

	err = s.txRunner.RunInTx(ctx, func(tx pgx.Tx) error {
		companyRole := input.Role == role.RoleOwner || input.Role == role.RolePropertyAdmin
		if input.Company != nil && companyRole {
			company := &model.Company{
				PublicID: uuid.NewString(),
				Name:     input.Company.Name,
				Address:  input.Company.Address,
				Phone:    input.Company.Phone,
				Email:    input.Company.Email,
			}
			if err := repository.NewCompanyRepository(tx).Create(ctx, company); err != nil {
				return fmt.Errorf("создание компании: %w", err)
			}
			user.CompanyID = &company.ID
		}

		if err := repository.NewUserRepository(tx).Create(ctx, user); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return apperr.Domain("userExists")
			}
			return fmt.Errorf("создание пользователя: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("пользователь зарегистрирован",
		slog.String("public_id", user.PublicID),
		slog.String("role", user.Role),
	)
	return user, nil
}
