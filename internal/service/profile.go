// profile.go — сервис профиля пользователя.
// Чтение профиля идёт через LRU-кэш; мутации инвалидируют запись.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/rl-Rahul/balu-property-sub001/internal/apperr"
	"github.com/rl-Rahul/balu-property-sub001/internal/cache"
	"github.com/rl-Rahul/balu-property-sub001/internal/domain/model"
	"github.com/rl-Rahul/balu-property-sub001/internal/repository"
)

// ProfileView — представление профиля для API (без хэша пароля
// и внутренних ключей).
type ProfileView struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	DisplayName string    `json:"displayName"`
	Phone       string    `json:"phone"`
	Role        string    `json:"role"`
	Language    string    `json:"language"`
	Enabled     bool      `json:"enabled"`
	Thumbnail   *string   `json:"thumbnail"`
	// Company — компания пользователя (nil для частных лиц).
	Company   *CompanyView `json:"company"`
	CreatedAt time.Time    `json:"createdAt"`
}

// NewProfileView строит представление профиля из модели.
func NewProfileView(u *model.UserIdentity) *ProfileView {
	return &ProfileView{
		ID:          u.PublicID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		DisplayName: u.DisplayName(),
		Phone:       u.Phone,
		Role:        u.Role,
		Language:    u.Language,
		Enabled:     u.Enabled,
		Thumbnail:   u.ThumbnailPath,
		CreatedAt:   u.CreatedAt,
	}
}

// ProfileUpdateInput — данные обновления профиля после валидации.
type ProfileUpdateInput struct {
	FirstName string
	LastName  string
	Phone     string
	Language  string
	// Thumbnail — новый путь к аватару (nil — не менять).
	Thumbnail *string
}

// ProfileService — сервис профиля.
type ProfileService struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	txRunner    *repository.TxRunner
	cache       *cache.IdentityCache
	logger      *slog.Logger
}

// NewProfileService создаёт сервис профиля.
func NewProfileService(
	userRepo repository.UserRepository,
	companyRepo repository.CompanyRepository,
	txRunner *repository.TxRunner,
	identityCache *cache.IdentityCache,
	logger *slog.Logger,
) *ProfileService {
	return &ProfileService{
		userRepo:    userRepo,
		companyRepo: companyRepo,
		txRunner:    txRunner,
		cache:       identityCache,
		logger:      logger.With(slog.String("component", "profile_service")),
	}
}

// GetIdentity возвращает учётную запись по публичному идентификатору.
// Сначала проверяется кэш, затем БД.
func (s *ProfileService) GetIdentity(ctx context.Context, publicID string) (*model.UserIdentity, error) {
	if u, ok := s.cache.Get(publicID); ok {
		return u, nil
	}

	u, err := s.userRepo.GetByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.Domain("invalidUser")
		}
		return nil, fmt.Errorf("получение пользователя: %w", err)
	}

	s.cache.Set(publicID, u)
	return u, nil
}

// Get возвращает представление профиля. Для корпоративных
// пользователей подтягивается компания.
func (s *ProfileService) Get(ctx context.Context, publicID string) (*ProfileView, error) {
	u, err := s.GetIdentity(ctx, publicID)
	if err != nil {
		return nil, err
	}

	view := NewProfileView(u)
	if u.CompanyID != nil {
		c, err := s.companyRepo.GetByID(ctx, *u.CompanyID)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			// Висячая ссылка не ломает профиль.
			s.logger.Warn("компания пользователя не найдена",
				slog.String("public_id", publicID),
				slog.Int64("company_id", *u.CompanyID),
			)
		case err != nil:
			return nil, fmt.Errorf("получение компании: %w", err)
		default:
			view.Company = NewCompanyView(c)
		}
	}
	return view, nil
}

// Update обновляет профиль в транзакции и инвалидирует кэш.
func (s *ProfileService) Update(ctx context.Context, publicID string, input ProfileUpdateInput) (*ProfileView, error) {
	u, err := s.userRepo.GetByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.Domain("invalidUser")
		}
		return nil, fmt.Errorf("получение пользователя: %w", err)
	}

	u.FirstName = input.FirstName
	u.LastName = input.LastName
	u.Phone = input.Phone
	if input.Language != "" {
		u.Language = input.Language
	}
	if input.Thumbnail != nil {
		u.ThumbnailPath = input.Thumbnail
	}

	err = s.txRunner.RunInTx(ctx, func(tx pgx.Tx) error {
		return repository.NewUserRepository(tx).Update(ctx, u)
	})
	if err != nil {
		return nil, fmt.Errorf("обновление профиля: %w", err)
	}

	s.cache.Delete(publicID)
	return NewProfileView(u), nil
}
