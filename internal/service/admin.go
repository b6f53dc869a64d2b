// admin.go — административные операции (только super_admin).
// Маршруты защищены ролевым middleware до входа в сервис.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/rl-Rahul/balu-property-sub001/internal/apperr"
	"github.com/rl-Rahul/balu-property-sub001/internal/cache"
	"github.com/rl-Rahul/balu-property-sub001/internal/domain/model"
	"github.com/rl-Rahul/balu-property-sub001/internal/domain/role"
	"github.com/rl-Rahul/balu-property-sub001/internal/repository"
)

// UserList — страница пользователей с полным количеством.
type UserList struct {
	Rows    []*ProfileView `json:"rows"`
	Count   int            `json:"count"`
	MaxPage int            `json:"maxPage"`
}

// CompanyView — представление компании для API.
type CompanyView struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// NewCompanyView строит представление компании из модели.
func NewCompanyView(c *model.Company) *CompanyView {
	return &CompanyView{
		ID:      c.PublicID,
		Name:    c.Name,
		Address: c.Address,
		Phone:   c.Phone,
		Email:   c.Email,
	}
}

// CompanyList — страница компаний с полным количеством.
type CompanyList struct {
	Rows    []*CompanyView `json:"rows"`
	Count   int            `json:"count"`
	MaxPage int            `json:"maxPage"`
}

// AdminService — сервис административных операций.
type AdminService struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	txRunner    *repository.TxRunner
	cache       *cache.IdentityCache
	logger      *slog.Logger
}

// NewAdminService создаёт сервис административных операций.
func NewAdminService(
	userRepo repository.UserRepository,
	companyRepo repository.CompanyRepository,
	txRunner *repository.TxRunner,
	identityCache *cache.IdentityCache,
	logger *slog.Logger,
) *AdminService {
	return &AdminService{
		userRepo:    userRepo,
		companyRepo: companyRepo,
		txRunner:    txRunner,
		cache:       identityCache,
		logger:      logger.With(slog.String("component", "admin_service")),
	}
}

// ListUsers возвращает страницу пользователей платформы.
// Count не зависит от limit/offset.
func (s *AdminService) ListUsers(ctx context.Context, search, sortBy, order string, limit, offset int) (*UserList, error) {
	users, err := s.userRepo.List(ctx, search, sortBy, order, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("выборка пользователей: %w", err)
	}
	count, err := s.userRepo.Count(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("подсчёт пользователей: %w", err)
	}

	rows := make([]*ProfileView, 0, len(users))
	for _, u := range users {
		rows = append(rows, NewProfileView(u))
	}
	return &UserList{Rows: rows, Count: count, MaxPage: maxPage(count, limit)}, nil
}

// ListCompanies возвращает страницу компаний с поиском по названию.
// Count не зависит от limit/offset.
func (s *AdminService) ListCompanies(ctx context.Context, search string, limit, offset int) (*CompanyList, error) {
	companies, err := s.companyRepo.List(ctx, search, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("выборка компаний: %w", err)
	}
	count, err := s.companyRepo.Count(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("подсчёт компаний: %w", err)
	}

	rows := make([]*CompanyView, 0, len(companies))
	for _, c := range companies {
		rows = append(rows, NewCompanyView(c))
	}
	return &CompanyList{Rows: rows, Count: count, MaxPage: maxPage(count, limit)}, nil
}

// GetCompany возвращает компанию по публичному идентификатору.
func (s *AdminService) GetCompany(ctx context.Context, publicID string) (*CompanyView, error) {
	c, err := s.companyRepo.GetByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("resourceNotFound")
		}
		return nil, fmt.Errorf("получение компании: %w", err)
	}
	return NewCompanyView(c), nil
}

// AssignRole назначает пользователю роль.
func (s *AdminService) AssignRole(ctx context.Context, publicID, newRole string) error {
	if !role.IsValidRole(newRole) {
		return apperr.Domain("invalidRole")
	}

	err := s.txRunner.RunInTx(ctx, func(tx pgx.Tx) error {
		return repository.NewUserRepository(tx).UpdateRole(ctx, publicID, newRole)
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.Domain("invalidUser")
		}
		return fmt.Errorf("назначение роли: %w", err)
	}

	s.cache.Delete(publicID)
	s.logger.Info("роль назначена",
		slog.String("public_id", publicID),
		slog.String("role", newRole),
	)
	return nil
}

// SetStatus включает или отключает учётную запись.
func (s *AdminService) SetStatus(ctx context.Context, publicID string, enabled bool) error {
	err := s.txRunner.RunInTx(ctx, func(tx pgx.Tx) error {
		return repository.NewUserRepository(tx).UpdateEnabled(ctx, publicID, enabled)
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.Domain("invalidUser")
		}
		return fmt.Errorf("изменение статуса: %w", err)
	}

	s.cache.Delete(publicID)
	s.logger.Info("статус учётной записи изменён",
		slog.String("public_id", publicID),
		slog.Bool("enabled", enabled),
	)
	return nil
}

// DeleteUser удаляет учётную запись со всеми связанными данными
// (каскадное удаление на уровне схемы).
func (s *AdminService) DeleteUser(ctx context.Context, publicID string) error {
	err := s.txRunner.RunInTx(ctx, func(tx pgx.Tx) error {
		return repository.NewUserRepository(tx).Delete(ctx, publicID)
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.Domain("invalidUser")
		}
		return fmt.Errorf("удаление пользователя: %w", err)
	}

	s.cache.Delete(publicID)
	s.logger.Info("пользователь удалён", slog.String("public_id", publicID))
	return nil
}
