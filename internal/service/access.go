// access.go — проверки прав доступа, зависящие от активной роли запроса.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/rl-Rahul/balu-property-sub001/internal/apperr"
	"github.com/rl-Rahul/balu-property-sub001/internal/domain/model"
	"github.com/rl-Rahul/balu-property-sub001/internal/domain/role"
	"github.com/rl-Rahul/balu-property-sub001/internal/repository"
)

// AccessService — проверки доступа для ролевых операций.
type AccessService struct {
	userRepo repository.UserRepository
	logger   *slog.Logger
}

// NewAccessService создаёт сервис проверок доступа.
func NewAccessService(userRepo repository.UserRepository, logger *slog.Logger) *AccessService {
	return &AccessService{
		userRepo: userRepo,
		logger:   logger.With(slog.String("component", "access_service")),
	}
}

// CheckPropertyAdminAccess проверяет доступ управляющего к собственнику.
// Для активной роли property_admin параметр ownerIDParam обязан быть
// числовым, а пользователь — действующим управляющим этого
// собственника. Для остальных ролей проверка проходит сразу.
func (s *AccessService) CheckPropertyAdminAccess(ctx context.Context, actor *model.UserIdentity, currentRole *string, ownerIDParam string) error {
	if currentRole == nil || *currentRole != role.RolePropertyAdmin {
		return nil
	}

	ownerID, err := strconv.ParseInt(ownerIDParam, 10, 64)
	if err != nil {
		return apperr.Domain("invalidArgument")
	}

	isAdmin, err := s.userRepo.IsAdminOfOwner(ctx, actor.ID, ownerID)
	if err != nil {
		return fmt.Errorf("проверка управляющего: %w", err)
	}
	if !isAdmin {
		return apperr.Domain("unsupportedUser")
	}
	return nil
}

// CheckGroupMutation проверяет право изменять группу объектов:
// разрешено создателю либо управляющему недвижимостью.
func (s *AccessService) CheckGroupMutation(actor *model.UserIdentity, group *model.PropertyGroup) error {
	if group.CreatorUserID == actor.ID {
		return nil
	}
	if actor.Role == role.RolePropertyAdmin || actor.Role == role.RoleSuperAdmin {
		return nil
	}
	return apperr.Forbidden("accessDenied")
}
