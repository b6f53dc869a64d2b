// property_group.go — сервис групп объектов недвижимости.
// Мутации разрешены создателю группы либо управляющему.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/rl-Rahul/balu-property-sub001/internal/apperr"
	"github.com/rl-Rahul/balu-property-sub001/internal/domain/model"
	"github.com/rl-Rahul/balu-property-sub001/internal/repository"
)

// PropertyGroupView — представление группы объектов для API.
type PropertyGroupView struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PropertyGroupList — страница групп с полным количеством.
type PropertyGroupList struct {
	Rows    []*PropertyGroupView `json:"rows"`
	Count   int                  `json:"count"`
	MaxPage int                  `json:"maxPage"`
}

// PropertyGroupInput — данные группы после валидации.
type PropertyGroupInput struct {
	Name        string
	Description string
}

// PropertyGroupService — сервис групп объектов.
type PropertyGroupService struct {
	groupRepo repository.PropertyGroupRepository
	access    *AccessService
	txRunner  *repository.TxRunner
	logger    *slog.Logger
}

// NewPropertyGroupService создаёт сервис групп объектов.
func NewPropertyGroupService(
	groupRepo repository.PropertyGroupRepository,
	access *AccessService,
	txRunner *repository.TxRunner,
	logger *slog.Logger,
) *PropertyGroupService {
	return &PropertyGroupService{
		groupRepo: groupRepo,
		access:    access,
		txRunner:  txRunner,
		logger:    logger.With(slog.String("component", "property_group_service")),
	}
}

// List возвращает группы собственника.
// Count не зависит от limit/offset.
func (s *PropertyGroupService) List(ctx context.Context, ownerID int64, search string, limit, offset int) (*PropertyGroupList, error) {
	groups, err := s.groupRepo.ListVisible(ctx, ownerID, search, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("выборка групп: %w", err)
	}
	count, err := s.groupRepo.CountVisible(ctx, ownerID, search)
	if err != nil {
		return nil, fmt.Errorf("подсчёт групп: %w", err)
	}

	rows := make([]*PropertyGroupView, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, newPropertyGroupView(g))
	}
	return &PropertyGroupList{Rows: rows, Count: count, MaxPage: maxPage(count, limit)}, nil
}

// Create создаёт группу объектов в транзакции.
func (s *PropertyGroupService) Create(ctx context.Context, creator *model.UserIdentity, ownerID int64, input PropertyGroupInput) (*PropertyGroupView, error) {
	g := &model.PropertyGroup{
		PublicID:      uuid.NewString(),
		Name:          input.Name,
		Description:   input.Description,
		CreatorUserID: creator.ID,
		OwnerID:       ownerID,
	}

	err := s.txRunner.RunInTx(ctx, func(tx pgx.Tx) error {
		return repository.NewPropertyGroupRepository(tx).Create(ctx, g)
	})
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, apperr.Domain("invalidPropertyGroup")
		}
		return nil, fmt.Errorf("создание группы: %w", err)
	}

	return newPropertyGroupView(g), nil
}

// Update обновляет группу: разрешено создателю или управляющему.
func (s *PropertyGroupService) Update(ctx context.Context, actor *model.UserIdentity, publicID string, input PropertyGroupInput) (*PropertyGroupView, error) {
	g, err := s.getForMutation(ctx, actor, publicID)
	if err != nil {
		return nil, err
	}

	g.Name = input.Name
	g.Description = input.Description

	err = s.txRunner.RunInTx(ctx, func(tx pgx.Tx) error {
		return repository.NewPropertyGroupRepository(tx).Update(ctx, g)
	})
	if err != nil {
		return nil, fmt.Errorf("обновление группы: %w", err)
	}

	return newPropertyGroupView(g), nil
}

// Delete удаляет группу: разрешено создателю или управляющему.
func (s *PropertyGroupService) Delete(ctx context.Context, actor *model.UserIdentity, publicID string) error {
	g, err := s.getForMutation(ctx, actor, publicID)
	if err != nil {
		return err
	}

	err = s.txRunner.RunInTx(ctx, func(tx pgx.Tx) error {
		return repository.NewPropertyGroupRepository(tx).Delete(ctx, g.ID)
	})
	if err != nil {
		return fmt.Errorf("удаление группы: %w", err)
	}
	return nil
}

// getForMutation возвращает группу после проверки существования
// и права изменения.
func (s *PropertyGroupService) getForMutation(ctx context.Context, actor *model.UserIdentity, publicID string) (*model.PropertyGroup, error) {
	g, err := s.groupRepo.GetByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.Domain("invalidPropertyGroup")
		}
		return nil, fmt.Errorf("получение группы: %w", err)
	}
	if err := s.access.CheckGroupMutation(actor, g); err != nil {
		return nil, err
	}
	return g, nil
}

func newPropertyGroupView(g *model.PropertyGroup) *PropertyGroupView {
	return &PropertyGroupView{
		ID:          g.PublicID,
		Name:        g.Name,
		Description: g.Description,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}
