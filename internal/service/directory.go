// directory.go — сервис справочника контактов.
// Выборка диспетчеризуется по закрытому набору типов
// (individual, company, property_admin, janitor, people);
// неизвестный тип — терминальная ошибка resourceNotFound.
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
	"github.com/rl-Rahul/balu-property-sub001/internal/domain/role"
	"github.com/rl-Rahul/balu-property-sub001/internal/repository"
)

// DirectoryView — элемент списка справочника.
type DirectoryView struct {
	ID          string    `json:"id"`
	Category    string    `json:"category"`
	DisplayName string    `json:"displayName"`
	FirstName   string    `json:"firstName,omitempty"`
	LastName    string    `json:"lastName,omitempty"`
	CompanyName string    `json:"companyName,omitempty"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Invited     bool      `json:"invited"`
	Thumbnail   *string   `json:"thumbnail"`
	CreatedAt   time.Time `json:"createdAt"`
}

// DirectoryList — страница справочника с полным количеством.
type DirectoryList struct {
	Rows    []*DirectoryView `json:"rows"`
	Count   int              `json:"count"`
	MaxPage int              `json:"maxPage"`
}

// DirectoryInput — данные записи справочника после валидации.
type DirectoryInput struct {
	Category    string
	FirstName   string
	LastName    string
	CompanyName string
	Email       string
	Phone       string
	Invited     bool
}

// DirectoryService — сервис справочника.
type DirectoryService struct {
	dirRepo  repository.DirectoryRepository
	txRunner *repository.TxRunner
	logger   *slog.Logger
}

// NewDirectoryService создаёт сервис справочника.
func NewDirectoryService(
	dirRepo repository.DirectoryRepository,
	txRunner *repository.TxRunner,
	logger *slog.Logger,
) *DirectoryService {
	return &DirectoryService{
		dirRepo:  dirRepo,
		txRunner: txRunner,
		logger:   logger.With(slog.String("component", "directory_service")),
	}
}

// List возвращает записи справочника пользователя по типу выборки.
// Count в ответе не зависит от limit/offset.
func (s *DirectoryService) List(ctx context.Context, ownerUserID int64, dirType, search string, limit, offset int) (*DirectoryList, error) {
	var categories []string
	var shape func(*model.Directory) *DirectoryView

	switch dirType {
	case role.DirectoryIndividual:
		categories = []string{role.DirectoryIndividual}
		shape = shapePerson
	case role.DirectoryCompany:
		categories = []string{role.DirectoryCompany}
		shape = shapeCompany
	case role.DirectoryPropertyAdmin:
		categories = []string{role.DirectoryPropertyAdmin}
		shape = shapePerson
	case role.DirectoryJanitor:
		categories = []string{role.DirectoryJanitor}
		shape = shapePerson
	case role.DirectoryPeople:
		// Все физические лица: частные, управляющие, техперсонал.
		categories = []string{role.DirectoryIndividual, role.DirectoryPropertyAdmin, role.DirectoryJanitor}
		shape = shapePerson
	default:
		return nil, apperr.NotFound("resourceNotFound")
	}

	entries, err := s.dirRepo.ListByOwner(ctx, ownerUserID, categories, search, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("выборка справочника: %w", err)
	}
	count, err := s.dirRepo.CountByOwner(ctx, ownerUserID, categories, search)
	if err != nil {
		return nil, fmt.Errorf("подсчёт справочника: %w", err)
	}

	rows := make([]*DirectoryView, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, shape(e))
	}
	return &DirectoryList{Rows: rows, Count: count, MaxPage: maxPage(count, limit)}, nil
}

// shapePerson формирует представление записи-персоны.
func shapePerson(d *model.Directory) *DirectoryView {
	return &DirectoryView{
		ID:          d.PublicID,
		Category:    d.Category,
		DisplayName: d.DisplayName(),
		FirstName:   d.FirstName,
		LastName:    d.LastName,
		Email:       d.Email,
		Phone:       d.Phone,
		Invited:     d.Invited,
		Thumbnail:   d.ThumbnailPath,
		CreatedAt:   d.CreatedAt,
	}
}

// shapeCompany формирует представление записи-компании:
// имена персоны опускаются, отображаемое имя — название компании.
func shapeCompany(d *model.Directory) *DirectoryView {
	return &DirectoryView{
		ID:          d.PublicID,
		Category:    d.Category,
		DisplayName: d.DisplayName(),
		CompanyName: d.CompanyName,
		Email:       d.Email,
		Phone:       d.Phone,
		Invited:     d.Invited,
		Thumbnail:   d.ThumbnailPath,
		CreatedAt:   d.CreatedAt,
	}
}

// Create добавляет запись справочника в транзакции.
func (s *DirectoryService) Create(ctx context.Context, ownerUserID int64, input DirectoryInput) (*DirectoryView, error) {
	if !role.IsValidDirectoryType(input.Category) || input.Category == role.DirectoryPeople {
		return nil, apperr.Domain("invalidDirectory")
	}

	d := &model.Directory{
		PublicID:    uuid.NewString(),
		OwnerUserID: ownerUserID,
		Category:    input.Category,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		CompanyName: input.CompanyName,
		Email:       input.Email,
		Phone:       input.Phone,
		Invited:     input.Invited,
	}

	err := s.txRunner.RunInTx(ctx, func(tx pgx.Tx) error {
		return repository.NewDirectoryRepository(tx).Create(ctx, d)
	})
	if err != nil {
		return nil, fmt.Errorf("создание записи справочника: %w", err)
	}

	return s.shapeByCategory(d), nil
}

// Update обновляет запись справочника владельца в транзакции.
func (s *DirectoryService) Update(ctx context.Context, ownerUserID int64, publicID string, input DirectoryInput) (*DirectoryView, error) {
	d, err := s.getOwned(ctx, ownerUserID, publicID)
	if err != nil {
		return nil, err
	}

	d.FirstName = input.FirstName
	d.LastName = input.LastName
	d.CompanyName = input.CompanyName
	d.Email = input.Email
	d.Phone = input.Phone
	d.Invited = input.Invited

	err = s.txRunner.RunInTx(ctx, func(tx pgx.Tx) error {
		return repository.NewDirectoryRepository(tx).Update(ctx, d)
	})
	if err != nil {
		return nil, fmt.Errorf("обновление записи справочника: %w", err)
	}

	return s.shapeByCategory(d), nil
}

// Delete удаляет запись справочника владельца.
func (s *DirectoryService) Delete(ctx context.Context, ownerUserID int64, publicID string) error {
	d, err := s.getOwned(ctx, ownerUserID, publicID)
	if err != nil {
		return err
	}

	err = s.txRunner.RunInTx(ctx, func(tx pgx.Tx) error {
		return repository.NewDirectoryRepository(tx).Delete(ctx, d.ID)
	})
	if err != nil {
		return fmt.Errorf("удаление записи справочника: %w", err)
	}
	return nil
}

// getOwned возвращает запись справочника, если она существует и
// принадлежит пользователю.
func (s *DirectoryService) getOwned(ctx context.Context, ownerUserID int64, publicID string) (*model.Directory, error) {
	d, err := s.dirRepo.GetByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.Domain("invalidDirectory")
		}
		return nil, fmt.Errorf("получение записи справочника: %w", err)
	}
	if d.OwnerUserID != ownerUserID {
		return nil, apperr.Forbidden("accessDenied")
	}
	return d, nil
}

func (s *DirectoryService) shapeByCategory(d *model.Directory) *DirectoryView {
	if d.Category == role.DirectoryCompany {
		return shapeCompany(d)
	}
	return shapePerson(d)
}
