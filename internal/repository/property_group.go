package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/rl-Rahul/balu-property-sub001/internal/domain/model"
)

// PropertyGroupRepository — доступ к таблице property_groups.
type PropertyGroupRepository interface {
	// Create создаёт группу объектов.
	Create(ctx context.Context, g *model.PropertyGroup) error
	// GetByPublicID возвращает группу по публичному идентификатору.
	GetByPublicID(ctx context.Context, publicID string) (*model.PropertyGroup, error)
	// Update обновляет имя и описание группы.
	Update(ctx context.Context, g *model.PropertyGroup) error
	// Delete удаляет группу.
	Delete(ctx context.Context, id int64) error
	// ListVisible возвращает группы, видимые пользователю-владельцу.
	ListVisible(ctx context.Context, ownerID int64, search string, limit, offset int) ([]*model.PropertyGroup, error)
	// CountVisible возвращает количество видимых групп без учёта пагинации.
	CountVisible(ctx context.Context, ownerID int64, search string) (int, error)
}

// propertyGroupRepo — реализация PropertyGroupRepository.
type propertyGroupRepo struct {
	db DBTX
}

// NewPropertyGroupRepository создаёт репозиторий групп объектов.
func NewPropertyGroupRepository(db DBTX) PropertyGroupRepository {
	return &propertyGroupRepo{db: db}
}

const propertyGroupColumns = `id, public_id, name, description, creator_user_id, owner_id,
	created_at, updated_at`

func scanPropertyGroup(row pgx.Row) (*model.PropertyGroup, error) {
	g := &model.PropertyGroup{}
	err := row.Scan(
		&g.ID, &g.PublicID, &g.Name, &g.Description, &g.CreatorUserID, &g.OwnerID,
		&g.CreatedAt, &g.UpdatedAt,
	)
	return g, err
}

func (r *propertyGroupRepo) Create(ctx context.Context, g *model.PropertyGroup) error {
	query := `
		INSERT INTO property_groups (public_id, name, description, creator_user_id, owner_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		g.PublicID, g.Name, g.Description, g.CreatorUserID, g.OwnerID,
	).Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("ошибка создания группы объектов: %w", err)
	}
	return nil
}

func (r *propertyGroupRepo) GetByPublicID(ctx context.Context, publicID string) (*model.PropertyGroup, error) {
	query := fmt.Sprintf(`SELECT %s FROM property_groups WHERE public_id = $1`, propertyGroupColumns)
	g, err := scanPropertyGroup(r.db.QueryRow(ctx, query, publicID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения группы объектов: %w", err)
	}
	return g, nil
}

func (r *propertyGroupRepo) Update(ctx context.Context, g *model.PropertyGroup) error {
	query := `
		UPDATE property_groups
		SET name = $1, description = $2, updated_at = now()
		WHERE id = $3
		RETURNING updated_at`

	err := r.db.QueryRow(ctx, query, g.Name, g.Description, g.ID).Scan(&g.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("ошибка обновления группы объектов: %w", err)
	}
	return nil
}

func (r *propertyGroupRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM property_groups WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления группы объектов: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *propertyGroupRepo) ListVisible(ctx context.Context, ownerID int64, search string, limit, offset int) ([]*model.PropertyGroup, error) {
	conditions := []string{"owner_id = $1"}
	args := []any{ownerID}
	argNum := 2

	if search != "" {
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", argNum))
		args = append(args, "%"+search+"%")
		argNum++
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM property_groups
		WHERE %s
		ORDER BY name ASC
		LIMIT $%d OFFSET $%d`, propertyGroupColumns, strings.Join(conditions, " AND "), argNum, argNum+1)

	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения групп объектов: %w", err)
	}
	defer rows.Close()

	var result []*model.PropertyGroup
	for rows.Next() {
		g := &model.PropertyGroup{}
		if err := rows.Scan(
			&g.ID, &g.PublicID, &g.Name, &g.Description, &g.CreatorUserID, &g.OwnerID,
			&g.CreatedAt, &g.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования группы объектов: %w", err)
		}
		result = append(result, g)
	}
	return result, rows.Err()
}

func (r *propertyGroupRepo) CountVisible(ctx context.Context, ownerID int64, search string) (int, error) {
	query := `SELECT COUNT(*) FROM property_groups WHERE owner_id = $1`
	args := []any{ownerID}
	if search != "" {
		query += ` AND name ILIKE $2`
		args = append(args, "%"+search+"%")
	}

	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("ошибка подсчёта групп объектов: %w", err)
	}
	return count, nil
}
