package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/rl-Rahul/balu-property-sub001/internal/domain/model"
)

// DirectoryRepository — доступ к таблице directories.
type DirectoryRepository interface {
	// Create создаёт запись справочника.
	Create(ctx context.Context, d *model.Directory) error
	// GetByPublicID возвращает запись по публичному идентификатору.
	GetByPublicID(ctx context.Context, publicID string) (*model.Directory, error)
	// Update обновляет запись.
	Update(ctx context.Context, d *model.Directory) error
	// Delete удаляет запись.
	Delete(ctx context.Context, id int64) error
	// ListByOwner возвращает записи пользователя с фильтрацией по
	// категориям и поисковой строке.
	ListByOwner(ctx context.Context, ownerUserID int64, categories []string, search string, limit, offset int) ([]*model.Directory, error)
	// CountByOwner возвращает количество записей без учёта пагинации.
	CountByOwner(ctx context.Context, ownerUserID int64, categories []string, search string) (int, error)
}

// directoryRepo — реализация DirectoryRepository.
type directoryRepo struct {
	db DBTX
}

// NewDirectoryRepository создаёт репозиторий справочника.
func NewDirectoryRepository(db DBTX) DirectoryRepository {
	return &directoryRepo{db: db}
}

const directoryColumns = `id, public_id, owner_user_id, category, first_name, last_name,
	company_name, email, phone, invited, thumbnail_path, created_at, updated_at`

func scanDirectory(row pgx.Row) (*model.Directory, error) {
	d := &model.Directory{}
	err := row.Scan(
		&d.ID, &d.PublicID, &d.OwnerUserID, &d.Category, &d.FirstName, &d.LastName,
		&d.CompanyName, &d.Email, &d.Phone, &d.Invited, &d.ThumbnailPath,
		&d.CreatedAt, &d.UpdatedAt,
	)
	return d, err
}

func (r *directoryRepo) Create(ctx context.Context, d *model.Directory) error {
	query := `
		INSERT INTO directories (public_id, owner_user_id, category, first_name,
			last_name, company_name, email, phone, invited, thumbnail_path)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		d.PublicID, d.OwnerUserID, d.Category, d.FirstName, d.LastName,
		d.CompanyName, d.Email, d.Phone, d.Invited, d.ThumbnailPath,
	).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("ошибка создания записи справочника: %w", err)
	}
	return nil
}

func (r *directoryRepo) GetByPublicID(ctx context.Context, publicID string) (*model.Directory, error) {
	query := fmt.Sprintf(`SELECT %s FROM directories WHERE public_id = $1`, directoryColumns)
	d, err := scanDirectory(r.db.QueryRow(ctx, query, publicID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения записи справочника: %w", err)
	}
	return d, nil
}

func (r *directoryRepo) Update(ctx context.Context, d *model.Directory) error {
	query := `
		UPDATE directories
		SET first_name = $2, last_name = $3, company_name = $4, email = $5,
			phone = $6, invited = $7, thumbnail_path = $8, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRow(ctx, query,
		d.ID, d.FirstName, d.LastName, d.CompanyName, d.Email,
		d.Phone, d.Invited, d.ThumbnailPath,
	).Scan(&d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("ошибка обновления записи справочника: %w", err)
	}
	return nil
}

func (r *directoryRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM directories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления записи справочника: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *directoryRepo) ListByOwner(ctx context.Context, ownerUserID int64, categories []string, search string, limit, offset int) ([]*model.Directory, error) {
	conditions := []string{"owner_user_id = $1"}
	args := []any{ownerUserID}
	argNum := 2

	if len(categories) > 0 {
		conditions = append(conditions, fmt.Sprintf("category = ANY($%d)", argNum))
		args = append(args, categories)
		argNum++
	}

	if search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(first_name ILIKE $%d OR last_name ILIKE $%d OR company_name ILIKE $%d OR email ILIKE $%d)",
			argNum, argNum, argNum, argNum))
		args = append(args, "%"+search+"%")
		argNum++
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM directories
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, directoryColumns, strings.Join(conditions, " AND "), argNum, argNum+1)

	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения справочника: %w", err)
	}
	defer rows.Close()

	var result []*model.Directory
	for rows.Next() {
		d := &model.Directory{}
		if err := rows.Scan(
			&d.ID, &d.PublicID, &d.OwnerUserID, &d.Category, &d.FirstName, &d.LastName,
			&d.CompanyName, &d.Email, &d.Phone, &d.Invited, &d.ThumbnailPath,
			&d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования записи справочника: %w", err)
		}
		result = append(result, d)
	}
	return result, rows.Err()
}

func (r *directoryRepo) CountByOwner(ctx context.Context, ownerUserID int64, categories []string, search string) (int, error) {
	conditions := []string{"owner_user_id = $1"}
	args := []any{ownerUserID}
	argNum := 2

	if len(categories) > 0 {
		conditions = append(conditions, fmt.Sprintf("category = ANY($%d)", argNum))
		args = append(args, categories)
		argNum++
	}

	if search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(first_name ILIKE $%d OR last_name ILIKE $%d OR company_name ILIKE $%d OR email ILIKE $%d)",
			argNum, argNum, argNum, argNum))
		args = append(args, "%"+search+"%")
	}

	query := fmt.Sprintf(`SELECT COUNT(*) FROM directories WHERE %s`, strings.Join(conditions, " AND "))

	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("ошибка подсчёта записей справочника: %w", err)
	}
	return count, nil
}
