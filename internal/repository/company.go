package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rl-Rahul/balu-property-sub001/internal/domain/model"
)

// CompanyRepository — доступ к таблице companies.
type CompanyRepository interface {
	// Create создаёт компанию.
	Create(ctx context.Context, c *model.Company) error
	// GetByID возвращает компанию по внутреннему ключу.
	GetByID(ctx context.Context, id int64) (*model.Company, error)
	// GetByPublicID возвращает компанию по публичному идентификатору.
	GetByPublicID(ctx context.Context, publicID string) (*model.Company, error)
	// List возвращает компании с поиском по названию.
	List(ctx context.Context, search string, limit, offset int) ([]*model.Company, error)
	// Count возвращает количество компаний без учёта пагинации.
	Count(ctx context.Context, search string) (int, error)
}

// companyRepo — реализация CompanyRepository.
type companyRepo struct {
	db DBTX
}

// NewCompanyRepository создаёт репозиторий компаний.
func NewCompanyRepository(db DBTX) CompanyRepository {
	return &companyRepo{db: db}
}

const companyColumns = `id, public_id, name, address, phone, email, created_at, updated_at`

func scanCompany(row pgx.Row) (*model.Company, error) {
	c := &model.Company{}
	err := row.Scan(
		&c.ID, &c.PublicID, &c.Name, &c.Address, &c.Phone, &c.Email,
		&c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

func (r *companyRepo) Create(ctx context.Context, c *model.Company) error {
	query := `
		INSERT INTO companies (public_id, name, address, phone, email)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		c.PublicID, c.Name, c.Address, c.Phone, c.Email,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("ошибка создания компании: %w", err)
	}
	return nil
}

func (r *companyRepo) GetByID(ctx context.Context, id int64) (*model.Company, error) {
	query := fmt.Sprintf(`SELECT %s FROM companies WHERE id = $1`, companyColumns)
	c, err := scanCompany(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения компании: %w", err)
	}
	return c, nil
}

func (r *companyRepo) GetByPublicID(ctx context.Context, publicID string) (*model.Company, error) {
	query := fmt.Sprintf(`SELECT %s FROM companies WHERE public_id = $1`, companyColumns)
	c, err := scanCompany(r.db.QueryRow(ctx, query, publicID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения компании по public_id: %w", err)
	}
	return c, nil
}

func (r *companyRepo) List(ctx context.Context, search string, limit, offset int) ([]*model.Company, error) {
	args := []any{}
	argNum := 1

	where := ""
	if search != "" {
		where = fmt.Sprintf("WHERE name ILIKE $%d", argNum)
		args = append(args, "%"+search+"%")
		argNum++
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM companies
		%s
		ORDER BY name
		LIMIT $%d OFFSET $%d`, companyColumns, where, argNum, argNum+1)

	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка компаний: %w", err)
	}
	defer rows.Close()

	var result []*model.Company
	for rows.Next() {
		c := &model.Company{}
		if err := rows.Scan(
			&c.ID, &c.PublicID, &c.Name, &c.Address, &c.Phone, &c.Email,
			&c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования компании: %w", err)
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func (r *companyRepo) Count(ctx context.Context, search string) (int, error) {
	query := `SELECT COUNT(*) FROM companies`
	var args []any
	if search != "" {
		query += ` WHERE name ILIKE $1`
		args = append(args, "%"+search+"%")
	}

	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("ошибка подсчёта компаний: %w", err)
	}
	return count, nil
}
