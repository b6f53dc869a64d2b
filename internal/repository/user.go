package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/rl-Rahul/balu-property-sub001/internal/domain/model"
)

// UserRepository — доступ к таблице user_identities.
type UserRepository interface {
	// Create создаёт учётную запись.
	Create(ctx context.Context, u *model.UserIdentity) error
	// GetByID возвращает пользователя по внутреннему ключу.
	GetByID(ctx context.Context, id int64) (*model.UserIdentity, error)
	// GetByPublicID возвращает пользователя по публичному идентификатору.
	GetByPublicID(ctx context.Context, publicID string) (*model.UserIdentity, error)
	// GetByEmail возвращает пользователя по email.
	GetByEmail(ctx context.Context, email string) (*model.UserIdentity, error)
	// ExistsByEmail проверяет наличие пользователя с указанным email.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// Update обновляет профиль пользователя.
	Update(ctx context.Context, u *model.UserIdentity) error
	// UpdateRole назначает роль.
	UpdateRole(ctx context.Context, publicID, role string) error
	// UpdateEnabled включает/отключает учётную запись.
	UpdateEnabled(ctx context.Context, publicID string, enabled bool) error
	// Delete удаляет пользователя.
	Delete(ctx context.Context, publicID string) error
	// List возвращает пользователей с поиском и сортировкой.
	List(ctx context.Context, search, sortBy, order string, limit, offset int) ([]*model.UserIdentity, error)
	// Count возвращает количество пользователей, подходящих под поиск,
	// без учёта пагинации.
	Count(ctx context.Context, search string) (int, error)
	// ListByRole возвращает пользователей по множеству ролей.
	ListByRole(ctx context.Context, roles []string, search string, limit, offset int) ([]*model.UserIdentity, error)
	// CountByRole возвращает количество пользователей по множеству ролей.
	CountByRole(ctx context.Context, roles []string, search string) (int, error)
	// IsAdminOfOwner проверяет, обслуживает ли управляющий adminID
	// собственника ownerID.
	IsAdminOfOwner(ctx context.Context, adminID, ownerID int64) (bool, error)
}

// userRepo — реализация UserRepository.
type userRepo struct {
	db DBTX
}

// NewUserRepository создаёт репозиторий пользователей.
func NewUserRepository(db DBTX) UserRepository {
	return &userRepo{db: db}
}

const userColumns = `id, public_id, email, password_hash, first_name, last_name,
	phone, role, language, enabled, company_id, owner_id, thumbnail_path,
	created_at, updated_at`

// scanUser сканирует строку результата в модель UserIdentity.
func scanUser(row pgx.Row) (*model.UserIdentity, error) {
	u := &model.UserIdentity{}
	err := row.Scan(
		&u.ID, &u.PublicID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.Phone, &u.Role, &u.Language, &u.Enabled, &u.CompanyID, &u.OwnerID,
		&u.ThumbnailPath, &u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}

func (r *userRepo) Create(ctx context.Context, u *model.UserIdentity) error {
	query := `
		INSERT INTO user_identities (public_id, email, password_hash, first_name,
			last_name, phone, role, language, enabled, company_id, owner_id, thumbnail_path)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		u.PublicID, u.Email, u.PasswordHash, u.FirstName, u.LastName,
		u.Phone, u.Role, u.Language, u.Enabled, u.CompanyID, u.OwnerID, u.ThumbnailPath,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: пользователь с таким email уже существует", ErrConflict)
		}
		return fmt.Errorf("ошибка создания пользователя: %w", err)
	}
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*model.UserIdentity, error) {
	query := fmt.Sprintf(`SELECT %s FROM user_identities WHERE id = $1`, userColumns)
	u, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения пользователя: %w", err)
	}
	return u, nil
}

func (r *userRepo) GetByPublicID(ctx context.Context, publicID string) (*model.UserIdentity, error) {
	query := fmt.Sprintf(`SELECT %s FROM user_identities WHERE public_id = $1`, userColumns)
	u, err := scanUser(r.db.QueryRow(ctx, query, publicID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения пользователя по public_id: %w", err)
	}
	return u, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.UserIdentity, error) {
	query := fmt.Sprintf(`SELECT %s FROM user_identities WHERE lower(email) = lower($1)`, userColumns)
	u, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения пользователя по email: %w", err)
	}
	return u, nil
}

func (r *userRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM user_identities WHERE lower(email) = lower($1))`,
		email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("ошибка проверки email: %w", err)
	}
	return exists, nil
}

func (r *userRepo) Update(ctx context.Context, u *model.UserIdentity) error {
	query := `
		UPDATE user_identities
		SET first_name = $2, last_name = $3, phone = $4, language = $5,
			thumbnail_path = $6, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRow(ctx, query,
		u.ID, u.FirstName, u.LastName, u.Phone, u.Language, u.ThumbnailPath,
	).Scan(&u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("ошибка обновления пользователя: %w", err)
	}
	return nil
}

func (r *userRepo) UpdateRole(ctx context.Context, publicID, role string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE user_identities SET role = $2, updated_at = now() WHERE public_id = $1`,
		publicID, role,
	)
	if err != nil {
		return fmt.Errorf("ошибка назначения роли: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepo) UpdateEnabled(ctx context.Context, publicID string, enabled bool) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE user_identities SET enabled = $2, updated_at = now() WHERE public_id = $1`,
		publicID, enabled,
	)
	if err != nil {
		return fmt.Errorf("ошибка обновления статуса: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepo) Delete(ctx context.Context, publicID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM user_identities WHERE public_id = $1`, publicID)
	if err != nil {
		return fmt.Errorf("ошибка удаления пользователя: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// sortColumns — допустимые колонки сортировки списка пользователей.
// Неизвестное значение заменяется на created_at (защита от SQL-инъекций).
var sortColumns = map[string]string{
	"email":     "email",
	"firstName": "first_name",
	"lastName":  "last_name",
	"role":      "role",
	"createdAt": "created_at",
}

func (r *userRepo) List(ctx context.Context, search, sortBy, order string, limit, offset int) ([]*model.UserIdentity, error) {
	column, ok := sortColumns[sortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if strings.EqualFold(order, "asc") {
		direction = "ASC"
	}

	var conditions []string
	var args []any
	argNum := 1

	if search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(email ILIKE $%d OR first_name ILIKE $%d OR last_name ILIKE $%d)", argNum, argNum, argNum))
		args = append(args, "%"+search+"%")
		argNum++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM user_identities
		%s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d`, userColumns, where, column, direction, argNum, argNum+1)

	args = append(args, limit, offset)

	return r.queryUsers(ctx, query, args...)
}

func (r *userRepo) Count(ctx context.Context, search string) (int, error) {
	query := `SELECT COUNT(*) FROM user_identities`
	var args []any
	if search != "" {
		query += ` WHERE email ILIKE $1 OR first_name ILIKE $1 OR last_name ILIKE $1`
		args = append(args, "%"+search+"%")
	}

	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("ошибка подсчёта пользователей: %w", err)
	}
	return count, nil
}

func (r *userRepo) ListByRole(ctx context.Context, roles []string, search string, limit, offset int) ([]*model.UserIdentity, error) {
	args := []any{roles}
	argNum := 2

	searchCond := ""
	if search != "" {
		searchCond = fmt.Sprintf(" AND (email ILIKE $%d OR first_name ILIKE $%d OR last_name ILIKE $%d)", argNum, argNum, argNum)
		args = append(args, "%"+search+"%")
		argNum++
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM user_identities
		WHERE role = ANY($1) AND enabled%s
		ORDER BY last_name, first_name
		LIMIT $%d OFFSET $%d`, userColumns, searchCond, argNum, argNum+1)

	args = append(args, limit, offset)

	return r.queryUsers(ctx, query, args...)
}

func (r *userRepo) CountByRole(ctx context.Context, roles []string, search string) (int, error) {
	query := `SELECT COUNT(*) FROM user_identities WHERE role = ANY($1) AND enabled`
	args := []any{roles}
	if search != "" {
		query += ` AND (email ILIKE $2 OR first_name ILIKE $2 OR last_name ILIKE $2)`
		args = append(args, "%"+search+"%")
	}

	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("ошибка подсчёта пользователей по ролям: %w", err)
	}
	return count, nil
}

func (r *userRepo) IsAdminOfOwner(ctx context.Context, adminID, ownerID int64) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM user_identities
			WHERE id = $1 AND role = 'property_admin' AND owner_id = $2 AND enabled
		)`,
		adminID, ownerID,
	).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("ошибка проверки управляющего: %w", err)
	}
	return ok, nil
}

// queryUsers выполняет запрос и сканирует все строки.
func (r *userRepo) queryUsers(ctx context.Context, query string, args ...any) ([]*model.UserIdentity, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка пользователей: %w", err)
	}
	defer rows.Close()

	var result []*model.UserIdentity
	for rows.Next() {
		u := &model.UserIdentity{}
		if err := rows.Scan(
			&u.ID, &u.PublicID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
			&u.Phone, &u.Role, &u.Language, &u.Enabled, &u.CompanyID, &u.OwnerID,
			&u.ThumbnailPath, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования пользователя: %w", err)
		}
		result = append(result, u)
	}
	return result, rows.Err()
}
