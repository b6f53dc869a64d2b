package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rl-Rahul/balu-property-sub001/internal/domain/model"
)

// FileRepository — доступ к таблице file_records.
type FileRepository interface {
	// Create сохраняет запись о загруженном файле.
	Create(ctx context.Context, f *model.FileRecord) error
	// GetByPublicID возвращает запись по публичному идентификатору.
	GetByPublicID(ctx context.Context, publicID string) (*model.FileRecord, error)
}

// fileRepo — реализация FileRepository.
type fileRepo struct {
	db DBTX
}

// NewFileRepository создаёт репозиторий файлов.
func NewFileRepository(db DBTX) FileRepository {
	return &fileRepo{db: db}
}

const fileColumns = `id, public_id, uploader_id, original_name, mime_type, size,
	stored_path, url, created_at`

func (r *fileRepo) Create(ctx context.Context, f *model.FileRecord) error {
	query := `
		INSERT INTO file_records (public_id, uploader_id, original_name, mime_type, size, stored_path, url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query,
		f.PublicID, f.UploaderID, f.OriginalName, f.MimeType, f.Size, f.StoredPath, f.URL,
	).Scan(&f.ID, &f.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка сохранения файла: %w", err)
	}
	return nil
}

func (r *fileRepo) GetByPublicID(ctx context.Context, publicID string) (*model.FileRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM file_records WHERE public_id = $1`, fileColumns)
	f := &model.FileRecord{}
	err := r.db.QueryRow(ctx, query, publicID).Scan(
		&f.ID, &f.PublicID, &f.UploaderID, &f.OriginalName, &f.MimeType, &f.Size,
		&f.StoredPath, &f.URL, &f.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения файла: %w", err)
	}
	return f, nil
}
