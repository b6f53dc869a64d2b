// upload.go — сервис загрузки файлов.
// Принимает multipart-файлы и inline base64-данные; содержимое
// сохраняется на диск, метаданные — в БД.
package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/rl-Rahul/balu-property-sub001/internal/apperr"
	"github.com/rl-Rahul/balu-property-sub001/internal/domain/model"
	"github.com/rl-Rahul/balu-property-sub001/internal/repository"
)

// FileView — представление загруженного файла для API.
type FileView struct {
	ID           string    `json:"id"`
	OriginalName string    `json:"originalName"`
	MimeType     string    `json:"mimeType"`
	Size         int64     `json:"size"`
	URL          string    `json:"url"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UploadService — сервис загрузки файлов.
type UploadService struct {
	fileRepo  repository.FileRepository
	txRunner  *repository.TxRunner
	uploadDir string
	baseURL   string
	maxSize   int64
	logger    *slog.Logger
}

// NewUploadService создаёт сервис загрузки.
// uploadDir — каталог файлового хранилища; baseURL — префикс URL
// раздачи; maxSize — предел размера файла в байтах.
func NewUploadService(
	fileRepo repository.FileRepository,
	txRunner *repository.TxRunner,
	uploadDir, baseURL string,
	maxSize int64,
	logger *slog.Logger,
) *UploadService {
	return &UploadService{
		fileRepo:  fileRepo,
		txRunner:  txRunner,
		uploadDir: uploadDir,
		baseURL:   strings.TrimRight(baseURL, "/"),
		maxSize:   maxSize,
		logger:    logger.With(slog.String("component", "upload_service")),
	}
}

// Save сохраняет содержимое r как файл пользователя.
// Превышение maxSize — доменная ошибка fileTooLarge.
func (s *UploadService) Save(ctx context.Context, uploaderID int64, originalName, mimeType string, r io.Reader) (*FileView, error) {
	publicID := uuid.NewString()
	storedPath := filepath.Join(s.uploadDir, publicID+sanitizeExt(originalName))

	if err := os.MkdirAll(s.uploadDir, 0o750); err != nil {
		return nil, fmt.Errorf("создание каталога загрузок: %w", err)
	}

	dst, err := os.Create(storedPath)
	if err != nil {
		return nil, fmt.Errorf("создание файла: %w", err)
	}
	defer dst.Close()

	// Лимит +1 байт, чтобы отличить ровно maxSize от превышения.
	size, err := io.Copy(dst, io.LimitReader(r, s.maxSize+1))
	if err != nil {
		os.Remove(storedPath)
		return nil, fmt.Errorf("запись файла: %w", err)
	}
	if size > s.maxSize {
		os.Remove(storedPath)
		return nil, apperr.Domain("fileTooLarge")
	}

	record := &model.FileRecord{
		PublicID:     publicID,
		UploaderID:   uploaderID,
		OriginalName: originalName,
		MimeType:     mimeType,
		Size:         size,
		StoredPath:   storedPath,
		URL:          s.baseURL + "/" + publicID,
	}

	err = s.txRunner.RunInTx(ctx, func(tx pgx.Tx) error {
		return repository.NewFileRepository(tx).Create(ctx, record)
	})
	if err != nil {
		os.Remove(storedPath)
		return nil, fmt.Errorf("сохранение метаданных файла: %w", err)
	}

	s.logger.Info("файл загружен",
		slog.String("public_id", publicID),
		slog.Int64("size", size),
	)
	return newFileView(record), nil
}

// SaveBase64 декодирует inline base64-данные и сохраняет их как файл.
func (s *UploadService) SaveBase64(ctx context.Context, uploaderID int64, originalName, mimeType, data string) (*FileView, error) {
	// Отрезаем data-URL префикс вида "data:image/png;base64,".
	if idx := strings.Index(data, ","); idx != -1 && strings.Contains(data[:idx], "base64") {
		data = data[idx+1:]
	}

	decoded, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, apperr.Domain("invalidFile")
	}
	return s.Save(ctx, uploaderID, originalName, mimeType, bytes.NewReader(decoded))
}

// Get возвращает метаданные файла по публичному идентификатору.
func (s *UploadService) Get(ctx context.Context, publicID string) (*model.FileRecord, error) {
	f, err := s.fileRepo.GetByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("resourceNotFound")
		}
		return nil, fmt.Errorf("получение файла: %w", err)
	}
	return f, nil
}

// sanitizeExt возвращает безопасное расширение исходного имени файла.
func sanitizeExt(name string) string {
	ext := filepath.Ext(name)
	if len(ext) > 10 || strings.ContainsAny(ext, "/\\") {
		return ""
	}
	return ext
}

func newFileView(f *model.FileRecord) *FileView {
	return &FileView{
		ID:           f.PublicID,
		OriginalName: f.OriginalName,
		MimeType:     f.MimeType,
		Size:         f.Size,
		URL:          f.URL,
		CreatedAt:    f.CreatedAt,
	}
}
