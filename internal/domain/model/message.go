package model

import "time"

// Message — сообщение между пользователями платформы
// (арендатор ↔ собственник ↔ управляющий).
type Message struct {
	// ID — внутренний числовой ключ
	ID int64
	// PublicID — публичный идентификатор (UUID)
	PublicID string
	// SenderID — отправитель
	SenderID int64
	// RecipientID — получатель
	RecipientID int64
	// Subject — тема сообщения
	Subject string
	// Body — текст сообщения
	Body string
	// SenderRole — роль, под которой действовал отправитель
	SenderRole string
	// Archived — перемещено ли сообщение в архив получателем
	Archived bool
	// ReadAt — время прочтения (nil если не прочитано)
	ReadAt *time.Time
	// CreatedAt — время отправки
	CreatedAt time.Time
}

// Notification — персистентное уведомление пользователя.
// Создаётся в одной транзакции с порождающим событием
// (например, отправкой сообщения).
type Notification struct {
	// ID — внутренний числовой ключ
	ID int64
	// PublicID — публичный идентификатор (UUID)
	PublicID string
	// UserID — получатель уведомления
	UserID int64
	// Kind — тип уведомления (message, directory_invite, system)
	Kind string
	// MessageKey — ключ локализуемого текста уведомления
	MessageKey string
	// Payload — дополнительные данные (JSON)
	Payload []byte
	// Read — прочитано ли уведомление
	Read bool
	// CreatedAt — время создания
	CreatedAt time.Time
}

// FileRecord — метаданные загруженного файла.
type FileRecord struct {
	// ID — внутренний числовой ключ
	ID int64
	// PublicID — публичный идентификатор (UUID)
	PublicID string
	// UploaderID — загрузивший пользователь
	UploaderID int64
	// OriginalName — оригинальное имя файла
	OriginalName string
	// MimeType — MIME-тип
	MimeType string
	// Size — размер в байтах
	Size int64
	// StoredPath — путь в файловом хранилище
	StoredPath string
	// URL — URL для скачивания
	URL string
	// CreatedAt — время загрузки
	CreatedAt time.Time
}
