// Пакет model — доменные модели API Module.
package model

import "time"

// UserIdentity — учётная запись пользователя платформы.
// Хранится в таблице user_identities. Во внешнем API пользователь
// идентифицируется публичным идентификатором (UUID), внутренний
// числовой ключ наружу не отдаётся.
type UserIdentity struct {
	// ID — внутренний числовой ключ
	ID int64
	// PublicID — публичный идентификатор (UUID)
	PublicID string
	// Email — адрес электронной почты (уникальный)
	Email string
	// PasswordHash — argon2id-хэш пароля
	PasswordHash string
	// FirstName — имя
	FirstName string
	// LastName — фамилия
	LastName string
	// Phone — телефон
	Phone string
	// Role — основная роль (tenant, owner, property_admin, janitor, super_admin)
	Role string
	// Language — предпочитаемая локаль пользователя (en, ru)
	Language string
	// Enabled — активна ли учётная запись
	Enabled bool
	// CompanyID — компания пользователя (nil для частных лиц)
	CompanyID *int64
	// OwnerID — собственник, которого обслуживает property_admin (nil для остальных)
	OwnerID *int64
	// ThumbnailPath — путь к аватару (nil если не загружен)
	ThumbnailPath *string
	// CreatedAt — время регистрации
	CreatedAt time.Time
	// UpdatedAt — время последнего обновления
	UpdatedAt time.Time
}

// DisplayName возвращает отображаемое имя: "Имя Фамилия",
// при отсутствии обоих — email.
func (u *UserIdentity) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.LastName != "":
		return u.LastName
	default:
		return u.Email
	}
}

// Company — компания (юридическое лицо) в справочнике.
type Company struct {
	// ID — внутренний числовой ключ
	ID int64
	// PublicID — публичный идентификатор (UUID)
	PublicID string
	// Name — название компании
	Name string
	// Address — почтовый адрес
	Address string
	// Phone — телефон
	Phone string
	// Email — контактный email
	Email string
	// CreatedAt — время создания
	CreatedAt time.Time
	// UpdatedAt — время последнего обновления
	UpdatedAt time.Time
}

// Device — зарегистрированное устройство пользователя для push-уведомлений.
type Device struct {
	// ID — внутренний числовой ключ
	ID int64
	// UserID — владелец устройства
	UserID int64
	// Token — push-токен устройства (уникальный)
	Token string
	// Platform — платформа (ios, android)
	Platform string
	// CreatedAt — время регистрации токена
	CreatedAt time.Time
}
