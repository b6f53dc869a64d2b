package model

import "time"

// Directory — запись справочника пользователя: другая сторона
// (частное лицо, компания, управляющий, техперсонал), с которой
// пользователь взаимодействует или которую пригласил.
type Directory struct {
	// ID — внутренний числовой ключ
	ID int64
	// PublicID — публичный идентификатор (UUID)
	PublicID string
	// OwnerUserID — пользователь, которому принадлежит запись
	OwnerUserID int64
	// Category — категория записи (individual, company, property_admin, janitor)
	Category string
	// FirstName — имя контакта (может быть пустым)
	FirstName string
	// LastName — фамилия контакта (может быть пустым)
	LastName string
	// CompanyName — название компании (для категории company)
	CompanyName string
	// Email — email контакта
	Email string
	// Phone — телефон контакта
	Phone string
	// Invited — отправлено ли контакту приглашение на платформу
	Invited bool
	// ThumbnailPath — путь к миниатюре (nil если не загружена)
	ThumbnailPath *string
	// CreatedAt — время создания записи
	CreatedAt time.Time
	// UpdatedAt — время последнего обновления
	UpdatedAt time.Time
}

// DisplayName возвращает отображаемое имя записи: для компании —
// название, иначе "Имя Фамилия", при отсутствии — email.
func (d *Directory) DisplayName() string {
	if d.CompanyName != "" {
		return d.CompanyName
	}
	switch {
	case d.FirstName != "" && d.LastName != "":
		return d.FirstName + " " + d.LastName
	case d.FirstName != "":
		return d.FirstName
	case d.LastName != "":
		return d.LastName
	default:
		return d.Email
	}
}

// PropertyGroup — группа объектов недвижимости. Мутации разрешены
// создателю либо управляющему недвижимостью.
type PropertyGroup struct {
	// ID — внутренний числовой ключ
	ID int64
	// PublicID — публичный идентификатор (UUID)
	PublicID string
	// Name — название группы
	Name string
	// Description — описание (может быть пустым)
	Description string
	// CreatorUserID — создатель группы
	CreatorUserID int64
	// OwnerID — собственник, к которому относится группа
	OwnerID int64
	// CreatedAt — время создания
	CreatedAt time.Time
	// UpdatedAt — время последнего обновления
	UpdatedAt time.Time
}
