// forms.go — формы операций API.
// Схема регистрации выбирается по роли через явную таблицу
// roleSchemas, без динамического построения имён.
package binding

import (
	"strings"

	"github.com/rl-Rahul/balu-property-sub001/internal/domain/role"
)

// minPasswordLength — минимальная длина пароля.
const minPasswordLength = 8

// RegisterForm — форма регистрации пользователя.
type RegisterForm struct {
	Email          string       `json:"email"`
	Password       string       `json:"password"`
	PasswordRepeat string       `json:"passwordRepeat"`
	FirstName      string       `json:"firstName"`
	LastName       string       `json:"lastName"`
	Phone          string       `json:"phone"`
	Role           string       `json:"role"`
	Language       string       `json:"language"`
	Company        *CompanyForm `json:"company"`
}

// CompanyForm — вложенная форма компании при регистрации юрлица.
type CompanyForm struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// registerSchema — набор проверок формы регистрации для одной роли.
type registerSchema struct {
	requireCompany bool
}

// roleSchemas — явное соответствие роль → схема валидации.
// Замена динамического выбора формы по имени роли. Управляющий
// регистрируется от имени управляющей компании, поэтому вложенная
// форма компании для него обязательна; для остальных ролей она
// заполняется по желанию.
var roleSchemas = map[string]registerSchema{
	role.RoleTenant:        {},
	role.RoleOwner:         {},
	role.RolePropertyAdmin: {requireCompany: true},
	role.RoleJanitor:       {},
}

// Validate возвращает упорядоченный список ключей нарушений.
// Пустой список означает успешную валидацию.
func (f *RegisterForm) Validate() []string {
	var violations []string

	schema, ok := roleSchemas[f.Role]
	if !ok {
		violations = append(violations, "roleRequired")
	}

	switch {
	case strings.TrimSpace(f.Email) == "":
		violations = append(violations, "emailRequired")
	case !validEmail(f.Email):
		violations = append(violations, "emailInvalid")
	}

	switch {
	case f.Password == "":
		violations = append(violations, "passwordRequired")
	case len(f.Password) < minPasswordLength:
		violations = append(violations, "passwordTooShort")
	case f.Password != f.PasswordRepeat:
		violations = append(violations, "passwordMismatch")
	}

	if strings.TrimSpace(f.FirstName) == "" {
		violations = append(violations, "firstNameRequired")
	}
	if strings.TrimSpace(f.LastName) == "" {
		violations = append(violations, "lastNameRequired")
	}

	if ok && schema.requireCompany && f.Company == nil {
		violations = append(violations, "nameRequired")
	}
	if f.Company != nil && strings.TrimSpace(f.Company.Name) == "" {
		violations = append(violations, "nameRequired")
	}

	return violations
}

// LoginForm — форма входа.
type LoginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate возвращает упорядоченный список ключей нарушений.
func (f *LoginForm) Validate() []string {
	var violations []string
	switch {
	case strings.TrimSpace(f.Email) == "":
		violations = append(violations, "emailRequired")
	case !validEmail(f.Email):
		violations = append(violations, "emailInvalid")
	}
	if f.Password == "" {
		violations = append(violations, "passwordRequired")
	}
	return violations
}

// ProfileForm — форма обновления профиля.
type ProfileForm struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Phone     string  `json:"phone"`
	Language  string  `json:"language"`
	Thumbnail *string `json:"thumbnail"`
}

// Validate возвращает упорядоченный список ключей нарушений.
func (f *ProfileForm) Validate() []string {
	var violations []string
	if strings.TrimSpace(f.FirstName) == "" {
		violations = append(violations, "firstNameRequired")
	}
	if strings.TrimSpace(f.LastName) == "" {
		violations = append(violations, "lastNameRequired")
	}
	return violations
}

// DirectoryForm — форма записи справочника.
type DirectoryForm struct {
	Category    string `json:"category"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	CompanyName string `json:"companyName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Invited     bool   `json:"invited"`
}

// Validate возвращает упорядоченный список ключей нарушений.
func (f *DirectoryForm) Validate() []string {
	var violations []string

	if !role.IsValidDirectoryType(f.Category) || f.Category == role.DirectoryPeople {
		violations = append(violations, "categoryInvalid")
	}

	if f.Category == role.DirectoryCompany {
		if strings.TrimSpace(f.CompanyName) == "" {
			violations = append(violations, "nameRequired")
		}
	} else if strings.TrimSpace(f.FirstName) == "" && strings.TrimSpace(f.LastName) == "" {
		violations = append(violations, "firstNameRequired")
	}

	if f.Email != "" && !validEmail(f.Email) {
		violations = append(violations, "emailInvalid")
	}

	return violations
}

// MessageForm — форма отправки сообщения.
// OwnerID обязателен только для активной роли property_admin:
// управляющий действует от имени собственника и проходит проверку
// управляющего перед записью.
type MessageForm struct {
	RecipientID string `json:"recipientId"`
	Subject     string `json:"subject"`
	Body        string `json:"body"`
	OwnerID     string `json:"ownerId"`
}

// Validate возвращает упорядоченный список ключей нарушений.
func (f *MessageForm) Validate() []string {
	var violations []string
	if strings.TrimSpace(f.RecipientID) == "" {
		violations = append(violations, "recipientRequired")
	}
	if strings.TrimSpace(f.Subject) == "" {
		violations = append(violations, "subjectRequired")
	}
	if strings.TrimSpace(f.Body) == "" {
		violations = append(violations, "bodyRequired")
	}
	return violations
}

// BatchIDsForm — форма пакетных операций над идентификаторами.
type BatchIDsForm struct {
	IDs []string `json:"ids"`
}

// Validate возвращает упорядоченный список ключей нарушений.
func (f *BatchIDsForm) Validate() []string {
	if len(f.IDs) == 0 {
		return []string{"invalidArgument"}
	}
	return nil
}

// PropertyGroupForm — форма группы объектов.
type PropertyGroupForm struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Validate возвращает упорядоченный список ключей нарушений.
func (f *PropertyGroupForm) Validate() []string {
	if strings.TrimSpace(f.Name) == "" {
		return []string{"nameRequired"}
	}
	return nil
}

// DeviceForm — форма регистрации устройства.
type DeviceForm struct {
	Token    string `json:"token"`
	Platform string `json:"platform"`
}

// Validate возвращает упорядоченный список ключей нарушений.
func (f *DeviceForm) Validate() []string {
	var violations []string
	if strings.TrimSpace(f.Token) == "" {
		violations = append(violations, "tokenRequired")
	}
	if f.Platform != "ios" && f.Platform != "android" {
		violations = append(violations, "platformInvalid")
	}
	return violations
}

// RoleForm — форма назначения роли.
type RoleForm struct {
	Role string `json:"role"`
}

// Validate возвращает упорядоченный список ключей нарушений.
func (f *RoleForm) Validate() []string {
	if !role.IsValidRole(f.Role) {
		return []string{"roleRequired"}
	}
	return nil
}

// StatusForm — форма изменения статуса учётной записи.
type StatusForm struct {
	Enabled *bool `json:"enabled"`
}

// Validate возвращает упорядоченный список ключей нарушений.
func (f *StatusForm) Validate() []string {
	if f.Enabled == nil {
		return []string{"invalidArgument"}
	}
	return nil
}

// Base64FileForm — форма загрузки файла inline base64-данными.
type Base64FileForm struct {
	Name     string `json:"name"`
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

// Validate возвращает упорядоченный список ключей нарушений.
func (f *Base64FileForm) Validate() []string {
	var violations []string
	if strings.TrimSpace(f.Name) == "" {
		violations = append(violations, "nameRequired")
	}
	if strings.TrimSpace(f.Data) == "" {
		violations = append(violations, "invalidFile")
	}
	return violations
}
