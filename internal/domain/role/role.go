// Пакет role — закрытые перечисления ролей пользователей и категорий
// справочника. Роль пользователя определяет доступ к операциям,
// категория справочника — ветку формирования списков.
package role

// Роли пользователей платформы.
const (
	// RoleTenant — арендатор.
	RoleTenant = "tenant"
	// RoleOwner — собственник недвижимости.
	RoleOwner = "owner"
	// RolePropertyAdmin — управляющий недвижимостью (действует от имени собственника).
	RolePropertyAdmin = "property_admin"
	// RoleJanitor — технический персонал.
	RoleJanitor = "janitor"
	// RoleSuperAdmin — администратор платформы.
	RoleSuperAdmin = "super_admin"
)

// IsValidRole проверяет, является ли строка допустимой ролью.
func IsValidRole(role string) bool {
	switch role {
	case RoleTenant, RoleOwner, RolePropertyAdmin, RoleJanitor, RoleSuperAdmin:
		return true
	}
	return false
}

// Категории справочника. Закрытое множество: неизвестная категория —
// терминальная ошибка resourceNotFound, а не точка расширения.
const (
	// DirectoryIndividual — частные лица.
	DirectoryIndividual = "individual"
	// DirectoryCompany — компании.
	DirectoryCompany = "company"
	// DirectoryPropertyAdmin — управляющие недвижимостью.
	DirectoryPropertyAdmin = "property_admin"
	// DirectoryJanitor — технический персонал.
	DirectoryJanitor = "janitor"
	// DirectoryPeople — все физические лица (без компаний).
	DirectoryPeople = "people"
)

// IsValidDirectoryType проверяет, входит ли категория в закрытое множество.
func IsValidDirectoryType(t string) bool {
	switch t {
	case DirectoryIndividual, DirectoryCompany, DirectoryPropertyAdmin,
		DirectoryJanitor, DirectoryPeople:
		return true
	}
	return false
}
