package binding

import (
	"reflect"
	"testing"
)

// TestRegisterFormValidate — валидация формы регистрации по ролям.
func TestRegisterFormValidate(t *testing.T) {
	valid := RegisterForm{
		Email:          "ivan@example.com",
		Password:       "secret123",
		PasswordRepeat: "secret123",
		FirstName:      "Иван",
		LastName:       "Петров",
		Role:           "tenant",
	}

	tests := []struct {
		name   string
		mutate func(f *RegisterForm)
		want   []string
	}{
		{"корректная форма", func(f *RegisterForm) {}, nil},
		{"неизвестная роль", func(f *RegisterForm) { f.Role = "director" }, []string{"roleRequired"}},
		{"super_admin не регистрируется", func(f *RegisterForm) { f.Role = "super_admin" }, []string{"roleRequired"}},
		{"пустой email", func(f *RegisterForm) { f.Email = "" }, []string{"emailRequired"}},
		{"некорректный email", func(f *RegisterForm) { f.Email = "not-an-email" }, []string{"emailInvalid"}},
		{"пустой пароль", func(f *RegisterForm) { f.Password = ""; f.PasswordRepeat = "" }, []string{"passwordRequired"}},
		{"короткий пароль", func(f *RegisterForm) { f.Password = "short"; f.PasswordRepeat = "short" }, []string{"passwordTooShort"}},
		{"пароли не совпадают", func(f *RegisterForm) { f.PasswordRepeat = "secret124" }, []string{"passwordMismatch"}},
		{"пустое имя", func(f *RegisterForm) { f.FirstName = " " }, []string{"firstNameRequired"}},
		{"пустая фамилия", func(f *RegisterForm) { f.LastName = "" }, []string{"lastNameRequired"}},
		{"компания без названия", func(f *RegisterForm) { f.Company = &CompanyForm{} }, []string{"nameRequired"}},
		{
			"управляющий без компании",
			func(f *RegisterForm) { f.Role = "property_admin" },
			[]string{"nameRequired"},
		},
		{
			"управляющий с компанией",
			func(f *RegisterForm) {
				f.Role = "property_admin"
				f.Company = &CompanyForm{Name: "УК Балу"}
			},
			nil,
		},
		{
			"несколько нарушений — порядок стабилен",
			func(f *RegisterForm) { f.Email = ""; f.Password = ""; f.PasswordRepeat = "" },
			[]string{"emailRequired", "passwordRequired"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := valid
			tt.mutate(&f)
			got := f.Validate()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Validate() = %v, ожидалось %v", got, tt.want)
			}
		})
	}
}

// TestRoleSchemas — таблица схем покрывает все роли самостоятельной
// регистрации и не содержит super_admin.
func TestRoleSchemas(t *testing.T) {
	for _, r := range []string{"tenant", "owner", "property_admin", "janitor"} {
		if _, ok := roleSchemas[r]; !ok {
			t.Errorf("роль %q отсутствует в таблице схем", r)
		}
	}
	if _, ok := roleSchemas["super_admin"]; ok {
		t.Error("super_admin не должен иметь схему самостоятельной регистрации")
	}
	if !roleSchemas["property_admin"].requireCompany {
		t.Error("схема property_admin должна требовать компанию")
	}
}

// TestDirectoryFormValidate — валидация записи справочника.
func TestDirectoryFormValidate(t *testing.T) {
	tests := []struct {
		name string
		form DirectoryForm
		want []string
	}{
		{
			"физлицо",
			DirectoryForm{Category: "individual", FirstName: "Анна"},
			nil,
		},
		{
			"компания",
			DirectoryForm{Category: "company", CompanyName: "ООО Ромашка"},
			nil,
		},
		{
			"компания без названия",
			DirectoryForm{Category: "company"},
			[]string{"nameRequired"},
		},
		{
			"физлицо без имени и фамилии",
			DirectoryForm{Category: "janitor"},
			[]string{"firstNameRequired"},
		},
		{
			"неизвестная категория",
			DirectoryForm{Category: "robots", FirstName: "X"},
			[]string{"categoryInvalid"},
		},
		{
			"people — не категория записи",
			DirectoryForm{Category: "people", FirstName: "X"},
			[]string{"categoryInvalid"},
		},
		{
			"некорректный email",
			DirectoryForm{Category: "individual", FirstName: "Анна", Email: "bad"},
			[]string{"emailInvalid"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.form.Validate()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Validate() = %v, ожидалось %v", got, tt.want)
			}
		})
	}
}

// TestMessageFormValidate — все поля сообщения обязательны.
func TestMessageFormValidate(t *testing.T) {
	f := MessageForm{}
	want := []string{"recipientRequired", "subjectRequired", "bodyRequired"}
	if got := f.Validate(); !reflect.DeepEqual(got, want) {
		t.Errorf("Validate() = %v, ожидалось %v", got, want)
	}

	f = MessageForm{RecipientID: "id", Subject: "Тема", Body: "Текст"}
	if got := f.Validate(); got != nil {
		t.Errorf("ожидалась успешная валидация, получено %v", got)
	}
}

// TestBatchIDsFormValidate — пустой список идентификаторов отклоняется.
func TestBatchIDsFormValidate(t *testing.T) {
	f := BatchIDsForm{}
	if got := f.Validate(); !reflect.DeepEqual(got, []string{"invalidArgument"}) {
		t.Errorf("Validate() = %v, ожидалось [invalidArgument]", got)
	}
	f = BatchIDsForm{IDs: []string{"a"}}
	if got := f.Validate(); got != nil {
		t.Errorf("ожидалась успешная валидация, получено %v", got)
	}
}

// TestDeviceFormValidate — платформа ограничена ios и android.
func TestDeviceFormValidate(t *testing.T) {
	tests := []struct {
		name string
		form DeviceForm
		want []string
	}{
		{"ios", DeviceForm{Token: "t", Platform: "ios"}, nil},
		{"android", DeviceForm{Token: "t", Platform: "android"}, nil},
		{"неизвестная платформа", DeviceForm{Token: "t", Platform: "web"}, []string{"platformInvalid"}},
		{"пустой токен", DeviceForm{Platform: "ios"}, []string{"tokenRequired"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.form.Validate()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Validate() = %v, ожидалось %v", got, tt.want)
			}
		})
	}
}

// TestStatusFormValidate — поле enabled обязательно и различает false от отсутствия.
func TestStatusFormValidate(t *testing.T) {
	f := StatusForm{}
	if got := f.Validate(); !reflect.DeepEqual(got, []string{"invalidArgument"}) {
		t.Errorf("Validate() = %v, ожидалось [invalidArgument]", got)
	}
	disabled := false
	f = StatusForm{Enabled: &disabled}
	if got := f.Validate(); got != nil {
		t.Errorf("явный false должен проходить валидацию, получено %v", got)
	}
}
