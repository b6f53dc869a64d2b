// auth.go — обработчики регистрации и входа.
package handlers

import (
	"net/http"

	"github.com/rl-Rahul/balu-property-sub001/internal/api/binding"
	"github.com/rl-Rahul/balu-property-sub001/internal/service"
)

// Register — POST /api/v1/auth/register.
// Занятый email отклоняется ДО валидации формы и хэширования пароля.
func (h *APIHandler) Register(w http.ResponseWriter, r *http.Request) {
	const route = "auth.register"

	var form binding.RegisterForm
	if err := binding.DecodeJSON(r, &form); err != nil {
		h.respondError(w, r, route, err)
		return
	}

	if err := h.registration.EnsureEmailAvailable(r.Context(), form.Email); err != nil {
		h.respondError(w, r, route, err)
		return
	}

	if !h.validate(w, r, route, form.Validate()) {
		return
	}

	input := service.RegisterInput{
		Email:     form.Email,
		Password:  form.Password,
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Phone:     form.Phone,
		Role:      form.Role,
		Language:  form.Language,
	}
	if form.Company != nil {
		input.Company = &service.CompanyInput{
			Name:    form.Company.Name,
			Address: form.Company.Address,
			Phone:   form.Company.Phone,
			Email:   form.Company.Email,
		}
	}

	user, err := h.registration.Register(r.Context(), input)
	if err != nil {
		h.respondError(w, r, route, err)
		return
	}

	h.env.Success(r.Context(), w, "userRegistered", service.NewProfileView(user))
}

// Login — POST /api/v1/auth/login.
func (h *APIHandler) Login(w http.ResponseWriter, r *http.Request) {
	const route = "auth.login"

	var form binding.LoginForm
	if err := binding.DecodeJSON(r, &form); err != nil {
		h.respondError(w, r, route, err)
		return
	}
	if !h.validate(w, r, route, form.Validate()) {
		return
	}

	result, err := h.auth.Login(r.Context(), form.Email, form.Password)
	if err != nil {
		h.respondError(w, r, route, err)
		return
	}

	h.env.Success(r.Context(), w, "loginSuccess", result)
}
