// admin.go — обработчики административных операций.
// Маршруты защищены ролевым middleware: пользователи без роли
// super_admin отклоняются до входа сюда.
package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rl-Rahul/balu-property-sub001/internal/api/binding"
)

// ListUsers — GET /api/v1/admin/users.
func (h *APIHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	const route = "admin.users.list"
	p := binding.ParsePagination(r)

	list, err := h.admin.ListUsers(r.Context(), p.Search, p.SortBy, p.Order, p.Limit, p.Offset)
	if err != nil {
		h.respondError(w, r, route, err)
		return
	}

	h.env.Success(r.Context(), w, "userList", list)
}

// ListCompanies — GET /api/v1/admin/companies.
func (h *APIHandler) ListCompanies(w http.ResponseWriter, r *http.Request) {
	const route = "admin.companies.list"
	p := binding.ParsePagination(r)

	list, err := h.admin.ListCompanies(r.Context(), p.Search, p.Limit, p.Offset)
	if err != nil {
		h.respondError(w, r, route, err)
		return
	}

	h.env.Success(r.Context(), w, "companyList", list)
}

// GetCompany — GET /api/v1/admin/companies/{id}.
func (h *APIHandler) GetCompany(w http.ResponseWriter, r *http.Request) {
	const route = "admin.companies.get"

	view, err := h.admin.GetCompany(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, route, err)
		return
	}

	h.env.Success(r.Context(), w, "companyFetched", view)
}

// AssignRole — PUT /api/v1/admin/users/{id}/role.
func (h *APIHandler) AssignRole(w http.ResponseWriter, r *http.Request) {
	const route = "admin.users.role"

	var form binding.RoleForm
	if err := binding.DecodeJSON(r, &form); err != nil {
		h.respondError(w, r, route, err)
		return
	}
	if !h.validate(w, r, route, form.Validate()) {
		return
	}

	if err := h.admin.AssignRole(r.Context(), chi.URLParam(r, "id"), form.Role); err != nil {
		h.respondError(w, r, route, err)
		return
	}

	h.env.Success(r.Context(), w, "roleAssigned", nil)
}

// SetUserStatus — PUT /api/v1/admin/users/{id}/status.
func (h *APIHandler) SetUserStatus(w http.ResponseWriter, r *http.Request) {
	const route = "admin.users.status"

	var form binding.StatusForm
	if err := binding.DecodeJSON(r, &form); err != nil {
		h.respondError(w, r, route, err)
		return
	}
	if !h.validate(w, r, route, form.Validate()) {
		return
	}

	if err := h.admin.SetStatus(r.Context(), chi.URLParam(r, "id"), *form.Enabled); err != nil {
		h.respondError(w, r, route, err)
		return
	}

	h.env.Success(r.Context(), w, "statusUpdated", nil)
}

// DeleteUser — DELETE /api/v1/admin/users/{id}.
func (h *APIHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	const route = "admin.users.delete"

	if err := h.admin.DeleteUser(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.respondError(w, r, route, err)
		return
	}

	h.env.Success(r.Context(), w, "userDeleted", nil)
}
