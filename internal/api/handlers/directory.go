// directory.go — обработчики справочника контактов.
// Тип выборки — path-параметр из закрытого набора; диспетчеризация
// выполняется сервисом.
package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rl-Rahul/balu-property-sub001/internal/api/binding"
	"github.com/rl-Rahul/balu-property-sub001/internal/api/middleware"
	"github.com/rl-Rahul/balu-property-sub001/internal/service"
)

// ListDirectory — GET /api/v1/directories/{type}.
// Параметр search работает как поиск по имени/компании/email.
func (h *APIHandler) ListDirectory(w http.ResponseWriter, r *http.Request) {
	const route = "directory.list"
	user := middleware.IdentityFrom(r.Context())
	p := binding.ParsePagination(r)

	list, err := h.directory.List(r.Context(), user.ID, chi.URLParam(r, "type"), p.Search, p.Limit, p.Offset)
	if err != nil {
		h.respondError(w, r, route, err)
		return
	}

	h.env.Success(r.Context(), w, "directoryList", list)
}

// CreateDirectory — POST /api/v1/directory.
func (h *APIHandler) CreateDirectory(w http.ResponseWriter, r *http.Request) {
	const route = "directory.create"
	user := middleware.IdentityFrom(r.Context())

	var form binding.DirectoryForm
	if err := binding.DecodeJSON(r, &form); err != nil {
		h.respondError(w, r, route, err)
		return
	}
	if !h.validate(w, r, route, form.Validate()) {
		return
	}

	view, err := h.directory.Create(r.Context(), user.ID, directoryInput(form))
	if err != nil {
		h.respondError(w, r, route, err)
		return
	}

	h.env.Success(r.Context(), w, "directoryCreated", view)
}

// UpdateDirectory — PUT /api/v1/directory/{id}.
func (h *APIHandler) UpdateDirectory(w http.ResponseWriter, r *http.Request) {
	const route = "directory.update"
	user := middleware.IdentityFrom(r.Context())

	var form binding.DirectoryForm
	if err := binding.DecodeJSON(r, &form); err != nil {
		h.respondError(w, r, route, err)
		return
	}
	if !h.validate(w, r, route, form.Validate()) {
		return
	}

	view, err := h.directory.Update(r.Context(), user.ID, chi.URLParam(r, "id"), directoryInput(form))
	if err != nil {
		h.respondError(w, r, route, err)
		return
	}

	h.env.Success(r.Context(), w, "directoryUpdated", view)
}

// DeleteDirectory — DELETE /api/v1/directory/{id}.
func (h *APIHandler) DeleteDirectory(w http.ResponseWriter, r *http.Request) {
	const route = "directory.delete"
	user := middleware.IdentityFrom(r.Context())

	if err := h.directory.Delete(r.Context(), user.ID, chi.URLParam(r, "id")); err != nil {
		h.respondError(w, r, route, err)
		return
	}

	h.env.Success(r.Context(), w, "directoryDeleted", nil)
}

func directoryInput(form binding.DirectoryForm) service.DirectoryInput {
	return service.DirectoryInput{
		Category:    form.Category,
		FirstName:   form.FirstName,
		LastName:    form.LastName,
		CompanyName: form.CompanyName,
		Email:       form.Email,
		Phone:       form.Phone,
		Invited:     form.Invited,
	}
}
