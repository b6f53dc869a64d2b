// property_group.go — обработчики групп объектов недвижимости.
// Для активной роли property_admin собственник передаётся параметром
// ownerId и проходит проверку управляющего; для остальных ролей
// собственником считается сам пользователь.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rl-Rahul/balu-property-sub001/internal/api/binding"
	"github.com/rl-Rahul/balu-property-sub001/internal/api/middleware"
	"github.com/rl-Rahul/balu-property-sub001/internal/api/reqctx"
	"github.com/rl-Rahul/balu-property-sub001/internal/domain/model"
	"github.com/rl-Rahul/balu-property-sub001/internal/domain/role"
	"github.com/rl-Rahul/balu-property-sub001/internal/service"
)

// resolveOwnerID определяет собственника операции над группами.
// property_admin обязан указать числовой ownerId и быть действующим
// управляющим этого собственника.
func (h *APIHandler) resolveOwnerID(r *http.Request, user *model.UserIdentity) (int64, error) {
	currentRole := reqctx.CurrentRole(r.Context())
	ownerParam := r.URL.Query().Get("ownerId")

	if err := h.access.CheckPropertyAdminAccess(r.Context(), user, currentRole, ownerParam); err != nil {
		return 0, err
	}

	if currentRole != nil && *currentRole == role.RolePropertyAdmin {
		// Числовой формат гарантирован проверкой выше.
		ownerID, _ := strconv.ParseInt(ownerParam, 10, 64)
		return ownerID, nil
	}
	return user.ID, nil
}

// ListPropertyGroups — GET /api/v1/property-groups.
func (h *APIHandler) ListPropertyGroups(w http.ResponseWriter, r *http.Request) {
	const route = "propertyGroups.list"
	user := middleware.IdentityFrom(r.Context())
	p := binding.ParsePagination(r)

	ownerID, err := h.resolveOwnerID(r, user)
	if err != nil {
		h.respondError(w, r, route, err)
		return
	}

	list, err := h.groups.List(r.Context(), ownerID, p.Search, p.Limit, p.Offset)
	if err != nil {
		h.respondError(w, r, route, err)
		return
	}

	h.env.Success(r.Context(), w, "propertyGroupList", list)
}

// CreatePropertyGroup — POST /api/v1/property-groups.
func (h *APIHandler) CreatePropertyGroup(w http.ResponseWriter, r *http.Request) {
	const route = "propertyGroups.create"
	user := middleware.IdentityFrom(r.Context())

	var form binding.PropertyGroupForm
	if err := binding.DecodeJSON(r, &form); err != nil {
		h.respondError(w, r, route, err)
		return
	}
	if !h.validate(w, r, route, form.Validate()) {
		return
	}

	ownerID, err := h.resolveOwnerID(r, user)
	if err != nil {
		h.respondError(w, r, route, err)
		return
	}

	view, err := h.groups.Create(r.Context(), user, ownerID, service.PropertyGroupInput{
		Name:        form.Name,
		Description: form.Description,
	})
	if err != nil {
		h.respondError(w, r, route, err)
		return
	}

	h.env.Success(r.Context(), w, "propertyGroupCreated", view)
}

// UpdatePropertyGroup — PUT /api/v1/property-groups/{id}.
// Разрешено создателю группы или управляющему.
func (h *APIHandler) UpdatePropertyGroup(w http.ResponseWriter, r *http.Request) {
	const route = "propertyGroups.update"
	user := middleware.IdentityFrom(r.Context())

	var form binding.PropertyGroupForm
	if err := binding.DecodeJSON(r, &form); err != nil {
		h.respondError(w, r, route, err)
		return
	}
	if !h.validate(w, r, route, form.Validate()) {
		return
	}

	view, err := h.groups.Update(r.Context(), user, chi.URLParam(r, "id"), service.PropertyGroupInput{
		Name:        form.Name,
		Description: form.Description,
	})
	if err != nil {
		h.respondError(w, r, route, err)
		return
	}

	h.env.Success(r.Context(), w, "propertyGroupUpdated", view)
}

// DeletePropertyGroup — DELETE /api/v1/property-groups/{id}.
// Разрешено создателю группы или управляющему.
func (h *APIHandler) DeletePropertyGroup(w http.ResponseWriter, r *http.Request) {
	const route = "propertyGroups.delete"
	user := middleware.IdentityFrom(r.Context())

	if err := h.groups.Delete(r.Context(), user, chi.URLParam(r, "id")); err != nil {
		h.respondError(w, r, route, err)
		return
	}

	h.env.Success(r.Context(), w, "propertyGroupDeleted", nil)
}
