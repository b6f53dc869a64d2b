// profile.go — обработчики профиля текущего пользователя.
package handlers

import (
	"net/http"

	"github.com/rl-Rahul/balu-property-sub001/internal/api/binding"
	"github.com/rl-Rahul/balu-property-sub001/internal/api/middleware"
	"github.com/rl-Rahul/balu-property-sub001/internal/service"
)

// GetProfile — GET /api/v1/profile.
func (h *APIHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user := middleware.IdentityFrom(r.Context())
	h.env.Success(r.Context(), w, "profileFetched", service.NewProfileView(user))
}

// UpdateProfile — PUT /api/v1/profile.
func (h *APIHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	const route = "profile.update"
	user := middleware.IdentityFrom(r.Context())

	var form binding.ProfileForm
	if err := binding.DecodeJSON(r, &form); err != nil {
		h.respondError(w, r, route, err)
		return
	}
	if !h.validate(w, r, route, form.Validate()) {
		return
	}

	view, err := h.profile.Update(r.Context(), user.PublicID, service.ProfileUpdateInput{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Phone:     form.Phone,
		Language:  form.Language,
		Thumbnail: form.Thumbnail,
	})
	if err != nil {
		h.respondError(w, r, route, err)
		return
	}

	h.env.Success(r.Context(), w, "profileUpdated", view)
}
