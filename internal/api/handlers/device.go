// device.go — обработчики регистрации устройств.
package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rl-Rahul/balu-property-sub001/internal/api/binding"
	"github.com/rl-Rahul/balu-property-sub001/internal/api/middleware"
)

// RegisterDevice — POST /api/v1/devices.
func (h *APIHandler) RegisterDevice(w http.ResponseWriter, r *http.Request) {
	const route = "devices.register"
	user := middleware.IdentityFrom(r.Context())

	var form binding.DeviceForm
	if err := binding.DecodeJSON(r, &form); err != nil {
		h.respondError(w, r, route, err)
		return
	}
	if !h.validate(w, r, route, form.Validate()) {
		return
	}

	if err := h.devices.Register(r.Context(), user.ID, form.Token, form.Platform); err != nil {
		h.respondError(w, r, route, err)
		return
	}

	h.env.Success(r.Context(), w, "deviceRegistered", nil)
}

// RemoveDevice — DELETE /api/v1/devices/{token}.
func (h *APIHandler) RemoveDevice(w http.ResponseWriter, r *http.Request) {
	const route = "devices.remove"
	user := middleware.IdentityFrom(r.Context())

	if err := h.devices.Remove(r.Context(), user.ID, chi.URLParam(r, "token")); err != nil {
		h.respondError(w, r, route, err)
		return
	}

	h.env.Success(r.Context(), w, "deviceRemoved", nil)
}
