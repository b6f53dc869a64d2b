// notification.go — обработчики уведомлений.
package handlers

import (
	"net/http"

	"github.com/rl-Rahul/balu-property-sub001/internal/api/binding"
	"github.com/rl-Rahul/balu-property-sub001/internal/api/middleware"
)

// ListNotifications — GET /api/v1/notifications.
// Параметр unread=true ограничивает выборку непрочитанными.
func (h *APIHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	const route = "notifications.list"
	user := middleware.IdentityFrom(r.Context())
	p := binding.ParsePagination(r)

	unreadOnly := r.URL.Query().Get("unread") == "true"

	list, err := h.notification.List(r.Context(), user.ID, unreadOnly, p.Limit, p.Offset)
	if err != nil {
		h.respondError(w, r, route, err)
		return
	}

	h.env.Success(r.Context(), w, "notificationList", list)
}

// ReadNotifications — POST /api/v1/notifications/read.
// Пакетная отметка прочтения с независимым итогом по каждой позиции.
func (h *APIHandler) ReadNotifications(w http.ResponseWriter, r *http.Request) {
	const route = "notifications.read"
	user := middleware.IdentityFrom(r.Context())

	var form binding.BatchIDsForm
	if err := binding.DecodeJSON(r, &form); err != nil {
		h.respondError(w, r, route, err)
		return
	}
	if !h.validate(w, r, route, form.Validate()) {
		return
	}

	results, err := h.notification.ReadBatch(r.Context(), user.ID, form.IDs)
	if err != nil {
		h.respondError(w, r, route, err)
		return
	}

	for i := range results {
		results[i].Message = h.env.Translate(r.Context(), results[i].Message)
	}

	h.env.Success(r.Context(), w, "notificationRead", results)
}
