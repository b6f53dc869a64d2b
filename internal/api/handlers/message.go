// message.go — обработчики сообщений.
package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rl-Rahul/balu-property-sub001/internal/api/binding"
	"github.com/rl-Rahul/balu-property-sub001/internal/api/middleware"
	"github.com/rl-Rahul/balu-property-sub001/internal/api/reqctx"
	"github.com/rl-Rahul/balu-property-sub001/internal/service"
)

// SendMessage — POST /api/v1/messages.
// Роль отправителя фиксируется из заголовка currentRole,
// при его отсутствии — из основной роли пользователя. Для активной
// роли property_admin собственник передаётся полем ownerId и проходит
// проверку управляющего до какой-либо записи.
func (h *APIHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	const route = "messages.send"
	user := middleware.IdentityFrom(r.Context())

	var form binding.MessageForm
	if err := binding.DecodeJSON(r, &form); err != nil {
		h.respondError(w, r, route, err)
		return
	}
	if !h.validate(w, r, route, form.Validate()) {
		return
	}

	currentRole := reqctx.CurrentRole(r.Context())
	if err := h.access.CheckPropertyAdminAccess(r.Context(), user, currentRole, form.OwnerID); err != nil {
		h.respondError(w, r, route, err)
		return
	}

	senderRole := user.Role
	if currentRole != nil {
		senderRole = *currentRole
	}

	view, err := h.messages.Send(r.Context(), user, senderRole, service.SendInput{
		RecipientID: form.RecipientID,
		Subject:     form.Subject,
		Body:        form.Body,
	})
	if err != nil {
		h.respondError(w, r, route, err)
		return
	}

	h.env.Success(r.Context(), w, "messageSent", view)
}

// GetMessage — GET /api/v1/messages/{id}.
func (h *APIHandler) GetMessage(w http.ResponseWriter, r *http.Request) {
	const route = "messages.get"
	user := middleware.IdentityFrom(r.Context())

	view, err := h.messages.Get(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, route, err)
		return
	}

	h.env.Success(r.Context(), w, "messageFetched", view)
}

// ReadMessage — PUT /api/v1/messages/{id}/read.
func (h *APIHandler) ReadMessage(w http.ResponseWriter, r *http.Request) {
	const route = "messages.read"
	user := middleware.IdentityFrom(r.Context())

	if err := h.messages.MarkRead(r.Context(), user.ID, chi.URLParam(r, "id")); err != nil {
		h.respondError(w, r, route, err)
		return
	}

	h.env.Success(r.Context(), w, "messageRead", nil)
}

// ListMessages — GET /api/v1/messages.
// Параметр archived=true|false фильтрует по архивности.
func (h *APIHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	const route = "messages.list"
	user := middleware.IdentityFrom(r.Context())
	p := binding.ParsePagination(r)

	var archived *bool
	switch r.URL.Query().Get("archived") {
	case "true":
		v := true
		archived = &v
	case "false":
		v := false
		archived = &v
	}

	list, err := h.messages.ListInbox(r.Context(), user.ID, archived, p.Limit, p.Offset)
	if err != nil {
		h.respondError(w, r, route, err)
		return
	}

	h.env.Success(r.Context(), w, "messageList", list)
}

// ArchiveMessages — POST /api/v1/messages/archive.
// Пакетная операция: позиции обрабатываются независимо, итог каждой
// возвращается в data; сам конверт успешен.
func (h *APIHandler) ArchiveMessages(w http.ResponseWriter, r *http.Request) {
	const route = "messages.archive"
	user := middleware.IdentityFrom(r.Context())

	var form binding.BatchIDsForm
	if err := binding.DecodeJSON(r, &form); err != nil {
		h.respondError(w, r, route, err)
		return
	}
	if !h.validate(w, r, route, form.Validate()) {
		return
	}

	results, err := h.messages.ArchiveBatch(r.Context(), user.ID, form.IDs)
	if err != nil {
		h.respondError(w, r, route, err)
		return
	}

	// Сообщения результатов переводятся по локали запроса.
	for i := range results {
		results[i].Message = h.env.Translate(r.Context(), results[i].Message)
	}

	h.env.Success(r.Context(), w, "messageArchived", results)
}
