// files.go — обработчики загрузки и раздачи файлов.
// Загрузка принимает multipart-файл (поле file) либо JSON с inline
// base64-данными; оба пути идут через UploadService.
package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/rl-Rahul/balu-property-sub001/internal/api/binding"
	"github.com/rl-Rahul/balu-property-sub001/internal/api/middleware"
	"github.com/rl-Rahul/balu-property-sub001/internal/apperr"
)

// maxMultipartMemory — предел буферизации multipart-формы в памяти.
const maxMultipartMemory = 8 << 20 // 8 MiB

// UploadFile — POST /api/v1/files.
func (h *APIHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	const route = "files.upload"
	user := middleware.IdentityFrom(r.Context())

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		h.uploadMultipart(w, r, route, user.ID)
		return
	}
	h.uploadBase64(w, r, route, user.ID)
}

func (h *APIHandler) uploadMultipart(w http.ResponseWriter, r *http.Request, route string, uploaderID int64) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		h.respondError(w, r, route, apperr.Domain("invalidFile"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, r, route, apperr.Domain("invalidFile"))
		return
	}
	defer file.Close()

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	view, err := h.uploads.Save(r.Context(), uploaderID, header.Filename, mimeType, file)
	if err != nil {
		h.respondError(w, r, route, err)
		return
	}

	h.env.Success(r.Context(), w, "fileUploaded", view)
}

func (h *APIHandler) uploadBase64(w http.ResponseWriter, r *http.Request, route string, uploaderID int64) {
	var form binding.Base64FileForm
	if err := binding.DecodeJSON(r, &form); err != nil {
		h.respondError(w, r, route, err)
		return
	}
	if !h.validate(w, r, route, form.Validate()) {
		return
	}

	mimeType := form.MimeType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	view, err := h.uploads.SaveBase64(r.Context(), uploaderID, form.Name, mimeType, form.Data)
	if err != nil {
		h.respondError(w, r, route, err)
		return
	}

	h.env.Success(r.Context(), w, "fileUploaded", view)
}

// ServeFile — GET /api/v1/files/{id}.
// Отдаёт содержимое файла; метаданные — в заголовках ответа.
func (h *APIHandler) ServeFile(w http.ResponseWriter, r *http.Request) {
	const route = "files.serve"

	record, err := h.uploads.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, route, err)
		return
	}

	w.Header().Set("Content-Type", record.MimeType)
	w.Header().Set("Content-Disposition", `inline; filename="`+record.OriginalName+`"`)
	http.ServeFile(w, r, record.StoredPath)
}
