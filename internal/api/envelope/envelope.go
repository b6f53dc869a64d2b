// Пакет envelope — единый конверт JSON-ответов API.
// Каждый обработчик завершает запрос ровно одним конвертом:
// {"currentRole": ..., "data": ..., "error": ..., "message": ...}.
// message — локализованная строка, разрешаемая из ключа по локали
// запроса; неизвестный ключ отдаётся как есть.
package envelope

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rl-Rahul/balu-property-sub001/internal/api/reqctx"
	"github.com/rl-Rahul/balu-property-sub001/internal/i18n"
)

// Envelope — тело ответа API.
type Envelope struct {
	// CurrentRole — роль, под которой действовал пользователь (эхо заголовка).
	CurrentRole *string `json:"currentRole"`
	// Data — полезная нагрузка; пустой массив, если данных нет.
	Data any `json:"data"`
	// Error — true, если операция завершилась неуспешно.
	Error bool `json:"error"`
	// Message — локализованное сообщение.
	Message string `json:"message"`
}

// Writer строит и сериализует конверты ответов.
type Writer struct {
	bundle        *i18n.Bundle
	defaultLocale string
}

// NewWriter создаёт Writer с каталогом переводов и локалью по умолчанию.
func NewWriter(bundle *i18n.Bundle, defaultLocale string) *Writer {
	return &Writer{
		bundle:        bundle,
		defaultLocale: defaultLocale,
	}
}

// Success записывает успешный конверт со статусом 200.
// data == nil заменяется пустым массивом.
func (wr *Writer) Success(ctx context.Context, w http.ResponseWriter, messageKey string, data any) {
	wr.write(ctx, w, http.StatusOK, false, messageKey, data)
}

// Failure записывает конверт ошибки с указанным статусом.
// data == nil заменяется пустым массивом.
func (wr *Writer) Failure(ctx context.Context, w http.ResponseWriter, status int, messageKey string, data any) {
	wr.write(ctx, w, status, true, messageKey, data)
}

// write сериализует конверт. Локаль берётся из контекста запроса,
// при отсутствии — локаль по умолчанию.
func (wr *Writer) write(ctx context.Context, w http.ResponseWriter, status int, isErr bool, messageKey string, data any) {
	locale := reqctx.Locale(ctx)
	if locale == "" {
		locale = wr.defaultLocale
	}

	if data == nil {
		data = []any{}
	}

	env := Envelope{
		CurrentRole: reqctx.CurrentRole(ctx),
		Data:        data,
		Error:       isErr,
		Message:     wr.bundle.Translate(locale, messageKey),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

// Translate разрешает ключ сообщения по локали запроса.
// Используется для локализации элементов списков (например, пофайловых
// результатов пакетных операций).
func (wr *Writer) Translate(ctx context.Context, messageKey string) string {
	locale := reqctx.Locale(ctx)
	if locale == "" {
		locale = wr.defaultLocale
	}
	return wr.bundle.Translate(locale, messageKey)
}
