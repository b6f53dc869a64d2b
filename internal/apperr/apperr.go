// Пакет apperr — типизированная модель ошибок API Module.
// Разделяет ошибки валидации, доменные ошибки бизнес-логики и
// инфраструктурные ошибки; каждая категория маппится на свой
// HTTP-статус и несёт ключ локализуемого сообщения.
// Текст инфраструктурной ошибки наружу не отдаётся.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind — категория ошибки.
type Kind int

const (
	// KindValidation — ошибка валидации входных данных (400, список полей).
	KindValidation Kind = iota
	// KindDomain — доменная ошибка бизнес-логики (400).
	KindDomain
	// KindNotFound — ресурс не найден (400: конверт API исторически
	// не различает not-found и логическую ошибку).
	KindNotFound
	// KindUnauthorized — запрос не аутентифицирован (401).
	KindUnauthorized
	// KindForbidden — недостаточно прав (403).
	KindForbidden
	// KindInternal — инфраструктурная/неожиданная ошибка (500).
	KindInternal
)

// Error — ошибка с категорией и ключом локализуемого сообщения.
type Error struct {
	// Kind — категория ошибки.
	Kind Kind
	// MessageKey — ключ сообщения для i18n-каталога.
	MessageKey string
	// Fields — упорядоченный список ключей сообщений о нарушенных полях
	// (только для KindValidation).
	Fields []string
	// err — обёрнутая причина (для KindInternal).
	err error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.MessageKey, e.err)
	}
	return e.MessageKey
}

// Unwrap возвращает обёрнутую причину ошибки.
func (e *Error) Unwrap() error {
	return e.err
}

// HTTPStatus возвращает HTTP-статус для категории ошибки.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindInternal:
		return http.StatusInternalServerError
	default:
		// Validation, Domain, NotFound — единый статус 400
		return http.StatusBadRequest
	}
}

// --- Конструкторы ---

// Validation создаёт ошибку валидации с упорядоченным списком
// сообщений о полях.
func Validation(fields []string) *Error {
	return &Error{Kind: KindValidation, MessageKey: "validationError", Fields: fields}
}

// Domain создаёт доменную ошибку с ключом сообщения.
func Domain(messageKey string) *Error {
	return &Error{Kind: KindDomain, MessageKey: messageKey}
}

// NotFound создаёт ошибку отсутствия ресурса с ключом сообщения.
func NotFound(messageKey string) *Error {
	return &Error{Kind: KindNotFound, MessageKey: messageKey}
}

// Unauthorized создаёт ошибку аутентификации.
func Unauthorized(messageKey string) *Error {
	return &Error{Kind: KindUnauthorized, MessageKey: messageKey}
}

// Forbidden создаёт ошибку авторизации.
func Forbidden(messageKey string) *Error {
	return &Error{Kind: KindForbidden, MessageKey: messageKey}
}

// Internal оборачивает инфраструктурную ошибку. Наружу уходит
// неизменный ключ internalError, причина остаётся в логах.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, MessageKey: "internalError", err: err}
}

// From приводит произвольную ошибку к *Error.
// Нетипизированные ошибки считаются инфраструктурными.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}
