package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

// TestHTTPStatus — маппинг категорий ошибок на HTTP-статусы.
func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want int
	}{
		{"валидация — 400", Validation([]string{"emailRequired"}), http.StatusBadRequest},
		{"доменная — 400", Domain("userExists"), http.StatusBadRequest},
		{"не найдено — 400", NotFound("resourceNotFound"), http.StatusBadRequest},
		{"нет аутентификации — 401", Unauthorized("unauthorized"), http.StatusUnauthorized},
		{"нет прав — 403", Forbidden("accessDenied"), http.StatusForbidden},
		{"инфраструктурная — 500", Internal(errors.New("connection refused")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.HTTPStatus(); got != tt.want {
				t.Errorf("HTTPStatus() = %d, ожидалось %d", got, tt.want)
			}
		})
	}
}

// TestInternalHidesCause — инфраструктурная ошибка не раскрывает
// причину в ключе сообщения.
func TestInternalHidesCause(t *testing.T) {
	cause := errors.New("pq: connection refused")
	err := Internal(cause)

	if err.MessageKey != "internalError" {
		t.Errorf("MessageKey = %q, ожидалось internalError", err.MessageKey)
	}
	if !errors.Is(err, cause) {
		t.Error("обёрнутая причина должна быть доступна через errors.Is")
	}
}

// TestFrom — приведение произвольных ошибок к *Error.
func TestFrom(t *testing.T) {
	t.Run("типизированная ошибка проходит как есть", func(t *testing.T) {
		orig := Domain("userExists")
		got := From(orig)
		if got != orig {
			t.Error("ожидался тот же экземпляр *Error")
		}
	})

	t.Run("обёрнутая типизированная ошибка распознаётся", func(t *testing.T) {
		orig := Domain("invalidUser")
		wrapped := fmt.Errorf("получение пользователя: %w", orig)
		got := From(wrapped)
		if got.Kind != KindDomain || got.MessageKey != "invalidUser" {
			t.Errorf("From() = %v/%q, ожидалось KindDomain/invalidUser", got.Kind, got.MessageKey)
		}
	})

	t.Run("нетипизированная ошибка становится инфраструктурной", func(t *testing.T) {
		got := From(errors.New("boom"))
		if got.Kind != KindInternal {
			t.Errorf("Kind = %v, ожидалось KindInternal", got.Kind)
		}
		if got.MessageKey != "internalError" {
			t.Errorf("MessageKey = %q, ожидалось internalError", got.MessageKey)
		}
	})
}

// TestValidationFields — порядок полей сохраняется.
func TestValidationFields(t *testing.T) {
	fields := []string{"emailRequired", "passwordRequired", "firstNameRequired"}
	err := Validation(fields)

	if len(err.Fields) != 3 {
		t.Fatalf("Fields = %d элементов, ожидалось 3", len(err.Fields))
	}
	for i, f := range fields {
		if err.Fields[i] != f {
			t.Errorf("Fields[%d] = %q, ожидалось %q", i, err.Fields[i], f)
		}
	}
}
