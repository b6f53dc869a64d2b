package binding

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rl-Rahul/balu-property-sub001/internal/apperr"
)

// TestDecodeJSON — декодирование тела запроса.
func TestDecodeJSON(t *testing.T) {
	t.Run("корректный JSON", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"a@b.com"}`))
		var f LoginForm
		if err := DecodeJSON(r, &f); err != nil {
			t.Fatalf("неожиданная ошибка: %v", err)
		}
		if f.Email != "a@b.com" {
			t.Errorf("Email = %q, ожидалось a@b.com", f.Email)
		}
	})

	t.Run("битый JSON — invalidArgument", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/", strings.NewReader(`{not json`))
		var f LoginForm
		err := DecodeJSON(r, &f)
		var appErr *apperr.Error
		if !errors.As(err, &appErr) {
			t.Fatalf("ожидалась типизированная ошибка, получено %v", err)
		}
		if appErr.MessageKey != "invalidArgument" {
			t.Errorf("MessageKey = %q, ожидалось invalidArgument", appErr.MessageKey)
		}
	})
}

// TestParsePagination — границы и значения по умолчанию.
func TestParsePagination(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  Pagination
	}{
		{
			"значения по умолчанию",
			"",
			Pagination{Limit: 20, Offset: 0, Order: "asc"},
		},
		{
			"явные параметры",
			"limit=50&offset=10&search=%20Anna%20&sort=email&order=desc",
			Pagination{Limit: 50, Offset: 10, Search: "Anna", SortBy: "email", Order: "desc"},
		},
		{
			"limit за верхней границей",
			"limit=500",
			Pagination{Limit: 20, Offset: 0, Order: "asc"},
		},
		{
			"отрицательный offset",
			"offset=-5",
			Pagination{Limit: 20, Offset: 0, Order: "asc"},
		},
		{
			"некорректный order",
			"order=sideways",
			Pagination{Limit: 20, Offset: 0, Order: "asc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/?"+tt.query, nil)
			got := ParsePagination(r)
			if got != tt.want {
				t.Errorf("ParsePagination() = %+v, ожидалось %+v", got, tt.want)
			}
		})
	}
}
