// Пакет binding — привязка и валидация входных данных запросов.
// Каждой операции соответствует своя типизированная форма с методом
// Validate, возвращающим упорядоченный список ключей сообщений о
// нарушенных полях (плоский список, не map по полям).
package binding

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/mail"
	"strconv"
	"strings"

	"github.com/rl-Rahul/balu-property-sub001/internal/apperr"
)

// maxBodySize — предел размера JSON-тела запроса.
const maxBodySize = 1 << 20 // 1 MiB

// DecodeJSON читает и декодирует JSON-тело запроса в dst.
// Некорректный JSON — доменная ошибка invalidArgument.
func DecodeJSON(r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("чтение тела запроса: %w", err)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return apperr.Domain("invalidArgument")
	}
	return nil
}

// validEmail проверяет синтаксис email-адреса.
func validEmail(s string) bool {
	_, err := mail.ParseAddress(s)
	return err == nil
}

// --- Пагинация ---

// Pagination — общие параметры страничных запросов.
type Pagination struct {
	Limit  int
	Offset int
	Search string
	SortBy string
	Order  string
}

// ParsePagination извлекает limit/offset/search/sort/order из query.
// Значения вне допустимых границ приводятся к значениям по умолчанию.
func ParsePagination(r *http.Request) Pagination {
	q := r.URL.Query()

	limit, err := strconv.Atoi(q.Get("limit"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = 20
	}
	offset, err := strconv.Atoi(q.Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	order := strings.ToLower(q.Get("order"))
	if order != "asc" && order != "desc" {
		order = "asc"
	}

	return Pagination{
		Limit:  limit,
		Offset: offset,
		Search: strings.TrimSpace(q.Get("search")),
		SortBy: q.Get("sort"),
		Order:  order,
	}
}
