// reqctx.go — middleware контекста запроса.
// Заголовки locale и currentRole читаются один раз на запрос и
// помещаются в явный RequestContext; глобального состояния нет.
package middleware

import (
	"net/http"

	"github.com/rl-Rahul/balu-property-sub001/internal/api/reqctx"
	"github.com/rl-Rahul/balu-property-sub001/internal/domain/role"
	"github.com/rl-Rahul/balu-property-sub001/internal/i18n"
)

// RequestContext возвращает middleware, заполняющий контекст запроса
// локалью и активной ролью из заголовков.
// Локаль выбирается в порядке: заголовок locale → Accept-Language →
// локаль по умолчанию; неизвестное значение сводится к ближайшей
// поддерживаемой. Неизвестная роль игнорируется (nil).
func RequestContext(defaultLocale string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale := r.Header.Get("locale")
			switch {
			case locale == "":
				if accept := r.Header.Get("Accept-Language"); accept != "" {
					locale = i18n.MatchLanguage(accept)
				} else {
					locale = defaultLocale
				}
			case !i18n.IsSupported(locale):
				locale = i18n.MatchLanguage(locale)
			}

			var currentRole *string
			if v := r.Header.Get("currentRole"); v != "" && role.IsValidRole(v) {
				currentRole = &v
			}

			rc := &reqctx.RequestContext{
				Locale:      locale,
				CurrentRole: currentRole,
			}
			next.ServeHTTP(w, r.WithContext(reqctx.With(r.Context(), rc)))
		})
	}
}
