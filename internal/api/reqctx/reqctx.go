// Пакет reqctx — явный контекст запроса: локаль и текущая роль.
// Оба значения читаются middleware из заголовков ("locale",
// "currentRole") один раз на запрос и передаются дальше только через
// context.Context — без глобального состояния.
package reqctx

import "context"

// contextKey — тип для ключей контекста (избегаем коллизий).
type contextKey string

const (
	// contextKeyRequest — значение RequestContext в контексте запроса.
	contextKeyRequest contextKey = "request_context"
)

// RequestContext — пер-запросные значения заголовков.
type RequestContext struct {
	// Locale — локаль запроса (en, ru). Пустая строка — не задана.
	Locale string
	// CurrentRole — роль, под которой действует пользователь
	// (nil — заголовок не передан).
	CurrentRole *string
}

// With помещает RequestContext в контекст.
func With(ctx context.Context, rc *RequestContext) context.Context {
	return context.WithValue(ctx, contextKeyRequest, rc)
}

// From извлекает RequestContext из контекста.
// Возвращает пустой RequestContext, если middleware не отработал.
func From(ctx context.Context) *RequestContext {
	if rc, ok := ctx.Value(contextKeyRequest).(*RequestContext); ok {
		return rc
	}
	return &RequestContext{}
}

// Locale извлекает локаль запроса. Пустая строка — не задана.
func Locale(ctx context.Context) string {
	return From(ctx).Locale
}

// CurrentRole извлекает текущую роль запроса (nil — не задана).
func CurrentRole(ctx context.Context) *string {
	return From(ctx).CurrentRole
}
