// auth.go — JWT middleware аутентификации API Module.
// Валидирует Bearer-токен платформы (RS256) через keyfunc, загружает
// учётную запись по sub и помещает её в контекст запроса.
package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"

	"github.com/rl-Rahul/balu-property-sub001/internal/api/envelope"
	"github.com/rl-Rahul/balu-property-sub001/internal/domain/model"
	"github.com/rl-Rahul/balu-property-sub001/internal/token"
)

// contextKey — тип для ключей контекста (избегаем коллизий).
type contextKey string

// ContextKeyIdentity — учётная запись аутентифицированного
// пользователя в контексте запроса.
const ContextKeyIdentity contextKey = "identity"

// IdentityProvider — загрузка учётной записи по публичному
// идентификатору. Реализуется ProfileService (через LRU-кэш).
type IdentityProvider interface {
	GetIdentity(ctx context.Context, publicID string) (*model.UserIdentity, error)
}

// IdentityFrom возвращает учётную запись из контекста запроса.
func IdentityFrom(ctx context.Context) *model.UserIdentity {
	u, _ := ctx.Value(ContextKeyIdentity).(*model.UserIdentity)
	return u
}

// JWTAuth — middleware JWT-аутентификации.
type JWTAuth struct {
	jwks     keyfunc.Keyfunc
	issuer   string
	leeway   time.Duration
	identity IdentityProvider
	env      *envelope.Writer
}

// NewJWTAuth создаёт JWT middleware.
// kf — keyfunc с ключами платформы; identity — провайдер учётных
// записей; env — writer единого конверта ответов.
func NewJWTAuth(kf keyfunc.Keyfunc, issuer string, leeway time.Duration, identity IdentityProvider, env *envelope.Writer) *JWTAuth {
	return &JWTAuth{
		jwks:     kf,
		issuer:   issuer,
		leeway:   leeway,
		identity: identity,
		env:      env,
	}
}

// Middleware возвращает HTTP middleware аутентификации.
// Отказ всегда оформляется единым конвертом со статусом 401.
func (j *JWTAuth) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				j.env.Failure(r.Context(), w, http.StatusUnauthorized, "unauthorized", nil)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
				j.env.Failure(r.Context(), w, http.StatusUnauthorized, "unauthorized", nil)
				return
			}

			claims := &token.Claims{}
			parserOpts := []jwt.ParserOption{
				jwt.WithValidMethods([]string{"RS256"}),
				jwt.WithExpirationRequired(),
				jwt.WithLeeway(j.leeway),
			}
			if j.issuer != "" {
				parserOpts = append(parserOpts, jwt.WithIssuer(j.issuer))
			}

			parsed, err := jwt.ParseWithClaims(parts[1], claims, j.jwks.KeyfuncCtx(r.Context()), parserOpts...)
			if err != nil || !parsed.Valid {
				j.env.Failure(r.Context(), w, http.StatusUnauthorized, "unauthorized", nil)
				return
			}

			subject, err := claims.GetSubject()
			if err != nil || subject == "" {
				j.env.Failure(r.Context(), w, http.StatusUnauthorized, "unauthorized", nil)
				return
			}

			user, err := j.identity.GetIdentity(r.Context(), subject)
			if err != nil {
				j.env.Failure(r.Context(), w, http.StatusUnauthorized, "unauthorized", nil)
				return
			}
			if !user.Enabled {
				j.env.Failure(r.Context(), w, http.StatusUnauthorized, "accountDisabled", nil)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyIdentity, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole возвращает middleware, пропускающий только
// пользователей с указанной ролью. Отказ — 403 до входа в handler,
// никакая бизнес-логика не выполняется.
func RequireRole(env *envelope.Writer, required string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := IdentityFrom(r.Context())
			if user == nil || user.Role != required {
				env.Failure(r.Context(), w, http.StatusForbidden, "accessDenied", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
