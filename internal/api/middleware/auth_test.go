package middleware

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rl-Rahul/balu-property-sub001/internal/api/envelope"
	"github.com/rl-Rahul/balu-property-sub001/internal/apperr"
	"github.com/rl-Rahul/balu-property-sub001/internal/domain/model"
	"github.com/rl-Rahul/balu-property-sub001/internal/domain/role"
	"github.com/rl-Rahul/balu-property-sub001/internal/i18n"
	"github.com/rl-Rahul/balu-property-sub001/internal/token"
)

// generateTestKey генерирует RSA-ключ для подписи тестовых токенов.
func generateTestKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("генерация RSA-ключа: %v", err)
	}
	return key
}

// testEnvelopeWriter — Writer конверта с минимальным каталогом en.
func testEnvelopeWriter(t *testing.T) *envelope.Writer {
	t.Helper()
	bundle := i18n.NewBundle(nil)
	catalog := `{
		"unauthorized": "Unauthorized",
		"accountDisabled": "Account is disabled",
		"accessDenied": "Access denied"
	}`
	if err := bundle.LoadMessages("en", []byte(catalog)); err != nil {
		t.Fatal(err)
	}
	return envelope.NewWriter(bundle, "en")
}

// fakeIdentityProvider — провайдер учётных записей для тестов.
type fakeIdentityProvider struct {
	users map[string]*model.UserIdentity
}

func (f *fakeIdentityProvider) GetIdentity(_ context.Context, publicID string) (*model.UserIdentity, error) {
	u, ok := f.users[publicID]
	if !ok {
		return nil, apperr.Domain("invalidUser")
	}
	return u, nil
}

// newTestAuth собирает JWTAuth поверх собственного JWKS подписанта.
func newTestAuth(t *testing.T, signer *token.Signer, identity IdentityProvider) *JWTAuth {
	t.Helper()
	kf, err := signer.Keyfunc()
	if err != nil {
		t.Fatalf("создание keyfunc: %v", err)
	}
	return NewJWTAuth(kf, signer.Issuer(), 30*time.Second, identity, testEnvelopeWriter(t))
}

// decodeEnvelope разбирает тело конверта ответа.
func decodeEnvelope(t *testing.T, body []byte) map[string]any {
	t.Helper()
	var env map[string]any
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("разбор конверта: %v", err)
	}
	return env
}

// TestAuthMiddlewareValidToken — валидный токен: учётная запись в контексте.
func TestAuthMiddlewareValidToken(t *testing.T) {
	signer := token.NewSignerWithKey(generateTestKey(t), "test-issuer", time.Hour)
	identity := &fakeIdentityProvider{users: map[string]*model.UserIdentity{
		"user-1": {ID: 1, PublicID: "user-1", Email: "ivan@example.com", Role: role.RoleOwner, Enabled: true},
	}}
	auth := newTestAuth(t, signer, identity)

	tokenStr, err := signer.Issue("user-1", "ivan@example.com", role.RoleOwner)
	if err != nil {
		t.Fatalf("выпуск токена: %v", err)
	}

	var gotUser *model.UserIdentity
	handler := auth.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = IdentityFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	r := httptest.NewRequest("GET", "/api/v1/profile", nil)
	r.Header.Set("Authorization", "Bearer "+tokenStr)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("статус = %d, ожидалось 200; тело: %s", w.Code, w.Body.String())
	}
	if gotUser == nil || gotUser.PublicID != "user-1" {
		t.Errorf("учётная запись в контексте = %+v, ожидался user-1", gotUser)
	}
}

// TestAuthMiddlewareRejections — отказы аутентификации: 401 и единый конверт.
func TestAuthMiddlewareRejections(t *testing.T) {
	key := generateTestKey(t)
	signer := token.NewSignerWithKey(key, "test-issuer", time.Hour)
	expiredSigner := token.NewSignerWithKey(key, "test-issuer", -time.Hour)
	foreignSigner := token.NewSignerWithKey(generateTestKey(t), "test-issuer", time.Hour)

	identity := &fakeIdentityProvider{users: map[string]*model.UserIdentity{
		"user-1":   {ID: 1, PublicID: "user-1", Role: role.RoleOwner, Enabled: true},
		"disabled": {ID: 2, PublicID: "disabled", Role: role.RoleTenant, Enabled: false},
	}}
	auth := newTestAuth(t, signer, identity)

	issue := func(s *token.Signer, publicID string) string {
		tok, err := s.Issue(publicID, "x@example.com", role.RoleOwner)
		if err != nil {
			t.Fatalf("выпуск токена: %v", err)
		}
		return tok
	}

	tests := []struct {
		name        string
		authHeader  string
		wantMessage string
	}{
		{"без заголовка", "", "Unauthorized"},
		{"не Bearer", "Basic dXNlcjpwYXNz", "Unauthorized"},
		{"мусор вместо токена", "Bearer not-a-jwt", "Unauthorized"},
		{"просроченный токен", "Bearer " + issue(expiredSigner, "user-1"), "Unauthorized"},
		{"чужой ключ подписи", "Bearer " + issue(foreignSigner, "user-1"), "Unauthorized"},
		{"неизвестный пользователь", "Bearer " + issue(signer, "ghost"), "Unauthorized"},
		{"отключённая учётная запись", "Bearer " + issue(signer, "disabled"), "Account is disabled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := auth.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}))

			r := httptest.NewRequest("GET", "/api/v1/profile", nil)
			if tt.authHeader != "" {
				r.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)

			if called {
				t.Error("handler не должен вызываться при отказе аутентификации")
			}
			if w.Code != http.StatusUnauthorized {
				t.Errorf("статус = %d, ожидалось 401", w.Code)
			}
			env := decodeEnvelope(t, w.Body.Bytes())
			if env["error"] != true {
				t.Error("в конверте ожидается error=true")
			}
			if env["message"] != tt.wantMessage {
				t.Errorf("message = %v, ожидалось %q", env["message"], tt.wantMessage)
			}
		})
	}
}

// TestRequireRole — проверка роли выполняется до входа в handler.
func TestRequireRole(t *testing.T) {
	env := testEnvelopeWriter(t)

	tests := []struct {
		name       string
		user       *model.UserIdentity
		wantStatus int
	}{
		{"super_admin проходит", &model.UserIdentity{Role: role.RoleSuperAdmin, Enabled: true}, http.StatusOK},
		{"owner получает 403", &model.UserIdentity{Role: role.RoleOwner, Enabled: true}, http.StatusForbidden},
		{"без учётной записи — 403", nil, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := RequireRole(env, role.RoleSuperAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				w.WriteHeader(http.StatusOK)
			}))

			r := httptest.NewRequest("GET", "/api/v1/admin/users", nil)
			if tt.user != nil {
				r = r.WithContext(context.WithValue(r.Context(), ContextKeyIdentity, tt.user))
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)

			if w.Code != tt.wantStatus {
				t.Errorf("статус = %d, ожидалось %d", w.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusForbidden && called {
				t.Error("handler не должен вызываться при отказе авторизации")
			}
			if tt.wantStatus == http.StatusForbidden {
				env := decodeEnvelope(t, w.Body.Bytes())
				if env["message"] != "Access denied" {
					t.Errorf("message = %v, ожидалось Access denied", env["message"])
				}
			}
		})
	}
}
