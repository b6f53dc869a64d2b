package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rl-Rahul/balu-property-sub001/internal/api/reqctx"
)

// TestRequestContextMiddleware — заполнение контекста из заголовков.
func TestRequestContextMiddleware(t *testing.T) {
	tests := []struct {
		name        string
		localeHdr   string
		acceptHdr   string
		roleHdr     string
		wantLocale  string
		wantRole    *string
		wantRoleStr string
	}{
		{"без заголовков — локаль по умолчанию", "", "", "", "en", nil, ""},
		{"явная локаль ru", "ru", "", "", "ru", nil, ""},
		{"неподдерживаемая локаль сводится", "de-DE", "", "", "en", nil, ""},
		{"Accept-Language при отсутствии locale", "", "ru-RU, en;q=0.8", "", "ru", nil, ""},
		{"locale важнее Accept-Language", "en", "ru-RU", "", "en", nil, ""},
		{"неподдерживаемый Accept-Language сводится", "", "de-DE, fr;q=0.7", "", "en", nil, ""},
		{"валидная роль", "", "", "owner", "en", new(string), "owner"},
		{"неизвестная роль игнорируется", "", "", "astronaut", "en", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotLocale string
			var gotRole *string
			handler := RequestContext("en")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotLocale = reqctx.Locale(r.Context())
				gotRole = reqctx.CurrentRole(r.Context())
			}))

			r := httptest.NewRequest("GET", "/api/v1/profile", nil)
			if tt.localeHdr != "" {
				r.Header.Set("locale", tt.localeHdr)
			}
			if tt.acceptHdr != "" {
				r.Header.Set("Accept-Language", tt.acceptHdr)
			}
			if tt.roleHdr != "" {
				r.Header.Set("currentRole", tt.roleHdr)
			}
			handler.ServeHTTP(httptest.NewRecorder(), r)

			if gotLocale != tt.wantLocale {
				t.Errorf("locale = %q, ожидалось %q", gotLocale, tt.wantLocale)
			}
			if tt.wantRole == nil {
				if gotRole != nil {
					t.Errorf("currentRole = %q, ожидался nil", *gotRole)
				}
			} else {
				if gotRole == nil || *gotRole != tt.wantRoleStr {
					t.Errorf("currentRole = %v, ожидалось %q", gotRole, tt.wantRoleStr)
				}
			}
		})
	}
}
