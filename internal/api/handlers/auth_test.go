package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rl-Rahul/balu-property-sub001/internal/api/envelope"
	"github.com/rl-Rahul/balu-property-sub001/internal/i18n"
	"github.com/rl-Rahul/balu-property-sub001/internal/password"
	"github.com/rl-Rahul/balu-property-sub001/internal/repository"
	"github.com/rl-Rahul/balu-property-sub001/internal/service"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testEnvelopeWriter(t *testing.T) *envelope.Writer {
	t.Helper()
	bundle := i18n.NewBundle(nil)
	catalog := `{
		"userExists": "User already exists",
		"validationError": "Validation failed",
		"passwordRequired": "Password is required",
		"firstNameRequired": "First name is required",
		"lastNameRequired": "Last name is required"
	}`
	if err := bundle.LoadMessages("en", []byte(catalog)); err != nil {
		t.Fatal(err)
	}
	return envelope.NewWriter(bundle, "en")
}

// fakeUserRepo — репозиторий пользователей для тестов обработчиков.
type fakeUserRepo struct {
	repository.UserRepository

	emails map[string]bool
}

func (f *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	return f.emails[email], nil
}

func newTestHandler(t *testing.T, userRepo repository.UserRepository) *APIHandler {
	t.Helper()
	registration := service.NewRegistrationService(userRepo, nil, nil, password.NewHasher(), testLogger())
	return NewAPIHandler(testEnvelopeWriter(t), registration,
		nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, testLogger())
}

func decodeEnvelope(t *testing.T, body []byte) map[string]any {
	t.Helper()
	var env map[string]any
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("разбор конверта: %v", err)
	}
	return env
}

// TestRegisterUserExistsShortCircuit — занятый email завершает запрос
// ошибкой userExists до валидации формы: форма здесь заведомо
// некорректна, но ответ — именно userExists.
func TestRegisterUserExistsShortCircuit(t *testing.T) {
	h := newTestHandler(t, &fakeUserRepo{emails: map[string]bool{"taken@example.com": true}})

	body := `{"email": "taken@example.com", "role": "tenant"}`
	r := httptest.NewRequest("POST", "/api/v1/auth/register", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Register(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("статус = %d, ожидалось 400", w.Code)
	}
	env := decodeEnvelope(t, w.Body.Bytes())
	if env["error"] != true {
		t.Error("в конверте ожидается error=true")
	}
	if env["message"] != "User already exists" {
		t.Errorf("message = %v, ожидалось userExists, а не ошибка валидации", env["message"])
	}
}

// TestRegisterValidationError — свободный email с некорректной формой
// даёт ошибку валидации с переведённым списком нарушений.
func TestRegisterValidationError(t *testing.T) {
	h := newTestHandler(t, &fakeUserRepo{emails: map[string]bool{}})

	body := `{"email": "free@example.com", "role": "tenant"}`
	r := httptest.NewRequest("POST", "/api/v1/auth/register", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Register(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("статус = %d, ожидалось 400", w.Code)
	}
	env := decodeEnvelope(t, w.Body.Bytes())
	if env["message"] != "Validation failed" {
		t.Errorf("message = %v, ожидалось validationError", env["message"])
	}

	fields, ok := env["data"].([]any)
	if !ok || len(fields) == 0 {
		t.Fatalf("data = %v, ожидался список нарушений", env["data"])
	}
	if fields[0] != "Password is required" {
		t.Errorf("первое нарушение = %v, ожидалось Password is required", fields[0])
	}
}

// TestRegisterBadJSON — битое тело запроса даёт invalidArgument.
func TestRegisterBadJSON(t *testing.T) {
	h := newTestHandler(t, &fakeUserRepo{emails: map[string]bool{}})

	r := httptest.NewRequest("POST", "/api/v1/auth/register", strings.NewReader(`{broken`))
	w := httptest.NewRecorder()
	h.Register(w, r)

	if w.Code != http.StatusBadRequest {
		t.Errorf("статус = %d, ожидалось 400", w.Code)
	}
	env := decodeEnvelope(t, w.Body.Bytes())
	// Ключ не загружен в тестовый каталог — проходит насквозь.
	if env["message"] != "invalidArgument" {
		t.Errorf("message = %v, ожидалось invalidArgument", env["message"])
	}
	if _, ok := env["currentRole"]; !ok {
		t.Error("в конверте отсутствует поле currentRole")
	}
}
