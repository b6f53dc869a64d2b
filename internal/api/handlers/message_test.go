package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rl-Rahul/balu-property-sub001/internal/api/envelope"
	"github.com/rl-Rahul/balu-property-sub001/internal/api/middleware"
	"github.com/rl-Rahul/balu-property-sub001/internal/api/reqctx"
	"github.com/rl-Rahul/balu-property-sub001/internal/domain/model"
	"github.com/rl-Rahul/balu-property-sub001/internal/domain/role"
	"github.com/rl-Rahul/balu-property-sub001/internal/i18n"
	"github.com/rl-Rahul/balu-property-sub001/internal/pushclient"
	"github.com/rl-Rahul/balu-property-sub001/internal/repository"
	"github.com/rl-Rahul/balu-property-sub001/internal/service"
)

// fakeSenderUserRepo — репозиторий пользователей для тестов отправки:
// проверка управляющего по парам (управляющий, собственник) и
// разрешение получателя по публичному идентификатору.
type fakeSenderUserRepo struct {
	repository.UserRepository

	adminPairs  map[[2]int64]bool
	recipients  map[string]*model.UserIdentity
	lookupCalls int
}

func (f *fakeSenderUserRepo) IsAdminOfOwner(_ context.Context, adminID, ownerID int64) (bool, error) {
	return f.adminPairs[[2]int64{adminID, ownerID}], nil
}

func (f *fakeSenderUserRepo) GetByPublicID(_ context.Context, publicID string) (*model.UserIdentity, error) {
	f.lookupCalls++
	u, ok := f.recipients[publicID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func messageEnvelopeWriter(t *testing.T) *envelope.Writer {
	t.Helper()
	bundle := i18n.NewBundle(nil)
	catalog := `{
		"invalidArgument": "Invalid argument",
		"unsupportedUser": "Unsupported user",
		"invalidUser": "Invalid user"
	}`
	if err := bundle.LoadMessages("en", []byte(catalog)); err != nil {
		t.Fatal(err)
	}
	return envelope.NewWriter(bundle, "en")
}

func newMessageTestHandler(t *testing.T, userRepo *fakeSenderUserRepo) *APIHandler {
	t.Helper()
	messages := service.NewMessageService(nil, userRepo, nil, nil, pushclient.NopSender{}, testLogger())
	access := service.NewAccessService(userRepo, testLogger())
	return NewAPIHandler(messageEnvelopeWriter(t), nil,
		nil, nil, nil, messages, nil, nil, nil, nil, access, nil, testLogger())
}

// sendRequest собирает запрос отправки с учётной записью и активной
// ролью в контексте.
func sendRequest(body string, user *model.UserIdentity, currentRole *string) *http.Request {
	r := httptest.NewRequest("POST", "/api/v1/messages", strings.NewReader(body))
	ctx := context.WithValue(r.Context(), middleware.ContextKeyIdentity, user)
	ctx = reqctx.With(ctx, &reqctx.RequestContext{Locale: "en", CurrentRole: currentRole})
	return r.WithContext(ctx)
}

// TestSendMessagePropertyAdminGate — для активной роли property_admin
// проверка управляющего выполняется до обращения к получателю:
// нечисловой ownerId даёт invalidArgument, отсутствие связи с
// собственником — unsupportedUser. Получатель при этом не разрешается.
func TestSendMessagePropertyAdminGate(t *testing.T) {
	admin := role.RolePropertyAdmin
	sender := &model.UserIdentity{ID: 5, PublicID: "admin-5", Role: role.RolePropertyAdmin, Enabled: true}

	tests := []struct {
		name    string
		ownerID string
		want    string
	}{
		{"нечисловой ownerId", "abc", "Invalid argument"},
		{"пустой ownerId", "", "Invalid argument"},
		{"чужой собственник", "99", "Unsupported user"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := &fakeSenderUserRepo{
				adminPairs: map[[2]int64]bool{{5, 10}: true},
				recipients: map[string]*model.UserIdentity{},
			}
			h := newMessageTestHandler(t, userRepo)

			body := `{"recipientId": "u-1", "subject": "Тема", "body": "Текст", "ownerId": "` + tt.ownerID + `"}`
			w := httptest.NewRecorder()
			h.SendMessage(w, sendRequest(body, sender, &admin))

			if w.Code != http.StatusBadRequest {
				t.Fatalf("статус = %d, ожидалось 400", w.Code)
			}
			env := decodeEnvelope(t, w.Body.Bytes())
			if env["message"] != tt.want {
				t.Errorf("message = %v, ожидалось %q", env["message"], tt.want)
			}
			if userRepo.lookupCalls != 0 {
				t.Error("получатель разрешён до проверки управляющего")
			}
		})
	}
}

// TestSendMessagePropertyAdminAllowed — действующий управляющий
// собственника проходит проверку, запрос доходит до разрешения
// получателя.
func TestSendMessagePropertyAdminAllowed(t *testing.T) {
	admin := role.RolePropertyAdmin
	sender := &model.UserIdentity{ID: 5, PublicID: "admin-5", Role: role.RolePropertyAdmin, Enabled: true}
	userRepo := &fakeSenderUserRepo{
		adminPairs: map[[2]int64]bool{{5, 10}: true},
		recipients: map[string]*model.UserIdentity{},
	}
	h := newMessageTestHandler(t, userRepo)

	body := `{"recipientId": "ghost", "subject": "Тема", "body": "Текст", "ownerId": "10"}`
	w := httptest.NewRecorder()
	h.SendMessage(w, sendRequest(body, sender, &admin))

	env := decodeEnvelope(t, w.Body.Bytes())
	if env["message"] != "Invalid user" {
		t.Errorf("message = %v, ожидалось invalidUser после пройденной проверки", env["message"])
	}
	if userRepo.lookupCalls != 1 {
		t.Errorf("обращений к получателю = %d, ожидалось 1", userRepo.lookupCalls)
	}
}

// TestSendMessageOtherRolesSkipGate — для остальных ролей ownerId не
// требуется, проверка управляющего не выполняется.
func TestSendMessageOtherRolesSkipGate(t *testing.T) {
	sender := &model.UserIdentity{ID: 7, PublicID: "owner-7", Role: role.RoleOwner, Enabled: true}
	userRepo := &fakeSenderUserRepo{
		adminPairs: map[[2]int64]bool{},
		recipients: map[string]*model.UserIdentity{},
	}
	h := newMessageTestHandler(t, userRepo)

	body := `{"recipientId": "ghost", "subject": "Тема", "body": "Текст"}`
	w := httptest.NewRecorder()
	h.SendMessage(w, sendRequest(body, sender, nil))

	env := decodeEnvelope(t, w.Body.Bytes())
	if env["message"] != "Invalid user" {
		t.Errorf("message = %v, ожидалось invalidUser без проверки управляющего", env["message"])
	}
}
