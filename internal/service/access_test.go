package service

import (
	"errors"
	"testing"

	"github.com/rl-Rahul/balu-property-sub001/internal/apperr"
	"github.com/rl-Rahul/balu-property-sub001/internal/domain/model"
	"github.com/rl-Rahul/balu-property-sub001/internal/domain/role"
)

func strPtr(s string) *string { return &s }

// TestCheckPropertyAdminAccess — доступ управляющего к собственнику.
func TestCheckPropertyAdminAccess(t *testing.T) {
	userRepo := newFakeUserRepo()
	userRepo.adminPairs[[2]int64{5, 10}] = true
	svc := NewAccessService(userRepo, testLogger())

	admin := &model.UserIdentity{ID: 5, Role: role.RolePropertyAdmin}

	tests := []struct {
		name        string
		actor       *model.UserIdentity
		currentRole *string
		ownerParam  string
		wantKey     string
	}{
		{"без активной роли — пропуск", admin, nil, "", ""},
		{"активная роль не property_admin", admin, strPtr(role.RoleOwner), "", ""},
		{"нечисловой ownerId", admin, strPtr(role.RolePropertyAdmin), "abc", "invalidArgument"},
		{"пустой ownerId", admin, strPtr(role.RolePropertyAdmin), "", "invalidArgument"},
		{"не управляющий собственника", admin, strPtr(role.RolePropertyAdmin), "99", "unsupportedUser"},
		{"действующий управляющий", admin, strPtr(role.RolePropertyAdmin), "10", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.CheckPropertyAdminAccess(t.Context(), tt.actor, tt.currentRole, tt.ownerParam)
			if tt.wantKey == "" {
				if err != nil {
					t.Errorf("неожиданная ошибка: %v", err)
				}
				return
			}
			var appErr *apperr.Error
			if !errors.As(err, &appErr) || appErr.MessageKey != tt.wantKey {
				t.Errorf("ошибка = %v, ожидалось %s", err, tt.wantKey)
			}
		})
	}
}

// TestCheckGroupMutation — право изменять группу объектов.
func TestCheckGroupMutation(t *testing.T) {
	svc := NewAccessService(newFakeUserRepo(), testLogger())
	group := &model.PropertyGroup{CreatorUserID: 5}

	tests := []struct {
		name      string
		actor     *model.UserIdentity
		wantAllow bool
	}{
		{"создатель", &model.UserIdentity{ID: 5, Role: role.RoleOwner}, true},
		{"управляющий", &model.UserIdentity{ID: 9, Role: role.RolePropertyAdmin}, true},
		{"супер-админ", &model.UserIdentity{ID: 9, Role: role.RoleSuperAdmin}, true},
		{"посторонний собственник", &model.UserIdentity{ID: 9, Role: role.RoleOwner}, false},
		{"арендатор", &model.UserIdentity{ID: 9, Role: role.RoleTenant}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.CheckGroupMutation(tt.actor, group)
			if tt.wantAllow && err != nil {
				t.Errorf("неожиданная ошибка: %v", err)
			}
			if !tt.wantAllow {
				var appErr *apperr.Error
				if !errors.As(err, &appErr) || appErr.Kind != apperr.KindForbidden {
					t.Errorf("ошибка = %v, ожидался Forbidden", err)
				}
			}
		})
	}
}
