package service

import (
	"testing"
	"time"

	"github.com/rl-Rahul/balu-property-sub001/internal/cache"
	"github.com/rl-Rahul/balu-property-sub001/internal/domain/model"
)

func newTestProfileService(userRepo *fakeUserRepo, companyRepo *fakeCompanyRepo) *ProfileService {
	return NewProfileService(userRepo, companyRepo, nil,
		cache.NewIdentityCache(16, time.Minute), testLogger())
}

// TestProfileGetWithCompany — у корпоративного пользователя профиль
// несёт компанию, у частного лица поле остаётся пустым.
func TestProfileGetWithCompany(t *testing.T) {
	companyID := int64(3)
	userRepo := newFakeUserRepo()
	userRepo.add(&model.UserIdentity{
		ID: 1, PublicID: "corp-1", Email: "uk@example.com",
		Role: "property_admin", Enabled: true, CompanyID: &companyID,
	})
	userRepo.add(&model.UserIdentity{
		ID: 2, PublicID: "private-2", Email: "anna@example.com",
		Role: "tenant", Enabled: true,
	})
	companyRepo := &fakeCompanyRepo{byID: map[int64]*model.Company{
		3: {ID: 3, PublicID: "c-3", Name: "УК Балу"},
	}}
	svc := newTestProfileService(userRepo, companyRepo)

	t.Run("корпоративный пользователь", func(t *testing.T) {
		view, err := svc.Get(t.Context(), "corp-1")
		if err != nil {
			t.Fatal(err)
		}
		if view.Company == nil || view.Company.Name != "УК Балу" {
			t.Errorf("Company = %+v, ожидалась УК Балу", view.Company)
		}
	})

	t.Run("частное лицо", func(t *testing.T) {
		view, err := svc.Get(t.Context(), "private-2")
		if err != nil {
			t.Fatal(err)
		}
		if view.Company != nil {
			t.Errorf("Company = %+v, ожидался nil", view.Company)
		}
	})
}

// TestProfileGetDanglingCompany — висячая ссылка на компанию не
// ломает чтение профиля.
func TestProfileGetDanglingCompany(t *testing.T) {
	companyID := int64(99)
	userRepo := newFakeUserRepo()
	userRepo.add(&model.UserIdentity{
		ID: 1, PublicID: "corp-1", Email: "uk@example.com",
		Role: "property_admin", Enabled: true, CompanyID: &companyID,
	})
	svc := newTestProfileService(userRepo, &fakeCompanyRepo{byID: map[int64]*model.Company{}})

	view, err := svc.Get(t.Context(), "corp-1")
	if err != nil {
		t.Fatal(err)
	}
	if view.Company != nil {
		t.Errorf("Company = %+v, ожидался nil", view.Company)
	}
}
