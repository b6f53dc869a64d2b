package service

import (
	"errors"
	"testing"

	"github.com/rl-Rahul/balu-property-sub001/internal/apperr"
	"github.com/rl-Rahul/balu-property-sub001/internal/domain/model"
)

func newTestAdminService(companyRepo *fakeCompanyRepo) *AdminService {
	return NewAdminService(newFakeUserRepo(), companyRepo, nil, nil, testLogger())
}

// TestListCompanies — страница компаний с поиском по названию.
func TestListCompanies(t *testing.T) {
	companyRepo := &fakeCompanyRepo{byID: map[int64]*model.Company{
		1: {ID: 1, PublicID: "c-1", Name: "УК Балу"},
		2: {ID: 2, PublicID: "c-2", Name: "ООО Ромашка"},
	}}
	svc := newTestAdminService(companyRepo)

	t.Run("без поиска", func(t *testing.T) {
		list, err := svc.ListCompanies(t.Context(), "", 20, 0)
		if err != nil {
			t.Fatal(err)
		}
		if list.Count != 2 || len(list.Rows) != 2 {
			t.Errorf("Count = %d, Rows = %d, ожидалось 2/2", list.Count, len(list.Rows))
		}
	})

	t.Run("поиск по названию", func(t *testing.T) {
		list, err := svc.ListCompanies(t.Context(), "Ромашка", 20, 0)
		if err != nil {
			t.Fatal(err)
		}
		if list.Count != 1 || list.Rows[0].ID != "c-2" {
			t.Errorf("результат = %+v, ожидалась одна ООО Ромашка", list.Rows)
		}
	})
}

// TestGetCompany — компания по публичному идентификатору.
func TestGetCompany(t *testing.T) {
	companyRepo := &fakeCompanyRepo{byID: map[int64]*model.Company{
		1: {ID: 1, PublicID: "c-1", Name: "УК Балу"},
	}}
	svc := newTestAdminService(companyRepo)

	t.Run("существующая", func(t *testing.T) {
		view, err := svc.GetCompany(t.Context(), "c-1")
		if err != nil {
			t.Fatal(err)
		}
		if view.Name != "УК Балу" {
			t.Errorf("Name = %q, ожидалось УК Балу", view.Name)
		}
	})

	t.Run("отсутствующая", func(t *testing.T) {
		_, err := svc.GetCompany(t.Context(), "ghost")
		var appErr *apperr.Error
		if !errors.As(err, &appErr) || appErr.Kind != apperr.KindNotFound {
			t.Errorf("ошибка = %v, ожидался NotFound", err)
		}
	})
}
