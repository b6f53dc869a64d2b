package service

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/rl-Rahul/balu-property-sub001/internal/domain/model"
	"github.com/rl-Rahul/balu-property-sub001/internal/repository"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestMaxPage — расчёт количества страниц.
func TestMaxPage(t *testing.T) {
	tests := []struct {
		name  string
		count int
		limit int
		want  int
	}{
		{"пустая выборка", 0, 20, 1},
		{"ровно одна страница", 20, 20, 1},
		{"неполная вторая страница", 21, 20, 2},
		{"несколько страниц", 95, 10, 10},
		{"нулевой limit не делит", 5, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := maxPage(tt.count, tt.limit); got != tt.want {
				t.Errorf("maxPage(%d, %d) = %d, ожидалось %d", tt.count, tt.limit, got, tt.want)
			}
		})
	}
}

// --- Фейковые репозитории для тестов сервисов ---

// fakeUserRepo — репозиторий пользователей в памяти.
type fakeUserRepo struct {
	repository.UserRepository

	byPublicID map[string]*model.UserIdentity
	byEmail    map[string]*model.UserIdentity
	adminPairs map[[2]int64]bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byPublicID: make(map[string]*model.UserIdentity),
		byEmail:    make(map[string]*model.UserIdentity),
		adminPairs: make(map[[2]int64]bool),
	}
}

func (f *fakeUserRepo) add(u *model.UserIdentity) {
	f.byPublicID[u.PublicID] = u
	f.byEmail[u.Email] = u
}

func (f *fakeUserRepo) GetByPublicID(_ context.Context, publicID string) (*model.UserIdentity, error) {
	u, ok := f.byPublicID[publicID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := f.byEmail[email]
	return ok, nil
}

func (f *fakeUserRepo) IsAdminOfOwner(_ context.Context, adminID, ownerID int64) (bool, error) {
	return f.adminPairs[[2]int64{adminID, ownerID}], nil
}

// fakeDirectoryRepo — репозиторий справочника в памяти.
type fakeDirectoryRepo struct {
	repository.DirectoryRepository

	entries []*model.Directory
}

func (f *fakeDirectoryRepo) GetByPublicID(_ context.Context, publicID string) (*model.Directory, error) {
	for _, d := range f.entries {
		if d.PublicID == publicID {
			return d, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeDirectoryRepo) ListByOwner(_ context.Context, ownerUserID int64, categories []string, search string, limit, offset int) ([]*model.Directory, error) {
	matched := f.match(ownerUserID, categories)
	if offset >= len(matched) {
		return nil, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (f *fakeDirectoryRepo) CountByOwner(_ context.Context, ownerUserID int64, categories []string, search string) (int, error) {
	return len(f.match(ownerUserID, categories)), nil
}

func (f *fakeDirectoryRepo) match(ownerUserID int64, categories []string) []*model.Directory {
	var matched []*model.Directory
	for _, d := range f.entries {
		if d.OwnerUserID != ownerUserID {
			continue
		}
		for _, c := range categories {
			if d.Category == c {
				matched = append(matched, d)
				break
			}
		}
	}
	return matched
}

// fakeMessageRepo — репозиторий сообщений в памяти.
type fakeMessageRepo struct {
	repository.MessageRepository

	inbox map[string]*model.Message // publicID → сообщение
}

func (f *fakeMessageRepo) GetByPublicID(_ context.Context, publicID string) (*model.Message, error) {
	m, ok := f.inbox[publicID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return m, nil
}

func (f *fakeMessageRepo) ListInbox(_ context.Context, recipientID int64, archived *bool, limit, offset int) ([]*model.Message, error) {
	var out []*model.Message
	for _, m := range f.inbox {
		if m.RecipientID != recipientID {
			continue
		}
		if archived != nil && m.Archived != *archived {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeMessageRepo) CountInbox(_ context.Context, recipientID int64, archived *bool) (int, error) {
	msgs, _ := f.ListInbox(context.Background(), recipientID, archived, 0, 0)
	return len(msgs), nil
}

func (f *fakeMessageRepo) Archive(_ context.Context, recipientID int64, publicID string) error {
	m, ok := f.inbox[publicID]
	if !ok || m.RecipientID != recipientID {
		return repository.ErrNotFound
	}
	m.Archived = true
	return nil
}

func (f *fakeMessageRepo) MarkRead(_ context.Context, recipientID int64, publicID string) error {
	m, ok := f.inbox[publicID]
	if !ok || m.RecipientID != recipientID {
		return repository.ErrNotFound
	}
	return nil
}

// fakeCompanyRepo — репозиторий компаний в памяти.
type fakeCompanyRepo struct {
	repository.CompanyRepository

	byID map[int64]*model.Company
}

func (f *fakeCompanyRepo) GetByID(_ context.Context, id int64) (*model.Company, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return c, nil
}

func (f *fakeCompanyRepo) GetByPublicID(_ context.Context, publicID string) (*model.Company, error) {
	for _, c := range f.byID {
		if c.PublicID == publicID {
			return c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeCompanyRepo) List(_ context.Context, search string, limit, offset int) ([]*model.Company, error) {
	var out []*model.Company
	for _, c := range f.byID {
		if search == "" || strings.Contains(c.Name, search) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCompanyRepo) Count(_ context.Context, search string) (int, error) {
	cs, _ := f.List(context.Background(), search, 0, 0)
	return len(cs), nil
}

// fakeNotificationRepo — репозиторий уведомлений в памяти.
type fakeNotificationRepo struct {
	repository.NotificationRepository

	byPublicID map[string]*model.Notification
}

func (f *fakeNotificationRepo) ListByUser(_ context.Context, userID int64, unreadOnly bool, limit, offset int) ([]*model.Notification, error) {
	var out []*model.Notification
	for _, n := range f.byPublicID {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) CountByUser(_ context.Context, userID int64, unreadOnly bool) (int, error) {
	ns, _ := f.ListByUser(context.Background(), userID, unreadOnly, 0, 0)
	return len(ns), nil
}

func (f *fakeNotificationRepo) MarkRead(_ context.Context, userID int64, publicID string) error {
	n, ok := f.byPublicID[publicID]
	if !ok || n.UserID != userID {
		return repository.ErrNotFound
	}
	return nil
}
