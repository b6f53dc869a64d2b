package service

import (
	"errors"
	"testing"

	"github.com/rl-Rahul/balu-property-sub001/internal/apperr"
	"github.com/rl-Rahul/balu-property-sub001/internal/domain/model"
)

// TestNotificationList — выборка уведомлений пользователя.
func TestNotificationList(t *testing.T) {
	repo := &fakeNotificationRepo{byPublicID: map[string]*model.Notification{
		"n-1": {PublicID: "n-1", UserID: 7, Kind: "message", MessageKey: "messageReceived", Payload: []byte(`{"messageId":"m-1"}`)},
		"n-2": {PublicID: "n-2", UserID: 8, Kind: "message", MessageKey: "messageReceived"},
	}}
	svc := NewNotificationService(repo, testLogger())

	list, err := svc.List(t.Context(), 7, false, 20, 0)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if list.Count != 1 || len(list.Rows) != 1 {
		t.Fatalf("Count = %d, ожидалось 1", list.Count)
	}
	n := list.Rows[0]
	if n.ID != "n-1" || n.Kind != "message" || n.MessageKey != "messageReceived" {
		t.Errorf("представление уведомления: %+v", n)
	}
	if string(n.Payload) != `{"messageId":"m-1"}` {
		t.Errorf("payload = %s", n.Payload)
	}
}

// TestReadBatchMixed — пакетная отметка прочтения со смешанным исходом.
func TestReadBatchMixed(t *testing.T) {
	repo := &fakeNotificationRepo{byPublicID: map[string]*model.Notification{
		"n-1": {PublicID: "n-1", UserID: 7},
		"n-2": {PublicID: "n-2", UserID: 8},
	}}
	svc := NewNotificationService(repo, testLogger())

	results, err := svc.ReadBatch(t.Context(), 7, []string{"n-1", "n-2"})
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	want := []ReadResult{
		{ID: "n-1", Error: false, Message: "notificationRead"},
		{ID: "n-2", Error: true, Message: "invalidNotification"},
	}
	for i, w := range want {
		if results[i] != w {
			t.Errorf("позиция %d = %+v, ожидалось %+v", i, results[i], w)
		}
	}
}

// TestReadBatchEmpty — пустой пакет отклоняется целиком.
func TestReadBatchEmpty(t *testing.T) {
	svc := NewNotificationService(&fakeNotificationRepo{}, testLogger())

	_, err := svc.ReadBatch(t.Context(), 7, nil)
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.MessageKey != "invalidNotification" {
		t.Errorf("ошибка = %v, ожидалось invalidNotification", err)
	}
}
