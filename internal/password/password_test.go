package password

import (
	"strings"
	"testing"
)

// TestHashAndVerify — полный цикл хэширования и проверки пароля.
func TestHashAndVerify(t *testing.T) {
	h := NewHasher()

	hash, err := h.Hash("secret123")
	if err != nil {
		t.Fatalf("Hash() ошибка: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Errorf("хэш в неожиданном формате: %q", hash)
	}

	ok, err := h.Verify("secret123", hash)
	if err != nil || !ok {
		t.Errorf("Verify() = %v/%v, хотели true", ok, err)
	}

	ok, err = h.Verify("wrong-password", hash)
	if err != nil {
		t.Fatalf("Verify() ошибка: %v", err)
	}
	if ok {
		t.Error("неверный пароль не должен проходить проверку")
	}
}

// TestHashUnique — одинаковые пароли дают разные хэши (случайная соль).
func TestHashUnique(t *testing.T) {
	h := NewHasher()

	a, err := h.Hash("secret123")
	if err != nil {
		t.Fatal(err)
	}
	b, err := h.Hash("secret123")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Error("хэши с разной солью совпали")
	}
}
