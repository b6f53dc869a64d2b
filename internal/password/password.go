// Пакет password — хэширование паролей через argon2id.
package password

import (
	"github.com/alexedwards/argon2id"
)

// Hasher — обёртка над argon2id с фиксированными параметрами.
type Hasher struct {
	params *argon2id.Params
}

// NewHasher создаёт Hasher с параметрами argon2id по умолчанию.
func NewHasher() *Hasher {
	return &Hasher{params: argon2id.DefaultParams}
}

// Hash возвращает закодированную строку формата $argon2id$v=19$m=...,
// пригодную для хранения в БД.
func (h *Hasher) Hash(plain string) (string, error) {
	return argon2id.CreateHash(plain, h.params)
}

// Verify сравнивает пароль с сохранённым хэшем.
func (h *Hasher) Verify(plain, encodedHash string) (bool, error) {
	return argon2id.ComparePasswordAndHash(plain, encodedHash)
}
