// Пакет token — выпуск и проверка RS256-токенов API Module.
// Приватный ключ загружается из PEM-файла; публичная часть
// публикуется как JWKS на /.well-known/jwks.json, middleware
// проверяет подпись через keyfunc по тому же JWKS.
package token

import (
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"math/big"
	"os"
	"time"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims — клеймы access-токена платформы.
type Claims struct {
	jwt.RegisteredClaims
	// Email — email пользователя.
	Email string `json:"email"`
	// Role — основная роль пользователя.
	Role string `json:"role"`
}

// Signer выпускает токены и публикует JWKS.
type Signer struct {
	key    *rsa.PrivateKey
	keyID  string
	issuer string
	ttl    time.Duration
}

// NewSigner загружает приватный RSA-ключ из PEM-файла.
// Поддерживаются форматы PKCS#1 и PKCS#8.
func NewSigner(privateKeyPath, issuer string, ttl time.Duration) (*Signer, error) {
	raw, err := os.ReadFile(privateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("чтение приватного ключа: %w", err)
	}

	block, _ := pem.Decode(raw)
	if block == nil {
		return nil, fmt.Errorf("приватный ключ %s: не PEM", privateKeyPath)
	}

	key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		parsed, err2 := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err2 != nil {
			return nil, fmt.Errorf("парсинг приватного ключа: %w", err)
		}
		var ok bool
		key, ok = parsed.(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("приватный ключ %s: ожидается RSA", privateKeyPath)
		}
	}

	return NewSignerWithKey(key, issuer, ttl), nil
}

// NewSignerWithKey создаёт Signer с готовым ключом (используется в тестах).
func NewSignerWithKey(key *rsa.PrivateKey, issuer string, ttl time.Duration) *Signer {
	return &Signer{
		key:    key,
		keyID:  deriveKeyID(&key.PublicKey),
		issuer: issuer,
		ttl:    ttl,
	}
}

// Issue выпускает подписанный токен для пользователя.
func (s *Signer) Issue(userPublicID, email, role string) (string, error) {
	now := time.Now().UTC()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   userPublicID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
		Email: email,
		Role:  role,
	}

	t := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	t.Header["kid"] = s.keyID

	signed, err := t.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("подпись токена: %w", err)
	}
	return signed, nil
}

// Issuer возвращает issuer выпускаемых токенов.
func (s *Signer) Issuer() string {
	return s.issuer
}

// JWKS возвращает JSON Web Key Set с публичным ключом.
func (s *Signer) JWKS() ([]byte, error) {
	pub := &s.key.PublicKey

	jwks := map[string]any{
		"keys": []map[string]any{
			{
				"kty": "RSA",
				"kid": s.keyID,
				"use": "sig",
				"alg": "RS256",
				"n":   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
				"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
			},
		},
	}

	data, err := json.Marshal(jwks)
	if err != nil {
		return nil, fmt.Errorf("сериализация JWKS: %w", err)
	}
	return data, nil
}

// Keyfunc создаёт keyfunc для проверки подписи по собственному JWKS.
func (s *Signer) Keyfunc() (keyfunc.Keyfunc, error) {
	jwksJSON, err := s.JWKS()
	if err != nil {
		return nil, err
	}

	kf, err := keyfunc.NewJWKSetJSON(jwksJSON)
	if err != nil {
		return nil, fmt.Errorf("создание keyfunc: %w", err)
	}
	return kf, nil
}

// deriveKeyID вычисляет стабильный идентификатор ключа из публичной части.
func deriveKeyID(pub *rsa.PublicKey) string {
	sum := sha256.Sum256(pub.N.Bytes())
	return base64.RawURLEncoding.EncodeToString(sum[:8])
}
