// Пакет cache — LRU-кэш профилей пользователей с TTL.
// Обёртка над hashicorp/golang-lru/v2/expirable.
package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/rl-Rahul/balu-property-sub001/internal/domain/model"
)

// Prometheus-метрики кэша.
var (
	cacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bp_identity_cache_hits_total",
		Help: "Общее количество попаданий в LRU-кэш профилей.",
	})
	cacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bp_identity_cache_misses_total",
		Help: "Общее количество промахов LRU-кэша профилей.",
	})
)

// IdentityCache — LRU-кэш профилей пользователей по публичному идентификатору.
// Каждый экземпляр API-модуля имеет собственный in-memory кэш.
type IdentityCache struct {
	cache *expirable.LRU[string, *model.UserIdentity]
}

// NewIdentityCache создаёт LRU-кэш с указанным максимальным размером и TTL.
// maxSize — максимальное количество записей в кэше.
// ttl — время жизни записи после добавления.
func NewIdentityCache(maxSize int, ttl time.Duration) *IdentityCache {
	c := expirable.NewLRU[string, *model.UserIdentity](maxSize, nil, ttl)
	return &IdentityCache{cache: c}
}

// Get возвращает профиль из кэша по публичному идентификатору.
// Возвращает (профиль, true) при hit или (nil, false) при miss.
func (c *IdentityCache) Get(publicID string) (*model.UserIdentity, bool) {
	val, ok := c.cache.Get(publicID)
	if ok {
		cacheHitsTotal.Inc()
		return val, true
	}
	cacheMissesTotal.Inc()
	return nil, false
}

// Set добавляет или обновляет запись в кэше.
func (c *IdentityCache) Set(publicID string, identity *model.UserIdentity) {
	c.cache.Add(publicID, identity)
}

// Delete удаляет запись из кэша (инвалидация при изменении профиля).
func (c *IdentityCache) Delete(publicID string) {
	c.cache.Remove(publicID)
}
