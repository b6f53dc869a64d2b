// Пакет i18n — локализация сообщений API.
// Конверт ответа несёт не литеральную строку, а ключ сообщения,
// который разрешается через каталог по локали запроса.
// Поддерживаемые локали: English (en), Русский (ru).
// Локаль определяется middleware: заголовок "locale" →
// Accept-Language → локаль по умолчанию из конфигурации.
package i18n

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// Поддерживаемые локали
var (
	// SupportedLanguages — список поддерживаемых тегов языков.
	SupportedLanguages = []language.Tag{
		language.English,
		language.Russian,
	}

	// matcher — языковой matcher для Accept-Language.
	matcher = language.NewMatcher(SupportedLanguages)
)

// Bundle — хранилище каталогов переводов для всех локалей.
// Загружается один раз при старте приложения и передаётся явно
// всем потребителям (без глобального состояния).
type Bundle struct {
	mu       sync.RWMutex
	catalogs map[string]map[string]string // locale → key → translation
	logger   *slog.Logger
}

// NewBundle создаёт пустой Bundle.
func NewBundle(logger *slog.Logger) *Bundle {
	return &Bundle{
		catalogs: make(map[string]map[string]string),
		logger:   logger,
	}
}

// LoadMessages загружает JSON-каталог переводов для указанной локали.
// JSON формат: {"key": "translation", ...} (плоский).
func (b *Bundle) LoadMessages(locale string, data []byte) error {
	var messages map[string]string
	if err := json.Unmarshal(data, &messages); err != nil {
		return fmt.Errorf("i18n: ошибка парсинга каталога %s: %w", locale, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.catalogs[locale] = messages

	if b.logger != nil {
		b.logger.Info("i18n каталог загружен",
			slog.String("locale", locale),
			slog.Int("keys", len(messages)),
		)
	}
	return nil
}

// Translate возвращает перевод по ключу для указанной локали.
// Неизвестный ключ проходит насквозь без перевода — запрос не
// завершается ошибкой из-за отсутствующего перевода.
func (b *Bundle) Translate(locale, key string) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	// Ищем в запрошенной локали
	if catalog, ok := b.catalogs[locale]; ok {
		if msg, ok := catalog[key]; ok {
			return msg
		}
	}

	// Fallback на английский
	if locale != "en" {
		if catalog, ok := b.catalogs["en"]; ok {
			if msg, ok := catalog[key]; ok {
				return msg
			}
		}
	}

	// Ключ не найден ни в одном каталоге
	return key
}

// MatchLanguage определяет лучшую локаль из Accept-Language заголовка.
// Возвращает "en" или "ru".
func MatchLanguage(acceptLanguage string) string {
	tag, _ := language.MatchStrings(matcher, acceptLanguage)
	base, _ := tag.Base()
	lang := base.String()

	// Нормализуем к поддерживаемым значениям
	switch {
	case strings.HasPrefix(lang, "ru"):
		return "ru"
	default:
		return "en"
	}
}

// IsSupported проверяет, поддерживается ли локаль.
func IsSupported(locale string) bool {
	return locale == "en" || locale == "ru"
}
