// loader.go — загрузка каталогов переводов из embed.FS.
package i18n

import (
	"fmt"
	"log/slog"
)

// LoadFromEmbedFS загружает все каталоги переводов из встроенной файловой системы.
// Ожидаемые файлы: locales/en.json, locales/ru.json.
func LoadFromEmbedFS(bundle *Bundle, logger *slog.Logger) error {
	locales := []string{"en", "ru"}

	for _, locale := range locales {
		path := fmt.Sprintf("locales/%s.json", locale)
		data, err := LocaleFS.ReadFile(path)
		if err != nil {
			return fmt.Errorf("i18n: не удалось прочитать %s: %w", path, err)
		}

		if err := bundle.LoadMessages(locale, data); err != nil {
			return err
		}
	}

	logger.Info("i18n каталоги загружены", slog.Int("locales", len(locales)))
	return nil
}
