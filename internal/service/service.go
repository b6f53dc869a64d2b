// Пакет service — бизнес-логика API Module.
// Сервисы принимают явный контекст запроса, работают с репозиториями
// и возвращают типизированные ошибки apperr.
package service

// maxPage вычисляет номер последней страницы для пагинации.
// При limit <= 0 возвращает 1.
func maxPage(count, limit int) int {
	if limit <= 0 {
		return 1
	}
	pages := count / limit
	if count%limit != 0 {
		pages++
	}
	if pages == 0 {
		pages = 1
	}
	return pages
}
