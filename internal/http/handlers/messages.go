package handlers

import (
	"fmt"
	"net/http"

	"wishshare/internal/middleware"
)

// User-facing messages in the two served locales. The Russian strings are
// the canonical ones; English mirrors them for API clients.
var messages = map[string]map[string]string{
	"not_found": {
		"ru": "Не найдено",
		"en": "Not found",
	},
	"self_offer": {
		"ru": "Нельзя скидываться на свой подарок",
		"en": "You cannot chip in on your own wish",
	},
	"funding_closed": {
		"ru": "Сбор уже завершён",
		"en": "Funding is already completed",
	},
	"exceeds_remaining": {
		"ru": "Слишком большая сумма. Осталось собрать: %s",
		"en": "Amount is too large. Remaining to collect: %s",
	},
	"has_offers": {
		"ru": "Нельзя менять стоимость — уже есть офферы",
		"en": "Price can no longer change: the wish already has offers",
	},
	"delete_has_offers": {
		"ru": "Нельзя удалить подарок — есть офферы",
		"en": "Wish cannot be deleted: it already has offers",
	},
	"forbidden": {
		"ru": "Доступ запрещён",
		"en": "Forbidden",
	},
	"conflict": {
		"ru": "Запись уже существует",
		"en": "Already exists",
	},
	"invalid_credentials": {
		"ru": "Неверное имя пользователя или пароль",
		"en": "Invalid username or password",
	},
	"bad_request": {
		"ru": "Некорректный запрос",
		"en": "Invalid request",
	},
	"internal": {
		"ru": "Внутренняя ошибка",
		"en": "Internal error",
	},
}

func msg(r *http.Request, key string) string {
	locale := middleware.LocaleFromContext(r.Context())
	if byLocale, ok := messages[key]; ok {
		if s, ok := byLocale[locale]; ok {
			return s
		}
		if s, ok := byLocale["ru"]; ok {
			return s
		}
	}
	return key
}

func msgf(r *http.Request, key string, args ...any) string {
	return fmt.Sprintf(msg(r, key), args...)
}
