package stylist

import "strings"

// errorIndicators are phrases that mark a model answer as an error report
// rather than advice. The model answers in Russian.
var errorIndicators = []string{
	"ошибка",
	"не найден",
	"не поддерживается",
	"слишком большой",
	"не ответил",
	"недоступен",
	"политики безопасности",
	"проблема с сетевым",
	"внутренняя ошибка",
	"(код: g-",
	"не удалось",
	"аутентификации",
	"лимит запросов",
	"заблокирован",
	"api_not_configured",
}

// IsErrorText reports whether text looks like an error message. Empty text counts as one.
func IsErrorText(text string) bool {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return true
	}
	for _, indicator := range errorIndicators {
		if strings.Contains(text, indicator) {
			return true
		}
	}
	return false
}
