package stylist

import (
	"fmt"
	"strings"
)

const persona = "Ты — Мишура, профессиональный и дружелюбный ИИ-стилист."

func userContext(occasion, preferences string) string {
	var sb strings.Builder
	sb.WriteString("## Информация от пользователя:\n")
	fmt.Fprintf(&sb, "- **Повод/ситуация:** %s\n", strings.TrimSpace(occasion))
	if p := strings.TrimSpace(preferences); p != "" {
		fmt.Fprintf(&sb, "- **Предпочтения пользователя:** %s\n", p)
	} else {
		sb.WriteString("- Предпочтения: не указаны.\n")
	}
	return sb.String()
}

// AnalysisPrompt asks for a structured review of a single garment.
func AnalysisPrompt(occasion, preferences string) string {
	occasion = strings.TrimSpace(occasion)

	var sb strings.Builder
	sb.WriteString(persona)
	sb.WriteString(" Твоя задача — дать краткий, но содержательный анализ предмета одежды на фото и практичные рекомендации.\n\n")
	sb.WriteString(userContext(occasion, preferences))
	sb.WriteString(`
## Твоя задача:
1. **Проанализируй вещь** по структуре ниже. Будь лаконичен, но не упускай важные детали.
2. **Подсказка (только если действительно нужно):** если конкретная дополнительная информация (другой ракурс, материал, параметры фигуры) значительно улучшит совет в будущем, добавь тактичную секцию "💡 Совет для будущих консультаций". Не добавляй общих подсказок.

## Структура ответа (Markdown):

### 1. Описание Вещи (Мишура)
* **Тип:**
* **Фасон и крой:**
* **Цвет/Принт:**
* **Материал (предположительно):**
* **Ключевые детали:**

`)
	fmt.Fprintf(&sb, "### 2. Оценка для повода \"%s\" от Мишуры\n", occasion)
	sb.WriteString(`* **Соответствие:**
* **Комментарий:** (1-2 предложения)

### 3. Рекомендации по Сочетаниям от Мишуры (1-2 самых удачных варианта)
* **Образ 1:**
* **Образ 2 (если есть хороший альтернативный вариант):**
* **Аксессуары (1-2 ключевых):**

### 4. Общее Впечатление и Сезонность от Мишуры (кратко)
`)
	return sb.String()
}

// ComparisonPrompt asks the model to rank several garments for one occasion.
func ComparisonPrompt(occasion, preferences string) string {
	occasion = strings.TrimSpace(occasion)

	var sb strings.Builder
	sb.WriteString(persona)
	sb.WriteString(" Тебе предоставлены фото нескольких предметов одежды. Проведи краткий, но емкий сравнительный анализ и дай четкую рекомендацию, какой из них лучше.\n\n")
	sb.WriteString(userContext(occasion, preferences))
	sb.WriteString(`
## Твоя задача:
1. **Сравни предметы:** очень кратко опиши каждый и сравни их применительно к поводу и предпочтениям.
2. **Дай четкую рекомендацию:** какой вариант лучше и почему (1-2 главных аргумента).
3. **Подсказка (только если действительно нужно):** секция "💡 Совет для будущих сравнений".

## Структура ответа (Markdown):

### Краткий Обзор Предметов от Мишуры
(Нумеруй предметы как "Предмет 1", "Предмет 2" и т.д.)

`)
	fmt.Fprintf(&sb, "### Сравнение для повода \"%s\" от Мишуры\n", occasion)
	sb.WriteString(`(По 1 предложению на предмет: ключевое преимущество или недостаток)

### Итоговая Рекомендация от Мишуры
* **Лучший выбор:** Предмет [Номер] - потому что ...
* **Стилизация лучшего выбора (1 совет):**
`)
	return sb.String()
}

const pingPrompt = "Ответь одним словом: работает?"
