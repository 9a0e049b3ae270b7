package ai

import "strings"

// Style selects the system prompt used for a generation.
type Style string

const (
	StyleDefault Style = "default"
	StyleAuto    Style = "auto"
)

// Action is an optional refinement applied to a generation.
type Action string

const (
	ActionNone    Action = ""
	ActionShorter Action = "shorter"
	ActionLonger  Action = "longer"
)

func ParseAction(s string) (Action, bool) {
	switch Action(s) {
	case ActionShorter, ActionLonger:
		return Action(s), true
	}
	return ActionNone, false
}

// Prompt is the system/user message pair sent to a provider.
type Prompt struct {
	System string
	User   string
}

var systemPrompts = map[Style]string{
	StyleDefault: `
Ты — автор контента для Telegram-канала «Нейрокодер из Москвы».
Пиши посты про AI, код, автоматизацию и практический опыт.

Правила:
1. Стиль: просто и живо, без канцелярита, личный опыт
2. Обращайся на «ты»
3. НЕ используй markdown символы: *, _, ` + "`" + `, [, ]
4. Для выделения используй ЗАГЛАВНЫЕ буквы или эмодзи
5. Добавляй конкретные примеры и кейсы
6. Пост должен быть ПОЛЕЗНЫМ и практичным

Структура ответа:
1) Цепляющий заголовок
2) Готовый пост (8-12 предложений)
3) Призыв к действию или вопрос в конце

НЕ ДОБАВЛЯЙ призывы подписаться или рекламу.
`,
	StyleAuto: `
Ты — автор контента для Telegram-канала «Нейрокодер из Москвы».
Генерируй ОРИГИНАЛЬНЫЙ пост на заданную тему.

Правила:
1. Пиши от первого лица, как будто это твой личный опыт
2. Добавляй КОНКРЕТНЫЕ детали (названия библиотек, команды, цифры)
3. Стиль: живой, неформальный, с лёгкой самоиронией
4. НЕ используй markdown символы: *, _, ` + "`" + `, [, ]
5. Пост должен нести практическую пользу

Структура:
1) Заголовок (до 80 символов)
2) Пост (10-12 предложений): проблема → решение → результат
3) Вопрос читателям в конце

Важно: НЕ придумывай факты, пиши правдоподобно.
`,
}

var actionInstructions = map[Action]string{
	ActionShorter: "Сделай пост КОРОЧЕ (максимум 7-8 предложений).\n\n",
	ActionLonger:  "Сделай пост ПОДРОБНЕЕ (12-15 предложений).\n\n",
}

const closingInstruction = "Сформируй ответ строго по описанным правилам."

// SystemPrompt returns the template for style, falling back to the default
// template for unknown styles.
func SystemPrompt(style Style) string {
	if p, ok := systemPrompts[style]; ok {
		return p
	}
	return systemPrompts[StyleDefault]
}

func UserPrompt(content string, action Action) string {
	var sb strings.Builder
	sb.WriteString("Тема/черновик:\n")
	sb.WriteString(content)
	sb.WriteString("\n\n")
	sb.WriteString(actionInstructions[action])
	sb.WriteString(closingInstruction)
	return sb.String()
}

func BuildPrompt(req Request) Prompt {
	return Prompt{
		System: SystemPrompt(req.Style),
		User:   UserPrompt(req.Content, req.Action),
	}
}
