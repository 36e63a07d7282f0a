package helper

import (
	"github.com/yourusername/quizgen-api/internal/domain/entity"
)

// AnswerOption - вариант ответа для клиента. Признака правильности здесь нет и быть не должно.
type AnswerOption struct {
	ID         uint   `json:"id"`
	AnswerText string `json:"answerText"`
}

// ConvertAnswersToOptions преобразует ответы вопроса в публичные варианты, сохраняя порядок
func ConvertAnswersToOptions(answers []entity.Answer) []AnswerOption {
	converted := make([]AnswerOption, len(answers))
	for i, a := range answers {
		converted[i] = AnswerOption{ID: a.ID, AnswerText: a.AnswerText}
	}
	return converted
}
