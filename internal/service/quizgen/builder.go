package quizgen

import (
	"time"

	"github.com/yourusername/quizgen-api/internal/domain/entity"
)

// Build собирает викторину из разобранного ответа модели. Ничего не сохраняет.
// Правильным считается первый ответ с isCorrect=true; если такого нет,
// CorrectAnswerIndex = entity.NoCorrectAnswer и на вопрос нельзя ответить правильно.
func Build(topic string, questionCount int, parsed *ParsedQuiz, now time.Time) *entity.Quiz {
	quiz := &entity.Quiz{
		Topic:             topic,
		NumberOfQuestions: questionCount,
		CreatedAt:         now,
	}
	if parsed == nil {
		return quiz
	}

	quiz.Questions = make([]entity.Question, 0, len(parsed.Questions))
	for i, pq := range parsed.Questions {
		question := entity.Question{
			Position:           i,
			QuestionText:       pq.Question,
			CorrectAnswerIndex: entity.NoCorrectAnswer,
			Answers:            make([]entity.Answer, 0, len(pq.Answers)),
		}
		for j, pa := range pq.Answers {
			question.Answers = append(question.Answers, entity.Answer{
				Position:   j,
				AnswerText: pa.Text,
			})
			if pa.IsCorrect && question.CorrectAnswerIndex == entity.NoCorrectAnswer {
				question.CorrectAnswerIndex = j
			}
		}
		quiz.Questions = append(quiz.Questions, question)
	}
	return quiz
}
