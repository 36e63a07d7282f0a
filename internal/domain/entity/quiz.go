package entity

import (
	"time"
)

// Ограничения на количество вопросов, которое можно запросить у модели
const (
	MinQuestionsPerQuiz = 1
	MaxQuestionsPerQuiz = 20
)

// Quiz представляет сгенерированную викторину по теме.
// Создается один раз вместе со всеми вопросами и ответами и больше не изменяется.
type Quiz struct {
	ID                uint         `gorm:"primaryKey" json:"id"`
	Topic             string       `gorm:"type:text;not null" json:"topic"`
	NumberOfQuestions int          `gorm:"not null" json:"number_of_questions"` // Запрошенное количество, а не фактическое
	CreatedAt         time.Time    `gorm:"not null;index" json:"created_at"`
	Questions         []Question   `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
	Results           []QuizResult `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName определяет имя таблицы для GORM
func (Quiz) TableName() string {
	return "quizzes"
}

// FindQuestion ищет вопрос викторины по ID
func (q *Quiz) FindQuestion(questionID uint) (*Question, bool) {
	for i := range q.Questions {
		if q.Questions[i].ID == questionID {
			return &q.Questions[i], true
		}
	}
	return nil, false
}

// GeneratedQuestionCount возвращает фактическое количество вопросов,
// которое может отличаться от запрошенного NumberOfQuestions
func (q *Quiz) GeneratedQuestionCount() int {
	return len(q.Questions)
}
