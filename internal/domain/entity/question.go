package entity

// NoCorrectAnswer - значение CorrectAnswerIndex, когда модель не отметила ни один ответ правильным.
// На такой вопрос невозможно ответить правильно.
const NoCorrectAnswer = -1

// Question представляет вопрос викторины
type Question struct {
	ID                 uint     `gorm:"primaryKey" json:"id"`
	QuizID             uint     `gorm:"not null;index" json:"quiz_id"`
	Position           int      `gorm:"not null" json:"position"`
	QuestionText       string   `gorm:"type:text;not null" json:"question_text"`
	CorrectAnswerIndex int      `gorm:"not null" json:"-"` // Скрыто от клиента; без default, иначе gorm не запишет 0
	Answers            []Answer `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"answers,omitempty"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}

// HasCorrectAnswer проверяет, указывает ли CorrectAnswerIndex на один из ответов вопроса
func (q *Question) HasCorrectAnswer() bool {
	return q.CorrectAnswerIndex >= 0 && q.CorrectAnswerIndex < len(q.Answers)
}

// CorrectAnswerID возвращает ID правильного ответа.
// Ответы должны быть загружены в порядке Position.
func (q *Question) CorrectAnswerID() (uint, bool) {
	if !q.HasCorrectAnswer() {
		return 0, false
	}
	return q.Answers[q.CorrectAnswerIndex].ID, true
}

// IsCorrect проверяет, является ли выбранный ответ правильным
func (q *Question) IsCorrect(selectedAnswerID uint) bool {
	correctID, ok := q.CorrectAnswerID()
	return ok && correctID == selectedAnswerID
}

// Answer представляет вариант ответа. Признак правильности хранится только в Question.
type Answer struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	QuestionID uint   `gorm:"not null;index" json:"question_id"`
	Position   int    `gorm:"not null" json:"position"`
	AnswerText string `gorm:"type:text;not null" json:"answer_text"`
}

// TableName определяет имя таблицы для GORM
func (Answer) TableName() string {
	return "answers"
}
