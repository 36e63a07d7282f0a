package entity

import (
	"time"
)

// QuizResult представляет итоговый результат прохождения викторины игроком.
// Создается один раз на каждую отправку ответов и не изменяется.
type QuizResult struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	QuizID         uint      `gorm:"not null;index:idx_quiz_results_rank,priority:1" json:"quiz_id"`
	PlayerName     string    `gorm:"type:text;not null" json:"player_name"`
	Score          int       `gorm:"not null;default:0;index:idx_quiz_results_rank,priority:2,sort:desc" json:"score"`
	TotalQuestions int       `gorm:"not null;default:0" json:"total_questions"`
	CompletedAt    time.Time `gorm:"not null;index:idx_quiz_results_rank,priority:3" json:"completed_at"`
}

// TableName определяет имя таблицы для GORM
func (QuizResult) TableName() string {
	return "quiz_results"
}

// Percentage возвращает процент правильных ответов относительно TotalQuestions.
// Может превышать 100, если модель вернула больше вопросов, чем было запрошено.
func (r *QuizResult) Percentage() float64 {
	if r.TotalQuestions == 0 {
		return 0
	}
	return float64(r.Score) / float64(r.TotalQuestions) * 100
}
