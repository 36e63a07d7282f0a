package repository

import (
	"context"

	"github.com/yourusername/quizgen-api/internal/domain/entity"
)

// ResultRepository определяет методы для работы с результатами
type ResultRepository interface {
	SaveResult(ctx context.Context, result *entity.QuizResult) error
	// GetQuizResults возвращает все результаты викторины:
	// score по убыванию, при равных очках раньше завершивший выше.
	GetQuizResults(ctx context.Context, quizID uint) ([]entity.QuizResult, error)
}
