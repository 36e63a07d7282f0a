package repository

import (
	"context"

	"github.com/yourusername/quizgen-api/internal/domain/entity"
)

// DefaultRecentQuizLimit - сколько последних викторин возвращает список
const DefaultRecentQuizLimit = 10

// QuizRepository определяет методы для работы с викторинами
type QuizRepository interface {
	// CreateWithQuestions атомарно сохраняет викторину со всеми вопросами и ответами.
	// Заполняет ID у викторины, вопросов и ответов.
	CreateWithQuestions(ctx context.Context, quiz *entity.Quiz) error
	// GetWithQuestions загружает викторину вместе с вопросами и ответами (в порядке Position).
	// Возвращает apperrors.ErrNotFound, если викторины нет.
	GetWithQuestions(ctx context.Context, id uint) (*entity.Quiz, error)
	// Exists проверяет наличие викторины без загрузки вопросов
	Exists(ctx context.Context, id uint) (bool, error)
	// ListRecent возвращает последние созданные викторины без вопросов
	ListRecent(ctx context.Context, limit int) ([]entity.Quiz, error)
}
