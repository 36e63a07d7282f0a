package postgres

import (
	"context"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/yourusername/quizgen-api/internal/domain/entity"
	apperrors "github.com/yourusername/quizgen-api/internal/pkg/errors"
)

// ResultRepo реализует repository.ResultRepository
type ResultRepo struct {
	db *gorm.DB
}

// NewResultRepo создает новый репозиторий результатов
func NewResultRepo(db *gorm.DB) *ResultRepo {
	return &ResultRepo{db: db}
}

// SaveResult сохраняет итоговый результат игрока.
// Если викторина удалена между чтением и записью, возвращает apperrors.ErrNotFound.
func (r *ResultRepo) SaveResult(ctx context.Context, result *entity.QuizResult) error {
	err := r.db.WithContext(ctx).Create(result).Error
	if err == nil {
		return nil
	}
	if isForeignKeyViolation(err) {
		log.Printf("[ResultRepo] Quiz #%d vanished before result could be saved: %v", result.QuizID, err)
		return fmt.Errorf("%w: quiz #%d", apperrors.ErrNotFound, result.QuizID)
	}
	return err
}

// GetQuizResults возвращает все результаты викторины в порядке рейтинга
func (r *ResultRepo) GetQuizResults(ctx context.Context, quizID uint) ([]entity.QuizResult, error) {
	var results []entity.QuizResult
	// Пустой слайс - валидный результат, ErrRecordNotFound не проверяем
	err := r.db.WithContext(ctx).
		Where("quiz_id = ?", quizID).
		Order("score DESC, completed_at ASC, id ASC").
		Find(&results).Error
	return results, err
}
