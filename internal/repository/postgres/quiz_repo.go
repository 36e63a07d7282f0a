package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/quizgen-api/internal/domain/entity"
	apperrors "github.com/yourusername/quizgen-api/internal/pkg/errors"
)

// QuizRepo реализует repository.QuizRepository
type QuizRepo struct {
	db *gorm.DB
}

// NewQuizRepo создает новый репозиторий викторин
func NewQuizRepo(db *gorm.DB) *QuizRepo {
	return &QuizRepo{db: db}
}

// CreateWithQuestions сохраняет викторину, вопросы и ответы в одной транзакции.
// При любой ошибке ничего не сохраняется.
func (r *QuizRepo) CreateWithQuestions(ctx context.Context, quiz *entity.Quiz) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(quiz).Error; err != nil {
			return fmt.Errorf("insert quiz: %w", err)
		}

		for i := range quiz.Questions {
			question := &quiz.Questions[i]
			question.QuizID = quiz.ID
			if err := tx.Omit(clause.Associations).Create(question).Error; err != nil {
				return fmt.Errorf("insert question %d: %w", question.Position, err)
			}

			if len(question.Answers) == 0 {
				continue
			}
			for j := range question.Answers {
				question.Answers[j].QuestionID = question.ID
			}
			if err := tx.Create(&question.Answers).Error; err != nil {
				return fmt.Errorf("insert answers of question %d: %w", question.Position, err)
			}
		}
		return nil
	})
}

// GetWithQuestions возвращает викторину вместе с вопросами и ответами
func (r *QuizRepo) GetWithQuestions(ctx context.Context, id uint) (*entity.Quiz, error) {
	var quiz entity.Quiz
	err := r.db.WithContext(ctx).
		Preload("Questions", orderByPosition).
		Preload("Questions.Answers", orderByPosition).
		First(&quiz, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

// Exists проверяет, существует ли викторина
func (r *QuizRepo) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Quiz{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListRecent возвращает последние викторины без вложенных вопросов
func (r *QuizRepo) ListRecent(ctx context.Context, limit int) ([]entity.Quiz, error) {
	var quizzes []entity.Quiz
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&quizzes).Error
	return quizzes, err
}

// orderByPosition сохраняет порядок вопросов и ответов, в котором их вернула модель.
// От него зависит разрешение CorrectAnswerIndex в ID ответа.
func orderByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC, id ASC")
}
