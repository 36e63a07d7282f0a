package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/yourusername/quizgen-api/internal/domain/entity"
	"github.com/yourusername/quizgen-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizgen-api/internal/pkg/errors"
	"github.com/yourusername/quizgen-api/internal/service/quizgen"
)

// QuizGenerator возвращает сырой текст викторины от модели.
// Реализуется quizgen.Client.
type QuizGenerator interface {
	Generate(ctx context.Context, topic string, questionCount int) (string, error)
}

// QuizService предоставляет методы для работы с викторинами
type QuizService struct {
	quizRepo  repository.QuizRepository
	generator QuizGenerator
	now       func() time.Time
}

// NewQuizService создает новый сервис викторин
func NewQuizService(quizRepo repository.QuizRepository, generator QuizGenerator) *QuizService {
	return &QuizService{
		quizRepo:  quizRepo,
		generator: generator,
		now:       time.Now,
	}
}

// ValidateGenerateRequest проверяет тему и количество вопросов
func ValidateGenerateRequest(topic string, questionCount int) error {
	if strings.TrimSpace(topic) == "" {
		return fmt.Errorf("%w: topic is required", apperrors.ErrValidation)
	}
	if questionCount < entity.MinQuestionsPerQuiz || questionCount > entity.MaxQuestionsPerQuiz {
		return fmt.Errorf("%w: number of questions must be between %d and %d",
			apperrors.ErrValidation, entity.MinQuestionsPerQuiz, entity.MaxQuestionsPerQuiz)
	}
	return nil
}

// GenerateQuiz генерирует викторину через модель, разбирает ответ и сохраняет результат.
// При любой ошибке генерации или разбора в базу ничего не записывается.
func (s *QuizService) GenerateQuiz(ctx context.Context, topic string, questionCount int) (*entity.Quiz, error) {
	if err := ValidateGenerateRequest(topic, questionCount); err != nil {
		return nil, err
	}
	topic = strings.TrimSpace(topic)

	raw, err := s.generator.Generate(ctx, topic, questionCount)
	if err != nil {
		return nil, fmt.Errorf("generate quiz about %q: %w", topic, err)
	}

	parsed, err := quizgen.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse quiz about %q: %w", topic, err)
	}

	quiz := quizgen.Build(topic, questionCount, parsed, s.now().UTC())
	if quiz.GeneratedQuestionCount() != questionCount {
		log.Printf("[QuizService] WARN: requested %d questions about %q, model returned %d",
			questionCount, topic, quiz.GeneratedQuestionCount())
	}
	for _, q := range quiz.Questions {
		if !q.HasCorrectAnswer() {
			log.Printf("[QuizService] WARN: question %d of quiz about %q has no correct answer marked", q.Position+1, topic)
		}
	}

	if err := s.quizRepo.CreateWithQuestions(ctx, quiz); err != nil {
		return nil, fmt.Errorf("failed to save generated quiz: %w", err)
	}

	log.Printf("[QuizService] Quiz #%d generated: topic=%q questions=%d", quiz.ID, topic, quiz.GeneratedQuestionCount())
	return quiz, nil
}

// GetQuiz возвращает викторину с вопросами и ответами
func (s *QuizService) GetQuiz(ctx context.Context, quizID uint) (*entity.Quiz, error) {
	return s.quizRepo.GetWithQuestions(ctx, quizID)
}

// ListRecentQuizzes возвращает последние викторины без вопросов
func (s *QuizService) ListRecentQuizzes(ctx context.Context) ([]entity.Quiz, error) {
	quizzes, err := s.quizRepo.ListRecent(ctx, repository.DefaultRecentQuizLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}
	for i := range quizzes {
		quizzes[i].Questions = nil
	}
	return quizzes, nil
}
