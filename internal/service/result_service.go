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
)

// AnswerSubmission - выбранный игроком ответ на вопрос
type AnswerSubmission struct {
	QuestionID       uint
	SelectedAnswerID uint
}

// ResultService предоставляет методы для подсчета и получения результатов
type ResultService struct {
	quizRepo   repository.QuizRepository
	resultRepo repository.ResultRepository
	now        func() time.Time
}

// NewResultService создает новый сервис результатов
func NewResultService(quizRepo repository.QuizRepository, resultRepo repository.ResultRepository) *ResultService {
	return &ResultService{
		quizRepo:   quizRepo,
		resultRepo: resultRepo,
		now:        time.Now,
	}
}

// SubmitQuiz подсчитывает очки игрока и сохраняет результат.
// TotalQuestions берется из запрошенного количества вопросов викторины.
func (s *ResultService) SubmitQuiz(ctx context.Context, quizID uint, playerName string, answers []AnswerSubmission) (*entity.QuizResult, error) {
	quiz, err := s.quizRepo.GetWithQuestions(ctx, quizID)
	if err != nil {
		return nil, err
	}

	playerName = strings.TrimSpace(playerName)
	if playerName == "" {
		return nil, fmt.Errorf("%w: player name is required", apperrors.ErrValidation)
	}

	result := &entity.QuizResult{
		QuizID:         quiz.ID,
		PlayerName:     playerName,
		Score:          ScoreSubmission(quiz, answers),
		TotalQuestions: quiz.NumberOfQuestions,
		CompletedAt:    s.now().UTC(),
	}
	if err := s.resultRepo.SaveResult(ctx, result); err != nil {
		return nil, fmt.Errorf("failed to save result for quiz #%d: %w", quizID, err)
	}

	log.Printf("[ResultService] Player %q scored %d/%d on quiz #%d", playerName, result.Score, result.TotalQuestions, quizID)
	return result, nil
}

// ScoreSubmission считает правильные ответы. Неизвестные вопросы пропускаются,
// повторный ответ на тот же вопрос не учитывается.
func ScoreSubmission(quiz *entity.Quiz, answers []AnswerSubmission) int {
	score := 0
	seen := make(map[uint]struct{}, len(answers))
	for _, a := range answers {
		if _, dup := seen[a.QuestionID]; dup {
			continue
		}
		seen[a.QuestionID] = struct{}{}

		question, ok := quiz.FindQuestion(a.QuestionID)
		if ok && question.IsCorrect(a.SelectedAnswerID) {
			score++
		}
	}
	return score
}

// GetQuizResults возвращает результаты викторины в порядке рейтинга
func (s *ResultService) GetQuizResults(ctx context.Context, quizID uint) ([]entity.QuizResult, error) {
	results, err := s.resultRepo.GetQuizResults(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to get results for quiz #%d: %w", quizID, err)
	}
	return results, nil
}

// GetResultsForExport возвращает результаты для выгрузки.
// В отличие от GetQuizResults, для несуществующей викторины возвращает apperrors.ErrNotFound.
func (s *ResultService) GetResultsForExport(ctx context.Context, quizID uint) ([]entity.QuizResult, error) {
	exists, err := s.quizRepo.Exists(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to check quiz #%d: %w", quizID, err)
	}
	if !exists {
		return nil, apperrors.ErrNotFound
	}
	return s.GetQuizResults(ctx, quizID)
}
